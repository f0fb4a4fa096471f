package remote

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"

	"github.com/sangkips/ledgerbook/internal/domain/repository"
	"github.com/sangkips/ledgerbook/pkg/apperror"
)

// SessionTokenSource hands out the cached session token as an OAuth2 bearer
// token. It reads the store on every call so a logout or a new login takes
// effect on the next request.
type SessionTokenSource struct {
	sessions repository.SessionRepository
}

// NewSessionTokenSource creates a token source backed by the session store
func NewSessionTokenSource(sessions repository.SessionRepository) *SessionTokenSource {
	return &SessionTokenSource{sessions: sessions}
}

// Token implements oauth2.TokenSource
func (s *SessionTokenSource) Token() (*oauth2.Token, error) {
	session, err := s.sessions.Get(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session == nil || session.Token == "" {
		return nil, apperror.ErrNoSession
	}
	if session.IsExpired() {
		return nil, apperror.ErrTokenExpired
	}

	token := &oauth2.Token{
		AccessToken: session.Token,
		TokenType:   "Bearer",
	}
	if session.ExpiresAt != nil {
		token.Expiry = *session.ExpiresAt
	}
	return token, nil
}
