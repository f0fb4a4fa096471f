package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/sangkips/ledgerbook/internal/domain/entity"
	"github.com/sangkips/ledgerbook/internal/domain/repository"
	"github.com/sangkips/ledgerbook/pkg/apperror"
	"github.com/sangkips/ledgerbook/pkg/utils"
)

// minPasswordLength matches the ledger API's registration rule
const minPasswordLength = 8

// SessionService handles login, registration and the cached session token
type SessionService struct {
	auth      repository.AuthGateway
	sessions  repository.SessionRepository
	inspector *utils.TokenInspector
	log       *zap.Logger
}

// NewSessionService creates a new session service
func NewSessionService(
	auth repository.AuthGateway,
	sessions repository.SessionRepository,
	inspector *utils.TokenInspector,
	log *zap.Logger,
) *SessionService {
	return &SessionService{
		auth:      auth,
		sessions:  sessions,
		inspector: inspector,
		log:       log,
	}
}

// LoginInput represents the login input
type LoginInput struct {
	Email    string
	Password string
}

// RegisterInput represents the register input
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// VerifyEmailInput represents the verify email input
type VerifyEmailInput struct {
	Email string
	Code  string
}

// AuthOutput is returned once a session has been established
type AuthOutput struct {
	User    entity.AuthUser `json:"user"`
	Session *entity.Session `json:"session"`
}

// Login authenticates against the ledger API and caches the issued token.
// An account whose email is unverified fails with apperror.ErrEmailNotVerified.
func (s *SessionService) Login(ctx context.Context, input *LoginInput) (*AuthOutput, error) {
	check := &fieldChecker{}
	check.email("email", input.Email)
	check.required("password", input.Password, "Password is required")
	if err := check.err(); err != nil {
		return nil, err
	}

	result, err := s.auth.Login(ctx, strings.TrimSpace(input.Email), input.Password)
	if err != nil {
		return nil, err
	}
	return s.establish(ctx, result)
}

// Register creates an account. The ledger API then emails a verification code.
func (s *SessionService) Register(ctx context.Context, input *RegisterInput) error {
	check := &fieldChecker{}
	check.required("name", input.Name, "Name is required")
	check.email("email", input.Email)
	if check.required("password", input.Password, "Password is required") && len(input.Password) < minPasswordLength {
		check.add("password", "Password must be at least 8 characters")
	}
	if err := check.err(); err != nil {
		return err
	}

	return s.auth.Register(ctx, strings.TrimSpace(input.Name), strings.TrimSpace(input.Email), input.Password)
}

// VerifyEmail confirms the account with the emailed code and logs it in
func (s *SessionService) VerifyEmail(ctx context.Context, input *VerifyEmailInput) (*AuthOutput, error) {
	check := &fieldChecker{}
	check.email("email", input.Email)
	check.required("code", input.Code, "Verification code is required")
	if err := check.err(); err != nil {
		return nil, err
	}

	result, err := s.auth.VerifyEmail(ctx, strings.TrimSpace(input.Email), strings.TrimSpace(input.Code))
	if err != nil {
		return nil, err
	}
	return s.establish(ctx, result)
}

// ResendVerification asks the ledger API to send a new verification code
func (s *SessionService) ResendVerification(ctx context.Context, email string) error {
	check := &fieldChecker{}
	check.email("email", email)
	if err := check.err(); err != nil {
		return err
	}
	return s.auth.ResendVerification(ctx, strings.TrimSpace(email))
}

// Current returns the cached session. An expired session is dropped.
func (s *SessionService) Current(ctx context.Context) (*entity.Session, error) {
	session, err := s.sessions.Get(ctx)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.ErrNoSession
	}
	if session.IsExpired() {
		if err := s.sessions.Delete(ctx); err != nil {
			s.log.Warn("failed to drop expired session", zap.Error(err))
		}
		return nil, apperror.ErrTokenExpired
	}
	return session, nil
}

// Logout forgets the cached token
func (s *SessionService) Logout(ctx context.Context) error {
	if err := s.sessions.Delete(ctx); err != nil {
		return err
	}
	s.log.Info("session cleared")
	return nil
}

func (s *SessionService) establish(ctx context.Context, result *entity.AuthResult) (*AuthOutput, error) {
	if result.Token == "" {
		return nil, apperror.NewAppError(502, "Login succeeded but no session token was issued")
	}

	session := &entity.Session{
		Token:  result.Token,
		UserID: result.User.ID,
		Email:  result.User.Email,
	}

	// the token is opaque to the API contract; claims only enrich the cache
	if info, err := s.inspector.Inspect(result.Token); err == nil {
		session.ExpiresAt = info.ExpiresAt
		if session.UserID == "" {
			session.UserID = info.UserID
		}
		if session.Email == "" {
			session.Email = info.Email
		}
	} else {
		s.log.Debug("session token is not a readable JWT", zap.Error(err))
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	s.log.Info("session established", zap.String("user_id", session.UserID))
	return &AuthOutput{User: result.User, Session: session}, nil
}
