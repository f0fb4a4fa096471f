package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims are the claims the remote ledger API puts in its bearer tokens
type SessionClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// TokenInfo is what the gateway needs to know about a cached session token
type TokenInfo struct {
	UserID    string
	Email     string
	ExpiresAt *time.Time
}

// Expired reports whether the token is past its expiry at now.
// Tokens without an exp claim never expire locally.
func (i *TokenInfo) Expired(now time.Time) bool {
	return i.ExpiresAt != nil && !now.Before(*i.ExpiresAt)
}

// TokenInspector reads session token claims. The signing key belongs to the
// remote API, so signatures are not verified here; the remote rejects forged
// tokens on every call.
type TokenInspector struct {
	parser *jwt.Parser
}

// NewTokenInspector creates a new token inspector
func NewTokenInspector() *TokenInspector {
	return &TokenInspector{parser: jwt.NewParser()}
}

// Inspect decodes the token's claims without verifying its signature
func (i *TokenInspector) Inspect(tokenString string) (*TokenInfo, error) {
	if tokenString == "" {
		return nil, errors.New("empty token")
	}

	claims := &SessionClaims{}
	if _, _, err := i.parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, err
	}

	info := &TokenInfo{
		UserID: claims.UserID,
		Email:  claims.Email,
	}
	if info.UserID == "" {
		info.UserID = claims.Subject
	}
	if claims.ExpiresAt != nil {
		exp := claims.ExpiresAt.Time
		info.ExpiresAt = &exp
	}

	return info, nil
}
