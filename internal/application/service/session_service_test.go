package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/sangkips/ledgerbook/internal/domain/entity"
	"github.com/sangkips/ledgerbook/pkg/apperror"
	"github.com/sangkips/ledgerbook/pkg/utils"
)

func newSessionFixture(t *testing.T, auth *fakeAuth) (*SessionService, *fakeSessions) {
	t.Helper()
	sessions := &fakeSessions{}
	return NewSessionService(auth, sessions, utils.NewTokenInspector(), zaptest.NewLogger(t)), sessions
}

func issueToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &utils.SessionClaims{
		UserID:           "u-1",
		Email:            "owner@example.com",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)},
	}).SignedString([]byte("remote"))
	require.NoError(t, err)
	return token
}

func TestSessionService_LoginCachesToken(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token := issueToken(t, exp)
	svc, sessions := newSessionFixture(t, &fakeAuth{result: &entity.AuthResult{
		Token: token,
		User:  entity.AuthUser{Name: "Owner", EmailVerified: true},
	}})

	auth := svc.auth.(*fakeAuth)
	out, err := svc.Login(context.Background(), &LoginInput{Email: " owner@example.com ", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, []string{"owner@example.com"}, auth.loginEmails, "the remote gets the trimmed email")

	assert.Equal(t, token, out.Session.Token)
	assert.Equal(t, "u-1", out.Session.UserID, "user id falls back to the token claims")
	assert.Equal(t, "owner@example.com", out.Session.Email)
	require.NotNil(t, out.Session.ExpiresAt)
	assert.True(t, exp.Equal(*out.Session.ExpiresAt))

	current, err := svc.Current(context.Background())
	require.NoError(t, err)
	assert.Same(t, sessions.session, current)
}

func TestSessionService_LoginWithOpaqueToken(t *testing.T) {
	svc, _ := newSessionFixture(t, &fakeAuth{result: &entity.AuthResult{
		Token: "opaque",
		User:  entity.AuthUser{ID: "u-2", Email: "b@example.com"},
	}})

	out, err := svc.Login(context.Background(), &LoginInput{Email: "b@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "u-2", out.Session.UserID)
	assert.Nil(t, out.Session.ExpiresAt)
}

func TestSessionService_LoginValidation(t *testing.T) {
	svc, _ := newSessionFixture(t, &fakeAuth{})

	_, err := svc.Login(context.Background(), &LoginInput{Email: "not-an-email"})
	require.True(t, apperror.IsValidation(err))

	fields := []string{}
	for _, fe := range apperror.GetAppError(err).Errors {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{"email", "password"}, fields)
}

func TestSessionService_LoginUnverified(t *testing.T) {
	svc, sessions := newSessionFixture(t, &fakeAuth{err: apperror.ErrEmailNotVerified})

	_, err := svc.Login(context.Background(), &LoginInput{Email: "a@example.com", Password: "pw"})
	assert.True(t, errors.Is(err, apperror.ErrEmailNotVerified))
	assert.Nil(t, sessions.session)
}

func TestSessionService_RegisterValidation(t *testing.T) {
	auth := &fakeAuth{}
	svc, _ := newSessionFixture(t, auth)

	err := svc.Register(context.Background(), &RegisterInput{Name: "A", Email: "a@example.com", Password: "short"})
	assert.True(t, apperror.IsValidation(err))
	assert.Empty(t, auth.registered)

	require.NoError(t, svc.Register(context.Background(), &RegisterInput{Name: "A", Email: "a@example.com", Password: "long-enough"}))
	assert.Equal(t, []string{"a@example.com"}, auth.registered)
}

func TestSessionService_VerifyEmailEstablishesSession(t *testing.T) {
	auth := &fakeAuth{result: &entity.AuthResult{Token: "tok", User: entity.AuthUser{ID: "u-3", EmailVerified: true}}}
	svc, sessions := newSessionFixture(t, auth)

	_, err := svc.VerifyEmail(context.Background(), &VerifyEmailInput{Email: "a@example.com", Code: " 123456 "})
	require.NoError(t, err)
	assert.Equal(t, []string{"123456"}, auth.verifyCodes)
	require.NotNil(t, sessions.session)
	assert.Equal(t, "tok", sessions.session.Token)

	require.NoError(t, svc.ResendVerification(context.Background(), "a@example.com"))
	assert.Equal(t, []string{"a@example.com"}, auth.resentTo)
}

func TestSessionService_CurrentAndLogout(t *testing.T) {
	svc, sessions := newSessionFixture(t, &fakeAuth{})

	_, err := svc.Current(context.Background())
	assert.True(t, errors.Is(err, apperror.ErrNoSession))

	past := time.Now().Add(-time.Minute)
	sessions.session = &entity.Session{Token: "old", ExpiresAt: &past}
	_, err = svc.Current(context.Background())
	assert.True(t, errors.Is(err, apperror.ErrTokenExpired))
	assert.Nil(t, sessions.session, "expired session is dropped")

	sessions.session = &entity.Session{Token: "tok"}
	require.NoError(t, svc.Logout(context.Background()))
	assert.Nil(t, sessions.session)
}
