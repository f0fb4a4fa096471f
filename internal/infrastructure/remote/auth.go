package remote

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sangkips/ledgerbook/internal/domain/entity"
	"github.com/sangkips/ledgerbook/internal/domain/repository"
)

type authGateway struct {
	client *Client
}

// NewAuthGateway returns the ledger API's authentication endpoints
func NewAuthGateway(client *Client) repository.AuthGateway {
	return &authGateway{client: client}
}

func (g *authGateway) Login(ctx context.Context, email, password string) (*entity.AuthResult, error) {
	result, err := do[entity.AuthResult](ctx, g.client, call{
		method: http.MethodPost,
		path:   "/auth/login",
		body:   map[string]string{"email": email, "password": password},
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (g *authGateway) Register(ctx context.Context, name, email, password string) error {
	_, err := do[json.RawMessage](ctx, g.client, call{
		method: http.MethodPost,
		path:   "/auth/register",
		body:   map[string]string{"name": name, "email": email, "password": password},
	})
	return err
}

func (g *authGateway) VerifyEmail(ctx context.Context, email, code string) (*entity.AuthResult, error) {
	result, err := do[entity.AuthResult](ctx, g.client, call{
		method: http.MethodPost,
		path:   "/auth/verify-email",
		body:   map[string]string{"email": email, "code": code},
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (g *authGateway) ResendVerification(ctx context.Context, email string) error {
	_, err := do[json.RawMessage](ctx, g.client, call{
		method: http.MethodPost,
		path:   "/auth/resend-verification",
		body:   map[string]string{"email": email},
	})
	return err
}
