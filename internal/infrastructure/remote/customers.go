package remote

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sangkips/ledgerbook/internal/domain/entity"
	"github.com/sangkips/ledgerbook/internal/domain/ledger"
	"github.com/sangkips/ledgerbook/internal/domain/repository"
)

type customerGateway struct {
	client *Client
}

// NewCustomerGateway returns the ledger API's customer endpoints
func NewCustomerGateway(client *Client) repository.CustomerGateway {
	return &customerGateway{client: client}
}

func (g *customerGateway) List(ctx context.Context) ([]entity.Customer, error) {
	customers, err := do[[]entity.Customer](ctx, g.client, call{
		method: http.MethodGet,
		path:   "/customers",
		authed: true,
	})
	if err != nil {
		return nil, err
	}
	if customers == nil {
		customers = []entity.Customer{}
	}
	return customers, nil
}

func (g *customerGateway) Get(ctx context.Context, id string) (*entity.Customer, error) {
	customer, err := do[entity.Customer](ctx, g.client, call{
		method:     http.MethodGet,
		path:       "/customers/{id}",
		pathParams: map[string]string{"id": id},
		authed:     true,
	})
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (g *customerGateway) Create(ctx context.Context, input *entity.CustomerInput) (*entity.Customer, error) {
	customer, err := do[entity.Customer](ctx, g.client, call{
		method: http.MethodPost,
		path:   "/customers",
		body:   input,
		authed: true,
	})
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (g *customerGateway) Update(ctx context.Context, id string, input *entity.CustomerInput) (*entity.Customer, error) {
	customer, err := do[entity.Customer](ctx, g.client, call{
		method:     http.MethodPut,
		path:       "/customers/{id}",
		pathParams: map[string]string{"id": id},
		body:       input,
		authed:     true,
	})
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (g *customerGateway) AdjustBalance(ctx context.Context, id string, adjustment *ledger.Adjustment) error {
	_, err := do[json.RawMessage](ctx, g.client, call{
		method:     http.MethodPut,
		path:       "/customers/{id}/balance",
		pathParams: map[string]string{"id": id},
		body:       adjustment,
		authed:     true,
	})
	return err
}
