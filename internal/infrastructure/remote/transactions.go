package remote

import (
	"context"
	"net/http"

	"github.com/sangkips/ledgerbook/internal/domain/entity"
	"github.com/sangkips/ledgerbook/internal/domain/repository"
)

type transactionGateway struct {
	client *Client
}

// NewTransactionGateway returns the ledger API's transaction endpoints
func NewTransactionGateway(client *Client) repository.TransactionGateway {
	return &transactionGateway{client: client}
}

func (g *transactionGateway) List(ctx context.Context, customerID string) ([]entity.Transaction, error) {
	transactions, err := do[[]entity.Transaction](ctx, g.client, call{
		method:     http.MethodGet,
		path:       "/customers/{id}/transactions",
		pathParams: map[string]string{"id": customerID},
		authed:     true,
	})
	if err != nil {
		return nil, err
	}
	if transactions == nil {
		transactions = []entity.Transaction{}
	}
	return transactions, nil
}

func (g *transactionGateway) Create(ctx context.Context, submission *entity.TransactionSubmission) (*entity.Transaction, error) {
	transaction, err := do[entity.Transaction](ctx, g.client, call{
		method:     http.MethodPost,
		path:       "/customers/{id}/transactions",
		pathParams: map[string]string{"id": submission.CustomerID},
		body:       submission,
		authed:     true,
	})
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}
