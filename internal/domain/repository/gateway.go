package repository

import (
	"context"

	"github.com/sangkips/ledgerbook/internal/domain/entity"
	"github.com/sangkips/ledgerbook/internal/domain/ledger"
)

// AuthGateway authenticates against the remote ledger API
type AuthGateway interface {
	Login(ctx context.Context, email, password string) (*entity.AuthResult, error)
	Register(ctx context.Context, name, email, password string) error
	VerifyEmail(ctx context.Context, email, code string) (*entity.AuthResult, error)
	ResendVerification(ctx context.Context, email string) error
}

// CustomerGateway reads and writes customers on the remote ledger API
type CustomerGateway interface {
	List(ctx context.Context) ([]entity.Customer, error)
	Get(ctx context.Context, id string) (*entity.Customer, error)
	Create(ctx context.Context, input *entity.CustomerInput) (*entity.Customer, error)
	Update(ctx context.Context, id string, input *entity.CustomerInput) (*entity.Customer, error)
	AdjustBalance(ctx context.Context, id string, adjustment *ledger.Adjustment) error
}

// TransactionGateway reads and creates transactions on the remote ledger API
type TransactionGateway interface {
	List(ctx context.Context, customerID string) ([]entity.Transaction, error)
	Create(ctx context.Context, submission *entity.TransactionSubmission) (*entity.Transaction, error)
}
