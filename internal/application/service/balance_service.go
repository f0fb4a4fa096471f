package service

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sangkips/ledgerbook/internal/domain/entity"
	"github.com/sangkips/ledgerbook/internal/domain/enum"
	"github.com/sangkips/ledgerbook/internal/domain/ledger"
	"github.com/sangkips/ledgerbook/internal/domain/repository"
	"github.com/sangkips/ledgerbook/pkg/apperror"
)

// BalanceService adjusts a customer's outstanding balance
type BalanceService struct {
	customers repository.CustomerGateway
	log       *zap.Logger
}

// NewBalanceService creates a new balance service
func NewBalanceService(customers repository.CustomerGateway, log *zap.Logger) *BalanceService {
	return &BalanceService{customers: customers, log: log}
}

// AdjustInput represents a balance adjustment request
type AdjustInput struct {
	CustomerID string
	Mode       enum.AdjustmentMode
	Amount     *decimal.Decimal
}

// AdjustOutput pairs the submitted adjustment with the refreshed customer
type AdjustOutput struct {
	Adjustment *ledger.Adjustment `json:"adjustment"`
	// Customer is nil when the refetch after a successful adjustment failed
	Customer *entity.Customer `json:"customer"`
}

// Adjust plans the adjustment against the customer's current balance,
// submits it and returns the customer as the ledger API now reports it.
// Nothing is changed locally when any step fails.
func (s *BalanceService) Adjust(ctx context.Context, input *AdjustInput) (*AdjustOutput, error) {
	if strings.TrimSpace(input.CustomerID) == "" {
		return nil, apperror.NewBadRequestError("Invalid customer ID")
	}

	customer, err := s.customers.Get(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}

	adjustment, err := ledger.PlanAdjustment(input.Mode, customer.Balance, input.Amount)
	if err != nil {
		return nil, err
	}

	if err := s.customers.AdjustBalance(ctx, input.CustomerID, adjustment); err != nil {
		return nil, err
	}
	s.log.Info("balance adjusted",
		zap.String("customer_id", input.CustomerID),
		zap.Stringer("mode", adjustment.Mode),
		zap.String("new_balance", adjustment.NewBalance.StringFixed(2)),
	)

	out := &AdjustOutput{Adjustment: adjustment}
	updated, err := s.customers.Get(ctx, input.CustomerID)
	if err != nil {
		s.log.Warn("failed to refresh customer after adjustment",
			zap.String("customer_id", input.CustomerID),
			zap.Error(err),
		)
		return out, nil
	}
	out.Customer = updated
	return out, nil
}
