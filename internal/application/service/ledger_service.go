package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sangkips/ledgerbook/internal/domain/entity"
	"github.com/sangkips/ledgerbook/internal/domain/ledger"
	"github.com/sangkips/ledgerbook/internal/domain/repository"
)

// LedgerService drives the pending transaction: item edits, details and
// confirmation against the ledger API
type LedgerService struct {
	store        *ledger.PendingStore
	transactions repository.TransactionGateway
	customers    repository.CustomerGateway
	prefs        *PreferencesService
	log          *zap.Logger
}

// NewLedgerService creates a new ledger service
func NewLedgerService(
	store *ledger.PendingStore,
	transactions repository.TransactionGateway,
	customers repository.CustomerGateway,
	prefs *PreferencesService,
	log *zap.Logger,
) *LedgerService {
	return &LedgerService{
		store:        store,
		transactions: transactions,
		customers:    customers,
		prefs:        prefs,
		log:          log,
	}
}

// Pending returns the current pending transaction
func (s *LedgerService) Pending() *ledger.Pending {
	return s.store.Snapshot()
}

// AddItem appends a line item
func (s *LedgerService) AddItem(input ledger.ItemInput) (*ledger.Pending, entity.LineItem, error) {
	var added entity.LineItem
	pending, err := s.store.Update(func(p *ledger.Pending) (*ledger.Pending, error) {
		next, item, err := p.AddItem(input)
		added = item
		return next, err
	})
	return pending, added, err
}

// UpdateItem edits a line item in place. An unknown ID leaves the pending
// transaction as it is.
func (s *LedgerService) UpdateItem(id uuid.UUID, input ledger.ItemInput) (*ledger.Pending, error) {
	return s.store.Update(func(p *ledger.Pending) (*ledger.Pending, error) {
		next, _, err := p.UpdateItem(id, input)
		return next, err
	})
}

// DeleteItem removes a line item. An unknown ID is ignored.
func (s *LedgerService) DeleteItem(id uuid.UUID) *ledger.Pending {
	pending, _ := s.store.Update(func(p *ledger.Pending) (*ledger.Pending, error) {
		next, _ := p.DeleteItem(id)
		return next, nil
	})
	return pending
}

// EditDetailsInput changes the date and/or tax rate. Nil fields are kept.
type EditDetailsInput struct {
	Date          *time.Time
	TaxPercentage *decimal.Decimal
}

// EditDetails applies both edits together or neither. A new tax rate also
// becomes the standing default.
func (s *LedgerService) EditDetails(ctx context.Context, input *EditDetailsInput) (*ledger.Pending, error) {
	pending, err := s.store.Update(func(p *ledger.Pending) (*ledger.Pending, error) {
		next := p
		if input.Date != nil {
			var err error
			if next, err = next.WithDate(*input.Date); err != nil {
				return nil, err
			}
		}
		if input.TaxPercentage != nil {
			var err error
			if next, err = next.WithTaxPercentage(*input.TaxPercentage); err != nil {
				return nil, err
			}
		}
		return next, nil
	})
	if err != nil {
		return pending, err
	}

	if input.TaxPercentage != nil {
		if err := s.prefs.SetTaxPercentage(ctx, *input.TaxPercentage); err != nil {
			s.log.Warn("failed to save tax percentage preference", zap.Error(err))
		}
	}
	return pending, nil
}

// Discard clears the pending transaction
func (s *LedgerService) Discard() *ledger.Pending {
	return s.store.Reset()
}

// ConfirmOutput is the result of a confirmed transaction
type ConfirmOutput struct {
	Transaction *entity.Transaction `json:"transaction"`
	// Customer is nil when the refetch after a successful submission failed
	Customer *entity.Customer `json:"customer"`
	Pending  *ledger.Pending  `json:"pending"`
}

// Confirm submits the pending transaction for customerID. Only one
// confirmation runs at a time; a second one fails with
// apperror.ErrSubmitInProgress. A successful submission clears the submitted
// items, keeps anything added meanwhile and triggers the customer refetch.
// On failure everything stays in place for a retry.
func (s *LedgerService) Confirm(ctx context.Context, customerID string, amountPaid *decimal.Decimal) (*ConfirmOutput, error) {
	snapshot, err := s.store.BeginSubmit()
	if err != nil {
		return nil, err
	}

	submission, err := snapshot.Submission(customerID, amountPaid)
	if err != nil {
		s.store.EndSubmit(snapshot, false)
		return nil, err
	}

	created, err := s.transactions.Create(ctx, submission)
	if err != nil {
		s.store.EndSubmit(snapshot, false)
		s.log.Info("transaction submission failed",
			zap.String("customer_id", customerID),
			zap.Error(err),
		)
		return nil, err
	}

	pending := s.store.EndSubmit(snapshot, true)
	s.log.Info("transaction confirmed",
		zap.String("customer_id", customerID),
		zap.String("transaction_id", created.ID),
		zap.String("total", submission.TotalPrice.StringFixed(2)),
	)

	out := &ConfirmOutput{Transaction: created, Pending: pending}
	customer, err := s.customers.Get(ctx, customerID)
	if err != nil {
		s.log.Warn("failed to refresh customer after confirmation",
			zap.String("customer_id", customerID),
			zap.Error(err),
		)
		return out, nil
	}
	out.Customer = customer
	return out, nil
}
