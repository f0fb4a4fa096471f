package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/sangkips/ledgerbook/internal/domain/enum"
	"github.com/sangkips/ledgerbook/pkg/apperror"
)

// Epsilon separates the ranges of the adjustment modes. An amount within
// Epsilon of the current balance belongs to settle-up, not to a partial
// payment or an overpayment.
var Epsilon = decimal.New(1, -4)

// Adjustment is a validated balance change ready to be submitted
type Adjustment struct {
	Mode           enum.AdjustmentMode `json:"mode"`
	CurrentBalance decimal.Decimal     `json:"-"`
	AmountPaid     decimal.Decimal     `json:"amount_paid"`
	NewBalance     decimal.Decimal     `json:"balance"`
}

// PlanAdjustment validates amount for mode against the customer's current
// balance and computes the balance to request.
//
// settle-up ignores amount and requests zero; amount_paid is the size of the
// balance cleared, positive even when the customer was in credit. balance-remaining accepts
// 0 < amount <= current-Epsilon and overpaying accepts amount >= current+Epsilon;
// both request current-amount, which is negative for an overpayment.
func PlanAdjustment(mode enum.AdjustmentMode, current decimal.Decimal, amount *decimal.Decimal) (*Adjustment, error) {
	if !mode.Valid() {
		return nil, apperror.NewFieldError("mode", "Choose how the balance should be adjusted")
	}

	if mode == enum.AdjustmentSettleUp {
		if current.IsZero() {
			return nil, apperror.NewFieldError("mode", "Balance is already settled")
		}
		return &Adjustment{
			Mode:           mode,
			CurrentBalance: current,
			AmountPaid:     current.Abs(),
			NewBalance:     decimal.Zero,
		}, nil
	}

	if amount == nil {
		return nil, apperror.NewFieldError("amount", "Amount is required")
	}
	if !amount.IsPositive() {
		return nil, apperror.NewFieldError("amount", "Amount must be greater than zero")
	}

	switch mode {
	case enum.AdjustmentBalanceRemaining:
		if amount.GreaterThan(current.Sub(Epsilon)) {
			return nil, apperror.NewFieldError("amount", "Amount must be less than the balance of "+current.StringFixed(2))
		}
	case enum.AdjustmentOverpaying:
		if amount.LessThan(current.Add(Epsilon)) {
			return nil, apperror.NewFieldError("amount", "Amount must be more than the balance of "+current.StringFixed(2))
		}
	}

	return &Adjustment{
		Mode:           mode,
		CurrentBalance: current,
		AmountPaid:     *amount,
		NewBalance:     current.Sub(*amount),
	}, nil
}
