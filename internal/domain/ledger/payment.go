package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/sangkips/ledgerbook/internal/domain/entity"
	"github.com/sangkips/ledgerbook/pkg/apperror"
)

// ValidatePayment checks an amount paid against a transaction total: it is
// required, must be positive and may not exceed the total.
func ValidatePayment(total decimal.Decimal, amountPaid *decimal.Decimal) error {
	switch {
	case amountPaid == nil:
		return apperror.NewFieldError("amount_paid", "Amount paid is required")
	case !amountPaid.IsPositive():
		return apperror.NewFieldError("amount_paid", "Amount paid must be greater than zero")
	case amountPaid.GreaterThan(total):
		return apperror.NewFieldError("amount_paid", "Amount paid cannot exceed the total of "+total.StringFixed(2))
	}
	return nil
}

// Submission turns the snapshot into a creation request for customerID
func (p *Pending) Submission(customerID string, amountPaid *decimal.Decimal) (*entity.TransactionSubmission, error) {
	if customerID == "" {
		return nil, apperror.NewFieldError("customer_id", "Customer is required")
	}
	if p.IsEmpty() {
		return nil, apperror.NewFieldError("items", "Add at least one item")
	}
	if err := ValidatePayment(p.totals.Total, amountPaid); err != nil {
		return nil, err
	}

	return &entity.TransactionSubmission{
		CustomerID:    customerID,
		Date:          p.date,
		TaxPercentage: p.taxPercentage,
		AmountPaid:    *amountPaid,
		GrossPrice:    p.totals.Gross,
		TotalPrice:    p.totals.Total,
		Items:         p.Items(),
	}, nil
}
