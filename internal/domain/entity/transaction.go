package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineItem is one product, price and quantity within a transaction
type LineItem struct {
	ID       uuid.UUID       `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// Amount returns price times quantity
func (i LineItem) Amount() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Transaction is a submitted, server-confirmed order. It is never edited
// after creation.
type Transaction struct {
	ID            string          `json:"id"`
	CustomerID    string          `json:"customer_id"`
	Items         []LineItem      `json:"items"`
	GrossPrice    decimal.Decimal `json:"gross_price"`
	TaxPercentage decimal.Decimal `json:"tax_percentage"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	BalanceAmount decimal.Decimal `json:"balance_amount"`
	Date          time.Time       `json:"date"`
	CreatedAt     time.Time       `json:"created_at"`
}

// TransactionSubmission is the creation request for a new transaction
type TransactionSubmission struct {
	CustomerID    string          `json:"-"`
	Date          time.Time       `json:"date"`
	TaxPercentage decimal.Decimal `json:"tax_percentage"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	GrossPrice    decimal.Decimal `json:"gross_price"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	Items         []LineItem      `json:"items"`
}
