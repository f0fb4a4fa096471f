package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer is a person or business with a running balance on the remote ledger.
// Balance is positive when the customer owes money, negative when they have
// overpaid and zero when settled.
type Customer struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Phone     string          `json:"phone"`
	Address   *string         `json:"address,omitempty"`
	Balance   decimal.Decimal `json:"total_balance"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// IsSettled reports whether the customer owes nothing and is owed nothing
func (c *Customer) IsSettled() bool {
	return c.Balance.IsZero()
}

// CustomerInput holds the editable fields of a customer
type CustomerInput struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   string  `json:"phone"`
	Address *string `json:"address"`
}
