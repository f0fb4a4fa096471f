package request

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sangkips/ledgerbook/internal/domain/enum"
	"github.com/sangkips/ledgerbook/internal/domain/ledger"
)

// ItemRequest represents a line item add or edit
type ItemRequest struct {
	Name     string          `json:"name" binding:"required,max=255"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// ToInput converts the request into a ledger item
func (r *ItemRequest) ToInput() ledger.ItemInput {
	return ledger.ItemInput{Name: r.Name, Price: r.Price, Quantity: r.Quantity}
}

// PendingDetailsRequest edits the pending transaction's date and tax rate
type PendingDetailsRequest struct {
	Date          *Date            `json:"date"`
	TaxPercentage *decimal.Decimal `json:"tax_percentage"`
}

// ConfirmTransactionRequest confirms the pending transaction
type ConfirmTransactionRequest struct {
	AmountPaid *decimal.Decimal `json:"amount_paid"`
}

// AdjustBalanceRequest represents a balance adjustment. Amount is ignored
// when settling up.
type AdjustBalanceRequest struct {
	Mode   *enum.AdjustmentMode `json:"mode" binding:"required"`
	Amount *decimal.Decimal     `json:"amount"`
}

// PreferencesRequest updates standing preferences
type PreferencesRequest struct {
	Theme         *enum.Theme      `json:"theme"`
	TaxPercentage *decimal.Decimal `json:"tax_percentage"`
}

// Date accepts either a calendar date ("2006-01-02") or an RFC 3339 timestamp
type Date struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if t, err := time.ParseInLocation(time.DateOnly, s, time.Local); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}
