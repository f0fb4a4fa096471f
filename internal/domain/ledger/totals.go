package ledger

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/sangkips/ledgerbook/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// Totals are the derived amounts of a set of line items under a tax rate
type Totals struct {
	Gross decimal.Decimal
	Tax   decimal.Decimal
	Total decimal.Decimal
}

// ComputeTotals returns gross = sum(price * quantity), tax = gross * rate / 100
// and total = gross + tax. No items yields all zeros for any rate.
func ComputeTotals(items []entity.LineItem, taxPercentage decimal.Decimal) Totals {
	gross := decimal.Zero
	for _, item := range items {
		gross = gross.Add(item.Amount())
	}
	tax := gross.Mul(taxPercentage).Div(hundred)

	return Totals{
		Gross: gross,
		Tax:   tax,
		Total: gross.Add(tax),
	}
}

// MarshalJSON reports amounts rounded to cents
func (t Totals) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Gross decimal.Decimal `json:"gross"`
		Tax   decimal.Decimal `json:"tax"`
		Total decimal.Decimal `json:"total"`
	}{
		Gross: t.Gross.Round(2),
		Tax:   t.Tax.Round(2),
		Total: t.Total.Round(2),
	})
}
