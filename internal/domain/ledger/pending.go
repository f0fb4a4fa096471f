package ledger

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sangkips/ledgerbook/internal/domain/entity"
	"github.com/sangkips/ledgerbook/pkg/apperror"
)

// Pending is one snapshot of the transaction being assembled for a customer.
// Snapshots are immutable: every edit returns a new Pending and leaves the
// receiver untouched, so a snapshot handed to a reader stays valid no matter
// what happens afterwards.
type Pending struct {
	items         []entity.LineItem
	date          time.Time
	taxPercentage decimal.Decimal
	totals        Totals
}

// ItemInput carries the user-editable fields of a line item
type ItemInput struct {
	Name     string
	Price    decimal.Decimal
	Quantity int
}

// Validate checks the item fields and reports every failing field
func (in ItemInput) Validate() error {
	var fieldErrors []apperror.FieldError
	if strings.TrimSpace(in.Name) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "Name is required"})
	}
	if !in.Price.IsPositive() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "price", Message: "Price must be greater than zero"})
	}
	if in.Quantity <= 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "quantity", Message: "Quantity must be greater than zero"})
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

// NewPending returns an empty pending transaction
func NewPending(date time.Time, taxPercentage decimal.Decimal) *Pending {
	return &Pending{
		date:          date,
		taxPercentage: taxPercentage,
		totals:        ComputeTotals(nil, taxPercentage),
	}
}

// Items returns a copy of the line items in insertion order
func (p *Pending) Items() []entity.LineItem {
	return cloneItems(p.items)
}

// Item looks up a line item by ID
func (p *Pending) Item(id uuid.UUID) (entity.LineItem, bool) {
	if i := p.indexOf(id); i >= 0 {
		return p.items[i], true
	}
	return entity.LineItem{}, false
}

func (p *Pending) Len() int                       { return len(p.items) }
func (p *Pending) IsEmpty() bool                  { return len(p.items) == 0 }
func (p *Pending) Date() time.Time                { return p.date }
func (p *Pending) TaxPercentage() decimal.Decimal { return p.taxPercentage }
func (p *Pending) Totals() Totals                 { return p.totals }

// AddItem appends a new line item with a fresh ID
func (p *Pending) AddItem(in ItemInput) (*Pending, entity.LineItem, error) {
	if err := in.Validate(); err != nil {
		return p, entity.LineItem{}, err
	}

	item := entity.LineItem{
		ID:       uuid.New(),
		Name:     strings.TrimSpace(in.Name),
		Price:    in.Price,
		Quantity: in.Quantity,
	}

	items := make([]entity.LineItem, len(p.items), len(p.items)+1)
	copy(items, p.items)
	items = append(items, item)

	return p.withItems(items), item, nil
}

// UpdateItem replaces the fields of the item with the given ID, keeping its
// position. An unknown ID is a no-op and reports found=false.
func (p *Pending) UpdateItem(id uuid.UUID, in ItemInput) (next *Pending, found bool, err error) {
	if err := in.Validate(); err != nil {
		return p, false, err
	}

	i := p.indexOf(id)
	if i < 0 {
		return p, false, nil
	}

	items := cloneItems(p.items)
	items[i].Name = strings.TrimSpace(in.Name)
	items[i].Price = in.Price
	items[i].Quantity = in.Quantity

	return p.withItems(items), true, nil
}

// DeleteItem removes the item with the given ID. An unknown ID is a no-op.
func (p *Pending) DeleteItem(id uuid.UUID) (*Pending, bool) {
	i := p.indexOf(id)
	if i < 0 {
		return p, false
	}

	items := make([]entity.LineItem, 0, len(p.items)-1)
	items = append(items, p.items[:i]...)
	items = append(items, p.items[i+1:]...)

	return p.withItems(items), true
}

// Without returns a copy lacking every item that also appears in submitted
func (p *Pending) Without(submitted *Pending) *Pending {
	gone := make(map[uuid.UUID]struct{}, len(submitted.items))
	for _, it := range submitted.items {
		gone[it.ID] = struct{}{}
	}

	items := make([]entity.LineItem, 0, len(p.items))
	for _, it := range p.items {
		if _, ok := gone[it.ID]; !ok {
			items = append(items, it)
		}
	}
	if len(items) == len(p.items) {
		return p
	}
	return p.withItems(items)
}

// WithDate returns a copy dated date. Totals carry over unchanged.
func (p *Pending) WithDate(date time.Time) (*Pending, error) {
	if date.IsZero() {
		return p, apperror.NewFieldError("date", "Date is required")
	}
	next := p.clone()
	next.date = date
	return next, nil
}

// WithTaxPercentage returns a copy under a new tax rate
func (p *Pending) WithTaxPercentage(taxPercentage decimal.Decimal) (*Pending, error) {
	if taxPercentage.IsNegative() {
		return p, apperror.NewFieldError("tax_percentage", "Tax percentage cannot be negative")
	}
	next := p.clone()
	next.taxPercentage = taxPercentage
	next.totals = ComputeTotals(next.items, taxPercentage)
	return next, nil
}

// Reset empties the items and dates the transaction now. The tax rate is a
// standing setting and survives.
func (p *Pending) Reset(now time.Time) *Pending {
	return NewPending(now, p.taxPercentage)
}

// MarshalJSON renders the snapshot together with its totals
func (p *Pending) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Items         []entity.LineItem `json:"items"`
		Date          time.Time         `json:"date"`
		TaxPercentage decimal.Decimal   `json:"tax_percentage"`
		Totals        Totals            `json:"totals"`
	}{
		Items:         p.Items(),
		Date:          p.date,
		TaxPercentage: p.taxPercentage,
		Totals:        p.totals,
	})
}

func (p *Pending) withItems(items []entity.LineItem) *Pending {
	return &Pending{
		items:         items,
		date:          p.date,
		taxPercentage: p.taxPercentage,
		totals:        ComputeTotals(items, p.taxPercentage),
	}
}

func (p *Pending) clone() *Pending {
	return &Pending{
		items:         cloneItems(p.items),
		date:          p.date,
		taxPercentage: p.taxPercentage,
		totals:        p.totals,
	}
}

func (p *Pending) indexOf(id uuid.UUID) int {
	for i := range p.items {
		if p.items[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneItems(items []entity.LineItem) []entity.LineItem {
	out := make([]entity.LineItem, len(items))
	copy(out, items)
	return out
}
