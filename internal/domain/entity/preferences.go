package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sangkips/ledgerbook/internal/domain/enum"
)

// PreferencesRowID is the primary key of the one preferences row
const PreferencesRowID uint = 1

// Preferences holds standing settings that survive restarts: the display
// theme and the tax percentage new pending transactions start with.
type Preferences struct {
	ID            uint            `gorm:"primaryKey" json:"-"`
	Theme         enum.Theme      `gorm:"size:20;not null;default:'system'" json:"theme"`
	TaxPercentage decimal.Decimal `gorm:"type:decimal(7,4);not null;default:0" json:"tax_percentage"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// BeforeCreate pins the row to the singleton ID
func (p *Preferences) BeforeCreate(tx *gorm.DB) error {
	p.ID = PreferencesRowID
	return nil
}

// TableName returns the table name for the Preferences model
func (Preferences) TableName() string {
	return "preferences"
}
