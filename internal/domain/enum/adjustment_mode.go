package enum

import (
	"encoding/json"
	"fmt"
)

// AdjustmentMode selects how a customer's outstanding balance is adjusted
type AdjustmentMode int

const (
	// AdjustmentSettleUp zeroes the balance
	AdjustmentSettleUp AdjustmentMode = iota
	// AdjustmentBalanceRemaining records a payment smaller than the balance
	AdjustmentBalanceRemaining
	// AdjustmentOverpaying records a payment larger than the balance, leaving a credit
	AdjustmentOverpaying
)

var adjustmentModeNames = [...]string{"settle-up", "balance-remaining", "overpaying"}

func (m AdjustmentMode) String() string {
	if m < 0 || int(m) >= len(adjustmentModeNames) {
		return "unknown"
	}
	return adjustmentModeNames[m]
}

// Valid reports whether m is one of the known modes
func (m AdjustmentMode) Valid() bool {
	return m >= AdjustmentSettleUp && m <= AdjustmentOverpaying
}

// RequiresAmount reports whether the mode needs an entered payment amount
func (m AdjustmentMode) RequiresAmount() bool {
	return m == AdjustmentBalanceRemaining || m == AdjustmentOverpaying
}

// ParseAdjustmentMode converts a mode name into an AdjustmentMode
func ParseAdjustmentMode(s string) (AdjustmentMode, error) {
	for i, name := range adjustmentModeNames {
		if name == s {
			return AdjustmentMode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown adjustment mode %q", s)
}

func (m AdjustmentMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *AdjustmentMode) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		if !AdjustmentMode(i).Valid() {
			return fmt.Errorf("unknown adjustment mode %d", i)
		}
		*m = AdjustmentMode(i)
		return nil
	}
	parsed, err := ParseAdjustmentMode(str)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
