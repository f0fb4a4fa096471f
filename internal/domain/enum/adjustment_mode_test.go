package enum

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdjustmentMode_JSON(t *testing.T) {
	tests := []struct {
		input string
		want  AdjustmentMode
	}{
		{`"settle-up"`, AdjustmentSettleUp},
		{`"balance-remaining"`, AdjustmentBalanceRemaining},
		{`"overpaying"`, AdjustmentOverpaying},
		{`2`, AdjustmentOverpaying},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var got AdjustmentMode
			require.NoError(t, json.Unmarshal([]byte(tt.input), &got))
			assert.Equal(t, tt.want, got)
		})
	}

	out, err := json.Marshal(AdjustmentBalanceRemaining)
	require.NoError(t, err)
	assert.JSONEq(t, `"balance-remaining"`, string(out))
}

func TestAdjustmentMode_RejectsUnknown(t *testing.T) {
	var m AdjustmentMode
	assert.Error(t, json.Unmarshal([]byte(`"refund"`), &m))
	assert.Error(t, json.Unmarshal([]byte(`7`), &m))
	assert.False(t, AdjustmentMode(-1).Valid())
	assert.Equal(t, "unknown", AdjustmentMode(9).String())
}

func TestAdjustmentMode_RequiresAmount(t *testing.T) {
	assert.False(t, AdjustmentSettleUp.RequiresAmount())
	assert.True(t, AdjustmentBalanceRemaining.RequiresAmount())
	assert.True(t, AdjustmentOverpaying.RequiresAmount())
}

func TestTheme_Valid(t *testing.T) {
	assert.True(t, ThemeDark.Valid())
	assert.True(t, ThemeSystem.Valid())
	assert.False(t, Theme("sepia").Valid())
}
