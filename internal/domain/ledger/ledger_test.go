package ledger

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/sangkips/ledgerbook/pkg/apperror"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	if !dec(want).Equal(got) {
		assert.Fail(t, fmt.Sprintf("want %s, got %s", want, got.String()), msgAndArgs...)
	}
}

func assertFieldError(t *testing.T, err error, field string) {
	t.Helper()
	if !assert.Error(t, err) {
		return
	}
	appErr := apperror.GetAppError(err)
	assert.True(t, apperror.IsValidation(err), "expected a validation error, got %v", err)
	if assert.NotEmpty(t, appErr.Errors) {
		assert.Equal(t, field, appErr.Errors[0].Field)
	}
}
