package service

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/sangkips/ledgerbook/pkg/apperror"
	"github.com/sangkips/ledgerbook/pkg/utils"
)

var validate = validator.New()

// fieldChecker collects field errors so a form reports every problem at once
type fieldChecker struct {
	errors []apperror.FieldError
}

func (f *fieldChecker) add(field, message string) {
	f.errors = append(f.errors, apperror.FieldError{Field: field, Message: message})
}

func (f *fieldChecker) required(field, value, message string) bool {
	if strings.TrimSpace(value) == "" {
		f.add(field, message)
		return false
	}
	return true
}

// email and phone judge the trimmed value, the form the services send on
func (f *fieldChecker) email(field, value string) {
	value = strings.TrimSpace(value)
	if !f.required(field, value, "Email is required") {
		return
	}
	if err := validate.Var(value, "email"); err != nil {
		f.add(field, "Enter a valid email address")
	}
}

func (f *fieldChecker) phone(field, value string) {
	value = strings.TrimSpace(value)
	if !f.required(field, value, "Phone number is required") {
		return
	}
	if !utils.IsPhoneNumber(value) {
		f.add(field, "Phone number must be exactly 10 digits")
	}
}

func (f *fieldChecker) err() error {
	if len(f.errors) == 0 {
		return nil
	}
	return apperror.NewValidationError(f.errors)
}
