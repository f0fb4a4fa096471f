package remote

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"

	"github.com/sangkips/ledgerbook/pkg/apperror"
)

// codeEmailNotVerified is the machine code the ledger API sends when a login
// is refused until the account's email is confirmed
const codeEmailNotVerified = "EMAIL_NOT_VERIFIED"

// envelope is the body shape of every ledger API response
type envelope[T any] struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    T               `json:"data"`
	Errors  json.RawMessage `json:"errors,omitempty"`
	Code    string          `json:"code,omitempty"`
}

// fieldErrors accepts both [{field,message}] and {field: message}
func fieldErrors(raw json.RawMessage) []apperror.FieldError {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var list []apperror.FieldError
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}

	var byField map[string]string
	if err := json.Unmarshal(raw, &byField); err != nil {
		return nil
	}
	fields := make([]string, 0, len(byField))
	for field := range byField {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	list = make([]apperror.FieldError, 0, len(fields))
	for _, field := range fields {
		list = append(list, apperror.FieldError{Field: field, Message: byField[field]})
	}
	return list
}

// remoteError converts a failed ledger API response into an AppError. The
// server's message is kept verbatim.
func remoteError(status int, body *envelope[json.RawMessage], authed bool) *apperror.AppError {
	message := strings.TrimSpace(body.Message)

	switch {
	case body.Code == codeEmailNotVerified,
		status == http.StatusForbidden && strings.Contains(strings.ToLower(message), "not verified"):
		if message == "" {
			message = apperror.ErrEmailNotVerified.Message
		}
		return apperror.NewRemoteError(http.StatusForbidden, message, apperror.ReasonEmailNotVerified, nil)
	case status == http.StatusUnauthorized && authed:
		if message == "" {
			message = apperror.ErrTokenExpired.Message
		}
		return apperror.NewRemoteError(status, message, apperror.ReasonNoSession, nil)
	}

	if status < http.StatusBadRequest {
		// 2xx with success=false
		status = http.StatusBadRequest
	}
	return apperror.NewRemoteError(status, message, "", fieldErrors(body.Errors))
}
