package dto

import (
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = time.DateOnly

// ParseDate parses a YYYY-MM-DD string into a UTC date.
func ParseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError("%s must be a date in YYYY-MM-DD format", field)
	}
	return domain.DateOf(t), nil
}

// ParseOptionalDate parses value when present and returns fallback otherwise.
func ParseOptionalDate(field string, value *string, fallback time.Time) (time.Time, error) {
	if value == nil || *value == "" {
		return fallback, nil
	}
	return ParseDate(field, *value)
}

// FormatDate renders a date for responses.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// ErrorResponse is the error body returned by every handler.
type ErrorResponse struct {
	Error string `json:"error"`
}
