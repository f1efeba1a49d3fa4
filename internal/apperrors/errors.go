package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the actor lacks the privilege for the requested action.
var ErrForbidden = errors.New("forbidden")

// ErrConflict indicates the resource is in a state that does not allow the action.
var ErrConflict = errors.New("conflict")

// ErrInternal is returned when an unexpected failure is hidden from the caller.
var ErrInternal = errors.New("internal error")

// Ledger error taxonomy.
var (
	ErrUnbalancedEntry     = errors.New("journal entry is unbalanced")
	ErrEmptyEntry          = errors.New("journal entry has no amounts")
	ErrAlreadyPosted       = errors.New("journal entry is already posted")
	ErrNotPosted           = errors.New("journal entry is not posted")
	ErrAlreadyReversed     = errors.New("journal entry is already reversed")
	ErrImmutableEntry      = errors.New("journal entry is immutable")
	ErrPeriodLocked        = errors.New("fiscal period is closed or locked")
	ErrConcurrencyConflict = errors.New("concurrent modification, retry the operation")
	// ErrDuplicateNumber is retried by the posting engine and never returned to callers.
	ErrDuplicateNumber = errors.New("entry number already allocated")
)

// AppError carries an HTTP-ish code and a message alongside the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError wraps ErrNotFound with a message.
func NewNotFoundError(message string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, message)
}

// NewValidationError wraps ErrValidation with a formatted message.
func NewValidationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NewImmutableEntryError reports an attempted mutation of a posted entry.
// The result matches both ErrImmutableEntry and ErrValidation.
func NewImmutableEntryError(entryID string) error {
	return fmt.Errorf("%w: %w: entry %s is posted", ErrImmutableEntry, ErrValidation, entryID)
}

// NewPeriodLockedError reports a write dated inside a closed or locked period.
func NewPeriodLockedError(tenantID string, date string) error {
	return fmt.Errorf("%w: tenant %s, date %s", ErrPeriodLocked, tenantID, date)
}

// IsLogicBug reports errors that signal an upstream caller tried to mutate financial truth.
func IsLogicBug(err error) bool {
	return errors.Is(err, ErrImmutableEntry) || errors.Is(err, ErrAlreadyPosted)
}

// HTTPStatus maps an error chain to the HTTP status used by the handlers.
func HTTPStatus(err error) int {
	var appErr *AppError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrImmutableEntry),
		errors.Is(err, ErrAlreadyPosted),
		errors.Is(err, ErrNotPosted),
		errors.Is(err, ErrAlreadyReversed),
		errors.Is(err, ErrPeriodLocked),
		errors.Is(err, ErrConcurrencyConflict),
		errors.Is(err, ErrDuplicate),
		errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrUnbalancedEntry),
		errors.Is(err, ErrEmptyEntry),
		errors.Is(err, ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.As(err, &appErr) && appErr.Code != 0:
		return appErr.Code
	default:
		return http.StatusInternalServerError
	}
}
