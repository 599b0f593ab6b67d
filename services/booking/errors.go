package booking

import (
	"errors"
	"fmt"
)

// Error codes surfaced to handlers.
const (
	CodeValidation        = "validationError"
	CodeSlotConflict      = "slotConflictError"
	CodeInvalidTransition = "invalidTransitionError"
	CodeNotFound          = "notFoundError"
	CodeStoreUnavailable  = "storeUnavailableError"
)

type BookingError struct {
	Code    string
	Message string
}

func (e *BookingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewValidationError(msg string) error {
	return &BookingError{Code: CodeValidation, Message: msg}
}

func NewSlotConflictError(msg string) error {
	return &BookingError{Code: CodeSlotConflict, Message: msg}
}

func NewInvalidTransitionError(msg string) error {
	return &BookingError{Code: CodeInvalidTransition, Message: msg}
}

func NewNotFoundError(msg string) error {
	return &BookingError{Code: CodeNotFound, Message: msg}
}

func NewStoreUnavailableError(msg string) error {
	return &BookingError{Code: CodeStoreUnavailable, Message: msg}
}

// ErrorCode extracts the booking error code, or "" for unclassified errors.
func ErrorCode(err error) string {
	var be *BookingError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
