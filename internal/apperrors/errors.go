package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidQuantity indicates a negative or otherwise unusable quantity/amount.
var ErrInvalidQuantity = errors.New("invalid quantity")

// ErrInsufficientStock indicates a deduction larger than the on-hand quantity.
var ErrInsufficientStock = errors.New("insufficient stock")

// ErrAlreadyHandled indicates an order-status transition attempted from a
// terminal or wrong state. Retrying the same transition cannot succeed.
var ErrAlreadyHandled = errors.New("order already handled")

// ErrSyncInProgress indicates another reconciliation run holds the lock.
var ErrSyncInProgress = errors.New("reconciliation already in progress")

// AppError wraps infrastructure-level failures (store unavailable, bad SQL,
// transaction conflicts) with an HTTP-ish code and a human-readable message.
// Business-rule violations use the sentinel errors above instead.
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

// NewAppError creates an AppError with the given code, message and cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that unwraps to ErrNotFound so callers
// can keep using errors.Is(err, apperrors.ErrNotFound).
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
