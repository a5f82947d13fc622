package orders

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientStock aborts the whole placement; nothing persists.
	ErrInsufficientStock = errors.New("insufficient stock")

	ErrNotFound = errors.New("order not found")

	// ErrInvalidStatusTransition rejects moves outside the status graph.
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)

// ValidationError covers malformed requests: missing customer details,
// empty item lists, bad quantities or prices. No side effects occur.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func validationf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a request validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
