package khata

import (
	"errors"
	"fmt"
)

// Sentinel errors for the operation boundary. Callers classify failures with
// errors.Is and map them to a user-visible category (not-found, bad-request,
// server-error).
var (
	// ErrUserNotFound is returned when the named user has no profile document.
	ErrUserNotFound = errors.New("user not found")
	// ErrTxnNotFound is returned when deleting a transaction id that is not in the list.
	ErrTxnNotFound = errors.New("transaction not found")
	// ErrAlreadyExists is returned when creating a user whose storage location is taken.
	ErrAlreadyExists = errors.New("user already exists")
	// ErrEmptyNote is returned when a note's content is empty or whitespace-only.
	ErrEmptyNote = errors.New("note content is required")
)

// ValidationError reports a request field that failed validation before any
// write took place.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
