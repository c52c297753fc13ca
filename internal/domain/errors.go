package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates a referenced task, timeline or user does not exist.
var ErrNotFound = errors.New("not found")

// ValidationError reports malformed input on a single field. It aborts only
// the offending unit of work; batch operations collect these per item.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Msg)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
