package vocab

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by every layer. Callers classify with errors.Is.
var (
	ErrUnauthorized  = errors.New("unauthorized")
	ErrInvalidInput  = errors.New("invalid input")
	ErrDuplicateName = errors.New("duplicate name")
	ErrNotFound      = errors.New("not found")
	ErrUpstream      = errors.New("upstream failure")
)

func invalid(msg string) error {
	return fmt.Errorf("%s: %w", msg, ErrInvalidInput)
}

// Invalid wraps msg as an ErrInvalidInput.
func Invalid(format string, args ...any) error {
	return invalid(fmt.Sprintf(format, args...))
}

// Kind returns the taxonomy sentinel err belongs to, or ErrUpstream for
// anything unclassified.
func Kind(err error) error {
	for _, kind := range []error{ErrUnauthorized, ErrInvalidInput, ErrDuplicateName, ErrNotFound} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return ErrUpstream
}
