package crypto

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidLength   = errors.New("password length out of bounds")
	ErrNoCategories    = errors.New("at least one character category must be enabled")
	ErrInvalidAttempts = errors.New("maximum attempts must be at least 1")
	ErrExhausted       = errors.New("failed to generate a valid password")
)

// LengthError reports a requested length outside the configured bounds.
type LengthError struct {
	Length int
	Min    int
	Max    int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("password length %d must be between %d and %d", e.Length, e.Min, e.Max)
}

func (e *LengthError) Unwrap() error { return ErrInvalidLength }

// ExhaustedError reports that no valid candidate was produced within the attempt budget.
type ExhaustedError struct {
	Attempts int
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("failed to generate a valid password after %d attempts", e.Attempts)
}

func (e *ExhaustedError) Unwrap() error { return ErrExhausted }

// IsConfigError reports whether err was caused by the settings rather than by chance.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrInvalidLength) ||
		errors.Is(err, ErrNoCategories) ||
		errors.Is(err, ErrInvalidAttempts)
}
