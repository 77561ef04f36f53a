package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput matches every *InvalidInputError via errors.Is.
	ErrInvalidInput = errors.New("invalid input")
	// ErrFrontierLimit is wrapped by *LimitError when Config.MaxFrontier is exceeded.
	ErrFrontierLimit = errors.New("frontier limit exceeded")
	// ErrTimeBudget is wrapped by *LimitError when Config.TimeBudget runs out.
	ErrTimeBudget = errors.New("time budget exceeded")
)

// InvalidInputError reports a value that is not a non-negative base-10 integer.
type InvalidInputError struct {
	Input  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	if e.Input == "" {
		return fmt.Sprintf("invalid input: %s", e.Reason)
	}
	return fmt.Sprintf("invalid input %q: %s", e.Input, e.Reason)
}

func (e *InvalidInputError) Is(target error) bool { return target == ErrInvalidInput }

// LimitError reports which resource ceiling stopped a search and where.
type LimitError struct {
	Err      error
	Digit    int
	Frontier int
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("%v at %d digit(s) with %d candidate pair(s)", e.Err, e.Digit, e.Frontier)
}

func (e *LimitError) Unwrap() error { return e.Err }
