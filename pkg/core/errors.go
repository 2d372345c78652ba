/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: errors.go
Description: Error taxonomy shared by distributions, queries and the inference engine.
All failures are returned to the immediate caller and matched with errors.Is.
*/

package core

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument reports out-of-domain input (variable counts, probabilities, binary values)
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrOutOfRange reports index access beyond valid bounds
	ErrOutOfRange = errors.New("out of range")
	// ErrDuplicateVariable reports a variable declared twice in a query
	ErrDuplicateVariable = errors.New("duplicate variable")
	// ErrDegenerateState reports normalization of an all-zero table
	ErrDegenerateState = errors.New("degenerate state")
	// ErrStateSpaceTooLarge reports an operation that needs dense enumeration above DenseLimit
	ErrStateSpaceTooLarge = errors.New("state space too large")

	// Table format failures
	ErrIO                 = errors.New("io error")
	ErrFormat             = errors.New("format error")
	ErrInconsistentLength = errors.New("inconsistent bitstring length")
	ErrEmptyFile          = errors.New("empty file")
)

// LineError locates a table format failure on a 1-based line
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// ValidateVariableCount checks that n lies in [MinVariables, MaxVariables]
func ValidateVariableCount(n int) error {
	if n < MinVariables || n > MaxVariables {
		return fmt.Errorf("%w: variable count must be between %d and %d, got %d",
			ErrInvalidArgument, MinVariables, MaxVariables, n)
	}
	return nil
}
