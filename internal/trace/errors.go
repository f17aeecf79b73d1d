package trace

import (
	"errors"
	"fmt"
)

var (
	// ErrDecode is returned when a scenario is not valid YAML or has unknown fields.
	ErrDecode = errors.New("trace: failed to decode scenario")

	// ErrUnknownOp is returned for a step with an unsupported operation.
	ErrUnknownOp = errors.New("trace: unknown operation")

	// ErrInvalidStep is returned for a step missing required arguments.
	ErrInvalidStep = errors.New("trace: invalid step")

	// ErrMismatch is returned when an expectation does not hold.
	ErrMismatch = errors.New("trace: expectation mismatch")
)

// MismatchError describes the first failed expectation of a replay.
type MismatchError struct {
	Op    string
	Field string
	Want  string
	Got   string
	Step  int
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("trace: step %d (%s): %s: want %s, got %s", e.Step, e.Op, e.Field, e.Want, e.Got)
}

func (e *MismatchError) Is(target error) bool {
	return target == ErrMismatch
}
