package ir

import (
	"errors"
	"fmt"
)

// UsageError reports an operation applied to the wrong kind of instruction,
// such as compiling a label or asking a non-label for its pointer name.
type UsageError struct {
	Op      string // operation that was attempted
	Opcode  Opcode
	Message string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("%s on %s instruction: %s", e.Op, e.Opcode, e.Message)
}

// ShapeError reports an instruction whose argument vector does not match
// the fixed shape of its opcode. Index is -1 when the arity itself is wrong.
type ShapeError struct {
	Opcode  Opcode
	Index   int
	Message string
}

func (e *ShapeError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: %s", e.Opcode, e.Message)
	}
	return fmt.Sprintf("%s: args[%d]: %s", e.Opcode, e.Index, e.Message)
}

// IsUsageError returns true if err is or wraps a UsageError.
func IsUsageError(err error) bool {
	var ue *UsageError
	return errors.As(err, &ue)
}

// IsShapeError returns true if err is or wraps a ShapeError.
func IsShapeError(err error) bool {
	var se *ShapeError
	return errors.As(err, &se)
}

func arityError(op Opcode, got int, want string) *ShapeError {
	return &ShapeError{
		Opcode:  op,
		Index:   -1,
		Message: fmt.Sprintf("expected %s argument(s), got %d", want, got),
	}
}

func roleError(op Opcode, index int, role, want string, got Value) *ShapeError {
	return &ShapeError{
		Opcode:  op,
		Index:   index,
		Message: fmt.Sprintf("%s: want %s, got %s %q", role, want, ValueKind(got), tokenOf(got)),
	}
}

func tokenOf(v Value) string {
	if v == nil {
		return ""
	}
	return v.Token()
}
