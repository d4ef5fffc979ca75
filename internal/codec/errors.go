package codec

import (
	"errors"
	"fmt"
)

// ErrUnrecognizedOpcode is the sentinel wrapped by the default mapper.
var ErrUnrecognizedOpcode = errors.New("unrecognized opcode")

// UnrecognizedFunc maps an opcode token that is not in the name table to the
// caller's domain error. Decode returns whatever it produces.
type UnrecognizedFunc func(token string) error

// UnrecognizedOpcodeError is produced by the default mapper.
type UnrecognizedOpcodeError struct {
	Token string
}

func (e *UnrecognizedOpcodeError) Error() string {
	return fmt.Sprintf("%v: %q", ErrUnrecognizedOpcode, e.Token)
}

func (e *UnrecognizedOpcodeError) Unwrap() error {
	return ErrUnrecognizedOpcode
}

// DefaultUnrecognized is used when no mapper is supplied.
func DefaultUnrecognized(token string) error {
	return &UnrecognizedOpcodeError{Token: token}
}

// LineError attaches a 1-based source line number to a decode failure.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}
