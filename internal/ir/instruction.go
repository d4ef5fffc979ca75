package ir

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// LabelTable maps label names to resolved machine addresses.
// It is owned by the caller and only ever read by this module.
type LabelTable map[string]int

// Instruction is the positional wire form: an opcode plus a fixed-length
// argument vector. The vector is copied on construction and never exposed
// for mutation, so an Instruction is immutable and safe to share.
//
// The typed Op variants are the preferred in-memory model; Instruction is
// what the line codec reads and writes and what the external encoder consumes.
type Instruction struct {
	opcode Opcode
	args   []Value
}

// NewInstruction creates an instruction from an opcode and its arguments.
// No shape validation is performed; use Raise to check the shape.
func NewInstruction(op Opcode, args ...Value) Instruction {
	owned := make([]Value, len(args))
	copy(owned, args)
	return Instruction{opcode: op, args: owned}
}

// Opcode returns the instruction's opcode.
func (i Instruction) Opcode() Opcode {
	return i.opcode
}

// Len returns the number of arguments.
func (i Instruction) Len() int {
	return len(i.args)
}

// Arg returns the argument at index n. It panics if n is out of range.
func (i Instruction) Arg(n int) Value {
	return i.args[n]
}

// Args returns a copy of the argument vector.
func (i Instruction) Args() []Value {
	out := make([]Value, len(i.args))
	copy(out, i.args)
	return out
}

// IsPointer reports whether the instruction is a label definition.
func (i Instruction) IsPointer() bool {
	return i.opcode == OpPointer
}

// PointerName returns the stored label text of a Pointer instruction.
func (i Instruction) PointerName() (string, error) {
	if i.opcode != OpPointer {
		return "", &UsageError{
			Op:      "PointerName",
			Opcode:  i.opcode,
			Message: "instruction is not a pointer",
		}
	}
	if len(i.args) != 1 {
		return "", arityError(OpPointer, len(i.args), "1")
	}
	name, ok := i.args[0].(Text)
	if !ok {
		return "", roleError(OpPointer, 0, "name", "text", i.args[0])
	}
	return string(name), nil
}

// Equal reports whether both instructions have the same opcode and the
// same arguments, value for value.
func (i Instruction) Equal(other Instruction) bool {
	if i.opcode != other.opcode || len(i.args) != len(other.args) {
		return false
	}
	for n := range i.args {
		if i.args[n] != other.args[n] {
			return false
		}
	}
	return true
}

// String returns the textual line form. Pointer instructions render as
// their stored label text; everything else as the opcode name followed by
// each argument token, space separated.
func (i Instruction) String() string {
	if i.opcode == OpPointer {
		name, err := i.PointerName()
		if err != nil {
			return fmt.Sprintf("<invalid pointer: %v>", err)
		}
		return name
	}

	var sb strings.Builder
	sb.WriteString(i.opcode.String())
	for _, arg := range i.args {
		sb.WriteByte(' ')
		sb.WriteString(tokenOf(arg))
	}
	return sb.String()
}

// MarshalJSON produces {"opcode":"Add","args":[{"number":1},...]}.
func (i Instruction) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"opcode":`)
	opBytes, err := i.opcode.MarshalJSON()
	if err != nil {
		return nil, err
	}
	buf.Write(opBytes)

	buf.WriteString(`,"args":[`)
	for n, arg := range i.args {
		if n > 0 {
			buf.WriteByte(',')
		}
		argBytes, err := MarshalValue(arg)
		if err != nil {
			return nil, fmt.Errorf("args[%d]: %w", n, err)
		}
		buf.Write(argBytes)
	}
	buf.WriteString(`]}`)
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes the form produced by MarshalJSON.
func (i *Instruction) UnmarshalJSON(data []byte) error {
	var raw struct {
		Opcode *Opcode           `json:"opcode"`
		Args   []json.RawMessage `json:"args"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("instruction: %w", err)
	}
	if raw.Opcode == nil {
		return errors.New("instruction: missing opcode")
	}

	args := make([]Value, len(raw.Args))
	for n, body := range raw.Args {
		v, err := UnmarshalValue(body)
		if err != nil {
			return fmt.Errorf("instruction args[%d]: %w", n, err)
		}
		args[n] = v
	}
	*i = Instruction{opcode: *raw.Opcode, args: args}
	return nil
}
