package store

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/roach88/cl1/internal/ir"
)

// marshalInstruction converts an instruction to JSON TEXT for storage.
// HTML escaping is disabled so operators such as "<" stay readable in the
// database.
func marshalInstruction(inst ir.Instruction) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(inst); err != nil {
		return "", fmt.Errorf("marshal instruction: %w", err)
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

// unmarshalInstruction parses JSON TEXT produced by marshalInstruction.
func unmarshalInstruction(data string) (ir.Instruction, error) {
	var inst ir.Instruction
	if err := json.Unmarshal([]byte(data), &inst); err != nil {
		return ir.Instruction{}, fmt.Errorf("unmarshal instruction: %w", err)
	}
	return inst, nil
}
