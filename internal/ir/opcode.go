package ir

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Opcode selects an instruction's operation family.
type Opcode int

const (
	OpIf Opcode = iota
	OpInit
	OpCopy
	OpAdd
	OpCell
	OpPixel
	OpDevice
	OpMath
	// OpPointer marks a label definition. It is never executable.
	OpPointer
)

var opcodeNames = [...]string{
	OpIf:      "If",
	OpInit:    "Init",
	OpCopy:    "Copy",
	OpAdd:     "Add",
	OpCell:    "Cell",
	OpPixel:   "Pixel",
	OpDevice:  "Device",
	OpMath:    "Math",
	OpPointer: "Pointer",
}

// executableOpcodes is the fixed name table consulted by the line codec.
// Pointer is deliberately absent: labels are introduced by a leading colon.
var executableOpcodes = map[string]Opcode{
	"if":     OpIf,
	"init":   OpInit,
	"copy":   OpCopy,
	"add":    OpAdd,
	"cell":   OpCell,
	"pixel":  OpPixel,
	"device": OpDevice,
	"math":   OpMath,
}

// String returns the canonical opcode name ("If", "Init", ...).
func (o Opcode) String() string {
	if o < 0 || int(o) >= len(opcodeNames) {
		return fmt.Sprintf("Opcode(%d)", int(o))
	}
	return opcodeNames[o]
}

// Valid reports whether o is one of the declared opcodes.
func (o Opcode) Valid() bool {
	return o >= OpIf && o <= OpPointer
}

// ParseOpcode looks up an executable opcode by name, ignoring case.
func ParseOpcode(token string) (Opcode, bool) {
	op, ok := executableOpcodes[strings.ToLower(token)]
	return op, ok
}

// MarshalJSON encodes the opcode by name.
func (o Opcode) MarshalJSON() ([]byte, error) {
	if !o.Valid() {
		return nil, fmt.Errorf("invalid opcode %d", int(o))
	}
	return json.Marshal(o.String())
}

// UnmarshalJSON decodes an opcode name, including "Pointer".
func (o *Opcode) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	if strings.EqualFold(name, OpPointer.String()) {
		*o = OpPointer
		return nil
	}
	op, ok := ParseOpcode(name)
	if !ok {
		return fmt.Errorf("unknown opcode %q", name)
	}
	*o = op
	return nil
}
