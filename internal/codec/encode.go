package codec

import (
	"bufio"
	"fmt"
	"io"

	"github.com/roach88/cl1/internal/ir"
)

// Encode renders inst as a single line: the opcode name followed by each
// argument token, space separated. A Pointer renders as its stored label
// text exactly as held.
func Encode(inst ir.Instruction) string {
	return inst.String()
}

// EncodeStatement renders a typed statement. Labels render with the leading
// colon; Ops render through their positional form.
func EncodeStatement(stmt ir.Statement) (string, error) {
	switch s := stmt.(type) {
	case ir.Label:
		return ir.LabelPrefix + s.Name, nil
	case ir.Op:
		return Encode(ir.Lower(s)), nil
	default:
		return "", fmt.Errorf("codec: unknown statement type %T", stmt)
	}
}

// EncodeProgram writes one line per instruction.
func EncodeProgram(w io.Writer, insts []ir.Instruction) error {
	bw := bufio.NewWriter(w)
	for _, inst := range insts {
		if _, err := bw.WriteString(Encode(inst)); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
