package compile

import (
	"fmt"

	"github.com/roach88/cl1/internal/ir"
)

//go:generate mockgen -write_package_comment=false -package=$GOPACKAGE -destination=mock_encoder_test.go github.com/roach88/cl1/internal/compile Encoder

// Encoder lowers one executable instruction to its machine words. labels
// maps label names to instruction addresses. A shape mismatch in inst is the
// encoder's to report.
type Encoder interface {
	Encode(inst ir.Instruction, labels ir.LabelTable) ([]int, error)
}

// EncoderFunc adapts a plain function to Encoder.
type EncoderFunc func(inst ir.Instruction, labels ir.LabelTable) ([]int, error)

func (f EncoderFunc) Encode(inst ir.Instruction, labels ir.LabelTable) ([]int, error) {
	return f(inst, labels)
}

// Compile forwards inst and labels to enc and returns its result unchanged.
// A label definition fails with a *ir.UsageError and enc is not called.
func Compile(enc Encoder, inst ir.Instruction, labels ir.LabelTable) ([]int, error) {
	if inst.IsPointer() {
		return nil, &ir.UsageError{
			Op:      "Compile",
			Opcode:  ir.OpPointer,
			Message: "label definitions have no machine encoding",
		}
	}
	return enc.Encode(inst, labels)
}

// Program compiles every executable instruction of insts in order and skips
// label definitions. The first encoder failure stops compilation and is
// returned wrapped with the instruction's index.
func Program(enc Encoder, insts []ir.Instruction, labels ir.LabelTable) ([][]int, error) {
	out := make([][]int, 0, len(insts))
	for i, inst := range insts {
		if inst.IsPointer() {
			continue
		}
		words, err := Compile(enc, inst, labels)
		if err != nil {
			return nil, fmt.Errorf("instruction %d (%s): %w", i, inst.Opcode(), err)
		}
		out = append(out, words)
	}
	return out, nil
}
