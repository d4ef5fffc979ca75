package ir

import "fmt"

// Sub-operation tags stored as the leading Text argument.
const (
	TagJump          = "Jump"
	TagCall          = "Call"
	TagReturn        = "Return"
	TagCache         = "Cache"
	TagRaw           = "Raw"
	TagCoreWait      = "CoreWait"
	TagScreenUpdate  = "ScreenUpdate"
	TagLog           = "Log"
	TagRandom        = "R"
	TagIndirectRead  = "CC"
	TagIndirectWrite = "CW"
	TagSqrt          = "sqrt"
)

// LabelPrefix introduces a label definition on a source line.
const LabelPrefix = ":"

// WriteOnly is the cellToWrite value of a bare Pixel instruction that only
// draws and reads nothing back.
const WriteOnly = -1

// Lower converts a typed Op into its positional wire form. The argument
// count always equals the fixed arity of the variant.
func Lower(op Op) Instruction {
	switch o := op.(type) {
	case If:
		return NewInstruction(OpIf,
			Text(o.Cond), cellNum(o.Cell), Boolean(o.Operand.IsCell), Number(o.Operand.Value), Text(o.Target))
	case Init:
		return NewInstruction(OpInit, Number(o.Value), cellNum(o.Dst))
	case Copy:
		return NewInstruction(OpCopy, cellNum(o.Src), cellNum(o.Dst))
	case Add:
		return NewInstruction(OpAdd,
			cellNum(o.Cell), Boolean(o.Operand.IsCell), Number(o.Operand.Value), cellNum(o.Dst))
	case Jump:
		return NewInstruction(OpCell, Text(TagJump), targetValue(o.Target))
	case Call:
		return NewInstruction(OpCell, Text(TagCall), targetValue(o.Target))
	case Return:
		return NewInstruction(OpCell, Text(TagReturn))
	case CacheColorCell:
		return NewInstruction(OpPixel, Text(TagCache), cellNum(o.Cell))
	case CacheColorRaw:
		return NewInstruction(OpPixel, Text(TagCache), Text(TagRaw), cellNum(o.Raw))
	case CacheColor:
		return NewInstruction(OpPixel, Text(TagCache),
			Boolean(o.R.IsCell), Number(o.R.Value),
			Boolean(o.G.IsCell), Number(o.G.Value),
			Boolean(o.B.IsCell), Number(o.B.Value))
	case DrawPixel:
		return NewInstruction(OpPixel,
			Boolean(o.X.IsCell), Number(o.X.Value), Boolean(o.Y.IsCell), Number(o.Y.Value), cellNum(WriteOnly))
	case ReadPixel:
		return NewInstruction(OpPixel,
			Boolean(o.X.IsCell), Number(o.X.Value), Boolean(o.Y.IsCell), Number(o.Y.Value), cellNum(o.Dst))
	case CoreWait:
		return NewInstruction(OpDevice, Text(TagCoreWait), cellNum(o.Ticks))
	case ScreenUpdate:
		return NewInstruction(OpDevice, Text(TagScreenUpdate))
	case Log:
		return NewInstruction(OpDevice, Text(TagLog), Boolean(o.Operand.IsCell), Number(o.Operand.Value))
	case MathBinary:
		return NewInstruction(OpMath,
			Text(o.Operator), cellNum(o.Cell), Boolean(o.Operand.IsCell), Number(o.Operand.Value), cellNum(o.Dst))
	case Random:
		return NewInstruction(OpMath, Text(TagRandom), Number(o.Min), Number(o.Max), cellNum(o.Dst))
	case IndirectRead:
		return NewInstruction(OpMath, Text(TagIndirectRead), cellNum(o.Cell), cellNum(o.Dst))
	case IndirectWrite:
		return NewInstruction(OpMath, Text(TagIndirectWrite), cellNum(o.Cell), cellNum(o.Dst))
	case Sqrt:
		return NewInstruction(OpMath, Text(TagSqrt), cellNum(o.Cell), cellNum(o.Dst))
	default:
		panic(fmt.Sprintf("ir.Lower: unknown Op type %T", op))
	}
}

// LowerLabel converts a Label into a Pointer instruction whose stored text
// carries the leading colon, matching what the line decoder produces.
func LowerLabel(l Label) Instruction {
	return NewPointer(LabelPrefix + l.Name)
}

func cellNum(n int) Number {
	return Number(float64(n))
}

func targetValue(t Target) Value {
	if t.IsLabel() {
		return Text(t.Label)
	}
	return cellNum(t.Cell)
}
