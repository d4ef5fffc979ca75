package ir

import "fmt"

// Build normalizes op and lowers it to the positional wire form.
// Every New* constructor below goes through Build, so the argument count of
// a constructed Instruction always matches the fixed shape of its variant.
func Build(op Op) Instruction {
	return Lower(Normalize(op))
}

// NewIf jumps to target when cell[cell1] <cond> (isCell ? cell[val2] : val2).
func NewIf(cond string, cell1 int, isCell bool, val2 float64, target string) Instruction {
	return Build(If{Cond: cond, Cell: cell1, Operand: Operand{IsCell: isCell, Value: val2}, Target: target})
}

// NewInit writes a literal into cellToWrite.
func NewInit(value float64, cellToWrite int) Instruction {
	return Build(Init{Value: value, Dst: cellToWrite})
}

// NewCopy copies cell into cellToWrite. It panics if cellToWrite is negative.
func NewCopy(cell, cellToWrite int) Instruction {
	if cellToWrite < 0 {
		panic(fmt.Sprintf("ir.NewCopy: negative cellToWrite %d", cellToWrite))
	}
	return Build(Copy{Src: cell, Dst: cellToWrite})
}

// NewAdd computes cell[cellToWrite] = cell[cell1] + (isCell ? cell[val2] : val2).
func NewAdd(cell1 int, isCell bool, val2 float64, cellToWrite int) Instruction {
	return Build(Add{Cell: cell1, Operand: Operand{IsCell: isCell, Value: val2}, Dst: cellToWrite})
}

func NewCellJump(cell int) Instruction {
	return Build(Jump{Target: CellTarget(cell)})
}

// NewCellJumpLabel jumps to label. It panics if label is empty.
func NewCellJumpLabel(label string) Instruction {
	return Build(Jump{Target: mustLabelTarget("NewCellJumpLabel", label)})
}

func NewCellCall(cell int) Instruction {
	return Build(Call{Target: CellTarget(cell)})
}

// NewCellCallLabel calls label. It panics if label is empty.
func NewCellCallLabel(label string) Instruction {
	return Build(Call{Target: mustLabelTarget("NewCellCallLabel", label)})
}

// mustLabelTarget rejects an empty name, which would otherwise read as a
// cell target.
func mustLabelTarget(fn, label string) Target {
	if label == "" {
		panic("ir." + fn + ": empty label")
	}
	return LabelTarget(label)
}

func NewCellReturn() Instruction {
	return Build(Return{})
}

// NewPixelCache caches a draw color from three components. When none of the
// components reads a cell, the result is the packed raw form produced by
// NewPixelCacheRaw instead of the seven-argument form.
func NewPixelCache(isCell1 bool, val1 float64, isCell2 bool, val2 float64, isCell3 bool, val3 float64) Instruction {
	return Build(CacheColor{
		R: Operand{IsCell: isCell1, Value: val1},
		G: Operand{IsCell: isCell2, Value: val2},
		B: Operand{IsCell: isCell3, Value: val3},
	})
}

func NewPixelCacheRaw(raw int) Instruction {
	return Build(CacheColorRaw{Raw: raw})
}

func NewPixelCacheCell(cell int) Instruction {
	return Build(CacheColorCell{Cell: cell})
}

// NewPixel draws the cached color at (x, y) without reading anything back.
func NewPixel(isCellX bool, x float64, isCellY bool, y float64) Instruction {
	return Build(DrawPixel{X: Operand{IsCell: isCellX, Value: x}, Y: Operand{IsCell: isCellY, Value: y}})
}

// NewPixelGet reads the color at (x, y) into cellToWrite.
func NewPixelGet(isCellX bool, x float64, isCellY bool, y float64, cellToWrite int) Instruction {
	return Build(ReadPixel{
		X:   Operand{IsCell: isCellX, Value: x},
		Y:   Operand{IsCell: isCellY, Value: y},
		Dst: cellToWrite,
	})
}

func NewDeviceWait(ticks int) Instruction {
	return Build(CoreWait{Ticks: ticks})
}

func NewDeviceScreenUpdate() Instruction {
	return Build(ScreenUpdate{})
}

func NewDeviceLog(isCell bool, val float64) Instruction {
	return Build(Log{Operand: Operand{IsCell: isCell, Value: val}})
}

// NewMath applies a binary operator. The "+" operator yields an Add.
func NewMath(operator string, cell1 int, isCell bool, val2 float64, cellToWrite int) Instruction {
	return Build(MathBinary{
		Operator: operator,
		Cell:     cell1,
		Operand:  Operand{IsCell: isCell, Value: val2},
		Dst:      cellToWrite,
	})
}

// NewMathRune is NewMath for single-character operators.
func NewMathRune(operator rune, cell1 int, isCell bool, val2 float64, cellToWrite int) Instruction {
	return NewMath(string(operator), cell1, isCell, val2, cellToWrite)
}

// NewMathRandom writes a random value in [min, max] into cellToWrite.
func NewMathRandom(min, max float64, cellToWrite int) Instruction {
	return Build(Random{Min: min, Max: max, Dst: cellToWrite})
}

// NewMathCC computes cell[cellToWrite] = cell[cell[cell1]].
func NewMathCC(cell1, cellToWrite int) Instruction {
	return Build(IndirectRead{Cell: cell1, Dst: cellToWrite})
}

// NewMathCW computes cell[cell[cellToWrite]] = cell[cell1].
func NewMathCW(cell1, cellToWrite int) Instruction {
	return Build(IndirectWrite{Cell: cell1, Dst: cellToWrite})
}

func NewMathSqrt(cell1, cellToWrite int) Instruction {
	return Build(Sqrt{Cell: cell1, Dst: cellToWrite})
}

// NewPointer creates a label definition holding name verbatim.
func NewPointer(name string) Instruction {
	return NewInstruction(OpPointer, Text(name))
}
