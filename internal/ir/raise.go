package ir

import (
	"fmt"
	"strings"
)

// Raise validates the positional form of inst against the fixed shape of its
// opcode and returns the typed variant. It fails with a *ShapeError naming the
// first offending position. Pointer instructions are labels, not Ops, and
// fail with a *UsageError; use RaiseStatement to accept both.
func Raise(inst Instruction) (Op, error) {
	r := &argReader{op: inst.opcode, args: inst.args}

	var op Op
	switch inst.opcode {
	case OpPointer:
		return nil, &UsageError{
			Op:      "Raise",
			Opcode:  OpPointer,
			Message: "a label definition is not an executable instruction",
		}
	case OpIf:
		if !r.arity("5", 5) {
			break
		}
		op = If{
			Cond:    r.symbol(0, "op"),
			Cell:    r.cell(1, "cell1"),
			Operand: r.operand(2, "isCell2", "val2"),
			Target:  r.symbol(4, "target"),
		}
	case OpInit:
		if !r.arity("2", 2) {
			break
		}
		op = Init{Value: r.number(0, "value"), Dst: r.cell(1, "cellToWrite")}
	case OpCopy:
		if !r.arity("2", 2) {
			break
		}
		c := Copy{Src: r.cell(0, "cell"), Dst: r.cell(1, "cellToWrite")}
		if r.err == nil && c.Dst < 0 {
			r.fail(1, "cellToWrite must not be negative")
		}
		op = c
	case OpAdd:
		if !r.arity("4", 4) {
			break
		}
		op = Add{
			Cell:    r.cell(0, "cell1"),
			Operand: r.operand(1, "isCell2", "val2"),
			Dst:     r.cell(3, "cellToWrite"),
		}
	case OpCell:
		op = raiseCell(r)
	case OpPixel:
		op = raisePixel(r)
	case OpDevice:
		op = raiseDevice(r)
	case OpMath:
		op = raiseMath(r)
	default:
		return nil, &ShapeError{Opcode: inst.opcode, Index: -1, Message: "unknown opcode"}
	}

	if r.err != nil {
		return nil, r.err
	}
	return op, nil
}

// RaiseStatement is Raise extended to label definitions: a Pointer
// instruction becomes a Label with any leading colon removed.
func RaiseStatement(inst Instruction) (Statement, error) {
	if inst.opcode == OpPointer {
		name, err := inst.PointerName()
		if err != nil {
			return nil, err
		}
		name = strings.TrimPrefix(name, LabelPrefix)
		if name == "" {
			return nil, &ShapeError{Opcode: OpPointer, Index: 0, Message: "label name is empty"}
		}
		return Label{Name: name}, nil
	}
	return Raise(inst)
}

func raiseCell(r *argReader) Op {
	if !r.atLeast("1 or 2", 1) {
		return nil
	}
	switch tag := r.text(0, "tag"); tag {
	case TagReturn:
		if r.arity("1", 1) {
			return Return{}
		}
	case TagJump, TagCall:
		if !r.arity("2", 2) {
			return nil
		}
		t := r.target(1, "target")
		if tag == TagJump {
			return Jump{Target: t}
		}
		return Call{Target: t}
	default:
		r.unknownTag(tag)
	}
	return nil
}

func raisePixel(r *argReader) Op {
	switch len(r.args) {
	case 2:
		r.tag(0, TagCache)
		return CacheColorCell{Cell: r.cell(1, "cell")}
	case 3:
		r.tag(0, TagCache)
		r.tag(1, TagRaw)
		return CacheColorRaw{Raw: r.cell(2, "raw")}
	case 5:
		x := r.operand(0, "isCellX", "x")
		y := r.operand(2, "isCellY", "y")
		dst := r.cell(4, "cellToWrite")
		if dst == WriteOnly {
			return DrawPixel{X: x, Y: y}
		}
		return ReadPixel{X: x, Y: y, Dst: dst}
	case 7:
		r.tag(0, TagCache)
		return CacheColor{
			R: r.operand(1, "isCell1", "val1"),
			G: r.operand(3, "isCell2", "val2"),
			B: r.operand(5, "isCell3", "val3"),
		}
	default:
		r.arity("2, 3, 5 or 7", -1)
		return nil
	}
}

func raiseDevice(r *argReader) Op {
	if !r.atLeast("1 to 3", 1) {
		return nil
	}
	switch tag := r.text(0, "tag"); tag {
	case TagScreenUpdate:
		if r.arity("1", 1) {
			return ScreenUpdate{}
		}
	case TagCoreWait:
		if r.arity("2", 2) {
			return CoreWait{Ticks: r.cell(1, "ticks")}
		}
	case TagLog:
		if r.arity("3", 3) {
			return Log{Operand: r.operand(1, "isCell", "value")}
		}
	default:
		r.unknownTag(tag)
	}
	return nil
}

func raiseMath(r *argReader) Op {
	if !r.atLeast("3 to 5", 1) {
		return nil
	}
	switch tag := r.text(0, "op"); tag {
	case TagIndirectRead, TagIndirectWrite, TagSqrt:
		if !r.arity("3", 3) {
			return nil
		}
		cell, dst := r.cell(1, "cell1"), r.cell(2, "cellToWrite")
		switch tag {
		case TagIndirectRead:
			return IndirectRead{Cell: cell, Dst: dst}
		case TagIndirectWrite:
			return IndirectWrite{Cell: cell, Dst: dst}
		default:
			return Sqrt{Cell: cell, Dst: dst}
		}
	case TagRandom:
		if r.arity("4", 4) {
			return Random{Min: r.number(1, "min"), Max: r.number(2, "max"), Dst: r.cell(3, "cellToWrite")}
		}
	default:
		if !r.arity("5", 5) {
			return nil
		}
		return MathBinary{
			Operator: r.symbol(0, "op"),
			Cell:     r.cell(1, "cell1"),
			Operand:  r.operand(2, "isCell2", "val2"),
			Dst:      r.cell(4, "cellToWrite"),
		}
	}
	return nil
}

// argReader reads typed roles out of a positional vector. The first failure
// is kept in err and every later read becomes a no-op returning a zero value.
type argReader struct {
	op   Opcode
	args []Value
	err  *ShapeError
}

func (r *argReader) fail(index int, msg string) {
	if r.err == nil {
		r.err = &ShapeError{Opcode: r.op, Index: index, Message: msg}
	}
}

// arity checks for exactly n arguments; n < 0 always fails.
func (r *argReader) arity(want string, n int) bool {
	if r.err != nil {
		return false
	}
	if n < 0 || len(r.args) != n {
		r.err = arityError(r.op, len(r.args), want)
		return false
	}
	return true
}

func (r *argReader) atLeast(want string, n int) bool {
	if r.err != nil {
		return false
	}
	if len(r.args) < n {
		r.err = arityError(r.op, len(r.args), want)
		return false
	}
	return true
}

func (r *argReader) unknownTag(tag string) {
	r.fail(0, fmt.Sprintf("unknown sub-operation %q", tag))
}

func (r *argReader) text(i int, role string) string {
	if r.err != nil {
		return ""
	}
	t, ok := r.args[i].(Text)
	if !ok {
		r.err = roleError(r.op, i, role, "text", r.args[i])
		return ""
	}
	return string(t)
}

// symbol reads a non-empty Text (operator symbol or label name).
func (r *argReader) symbol(i int, role string) string {
	s := r.text(i, role)
	if r.err == nil && s == "" {
		r.fail(i, role+": must not be empty")
	}
	return s
}

func (r *argReader) tag(i int, want string) {
	if got := r.text(i, "tag"); r.err == nil && got != want {
		r.fail(i, fmt.Sprintf("tag: want %q, got %q", want, got))
	}
}

func (r *argReader) number(i int, role string) float64 {
	if r.err != nil {
		return 0
	}
	n, ok := r.args[i].(Number)
	if !ok {
		r.err = roleError(r.op, i, role, "number", r.args[i])
		return 0
	}
	return float64(n)
}

// cell reads a Number that must be integer-valued.
func (r *argReader) cell(i int, role string) int {
	if r.err != nil {
		return 0
	}
	n, ok := r.args[i].(Number)
	if !ok || !n.IsInteger() {
		r.err = roleError(r.op, i, role, "integer number", r.args[i])
		return 0
	}
	return n.Int()
}

func (r *argReader) flag(i int, role string) bool {
	if r.err != nil {
		return false
	}
	b, ok := r.args[i].(Boolean)
	if !ok {
		r.err = roleError(r.op, i, role, "boolean", r.args[i])
		return false
	}
	return bool(b)
}

func (r *argReader) operand(i int, flagRole, valueRole string) Operand {
	isCell := r.flag(i, flagRole)
	return Operand{IsCell: isCell, Value: r.number(i+1, valueRole)}
}

func (r *argReader) target(i int, role string) Target {
	if r.err != nil {
		return Target{}
	}
	switch v := r.args[i].(type) {
	case Text:
		if v == "" {
			r.fail(i, role+": must not be empty")
		}
		return Target{Label: string(v)}
	case Number:
		return Target{Cell: r.cell(i, role)}
	default:
		r.err = roleError(r.op, i, role, "cell number or label text", v)
		return Target{}
	}
}
