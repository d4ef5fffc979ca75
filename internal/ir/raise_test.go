package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRaiseVariants(t *testing.T) {
	tests := []struct {
		name string
		inst Instruction
		want Op
	}{
		{
			"if",
			NewInstruction(OpIf, Text("<"), Number(1), Boolean(true), Number(2), Text("loop")),
			If{Cond: "<", Cell: 1, Operand: CellRef(2), Target: "loop"},
		},
		{
			"init",
			NewInstruction(OpInit, Number(5), Number(2)),
			Init{Value: 5, Dst: 2},
		},
		{
			"add",
			NewInstruction(OpAdd, Number(1), Boolean(true), Number(3), Number(4)),
			Add{Cell: 1, Operand: CellRef(3), Dst: 4},
		},
		{
			"jump to label",
			NewInstruction(OpCell, Text("Jump"), Text("loop")),
			Jump{Target: LabelTarget("loop")},
		},
		{
			"call cell",
			NewInstruction(OpCell, Text("Call"), Number(7)),
			Call{Target: CellTarget(7)},
		},
		{
			"return",
			NewInstruction(OpCell, Text("Return")),
			Return{},
		},
		{
			"cache raw",
			NewInstruction(OpPixel, Text("Cache"), Text("Raw"), Number(255)),
			CacheColorRaw{Raw: 255},
		},
		{
			"cache cell-aware",
			NewInstruction(OpPixel, Text("Cache"), Boolean(true), Number(1), Boolean(false), Number(2), Boolean(false), Number(3)),
			CacheColor{R: CellRef(1), G: Lit(2), B: Lit(3)},
		},
		{
			"draw pixel",
			NewInstruction(OpPixel, Boolean(false), Number(1), Boolean(true), Number(2), Number(-1)),
			DrawPixel{X: Lit(1), Y: CellRef(2)},
		},
		{
			"read pixel",
			NewInstruction(OpPixel, Boolean(false), Number(1), Boolean(true), Number(2), Number(9)),
			ReadPixel{X: Lit(1), Y: CellRef(2), Dst: 9},
		},
		{
			"core wait",
			NewInstruction(OpDevice, Text("CoreWait"), Number(20)),
			CoreWait{Ticks: 20},
		},
		{
			"log",
			NewInstruction(OpDevice, Text("Log"), Boolean(false), Number(3.5)),
			Log{Operand: Lit(3.5)},
		},
		{
			"math binary",
			NewInstruction(OpMath, Text("*"), Number(1), Boolean(false), Number(2), Number(3)),
			MathBinary{Operator: "*", Cell: 1, Operand: Lit(2), Dst: 3},
		},
		{
			"random",
			NewInstruction(OpMath, Text("R"), Number(0), Number(10), Number(3)),
			Random{Min: 0, Max: 10, Dst: 3},
		},
		{
			"indirect write",
			NewInstruction(OpMath, Text("CW"), Number(1), Number(2)),
			IndirectWrite{Cell: 1, Dst: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, err := Raise(tt.inst)
			require.NoError(t, err)
			assert.Equal(t, tt.want, op)
			assert.True(t, Lower(op).Equal(tt.inst), "lowering must restore the wire form")
		})
	}
}

func TestRaiseShapeErrors(t *testing.T) {
	tests := []struct {
		name  string
		inst  Instruction
		index int
	}{
		{"init too short", NewInstruction(OpInit, Number(5)), -1},
		{"add too long", NewInstruction(OpAdd, Number(1), Boolean(true), Number(3), Number(4), Number(5)), -1},
		{"add flag is number", NewInstruction(OpAdd, Number(1), Number(1), Number(3), Number(4)), 1},
		{"cell index fractional", NewInstruction(OpInit, Number(5), Number(2.5)), 1},
		{"if target is number", NewInstruction(OpIf, Text("<"), Number(1), Boolean(true), Number(2), Number(3)), 4},
		{"copy negative destination", NewInstruction(OpCopy, Number(1), Number(-1)), 1},
		{"cell unknown tag", NewInstruction(OpCell, Text("Leap"), Number(1)), 0},
		{"cell return with target", NewInstruction(OpCell, Text("Return"), Number(1)), -1},
		{"cell empty", NewInstruction(OpCell), -1},
		{"pixel bad arity", NewInstruction(OpPixel, Text("Cache"), Number(1), Number(2), Number(3)), -1},
		{"pixel cache wrong tag", NewInstruction(OpPixel, Text("Stash"), Number(1)), 0},
		{"pixel raw wrong tag", NewInstruction(OpPixel, Text("Cache"), Text("Cooked"), Number(1)), 1},
		{"device unknown tag", NewInstruction(OpDevice, Text("Beep")), 0},
		{"device log short", NewInstruction(OpDevice, Text("Log"), Boolean(true)), -1},
		{"math sqrt long", NewInstruction(OpMath, Text("sqrt"), Number(1), Number(2), Number(3)), -1},
		{"math operator empty", NewInstruction(OpMath, Text(""), Number(1), Boolean(true), Number(2), Number(3)), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Raise(tt.inst)
			require.Error(t, err)

			var se *ShapeError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.inst.Opcode(), se.Opcode)
			assert.Equal(t, tt.index, se.Index, se.Error())
		})
	}
}

func TestRaisePointerIsUsageError(t *testing.T) {
	_, err := Raise(NewPointer(":loop"))
	assert.True(t, IsUsageError(err))
}

func TestRaiseStatementLabel(t *testing.T) {
	stmt, err := RaiseStatement(NewPointer(":loop"))
	require.NoError(t, err)
	assert.Equal(t, Label{Name: "loop"}, stmt)

	stmt, err = RaiseStatement(NewPointer("bare"))
	require.NoError(t, err)
	assert.Equal(t, Label{Name: "bare"}, stmt)

	_, err = RaiseStatement(NewPointer(":"))
	assert.True(t, IsShapeError(err))
}

func TestLowerLabelKeepsColon(t *testing.T) {
	inst := LowerLabel(Label{Name: "loop"})
	name, err := inst.PointerName()
	require.NoError(t, err)
	assert.Equal(t, ":loop", name)
}

func TestShapeErrorMessage(t *testing.T) {
	_, err := Raise(NewInstruction(OpAdd, Number(1), Text("x"), Number(3), Number(4)))
	require.Error(t, err)
	assert.Equal(t, `Add: args[1]: isCell2: want boolean, got text "x"`, err.Error())

	_, err = Raise(NewInstruction(OpInit))
	require.Error(t, err)
	assert.Equal(t, "Init: expected 2 argument(s), got 0", err.Error())
}
