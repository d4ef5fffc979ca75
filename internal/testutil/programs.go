// Package testutil holds fixtures shared by package tests: sample programs,
// property-test generators and deterministic ID sources.
package testutil

import (
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"

	"github.com/roach88/cl1/internal/ir"
)

// AllShapes returns one factory-built instruction per opcode sub-operation,
// plus a label definition.
func AllShapes() []ir.Instruction {
	return []ir.Instruction{
		ir.NewIf("<", 1, true, 2, "loop"),
		ir.NewIf(">=", 1, false, -3.5, "end"),
		ir.NewInit(5, 2),
		ir.NewInit(0.125, 0),
		ir.NewCopy(1, 2),
		ir.NewAdd(1, true, 3, 4),
		ir.NewCellJump(3),
		ir.NewCellJumpLabel("loop"),
		ir.NewCellCall(3),
		ir.NewCellCallLabel("sub"),
		ir.NewCellReturn(),
		ir.NewPixelCacheCell(4),
		ir.NewPixelCacheRaw(0xff00ff),
		ir.NewPixelCache(true, 1, false, 2, false, 3),
		ir.NewPixelCache(false, 1, false, 2, false, 3),
		ir.NewPixel(false, 1, true, 2),
		ir.NewPixelGet(false, 1, true, 2, 9),
		ir.NewDeviceWait(20),
		ir.NewDeviceScreenUpdate(),
		ir.NewDeviceLog(true, 5),
		ir.NewMath("-", 1, false, 2, 3),
		ir.NewMath("+", 1, false, 2, 3),
		ir.NewMathRune('%', 1, true, 2, 3),
		ir.NewMathRandom(0, 10, 3),
		ir.NewMathCC(1, 2),
		ir.NewMathCW(1, 2),
		ir.NewMathSqrt(1, 2),
		ir.NewPointer(":loop"),
	}
}

// CounterProgram is a small loop that touches several opcodes.
func CounterProgram() []ir.Instruction {
	return []ir.Instruction{
		ir.NewPointer(":loop"),
		ir.NewInit(0, 1),
		ir.NewAdd(1, false, 1, 1),
		ir.NewIf("<", 1, false, 10, "loop"),
		ir.NewPixelCache(false, 255, false, 0, false, 0),
		ir.NewDeviceScreenUpdate(),
	}
}

var (
	conditions = []string{"<", ">", "==", "!=", "<=", ">="}
	operators  = []string{"+", "-", "*", "/", "%"}
)

// opKinds is the number of variants buildOp can produce.
const opKinds = 20

// GenOp generates arbitrary typed ops across every variant. Label names are
// prefixed with "L" so they never read back as a flag or a number, and
// destination cells are non-negative.
func GenOp() gopter.Gen {
	return gopter.CombineGens(
		gen.IntRange(0, opKinds-1),
		gen.IntRange(-1000, 1000),
		gen.IntRange(0, 1000),
		gen.Float64Range(-1e6, 1e6),
		gen.Bool(),
		gen.Bool(),
		gen.Bool(),
		gen.Identifier(),
	).Map(func(v []interface{}) ir.Op {
		return buildOp(
			v[0].(int), v[1].(int), v[2].(int), v[3].(float64),
			v[4].(bool), v[5].(bool), v[6].(bool), "L"+v[7].(string),
		)
	})
}

func buildOp(kind, a, dst int, f float64, p, q, r bool, label string) ir.Op {
	operand := ir.Operand{IsCell: p, Value: f}
	switch kind {
	case 0:
		return ir.If{Cond: conditions[dst%len(conditions)], Cell: a, Operand: operand, Target: label}
	case 1:
		return ir.Init{Value: f, Dst: dst}
	case 2:
		return ir.Copy{Src: a, Dst: dst}
	case 3:
		return ir.Add{Cell: a, Operand: operand, Dst: dst}
	case 4:
		return ir.Jump{Target: ir.CellTarget(a)}
	case 5:
		return ir.Call{Target: ir.LabelTarget(label)}
	case 6:
		return ir.Return{}
	case 7:
		return ir.CacheColorCell{Cell: a}
	case 8:
		return ir.CacheColorRaw{Raw: ir.PackRGB(a, dst, int(f))}
	case 9:
		return ir.CacheColor{
			R: ir.Operand{IsCell: p, Value: float64(a)},
			G: ir.Operand{IsCell: q, Value: f},
			B: ir.Operand{IsCell: r, Value: float64(dst)},
		}
	case 10:
		return ir.DrawPixel{X: ir.Operand{IsCell: p, Value: float64(a)}, Y: ir.Operand{IsCell: q, Value: f}}
	case 11:
		return ir.ReadPixel{X: ir.Operand{IsCell: p, Value: float64(a)}, Y: ir.Operand{IsCell: q, Value: f}, Dst: dst}
	case 12:
		return ir.CoreWait{Ticks: dst}
	case 13:
		return ir.ScreenUpdate{}
	case 14:
		return ir.Log{Operand: ir.Operand{IsCell: r, Value: f}}
	case 15:
		return ir.MathBinary{Operator: operators[dst%len(operators)], Cell: a, Operand: operand, Dst: dst}
	case 16:
		return ir.Random{Min: f, Max: float64(a), Dst: dst}
	case 17:
		return ir.IndirectRead{Cell: a, Dst: dst}
	case 18:
		return ir.IndirectWrite{Cell: a, Dst: dst}
	default:
		return ir.Sqrt{Cell: a, Dst: dst}
	}
}
