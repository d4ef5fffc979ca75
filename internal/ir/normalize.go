package ir

// OperatorAdd is the math operator that Normalize rewrites into an Add.
const OperatorAdd = "+"

// Normalize applies the canonical rewrites to a single Op:
//
//   - MathBinary with operator "+" becomes the equivalent Add.
//   - CacheColor whose three components are all literals is folded into
//     CacheColorRaw carrying the packed color.
//
// Every other Op is returned unchanged. Normalize is pure and idempotent.
func Normalize(op Op) Op {
	switch o := op.(type) {
	case MathBinary:
		if o.Operator == OperatorAdd {
			return Add{Cell: o.Cell, Operand: o.Operand, Dst: o.Dst}
		}
	case CacheColor:
		if !o.R.IsCell && !o.G.IsCell && !o.B.IsCell {
			return CacheColorRaw{Raw: PackRGB(int(o.R.Value), int(o.G.Value), int(o.B.Value))}
		}
	}
	return op
}

// NormalizeAll applies Normalize to every Op in a statement list. Labels
// pass through untouched. The input slice is not modified.
func NormalizeAll(stmts []Statement) []Statement {
	out := make([]Statement, len(stmts))
	for i, s := range stmts {
		if op, ok := s.(Op); ok {
			out[i] = Normalize(op)
			continue
		}
		out[i] = s
	}
	return out
}

// PackRGB packs three 8-bit channels into a single color value laid out as
// 0xRRGGBB. Channels outside [0, 255] are clamped.
func PackRGB(r, g, b int) int {
	return clampChannel(r)<<16 | clampChannel(g)<<8 | clampChannel(b)
}

// UnpackRGB is the inverse of PackRGB.
func UnpackRGB(raw int) (r, g, b int) {
	return (raw >> 16) & 0xff, (raw >> 8) & 0xff, raw & 0xff
}

func clampChannel(c int) int {
	switch {
	case c < 0:
		return 0
	case c > 0xff:
		return 0xff
	default:
		return c
	}
}
