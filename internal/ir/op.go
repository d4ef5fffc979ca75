package ir

// Statement is a sealed interface for anything a source line can hold:
// an executable Op or a Label definition.
type Statement interface {
	isStatement()
}

// Op is a sealed interface over the strongly typed instruction variants.
// Each variant carries named fields instead of a positional vector, so a
// wrong arity or a wrong role cannot be represented.
type Op interface {
	Statement
	Opcode() Opcode
	isOp()
}

// Label is a label definition. It is not an Op: labels are resolved to
// addresses by the encoder's label table and are never compiled.
type Label struct {
	Name string
}

func (Label) isStatement() {}

// Operand is an (isCell, value) pair. When IsCell is set, Value is the
// index of the cell to read; otherwise Value is the literal itself.
type Operand struct {
	IsCell bool
	Value  float64
}

// Lit creates a literal operand.
func Lit(v float64) Operand {
	return Operand{Value: v}
}

// CellRef creates an operand that reads cell index.
func CellRef(index int) Operand {
	return Operand{IsCell: true, Value: float64(index)}
}

// Target is the destination of a Jump or Call: a label name when Label is
// non-empty, otherwise the cell holding the address.
type Target struct {
	Cell  int
	Label string
}

// LabelTarget creates a Target that refers to a label.
func LabelTarget(name string) Target {
	return Target{Label: name}
}

// CellTarget creates a Target that refers to a cell.
func CellTarget(cell int) Target {
	return Target{Cell: cell}
}

// IsLabel reports whether the target names a label.
func (t Target) IsLabel() bool {
	return t.Label != ""
}

// If jumps to Target when cell[Cell] <Cond> Operand holds.
type If struct {
	Cond    string
	Cell    int
	Operand Operand
	Target  string
}

// Init writes a literal into Dst.
type Init struct {
	Value float64
	Dst   int
}

// Copy copies cell[Src] into cell[Dst]. Dst is never negative.
type Copy struct {
	Src int
	Dst int
}

// Add computes cell[Dst] = cell[Cell] + Operand.
type Add struct {
	Cell    int
	Operand Operand
	Dst     int
}

// Jump transfers control without pushing a return point.
type Jump struct {
	Target Target
}

// Call pushes a return point and transfers control.
type Call struct {
	Target Target
}

// Return pops the most recent return point.
type Return struct{}

// CacheColorCell sets the cached draw color from a cell.
type CacheColorCell struct {
	Cell int
}

// CacheColorRaw sets the cached draw color from a pre-packed value.
type CacheColorRaw struct {
	Raw int
}

// CacheColor sets the cached draw color from three components, any of
// which may be read from a cell.
type CacheColor struct {
	R, G, B Operand
}

// DrawPixel writes the cached color at (X, Y).
type DrawPixel struct {
	X, Y Operand
}

// ReadPixel reads the color at (X, Y) into Dst.
type ReadPixel struct {
	X, Y Operand
	Dst  int
}

// CoreWait suspends the core for Ticks device ticks.
type CoreWait struct {
	Ticks int
}

// ScreenUpdate flushes the pixel buffer to the display.
type ScreenUpdate struct{}

// Log writes Operand to the device log.
type Log struct {
	Operand Operand
}

// MathBinary computes cell[Dst] = cell[Cell] <Operator> Operand.
type MathBinary struct {
	Operator string
	Cell     int
	Operand  Operand
	Dst      int
}

// Random writes a random value in [Min, Max] into Dst.
type Random struct {
	Min, Max float64
	Dst      int
}

// IndirectRead computes cell[Dst] = cell[cell[Cell]].
type IndirectRead struct {
	Cell int
	Dst  int
}

// IndirectWrite computes cell[cell[Dst]] = cell[Cell].
type IndirectWrite struct {
	Cell int
	Dst  int
}

// Sqrt computes cell[Dst] = sqrt(cell[Cell]).
type Sqrt struct {
	Cell int
	Dst  int
}

func (If) Opcode() Opcode             { return OpIf }
func (Init) Opcode() Opcode           { return OpInit }
func (Copy) Opcode() Opcode           { return OpCopy }
func (Add) Opcode() Opcode            { return OpAdd }
func (Jump) Opcode() Opcode           { return OpCell }
func (Call) Opcode() Opcode           { return OpCell }
func (Return) Opcode() Opcode         { return OpCell }
func (CacheColorCell) Opcode() Opcode { return OpPixel }
func (CacheColorRaw) Opcode() Opcode  { return OpPixel }
func (CacheColor) Opcode() Opcode     { return OpPixel }
func (DrawPixel) Opcode() Opcode      { return OpPixel }
func (ReadPixel) Opcode() Opcode      { return OpPixel }
func (CoreWait) Opcode() Opcode       { return OpDevice }
func (ScreenUpdate) Opcode() Opcode   { return OpDevice }
func (Log) Opcode() Opcode            { return OpDevice }
func (MathBinary) Opcode() Opcode     { return OpMath }
func (Random) Opcode() Opcode         { return OpMath }
func (IndirectRead) Opcode() Opcode   { return OpMath }
func (IndirectWrite) Opcode() Opcode  { return OpMath }
func (Sqrt) Opcode() Opcode           { return OpMath }

func (If) isOp()             {}
func (Init) isOp()           {}
func (Copy) isOp()           {}
func (Add) isOp()            {}
func (Jump) isOp()           {}
func (Call) isOp()           {}
func (Return) isOp()         {}
func (CacheColorCell) isOp() {}
func (CacheColorRaw) isOp()  {}
func (CacheColor) isOp()     {}
func (DrawPixel) isOp()      {}
func (ReadPixel) isOp()      {}
func (CoreWait) isOp()       {}
func (ScreenUpdate) isOp()   {}
func (Log) isOp()            {}
func (MathBinary) isOp()     {}
func (Random) isOp()         {}
func (IndirectRead) isOp()   {}
func (IndirectWrite) isOp()  {}
func (Sqrt) isOp()           {}

func (If) isStatement()             {}
func (Init) isStatement()           {}
func (Copy) isStatement()           {}
func (Add) isStatement()            {}
func (Jump) isStatement()           {}
func (Call) isStatement()           {}
func (Return) isStatement()         {}
func (CacheColorCell) isStatement() {}
func (CacheColorRaw) isStatement()  {}
func (CacheColor) isStatement()     {}
func (DrawPixel) isStatement()      {}
func (ReadPixel) isStatement()      {}
func (CoreWait) isStatement()       {}
func (ScreenUpdate) isStatement()   {}
func (Log) isStatement()            {}
func (MathBinary) isStatement()     {}
func (Random) isStatement()         {}
func (IndirectRead) isStatement()   {}
func (IndirectWrite) isStatement()  {}
func (Sqrt) isStatement()           {}
