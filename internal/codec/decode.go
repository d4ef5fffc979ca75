package codec

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/roach88/cl1/internal/ir"
)

const (
	commentPrefix = "#"
	literalFlag   = "n"
	cellFlag      = "c"
)

// Decode parses one line with the legacy lazy semantics.
//
// It returns nil, nil for a blank line or a "#" comment. A line starting with
// ":" yields a Pointer instruction whose stored text is the whole line,
// colon included. Otherwise the first space-separated token selects the
// opcode (case-insensitively); an unknown token is handed to unrecognized and
// its error is returned. Remaining tokens become arguments positionally with
// no arity or role checks, so a malformed line still yields an instruction.
// Trailing empty tokens left by trailing spaces are dropped; interior empty
// tokens are kept as empty Text.
//
// A nil unrecognized, or one that returns nil, falls back to
// DefaultUnrecognized: an unknown opcode always fails.
func Decode(line string, unrecognized UnrecognizedFunc) (*ir.Instruction, error) {
	if isSkip(line) {
		return nil, nil
	}

	if strings.HasPrefix(line, ir.LabelPrefix) {
		inst := ir.NewPointer(line)
		return &inst, nil
	}

	tokens := splitTokens(line)
	op, ok := ir.ParseOpcode(tokens[0])
	if !ok {
		var err error
		if unrecognized != nil {
			err = unrecognized(tokens[0])
		}
		if err == nil {
			err = DefaultUnrecognized(tokens[0])
		}
		return nil, err
	}

	args := make([]ir.Value, len(tokens)-1)
	for i, token := range tokens[1:] {
		args[i] = ParseToken(token)
	}
	inst := ir.NewInstruction(op, args...)
	return &inst, nil
}

// ParseToken classifies a single argument token: "n" is Boolean(false), "c"
// is Boolean(true), a finite number literal is a Number, anything else is
// Text. Words such as "inf" or "nan" stay Text so they remain usable as
// label names.
func ParseToken(token string) ir.Value {
	switch token {
	case literalFlag:
		return ir.Boolean(false)
	case cellFlag:
		return ir.Boolean(true)
	}
	if f, err := strconv.ParseFloat(token, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return ir.Number(f)
	}
	return ir.Text(token)
}

// splitTokens splits on single spaces and drops trailing empty tokens.
func splitTokens(line string) []string {
	tokens := strings.Split(line, " ")
	end := len(tokens)
	for end > 1 && tokens[end-1] == "" {
		end--
	}
	return tokens[:end]
}

func isSkip(line string) bool {
	return strings.TrimSpace(line) == "" || strings.HasPrefix(line, commentPrefix)
}

// Mode selects how much checking a Decoder performs.
type Mode int

const (
	// ModeStrict raises every decoded instruction into its typed variant and
	// fails immediately on a shape mismatch.
	ModeStrict Mode = iota
	// ModeLegacy reproduces Decode exactly: mismatches surface only later,
	// in the encoder.
	ModeLegacy
)

// ValidModes lists the accepted mode names.
var ValidModes = []string{"strict", "legacy"}

func (m Mode) String() string {
	switch m {
	case ModeStrict:
		return "strict"
	case ModeLegacy:
		return "legacy"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses "strict" or "legacy".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "strict":
		return ModeStrict, nil
	case "legacy":
		return ModeLegacy, nil
	default:
		return 0, fmt.Errorf("invalid mode %q: must be one of %v", s, ValidModes)
	}
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithMode sets the decoding mode. The default is ModeStrict.
func WithMode(m Mode) Option {
	return func(d *Decoder) { d.mode = m }
}

// WithUnrecognized sets the mapper for unknown opcode tokens.
func WithUnrecognized(fn UnrecognizedFunc) Option {
	return func(d *Decoder) { d.unrecognized = fn }
}

// Decoder decodes lines with a fixed mode and opcode error mapper.
// It holds no mutable state and is safe for concurrent use.
type Decoder struct {
	mode         Mode
	unrecognized UnrecognizedFunc
}

// NewDecoder creates a Decoder. Without options it is strict and uses
// DefaultUnrecognized.
func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{mode: ModeStrict, unrecognized: DefaultUnrecognized}
	for _, opt := range opts {
		opt(d)
	}
	if d.unrecognized == nil {
		d.unrecognized = DefaultUnrecognized
	}
	return d
}

// Mode returns the decoder's mode.
func (d *Decoder) Mode() Mode {
	return d.mode
}

// Decode parses one line into its positional form. In ModeStrict the result
// is also raised (labels included) and a *ir.ShapeError is returned on the
// first mismatch. Skipped lines yield nil, nil.
func (d *Decoder) Decode(line string) (*ir.Instruction, error) {
	inst, err := Decode(line, d.unrecognized)
	if err != nil || inst == nil {
		return inst, err
	}
	if d.mode == ModeStrict {
		if _, err := ir.RaiseStatement(*inst); err != nil {
			return nil, err
		}
	}
	return inst, nil
}

// DecodeStatement parses one line into the typed model regardless of mode:
// an ir.Label (colon removed) for label lines, a typed ir.Op otherwise, and
// nil for skipped lines.
func (d *Decoder) DecodeStatement(line string) (ir.Statement, error) {
	inst, err := Decode(line, d.unrecognized)
	if err != nil || inst == nil {
		return nil, err
	}
	return ir.RaiseStatement(*inst)
}
