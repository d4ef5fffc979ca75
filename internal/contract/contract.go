// Package contract checks instructions against a declarative CUE schema of
// the per-opcode argument shapes.
//
// The schema lives in contract.cue and is compiled once per Schema. Its
// verdicts agree with ir.RaiseStatement for every instruction whose numbers
// have a plain JSON representation.
package contract

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/cl1/internal/ir"
)

//go:embed contract.cue
var schemaSource string

// Schema is a compiled instruction contract. A cue.Context is not safe for
// concurrent use, so Validate serializes on mu.
type Schema struct {
	mu  sync.Mutex
	ctx *cue.Context
	v   cue.Value
}

// Load compiles the embedded schema.
func Load() (*Schema, error) {
	ctx := cuecontext.New()
	v := ctx.CompileString(schemaSource, cue.Filename("contract.cue"))
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("compiling contract schema: %w", err)
	}
	return &Schema{ctx: ctx, v: v}, nil
}

var (
	defaultOnce   sync.Once
	defaultSchema *Schema
	defaultErr    error
)

// Validate checks inst against the embedded schema, compiling it on first use.
func Validate(inst ir.Instruction) error {
	defaultOnce.Do(func() {
		defaultSchema, defaultErr = Load()
	})
	if defaultErr != nil {
		return defaultErr
	}
	return defaultSchema.Validate(inst)
}

// Validate unifies the JSON form of inst with the definition named after its
// opcode. A mismatch is returned as a *ViolationError.
func (s *Schema) Validate(inst ir.Instruction) error {
	data, err := json.Marshal(inst)
	if err != nil {
		return &ViolationError{Instruction: inst.String(), Message: err.Error()}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	def := s.v.LookupPath(cue.ParsePath("#" + inst.Opcode().String()))
	if !def.Exists() {
		return &ViolationError{
			Instruction: inst.String(),
			Message:     fmt.Sprintf("no definition for opcode %s", inst.Opcode()),
		}
	}

	doc := s.ctx.CompileBytes(data, cue.Filename("instruction.json"))
	if err := doc.Err(); err != nil {
		return violation(inst, err)
	}

	if err := def.Unify(doc).Validate(cue.Concrete(true)); err != nil {
		return violation(inst, err)
	}
	return nil
}

// ViolationError reports the first schema conflict for an instruction.
type ViolationError struct {
	Instruction string
	Path        string
	Message     string
	Pos         token.Pos
}

func (e *ViolationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("contract violation in %q at %s: %s", e.Instruction, e.Path, e.Message)
	}
	return fmt.Sprintf("contract violation in %q: %s", e.Instruction, e.Message)
}

// violation extracts the first CUE error with its path and position.
func violation(inst ir.Instruction, err error) *ViolationError {
	v := &ViolationError{Instruction: inst.String(), Message: err.Error()}

	errs := errors.Errors(err)
	if len(errs) == 0 {
		return v
	}
	first := errs[0]
	format, args := first.Msg()
	v.Message = fmt.Sprintf(format, args...)
	v.Path = strings.Join(first.Path(), ".")
	if positions := errors.Positions(first); len(positions) > 0 {
		v.Pos = positions[0]
	}
	return v
}
