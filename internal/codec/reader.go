package codec

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/roach88/cl1/internal/ir"
)

// maxLineSize bounds a single source line.
const maxLineSize = 1 << 20

// ReadMode controls how errors are handled while reading a program.
type ReadMode int

const (
	// ReadFailFast stops on the first error encountered.
	ReadFailFast ReadMode = iota
	// ReadCollectAll decodes every line and returns all errors.
	ReadCollectAll
)

// Line is a decoded instruction together with its 1-based source line.
type Line struct {
	Number      int
	Instruction ir.Instruction
}

// Program is the ordered result of reading a line stream. Skipped lines
// (blank, comments) are not represented.
type Program struct {
	Lines []Line
}

// Instructions returns the decoded instructions in source order.
func (p *Program) Instructions() []ir.Instruction {
	out := make([]ir.Instruction, len(p.Lines))
	for i, l := range p.Lines {
		out[i] = l.Instruction
	}
	return out
}

// Labels returns the label definitions in source order, as stored text.
func (p *Program) Labels() []string {
	var labels []string
	for _, l := range p.Lines {
		if name, err := l.Instruction.PointerName(); err == nil {
			labels = append(labels, name)
		}
	}
	return labels
}

// ReadProgram feeds r to dec one line at a time. Every failure is wrapped in
// a *LineError. It performs no macro expansion or include handling: each line
// is decoded in isolation.
//
// In ReadFailFast mode the partial program read so far is returned with the
// single error. A read failure of r itself is always returned last.
func ReadProgram(r io.Reader, dec *Decoder, mode ReadMode) (*Program, []error) {
	prog := &Program{}
	var errs []error

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	n := 0
	for scanner.Scan() {
		n++
		text := strings.TrimSuffix(scanner.Text(), "\r")

		inst, err := dec.Decode(text)
		if err != nil {
			errs = append(errs, &LineError{Line: n, Text: text, Err: err})
			if mode == ReadFailFast {
				return prog, errs
			}
			continue
		}
		if inst == nil {
			continue
		}
		prog.Lines = append(prog.Lines, Line{Number: n, Instruction: *inst})
	}
	if err := scanner.Err(); err != nil {
		errs = append(errs, fmt.Errorf("reading program: %w", err))
	}

	return prog, errs
}
