package codec

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/cl1/internal/ir"
)

const sampleProgram = `# counter
:loop
Init 0 1

Add 1 n 1 1
If < 1 n 10 loop
Device ScreenUpdate
`

func TestReadProgram(t *testing.T) {
	prog, errs := ReadProgram(strings.NewReader(sampleProgram), NewDecoder(), ReadFailFast)
	require.Empty(t, errs)
	require.Len(t, prog.Lines, 5)

	numbers := make([]int, len(prog.Lines))
	for i, l := range prog.Lines {
		numbers[i] = l.Number
	}
	assert.Equal(t, []int{2, 3, 5, 6, 7}, numbers)
	assert.Equal(t, []string{":loop"}, prog.Labels())

	insts := prog.Instructions()
	assert.True(t, insts[1].Equal(ir.NewInit(0, 1)))
	assert.True(t, insts[4].Equal(ir.NewDeviceScreenUpdate()))
}

func TestReadProgramCRLF(t *testing.T) {
	src := strings.ReplaceAll(sampleProgram, "\n", "\r\n")
	prog, errs := ReadProgram(strings.NewReader(src), NewDecoder(), ReadFailFast)
	require.Empty(t, errs)
	require.Len(t, prog.Lines, 5)
	assert.Equal(t, []string{":loop"}, prog.Labels())
	assert.True(t, prog.Lines[3].Instruction.Equal(ir.NewIf("<", 1, false, 10, "loop")))
}

const brokenProgram = `Init 1 2
Bogus 1
Add 1 n
Copy 1 2
`

func TestReadProgramFailFast(t *testing.T) {
	prog, errs := ReadProgram(strings.NewReader(brokenProgram), NewDecoder(), ReadFailFast)
	require.Len(t, errs, 1)
	require.Len(t, prog.Lines, 1)

	var lineErr *LineError
	require.True(t, errors.As(errs[0], &lineErr))
	assert.Equal(t, 2, lineErr.Line)
	assert.Equal(t, "Bogus 1", lineErr.Text)
	assert.ErrorIs(t, errs[0], ErrUnrecognizedOpcode)
}

func TestReadProgramCollectAll(t *testing.T) {
	prog, errs := ReadProgram(strings.NewReader(brokenProgram), NewDecoder(), ReadCollectAll)
	require.Len(t, errs, 2)
	require.Len(t, prog.Lines, 2)

	assert.Contains(t, errs[0].Error(), "line 2:")
	assert.ErrorIs(t, errs[0], ErrUnrecognizedOpcode)

	assert.Contains(t, errs[1].Error(), "line 3:")
	assert.True(t, ir.IsShapeError(errs[1]))
}

func TestReadProgramLegacyKeepsMalformedLines(t *testing.T) {
	prog, errs := ReadProgram(strings.NewReader(brokenProgram), NewDecoder(WithMode(ModeLegacy)), ReadCollectAll)
	require.Len(t, errs, 1)
	require.Len(t, prog.Lines, 3)
	assert.Equal(t, 2, prog.Lines[1].Instruction.Len())
}

func TestReadProgramEmpty(t *testing.T) {
	prog, errs := ReadProgram(strings.NewReader(""), NewDecoder(), ReadFailFast)
	assert.Empty(t, errs)
	assert.Empty(t, prog.Lines)
	assert.Empty(t, prog.Instructions())
	assert.Nil(t, prog.Labels())
}
