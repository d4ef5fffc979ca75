package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckValidProgram(t *testing.T) {
	out, _, err := execute(t, "check", counterFile)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ testdata/programs/counter.cl1: 7 instruction(s), 1 label(s)")
}

func TestCheckValidProgramJSON(t *testing.T) {
	out, _, err := execute(t, "check", counterFile, "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string      `json:"status"`
		Data   CheckResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, CheckResult{
		File:         counterFile,
		Mode:         "strict",
		Instructions: 7,
		Labels:       []string{":loop"},
	}, resp.Data)
}

func TestCheckReportsEveryProblem(t *testing.T) {
	tests := []struct {
		mode      string
		wantCodes []string
	}{
		{"strict", []string{ErrCodeUnknownOpcode, ErrCodeShape, ErrCodeShape}},
		{"legacy", []string{ErrCodeUnknownOpcode, ErrCodeContract, ErrCodeContract}},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			out, _, err := execute(t, "check", brokenFile, "--mode", tt.mode, "--format", "json")
			require.Error(t, err)
			assert.Equal(t, ExitFailure, GetExitCode(err))

			var resp struct {
				Status string `json:"status"`
				Error  struct {
					Code    string  `json:"code"`
					Details []Issue `json:"details"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal([]byte(out), &resp))
			assert.Equal(t, "error", resp.Status)
			assert.Equal(t, ErrCodeUnknownOpcode, resp.Error.Code)

			require.Len(t, resp.Error.Details, 3)
			var lines []int
			var codes []string
			for _, issue := range resp.Error.Details {
				lines = append(lines, issue.Line)
				codes = append(codes, issue.Code)
			}
			assert.Equal(t, []int{2, 3, 5}, lines)
			assert.Equal(t, tt.wantCodes, codes)
		})
	}
}

func TestCheckTextOutput(t *testing.T) {
	out, _, err := execute(t, "check", brokenFile)
	require.Error(t, err)
	assert.Contains(t, out, "✗ testdata/programs/broken.cl1 has problems")
	assert.Contains(t, out, "line 2: [E202]")
	assert.Contains(t, out, "line 3: [E203] Add: expected 4 argument(s), got 2")
	assert.Contains(t, out, "line 5: [E203]")
	assert.Contains(t, err.Error(), "3 issue(s)")
}

func TestCheckVerbose(t *testing.T) {
	_, errOut, err := execute(t, "check", counterFile, "-v")
	require.NoError(t, err)
	assert.Contains(t, errOut, "Decoded 7 instruction(s)")
	assert.Contains(t, errOut, "strict mode")
}
