package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/roach88/cl1/internal/codec"
	"github.com/roach88/cl1/internal/contract"
)

// CheckResult is the JSON payload of a successful check.
type CheckResult struct {
	File         string   `json:"file"`
	Mode         string   `json:"mode"`
	Instructions int      `json:"instructions"`
	Labels       []string `json:"labels"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Check every line of a program",
		Long: `Decode every line of a program and validate each instruction against
the instruction contract. All problems are reported, not just the first.

In strict mode shape errors are found while decoding. In legacy mode lines
decode without checks and the contract reports the same problems.

Exit codes:
  0 - Program is well formed
  1 - One or more lines have problems
  2 - Command error (file not found, etc.)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runCheck(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	dec, err := opts.decoder()
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --mode", err)
	}

	prog, issues, err := readProgramFile(path, dec, codec.ReadCollectAll)
	if err != nil {
		return err
	}
	formatter.VerboseLog("Decoded %d instruction(s) from %s in %s mode", len(prog.Lines), path, dec.Mode())

	for _, line := range prog.Lines {
		if err := contract.Validate(line.Instruction); err != nil {
			issues = append(issues, issueFrom(&codec.LineError{
				Line: line.Number,
				Text: codec.Encode(line.Instruction),
				Err:  err,
			}))
		}
	}
	sortIssues(issues)

	if len(issues) > 0 {
		return reportIssues(formatter, fmt.Sprintf("%s has problems", path), issues)
	}

	result := CheckResult{
		File:         path,
		Mode:         dec.Mode().String(),
		Instructions: len(prog.Lines),
		Labels:       prog.Labels(),
	}
	if result.Labels == nil {
		result.Labels = []string{}
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}
	return formatter.Success(fmt.Sprintf("✓ %s: %d instruction(s), %d label(s)", path, result.Instructions, len(result.Labels)))
}

// sortIssues orders issues by line, keeping decode issues ahead of contract
// issues on the same line.
func sortIssues(issues []Issue) {
	sort.SliceStable(issues, func(i, j int) bool { return issues[i].Line < issues[j].Line })
}
