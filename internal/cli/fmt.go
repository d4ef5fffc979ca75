package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/cl1/internal/codec"
	"github.com/roach88/cl1/internal/ir"
)

// FmtOptions holds flags for the fmt command.
type FmtOptions struct {
	*RootOptions
	Output    string
	Normalize bool
}

// NewFmtCommand creates the fmt command.
func NewFmtCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FmtOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "fmt <file>",
		Short: "Rewrite a program with canonical tokens",
		Long: `Decode a program and encode it again.

Comments and blank lines are dropped and every number is written in its
shortest form. With --normalize, "Math +" becomes "Add" and literal
"Pixel Cache" colors are packed into "Pixel Cache Raw".

Examples:
  cl1 fmt prog.cl1
  cl1 fmt prog.cl1 --normalize -o prog.out.cl1`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&opts.Normalize, "normalize", false, "apply the normalization pass")

	return cmd
}

func runFmt(opts *FmtOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	dec, err := opts.decoder()
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --mode", err)
	}

	prog, issues, err := readProgramFile(path, dec, codec.ReadFailFast)
	if err != nil {
		return err
	}
	if len(issues) > 0 {
		return reportIssues(formatter, fmt.Sprintf("cannot format %s", path), issues)
	}

	insts := prog.Instructions()
	if opts.Normalize {
		insts, err = normalizeProgram(prog.Lines)
		if err != nil {
			return reportIssues(formatter, fmt.Sprintf("cannot normalize %s", path), []Issue{issueFrom(err)})
		}
	}
	formatter.VerboseLog("Formatting %d instruction(s) from %s", len(insts), path)

	var buf bytes.Buffer
	if err := codec.EncodeProgram(&buf, insts); err != nil {
		return WrapExitError(ExitCommandError, "failed to encode program", err)
	}

	if opts.Output == "" {
		_, err := io.Copy(cmd.OutOrStdout(), &buf)
		return err
	}
	if err := os.WriteFile(opts.Output, buf.Bytes(), 0o644); err != nil {
		_ = formatter.Error(ErrCodeWriteFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to write output", err)
	}
	formatter.VerboseLog("Wrote %s", opts.Output)
	return nil
}

// normalizeProgram raises every line, runs the normalization pass and lowers
// the result back to positional form. Only a legacy-mode read can produce a
// line that fails to raise.
func normalizeProgram(lines []codec.Line) ([]ir.Instruction, error) {
	stmts := make([]ir.Statement, len(lines))
	for i, line := range lines {
		stmt, err := ir.RaiseStatement(line.Instruction)
		if err != nil {
			return nil, &codec.LineError{Line: line.Number, Text: codec.Encode(line.Instruction), Err: err}
		}
		stmts[i] = stmt
	}

	out := make([]ir.Instruction, len(stmts))
	for i, stmt := range ir.NormalizeAll(stmts) {
		switch s := stmt.(type) {
		case ir.Label:
			out[i] = ir.LowerLabel(s)
		case ir.Op:
			out[i] = ir.Lower(s)
		}
	}
	return out, nil
}
