package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/cl1/internal/codec"
	"github.com/roach88/cl1/internal/ir"
)

// DumpLine is one decoded line in the dump output.
type DumpLine struct {
	Line        int            `json:"line"`
	Instruction ir.Instruction `json:"instruction"`
	Label       string         `json:"label,omitempty"`
}

// DumpResult is the JSON payload of the dump command.
type DumpResult struct {
	File  string     `json:"file"`
	Hash  string     `json:"content_hash"`
	Lines []DumpLine `json:"lines"`
}

// NewDumpCommand creates the dump command.
func NewDumpCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "List the decoded instructions of a program",
		Long: `List every decoded instruction with its source line, opcode and
argument kinds. With --format json the positional arguments are emitted as
tagged values ({"number": 1}, {"boolean": true}, {"text": "loop"}).`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runDump(opts *RootOptions, path string, cmd *cobra.Command) error {
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
		return reportIssues(formatter, fmt.Sprintf("cannot dump %s", path), issues)
	}

	insts := prog.Instructions()
	hash, err := ir.ProgramHash(insts)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to hash program", err)
	}

	result := DumpResult{File: path, Hash: hash, Lines: make([]DumpLine, len(prog.Lines))}
	for i, l := range prog.Lines {
		result.Lines[i] = DumpLine{Line: l.Number, Instruction: l.Instruction}
		if name, err := l.Instruction.PointerName(); err == nil {
			result.Lines[i].Label = name
		}
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "# %s\n", path)
	fmt.Fprintf(w, "# content hash: %s\n", hash)
	for _, l := range result.Lines {
		fmt.Fprintf(w, "%4d  %s\n", l.Line, describe(l.Instruction))
	}
	return nil
}

// describe renders an instruction with the kind of every argument, e.g.
// "Add      number(1) boolean(false) number(2) number(3)".
func describe(inst ir.Instruction) string {
	if inst.IsPointer() {
		return fmt.Sprintf("%-8s %s", "label", inst.String())
	}
	parts := make([]string, inst.Len())
	for i, arg := range inst.Args() {
		token := arg.Token()
		if b, ok := arg.(ir.Boolean); ok {
			token = strconv.FormatBool(bool(b))
		}
		parts[i] = fmt.Sprintf("%s(%s)", ir.ValueKind(arg), token)
	}
	return strings.TrimRight(fmt.Sprintf("%-8s %s", inst.Opcode(), strings.Join(parts, " ")), " ")
}
