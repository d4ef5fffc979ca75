package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/cl1/internal/codec"
)

// Issue is one problem found in a program file.
type Issue struct {
	Line    int    `json:"line,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Text    string `json:"text,omitempty"`
}

func (i Issue) String() string {
	if i.Line > 0 {
		return fmt.Sprintf("line %d: [%s] %s", i.Line, i.Code, i.Message)
	}
	return fmt.Sprintf("[%s] %s", i.Code, i.Message)
}

// readProgramFile opens path and decodes it with dec.
// A missing or unreadable file is an ExitCommandError; decode failures are
// returned as issues.
func readProgramFile(path string, dec *codec.Decoder, mode codec.ReadMode) (*codec.Program, []Issue, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, WrapExitError(ExitCommandError, fmt.Sprintf("[%s] program file not found", ErrCodeNotFound), err)
		}
		return nil, nil, WrapExitError(ExitCommandError, "failed to open program file", err)
	}
	defer f.Close()

	prog, errs := codec.ReadProgram(f, dec, mode)
	return prog, issuesFrom(errs), nil
}

func issuesFrom(errs []error) []Issue {
	issues := make([]Issue, 0, len(errs))
	for _, err := range errs {
		issues = append(issues, issueFrom(err))
	}
	return issues
}

func issueFrom(err error) Issue {
	issue := Issue{Code: ErrorCode(err), Message: err.Error()}
	var lineErr *codec.LineError
	if errors.As(err, &lineErr) {
		issue.Line = lineErr.Line
		issue.Text = lineErr.Text
		issue.Message = lineErr.Err.Error()
	}
	if issue.Code == ErrCodeGeneric && issue.Line > 0 {
		issue.Code = ErrCodeDecode
	}
	return issue
}

// reportIssues prints issues and returns an ExitFailure error.
func reportIssues(f *OutputFormatter, summary string, issues []Issue) error {
	if f.Format == "json" {
		if err := f.Error(issues[0].Code, summary, issues); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(f.Writer, "✗ %s\n", summary)
		for _, issue := range issues {
			fmt.Fprintf(f.Writer, "  %s\n", issue)
		}
	}
	return NewExitError(ExitFailure, fmt.Sprintf("%s (%d issue(s))", summary, len(issues)))
}
