package cli

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/cl1/internal/codec"
	"github.com/roach88/cl1/internal/ir"
	"github.com/roach88/cl1/internal/store"
)

// StoreOptions holds flags shared by the store subcommands.
type StoreOptions struct {
	*RootOptions
	Name     string
	Revision string
}

// SaveResult is the JSON payload of store save.
type SaveResult struct {
	Revision store.Revision `json:"revision"`
	Created  bool           `json:"created"`
}

// ShowResult is the JSON payload of store show.
type ShowResult struct {
	Revision store.Revision `json:"revision"`
	Listing  []string       `json:"listing"`
}

// NewStoreCommand creates the store command group.
func NewStoreCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StoreOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "store",
		Short: "Save and read programs in a SQLite store",
		Long: `Keep revisions of programs in a SQLite database.

Saving content identical to the latest revision reuses that revision.

Examples:
  cl1 store save prog.cl1 --db ./programs.db
  cl1 store show prog --db ./programs.db
  cl1 store list --db ./programs.db --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to SQLite database (or db: in the config file)")

	cmd.AddCommand(newStoreSaveCommand(opts))
	cmd.AddCommand(newStoreShowCommand(opts))
	cmd.AddCommand(newStoreListCommand(opts))

	return cmd
}

func newStoreSaveCommand(opts *StoreOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "save <file>",
		Short:         "Save a program as a new revision",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStoreSave(opts, args[0], cmd)
		},
	}
	cmd.Flags().StringVar(&opts.Name, "name", "", "program name (default: file name without extension)")
	return cmd
}

func newStoreShowCommand(opts *StoreOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "show <name>",
		Short:         "Print the latest revision of a program",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStoreShow(opts, args[0], cmd)
		},
	}
	cmd.Flags().StringVar(&opts.Revision, "revision", "", "show this revision ID instead of the latest")
	return cmd
}

func newStoreListCommand(opts *StoreOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List stored programs",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStoreList(opts, cmd)
		},
	}
}

func openStore(opts *StoreOptions, cmd *cobra.Command) (*store.Store, error) {
	if opts.Database == "" {
		return nil, NewExitError(ExitCommandError, "no database: pass --db or set db in the config file")
	}
	st, err := store.Open(opts.Database, store.WithLogger(opts.logger(cmd)))
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	return st, nil
}

func runStoreSave(opts *StoreOptions, path string, cmd *cobra.Command) error {
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
		return reportIssues(formatter, fmt.Sprintf("cannot save %s", path), issues)
	}

	name := opts.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	st, err := openStore(opts, cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	rev, created, err := st.SaveProgram(cmd.Context(), name, prog.Instructions())
	if err != nil {
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to save program", err)
	}

	if opts.Format == "json" {
		return formatter.Success(SaveResult{Revision: rev, Created: created})
	}
	if created {
		return formatter.Success(fmt.Sprintf("✓ saved %s revision %d (%s)", name, rev.Seq, rev.ID))
	}
	return formatter.Success(fmt.Sprintf("✓ %s unchanged at revision %d (%s)", name, rev.Seq, rev.ID))
}

func runStoreShow(opts *StoreOptions, name string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	st, err := openStore(opts, cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	var (
		insts []ir.Instruction
		rev   store.Revision
	)
	if opts.Revision == "" {
		insts, rev, err = st.LoadProgram(cmd.Context(), name)
	} else {
		insts, rev, err = st.LoadRevision(cmd.Context(), opts.Revision)
		if err == nil && rev.Program != name {
			err = fmt.Errorf("revision %s belongs to %q: %w", rev.ID, rev.Program, store.ErrNotFound)
		}
	}
	if err != nil {
		code := ErrCodeStore
		if errors.Is(err, store.ErrNotFound) {
			code = ErrCodeNotFound
		}
		_ = formatter.Error(code, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to load program", err)
	}

	if opts.Format == "json" {
		listing := make([]string, len(insts))
		for i, inst := range insts {
			listing[i] = codec.Encode(inst)
		}
		return formatter.Success(ShowResult{Revision: rev, Listing: listing})
	}

	var buf bytes.Buffer
	if err := codec.EncodeProgram(&buf, insts); err != nil {
		return WrapExitError(ExitCommandError, "failed to encode program", err)
	}
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "# %s revision %d (%s)\n", rev.Program, rev.Seq, rev.ID)
	_, err = w.Write(buf.Bytes())
	return err
}

func runStoreList(opts *StoreOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	st, err := openStore(opts, cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	programs, err := st.ListPrograms(cmd.Context())
	if err != nil {
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to list programs", err)
	}

	if opts.Format == "json" {
		return formatter.Success(programs)
	}

	w := cmd.OutOrStdout()
	if len(programs) == 0 {
		fmt.Fprintln(w, "No programs stored.")
		return nil
	}
	for _, p := range programs {
		fmt.Fprintf(w, "%-20s rev %-3d %3d line(s)  %s\n", p.Name, p.Latest.Seq, p.Latest.Lines, p.Latest.Hash[:12])
	}
	return nil
}
