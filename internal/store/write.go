package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/cl1/internal/codec"
	"github.com/roach88/cl1/internal/ir"
)

// Revision identifies one saved version of a program.
type Revision struct {
	ID        string `json:"id"`
	Program   string `json:"program"`
	Seq       int64  `json:"seq"`
	Hash      string `json:"content_hash"`
	IRVersion string `json:"ir_version"`
	Lines     int    `json:"line_count"`
}

// SaveProgram stores insts as the next revision of the named program,
// creating the program on first save.
//
// If the latest revision already has the same content hash, it is returned
// and nothing is written. The returned bool reports whether a new revision
// was created.
func (s *Store) SaveProgram(ctx context.Context, name string, insts []ir.Instruction) (Revision, bool, error) {
	if name == "" {
		return Revision{}, false, fmt.Errorf("save program: name must not be empty")
	}

	hash, err := ir.ProgramHash(insts)
	if err != nil {
		return Revision{}, false, fmt.Errorf("save program %q: %w", name, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Revision{}, false, fmt.Errorf("save program %q: begin: %w", name, err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	latest, err := latestRevision(ctx, tx, name)
	switch {
	case err == nil && latest.Hash == hash:
		s.logger.Debug("program unchanged, reusing revision",
			"program", name,
			"revision", latest.ID,
			"seq", latest.Seq)
		return latest, false, nil
	case err != nil && !errors.Is(err, ErrNotFound):
		return Revision{}, false, fmt.Errorf("save program %q: %w", name, err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO programs (name) VALUES (?)
		ON CONFLICT(name) DO NOTHING
	`, name); err != nil {
		return Revision{}, false, fmt.Errorf("save program %q: %w", name, err)
	}

	rev := Revision{
		ID:        s.ids.Generate(),
		Program:   name,
		Seq:       latest.Seq + 1,
		Hash:      hash,
		IRVersion: ir.IRVersion,
		Lines:     len(insts),
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO revisions (id, program, seq, content_hash, ir_version, line_count)
		VALUES (?, ?, ?, ?, ?, ?)
	`, rev.ID, rev.Program, rev.Seq, rev.Hash, rev.IRVersion, rev.Lines); err != nil {
		return Revision{}, false, fmt.Errorf("save program %q: write revision: %w", name, err)
	}

	if err := writeLines(ctx, tx, rev.ID, insts); err != nil {
		return Revision{}, false, fmt.Errorf("save program %q: %w", name, err)
	}

	if err := tx.Commit(); err != nil {
		return Revision{}, false, fmt.Errorf("save program %q: commit: %w", name, err)
	}

	s.logger.Debug("program revision written",
		"program", name,
		"revision", rev.ID,
		"seq", rev.Seq,
		"lines", rev.Lines,
		"hash", rev.Hash)

	return rev, true, nil
}

func writeLines(ctx context.Context, tx *sql.Tx, revisionID string, insts []ir.Instruction) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO lines (revision_id, seq, text, instruction)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare line insert: %w", err)
	}
	defer stmt.Close()

	for i, inst := range insts {
		data, err := marshalInstruction(inst)
		if err != nil {
			return fmt.Errorf("line %d: %w", i, err)
		}
		if _, err := stmt.ExecContext(ctx, revisionID, i, codec.Encode(inst), data); err != nil {
			return fmt.Errorf("write line %d: %w", i, err)
		}
	}
	return nil
}
