package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/cl1/internal/ir"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// ProgramInfo summarizes a stored program.
type ProgramInfo struct {
	Name      string   `json:"name"`
	Revisions int64    `json:"revisions"`
	Latest    Revision `json:"latest"`
}

// LoadProgram returns the instructions of the latest revision of name.
// It returns an error wrapping ErrNotFound if the program does not exist.
func (s *Store) LoadProgram(ctx context.Context, name string) ([]ir.Instruction, Revision, error) {
	rev, err := latestRevision(ctx, s.db, name)
	if err != nil {
		return nil, Revision{}, fmt.Errorf("load program %q: %w", name, err)
	}

	insts, err := s.readLines(ctx, rev.ID)
	if err != nil {
		return nil, Revision{}, fmt.Errorf("load program %q: %w", name, err)
	}
	return insts, rev, nil
}

// LoadRevision returns the instructions of a specific revision by ID.
func (s *Store) LoadRevision(ctx context.Context, id string) ([]ir.Instruction, Revision, error) {
	rev, err := scanRevision(s.db.QueryRowContext(ctx, `
		SELECT id, program, seq, content_hash, ir_version, line_count
		FROM revisions
		WHERE id = ?
	`, id))
	if err != nil {
		return nil, Revision{}, fmt.Errorf("load revision %s: %w", id, err)
	}

	insts, err := s.readLines(ctx, rev.ID)
	if err != nil {
		return nil, Revision{}, fmt.Errorf("load revision %s: %w", id, err)
	}
	return insts, rev, nil
}

// Revisions returns every revision of name in ascending seq order.
// Returns an empty slice (not nil) if the program has no revisions.
func (s *Store) Revisions(ctx context.Context, name string) ([]Revision, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, program, seq, content_hash, ir_version, line_count
		FROM revisions
		WHERE program = ?
		ORDER BY seq ASC
	`, name)
	if err != nil {
		return nil, fmt.Errorf("query revisions: %w", err)
	}
	defer rows.Close()

	revs := []Revision{}
	for rows.Next() {
		var rev Revision
		if err := rows.Scan(&rev.ID, &rev.Program, &rev.Seq, &rev.Hash, &rev.IRVersion, &rev.Lines); err != nil {
			return nil, fmt.Errorf("scan revision: %w", err)
		}
		revs = append(revs, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate revisions: %w", err)
	}
	return revs, nil
}

// ListPrograms returns every stored program with its latest revision,
// ordered by name (binary collation).
func (s *Store) ListPrograms(ctx context.Context) ([]ProgramInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.program, c.n, r.id, r.seq, r.content_hash, r.ir_version, r.line_count
		FROM revisions r
		JOIN (
			SELECT program, MAX(seq) AS latest, COUNT(*) AS n
			FROM revisions
			GROUP BY program
		) c ON c.program = r.program AND c.latest = r.seq
		ORDER BY r.program COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query programs: %w", err)
	}
	defer rows.Close()

	programs := []ProgramInfo{}
	for rows.Next() {
		var p ProgramInfo
		if err := rows.Scan(&p.Name, &p.Revisions, &p.Latest.ID, &p.Latest.Seq,
			&p.Latest.Hash, &p.Latest.IRVersion, &p.Latest.Lines); err != nil {
			return nil, fmt.Errorf("scan program: %w", err)
		}
		p.Latest.Program = p.Name
		programs = append(programs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate programs: %w", err)
	}
	return programs, nil
}

func latestRevision(ctx context.Context, q querier, name string) (Revision, error) {
	return scanRevision(q.QueryRowContext(ctx, `
		SELECT id, program, seq, content_hash, ir_version, line_count
		FROM revisions
		WHERE program = ?
		ORDER BY seq DESC
		LIMIT 1
	`, name))
}

func scanRevision(row *sql.Row) (Revision, error) {
	var rev Revision
	err := row.Scan(&rev.ID, &rev.Program, &rev.Seq, &rev.Hash, &rev.IRVersion, &rev.Lines)
	if errors.Is(err, sql.ErrNoRows) {
		return Revision{}, ErrNotFound
	}
	if err != nil {
		return Revision{}, fmt.Errorf("scan revision: %w", err)
	}
	return rev, nil
}

// readLines returns the instructions of a revision in seq order.
func (s *Store) readLines(ctx context.Context, revisionID string) ([]ir.Instruction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, instruction
		FROM lines
		WHERE revision_id = ?
		ORDER BY seq ASC
	`, revisionID)
	if err != nil {
		return nil, fmt.Errorf("query lines: %w", err)
	}
	defer rows.Close()

	insts := []ir.Instruction{}
	for rows.Next() {
		var (
			seq  int64
			data string
		)
		if err := rows.Scan(&seq, &data); err != nil {
			return nil, fmt.Errorf("scan line: %w", err)
		}
		inst, err := unmarshalInstruction(data)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", seq, err)
		}
		insts = append(insts, inst)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lines: %w", err)
	}
	return insts, nil
}
