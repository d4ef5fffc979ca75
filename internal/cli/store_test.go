package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/cl1/internal/store"
)

func TestStoreSaveShowList(t *testing.T) {
	db := filepath.Join(t.TempDir(), "programs.db")

	out, _, err := execute(t, "store", "save", counterFile, "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ saved counter revision 1")

	out, _, err = execute(t, "store", "save", counterFile, "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ counter unchanged at revision 1")

	out, _, err = execute(t, "store", "show", "counter", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "# counter revision 1 (")
	assert.Contains(t, out, "\n:loop\nInit 0 1\nAdd 1 n 1.5 1\n")

	out, _, err = execute(t, "store", "list", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "counter")
	assert.Contains(t, out, "rev 1")
}

func TestStoreSaveJSON(t *testing.T) {
	db := filepath.Join(t.TempDir(), "programs.db")

	out, _, err := execute(t, "store", "save", counterFile, "--db", db, "--name", "loop", "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   SaveResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, resp.Data.Created)
	assert.Equal(t, "loop", resp.Data.Revision.Program)
	assert.Equal(t, int64(1), resp.Data.Revision.Seq)
	assert.Equal(t, 7, resp.Data.Revision.Lines)
}

func TestStoreShowRevision(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "programs.db")
	path := filepath.Join(dir, "p.cl1")

	require.NoError(t, os.WriteFile(path, []byte("Init 1 0\n"), 0o644))
	out, _, err := execute(t, "store", "save", path, "--db", db, "--format", "json")
	require.NoError(t, err)

	var first struct {
		Data SaveResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &first))

	require.NoError(t, os.WriteFile(path, []byte("Init 2 0\n"), 0o644))
	_, _, err = execute(t, "store", "save", path, "--db", db)
	require.NoError(t, err)

	out, _, err = execute(t, "store", "show", "p", "--db", db, "--revision", first.Data.Revision.ID, "--format", "json")
	require.NoError(t, err)

	var shown struct {
		Data ShowResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &shown))
	assert.Equal(t, first.Data.Revision, shown.Data.Revision)
	assert.Equal(t, []string{"Init 1 0"}, shown.Data.Listing)

	_, _, err = execute(t, "store", "show", "other", "--db", db, "--revision", first.Data.Revision.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStoreShowMissingProgram(t *testing.T) {
	db := filepath.Join(t.TempDir(), "programs.db")

	out, _, err := execute(t, "store", "show", "nope", "--db", db)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E005]")
}

func TestStoreListEmpty(t *testing.T) {
	db := filepath.Join(t.TempDir(), "programs.db")

	out, _, err := execute(t, "store", "list", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "No programs stored.")

	out, _, err = execute(t, "store", "list", "--db", db, "--format", "json")
	require.NoError(t, err)
	assert.Equal(t, "{\"status\":\"ok\",\"data\":[]}\n", out)
}

func TestStoreRequiresDatabase(t *testing.T) {
	_, _, err := execute(t, "store", "list")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "no database")
}

func TestStoreSaveRejectsBrokenProgram(t *testing.T) {
	db := filepath.Join(t.TempDir(), "programs.db")

	_, _, err := execute(t, "store", "save", brokenFile, "--db", db)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}
