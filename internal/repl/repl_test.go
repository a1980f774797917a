package repl_test

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"ridgedb/internal/repl"
	"ridgedb/internal/table"
)

// fakeLines feeds a fixed script of lines to a REPL under test, returning
// io.EOF once exhausted, the same contract chzyer/readline uses on Ctrl-D.
type fakeLines struct {
	lines []string
	pos   int
}

func (f *fakeLines) Readline() (string, error) {
	if f.pos >= len(f.lines) {
		return "", io.EOF
	}
	line := f.lines[f.pos]
	f.pos++
	return line, nil
}

func run(t *testing.T, dbPath string, lines []string) string {
	t.Helper()
	tbl, err := table.Open(dbPath)
	require.NoError(t, err)

	var out bytes.Buffer
	r := repl.New(tbl, &fakeLines{lines: lines}, &out)
	err = r.Run()
	require.True(t, errors.Is(err, repl.ErrExit) || errors.Is(err, io.EOF) || err == nil)
	return out.String()
}

func TestEmptySelect(t *testing.T) {
	out := run(t, filepath.Join(t.TempDir(), "db"), []string{"select", ".exit"})
	require.Contains(t, out, "Executed.")
}

func TestInsertAndSelectRoundTrip(t *testing.T) {
	out := run(t, filepath.Join(t.TempDir(), "db"), []string{
		"insert 1 alice alice@x",
		"select",
		".exit",
	})
	require.Contains(t, out, "Executed.")
	require.Contains(t, out, "(1, alice, alice@x)")
}

func TestDuplicateKeyRejected(t *testing.T) {
	out := run(t, filepath.Join(t.TempDir(), "db"), []string{
		"insert 1 alice alice@x",
		"insert 1 bob bob@y",
		"select",
		".exit",
	})
	require.Contains(t, out, "Error: Duplicate key.")
	require.Contains(t, out, "(1, alice, alice@x)")
	require.NotContains(t, out, "bob")
}

func TestPersistenceAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db")
	run(t, path, []string{"insert 1 alice alice@x", ".exit"})

	out := run(t, path, []string{"select", ".exit"})
	require.Contains(t, out, "(1, alice, alice@x)")
}

func TestOutOfOrderInsertPreservesOrder(t *testing.T) {
	out := run(t, filepath.Join(t.TempDir(), "db"), []string{
		"insert 3 c c@x",
		"insert 1 a a@x",
		"insert 2 b b@x",
		"select",
		".exit",
	})

	idx1 := indexOf(out, "(1, a, a@x)")
	idx2 := indexOf(out, "(2, b, b@x)")
	idx3 := indexOf(out, "(3, c, c@x)")
	require.True(t, idx1 >= 0 && idx1 < idx2 && idx2 < idx3)
}

func TestSyntaxAndValidationErrors(t *testing.T) {
	out := run(t, filepath.Join(t.TempDir(), "db"), []string{
		"insert",
		"insert -1 a a@x",
		"insert 1 " + string(make([]byte, 33)) + " a@x",
		"bogus",
		".unknown",
		".exit",
	})

	require.Contains(t, out, "Syntax error. Could not parse statement.")
	require.Contains(t, out, "ID must be positive.")
	require.Contains(t, out, "String is too long.")
	require.Contains(t, out, "Unrecognized keyword at start of 'bogus'.")
	require.Contains(t, out, "Unrecognized command: .unknown")
}

func TestConstantsAndBtreeMetaCommands(t *testing.T) {
	out := run(t, filepath.Join(t.TempDir(), "db"), []string{
		"insert 1 alice alice@x",
		".constants",
		".btree",
		".exit",
	})
	require.Contains(t, out, "Constants:")
	require.Contains(t, out, "LEAF_NODE_MAX_CELLS")
	require.Contains(t, out, "Tree:")
	require.Contains(t, out, "- leaf")
}

func indexOf(s, substr string) int {
	return bytes.Index([]byte(s), []byte(substr))
}
