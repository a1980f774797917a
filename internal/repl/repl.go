// Package repl is the external collaborator described by the storage
// engine's interfaces: the prompt loop, meta-commands, statement parsing,
// and diagnostics. It talks to the engine through internal/table and
// internal/executor, and reads internal/node and internal/row directly for
// the .btree and .constants debug output.
package repl

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/sirupsen/logrus"

	"ridgedb/internal/executor"
	"ridgedb/internal/table"
)

// ErrExit is returned by Run after a clean ".exit" shutdown, letting the
// caller distinguish it from an error return.
var ErrExit = errors.New("repl: exit")

// lineReader is satisfied by *readline.Instance and by test doubles; it is
// the entire surface this package needs from a line editor.
type lineReader interface {
	Readline() (string, error)
}

// REPL runs the prompt loop against a single table.
type REPL struct {
	table *table.Table
	exec  *executor.Executor
	rl    lineReader
	out   io.Writer
}

// New wraps t for interactive use. rl supplies input lines (ordinarily a
// *readline.Instance); out receives the prompt, diagnostics, and query
// output.
func New(t *table.Table, rl lineReader, out io.Writer) *REPL {
	return &REPL{table: t, exec: executor.New(t), rl: rl, out: out}
}

// Run reads and dispatches lines until ".exit", EOF, or an interrupt. It
// returns ErrExit on a clean shutdown and terminates the process via
// logrus.Fatal on any fatal condition surfaced by the storage layer.
func (r *REPL) Run() error {
	for {
		fmt.Fprint(r.out, "db > ")

		line, err := r.rl.Readline()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
				return r.exit()
			}
			return fmt.Errorf("repl: reading input: %w", err)
		}
		line = strings.TrimRight(line, "\n\r")

		if strings.HasPrefix(line, ".") {
			switch r.doMetaCommand(line) {
			case metaExit:
				return r.exit()
			case metaUnrecognized:
				fmt.Fprintf(r.out, "Unrecognized command: %s\n", line)
			}
			continue
		}

		stmt, err := parseStatement(line)
		if err != nil {
			fmt.Fprintln(r.out, err)
			continue
		}

		r.execute(stmt)
	}
}

func (r *REPL) execute(stmt statement) {
	switch stmt.kind {
	case statementInsert:
		switch err := r.exec.Insert(stmt.row); {
		case err == nil:
			fmt.Fprintln(r.out, "Executed.")
		case errors.Is(err, executor.ErrDuplicateKey):
			fmt.Fprintln(r.out, "Error: Duplicate key.")
		case errors.Is(err, table.ErrUnimplementedInternalSearch), errors.Is(err, table.ErrUnimplementedParentUpdate):
			logFatalf(err, "repl: unsupported tree shape for insert")
		default:
			logFatalf(err, "repl: fatal error during insert")
		}

	case statementSelect:
		if err := r.exec.Select(r.out); err != nil {
			logFatalf(err, "repl: fatal error during select")
		}
		fmt.Fprintln(r.out, "Executed.")
	}
}

func (r *REPL) exit() error {
	if err := r.table.Close(); err != nil {
		logFatalf(err, "repl: fatal error closing database")
	}
	fmt.Fprintln(r.out, "Bye!")
	return ErrExit
}

func logFatalf(err error, msg string) {
	logrus.WithError(err).Fatal(msg)
}
