// Command ridgedb is the CLI entrypoint: it opens a single database file
// and runs the interactive REPL against it.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/chzyer/readline"
	"github.com/sirupsen/logrus"

	"ridgedb/internal/repl"
	"ridgedb/internal/table"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Must supply a database filename.")
		os.Exit(1)
	}
	filename := os.Args[1]

	t, err := table.Open(filename)
	if err != nil {
		logrus.WithError(err).WithField("file", filename).Fatal("ridgedb: could not open database")
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "",
		HistoryFile:     "",
		InterruptPrompt: "^C",
		EOFPrompt:       "",
	})
	if err != nil {
		logrus.WithError(err).Fatal("ridgedb: could not start line editor")
	}
	defer rl.Close()

	r := repl.New(t, rl, os.Stdout)
	if err := r.Run(); err != nil && !errors.Is(err, repl.ErrExit) {
		logrus.WithError(err).Fatal("ridgedb: fatal error")
	}
}
