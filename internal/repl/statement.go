package repl

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"ridgedb/internal/row"
)

type statementKind int

const (
	statementInsert statementKind = iota
	statementSelect
)

type statement struct {
	kind statementKind
	row  row.Row
}

// Parse errors, surfaced verbatim as the REPL's diagnostic text.
var (
	ErrSyntax        = errors.New("Syntax error. Could not parse statement.")
	ErrNegativeID    = errors.New("ID must be positive.")
	ErrStringTooLong = errors.New("String is too long.")
)

// errUnrecognized carries the offending input so its message can embed it,
// mirroring the "Unrecognized keyword at start of '%s'." format exactly.
type errUnrecognized struct {
	line string
}

func (e *errUnrecognized) Error() string {
	return fmt.Sprintf("Unrecognized keyword at start of '%s'.", e.line)
}

func parseStatement(line string) (statement, error) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return statement{}, &errUnrecognized{line: line}
	}

	switch tokens[0] {
	case "insert":
		return parseInsert(tokens)
	case "select":
		return statement{kind: statementSelect}, nil
	default:
		return statement{}, &errUnrecognized{line: line}
	}
}

func parseInsert(tokens []string) (statement, error) {
	if len(tokens) != 4 {
		return statement{}, ErrSyntax
	}

	id, err := strconv.Atoi(tokens[1])
	if err != nil {
		return statement{}, ErrSyntax
	}
	if id < 0 {
		return statement{}, ErrNegativeID
	}

	r := row.Row{ID: uint32(id), Username: tokens[2], Email: tokens[3]}
	if r.TooLong() {
		return statement{}, ErrStringTooLong
	}

	return statement{kind: statementInsert, row: r}, nil
}
