// Package executor translates parsed insert/select statements into table
// and cursor operations. It has no knowledge of how a statement was
// tokenized or how its output is displayed.
package executor

import (
	"errors"
	"fmt"
	"io"

	"ridgedb/internal/node"
	"ridgedb/internal/row"
	"ridgedb/internal/table"
)

// ErrDuplicateKey is returned by Insert when a row with the same id is
// already present.
var ErrDuplicateKey = errors.New("executor: duplicate key")

// Executor runs statements against a single table.
type Executor struct {
	Table *table.Table
}

// New wraps t for statement execution.
func New(t *table.Table) *Executor {
	return &Executor{Table: t}
}

// Insert finds r.ID's position and rejects a collision, otherwise inserting.
func (e *Executor) Insert(r row.Row) error {
	cursor, err := e.Table.Find(r.ID)
	if err != nil {
		return err
	}

	page, err := cursor.Table.Pager.GetPage(cursor.PageNum)
	if err != nil {
		return err
	}
	if cursor.CellNum < node.LeafNumCells(page) && node.LeafKey(page, cursor.CellNum) == r.ID {
		return ErrDuplicateKey
	}

	return cursor.Insert(r.ID, r)
}

// Select walks the rows of the root leaf in ascending key order, writing one
// formatted line per row to w, matching the select output format exactly.
// It reads the root page as a leaf, so once the root has split into an
// internal node it does not return the table's rows.
func (e *Executor) Select(w io.Writer) error {
	cursor, err := e.Table.ScanStart()
	if err != nil {
		return err
	}

	for !cursor.EndOfTable {
		value, err := cursor.Value()
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, row.Deserialize(value).String()); err != nil {
			return err
		}
		if err := cursor.Advance(); err != nil {
			return err
		}
	}

	return nil
}
