package table

import (
	"ridgedb/internal/node"
	"ridgedb/internal/row"
)

// Cursor is a mutable position within a Table: a page number and a cell
// index on that page, plus an end-of-table flag for scans. A cursor is
// valid only until some other cursor mutates the page it targets.
type Cursor struct {
	Table      *Table
	PageNum    uint32
	CellNum    uint32
	EndOfTable bool
}

// Value returns the row bytes at the cursor's position. The slice aliases
// the pager's page buffer; callers must not retain it past the next mutation
// of that page.
func (c *Cursor) Value() ([]byte, error) {
	page, err := c.Table.Pager.GetPage(c.PageNum)
	if err != nil {
		return nil, err
	}
	return node.LeafValue(page, c.CellNum), nil
}

// Advance moves the cursor to the next cell, setting EndOfTable once it runs
// past the leaf's last cell. Chasing a sibling leaf pointer is out of scope:
// a scan never leaves the leaf it started on.
func (c *Cursor) Advance() error {
	page, err := c.Table.Pager.GetPage(c.PageNum)
	if err != nil {
		return err
	}
	c.CellNum++
	if c.CellNum >= node.LeafNumCells(page) {
		c.EndOfTable = true
	}
	return nil
}

// Insert writes (key, r) at the cursor's position, shifting later cells
// right, or splits the leaf if it is already full.
func (c *Cursor) Insert(key uint32, r row.Row) error {
	page, err := c.Table.Pager.GetPage(c.PageNum)
	if err != nil {
		return err
	}

	numCells := node.LeafNumCells(page)
	if numCells >= node.LeafMaxCells {
		return c.splitAndInsert(key, r)
	}

	if c.CellNum < numCells {
		for i := numCells; i > c.CellNum; i-- {
			copy(node.LeafCell(page, i), node.LeafCell(page, i-1))
		}
	}

	node.SetLeafNumCells(page, numCells+1)
	node.SetLeafKey(page, c.CellNum, key)
	row.Serialize(r, node.LeafValue(page, c.CellNum))
	return nil
}

// splitAndInsert divides a full leaf into two: the LeafLeftSplitCount
// lowest-sorting cells stay in place, the LeafRightSplitCount
// highest-sorting cells move to a freshly allocated leaf. It walks final
// sorted positions from high to low so that every source cell is read
// before the slot it occupies is ever overwritten.
func (c *Cursor) splitAndInsert(key uint32, r row.Row) error {
	oldPage, err := c.Table.Pager.GetPage(c.PageNum)
	if err != nil {
		return err
	}

	newPageNum, err := c.Table.Pager.AllocatePage()
	if err != nil {
		return err
	}
	newPage, err := c.Table.Pager.GetPage(newPageNum)
	if err != nil {
		return err
	}
	node.InitializeLeaf(newPage)
	node.SetParent(newPage, node.Parent(oldPage))

	const total = node.LeafMaxCells + 1
	const left = node.LeafLeftSplitCount

	for i := uint32(total) - 1; ; i-- {
		destPage := oldPage
		if i >= left {
			destPage = newPage
		}
		slot := i % left

		switch {
		case i == c.CellNum:
			node.SetLeafKey(destPage, slot, key)
			row.Serialize(r, node.LeafValue(destPage, slot))
		case i > c.CellNum:
			copy(node.LeafCell(destPage, slot), node.LeafCell(oldPage, i-1))
		default:
			copy(node.LeafCell(destPage, slot), node.LeafCell(oldPage, i))
		}

		if i == 0 {
			break
		}
	}

	node.SetLeafNumCells(oldPage, left)
	node.SetLeafNumCells(newPage, node.LeafRightSplitCount)

	if node.IsRoot(oldPage) {
		return c.Table.CreateNewRoot(newPageNum)
	}
	return ErrUnimplementedParentUpdate
}
