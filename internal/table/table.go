// Package table owns a pager and the root page number of a single B-tree,
// and positions cursors against it. It knows the tree's shape (leaf vs
// internal, root replacement) but nothing about statement parsing.
package table

import (
	"errors"
	"fmt"

	"ridgedb/internal/node"
	"ridgedb/internal/pager"
)

// ErrUnimplementedInternalSearch is returned by Find when the root has
// already split into an internal node. Descending past the root is a
// documented extension point, not a supported path: the terminal form of
// this engine only ever searches a single leaf.
var ErrUnimplementedInternalSearch = errors.New("table: need to implement searching an internal node")

// ErrUnimplementedParentUpdate is returned by a leaf split when the
// splitting node is not the root. Adding the new leaf to the existing parent
// internal node is the other documented extension point this engine leaves
// unimplemented.
var ErrUnimplementedParentUpdate = errors.New("table: need to implement updating parent after split")

// Table is a single B-tree: a pager plus the page number of its root. The
// root page number never changes once assigned.
type Table struct {
	Pager       *pager.Pager
	RootPageNum uint32
}

// Open opens filename's pager and, if the file was empty, bootstraps page 0
// as an empty leaf root.
func Open(filename string) (*Table, error) {
	p, err := pager.Open(filename)
	if err != nil {
		return nil, err
	}

	t := &Table{Pager: p, RootPageNum: 0}

	if p.NumPages() == 0 {
		root, err := p.GetPage(0)
		if err != nil {
			return nil, err
		}
		node.InitializeLeaf(root)
		node.SetRoot(root, true)
	}

	return t, nil
}

// Close flushes and closes the underlying pager. The table must not be used
// afterward.
func (t *Table) Close() error {
	return t.Pager.Close()
}

// Find returns a cursor positioned at key, or at the index key would sort
// into if absent. It only supports a leaf root; see ErrUnimplementedInternalSearch.
func (t *Table) Find(key uint32) (*Cursor, error) {
	root, err := t.Pager.GetPage(t.RootPageNum)
	if err != nil {
		return nil, err
	}

	if node.GetType(root) == node.Leaf {
		return t.leafFind(t.RootPageNum, key)
	}

	// Descent into an internal root is not implemented: once the root has
	// split, Find returns ErrUnimplementedInternalSearch. The descent would be:
	//
	//   i := smallest index with InternalKey(root, i) >= key
	//   if i < InternalNumKeys(root): recurse into InternalChild(root, i)
	//   else: recurse into InternalRightChild(root)
	return nil, fmt.Errorf("%w: root page %d", ErrUnimplementedInternalSearch, t.RootPageNum)
}

func (t *Table) leafFind(pageNum, key uint32) (*Cursor, error) {
	page, err := t.Pager.GetPage(pageNum)
	if err != nil {
		return nil, err
	}

	numCells := node.LeafNumCells(page)
	lo, hi := uint32(0), numCells
	for lo < hi {
		mid := lo + (hi-lo)/2
		switch midKey := node.LeafKey(page, mid); {
		case key == midKey:
			return &Cursor{Table: t, PageNum: pageNum, CellNum: mid}, nil
		case key < midKey:
			hi = mid
		default:
			lo = mid + 1
		}
	}

	return &Cursor{Table: t, PageNum: pageNum, CellNum: lo}, nil
}

// ScanStart returns a cursor at the first cell of the root leaf. It is only
// meaningful while the root is a leaf.
func (t *Table) ScanStart() (*Cursor, error) {
	root, err := t.Pager.GetPage(t.RootPageNum)
	if err != nil {
		return nil, err
	}
	numCells := node.LeafNumCells(root)
	return &Cursor{Table: t, PageNum: t.RootPageNum, EndOfTable: numCells == 0}, nil
}

// CreateNewRoot performs the root-replacement trick: the current root's
// bytes move to a freshly allocated page that becomes the left child, and
// the root page itself is rewritten as an internal node with that new page
// and rightChildPageNum as its two children. root_page_num never changes.
func (t *Table) CreateNewRoot(rightChildPageNum uint32) error {
	root, err := t.Pager.GetPage(t.RootPageNum)
	if err != nil {
		return err
	}

	leftPageNum, err := t.Pager.AllocatePage()
	if err != nil {
		return err
	}
	leftPage, err := t.Pager.GetPage(leftPageNum)
	if err != nil {
		return err
	}
	copy(leftPage, root)
	node.SetRoot(leftPage, false)
	node.SetParent(leftPage, t.RootPageNum)

	rightPage, err := t.Pager.GetPage(rightChildPageNum)
	if err != nil {
		return err
	}
	node.SetParent(rightPage, t.RootPageNum)

	node.InitializeInternal(root)
	node.SetRoot(root, true)
	node.SetInternalNumKeys(root, 1)
	node.SetInternalChild(root, 0, leftPageNum)
	node.SetInternalKey(root, 0, node.MaxKey(leftPage))
	node.SetInternalRightChild(root, rightChildPageNum)

	return nil
}
