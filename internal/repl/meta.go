package repl

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"ridgedb/internal/node"
	"ridgedb/internal/row"
)

type metaResult int

const (
	metaSuccess metaResult = iota
	metaUnrecognized
	metaExit
)

func (r *REPL) doMetaCommand(line string) metaResult {
	switch line {
	case ".exit":
		return metaExit
	case ".btree":
		fmt.Fprintln(r.out, "Tree:")
		if err := r.printTree(r.table.RootPageNum, 0); err != nil {
			logFatalf(err, "repl: fatal error walking tree")
		}
		return metaSuccess
	case ".constants":
		fmt.Fprintln(r.out, "Constants:")
		r.printConstants()
		return metaSuccess
	default:
		return metaUnrecognized
	}
}

func (r *REPL) printConstants() {
	tw := tablewriter.NewWriter(r.out)
	tw.SetHeader([]string{"Constant", "Value"})
	tw.SetAutoFormatHeaders(false)
	tw.Append([]string{"ROW_SIZE", strconv.Itoa(row.Size)})
	tw.Append([]string{"COMMON_NODE_HEADER_SIZE", strconv.Itoa(node.CommonHeaderSize)})
	tw.Append([]string{"LEAF_NODE_HEADER_SIZE", strconv.Itoa(node.LeafHeaderSize)})
	tw.Append([]string{"LEAF_NODE_CELL_SIZE", strconv.Itoa(node.LeafCellSize)})
	tw.Append([]string{"LEAF_NODE_SPACE_FOR_CELLS", strconv.Itoa(node.LeafSpaceForCells)})
	tw.Append([]string{"LEAF_NODE_MAX_CELLS", strconv.Itoa(node.LeafMaxCells)})
	tw.Render()
}

func (r *REPL) printTree(pageNum uint32, indentLevel int) error {
	page, err := r.table.Pager.GetPage(pageNum)
	if err != nil {
		return err
	}

	indent := func(level int) {
		for i := 0; i < level; i++ {
			fmt.Fprint(r.out, "  ")
		}
	}

	switch node.GetType(page) {
	case node.Leaf:
		numCells := node.LeafNumCells(page)
		indent(indentLevel)
		fmt.Fprintf(r.out, "- leaf (size %d)\n", numCells)
		for i := uint32(0); i < numCells; i++ {
			indent(indentLevel + 1)
			fmt.Fprintf(r.out, "- key %d\n", node.LeafKey(page, i))
		}

	case node.Internal:
		numKeys := node.InternalNumKeys(page)
		indent(indentLevel)
		fmt.Fprintf(r.out, "- internal (size %d)\n", numKeys)
		for i := uint32(0); i < numKeys; i++ {
			child := node.InternalChild(page, i)
			if err := r.printTree(child, indentLevel+1); err != nil {
				return err
			}
			indent(indentLevel + 1)
			fmt.Fprintf(r.out, "- key %d\n", node.InternalKey(page, i))
		}
		if err := r.printTree(node.InternalRightChild(page), indentLevel+1); err != nil {
			return err
		}
	}

	return nil
}
