package table

import (
	"errors"
	"fmt"

	"github.com/dshills/tablekeys/internal/engine/document"
)

// Table errors.
var (
	// ErrNotInTable indicates the selection focus has no table ancestor.
	ErrNotInTable = errors.New("table: selection is not inside a table")

	// ErrMalformedTable indicates a table breaks the row/cell shape invariant.
	ErrMalformedTable = errors.New("table: malformed table")

	// ErrOutOfRange indicates target coordinates fall outside the table.
	ErrOutOfRange = errors.New("table: coordinates out of range")
)

// Info is the geometry of the table around a selection.
// It is derived per command and never stored.
type Info struct {
	// Table is the enclosing table node.
	Table *document.Node

	// Width is the number of cells in each row.
	Width int

	// Height is the number of rows.
	Height int

	// X is the focused cell's column.
	X int

	// Y is the focused cell's row.
	Y int
}

// IsLastRow returns true if the focused cell is in the bottom row.
func (i Info) IsLastRow() bool {
	return i.Y == i.Height-1
}

// IsFirstRow returns true if the focused cell is in the top row.
func (i Info) IsFirstRow() bool {
	return i.Y == 0
}

// IsLastColumn returns true if the focused cell is in the rightmost column.
func (i Info) IsLastColumn() bool {
	return i.X == i.Width-1
}

// Contains reports whether (x, y) addresses a cell of the table.
func (i Info) Contains(x, y int) bool {
	return x >= 0 && x < i.Width && y >= 0 && y < i.Height
}

// Locate finds the table enclosing the selection focus.
// It returns ErrNotInTable if there is none.
func Locate(doc *document.Document, sel document.Selection) (Info, error) {
	focus := sel.Focus.Key
	tbl := doc.FindAncestor(focus, document.TypeTable)
	if tbl == nil {
		return Info{}, ErrNotInTable
	}

	width, height, err := Shape(tbl)
	if err != nil {
		return Info{}, err
	}

	var row, cell *document.Node
	for _, a := range doc.Ancestors(focus) {
		if a.Key() == tbl.Key() {
			break
		}
		switch a.Type() {
		case document.TypeRow:
			row = a
		case document.TypeCell:
			cell = a
		}
	}
	if row == nil || cell == nil {
		return Info{}, fmt.Errorf("%w: focus %q is not inside a cell", ErrMalformedTable, focus)
	}

	return Info{
		Table:  tbl,
		Width:  width,
		Height: height,
		X:      doc.IndexOf(cell.Key()),
		Y:      doc.IndexOf(row.Key()),
	}, nil
}

// Shape validates the table invariant and returns the table's width and height.
func Shape(tbl *document.Node) (width, height int, err error) {
	if tbl.Type() != document.TypeTable {
		return 0, 0, fmt.Errorf("%w: %q is a %s", ErrMalformedTable, tbl.Key(), tbl.Type())
	}
	height = tbl.NumChildren()
	if height == 0 {
		return 0, 0, fmt.Errorf("%w: %q has no rows", ErrMalformedTable, tbl.Key())
	}

	for y, row := range tbl.Children() {
		if row.Type() != document.TypeRow {
			return 0, 0, fmt.Errorf("%w: child %d of %q is a %s", ErrMalformedTable, y, tbl.Key(), row.Type())
		}
		if y == 0 {
			width = row.NumChildren()
		}
		if row.NumChildren() != width {
			return 0, 0, fmt.Errorf("%w: row %d has %d cells, want %d", ErrMalformedTable, y, row.NumChildren(), width)
		}
		for x, cell := range row.Children() {
			if cell.Type() != document.TypeCell {
				return 0, 0, fmt.Errorf("%w: cell (%d,%d) is a %s", ErrMalformedTable, x, y, cell.Type())
			}
		}
	}
	if width == 0 {
		return 0, 0, fmt.Errorf("%w: %q has empty rows", ErrMalformedTable, tbl.Key())
	}
	return width, height, nil
}

// CellAt returns the cell at (x, y) of a well-formed table, or nil.
func CellAt(tbl *document.Node, x, y int) *document.Node {
	row := tbl.Child(y)
	if row == nil {
		return nil
	}
	return row.Child(x)
}
