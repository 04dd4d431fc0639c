package table

import (
	"slices"

	"github.com/dshills/tablekeys/internal/engine/document"
	"github.com/dshills/tablekeys/internal/engine/transform"
)

// RowPosition places a new row relative to the focused row.
type RowPosition uint8

const (
	// Above inserts before the focused row.
	Above RowPosition = iota
	// Below inserts after the focused row.
	Below
	// After is a synonym for Below.
	After
)

// String returns the position name.
func (p RowPosition) String() string {
	switch p {
	case Above:
		return "above"
	case Below:
		return "below"
	case After:
		return "after"
	default:
		return "unknown"
	}
}

// ColumnSide places a new column relative to the focused column.
type ColumnSide uint8

const (
	// Left inserts before the focused column.
	Left ColumnSide = iota
	// Right inserts after the focused column.
	Right
)

// String returns the side name.
func (s ColumnSide) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// New builds a table node from rows of cell text. Short rows are padded with
// empty cells so the result always satisfies the shape invariant.
func New(rows [][]string) *document.Node {
	width := 0
	for _, r := range rows {
		width = max(width, len(r))
	}
	out := make([]*document.Node, len(rows))
	for y, r := range rows {
		cells := make([]*document.Node, width)
		for x := range cells {
			text := ""
			if x < len(r) {
				text = r[x]
			}
			cells[x] = NewCell(text)
		}
		out[y] = document.NewBlock(document.TypeRow, cells...)
	}
	return document.NewBlock(document.TypeTable, out...)
}

// NewCell creates a cell holding a single text leaf.
func NewCell(text string) *document.Node {
	return document.NewBlock(document.TypeCell, document.NewText(text))
}

// NewRow creates a row of width empty cells.
func NewRow(width int) *document.Node {
	cells := make([]*document.Node, width)
	for i := range cells {
		cells[i] = NewCell("")
	}
	return document.NewBlock(document.TypeRow, cells...)
}

// InsertRow inserts an empty row above or below the focused row.
// The selection is left where it was.
func InsertRow(t transform.Transform, pos RowPosition) transform.Transform {
	if t.Err() != nil {
		return t
	}
	info, err := Locate(t.Document(), t.Selection())
	if err != nil {
		return t.Fail(err)
	}

	index := info.Y
	if pos != Above {
		index++
	}
	return t.InsertNodeByKey(info.Table.Key(), index, NewRow(info.Width))
}

// InsertColumn inserts an empty cell into every row, left or right of the
// focused column. All rows change in a single edit.
func InsertColumn(t transform.Transform, side ColumnSide) transform.Transform {
	if t.Err() != nil {
		return t
	}
	info, err := Locate(t.Document(), t.Selection())
	if err != nil {
		return t.Fail(err)
	}

	index := info.X
	if side == Right {
		index++
	}
	rows := info.Table.Children()
	for y, row := range rows {
		rows[y] = row.WithChildren(slices.Insert(row.Children(), index, NewCell("")))
	}
	return t.ReplaceNodeByKey(info.Table.Key(), info.Table.WithChildren(rows))
}

// InsertRowStep returns InsertRow as a transform step.
func InsertRowStep(pos RowPosition) transform.Step {
	return func(t transform.Transform) transform.Transform {
		return InsertRow(t, pos)
	}
}

// InsertColumnStep returns InsertColumn as a transform step.
func InsertColumnStep(side ColumnSide) transform.Step {
	return func(t transform.Transform) transform.Transform {
		return InsertColumn(t, side)
	}
}
