package table

import (
	"fmt"

	"github.com/dshills/tablekeys/internal/engine/document"
	"github.com/dshills/tablekeys/internal/engine/transform"
)

// MoveTo collapses the selection to the start of the cell at (x, y) in the
// table that encloses the transform's current selection. Content is not
// changed, except that a cell without any text leaf gets an empty one to hold
// the caret. Coordinates outside the table fail the transform with
// ErrOutOfRange.
func MoveTo(t transform.Transform, x, y int) transform.Transform {
	if t.Err() != nil {
		return t
	}
	info, err := Locate(t.Document(), t.Selection())
	if err != nil {
		return t.Fail(err)
	}
	if !info.Contains(x, y) {
		return t.Fail(fmt.Errorf("%w: (%d,%d) in %dx%d table", ErrOutOfRange, x, y, info.Width, info.Height))
	}
	cell := CellAt(info.Table, x, y)
	if _, ok := t.Document().StartOf(cell.Key()); !ok {
		t = t.InsertNodeByKey(caretHolder(cell).Key(), 0, document.NewText(""))
	}
	return t.CollapseToStartOf(cell.Key())
}

// caretHolder returns the innermost first block of a cell with no text,
// which is where an empty leaf goes.
func caretHolder(cell *document.Node) *document.Node {
	n := cell
	for n.NumChildren() > 0 {
		n = n.Child(0)
	}
	return n
}

// MoveStep returns MoveTo as a transform step.
func MoveStep(x, y int) transform.Step {
	return func(t transform.Transform) transform.Transform {
		return MoveTo(t, x, y)
	}
}
