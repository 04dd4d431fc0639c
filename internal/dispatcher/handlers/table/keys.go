package table

import (
	"fmt"

	"github.com/dshills/tablekeys/internal/dispatcher/handler"
	"github.com/dshills/tablekeys/internal/engine/document"
	"github.com/dshills/tablekeys/internal/engine/transform"
	"github.com/dshills/tablekeys/internal/input/key"
	tbl "github.com/dshills/tablekeys/internal/table"
)

// onDelete handles Backspace and Delete.
func (h *Handler) onDelete(c command) handler.Result {
	start, end := c.doc.Ordered(c.sel)
	startBlock := c.doc.ClosestBlock(start.Key)
	endBlock := c.doc.ClosestBlock(end.Key)
	if startBlock == nil || endBlock == nil {
		return handler.Errorf("table: selection %s has no enclosing block", c.sel)
	}
	sameBlock := startBlock.Key() == endBlock.Key()

	// Clear cell contents.
	if sameBlock && c.structural {
		return h.finish(transform.New(c.doc, c.sel).
			ClearBlock(startBlock.Key()).
			CollapseToStartOf(startBlock.Key()))
	}

	// Deleting at the start of a cell would merge it into the previous one.
	if c.sel.IsCollapsed() && c.doc.BlockOffset(start) == 0 {
		return handler.Suppress()
	}
	if sameBlock {
		return handler.Decline()
	}

	// Every cell the range touches is emptied, even when only part of it
	// is selected.
	t := transform.New(c.doc, c.sel)
	for _, block := range c.doc.BlocksInRange(start, end) {
		if block.Type() != document.TypeCell {
			continue
		}
		t = t.ClearBlock(block.Key())
	}
	focusBlock := c.doc.ClosestBlock(c.sel.Focus.Key)
	return h.finish(t.CollapseToStartOf(focusBlock.Key()))
}

// onDown handles the down arrow.
func (h *Handler) onDown(c command) transform.Transform {
	t := transform.New(c.doc, c.sel)
	x, y := c.info.X, c.info.Y

	if c.structural {
		return transform.Flow(t,
			tbl.InsertRowStep(tbl.Below),
			tbl.MoveStep(x, y+1),
		)
	}
	if c.exit || c.info.IsLastRow() {
		return exitBelow(t, c.info.Table)
	}
	return tbl.MoveTo(t, x, y+1)
}

// onUp handles the up arrow.
func (h *Handler) onUp(c command) transform.Transform {
	t := transform.New(c.doc, c.sel)
	x, y := c.info.X, c.info.Y

	if c.structural {
		return transform.Flow(t,
			tbl.InsertRowStep(tbl.Above),
			tbl.MoveStep(x, y),
		)
	}
	if c.exit {
		return exitAbove(t, c.info.Table)
	}
	if c.info.IsFirstRow() {
		prev := c.doc.PreviousSibling(c.info.Table.Key())
		if prev != nil {
			if _, ok := c.doc.StartOf(prev.Key()); ok {
				return t.CollapseToStartOf(prev.Key())
			}
		}
		// Nothing above to land in; stay at the start of the current cell.
		return tbl.MoveTo(t, x, y)
	}
	return tbl.MoveTo(t, x, y-1)
}

// onEnter handles Enter.
func (h *Handler) onEnter(c command) transform.Transform {
	t := transform.New(c.doc, c.sel)
	x, y := c.info.X, c.info.Y

	if c.info.IsLastRow() {
		return transform.Flow(t,
			tbl.InsertRowStep(tbl.After),
			tbl.MoveStep(0, y+1),
		)
	}
	return tbl.MoveTo(t, x, y+1)
}

// onTab handles Tab.
func (h *Handler) onTab(c command) transform.Transform {
	t := transform.New(c.doc, c.sel)
	x, y := c.info.X, c.info.Y

	if c.info.IsLastColumn() && c.info.IsLastRow() {
		return transform.Flow(t,
			tbl.InsertRowStep(tbl.After),
			tbl.MoveStep(0, y+1),
		)
	}
	if c.info.IsLastColumn() {
		return tbl.MoveTo(t, 0, y+1)
	}
	return tbl.MoveTo(t, x+1, y)
}

// onInsertColumn handles the structural chord on Left and Right.
// The caret lands in the new, empty column.
func (h *Handler) onInsertColumn(c command) transform.Transform {
	t := transform.New(c.doc, c.sel)
	x, y := c.info.X, c.info.Y

	if c.ev.Key == key.KeyLeft {
		return transform.Flow(t,
			tbl.InsertColumnStep(tbl.Left),
			tbl.MoveStep(x, y),
		)
	}
	return transform.Flow(t,
		tbl.InsertColumnStep(tbl.Right),
		tbl.MoveStep(x+1, y),
	)
}

// exitBelow moves to the start of the block after the table, inserting an
// empty paragraph when there is none to land in.
func exitBelow(t transform.Transform, table *document.Node) transform.Transform {
	doc := t.Document()
	if next := doc.NextSibling(table.Key()); next != nil {
		if _, ok := doc.StartOf(next.Key()); ok {
			return t.CollapseToStartOf(next.Key())
		}
	}
	return insertParagraph(t, table, doc.IndexOf(table.Key())+1)
}

// exitAbove moves to the start of the block before the table, inserting an
// empty paragraph when there is none to land in.
func exitAbove(t transform.Transform, table *document.Node) transform.Transform {
	doc := t.Document()
	if prev := doc.PreviousSibling(table.Key()); prev != nil {
		if _, ok := doc.StartOf(prev.Key()); ok {
			return t.CollapseToStartOf(prev.Key())
		}
	}
	return insertParagraph(t, table, doc.IndexOf(table.Key()))
}

func insertParagraph(t transform.Transform, table *document.Node, index int) transform.Transform {
	parent := t.Document().Parent(table.Key())
	if parent == nil {
		return t.Fail(fmt.Errorf("table: %q is the document root", table.Key()))
	}
	p := document.NewParagraph()
	return t.InsertNodeByKey(parent.Key(), index, p).CollapseToStartOf(p.Key())
}
