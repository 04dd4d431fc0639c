// Package render prints documents and dispatch statistics as plain text.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/dshills/tablekeys/internal/dispatcher"
	"github.com/dshills/tablekeys/internal/dispatcher/handler"
	"github.com/dshills/tablekeys/internal/engine/document"
)

// Caret marks the selection focus in rendered text.
const Caret = "|"

// Text renders doc with the focus of sel marked by Caret.
// Tables print as grids, every other block with text as one line.
func Text(doc *document.Document, sel document.Selection) string {
	var b strings.Builder
	r := renderer{focus: sel.Focus, out: &b}
	r.block(doc.Root())
	return b.String()
}

// WriteText writes Text(doc, sel) to w.
func WriteText(w io.Writer, doc *document.Document, sel document.Selection) error {
	_, err := io.WriteString(w, Text(doc, sel))
	return err
}

type renderer struct {
	focus document.Point
	out   *strings.Builder
}

func (r renderer) block(n *document.Node) {
	switch {
	case n.Type() == document.TypeTable:
		r.table(n)
	case n.IsText() || !hasNestedBlocks(n):
		r.out.WriteString(r.text(n))
		r.out.WriteByte('\n')
	default:
		for _, c := range n.Children() {
			r.block(c)
		}
	}
}

func (r renderer) table(n *document.Node) {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.SeparateRows = true
	for _, row := range n.Children() {
		cells := make(table.Row, 0, row.NumChildren())
		for _, cell := range row.Children() {
			cells = append(cells, r.text(cell))
		}
		t.AppendRow(cells)
	}
	r.out.WriteString(t.Render())
	r.out.WriteByte('\n')
}

// text concatenates the leaves below n, inserting Caret at the focus.
func (r renderer) text(n *document.Node) string {
	var sb strings.Builder
	for _, leaf := range n.TextLeaves() {
		s := leaf.Text()
		if leaf.Key() != r.focus.Key {
			sb.WriteString(s)
			continue
		}
		runes := []rune(s)
		off := min(max(r.focus.Offset, 0), len(runes))
		sb.WriteString(string(runes[:off]))
		sb.WriteString(Caret)
		sb.WriteString(string(runes[off:]))
	}
	return sb.String()
}

func hasNestedBlocks(n *document.Node) bool {
	for _, c := range n.Children() {
		if !c.IsText() {
			return true
		}
	}
	return false
}

// Metrics writes per-key dispatch statistics as a table.
func Metrics(w io.Writer, m *dispatcher.Metrics) {
	keys := m.TopKeys(0)
	if len(keys) == 0 {
		_, _ = fmt.Fprintln(w, "(no keys dispatched)")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Key", "Count", "Apply", "Suppress", "Decline", "Error", "Avg", "Last handler"})
	for _, km := range keys {
		t.AppendRow(table.Row{
			km.Key,
			km.DispatchCount,
			km.Count(handler.StatusApply),
			km.Count(handler.StatusSuppress),
			km.Count(handler.StatusDecline),
			km.Count(handler.StatusError),
			km.AverageDuration(),
			km.LastHandler,
		})
	}

	snap := m.Snapshot()
	t.AppendFooter(table.Row{"Total", snap.TotalDispatches, "", "", "", snap.TotalErrors, snap.AverageDuration, ""})
	t.Render()
}
