package render_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/tablekeys/internal/dispatcher"
	"github.com/dshills/tablekeys/internal/dispatcher/handler"
	"github.com/dshills/tablekeys/internal/engine/document"
	"github.com/dshills/tablekeys/internal/render"
	"github.com/dshills/tablekeys/internal/table"
)

func TestText(t *testing.T) {
	intro := document.NewBlock(document.TypeParagraph, document.NewText("Intro").WithKey("intro"))
	tbl := table.New([][]string{{"A", "B"}, {"C", "Dee"}})
	doc := document.MustNew(document.NewBlock(document.TypeDocument, intro, tbl))

	d := table.CellAt(tbl, 1, 1).FirstText()
	out := render.Text(doc, document.Collapsed(document.Point{Key: d.Key(), Offset: 1}))

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.NotEmpty(t, lines)
	assert.Equal(t, "Intro", lines[0])
	assert.Contains(t, out, "D|ee")
	assert.Contains(t, out, "A")
	assert.Contains(t, out, "C")
	assert.Equal(t, 1, strings.Count(out, render.Caret))

	out = render.Text(doc, document.Collapsed(document.Point{Key: "intro", Offset: 5}))
	assert.True(t, strings.HasPrefix(out, "Intro|\n"))
}

func TestTextEmptyCellCaret(t *testing.T) {
	tbl := table.New([][]string{{"", "x"}})
	doc := document.MustNew(document.NewBlock(document.TypeDocument, tbl))
	start, ok := doc.Start()
	require.True(t, ok)

	var buf bytes.Buffer
	require.NoError(t, render.WriteText(&buf, doc, document.Collapsed(start)))
	assert.Contains(t, buf.String(), "│ | │ x │")
}

func TestMetrics(t *testing.T) {
	var buf bytes.Buffer
	m := dispatcher.NewMetrics()
	render.Metrics(&buf, m)
	assert.Equal(t, "(no keys dispatched)\n", buf.String())

	m.RecordDispatch("Tab", "table", time.Millisecond, handler.StatusApply)
	m.RecordDispatch("Tab", "table", time.Millisecond, handler.StatusApply)
	m.RecordDispatch("Left", "", time.Millisecond, handler.StatusDecline)

	buf.Reset()
	render.Metrics(&buf, m)
	out := buf.String()
	assert.Contains(t, out, "Tab")
	assert.Contains(t, out, "Left")
	assert.Less(t, strings.Index(out, "Tab"), strings.Index(out, "Left"), "sorted by count")
	assert.Contains(t, out, "table")
}
