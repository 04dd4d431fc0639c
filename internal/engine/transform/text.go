package transform

import (
	"fmt"

	"github.com/dshills/tablekeys/internal/engine/document"
)

// RemoveTextByKey deletes runes [start, end) from a text leaf.
func (t Transform) RemoveTextByKey(key document.Key, start, end int) Transform {
	return t.edit(func(d *document.Document) (*document.Document, error) {
		leaf, ok := d.Get(key)
		if !ok {
			return nil, fmt.Errorf("%w: %q", document.ErrNodeNotFound, key)
		}
		if !leaf.IsText() {
			return nil, fmt.Errorf("%w: %q", document.ErrNotText, key)
		}
		runes := []rune(leaf.Text())
		if start < 0 || end > len(runes) || start > end {
			return nil, fmt.Errorf("%w: [%d,%d) in %q", document.ErrIndexOutOfRange, start, end, key)
		}
		if start == end {
			return d, nil
		}
		text := string(runes[:start]) + string(runes[end:])
		return d.ReplaceNode(key, leaf.WithText(text))
	})
}

// ClearBlock empties every text leaf below key. Leaves and their keys are kept,
// so the document structure is unchanged.
func (t Transform) ClearBlock(key document.Key) Transform {
	if t.err != nil {
		return t
	}
	n, ok := t.doc.Get(key)
	if !ok {
		return t.Fail(fmt.Errorf("%w: %q", document.ErrNodeNotFound, key))
	}
	for _, leaf := range n.TextLeaves() {
		t = t.RemoveTextByKey(leaf.Key(), 0, leaf.Len())
	}
	return t
}

// Select replaces the working selection.
func (t Transform) Select(sel document.Selection) Transform {
	if t.err != nil {
		return t
	}
	t.sel = sel
	return t
}

// CollapseTo collapses the selection to p.
func (t Transform) CollapseTo(p document.Point) Transform {
	return t.Select(document.Collapsed(p))
}

// CollapseToStartOf collapses the selection to offset 0 of the first text
// leaf at or below key.
func (t Transform) CollapseToStartOf(key document.Key) Transform {
	if t.err != nil {
		return t
	}
	p, ok := t.doc.StartOf(key)
	if !ok {
		return t.Fail(fmt.Errorf("%w: %q", ErrNoStart, key))
	}
	return t.CollapseTo(p)
}
