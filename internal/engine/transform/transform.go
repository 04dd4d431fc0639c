// Package transform provides a value-typed builder for edits against one
// document snapshot.
//
// A Transform carries the working Document, the working Selection and the
// first error raised by any step. Each step returns a new Transform; once an
// error is recorded every later step is skipped, so a chain can be written
// without checking errors in between and inspected once at Apply:
//
//	doc, sel, err := transform.New(doc, sel).
//		InsertNodeByKey(parent, 2, node).
//		CollapseToStartOf(node.Key()).
//		Apply()
//
// A Transform is owned by a single command invocation and is discarded
// after Apply.
package transform

import (
	"errors"
	"fmt"

	"github.com/dshills/tablekeys/internal/engine/document"
)

// ErrNoStart indicates a collapse target has no text leaf to place the caret in.
var ErrNoStart = errors.New("transform: node has no text leaf")

// Step is one stage of a chained edit.
type Step func(Transform) Transform

// Transform accumulates edits against a document snapshot.
type Transform struct {
	doc *document.Document
	sel document.Selection
	err error
}

// New starts a transform from a document and selection.
func New(doc *document.Document, sel document.Selection) Transform {
	return Transform{doc: doc, sel: sel}
}

// Flow runs steps in order, threading the transform through each.
func Flow(t Transform, steps ...Step) Transform {
	for _, step := range steps {
		t = step(t)
	}
	return t
}

// Document returns the working document.
func (t Transform) Document() *document.Document {
	return t.doc
}

// Selection returns the working selection.
func (t Transform) Selection() document.Selection {
	return t.sel
}

// Err returns the first error recorded by a step, if any.
func (t Transform) Err() error {
	return t.err
}

// Fail records err unless an earlier error is already recorded.
func (t Transform) Fail(err error) Transform {
	if t.err == nil {
		t.err = err
	}
	return t
}

// Apply finalizes the transform into a document and selection.
// The selection is validated against the final document.
func (t Transform) Apply() (*document.Document, document.Selection, error) {
	if t.err != nil {
		return nil, document.Selection{}, t.err
	}
	if err := t.doc.Validate(t.sel); err != nil {
		return nil, document.Selection{}, fmt.Errorf("transform: final selection: %w", err)
	}
	return t.doc, t.sel, nil
}

// edit swaps in the document produced by fn.
func (t Transform) edit(fn func(*document.Document) (*document.Document, error)) Transform {
	if t.err != nil {
		return t
	}
	doc, err := fn(t.doc)
	if err != nil {
		return t.Fail(err)
	}
	t.doc = doc
	return t
}

// InsertNodeByKey inserts n as the index-th child of parent.
func (t Transform) InsertNodeByKey(parent document.Key, index int, n *document.Node) Transform {
	return t.edit(func(d *document.Document) (*document.Document, error) {
		return d.InsertChild(parent, index, n)
	})
}

// ReplaceNodeByKey replaces the node at key with n.
func (t Transform) ReplaceNodeByKey(key document.Key, n *document.Node) Transform {
	return t.edit(func(d *document.Document) (*document.Document, error) {
		return d.ReplaceNode(key, n)
	})
}

// RemoveNodeByKey removes the node at key from its parent.
func (t Transform) RemoveNodeByKey(key document.Key) Transform {
	return t.edit(func(d *document.Document) (*document.Document, error) {
		return d.RemoveChild(key)
	})
}
