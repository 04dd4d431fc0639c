// Package handler provides the handler interface and result types for key dispatch.
package handler

import (
	"github.com/dshills/tablekeys/internal/engine/document"
	"github.com/dshills/tablekeys/internal/input/key"
)

// Handler interprets one key event against a document snapshot.
// Implementations must not retain doc or sel after returning.
type Handler interface {
	Handle(ev key.Event, doc *document.Document, sel document.Selection) Result
}

// HandlerFunc is a function adapter for the Handler interface.
type HandlerFunc func(ev key.Event, doc *document.Document, sel document.Selection) Result

// Handle implements Handler.Handle.
func (f HandlerFunc) Handle(ev key.Event, doc *document.Document, sel document.Selection) Result {
	if f == nil {
		return Errorf("handler function is nil")
	}
	return f(ev, doc, sel)
}
