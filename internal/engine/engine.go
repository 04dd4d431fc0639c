package engine

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/dshills/tablekeys/internal/dispatcher"
	"github.com/dshills/tablekeys/internal/dispatcher/handler"
	tablehandler "github.com/dshills/tablekeys/internal/dispatcher/handlers/table"
	"github.com/dshills/tablekeys/internal/engine/document"
	"github.com/dshills/tablekeys/internal/engine/history"
	"github.com/dshills/tablekeys/internal/input/key"
)

// Engine owns the current document snapshot and selection and feeds keys
// through a dispatcher. Applied results replace the snapshot and are
// recorded for undo.
//
// All operations are thread-safe. Keys are handled one at a time.
type Engine struct {
	mu sync.RWMutex

	// Current state
	doc    *document.Document
	sel    document.Selection
	selSet bool

	// Core components
	dispatcher *dispatcher.Dispatcher
	history    *history.History
	logger     *slog.Logger

	// Configuration
	maxUndoEntries int
	readOnly       bool
}

// New creates an Engine editing doc. Without WithSelection the caret starts
// at the beginning of the document. Without WithDispatcher keys go to a
// dispatcher holding only the table handler.
func New(doc *document.Document, opts ...Option) (*Engine, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}
	e := &Engine{
		doc:            doc,
		maxUndoEntries: DefaultMaxUndoEntries,
		logger:         slog.New(slog.DiscardHandler),
	}

	// Apply options to get configuration
	for _, opt := range opts {
		opt(e)
	}

	if !e.selSet {
		start, ok := doc.Start()
		if !ok {
			return nil, ErrNoStart
		}
		e.sel = document.Collapsed(start)
	}
	if err := doc.Validate(e.sel); err != nil {
		return nil, fmt.Errorf("engine: initial selection: %w", err)
	}

	if e.dispatcher == nil {
		e.dispatcher = dispatcher.New(dispatcher.DefaultConfig().WithLogger(e.logger))
		h := tablehandler.NewHandler(tablehandler.WithLogger(e.logger))
		if err := e.dispatcher.Register(h.Name(), h, 0); err != nil {
			return nil, err
		}
	}

	e.history = history.NewHistory(e.maxUndoEntries)
	return e, nil
}

// ============================================================================
// State
// ============================================================================

// Snapshot returns the current document and selection.
func (e *Engine) Snapshot() (*document.Document, document.Selection) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.doc, e.sel
}

// Document returns the current document.
func (e *Engine) Document() *document.Document {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.doc
}

// Selection returns the current selection.
func (e *Engine) Selection() document.Selection {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.sel
}

// SetSelection moves the selection without recording history.
func (e *Engine) SetSelection(sel document.Selection) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.doc.Validate(sel); err != nil {
		return err
	}
	e.sel = sel
	return nil
}

// IsReadOnly returns true if the engine rejects document edits.
func (e *Engine) IsReadOnly() bool {
	return e.readOnly
}

// ============================================================================
// Keys
// ============================================================================

// HandleKey dispatches ev against the current snapshot. An applied result
// becomes the new snapshot. The result is returned unchanged otherwise, so
// the caller can tell whether to run its own default handling.
func (e *Engine) HandleKey(ev key.Event) handler.Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.handleKeyLocked(ev)
}

func (e *Engine) handleKeyLocked(ev key.Event) handler.Result {
	result := e.dispatcher.Dispatch(ev, e.doc, e.sel)
	if !result.IsApplied() {
		return result
	}
	if result.Document == nil {
		return handler.Errorf("engine: %s applied without a document", ev)
	}
	if e.readOnly && result.Document != e.doc {
		return handler.Error(fmt.Errorf("%w: %s", ErrReadOnly, ev))
	}

	before := history.State{Document: e.doc, Selection: e.sel}
	after := history.State{Document: result.Document, Selection: result.Selection}
	if result.Document != e.doc {
		e.history.Push(ev.String(), before, after)
	}
	e.doc, e.sel = after.Document, after.Selection

	e.logger.Debug("key applied", "key", ev.String(), "selection", e.sel.String())
	return result
}

// HandleSequence handles keys in order and returns every result. It stops at
// the first error result and returns an error wrapping ErrKeyFailed and the
// result's error.
func (e *Engine) HandleSequence(seq key.Sequence) ([]handler.Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	results := make([]handler.Result, 0, len(seq))
	for i, ev := range seq {
		r := e.handleKeyLocked(ev)
		results = append(results, r)
		if r.IsError() {
			return results, fmt.Errorf("%w: key %d (%s): %w", ErrKeyFailed, i, ev, r.Error)
		}
	}
	return results, nil
}

// ============================================================================
// Undo/Redo Operations
// ============================================================================

// Undo restores the snapshot before the last edit.
func (e *Engine) Undo() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	state, err := e.history.Undo()
	if err != nil {
		return err
	}
	e.doc, e.sel = state.Document, state.Selection
	return nil
}

// Redo re-applies the last undone edit.
func (e *Engine) Redo() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	state, err := e.history.Redo()
	if err != nil {
		return err
	}
	e.doc, e.sel = state.Document, state.Selection
	return nil
}

// CanUndo returns true if undo is available.
func (e *Engine) CanUndo() bool {
	return e.history.CanUndo()
}

// CanRedo returns true if redo is available.
func (e *Engine) CanRedo() bool {
	return e.history.CanRedo()
}

// UndoCount returns the number of undo operations available.
func (e *Engine) UndoCount() int {
	return e.history.UndoCount()
}

// RedoCount returns the number of redo operations available.
func (e *Engine) RedoCount() int {
	return e.history.RedoCount()
}

// UndoGroup makes the edits applied until the scope ends undo as one step.
func (e *Engine) UndoGroup(name string) *history.GroupScope {
	return e.history.GroupScope(name)
}

// ClearHistory removes all undo/redo history.
func (e *Engine) ClearHistory() {
	e.history.Clear()
}

// History returns the undo history.
func (e *Engine) History() *history.History {
	return e.history
}

// Dispatcher returns the dispatcher keys are sent to.
func (e *Engine) Dispatcher() *dispatcher.Dispatcher {
	return e.dispatcher
}
