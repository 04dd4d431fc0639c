package engine

import (
	"log/slog"

	"github.com/dshills/tablekeys/internal/dispatcher"
	"github.com/dshills/tablekeys/internal/engine/document"
)

// Default configuration values.
const (
	DefaultMaxUndoEntries = 1000
)

// Option configures an Engine during creation.
type Option func(*Engine)

// WithSelection sets the initial selection. It must be valid in the document.
func WithSelection(sel document.Selection) Option {
	return func(e *Engine) {
		e.sel = sel
		e.selSet = true
	}
}

// WithDispatcher sets the dispatcher keys are sent to.
func WithDispatcher(d *dispatcher.Dispatcher) Option {
	return func(e *Engine) {
		if d != nil {
			e.dispatcher = d
		}
	}
}

// WithMaxUndoEntries sets the maximum number of undo history entries.
func WithMaxUndoEntries(max int) Option {
	return func(e *Engine) {
		if max > 0 {
			e.maxUndoEntries = max
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithReadOnly creates a read-only engine.
// Keys that would edit the document return ErrReadOnly.
func WithReadOnly() Option {
	return func(e *Engine) {
		e.readOnly = true
	}
}
