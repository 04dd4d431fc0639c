package table

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/dshills/tablekeys/internal/dispatcher/handler"
	"github.com/dshills/tablekeys/internal/engine/document"
	"github.com/dshills/tablekeys/internal/engine/transform"
	"github.com/dshills/tablekeys/internal/input/key"
	tbl "github.com/dshills/tablekeys/internal/table"
)

// Default modifier bindings.
const (
	DefaultStructural = key.ModCtrl | key.ModShift
	DefaultExit       = key.ModAlt
)

// ErrInvalidSelection indicates the selection does not address text in the
// document it was handed with.
var ErrInvalidSelection = errors.New("table: invalid selection")

// Handler interprets keys while the selection is inside a table.
type Handler struct {
	structural key.Modifier
	exit       key.Modifier
	logger     *slog.Logger
}

// Option configures a Handler.
type Option func(*Handler)

// WithStructural sets the chord that turns navigation keys into row/column inserts.
func WithStructural(mods key.Modifier) Option {
	return func(h *Handler) {
		h.structural = mods
	}
}

// WithExit sets the modifier that leaves the table vertically.
// ModNone disables the gesture.
func WithExit(mods key.Modifier) Option {
	return func(h *Handler) {
		h.exit = mods
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// NewHandler creates a table handler.
func NewHandler(opts ...Option) *Handler {
	h := &Handler{
		structural: DefaultStructural,
		exit:       DefaultExit,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Name returns the handler name used for registration.
func (h *Handler) Name() string {
	return "table"
}

// command is the per-key state shared by the key-specific methods.
type command struct {
	ev         key.Event
	doc        *document.Document
	sel        document.Selection
	info       tbl.Info
	structural bool
	exit       bool
}

// Handle implements handler.Handler.
func (h *Handler) Handle(ev key.Event, doc *document.Document, sel document.Selection) handler.Result {
	if doc == nil {
		return handler.Decline()
	}
	if err := doc.Validate(sel); err != nil {
		return handler.Error(fmt.Errorf("%w: %w", ErrInvalidSelection, err))
	}
	info, err := tbl.Locate(doc, sel)
	if errors.Is(err, tbl.ErrNotInTable) {
		return handler.Decline()
	}
	if err != nil {
		h.logger.Error("table geometry", "key", ev.String(), "error", err)
		return handler.Error(err)
	}

	cmd := command{
		ev:         ev,
		doc:        doc,
		sel:        sel,
		info:       info,
		structural: !h.structural.IsEmpty() && ev.Modifiers.HasAll(h.structural),
	}
	cmd.exit = !cmd.structural && !h.exit.IsEmpty() && ev.Modifiers.HasAll(h.exit)

	var result handler.Result
	switch ev.Key {
	case key.KeyBackspace, key.KeyDelete:
		result = h.onDelete(cmd)
	case key.KeyDown:
		result = h.finish(h.onDown(cmd))
	case key.KeyUp:
		result = h.finish(h.onUp(cmd))
	case key.KeyEnter:
		result = h.finish(h.onEnter(cmd))
	case key.KeyTab:
		result = h.finish(h.onTab(cmd))
	case key.KeyLeft, key.KeyRight:
		if !cmd.structural {
			return handler.Decline()
		}
		result = h.finish(h.onInsertColumn(cmd))
	default:
		return handler.Decline()
	}

	h.logger.Debug("table key",
		"key", ev.String(),
		"x", info.X, "y", info.Y,
		"width", info.Width, "height", info.Height,
		"status", result.Status.String(),
	)
	if result.IsError() {
		h.logger.Error("table key failed", "key", ev.String(), "error", result.Error)
	}
	return result
}

// finish applies a transform and wraps the outcome as a result.
func (h *Handler) finish(t transform.Transform) handler.Result {
	doc, sel, err := t.Apply()
	if err != nil {
		return handler.Error(err)
	}
	return handler.Apply(doc, sel)
}
