package engine

import (
	"errors"

	"github.com/dshills/tablekeys/internal/engine/history"
)

// Errors returned by engine operations.
var (
	// ErrNilDocument indicates an engine was created without a document.
	ErrNilDocument = errors.New("engine: nil document")

	// ErrNoStart indicates the document has no text leaf to place the caret in.
	ErrNoStart = errors.New("engine: document has no text")

	// ErrNothingToUndo indicates the undo stack is empty.
	ErrNothingToUndo = history.ErrNothingToUndo

	// ErrNothingToRedo indicates the redo stack is empty.
	ErrNothingToRedo = history.ErrNothingToRedo

	// ErrReadOnly indicates an edit was attempted on a read-only engine.
	ErrReadOnly = errors.New("engine: read-only")

	// ErrKeyFailed indicates a key in a sequence produced an error result.
	ErrKeyFailed = errors.New("engine: key failed")
)
