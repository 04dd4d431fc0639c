package history

import (
	"errors"
	"sync"
	"time"

	"github.com/dshills/tablekeys/internal/engine/document"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// DefaultMaxEntries is used when a non-positive limit is given.
const DefaultMaxEntries = 1000

// State is a document snapshot with its selection.
type State struct {
	Document  *document.Document
	Selection document.Selection
}

// OperationInfo describes an undo or redo entry.
type OperationInfo struct {
	Description string
	Timestamp   time.Time
}

// undoEntry records the states on either side of one edit.
type undoEntry struct {
	description string
	before      State
	after       State
	timestamp   time.Time
}

func (e *undoEntry) info() OperationInfo {
	return OperationInfo{Description: e.description, Timestamp: e.timestamp}
}

// History manages undo/redo state for a document.
type History struct {
	mu sync.Mutex

	undoStack []*undoEntry
	redoStack []*undoEntry

	// Grouping state
	grouping     bool
	groupName    string
	groupEntries []*undoEntry

	// Configuration
	maxEntries int
}

// NewHistory creates a new history manager.
func NewHistory(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{
		maxEntries: maxEntries,
	}
}

// Push records an edit from before to after.
// Clears the redo stack.
func (h *History) Push(description string, before, after State) {
	h.mu.Lock()
	defer h.mu.Unlock()

	entry := &undoEntry{
		description: description,
		before:      before,
		after:       after,
		timestamp:   time.Now(),
	}
	if h.grouping {
		h.groupEntries = append(h.groupEntries, entry)
		return
	}

	h.pushLocked(entry)
}

// pushLocked adds an entry without acquiring the lock.
func (h *History) pushLocked(entry *undoEntry) {
	h.undoStack = append(h.undoStack, entry)

	// Clear redo stack
	h.redoStack = nil

	// Enforce max entries
	if len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = h.undoStack[excess:]
	}
}

// Undo pops the last edit and returns the state before it.
func (h *History) Undo() (State, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undoStack) == 0 {
		return State{}, ErrNothingToUndo
	}

	entry := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, entry)
	return entry.before, nil
}

// Redo re-applies the last undone edit and returns the state after it.
func (h *History) Redo() (State, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.redoStack) == 0 {
		return State{}, ErrNothingToRedo
	}

	entry := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.undoStack = append(h.undoStack, entry)
	return entry.after, nil
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undo operations available.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack)
}

// RedoCount returns the number of redo operations available.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack)
}

// beginGroup starts buffering pushes under name. It reports false, and
// changes nothing, when a group is already open.
func (h *History) beginGroup(name string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.grouping {
		return false
	}
	h.grouping = true
	h.groupName = name
	h.groupEntries = nil
	return true
}

// endGroup folds the buffered pushes into one entry spanning the state
// before the first and after the last.
func (h *History) endGroup() {
	h.mu.Lock()
	defer h.mu.Unlock()

	entries := h.groupEntries
	h.grouping = false
	h.groupEntries = nil
	if len(entries) == 0 {
		return
	}
	h.pushLocked(&undoEntry{
		description: h.groupName,
		before:      entries[0].before,
		after:       entries[len(entries)-1].after,
		timestamp:   time.Now(),
	})
}

// Clear removes all undo/redo history.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.undoStack = nil
	h.redoStack = nil
	h.grouping = false
	h.groupEntries = nil
}

// PeekUndo returns info about the next undo operation without removing it.
func (h *History) PeekUndo() (OperationInfo, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undoStack) == 0 {
		return OperationInfo{}, false
	}
	return h.undoStack[len(h.undoStack)-1].info(), true
}

// PeekRedo returns info about the next redo operation without removing it.
func (h *History) PeekRedo() (OperationInfo, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.redoStack) == 0 {
		return OperationInfo{}, false
	}
	return h.redoStack[len(h.redoStack)-1].info(), true
}

// MaxEntries returns the maximum number of undo entries.
func (h *History) MaxEntries() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.maxEntries
}
