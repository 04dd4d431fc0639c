// Package watcher notifies about changes to individual files.
//
// Files are watched through their parent directory so that editors which
// save by writing a temporary file and renaming it over the original are
// still seen. Only events for registered files are delivered. A
// DebouncedWatcher coalesces the bursts of events a single save produces.
package watcher

import (
	"context"
	"errors"
	"time"
)

// Common errors returned by watcher operations.
var (
	ErrWatcherClosed   = errors.New("watcher is closed")
	ErrAlreadyWatching = errors.New("file is already being watched")
	ErrNotWatching     = errors.New("file is not being watched")
	ErrPathNotExist    = errors.New("path does not exist")
	ErrIsDirectory     = errors.New("path is a directory")
)

// Op represents the type of file system operation.
type Op uint32

const (
	// OpCreate indicates a file was created.
	OpCreate Op = 1 << iota
	// OpWrite indicates a file was written to.
	OpWrite
	// OpRemove indicates a file was removed.
	OpRemove
	// OpRename indicates a file was renamed.
	OpRename
)

// String returns a human-readable representation of the operation.
func (op Op) String() string {
	switch op {
	case OpCreate:
		return "CREATE"
	case OpWrite:
		return "WRITE"
	case OpRemove:
		return "REMOVE"
	case OpRename:
		return "RENAME"
	default:
		return "UNKNOWN"
	}
}

// Has returns true if the operation includes the given op.
func (op Op) Has(o Op) bool {
	return op&o == o
}

// IsChange reports whether the file may have new content to read.
func (op Op) IsChange() bool {
	return op&(OpCreate|OpWrite) != 0
}

// Event represents a file change event.
type Event struct {
	// Path is the absolute path of the affected file.
	Path string

	// Op is the operation that occurred. Debounced events may combine several.
	Op Op

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// Stats provides watcher status information.
type Stats struct {
	// WatchedFiles is the number of files being watched.
	WatchedFiles int

	// PendingEvents is the number of events waiting to be delivered.
	PendingEvents int

	// TotalEvents is the total number of events delivered.
	TotalEvents int64

	// Errors is the total number of errors encountered.
	Errors int64

	// LastError is the most recent error, if any.
	LastError error

	// StartTime is when the watcher was started.
	StartTime time.Time
}

// Watcher monitors files for changes.
type Watcher interface {
	// WatchFile starts watching an existing regular file.
	// Returns ErrAlreadyWatching if the file is already being watched.
	WatchFile(path string) error

	// Unwatch stops watching a file.
	// Returns ErrNotWatching if the file isn't being watched.
	Unwatch(path string) error

	// Events returns the channel of file change events.
	// The channel is closed when the watcher is closed.
	Events() <-chan Event

	// Errors returns the channel of watcher errors.
	// The channel is closed when the watcher is closed.
	Errors() <-chan error

	// Close stops the watcher and releases resources.
	Close() error

	// Stats returns watcher statistics.
	Stats() Stats

	// WatchedFiles returns all files being watched.
	WatchedFiles() []string
}

// Handler is a function that handles file events.
type Handler func(event Event)

// ErrorHandler is a function that handles watcher errors.
type ErrorHandler func(err error)

// EventFilter is a function that filters events.
// Return true to keep the event, false to discard it.
type EventFilter func(event Event) bool

// Config holds watcher configuration options.
type Config struct {
	// BufferSize is the size of the event and error channels.
	// Default: 100
	BufferSize int

	// EventFilter is an optional filter for events.
	EventFilter EventFilter
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		BufferSize: 100,
	}
}

// WatcherOption configures a watcher.
type WatcherOption func(*Config)

// WithBufferSize sets the channel buffer size.
func WithBufferSize(size int) WatcherOption {
	return func(c *Config) {
		c.BufferSize = size
	}
}

// WithEventFilter sets the event filter.
func WithEventFilter(filter EventFilter) WatcherOption {
	return func(c *Config) {
		c.EventFilter = filter
	}
}

// Run delivers events and errors from w to the handlers until ctx is
// cancelled or w is closed. onError may be nil.
func Run(ctx context.Context, w Watcher, onEvent Handler, onError ErrorHandler) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.Events():
			if !ok {
				return nil
			}
			onEvent(event)
		case err, ok := <-w.Errors():
			if !ok {
				return nil
			}
			if onError != nil {
				onError(err)
			}
		}
	}
}
