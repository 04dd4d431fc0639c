package handler

import (
	"fmt"

	"github.com/dshills/tablekeys/internal/engine/document"
)

// ResultStatus indicates the outcome of handling a key.
type ResultStatus uint8

const (
	// StatusDecline means the handler does not apply; the host runs its default handling.
	StatusDecline ResultStatus = iota
	// StatusSuppress means the key was consumed as a no-op; the host must skip its default handling.
	StatusSuppress
	// StatusApply means the handler produced a new document and selection.
	StatusApply
	// StatusError indicates an internal-consistency fault.
	StatusError
)

// String returns a string representation of the status.
func (s ResultStatus) String() string {
	switch s {
	case StatusDecline:
		return "decline"
	case StatusSuppress:
		return "suppress"
	case StatusApply:
		return "apply"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Result represents the outcome of handling a key.
type Result struct {
	// Status indicates the result status.
	Status ResultStatus

	// Document is the next document. Set only for StatusApply.
	Document *document.Document

	// Selection is the next selection. Set only for StatusApply.
	Selection document.Selection

	// Error contains the fault for StatusError.
	Error error

	// Message is an optional description of what happened.
	Message string
}

// Decline creates a result that leaves the key to the host.
func Decline() Result {
	return Result{Status: StatusDecline}
}

// Suppress creates a result that consumes the key without changes.
func Suppress() Result {
	return Result{Status: StatusSuppress}
}

// Apply creates a result carrying the next document and selection.
func Apply(doc *document.Document, sel document.Selection) Result {
	return Result{Status: StatusApply, Document: doc, Selection: sel}
}

// Error creates an error result.
func Error(err error) Result {
	return Result{Status: StatusError, Error: err}
}

// Errorf creates an error result with a formatted message.
func Errorf(format string, args ...any) Result {
	return Error(fmt.Errorf(format, args...))
}

// IsApplied returns true if the result carries a new document and selection.
func (r Result) IsApplied() bool {
	return r.Status == StatusApply
}

// IsError returns true if the result indicates an error.
func (r Result) IsError() bool {
	return r.Status == StatusError
}

// PreventDefault reports whether the host must skip its own handling of the key.
// Only Decline lets the default run; an error also stops it so a faulted
// document is not edited further by the same key.
func (r Result) PreventDefault() bool {
	return r.Status != StatusDecline
}

// WithMessage returns a copy of the result with the specified message.
func (r Result) WithMessage(msg string) Result {
	r.Message = msg
	return r
}
