package dispatcher

import "errors"

// Dispatcher errors.
var (
	// ErrNilHandler indicates a nil handler was registered.
	ErrNilHandler = errors.New("dispatcher: nil handler")

	// ErrEmptyName indicates a handler was registered without a name.
	ErrEmptyName = errors.New("dispatcher: empty handler name")

	// ErrDuplicateHandler indicates a handler name is already registered.
	ErrDuplicateHandler = errors.New("dispatcher: handler already registered")

	// ErrPanic indicates the handler panicked.
	ErrPanic = errors.New("dispatcher: handler panic")
)
