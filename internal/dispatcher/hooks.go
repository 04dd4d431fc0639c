package dispatcher

import (
	"time"

	"github.com/dshills/tablekeys/internal/dispatcher/handler"
	"github.com/dshills/tablekeys/internal/input/key"
)

// Dispatched describes a finished dispatch.
type Dispatched struct {
	Event key.Event

	// Handler is the name of the handler that produced the result, or ""
	// when every handler declined.
	Handler string

	Duration time.Duration
}

// PostDispatchHook is called after the handler chain has produced a result.
// It may modify the result.
type PostDispatchHook interface {
	PostDispatch(info Dispatched, result *handler.Result)
}

// PostDispatchFunc adapts a function to PostDispatchHook.
type PostDispatchFunc func(info Dispatched, result *handler.Result)

// PostDispatch implements PostDispatchHook.
func (f PostDispatchFunc) PostDispatch(info Dispatched, result *handler.Result) {
	f(info, result)
}
