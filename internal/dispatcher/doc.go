// Package dispatcher offers key events to an ordered chain of handlers.
//
// Each handler sees the event together with an immutable document snapshot
// and the current selection, and answers with a handler.Result. Handlers are
// consulted from highest to lowest priority; the first result that is not a
// decline ends the chain. When every handler declines, the host editor runs
// its default behavior for the key.
//
// # Handler Execution
//
// When a key is dispatched:
//
//  1. Handlers are tried in priority order (with optional panic recovery)
//  2. Metrics are recorded (if enabled)
//  3. Post-dispatch hooks see the result and may adjust it
//
// # Usage
//
//	d := dispatcher.New(dispatcher.DefaultConfig().WithMetrics())
//	if err := d.Register("table", tablehandler.NewHandler(), 100); err != nil {
//	    return err
//	}
//
//	result := d.Dispatch(key.MustParse("Tab"), doc, sel)
//	if result.IsApplied() {
//	    doc, sel = result.Document, result.Selection
//	}
//
// A panicking handler is turned into a StatusError result wrapping ErrPanic
// unless recovery is disabled with Config.WithPanicRecovery(false).
package dispatcher
