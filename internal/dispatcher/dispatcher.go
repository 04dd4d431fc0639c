package dispatcher

import (
	"fmt"
	"log/slog"
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/dshills/tablekeys/internal/dispatcher/handler"
	"github.com/dshills/tablekeys/internal/engine/document"
	"github.com/dshills/tablekeys/internal/input/key"
)

// Dispatcher offers key events to a chain of handlers.
type Dispatcher struct {
	mu sync.RWMutex

	registry *Registry
	config   Config
	logger   *slog.Logger

	// Metrics
	metrics *Metrics

	postHooks []PostDispatchHook
}

// New creates a new dispatcher with the given configuration.
func New(config Config) *Dispatcher {
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	d := &Dispatcher{
		registry: NewRegistry(),
		config:   config,
		logger:   logger,
	}
	if config.EnableMetrics {
		d.metrics = NewMetrics()
	}
	return d
}

// Register adds a handler to the chain.
func (d *Dispatcher) Register(name string, h handler.Handler, priority int) error {
	if err := d.registry.Register(name, h, priority); err != nil {
		return err
	}
	d.logger.Debug("handler registered", "name", name, "priority", priority)
	return nil
}

// RegisterPostHook adds a hook that sees every result before Dispatch
// returns it. Hooks run in registration order.
func (d *Dispatcher) RegisterPostHook(hook PostDispatchHook) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.postHooks = append(d.postHooks, hook)
}

// Dispatch offers ev to each handler in priority order. The first result
// that is not a decline is returned; if every handler declines, so does
// Dispatch.
func (d *Dispatcher) Dispatch(ev key.Event, doc *document.Document, sel document.Selection) handler.Result {
	startTime := time.Now()

	result := handler.Decline()
	handledBy := ""
	for _, e := range d.registry.Entries() {
		var r handler.Result
		if d.config.RecoverFromPanic {
			r = d.executeWithRecovery(e, ev, doc, sel)
		} else {
			r = e.Handler.Handle(ev, doc, sel)
		}
		if r.Status != handler.StatusDecline {
			result = r
			handledBy = e.Name
			break
		}
	}

	elapsed := time.Since(startTime)
	if d.metrics != nil {
		d.metrics.RecordDispatch(ev.String(), handledBy, elapsed, result.Status)
	}

	d.runPostHooks(Dispatched{Event: ev, Handler: handledBy, Duration: elapsed}, &result)
	return result
}

// executeWithRecovery executes a handler with panic recovery.
func (d *Dispatcher) executeWithRecovery(e Entry, ev key.Event, doc *document.Document, sel document.Selection) (result handler.Result) {
	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 4096)
			n := runtime.Stack(stack, false)

			d.logger.Error("handler panic", "handler", e.Name, "key", ev.String(), "panic", r, "stack", string(stack[:n]))
			result = handler.Error(fmt.Errorf("%w: %s on %s: %v", ErrPanic, e.Name, ev, r))

			if d.metrics != nil {
				d.metrics.RecordPanic()
			}
		}
	}()

	return e.Handler.Handle(ev, doc, sel)
}

func (d *Dispatcher) runPostHooks(info Dispatched, result *handler.Result) {
	d.mu.RLock()
	hooks := slices.Clone(d.postHooks)
	d.mu.RUnlock()

	for _, h := range hooks {
		h.PostDispatch(info, result)
	}
}

// Registry returns the handler registry.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Metrics returns the metrics collector (may be nil if disabled).
func (d *Dispatcher) Metrics() *Metrics {
	return d.metrics
}

// Config returns the dispatcher configuration.
func (d *Dispatcher) Config() Config {
	return d.config
}
