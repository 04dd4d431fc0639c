package watcher

import (
	"sync"
	"time"
)

// DefaultDebounceDelay is used when a non-positive delay is given.
const DefaultDebounceDelay = 100 * time.Millisecond

// DebouncedWatcher wraps a Watcher with event debouncing.
// Changes to the same file within the delay are delivered once, with their
// operations combined, after the file has been quiet for the whole delay.
type DebouncedWatcher struct {
	inner Watcher
	delay time.Duration

	mu       sync.Mutex
	pending  map[string]*pendingEvent
	events   chan Event
	errors   chan error
	closed   bool
	closeCh  chan struct{}
	closedWg sync.WaitGroup
}

// pendingEvent tracks a debounced event.
type pendingEvent struct {
	event Event
	timer *time.Timer
}

// NewDebouncedWatcher creates a debounced watcher wrapper.
func NewDebouncedWatcher(inner Watcher, delay time.Duration) *DebouncedWatcher {
	if delay <= 0 {
		delay = DefaultDebounceDelay
	}

	dw := &DebouncedWatcher{
		inner:   inner,
		delay:   delay,
		pending: make(map[string]*pendingEvent),
		events:  make(chan Event, 100),
		errors:  make(chan error, 100),
		closeCh: make(chan struct{}),
	}

	dw.closedWg.Add(1)
	go dw.processLoop()

	return dw
}

// WatchFile starts watching a file.
func (dw *DebouncedWatcher) WatchFile(path string) error {
	return dw.inner.WatchFile(path)
}

// Unwatch stops watching a file.
func (dw *DebouncedWatcher) Unwatch(path string) error {
	return dw.inner.Unwatch(path)
}

// Events returns the debounced event channel.
func (dw *DebouncedWatcher) Events() <-chan Event {
	return dw.events
}

// Errors returns the error channel.
func (dw *DebouncedWatcher) Errors() <-chan error {
	return dw.errors
}

// Close stops the debounced watcher and the watcher it wraps.
// Pending events are dropped.
func (dw *DebouncedWatcher) Close() error {
	dw.mu.Lock()
	if dw.closed {
		dw.mu.Unlock()
		return nil
	}
	dw.closed = true
	close(dw.closeCh)

	for path, p := range dw.pending {
		p.timer.Stop()
		delete(dw.pending, path)
	}
	dw.mu.Unlock()

	dw.closedWg.Wait()

	// The send lock keeps a timer that already fired from writing to a
	// closed channel.
	dw.mu.Lock()
	close(dw.events)
	close(dw.errors)
	dw.mu.Unlock()

	return dw.inner.Close()
}

// Stats returns watcher statistics.
func (dw *DebouncedWatcher) Stats() Stats {
	dw.mu.Lock()
	pendingCount := len(dw.pending)
	dw.mu.Unlock()

	stats := dw.inner.Stats()
	stats.PendingEvents = pendingCount
	return stats
}

// WatchedFiles returns all watched files.
func (dw *DebouncedWatcher) WatchedFiles() []string {
	return dw.inner.WatchedFiles()
}

// processLoop handles incoming events from the inner watcher.
func (dw *DebouncedWatcher) processLoop() {
	defer dw.closedWg.Done()

	for {
		select {
		case <-dw.closeCh:
			return

		case event, ok := <-dw.inner.Events():
			if !ok {
				return
			}
			dw.handleEvent(event)

		case err, ok := <-dw.inner.Errors():
			if !ok {
				return
			}
			select {
			case dw.errors <- err:
			case <-dw.closeCh:
			default:
			}
		}
	}
}

// handleEvent starts or extends the quiet period for the event's file.
func (dw *DebouncedWatcher) handleEvent(event Event) {
	dw.mu.Lock()
	defer dw.mu.Unlock()

	if dw.closed {
		return
	}

	if p, exists := dw.pending[event.Path]; exists {
		p.event.Op |= event.Op
		p.event.Timestamp = event.Timestamp
		p.timer.Reset(dw.delay)
		return
	}

	path := event.Path
	dw.pending[path] = &pendingEvent{
		event: event,
		timer: time.AfterFunc(dw.delay, func() {
			dw.fire(path)
		}),
	}
}

// fire delivers the pending event for path.
func (dw *DebouncedWatcher) fire(path string) {
	dw.mu.Lock()
	defer dw.mu.Unlock()

	p, exists := dw.pending[path]
	if !exists || dw.closed {
		return
	}
	delete(dw.pending, path)

	select {
	case dw.events <- p.event:
	default:
		// Channel full, drop event
	}
}

// Flush fires every pending event now instead of after its quiet period.
func (dw *DebouncedWatcher) Flush() {
	dw.mu.Lock()
	paths := make([]string, 0, len(dw.pending))
	for path, p := range dw.pending {
		p.timer.Stop()
		paths = append(paths, path)
	}
	dw.mu.Unlock()

	for _, path := range paths {
		dw.fire(path)
	}
}

// Drain flushes pending events and hands every event waiting on the channel
// to onEvent without blocking. It returns the number delivered.
func (dw *DebouncedWatcher) Drain(onEvent Handler) int {
	dw.Flush()
	n := 0
	for {
		select {
		case ev, ok := <-dw.events:
			if !ok {
				return n
			}
			onEvent(ev)
			n++
		default:
			return n
		}
	}
}

// Ensure DebouncedWatcher implements Watcher.
var _ Watcher = (*DebouncedWatcher)(nil)
