package dispatcher

import (
	"sort"
	"sync"
	"time"

	"github.com/dshills/tablekeys/internal/dispatcher/handler"
)

// Metrics collects dispatch statistics.
type Metrics struct {
	mu sync.RWMutex

	// Per-key metrics, keyed by event string ("Ctrl+Shift+Down").
	keyMetrics map[string]*KeyMetrics

	// Global counters
	totalDispatches uint64
	totalErrors     uint64
	totalPanics     uint64

	// Timing
	totalDuration time.Duration
}

// KeyMetrics holds metrics for one key chord.
type KeyMetrics struct {
	Key           string
	DispatchCount uint64
	StatusCounts  [handler.StatusError + 1]uint64
	TotalDuration time.Duration
	MinDuration   time.Duration
	MaxDuration   time.Duration
	LastStatus    handler.ResultStatus
	LastHandler   string
	LastDispatch  time.Time
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{
		keyMetrics: make(map[string]*KeyMetrics),
	}
}

// RecordDispatch records a dispatch event. handlerName is empty when every
// handler declined.
func (m *Metrics) RecordDispatch(keyName, handlerName string, duration time.Duration, status handler.ResultStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalDispatches++
	m.totalDuration += duration

	if status == handler.StatusError {
		m.totalErrors++
	}

	km := m.keyMetrics[keyName]
	if km == nil {
		km = &KeyMetrics{
			Key:         keyName,
			MinDuration: duration,
			MaxDuration: duration,
		}
		m.keyMetrics[keyName] = km
	}

	km.DispatchCount++
	km.TotalDuration += duration
	km.LastStatus = status
	km.LastHandler = handlerName
	km.LastDispatch = time.Now()
	if int(status) < len(km.StatusCounts) {
		km.StatusCounts[status]++
	}

	if duration < km.MinDuration {
		km.MinDuration = duration
	}
	if duration > km.MaxDuration {
		km.MaxDuration = duration
	}
}

// RecordPanic records a panic recovery.
func (m *Metrics) RecordPanic() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.totalPanics++
}

// TotalDispatches returns the total number of dispatches.
func (m *Metrics) TotalDispatches() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalDispatches
}

// TotalErrors returns the total number of errors.
func (m *Metrics) TotalErrors() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalErrors
}

// TotalPanics returns the total number of panics recovered.
func (m *Metrics) TotalPanics() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalPanics
}

// AverageDuration returns the average dispatch duration.
func (m *Metrics) AverageDuration() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.totalDispatches == 0 {
		return 0
	}
	return m.totalDuration / time.Duration(m.totalDispatches)
}

// KeyStats returns metrics for a specific key chord.
func (m *Metrics) KeyStats(keyName string) *KeyMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	km := m.keyMetrics[keyName]
	if km == nil {
		return nil
	}

	c := *km
	return &c
}

// TopKeys returns the n most dispatched keys. Ties are broken by name.
// n <= 0 returns all keys.
func (m *Metrics) TopKeys(n int) []*KeyMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]*KeyMetrics, 0, len(m.keyMetrics))
	for _, km := range m.keyMetrics {
		c := *km
		keys = append(keys, &c)
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].DispatchCount != keys[j].DispatchCount {
			return keys[i].DispatchCount > keys[j].DispatchCount
		}
		return keys[i].Key < keys[j].Key
	})

	if n <= 0 || n > len(keys) {
		n = len(keys)
	}
	return keys[:n]
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.keyMetrics = make(map[string]*KeyMetrics)
	m.totalDispatches = 0
	m.totalErrors = 0
	m.totalPanics = 0
	m.totalDuration = 0
}

// MetricsSnapshot is a point-in-time view of the global counters.
type MetricsSnapshot struct {
	TotalDispatches uint64
	TotalErrors     uint64
	TotalPanics     uint64
	TotalDuration   time.Duration
	AverageDuration time.Duration
	KeyCount        int
	Timestamp       time.Time
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snapshot := MetricsSnapshot{
		TotalDispatches: m.totalDispatches,
		TotalErrors:     m.totalErrors,
		TotalPanics:     m.totalPanics,
		TotalDuration:   m.totalDuration,
		KeyCount:        len(m.keyMetrics),
		Timestamp:       time.Now(),
	}

	if m.totalDispatches > 0 {
		snapshot.AverageDuration = m.totalDuration / time.Duration(m.totalDispatches)
	}

	return snapshot
}

// AverageDuration returns the average duration for this key.
func (km *KeyMetrics) AverageDuration() time.Duration {
	if km.DispatchCount == 0 {
		return 0
	}
	return km.TotalDuration / time.Duration(km.DispatchCount)
}

// Count returns how often the key ended with status.
func (km *KeyMetrics) Count(status handler.ResultStatus) uint64 {
	if int(status) >= len(km.StatusCounts) {
		return 0
	}
	return km.StatusCounts[status]
}
