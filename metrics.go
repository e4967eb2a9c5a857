package goUsers

import "sync/atomic"

// MetricID indexes one counter in the engine's metric set.
type MetricID uint16

const (
	// MetricRegisterSuccess counts persisted registrations.
	MetricRegisterSuccess MetricID = iota
	// MetricRegisterConflict counts registrations refused on a unique-key
	// violation.
	MetricRegisterConflict
	// MetricAuthSuccess counts successful authentications.
	MetricAuthSuccess
	// MetricAuthFailure counts credential failures (unknown login or
	// wrong password).
	MetricAuthFailure
	// MetricAuthReject counts constraint-blocked authentications.
	MetricAuthReject
	metricIDCount
)

const cacheLineSize = 64

// paddedCounter keeps each counter on its own cache line so concurrent
// increments do not false-share.
type paddedCounter struct {
	value uint64
	_     [cacheLineSize - 8]byte
}

// Metrics is the engine's atomic counter set. A nil or disabled Metrics is
// valid and inert.
type Metrics struct {
	enabled  bool
	counters [metricIDCount]paddedCounter
}

func NewMetrics(cfg MetricsConfig) *Metrics {
	return &Metrics{
		enabled: cfg.Enabled,
	}
}

func (m *Metrics) Enabled() bool {
	return m != nil && m.enabled
}

func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id >= metricIDCount {
		return
	}
	atomic.AddUint64(&m.counters[id].value, 1)
}

// MetricsSnapshot is a point-in-time copy of every counter.
type MetricsSnapshot struct {
	Counters map[MetricID]uint64
}

func (m *Metrics) Snapshot() MetricsSnapshot {
	if m == nil || !m.enabled {
		return MetricsSnapshot{Counters: map[MetricID]uint64{}}
	}

	s := MetricsSnapshot{
		Counters: make(map[MetricID]uint64, int(metricIDCount)),
	}
	for id := MetricID(0); id < metricIDCount; id++ {
		s.Counters[id] = atomic.LoadUint64(&m.counters[id].value)
	}

	return s
}
