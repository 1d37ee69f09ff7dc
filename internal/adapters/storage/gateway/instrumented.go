package gateway

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultSlowCallMs is the default threshold for slow store call warnings.
const DefaultSlowCallMs = 200

// Metrics holds the Prometheus collectors for store calls.
type Metrics struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics registers store call collectors on reg.
// PRE: reg is non-nil and has no collectors with the same names
// POST: returns Metrics ready for Instrument
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tennisclub_store_calls_total",
			Help: "Table store calls by operation, table and outcome.",
		}, []string{"op", "table", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tennisclub_store_call_duration_seconds",
			Help:    "Table store call latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"op", "table"}),
	}
	reg.MustRegister(m.calls, m.duration)
	return m
}

// InstrumentedBackend wraps a Backend to log slow calls and record metrics.
// Satisfies Backend so it can be passed to New.
type InstrumentedBackend struct {
	next      Backend
	metrics   *Metrics
	threshold time.Duration
}

// Compile-time check that *InstrumentedBackend satisfies Backend.
var _ Backend = (*InstrumentedBackend)(nil)

// Instrument wraps next with timing instrumentation. metrics may be nil.
// PRE: next is non-nil; threshold > 0 (otherwise DefaultSlowCallMs)
// POST: Returns a Backend that logs slow calls and records to metrics
func Instrument(next Backend, metrics *Metrics, threshold time.Duration) *InstrumentedBackend {
	if threshold <= 0 {
		threshold = DefaultSlowCallMs * time.Millisecond
	}
	return &InstrumentedBackend{next: next, metrics: metrics, threshold: threshold}
}

// observe logs and records a single call.
func (b *InstrumentedBackend) observe(op, table string, start time.Time, err error) {
	elapsed := time.Since(start)
	durationMs := float64(elapsed.Microseconds()) / 1000.0

	if elapsed >= b.threshold {
		slog.Warn("slow_store_call", "op", op, "table", table, "duration_ms", durationMs)
	} else {
		slog.Debug("store_call", "op", op, "table", table, "duration_ms", durationMs)
	}

	if b.metrics == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	b.metrics.calls.WithLabelValues(op, table, outcome).Inc()
	b.metrics.duration.WithLabelValues(op, table).Observe(elapsed.Seconds())
}

// Select wraps Backend.Select with timing.
func (b *InstrumentedBackend) Select(ctx context.Context, table string) ([]Row, error) {
	start := time.Now()
	rows, err := b.next.Select(ctx, table)
	b.observe("select", table, start, err)
	return rows, err
}

// Insert wraps Backend.Insert with timing.
func (b *InstrumentedBackend) Insert(ctx context.Context, table string, rows []Row) ([]Row, error) {
	start := time.Now()
	created, err := b.next.Insert(ctx, table, rows)
	b.observe("insert", table, start, err)
	return created, err
}

// Update wraps Backend.Update with timing.
func (b *InstrumentedBackend) Update(ctx context.Context, table string, id int64, fields Row) error {
	start := time.Now()
	err := b.next.Update(ctx, table, id, fields)
	b.observe("update", table, start, err)
	return err
}
