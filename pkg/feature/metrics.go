package feature

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors updated by the registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	Operations        *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec
	CacheLookups      *prometheus.CounterVec
	WriteConflicts    prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg falls back to prometheus.DefaultRegisterer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		Operations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "feature_flag_operations_total",
				Help: "Registry operations partitioned by outcome",
			},
			[]string{"operation", "outcome"},
		),
		OperationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "feature_flag_operation_duration_seconds",
				Help:    "Duration of registry operations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		CacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "feature_flag_cache_lookups_total",
				Help: "Result cache lookups partitioned by hit or miss",
			},
			[]string{"result"},
		),
		WriteConflicts: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "feature_flag_write_conflicts_total",
				Help: "Override writes retried after a version conflict",
			},
		),
	}
}

func (m *Metrics) observe(op string, start time.Time, err error) {
	if m == nil {
		return
	}
	m.Operations.WithLabelValues(op, outcome(err)).Inc()
	m.OperationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func (m *Metrics) cacheLookup(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.CacheLookups.WithLabelValues("hit").Inc()
		return
	}
	m.CacheLookups.WithLabelValues("miss").Inc()
}

func (m *Metrics) conflict() {
	if m == nil {
		return
	}
	m.WriteConflicts.Inc()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidFlag):
		return "invalid"
	case errors.Is(err, ErrTenantNotFound), errors.Is(err, ErrFlagNotFound):
		return "not_found"
	case errors.Is(err, ErrVersionConflict), errors.Is(err, ErrFlagExists):
		return "conflict"
	default:
		return "error"
	}
}
