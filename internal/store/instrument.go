package store

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// InstrumentedSession records transaction outcomes and latency.
type InstrumentedSession struct {
	Session

	txTotal    *prometheus.CounterVec
	txDuration prometheus.Histogram
}

// Instrument wraps s with Prometheus collectors. Register them with
// Collectors on the registry that serves /metrics.
func Instrument(s Session) *InstrumentedSession {
	return &InstrumentedSession{
		Session: s,
		txTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "store_transactions_total",
				Help: "Units of work by outcome",
			},
			[]string{"outcome"},
		),
		txDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "store_transaction_duration_seconds",
				Help:    "Duration of units of work in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
}

// RunInTransaction delegates to the wrapped session and records the outcome.
func (s *InstrumentedSession) RunInTransaction(ctx context.Context, fn UnitOfWork) error {
	start := time.Now()
	err := s.Session.RunInTransaction(ctx, fn)
	s.txDuration.Observe(time.Since(start).Seconds())
	s.txTotal.WithLabelValues(outcome(err)).Inc()
	return err
}

// Collectors returns the metrics to register.
func (s *InstrumentedSession) Collectors() []prometheus.Collector {
	return []prometheus.Collector{s.txTotal, s.txDuration}
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "committed"
	case errors.Is(err, ErrUnavailable):
		return "unavailable"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "aborted"
	}
}
