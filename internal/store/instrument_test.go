package store

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSession struct {
	err error
}

func (f fakeSession) RunInTransaction(ctx context.Context, fn UnitOfWork) error {
	if f.err != nil {
		return f.err
	}
	return fn(ctx, Collections{})
}

func (fakeSession) Collections() Collections { return Collections{} }
func (fakeSession) Ping(context.Context) error { return nil }

func TestInstrumentCountsOutcomes(t *testing.T) {
	ok := Instrument(fakeSession{})
	assert.NoError(t, ok.RunInTransaction(context.Background(), func(context.Context, Collections) error { return nil }))
	assert.Error(t, ok.RunInTransaction(context.Background(), func(context.Context, Collections) error { return errors.New("boom") }))

	down := Instrument(fakeSession{err: fmt.Errorf("%w: dial", ErrUnavailable)})
	err := down.RunInTransaction(context.Background(), func(context.Context, Collections) error { return nil })
	assert.ErrorIs(t, err, ErrUnavailable)

	assert.Equal(t, map[string]float64{"committed": 1, "aborted": 1}, outcomes(t, ok))
	assert.Equal(t, map[string]float64{"unavailable": 1}, outcomes(t, down))
}

func outcomes(t *testing.T, s *InstrumentedSession) map[string]float64 {
	t.Helper()
	reg := prometheus.NewRegistry()
	reg.MustRegister(s.Collectors()...)
	mfs, err := reg.Gather()
	require.NoError(t, err)

	out := map[string]float64{}
	for _, mf := range mfs {
		if mf.GetName() != "store_transactions_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			out[m.GetLabel()[0].GetValue()] = m.GetCounter().GetValue()
		}
	}
	return out
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, "canceled", outcome(fmt.Errorf("x: %w", context.Canceled)))
	assert.Equal(t, "committed", outcome(nil))
}
