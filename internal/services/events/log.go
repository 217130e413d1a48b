// Package events records and serves the audit trail of folder and note
// mutations, and fans committed events out to live subscribers.
package events

import (
	"context"
	"fmt"
	"time"

	"note-ledger/internal/domain"
	"note-ledger/internal/store"
)

// Log appends events through whatever handle it is given, so an append
// joins the caller's transaction.
type Log struct {
	now func() time.Time
}

// NewLog returns a Log stamping events with domain.Now.
func NewLog() *Log {
	return &Log{now: domain.Now}
}

// Append writes one event. The payload is deep-copied; a nil payload is
// stored as an empty object. Append never reads and never retries.
func (l *Log) Append(ctx context.Context, w store.EventCollection, aggregateID string, typ domain.EventType, payload domain.Payload) (*domain.Event, error) {
	if !typ.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, typ)
	}

	ev := &domain.Event{
		AggregateID: aggregateID,
		Type:        typ,
		Payload:     payload.Clone(),
		CreatedAt:   l.now(),
	}
	if err := w.Insert(ctx, ev); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAppendEvent, err)
	}
	return ev, nil
}
