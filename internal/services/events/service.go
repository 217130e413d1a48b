package events

import (
	"context"
	"fmt"
	"log/slog"

	"note-ledger/internal/domain"
	"note-ledger/internal/services/listing"
	"note-ledger/internal/store"
)

// Bus delivers committed events to live subscribers of their owner.
type Bus interface {
	Broadcast(ctx context.Context, ownerID string, ev domain.Event)
}

// Service serves the event log. Listings are newest first and are not
// scoped by owner.
type Service struct {
	sess store.Session
	log  *slog.Logger
}

// NewService creates a new events service
func NewService(sess store.Session, log *slog.Logger) *Service {
	return &Service{sess: sess, log: log}
}

// ListEventsResponse represents a page of events
type ListEventsResponse struct {
	Events []*domain.Event `json:"events"`
	Limit  int             `json:"limit" example:"20"`
	Offset int             `json:"offset" example:"0"`
}

// List returns a page of all events ordered by created_at desc.
func (s *Service) List(ctx context.Context, page listing.Page) (*ListEventsResponse, error) {
	return s.find(ctx, store.EventFilter{}, page)
}

// ListForAggregate returns the history of one entity, newest first.
func (s *Service) ListForAggregate(ctx context.Context, aggregateID string, page listing.Page) (*ListEventsResponse, error) {
	id, err := domain.ParseID(aggregateID)
	if err != nil {
		return nil, err
	}
	// aggregate ids are stored as lowercase hex
	return s.find(ctx, store.EventFilter{AggregateID: id.Hex()}, page)
}

func (s *Service) find(ctx context.Context, filter store.EventFilter, page listing.Page) (*ListEventsResponse, error) {
	page, err := page.Normalize()
	if err != nil {
		return nil, err
	}

	evs, err := s.sess.Collections().Events.Find(ctx, filter, page.FindOptions())
	if err != nil {
		s.log.Error(ErrListEvents.Error(), "error", err, "aggregate_id", filter.AggregateID)
		return nil, fmt.Errorf("%w: %w", ErrListEvents, err)
	}
	if evs == nil {
		evs = []*domain.Event{}
	}

	return &ListEventsResponse{Events: evs, Limit: page.Limit, Offset: page.Offset}, nil
}

// NopBus drops every event.
type NopBus struct{}

func (NopBus) Broadcast(context.Context, string, domain.Event) {}
