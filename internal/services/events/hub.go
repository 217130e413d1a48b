package events

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"note-ledger/internal/domain"
	"note-ledger/internal/logger"

	"github.com/oklog/ulid/v2"
	"github.com/prometheus/client_golang/prometheus"
)

// Subscriber is one live connection of an owner.
type Subscriber struct {
	OwnerID string
	Ch      chan domain.Event
	Done    chan struct{}
}

// ConnInfo holds connection metadata
type ConnInfo struct {
	ID          ulid.ULID
	ConnectedAt time.Time
	Subscriber  *Subscriber
}

// ownerSubs holds the connections of one owner
type ownerSubs struct {
	mu sync.RWMutex
	m  map[ulid.ULID]ConnInfo
}

// Hub fans committed events out to the owner's connections. A slow
// connection never blocks a mutation: when its outbox is full the event is
// dropped for that connection.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]*ownerSubs
	connIndex   map[ulid.ULID]string
	bufferSize  int
	dropped     atomic.Uint64
}

var _ Bus = (*Hub)(nil)

// NewHub creates a hub whose per-connection outbox holds bufferSize events.
func NewHub(bufferSize int) *Hub {
	return &Hub{
		subscribers: make(map[string]*ownerSubs),
		connIndex:   make(map[ulid.ULID]string),
		bufferSize:  bufferSize,
	}
}

// Subscribe registers a connection. The returned func unsubscribes it.
func (h *Hub) Subscribe(ctx context.Context, connID ulid.ULID, ownerID string) (*Subscriber, func()) {
	logger.L().DebugContext(ctx, "subscribing connection", "conn_id", connID.String(), "owner_id", ownerID)

	sub := &Subscriber{
		OwnerID: ownerID,
		Ch:      make(chan domain.Event, h.bufferSize),
		Done:    make(chan struct{}),
	}

	h.mu.Lock()
	bucket, ok := h.subscribers[ownerID]
	if !ok {
		bucket = &ownerSubs{m: make(map[ulid.ULID]ConnInfo)}
		h.subscribers[ownerID] = bucket
	}
	h.connIndex[connID] = ownerID
	bucket.mu.Lock()
	bucket.m[connID] = ConnInfo{ID: connID, ConnectedAt: time.Now(), Subscriber: sub}
	bucket.mu.Unlock()
	h.mu.Unlock()

	return sub, func() { h.Unsubscribe(ctx, connID) }
}

// Unsubscribe removes a connection and closes its channels. Unknown ids
// are ignored, so it is safe to call twice.
func (h *Hub) Unsubscribe(ctx context.Context, connID ulid.ULID) {
	logger.L().DebugContext(ctx, "unsubscribing connection", "conn_id", connID.String())

	h.mu.Lock()
	ownerID, ok := h.connIndex[connID]
	if !ok {
		h.mu.Unlock()
		return
	}
	delete(h.connIndex, connID)

	bucket := h.subscribers[ownerID]
	var info ConnInfo
	var found bool
	if bucket != nil {
		bucket.mu.Lock()
		info, found = bucket.m[connID]
		delete(bucket.m, connID)
		if len(bucket.m) == 0 {
			delete(h.subscribers, ownerID)
		}
		bucket.mu.Unlock()
	}
	h.mu.Unlock()

	if found {
		close(info.Subscriber.Ch)
		close(info.Subscriber.Done)
	}
}

// Broadcast delivers ev to every connection of ownerID without blocking.
func (h *Hub) Broadcast(ctx context.Context, ownerID string, ev domain.Event) {
	log := logger.L()
	if log.Enabled(ctx, slog.LevelDebug) {
		log.DebugContext(ctx, "broadcasting event", "owner_id", ownerID, "event_type", ev.Type, "aggregate_id", ev.AggregateID)
	}

	h.mu.RLock()
	bucket := h.subscribers[ownerID]
	h.mu.RUnlock()
	if bucket == nil {
		return
	}

	bucket.mu.RLock()
	defer bucket.mu.RUnlock()
	for _, info := range bucket.m {
		sendOrDrop(info.Subscriber.Ch, ev, func() {
			h.dropped.Add(1)
			log.Warn("outbox full, dropping event", "conn_id", info.ID.String(), "owner_id", ownerID, "event_type", ev.Type)
		})
	}
}

// sendOrDrop is the only place that can decide to drop an event.
func sendOrDrop(ch chan domain.Event, ev domain.Event, onDrop func()) {
	select {
	case ch <- ev:
	default:
		onDrop()
	}
}

// Stats returns the live connection count and the number of dropped events.
func (h *Hub) Stats() (subscribers int, dropped uint64) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, bucket := range h.subscribers {
		bucket.mu.RLock()
		subscribers += len(bucket.m)
		bucket.mu.RUnlock()
	}
	return subscribers, h.dropped.Load()
}

// Collectors exposes the live connection count and the drop counter.
func (h *Hub) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "events_stream_subscribers",
			Help: "Open event stream connections",
		}, func() float64 {
			n, _ := h.Stats()
			return float64(n)
		}),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name: "events_stream_dropped_total",
			Help: "Events dropped because a connection outbox was full",
		}, func() float64 {
			_, dropped := h.Stats()
			return float64(dropped)
		}),
	}
}
