package events

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"note-ledger/internal/domain"
	"note-ledger/internal/services/listing"
	"note-ledger/internal/store"
	"note-ledger/internal/store/memstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func silentLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// MockEvents is a mock implementation of store.EventCollection
type MockEvents struct {
	mock.Mock
}

func (m *MockEvents) Insert(ctx context.Context, ev *domain.Event) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

func (m *MockEvents) Find(ctx context.Context, filter store.EventFilter, opts store.FindOptions) ([]*domain.Event, error) {
	args := m.Called(ctx, filter, opts)
	if evs := args.Get(0); evs != nil {
		return evs.([]*domain.Event), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestLogAppendCopiesPayloadAndStampsTime(t *testing.T) {
	at := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	l := &Log{now: func() time.Time { return at }}

	w := new(MockEvents)
	var stored *domain.Event
	w.On("Insert", mock.Anything, mock.AnythingOfType("*domain.Event")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*domain.Event) }).
		Return(nil).Once()

	payload := domain.Payload{"title": "x"}
	ev, err := l.Append(context.Background(), w, "agg", domain.NoteCreated, payload)
	require.NoError(t, err)
	payload["title"] = "changed"

	assert.Same(t, stored, ev)
	assert.Equal(t, "agg", ev.AggregateID)
	assert.Equal(t, domain.NoteCreated, ev.Type)
	assert.Equal(t, at, ev.CreatedAt)
	assert.Equal(t, "x", ev.Payload["title"])
	w.AssertExpectations(t)
}

func TestLogAppendNilPayloadIsEmptyObject(t *testing.T) {
	w := new(MockEvents)
	w.On("Insert", mock.Anything, mock.Anything).Return(nil).Once()

	ev, err := NewLog().Append(context.Background(), w, "agg", domain.FolderDeleted, nil)
	require.NoError(t, err)
	assert.NotNil(t, ev.Payload)
	assert.Empty(t, ev.Payload)
}

func TestLogAppendErrors(t *testing.T) {
	w := new(MockEvents)
	boom := errors.New("boom")
	w.On("Insert", mock.Anything, mock.Anything).Return(boom).Once()

	_, err := NewLog().Append(context.Background(), w, "agg", domain.NoteDeleted, nil)
	assert.ErrorIs(t, err, ErrAppendEvent)
	assert.ErrorIs(t, err, boom)

	_, err = NewLog().Append(context.Background(), w, "agg", domain.EventType("NOPE"), nil)
	assert.ErrorIs(t, err, ErrUnknownType)
	w.AssertNumberOfCalls(t, "Insert", 1)
}

func TestServiceListNewestFirst(t *testing.T) {
	s := memstore.New()
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	agg := bson.NewObjectID().Hex()
	for i, typ := range []domain.EventType{domain.NoteCreated, domain.NoteUpdated, domain.NoteDeleted} {
		require.NoError(t, s.Collections().Events.Insert(ctx, &domain.Event{
			AggregateID: agg, Type: typ, Payload: domain.Payload{}, CreatedAt: base.Add(time.Duration(i) * time.Second),
		}))
	}
	require.NoError(t, s.Collections().Events.Insert(ctx, &domain.Event{
		AggregateID: bson.NewObjectID().Hex(), Type: domain.FolderCreated, CreatedAt: base,
	}))

	svc := NewService(s, silentLogger())

	resp, err := svc.List(ctx, listing.Page{Limit: 2})
	require.NoError(t, err)
	require.Len(t, resp.Events, 2)
	assert.Equal(t, domain.NoteDeleted, resp.Events[0].Type)
	assert.Equal(t, domain.NoteUpdated, resp.Events[1].Type)

	resp, err = svc.ListForAggregate(ctx, agg, listing.Page{Limit: 10, Offset: 2})
	require.NoError(t, err)
	require.Len(t, resp.Events, 1)
	assert.Equal(t, domain.NoteCreated, resp.Events[0].Type)
	assert.Equal(t, 2, resp.Offset)

	_, err = svc.ListForAggregate(ctx, "bad", listing.Page{})
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	resp, err = svc.ListForAggregate(ctx, strings.ToUpper(agg), listing.Page{})
	require.NoError(t, err)
	assert.Len(t, resp.Events, 3, "uppercase hex names the same aggregate")

	resp, err = svc.List(ctx, listing.Page{Limit: 1000})
	require.NoError(t, err)
	assert.Len(t, resp.Events, 4)
	assert.Equal(t, 1000, resp.Limit)

	_, err = svc.List(ctx, listing.Page{Limit: -1})
	assert.ErrorIs(t, err, listing.ErrInvalidPage)
}

func TestServiceListEmptyIsNotNil(t *testing.T) {
	svc := NewService(memstore.New(), silentLogger())
	resp, err := svc.List(context.Background(), listing.Page{})
	require.NoError(t, err)
	assert.NotNil(t, resp.Events)
	assert.Equal(t, listing.DefaultLimit, resp.Limit)
}
