package folders

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"note-ledger/internal/domain"
	"note-ledger/internal/services/events"
	"note-ledger/internal/services/listing"
	"note-ledger/internal/store"
	"note-ledger/internal/store/memstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func silentLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ptr[T any](v T) *T { return &v }

// recordingBus collects broadcasts.
type recordingBus struct {
	owners []string
	events []domain.Event
}

func (b *recordingBus) Broadcast(_ context.Context, ownerID string, ev domain.Event) {
	b.owners = append(b.owners, ownerID)
	b.events = append(b.events, ev)
}

// brokenEvents fails every append.
type brokenEvents struct{ store.EventCollection }

func (brokenEvents) Insert(context.Context, *domain.Event) error { return errors.New("event log down") }

type brokenEventsSession struct{ store.Session }

func (s brokenEventsSession) RunInTransaction(ctx context.Context, fn store.UnitOfWork) error {
	return s.Session.RunInTransaction(ctx, func(ctx context.Context, tx store.Collections) error {
		tx.Events = brokenEvents{tx.Events}
		return fn(ctx, tx)
	})
}

// clock returns a now func that moves forward a day per call.
func clock() func() time.Time {
	t := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(24 * time.Hour)
		return t
	}
}

func newService(t *testing.T) (*Service, *memstore.Store, *recordingBus) {
	t.Helper()
	st := memstore.New()
	bus := &recordingBus{}
	svc := NewService(st, events.NewLog(), bus, silentLogger())
	svc.now = clock()
	return svc, st, bus
}

func allEvents(t *testing.T, st store.Session) []*domain.Event {
	t.Helper()
	evs, err := st.Collections().Events.Find(context.Background(), store.EventFilter{}, store.FindOptions{})
	require.NoError(t, err)
	return evs
}

func TestCreateRecordsEvent(t *testing.T) {
	svc, st, bus := newService(t)
	ctx := context.Background()

	f, err := svc.Create(ctx, "u1", CreateFolderRequest{Name: "<b>Trips</b>"})
	require.NoError(t, err)
	assert.False(t, f.ID.IsZero())
	assert.Equal(t, "u1", f.OwnerID)
	assert.Equal(t, "Trips", f.Name)
	assert.Nil(t, f.LastUpdatedAt)

	evs := allEvents(t, st)
	require.Len(t, evs, 1)
	assert.Equal(t, f.ID.Hex(), evs[0].AggregateID)
	assert.Equal(t, domain.FolderCreated, evs[0].Type)
	assert.Equal(t, domain.Payload{"name": "Trips"}, evs[0].Payload)

	require.Len(t, bus.events, 1)
	assert.Equal(t, "u1", bus.owners[0])
}

func TestCreateRollsBackWhenEventAppendFails(t *testing.T) {
	st := memstore.New()
	bus := &recordingBus{}
	svc := NewService(brokenEventsSession{st}, events.NewLog(), bus, silentLogger())

	_, err := svc.Create(context.Background(), "u1", CreateFolderRequest{Name: "x"})
	require.ErrorIs(t, err, ErrCreateFolder)

	list, err := st.Collections().Folders.Find(context.Background(), "u1", store.FindOptions{})
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Empty(t, allEvents(t, st))
	assert.Empty(t, bus.events)
}

func TestGetForeignAndMissingLookAlike(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	f, err := svc.Create(ctx, "u1", CreateFolderRequest{Name: "mine"})
	require.NoError(t, err)

	got, err := svc.Get(ctx, "u1", f.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, f.ID, got.ID)

	_, foreignErr := svc.Get(ctx, "u2", f.ID.Hex())
	_, missingErr := svc.Get(ctx, "u2", bson.NewObjectID().Hex())
	assert.ErrorIs(t, foreignErr, ErrFolderNotFound)
	assert.Equal(t, missingErr, foreignErr)

	_, err = svc.Get(ctx, "u1", "not-an-id")
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestListOrdersByCreationAndPaginates(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	var ids []bson.ObjectID
	for _, name := range []string{"day0", "day1", "day2", "day3", "day4"} {
		f, err := svc.Create(ctx, "u1", CreateFolderRequest{Name: name})
		require.NoError(t, err)
		ids = append(ids, f.ID)
	}
	_, err := svc.Create(ctx, "u2", CreateFolderRequest{Name: "other"})
	require.NoError(t, err)

	resp, err := svc.List(ctx, "u1", listing.Page{Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, resp.Folders, 2)
	assert.Equal(t, ids[1], resp.Folders[0].ID)
	assert.Equal(t, ids[2], resp.Folders[1].ID)
	assert.Equal(t, 2, resp.Limit)
	assert.Equal(t, 1, resp.Offset)

	resp, err = svc.List(ctx, "u3", listing.Page{})
	require.NoError(t, err)
	assert.NotNil(t, resp.Folders)
	assert.Empty(t, resp.Folders)
	assert.Equal(t, listing.DefaultLimit, resp.Limit)

	// caps above these belong to the HTTP layer
	resp, err = svc.List(ctx, "u1", listing.Page{Limit: 150})
	require.NoError(t, err)
	assert.Len(t, resp.Folders, 5)
	assert.Equal(t, 150, resp.Limit)

	resp, err = svc.List(ctx, "u1", listing.Page{Limit: 5, Offset: listing.MaxOffset + 1})
	require.NoError(t, err)
	assert.Empty(t, resp.Folders)

	_, err = svc.List(ctx, "u1", listing.Page{Limit: 1, Offset: -1})
	assert.ErrorIs(t, err, listing.ErrInvalidPage)
}

func TestUpdateEmitsOnlyForOwner(t *testing.T) {
	svc, st, bus := newService(t)
	ctx := context.Background()

	f, err := svc.Create(ctx, "u1", CreateFolderRequest{Name: "before"})
	require.NoError(t, err)

	got, err := svc.Update(ctx, "u2", f.ID.Hex(), UpdateFolderRequest{Name: ptr("hijack")})
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Len(t, allEvents(t, st), 1)

	got, err = svc.Update(ctx, "u1", f.ID.Hex(), UpdateFolderRequest{Name: ptr("after")})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "after", got.Name)
	require.NotNil(t, got.LastUpdatedAt)
	assert.True(t, got.LastUpdatedAt.After(got.CreatedAt))

	evs := allEvents(t, st)
	require.Len(t, evs, 2)
	assert.Equal(t, domain.FolderUpdated, evs[0].Type)
	assert.Equal(t, domain.Payload{"name": "after"}, evs[0].Payload)
	assert.Len(t, bus.events, 2)
}

func TestEmptyUpdateRefreshesTimestampAndEmits(t *testing.T) {
	svc, st, _ := newService(t)
	ctx := context.Background()

	f, err := svc.Create(ctx, "u1", CreateFolderRequest{Name: "keep"})
	require.NoError(t, err)

	got, err := svc.Update(ctx, "u1", f.ID.Hex(), UpdateFolderRequest{})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "keep", got.Name)
	assert.NotNil(t, got.LastUpdatedAt)

	evs := allEvents(t, st)
	require.Len(t, evs, 2)
	assert.Equal(t, domain.FolderUpdated, evs[0].Type)
	assert.Empty(t, evs[0].Payload)
}

func TestDeleteEmitsOnlyWhenRemoved(t *testing.T) {
	svc, st, _ := newService(t)
	ctx := context.Background()

	deleted, err := svc.Delete(ctx, "u1", bson.NewObjectID().Hex())
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Empty(t, allEvents(t, st))

	f, err := svc.Create(ctx, "u1", CreateFolderRequest{Name: "gone"})
	require.NoError(t, err)

	deleted, err = svc.Delete(ctx, "u2", f.ID.Hex())
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Len(t, allEvents(t, st), 1)

	deleted, err = svc.Delete(ctx, "u1", f.ID.Hex())
	require.NoError(t, err)
	assert.True(t, deleted)

	evs := allEvents(t, st)
	require.Len(t, evs, 2)
	assert.Equal(t, domain.FolderDeleted, evs[0].Type)
	assert.Equal(t, f.ID.Hex(), evs[0].AggregateID)
	assert.Empty(t, evs[0].Payload)

	_, err = svc.Get(ctx, "u1", f.ID.Hex())
	assert.ErrorIs(t, err, ErrFolderNotFound)
}

func TestMutationsRejectMalformedIDs(t *testing.T) {
	svc, st, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Update(ctx, "u1", "xyz", UpdateFolderRequest{Name: ptr("n")})
	assert.ErrorIs(t, err, domain.ErrInvalidID)
	_, err = svc.Delete(ctx, "u1", "xyz")
	assert.ErrorIs(t, err, domain.ErrInvalidID)
	assert.Empty(t, allEvents(t, st))
}
