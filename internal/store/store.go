// Package store defines the document store contract shared by the mutation
// services and the concrete backends.
package store

import (
	"context"
	"errors"
	"time"

	"note-ledger/internal/domain"

	"go.mongodb.org/mongo-driver/v2/bson"
)

var (
	// ErrNotFound is returned by FindOne when no document matches.
	ErrNotFound = errors.New("document not found")
	// ErrUnavailable wraps connectivity and timeout failures of the backend.
	ErrUnavailable = errors.New("store unavailable")
	// ErrTransactionsUnsupported is returned when the deployment cannot run
	// multi-document transactions (a standalone mongod).
	ErrTransactionsUnsupported = errors.New("store does not support transactions")
)

// FindOptions bound a listing. Ordering is fixed per collection and is applied
// before Skip and Limit. A zero Limit means no limit.
type FindOptions struct {
	Skip  int64
	Limit int64
}

// FolderCollection stores folders. Every lookup is scoped by owner.
type FolderCollection interface {
	Insert(ctx context.Context, f *domain.Folder) error
	FindOne(ctx context.Context, id bson.ObjectID, ownerID string) (*domain.Folder, error)
	// Find returns the owner's folders ordered by created_at asc, _id asc.
	Find(ctx context.Context, ownerID string, opts FindOptions) ([]*domain.Folder, error)
	// UpdateOne applies patch and sets last_updated_at. It returns the number
	// of documents whose stored state changed.
	UpdateOne(ctx context.Context, id bson.ObjectID, ownerID string, patch domain.FolderPatch, at time.Time) (int64, error)
	DeleteOne(ctx context.Context, id bson.ObjectID, ownerID string) (int64, error)
}

// NoteCollection stores notes. Every lookup is scoped by folder.
type NoteCollection interface {
	Insert(ctx context.Context, n *domain.Note) error
	FindOne(ctx context.Context, id, folderID bson.ObjectID) (*domain.Note, error)
	// Find returns the folder's notes ordered by last_updated_at asc, _id asc.
	Find(ctx context.Context, folderID bson.ObjectID, opts FindOptions) ([]*domain.Note, error)
	UpdateOne(ctx context.Context, id, folderID bson.ObjectID, patch domain.NotePatch, at time.Time) (int64, error)
	DeleteOne(ctx context.Context, id, folderID bson.ObjectID) (int64, error)
}

// EventFilter narrows an event listing. The zero value matches everything.
type EventFilter struct {
	AggregateID string
}

// EventCollection is the append-only audit log.
type EventCollection interface {
	Insert(ctx context.Context, ev *domain.Event) error
	// Find returns events ordered by created_at desc, _id desc.
	Find(ctx context.Context, filter EventFilter, opts FindOptions) ([]*domain.Event, error)
}

// Collections is the set of handles a unit of work operates on.
type Collections struct {
	Folders FolderCollection
	Notes   NoteCollection
	Events  EventCollection
}

// UnitOfWork runs inside a transaction. Every call made through tx joins it.
// Returning an error discards all of its writes.
type UnitOfWork func(ctx context.Context, tx Collections) error

// Session opens transactions against a backend.
type Session interface {
	// RunInTransaction commits fn's writes atomically or none of them.
	// There is no retry: a failed attempt is reported to the caller.
	RunInTransaction(ctx context.Context, fn UnitOfWork) error
	// Collections returns non-transactional handles for reads.
	Collections() Collections
	Ping(ctx context.Context) error
}
