// Package memstore is an in-memory store.Session. A transaction works on a
// private copy of the dataset that replaces the shared one only on success,
// so a failing unit of work leaves no trace.
package memstore

import (
	"context"
	"fmt"
	"sync"

	"note-ledger/internal/domain"
	"note-ledger/internal/store"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type dataset struct {
	folders map[bson.ObjectID]domain.Folder
	notes   map[bson.ObjectID]domain.Note
	events  []domain.Event
}

func newDataset() *dataset {
	return &dataset{
		folders: make(map[bson.ObjectID]domain.Folder),
		notes:   make(map[bson.ObjectID]domain.Note),
	}
}

func (d *dataset) clone() *dataset {
	cp := &dataset{
		folders: make(map[bson.ObjectID]domain.Folder, len(d.folders)),
		notes:   make(map[bson.ObjectID]domain.Note, len(d.notes)),
		events:  make([]domain.Event, len(d.events), len(d.events)+1),
	}
	for k, v := range d.folders {
		cp.folders[k] = v
	}
	for k, v := range d.notes {
		cp.notes[k] = v
	}
	copy(cp.events, d.events)
	return cp
}

// access runs reads and writes against a dataset. Inside a transaction it is
// the private copy; outside it takes the store lock per call.
type access interface {
	read(func(*dataset))
	write(func(*dataset) error) error
}

// Store implements store.Session.
type Store struct {
	mu   sync.RWMutex
	data *dataset
}

var _ store.Session = (*Store)(nil)

// New returns an empty store.
func New() *Store {
	return &Store{data: newDataset()}
}

func (s *Store) read(fn func(*dataset)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.data)
}

func (s *Store) write(fn func(*dataset) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.data)
}

type txAccess struct{ d *dataset }

func (t txAccess) read(fn func(*dataset)) { fn(t.d) }
func (t txAccess) write(fn func(*dataset) error) error { return fn(t.d) }

func collections(a access) store.Collections {
	return store.Collections{
		Folders: folders{a},
		Notes:   notes{a},
		Events:  events{a},
	}
}

// RunInTransaction serialises units of work. fn sees a snapshot that nobody
// else can observe until it returns nil.
func (s *Store) RunInTransaction(ctx context.Context, fn store.UnitOfWork) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.data.clone()
	if err := fn(ctx, collections(txAccess{snap})); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	s.data = snap
	return nil
}

// Collections returns handles that lock the store on every call.
func (s *Store) Collections() store.Collections {
	return collections(s)
}

// Ping always succeeds.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}
