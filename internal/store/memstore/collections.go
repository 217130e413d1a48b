package memstore

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"time"

	"note-ledger/internal/domain"
	"note-ledger/internal/store"

	"go.mongodb.org/mongo-driver/v2/bson"
)

var errDuplicateID = errors.New("duplicate _id")

func compareIDs(a, b bson.ObjectID) int {
	return bytes.Compare(a[:], b[:])
}

func window[T any](items []T, opts store.FindOptions) []T {
	skip := max(opts.Skip, 0)
	if skip >= int64(len(items)) {
		return []T{}
	}
	items = items[skip:]
	if opts.Limit > 0 && opts.Limit < int64(len(items)) {
		items = items[:opts.Limit]
	}
	return items
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func copyFolder(f domain.Folder) *domain.Folder {
	f.LastUpdatedAt = copyTime(f.LastUpdatedAt)
	return &f
}

func copyNote(n domain.Note) *domain.Note {
	return &n
}

func copyEvent(ev domain.Event) *domain.Event {
	ev.Payload = ev.Payload.Clone()
	return &ev
}

// -----------------------------------------------------------------------------
// folders
// -----------------------------------------------------------------------------

type folders struct{ a access }

func (c folders) Insert(ctx context.Context, f *domain.Folder) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if f.ID.IsZero() {
		f.ID = bson.NewObjectID()
	}
	return c.a.write(func(d *dataset) error {
		if _, ok := d.folders[f.ID]; ok {
			return errDuplicateID
		}
		d.folders[f.ID] = *copyFolder(*f)
		return nil
	})
}

func (c folders) FindOne(ctx context.Context, id bson.ObjectID, ownerID string) (*domain.Folder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out *domain.Folder
	c.a.read(func(d *dataset) {
		if f, ok := d.folders[id]; ok && f.OwnerID == ownerID {
			out = copyFolder(f)
		}
	})
	if out == nil {
		return nil, store.ErrNotFound
	}
	return out, nil
}

func (c folders) Find(ctx context.Context, ownerID string, opts store.FindOptions) ([]*domain.Folder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var all []domain.Folder
	c.a.read(func(d *dataset) {
		for _, f := range d.folders {
			if f.OwnerID == ownerID {
				all = append(all, f)
			}
		}
	})
	slices.SortFunc(all, func(x, y domain.Folder) int {
		if o := x.CreatedAt.Compare(y.CreatedAt); o != 0 {
			return o
		}
		return compareIDs(x.ID, y.ID)
	})

	page := window(all, opts)
	out := make([]*domain.Folder, 0, len(page))
	for _, f := range page {
		out = append(out, copyFolder(f))
	}
	return out, nil
}

func (c folders) UpdateOne(ctx context.Context, id bson.ObjectID, ownerID string, patch domain.FolderPatch, at time.Time) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	var modified int64
	err := c.a.write(func(d *dataset) error {
		cur, ok := d.folders[id]
		if !ok || cur.OwnerID != ownerID {
			return nil
		}
		next := cur
		patch.Apply(&next)
		next.LastUpdatedAt = &at
		if next.Name == cur.Name && cur.LastUpdatedAt != nil && cur.LastUpdatedAt.Equal(at) {
			return nil
		}
		d.folders[id] = next
		modified = 1
		return nil
	})
	return modified, err
}

func (c folders) DeleteOne(ctx context.Context, id bson.ObjectID, ownerID string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	var deleted int64
	err := c.a.write(func(d *dataset) error {
		if f, ok := d.folders[id]; ok && f.OwnerID == ownerID {
			delete(d.folders, id)
			deleted = 1
		}
		return nil
	})
	return deleted, err
}

// -----------------------------------------------------------------------------
// notes
// -----------------------------------------------------------------------------

type notes struct{ a access }

func (c notes) Insert(ctx context.Context, n *domain.Note) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if n.ID.IsZero() {
		n.ID = bson.NewObjectID()
	}
	return c.a.write(func(d *dataset) error {
		if _, ok := d.notes[n.ID]; ok {
			return errDuplicateID
		}
		d.notes[n.ID] = *n
		return nil
	})
}

func (c notes) FindOne(ctx context.Context, id, folderID bson.ObjectID) (*domain.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out *domain.Note
	c.a.read(func(d *dataset) {
		if n, ok := d.notes[id]; ok && n.FolderID == folderID {
			out = copyNote(n)
		}
	})
	if out == nil {
		return nil, store.ErrNotFound
	}
	return out, nil
}

func (c notes) Find(ctx context.Context, folderID bson.ObjectID, opts store.FindOptions) ([]*domain.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var all []domain.Note
	c.a.read(func(d *dataset) {
		for _, n := range d.notes {
			if n.FolderID == folderID {
				all = append(all, n)
			}
		}
	})
	slices.SortFunc(all, func(x, y domain.Note) int {
		if o := x.LastUpdatedAt.Compare(y.LastUpdatedAt); o != 0 {
			return o
		}
		return compareIDs(x.ID, y.ID)
	})

	page := window(all, opts)
	out := make([]*domain.Note, 0, len(page))
	for _, n := range page {
		out = append(out, copyNote(n))
	}
	return out, nil
}

func (c notes) UpdateOne(ctx context.Context, id, folderID bson.ObjectID, patch domain.NotePatch, at time.Time) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	var modified int64
	err := c.a.write(func(d *dataset) error {
		cur, ok := d.notes[id]
		if !ok || cur.FolderID != folderID {
			return nil
		}
		next := cur
		patch.Apply(&next)
		next.LastUpdatedAt = at
		if next.Title == cur.Title && next.Content == cur.Content && cur.LastUpdatedAt.Equal(at) {
			return nil
		}
		d.notes[id] = next
		modified = 1
		return nil
	})
	return modified, err
}

func (c notes) DeleteOne(ctx context.Context, id, folderID bson.ObjectID) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	var deleted int64
	err := c.a.write(func(d *dataset) error {
		if n, ok := d.notes[id]; ok && n.FolderID == folderID {
			delete(d.notes, id)
			deleted = 1
		}
		return nil
	})
	return deleted, err
}

// -----------------------------------------------------------------------------
// events
// -----------------------------------------------------------------------------

type events struct{ a access }

func (c events) Insert(ctx context.Context, ev *domain.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if ev.ID.IsZero() {
		ev.ID = bson.NewObjectID()
	}
	return c.a.write(func(d *dataset) error {
		d.events = append(d.events, *copyEvent(*ev))
		return nil
	})
}

func (c events) Find(ctx context.Context, filter store.EventFilter, opts store.FindOptions) ([]*domain.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var all []domain.Event
	c.a.read(func(d *dataset) {
		for _, ev := range d.events {
			if filter.AggregateID == "" || ev.AggregateID == filter.AggregateID {
				all = append(all, ev)
			}
		}
	})
	slices.SortFunc(all, func(x, y domain.Event) int {
		if o := y.CreatedAt.Compare(x.CreatedAt); o != 0 {
			return o
		}
		return compareIDs(y.ID, x.ID)
	})

	page := window(all, opts)
	out := make([]*domain.Event, 0, len(page))
	for _, ev := range page {
		out = append(out, copyEvent(ev))
	}
	return out, nil
}
