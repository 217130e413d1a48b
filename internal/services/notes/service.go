package notes

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"note-ledger/internal/domain"
	"note-ledger/internal/services/events"
	"note-ledger/internal/services/folders"
	"note-ledger/internal/services/listing"
	"note-ledger/internal/store"
	"note-ledger/internal/utils/sanitize"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Service mutates notes. A note is reachable only through a folder owned by
// the caller, and every operation checks that first.
type Service struct {
	sess    store.Session
	folders *folders.Service
	events  *events.Log
	bus     events.Bus
	log     *slog.Logger
	now     func() time.Time
}

// NewService creates a new notes service
func NewService(sess store.Session, folderSvc *folders.Service, eventLog *events.Log, bus events.Bus, log *slog.Logger) *Service {
	if bus == nil {
		bus = events.NopBus{}
	}
	return &Service{
		sess:    sess,
		folders: folderSvc,
		events:  eventLog,
		bus:     bus,
		log:     log,
		now:     domain.Now,
	}
}

// Create inserts a note into an owned folder and records NOTE_CREATED with
// the submitted title and content.
func (s *Service) Create(ctx context.Context, ownerID, folderID string, req CreateNoteRequest) (*domain.Note, error) {
	now := s.now()
	note := &domain.Note{
		ID:            bson.NewObjectID(),
		Title:         sanitize.Clean(req.Title),
		CreatedAt:     now,
		LastUpdatedAt: now,
	}
	payload := domain.Payload{"title": note.Title}
	if req.Content != nil {
		note.Content = sanitize.Clean(*req.Content)
		payload["content"] = note.Content
	}

	var ev *domain.Event
	err := s.sess.RunInTransaction(ctx, func(ctx context.Context, tx store.Collections) error {
		folder, err := s.folders.Owned(ctx, tx, ownerID, folderID)
		if err != nil {
			return err
		}
		note.FolderID = folder.ID

		if err := tx.Notes.Insert(ctx, note); err != nil {
			return err
		}
		ev, err = s.events.Append(ctx, tx.Events, note.ID.Hex(), domain.NoteCreated, payload)
		return err
	})
	if err != nil {
		return nil, s.fail(ErrCreateNote, err, ownerID, folderID, "")
	}

	s.bus.Broadcast(ctx, ownerID, *ev)
	return note, nil
}

// Get returns a note of an owned folder.
func (s *Service) Get(ctx context.Context, ownerID, folderID, noteID string) (*domain.Note, error) {
	c := s.sess.Collections()
	folder, err := s.folders.Owned(ctx, c, ownerID, folderID)
	if err != nil {
		return nil, err
	}
	id, err := domain.ParseID(noteID)
	if err != nil {
		return nil, err
	}

	note, err := c.Notes.FindOne(ctx, id, folder.ID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNoteNotFound
	}
	if err != nil {
		return nil, s.fail(ErrGetNote, err, ownerID, folderID, noteID)
	}
	return note, nil
}

// List returns the folder's notes, least recently updated first.
func (s *Service) List(ctx context.Context, ownerID, folderID string, page listing.Page) (*ListNotesResponse, error) {
	page, err := page.Normalize()
	if err != nil {
		return nil, err
	}
	c := s.sess.Collections()
	folder, err := s.folders.Owned(ctx, c, ownerID, folderID)
	if err != nil {
		return nil, err
	}

	list, err := c.Notes.Find(ctx, folder.ID, page.FindOptions())
	if err != nil {
		return nil, s.fail(ErrListNotes, err, ownerID, folderID, "")
	}
	if list == nil {
		list = []*domain.Note{}
	}

	return &ListNotesResponse{Notes: list, Limit: page.Limit, Offset: page.Offset}, nil
}

// Update sets the submitted fields and last_updated_at. NOTE_UPDATED is
// recorded only when the store reports a change. A nil note with a nil
// error means the folder holds no such note.
func (s *Service) Update(ctx context.Context, ownerID, folderID, noteID string, req UpdateNoteRequest) (*domain.Note, error) {
	id, err := domain.ParseID(noteID)
	if err != nil {
		return nil, err
	}
	patch := req.patch()

	var (
		updated *domain.Note
		ev      *domain.Event
	)
	err = s.sess.RunInTransaction(ctx, func(ctx context.Context, tx store.Collections) error {
		folder, err := s.folders.Owned(ctx, tx, ownerID, folderID)
		if err != nil {
			return err
		}

		modified, err := tx.Notes.UpdateOne(ctx, id, folder.ID, patch, s.now())
		if err != nil {
			return err
		}
		if modified > 0 {
			ev, err = s.events.Append(ctx, tx.Events, id.Hex(), domain.NoteUpdated, patch.Payload())
			if err != nil {
				return err
			}
		}

		updated, err = tx.Notes.FindOne(ctx, id, folder.ID)
		if errors.Is(err, store.ErrNotFound) {
			updated = nil
			return nil
		}
		return err
	})
	if err != nil {
		return nil, s.fail(ErrUpdateNote, err, ownerID, folderID, noteID)
	}

	if updated == nil {
		s.log.Info("note not found for update", "owner_id", ownerID, "folder_id", folderID, "note_id", noteID)
		return nil, nil
	}
	if ev != nil {
		s.bus.Broadcast(ctx, ownerID, *ev)
	}
	return updated, nil
}

// Delete removes the note and records NOTE_DELETED when something was
// removed. A missing note in an owned folder is not an error.
func (s *Service) Delete(ctx context.Context, ownerID, folderID, noteID string) (bool, error) {
	id, err := domain.ParseID(noteID)
	if err != nil {
		return false, err
	}

	var ev *domain.Event
	err = s.sess.RunInTransaction(ctx, func(ctx context.Context, tx store.Collections) error {
		folder, err := s.folders.Owned(ctx, tx, ownerID, folderID)
		if err != nil {
			return err
		}
		deleted, err := tx.Notes.DeleteOne(ctx, id, folder.ID)
		if err != nil || deleted == 0 {
			return err
		}
		ev, err = s.events.Append(ctx, tx.Events, id.Hex(), domain.NoteDeleted, domain.Payload{})
		return err
	})
	if err != nil {
		return false, s.fail(ErrDeleteNote, err, ownerID, folderID, noteID)
	}

	if ev == nil {
		s.log.Info("note not found for delete", "owner_id", ownerID, "folder_id", folderID, "note_id", noteID)
		return false, nil
	}
	s.bus.Broadcast(ctx, ownerID, *ev)
	return true, nil
}

// fail passes ownership and id errors through untouched and wraps the rest.
func (s *Service) fail(op, err error, ownerID, folderID, noteID string) error {
	if errors.Is(err, folders.ErrFolderNotFound) || errors.Is(err, domain.ErrInvalidID) {
		return err
	}
	s.log.Error(op.Error(), "error", err, "owner_id", ownerID, "folder_id", folderID, "note_id", noteID)
	return fmt.Errorf("%w: %w", op, err)
}
