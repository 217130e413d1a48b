package folders

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"note-ledger/internal/domain"
	"note-ledger/internal/services/events"
	"note-ledger/internal/services/listing"
	"note-ledger/internal/store"
	"note-ledger/internal/utils/sanitize"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Service mutates folders. Every mutation and its event commit together.
type Service struct {
	sess   store.Session
	events *events.Log
	bus    events.Bus
	log    *slog.Logger
	now    func() time.Time
}

// NewService creates a new folders service
func NewService(sess store.Session, eventLog *events.Log, bus events.Bus, log *slog.Logger) *Service {
	if bus == nil {
		bus = events.NopBus{}
	}
	return &Service{
		sess:   sess,
		events: eventLog,
		bus:    bus,
		log:    log,
		now:    domain.Now,
	}
}

// Create inserts a folder owned by ownerID and records FOLDER_CREATED.
func (s *Service) Create(ctx context.Context, ownerID string, req CreateFolderRequest) (*domain.Folder, error) {
	folder := &domain.Folder{
		ID:        bson.NewObjectID(),
		OwnerID:   ownerID,
		Name:      sanitize.Clean(req.Name),
		CreatedAt: s.now(),
	}

	var ev *domain.Event
	err := s.sess.RunInTransaction(ctx, func(ctx context.Context, tx store.Collections) error {
		if err := tx.Folders.Insert(ctx, folder); err != nil {
			return err
		}
		var err error
		ev, err = s.events.Append(ctx, tx.Events, folder.ID.Hex(), domain.FolderCreated, domain.Payload{"name": folder.Name})
		return err
	})
	if err != nil {
		s.log.Error(ErrCreateFolder.Error(), "error", err, "owner_id", ownerID)
		return nil, fmt.Errorf("%w: %w", ErrCreateFolder, err)
	}

	s.bus.Broadcast(ctx, ownerID, *ev)
	return folder, nil
}

// Get returns the folder when it exists and belongs to ownerID. A foreign
// folder is reported exactly like a missing one.
func (s *Service) Get(ctx context.Context, ownerID, folderID string) (*domain.Folder, error) {
	return s.Owned(ctx, s.sess.Collections(), ownerID, folderID)
}

// Owned is Get against an explicit handle, so a unit of work can check
// ownership inside its own transaction.
func (s *Service) Owned(ctx context.Context, c store.Collections, ownerID, folderID string) (*domain.Folder, error) {
	id, err := domain.ParseID(folderID)
	if err != nil {
		return nil, err
	}

	folder, err := c.Folders.FindOne(ctx, id, ownerID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrFolderNotFound
	}
	if err != nil {
		s.log.Error(ErrGetFolder.Error(), "error", err, "owner_id", ownerID, "folder_id", folderID)
		return nil, fmt.Errorf("%w: %w", ErrGetFolder, err)
	}
	return folder, nil
}

// List returns the owner's folders, oldest first.
func (s *Service) List(ctx context.Context, ownerID string, page listing.Page) (*ListFoldersResponse, error) {
	page, err := page.Normalize()
	if err != nil {
		return nil, err
	}

	list, err := s.sess.Collections().Folders.Find(ctx, ownerID, page.FindOptions())
	if err != nil {
		s.log.Error(ErrListFolders.Error(), "error", err, "owner_id", ownerID)
		return nil, fmt.Errorf("%w: %w", ErrListFolders, err)
	}
	if list == nil {
		list = []*domain.Folder{}
	}

	return &ListFoldersResponse{Folders: list, Limit: page.Limit, Offset: page.Offset}, nil
}

// Update applies the submitted fields and refreshes last_updated_at.
// FOLDER_UPDATED is recorded only when the store reports a change. A nil
// folder with a nil error means nothing owned by ownerID matched.
func (s *Service) Update(ctx context.Context, ownerID, folderID string, req UpdateFolderRequest) (*domain.Folder, error) {
	id, err := domain.ParseID(folderID)
	if err != nil {
		return nil, err
	}
	patch := req.patch()

	var (
		updated *domain.Folder
		ev      *domain.Event
	)
	err = s.sess.RunInTransaction(ctx, func(ctx context.Context, tx store.Collections) error {
		modified, err := tx.Folders.UpdateOne(ctx, id, ownerID, patch, s.now())
		if err != nil {
			return err
		}
		if modified > 0 {
			ev, err = s.events.Append(ctx, tx.Events, id.Hex(), domain.FolderUpdated, patch.Payload())
			if err != nil {
				return err
			}
		}

		updated, err = tx.Folders.FindOne(ctx, id, ownerID)
		if errors.Is(err, store.ErrNotFound) {
			updated = nil
			return nil
		}
		return err
	})
	if err != nil {
		s.log.Error(ErrUpdateFolder.Error(), "error", err, "owner_id", ownerID, "folder_id", folderID)
		return nil, fmt.Errorf("%w: %w", ErrUpdateFolder, err)
	}

	if updated == nil {
		s.log.Info("folder not found for update", "owner_id", ownerID, "folder_id", folderID)
		return nil, nil
	}
	if ev != nil {
		s.bus.Broadcast(ctx, ownerID, *ev)
	}
	return updated, nil
}

// Delete removes the folder and records FOLDER_DELETED when something was
// removed. Deleting a missing or foreign folder is not an error.
func (s *Service) Delete(ctx context.Context, ownerID, folderID string) (bool, error) {
	id, err := domain.ParseID(folderID)
	if err != nil {
		return false, err
	}

	var ev *domain.Event
	err = s.sess.RunInTransaction(ctx, func(ctx context.Context, tx store.Collections) error {
		deleted, err := tx.Folders.DeleteOne(ctx, id, ownerID)
		if err != nil || deleted == 0 {
			return err
		}
		ev, err = s.events.Append(ctx, tx.Events, id.Hex(), domain.FolderDeleted, domain.Payload{})
		return err
	})
	if err != nil {
		s.log.Error(ErrDeleteFolder.Error(), "error", err, "owner_id", ownerID, "folder_id", folderID)
		return false, fmt.Errorf("%w: %w", ErrDeleteFolder, err)
	}

	if ev == nil {
		s.log.Info("folder not found for delete", "owner_id", ownerID, "folder_id", folderID)
		return false, nil
	}
	s.bus.Broadcast(ctx, ownerID, *ev)
	return true, nil
}
