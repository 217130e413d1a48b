// Package attachments stores files uploaded against a note.
package attachments

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"note-ledger/internal/domain"
)

// Sink persists an uploaded object and returns the URL it can be fetched from.
type Sink interface {
	Put(ctx context.Context, obj Object) (string, error)
}

// Source reads back attachments owned by ownerID.
type Source interface {
	Open(ctx context.Context, ownerID, fileID string) (*File, io.ReadCloser, error)
}

// NoteFinder resolves a note through an owned folder.
type NoteFinder interface {
	Get(ctx context.Context, ownerID, folderID, noteID string) (*domain.Note, error)
}

// Service checks note ownership before handing uploads to the sink.
type Service struct {
	notes    NoteFinder
	sink     Sink
	source   Source
	maxBytes int64
	log      *slog.Logger
}

// NewService creates a new attachments service. source may be nil when the
// sink's URLs are served elsewhere.
func NewService(notes NoteFinder, sink Sink, source Source, maxBytes int64, log *slog.Logger) *Service {
	return &Service{
		notes:    notes,
		sink:     sink,
		source:   source,
		maxBytes: maxBytes,
		log:      log,
	}
}

// Upload stores body for a note the caller can reach. size is the length
// the client announced; the body is still capped at the configured maximum.
func (s *Service) Upload(ctx context.Context, ownerID, folderID, noteID, name, contentType string, size int64, body io.Reader) (*UploadResponse, error) {
	if size == 0 {
		return nil, ErrEmptyFile
	}
	if s.maxBytes > 0 && size > s.maxBytes {
		return nil, ErrTooLarge
	}
	if _, err := s.notes.Get(ctx, ownerID, folderID, noteID); err != nil {
		return nil, err
	}

	if s.maxBytes > 0 {
		body = &cappedReader{r: body, left: s.maxBytes}
	}
	url, err := s.sink.Put(ctx, Object{
		OwnerID:     ownerID,
		FolderID:    folderID,
		NoteID:      noteID,
		Name:        name,
		ContentType: contentType,
		Body:        body,
	})
	if errors.Is(err, ErrTooLarge) {
		return nil, err
	}
	if err != nil {
		s.log.Error(ErrUpload.Error(), "error", err, "owner_id", ownerID, "note_id", noteID)
		return nil, fmt.Errorf("%w: %w", ErrUpload, err)
	}

	s.log.Info("attachment stored", "owner_id", ownerID, "note_id", noteID, "url", url)
	return &UploadResponse{URL: url}, nil
}

// Open returns an attachment owned by ownerID. The caller closes the reader.
func (s *Service) Open(ctx context.Context, ownerID, fileID string) (*File, io.ReadCloser, error) {
	if s.source == nil {
		return nil, nil, ErrDownloadUnsupported
	}
	f, rc, err := s.source.Open(ctx, ownerID, fileID)
	if errors.Is(err, ErrAttachmentNotFound) || errors.Is(err, domain.ErrInvalidID) {
		return nil, nil, err
	}
	if err != nil {
		s.log.Error(ErrOpen.Error(), "error", err, "owner_id", ownerID, "file_id", fileID)
		return nil, nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}
	return f, rc, nil
}

// cappedReader fails with ErrTooLarge once more than left bytes are read.
type cappedReader struct {
	r    io.Reader
	left int64
}

func (c *cappedReader) Read(p []byte) (int, error) {
	if c.left < 0 {
		return 0, ErrTooLarge
	}
	if int64(len(p)) > c.left+1 {
		p = p[:c.left+1]
	}
	n, err := c.r.Read(p)
	c.left -= int64(n)
	if c.left < 0 {
		return n, ErrTooLarge
	}
	return n, err
}
