package attachments

import (
	"context"
	"errors"
	"io"
	"strconv"

	"note-ledger/cmd/server/handlers/handlerutil"
	"note-ledger/cmd/server/handlers/httperr"
	"note-ledger/internal/logger"
	"note-ledger/internal/services/attachments"
	"note-ledger/internal/services/folders"
	"note-ledger/internal/services/notes"

	"github.com/gofiber/fiber/v2"
)

// Service defines the interface for the attachments service
type Service interface {
	Upload(ctx context.Context, ownerID, folderID, noteID, name, contentType string, size int64, body io.Reader) (*attachments.UploadResponse, error)
	Open(ctx context.Context, ownerID, fileID string) (*attachments.File, io.ReadCloser, error)
}

var notFound = []error{folders.ErrFolderNotFound, notes.ErrNoteNotFound, attachments.ErrAttachmentNotFound}

// Handlers contains the attachments HTTP handlers
type Handlers struct {
	service Service
}

// NewHandlers creates new attachments handlers
func NewHandlers(service Service) *Handlers {
	return &Handlers{service: service}
}

// Upload stores a multipart file against a note
// @Summary Upload an attachment
// @Tags attachments
// @Accept multipart/form-data
// @Produce json
// @Security Bearer
// @Param folderId path string true "Folder ID"
// @Param noteId path string true "Note ID"
// @Param file formData file true "File to attach"
// @Success 201 {object} attachments.UploadResponse
// @Failure 400 {object} httperr.E
// @Failure 404 {object} httperr.E
// @Failure 413 {object} httperr.E
// @Router /folders/{folderId}/notes/{noteId}/attachments [post]
func (h *Handlers) Upload(c *fiber.Ctx) error {
	userID, err := handlerutil.GetUserID(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile("file")
	if err != nil {
		logger.L().Warn("missing multipart file", "handler", "UploadAttachment", "userID", userID, "error", err)
		return httperr.Fail(httperr.E{Status: fiber.StatusBadRequest, Message: "Missing file"})
	}
	body, err := fh.Open()
	if err != nil {
		return handlerutil.HandleServiceError(err, "UploadAttachment", userID)
	}
	defer body.Close()

	resp, err := h.service.Upload(c.UserContext(), userID, c.Params("folderId"), c.Params("noteId"),
		fh.Filename, fh.Header.Get(fiber.HeaderContentType), fh.Size, body)
	switch {
	case errors.Is(err, attachments.ErrEmptyFile):
		return httperr.InvalidInput(err)
	case errors.Is(err, attachments.ErrTooLarge):
		return httperr.Fail(httperr.ErrPayloadTooLarge)
	case err != nil:
		return handlerutil.HandleServiceError(err, "UploadAttachment", userID, notFound...)
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Download streams an attachment owned by the caller
// @Summary Download an attachment
// @Tags attachments
// @Produce octet-stream
// @Security Bearer
// @Param fileId path string true "File ID"
// @Success 200 {file} file
// @Failure 404 {object} httperr.E
// @Failure 501 {object} httperr.E
// @Router /attachments/{fileId} [get]
func (h *Handlers) Download(c *fiber.Ctx) error {
	userID, err := handlerutil.GetUserID(c)
	if err != nil {
		return err
	}

	f, rc, err := h.service.Open(c.UserContext(), userID, c.Params("fileId"))
	if errors.Is(err, attachments.ErrDownloadUnsupported) {
		return httperr.Fail(httperr.ErrNotImplemented)
	}
	if err != nil {
		return handlerutil.HandleServiceError(err, "DownloadAttachment", userID, notFound...)
	}

	contentType := f.ContentType
	if contentType == "" {
		contentType = fiber.MIMEOctetStream
	}
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, "attachment; filename="+strconv.Quote(f.Name))
	// fasthttp closes rc once the body has been written
	return c.SendStream(rc, int(f.Size))
}
