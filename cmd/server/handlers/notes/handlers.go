package notes

import (
	"context"

	"note-ledger/cmd/server/handlers/handlerutil"
	"note-ledger/internal/domain"
	"note-ledger/internal/services/folders"
	"note-ledger/internal/services/listing"
	"note-ledger/internal/services/notes"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Service defines the interface for notes service
type Service interface {
	Create(ctx context.Context, ownerID, folderID string, req notes.CreateNoteRequest) (*domain.Note, error)
	Get(ctx context.Context, ownerID, folderID, noteID string) (*domain.Note, error)
	List(ctx context.Context, ownerID, folderID string, page listing.Page) (*notes.ListNotesResponse, error)
	Update(ctx context.Context, ownerID, folderID, noteID string, req notes.UpdateNoteRequest) (*domain.Note, error)
	Delete(ctx context.Context, ownerID, folderID, noteID string) (bool, error)
}

// notFound lists the errors answered with 404. A note in a folder the caller
// does not own reads the same as a missing folder.
var notFound = []error{folders.ErrFolderNotFound, notes.ErrNoteNotFound}

// Handlers contains the notes HTTP handlers
type Handlers struct {
	service   Service
	validator *validator.Validate
}

// NewHandlers creates new notes handlers
func NewHandlers(service Service, validator *validator.Validate) *Handlers {
	return &Handlers{
		service:   service,
		validator: validator,
	}
}

// Create handles note creation
// @Summary Create a note in a folder
// @Tags notes
// @Accept json
// @Produce json
// @Security Bearer
// @Param folderId path string true "Folder ID"
// @Param request body notes.CreateNoteRequest true "Create note request"
// @Success 201 {object} domain.Note
// @Failure 400 {object} httperr.E
// @Failure 404 {object} httperr.E
// @Router /folders/{folderId}/notes [post]
func (h *Handlers) Create(c *fiber.Ctx) error {
	userID, err := handlerutil.GetUserID(c)
	if err != nil {
		return err
	}

	var req notes.CreateNoteRequest
	if err := handlerutil.ParseAndValidateBody(c, &req, h.validator, "CreateNote"); err != nil {
		return err
	}

	note, err := h.service.Create(c.UserContext(), userID, c.Params("folderId"), req)
	if err != nil {
		return handlerutil.HandleServiceError(err, "CreateNote", userID, notFound...)
	}

	return c.Status(fiber.StatusCreated).JSON(note)
}

// List handles notes listing, least recently updated first
// @Summary List notes of a folder
// @Tags notes
// @Produce json
// @Security Bearer
// @Param folderId path string true "Folder ID"
// @Param limit query int false "Limit (default: 20, max: 100)" minimum(1) maximum(100)
// @Param offset query int false "Offset (0-50,000)" minimum(0) maximum(50000)
// @Success 200 {object} notes.ListNotesResponse
// @Failure 400 {object} httperr.E
// @Failure 404 {object} httperr.E
// @Router /folders/{folderId}/notes [get]
func (h *Handlers) List(c *fiber.Ctx) error {
	userID, err := handlerutil.GetUserID(c)
	if err != nil {
		return err
	}

	var q listing.Query
	if err := handlerutil.ParseAndValidateQuery(c, &q, h.validator, "ListNotes"); err != nil {
		return err
	}

	resp, err := h.service.List(c.UserContext(), userID, c.Params("folderId"), q.Page())
	if err != nil {
		return handlerutil.HandleServiceError(err, "ListNotes", userID, notFound...)
	}

	return c.JSON(resp)
}

// Get returns one note
// @Summary Get a note
// @Tags notes
// @Produce json
// @Security Bearer
// @Param folderId path string true "Folder ID"
// @Param noteId path string true "Note ID"
// @Success 200 {object} domain.Note
// @Failure 400 {object} httperr.E
// @Failure 404 {object} httperr.E
// @Router /folders/{folderId}/notes/{noteId} [get]
func (h *Handlers) Get(c *fiber.Ctx) error {
	userID, err := handlerutil.GetUserID(c)
	if err != nil {
		return err
	}

	note, err := h.service.Get(c.UserContext(), userID, c.Params("folderId"), c.Params("noteId"))
	if err != nil {
		return handlerutil.HandleServiceError(err, "GetNote", userID, notFound...)
	}

	return c.JSON(note)
}

// Update handles note updates. Omitted fields are kept.
// @Summary Update a note
// @Tags notes
// @Accept json
// @Produce json
// @Security Bearer
// @Param folderId path string true "Folder ID"
// @Param noteId path string true "Note ID"
// @Param request body notes.UpdateNoteRequest true "Update note request"
// @Success 200 {object} domain.Note
// @Failure 400 {object} httperr.E
// @Failure 404 {object} httperr.E
// @Router /folders/{folderId}/notes/{noteId} [put]
func (h *Handlers) Update(c *fiber.Ctx) error {
	userID, err := handlerutil.GetUserID(c)
	if err != nil {
		return err
	}

	var req notes.UpdateNoteRequest
	if err := handlerutil.ParseAndValidateBody(c, &req, h.validator, "UpdateNote"); err != nil {
		return err
	}

	note, err := h.service.Update(c.UserContext(), userID, c.Params("folderId"), c.Params("noteId"), req)
	if err != nil {
		return handlerutil.HandleServiceError(err, "UpdateNote", userID, notFound...)
	}
	if note == nil {
		return handlerutil.HandleServiceError(notes.ErrNoteNotFound, "UpdateNote", userID, notFound...)
	}

	return c.JSON(note)
}

// Delete handles note deletion. A missing note in an owned folder answers 204.
// @Summary Delete a note
// @Tags notes
// @Security Bearer
// @Param folderId path string true "Folder ID"
// @Param noteId path string true "Note ID"
// @Success 204
// @Failure 400 {object} httperr.E
// @Failure 404 {object} httperr.E
// @Router /folders/{folderId}/notes/{noteId} [delete]
func (h *Handlers) Delete(c *fiber.Ctx) error {
	userID, err := handlerutil.GetUserID(c)
	if err != nil {
		return err
	}

	if _, err := h.service.Delete(c.UserContext(), userID, c.Params("folderId"), c.Params("noteId")); err != nil {
		return handlerutil.HandleServiceError(err, "DeleteNote", userID, notFound...)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
