package folders

import (
	"context"

	"note-ledger/cmd/server/handlers/handlerutil"
	"note-ledger/internal/domain"
	"note-ledger/internal/services/folders"
	"note-ledger/internal/services/listing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Service defines the interface for folders service
type Service interface {
	Create(ctx context.Context, ownerID string, req folders.CreateFolderRequest) (*domain.Folder, error)
	Get(ctx context.Context, ownerID, folderID string) (*domain.Folder, error)
	List(ctx context.Context, ownerID string, page listing.Page) (*folders.ListFoldersResponse, error)
	Update(ctx context.Context, ownerID, folderID string, req folders.UpdateFolderRequest) (*domain.Folder, error)
	Delete(ctx context.Context, ownerID, folderID string) (bool, error)
}

// Handlers contains the folders HTTP handlers
type Handlers struct {
	service   Service
	validator *validator.Validate
}

// NewHandlers creates new folders handlers
func NewHandlers(service Service, validator *validator.Validate) *Handlers {
	return &Handlers{
		service:   service,
		validator: validator,
	}
}

// Create handles folder creation
// @Summary Create a folder
// @Tags folders
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body folders.CreateFolderRequest true "Create folder request"
// @Success 201 {object} domain.Folder
// @Failure 400 {object} httperr.E
// @Failure 401 {object} httperr.E
// @Router /folders [post]
func (h *Handlers) Create(c *fiber.Ctx) error {
	userID, err := handlerutil.GetUserID(c)
	if err != nil {
		return err
	}

	var req folders.CreateFolderRequest
	if err := handlerutil.ParseAndValidateBody(c, &req, h.validator, "CreateFolder"); err != nil {
		return err
	}

	folder, err := h.service.Create(c.UserContext(), userID, req)
	if err != nil {
		return handlerutil.HandleServiceError(err, "CreateFolder", userID)
	}

	return c.Status(fiber.StatusCreated).JSON(folder)
}

// List handles folders listing, oldest first
// @Summary List folders
// @Tags folders
// @Produce json
// @Security Bearer
// @Param limit query int false "Limit (default: 20, max: 100)" minimum(1) maximum(100)
// @Param offset query int false "Offset (0-50,000)" minimum(0) maximum(50000)
// @Success 200 {object} folders.ListFoldersResponse
// @Failure 400 {object} httperr.E
// @Failure 401 {object} httperr.E
// @Router /folders [get]
func (h *Handlers) List(c *fiber.Ctx) error {
	userID, err := handlerutil.GetUserID(c)
	if err != nil {
		return err
	}

	var q listing.Query
	if err := handlerutil.ParseAndValidateQuery(c, &q, h.validator, "ListFolders"); err != nil {
		return err
	}

	resp, err := h.service.List(c.UserContext(), userID, q.Page())
	if err != nil {
		return handlerutil.HandleServiceError(err, "ListFolders", userID)
	}

	return c.JSON(resp)
}

// Get returns one folder
// @Summary Get a folder
// @Tags folders
// @Produce json
// @Security Bearer
// @Param folderId path string true "Folder ID"
// @Success 200 {object} domain.Folder
// @Failure 400 {object} httperr.E
// @Failure 404 {object} httperr.E
// @Router /folders/{folderId} [get]
func (h *Handlers) Get(c *fiber.Ctx) error {
	userID, err := handlerutil.GetUserID(c)
	if err != nil {
		return err
	}

	folder, err := h.service.Get(c.UserContext(), userID, c.Params("folderId"))
	if err != nil {
		return handlerutil.HandleServiceError(err, "GetFolder", userID, folders.ErrFolderNotFound)
	}

	return c.JSON(folder)
}

// Update handles folder updates. Omitted fields are kept.
// @Summary Update a folder
// @Tags folders
// @Accept json
// @Produce json
// @Security Bearer
// @Param folderId path string true "Folder ID"
// @Param request body folders.UpdateFolderRequest true "Update folder request"
// @Success 200 {object} domain.Folder
// @Failure 400 {object} httperr.E
// @Failure 404 {object} httperr.E
// @Router /folders/{folderId} [put]
func (h *Handlers) Update(c *fiber.Ctx) error {
	userID, err := handlerutil.GetUserID(c)
	if err != nil {
		return err
	}

	var req folders.UpdateFolderRequest
	if err := handlerutil.ParseAndValidateBody(c, &req, h.validator, "UpdateFolder"); err != nil {
		return err
	}

	folder, err := h.service.Update(c.UserContext(), userID, c.Params("folderId"), req)
	if err != nil {
		return handlerutil.HandleServiceError(err, "UpdateFolder", userID, folders.ErrFolderNotFound)
	}
	if folder == nil {
		return handlerutil.HandleServiceError(folders.ErrFolderNotFound, "UpdateFolder", userID, folders.ErrFolderNotFound)
	}

	return c.JSON(folder)
}

// Delete handles folder deletion. Missing and foreign folders also answer 204.
// @Summary Delete a folder
// @Tags folders
// @Security Bearer
// @Param folderId path string true "Folder ID"
// @Success 204
// @Failure 400 {object} httperr.E
// @Failure 401 {object} httperr.E
// @Router /folders/{folderId} [delete]
func (h *Handlers) Delete(c *fiber.Ctx) error {
	userID, err := handlerutil.GetUserID(c)
	if err != nil {
		return err
	}

	if _, err := h.service.Delete(c.UserContext(), userID, c.Params("folderId")); err != nil {
		return handlerutil.HandleServiceError(err, "DeleteFolder", userID)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
