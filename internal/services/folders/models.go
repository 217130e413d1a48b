package folders

import (
	"note-ledger/internal/domain"
	"note-ledger/internal/utils/sanitize"
)

// CreateFolderRequest represents a folder creation request
type CreateFolderRequest struct {
	Name string `json:"name" validate:"required,notblank,max=200" example:"Vacations 2024"`
}

// UpdateFolderRequest represents a folder update request.
// Omitted fields are left unchanged.
type UpdateFolderRequest struct {
	Name *string `json:"name,omitempty" validate:"omitempty,notblank,max=200" example:"Trips"`
}

func (r UpdateFolderRequest) patch() domain.FolderPatch {
	var p domain.FolderPatch
	if r.Name != nil {
		clean := sanitize.Clean(*r.Name)
		p.Name = &clean
	}
	return p
}

// ListFoldersResponse represents a page of folders
type ListFoldersResponse struct {
	Folders []*domain.Folder `json:"folders"`
	Limit   int              `json:"limit" example:"20"`
	Offset  int              `json:"offset" example:"0"`
}
