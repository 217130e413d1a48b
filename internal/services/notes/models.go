package notes

import (
	"note-ledger/internal/domain"
	"note-ledger/internal/utils/sanitize"
)

// CreateNoteRequest represents a note creation request
type CreateNoteRequest struct {
	Title   string  `json:"title" validate:"required,notblank,max=200" example:"Packing list"`
	Content *string `json:"content,omitempty" validate:"omitempty,max=100000" example:"Passport, charger, sunscreen"`
}

// UpdateNoteRequest represents a note update request.
// Omitted fields are left unchanged.
type UpdateNoteRequest struct {
	Title   *string `json:"title,omitempty" validate:"omitempty,notblank,max=200" example:"Packing list v2"`
	Content *string `json:"content,omitempty" validate:"omitempty,max=100000" example:"Passport, charger"`
}

func (r UpdateNoteRequest) patch() domain.NotePatch {
	var p domain.NotePatch
	if r.Title != nil {
		clean := sanitize.Clean(*r.Title)
		p.Title = &clean
	}
	if r.Content != nil {
		clean := sanitize.Clean(*r.Content)
		p.Content = &clean
	}
	return p
}

// ListNotesResponse represents a page of notes
type ListNotesResponse struct {
	Notes  []*domain.Note `json:"notes"`
	Limit  int            `json:"limit" example:"20"`
	Offset int            `json:"offset" example:"0"`
}
