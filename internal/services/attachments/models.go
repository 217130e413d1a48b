package attachments

import "io"

// Object is an upload on its way to a Sink.
type Object struct {
	OwnerID     string
	FolderID    string
	NoteID      string
	Name        string
	ContentType string
	Body        io.Reader
}

// File describes a stored attachment.
type File struct {
	ID          string `json:"id" example:"683cdb8aa96ad71e8e075bd1"`
	Name        string `json:"name" example:"ticket.pdf"`
	ContentType string `json:"content_type" example:"application/pdf"`
	Size        int64  `json:"size" example:"48213"`
}

// UploadResponse is returned after a successful upload
type UploadResponse struct {
	URL string `json:"url" example:"/api/v1/attachments/683cdb8aa96ad71e8e075bd1"`
}
