package attachments

import "errors"

// ErrEmptyFile is returned for an upload without content.
var ErrEmptyFile = errors.New("empty file")

// ErrTooLarge is returned when an upload exceeds the configured size.
var ErrTooLarge = errors.New("file too large")

// ErrAttachmentNotFound is returned for a missing attachment or one owned by someone else.
var ErrAttachmentNotFound = errors.New("attachment not found")

// ErrDownloadUnsupported is returned when the active backend serves files itself.
var ErrDownloadUnsupported = errors.New("attachment download not supported by this backend")

// ErrUpload is returned when storing an attachment fails.
var ErrUpload = errors.New("failed to store attachment")

// ErrOpen is returned when reading an attachment fails.
var ErrOpen = errors.New("failed to open attachment")
