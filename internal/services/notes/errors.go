package notes

import "errors"

// ErrNoteNotFound is returned for a missing note or one outside the given folder.
var ErrNoteNotFound = errors.New("note not found")

// ErrCreateNote is returned when note creation fails.
var ErrCreateNote = errors.New("failed to create note")

// ErrGetNote is returned when a note lookup fails.
var ErrGetNote = errors.New("failed to get note")

// ErrListNotes is returned when notes listing fails.
var ErrListNotes = errors.New("failed to list notes")

// ErrUpdateNote is returned when note update fails.
var ErrUpdateNote = errors.New("failed to update note")

// ErrDeleteNote is returned when note deletion fails.
var ErrDeleteNote = errors.New("failed to delete note")
