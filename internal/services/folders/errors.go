package folders

import "errors"

// ErrFolderNotFound is returned for a missing folder or one owned by someone else.
var ErrFolderNotFound = errors.New("folder not found")

// ErrCreateFolder is returned when folder creation fails.
var ErrCreateFolder = errors.New("failed to create folder")

// ErrGetFolder is returned when a folder lookup fails.
var ErrGetFolder = errors.New("failed to get folder")

// ErrListFolders is returned when folders listing fails.
var ErrListFolders = errors.New("failed to list folders")

// ErrUpdateFolder is returned when folder update fails.
var ErrUpdateFolder = errors.New("failed to update folder")

// ErrDeleteFolder is returned when folder deletion fails.
var ErrDeleteFolder = errors.New("failed to delete folder")
