package library

import (
	"errors"
	"fmt"
)

var (
	// ErrCorruptIndex is matched by errors returned from Load when the index
	// file exists but could not be decoded.
	ErrCorruptIndex = errors.New("library index is corrupt")

	// ErrDuplicateID is returned when adding an entry whose id is already indexed.
	ErrDuplicateID = errors.New("photo id already in library")

	// ErrInvalidEntry is returned when adding an entry without an id.
	ErrInvalidEntry = errors.New("invalid photo entry")

	// ErrLibraryLocked is returned by Lock when another process holds the library.
	ErrLibraryLocked = errors.New("library is locked by another process")
)

// CorruptIndexError describes an unreadable index that was moved aside.
// The store continues with an empty collection.
type CorruptIndexError struct {
	Path       string
	BackupPath string // empty if the backup rename failed
	Err        error
}

func (e *CorruptIndexError) Error() string {
	if e.BackupPath == "" {
		return fmt.Sprintf("library index %s is corrupt (%v); starting empty", e.Path, e.Err)
	}
	return fmt.Sprintf("library index %s is corrupt (%v); moved to %s, starting empty", e.Path, e.Err, e.BackupPath)
}

func (e *CorruptIndexError) Unwrap() []error {
	return []error{ErrCorruptIndex, e.Err}
}

// PersistError reports a failed index write. The in-memory library is left
// exactly as it was before the operation, so the caller may retry.
type PersistError struct {
	Op  string
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("%s: persist library index: %v", e.Op, e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}
