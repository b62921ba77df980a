package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Slot keys for the three persisted collections.
const (
	SlotFolders   = "folders"
	SlotBookmarks = "bookmarks"
	SlotTags      = "tags"
)

// Store is the durable slot boundary. Each key names an independent slot
// holding one serialized blob; every write replaces the slot wholesale.
type Store interface {
	// Read returns the slot contents, or ok=false if the slot is absent.
	Read(key string) (data []byte, ok bool, err error)
	// Write replaces the slot contents.
	Write(key string, data []byte) error
}

// Error reports a durable read or write failure. The in-memory state is
// never rolled back on storage failure; callers keep operating and retry
// persistence on the next mutation.
type Error struct {
	Op  string // "read" or "write"
	Key string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// FileStore implements Store with one JSON file per slot.
type FileStore struct {
	dir string
}

// NewFileStore creates a FileStore rooted at the given directory.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Dir returns the storage directory.
func (s *FileStore) Dir() string {
	return s.dir
}

func (s *FileStore) slotPath(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Read reads the slot file. A missing file is absence, not an error.
func (s *FileStore) Read(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(s.slotPath(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, &Error{Op: "read", Key: key, Err: err}
	}
	return data, true, nil
}

// Write replaces the slot file. Creates the directory if it doesn't exist.
func (s *FileStore) Write(key string, data []byte) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return &Error{Op: "write", Key: key, Err: err}
	}
	if err := os.WriteFile(s.slotPath(key), data, 0644); err != nil {
		return &Error{Op: "write", Key: key, Err: err}
	}
	return nil
}

// DefaultDataDir returns the default data directory: ~/.config/stash
func DefaultDataDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "stash"), nil
}

// OpenStore opens the appropriate storage backend.
// Prefers SQLite if the database file exists, otherwise falls back to
// per-slot JSON files.
func OpenStore() (Store, error) {
	sqlitePath, err := DefaultSQLitePath()
	if err != nil {
		return nil, err
	}

	// If SQLite database exists, use it
	if _, err := os.Stat(sqlitePath); err == nil {
		return NewSQLiteStore(sqlitePath)
	}

	// Fall back to JSON files
	dir, err := DefaultDataDir()
	if err != nil {
		return nil, err
	}
	return NewFileStore(dir), nil
}
