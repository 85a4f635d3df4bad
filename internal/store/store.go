// Package store persists the address book to a single file.
// The on-disk format is a versioned JSON document holding the full record
// list; indexes are never persisted — the book rebuilds them on restore.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dkovalov/addressbook/internal/domain"
)

// formatVersion is bumped when the document schema changes incompatibly.
const formatVersion = 1

// document is the envelope written to disk.
type document struct {
	Version int             `json:"version"`
	Records []domain.Record `json:"records"`
}

// Store is the persistence boundary the service layer depends on.
type Store interface {
	// Save writes the full record list durably, replacing any previous state.
	Save(records []domain.Record) error

	// Load reads the record list back. Returns ErrNotFound when nothing has
	// been saved yet and ErrCorruptData when the stored document is
	// unreadable.
	Load() ([]domain.Record, error)
}

// FileStore implements Store on a single JSON file.
// Save is atomic with respect to a process crash: the document is written to
// a temporary file in the same directory and renamed over the target, so the
// active file is never left partially written.
type FileStore struct {
	path string
}

// NewFileStore returns a FileStore persisting to the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the location this store reads and writes.
func (s *FileStore) Path() string { return s.path }

// Save marshals the records and atomically replaces the file at the store's
// path. On any failure the previous file is left untouched and the temporary
// file is removed; I/O errors wrap ErrIO.
func (s *FileStore) Save(records []domain.Record) error {
	if records == nil {
		records = []domain.Record{}
	}
	data, err := json.MarshalIndent(document{Version: formatVersion, Records: records}, "", "  ")
	if err != nil {
		return fmt.Errorf("store.FileStore.Save: marshal: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".addressbook-*.json")
	if err != nil {
		return fmt.Errorf("store.FileStore.Save: %w: %v", domain.ErrIO, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("store.FileStore.Save: %w: %v", domain.ErrIO, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("store.FileStore.Save: %w: %v", domain.ErrIO, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("store.FileStore.Save: %w: %v", domain.ErrIO, err)
	}
	return nil
}

// Load reads and decodes the file at the store's path.
// A missing file reports ErrNotFound so the caller can decide to start
// empty; a file that cannot be decoded or carries an unknown format version
// reports ErrCorruptData. Schema-level validation of the decoded records is
// the book's job (see book.Restore).
func (s *FileStore) Load() ([]domain.Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("store.FileStore.Load: %w: %s", domain.ErrNotFound, s.path)
		}
		return nil, fmt.Errorf("store.FileStore.Load: %w: %v", domain.ErrIO, err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("store.FileStore.Load: %w: %v", domain.ErrCorruptData, err)
	}
	if doc.Version != formatVersion {
		return nil, fmt.Errorf("store.FileStore.Load: %w: unsupported format version %d", domain.ErrCorruptData, doc.Version)
	}
	return doc.Records, nil
}
