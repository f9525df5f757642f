// Package storage provides the local persistence gateway for the wizard
// document. The document is written through on every mutation and read once on
// startup to rehydrate the session.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-wizard/internal/types"
)

// StoreKey is the fixed namespace identifier for this application's persisted
// resume state. It doubles as the file name of the file-backed gateway.
const StoreKey = "cv-builder"

// ErrNotFound indicates no persisted state exists for the store key.
var ErrNotFound = errors.New("no persisted resume state")

// Gateway is the persistence contract used by the document store.
type Gateway interface {
	// Load reads the persisted document. Returns ErrNotFound when no state
	// has been written yet.
	Load() (*types.ResumeDocument, error)
	// Save writes the full document, replacing any prior state.
	Save(doc *types.ResumeDocument) error
	// Clear removes the persisted state entirely.
	Clear() error
}

// FileStore is a Gateway backed by a single JSON file.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed gateway at the given path, creating the
// parent directory if needed.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("store path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	return &FileStore{path: path}, nil
}

// DefaultPath returns the default location of the persisted state, under the
// user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user config directory: %w", err)
	}
	return filepath.Join(dir, "resume-wizard", StoreKey+".json"), nil
}

// Load reads and decodes the persisted document.
func (f *FileStore) Load() (*types.ResumeDocument, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read store file %s: %w", f.path, err)
	}

	var doc types.ResumeDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse store file %s: %w", f.path, err)
	}
	return &doc, nil
}

// Save serializes the document and writes it atomically (write to a temp file,
// then rename over the store file).
func (f *FileStore) Save(doc *types.ResumeDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize document: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write store file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("failed to replace store file: %w", err)
	}
	return nil
}

// Clear removes the persisted state. Clearing an already-empty store is not an
// error.
func (f *FileStore) Clear() error {
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear store file: %w", err)
	}
	return nil
}
