package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage keeps evidence packs in a directory on disk. It is the
// default backend when no storage account is configured.
type LocalStorage struct {
	dir string
}

var _ StorageInterface = (*LocalStorage)(nil)

// NewLocalStorage creates the export directory if needed.
func NewLocalStorage(dir string) (*LocalStorage, error) {
	if dir == "" {
		return nil, fmt.Errorf("export directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}
	return &LocalStorage{dir: dir}, nil
}

// Store writes a pack to disk.
func (s *LocalStorage) Store(filename string, data []byte) error {
	path := filepath.Join(s.dir, filepath.Base(filename))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write pack %s: %w", filename, err)
	}
	return nil
}

// Retrieve reads a pack back from disk.
func (s *LocalStorage) Retrieve(filename string) ([]byte, error) {
	path := filepath.Join(s.dir, filepath.Base(filename))
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pack %s: %w", filename, err)
	}
	return data, nil
}

// List returns pack names matching the prefix.
func (s *LocalStorage) List(prefix string) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list export directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasPrefix(entry.Name(), prefix) {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// Delete removes a pack from disk.
func (s *LocalStorage) Delete(filename string) error {
	path := filepath.Join(s.dir, filepath.Base(filename))
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete pack %s: %w", filename, err)
	}
	return nil
}
