package cart

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// FileStore persists the guest cart as a single JSON document on disk,
// the equivalent of the web storefront's localStorage slot. It holds a
// plain array of {product, quantity} objects.
//
// Load is best-effort: missing or corrupt data yields an empty cart,
// never an error. Save replaces the whole snapshot.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load() Cart {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Cart{}
	}
	var lines []Line
	if err := json.Unmarshal(data, &lines); err != nil {
		return Cart{}
	}
	return Cart{Lines: lines}
}

func (s *FileStore) Save(c Cart) error {
	lines := c.Lines
	if lines == nil {
		lines = []Line{}
	}
	data, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	// Write-then-rename so a crash mid-write never leaves a corrupt slot.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
