package prefs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileSlot stores one slot as <dir>/<name>.json.
type FileSlot struct {
	path string
}

// NewFileSlot creates dir if needed and returns the slot named name inside it.
func NewFileSlot(dir, name string) (*FileSlot, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create preferences dir: %w", err)
	}
	return &FileSlot{path: filepath.Join(dir, name+".json")}, nil
}

// Path returns the file backing the slot.
func (s *FileSlot) Path() string {
	return s.path
}

// Load returns the slot contents, or nil when the file does not exist yet.
func (s *FileSlot) Load(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read preferences: %w", err)
	}
	return data, nil
}

// Save writes data to a temporary file and renames it over the slot, so a
// crash mid-write never leaves a truncated file behind.
func (s *FileSlot) Save(_ context.Context, data []byte) error {
	tempPath := s.path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0o644); err != nil {
		return fmt.Errorf("write temporary preferences: %w", err)
	}
	if err := os.Rename(tempPath, s.path); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}
