package docstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

const defaultFileName = "document.json"

// File stores the document as a single file under a data directory.
type File struct {
	path string
}

// NewFile ensures the data directory exists and returns a file backend.
func NewFile(dataDir string) (*File, error) {
	if dataDir == "" {
		dataDir = "./data"
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &File{path: filepath.Join(dataDir, defaultFileName)}, nil
}

// Path returns the absolute location of the document file.
func (f *File) Path() string {
	return f.path
}

func (f *File) Load(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoDocument
		}
		return nil, fmt.Errorf("read document: %w", err)
	}
	return data, nil
}

func (f *File) Save(ctx context.Context, data []byte) error {
	// Write-then-rename so a crash mid-write never leaves a torn document.
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replace document: %w", err)
	}
	return nil
}

func (f *File) Delete(ctx context.Context) error {
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}
