package snapshot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/starford/ansuz/internal/apperr"
)

// FS implements Provider with one JSON file per key inside a directory.
type FS struct {
	root string // absolute path to the snapshot directory
}

// NewFS creates a new FS provider rooted at the given directory.
// The directory must already exist.
func NewFS(root string) (*FS, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("snapshot: resolve root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("snapshot: stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("snapshot: root is not a directory: %s", abs)
	}
	return &FS{root: abs}, nil
}

// Path returns the file that holds key.
func (f *FS) Path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") {
		return "", fmt.Errorf("snapshot: invalid key: %q", key)
	}
	return filepath.Join(f.root, key+".json"), nil
}

// Dir returns the snapshot directory.
func (f *FS) Dir() string { return f.root }

// Load reads the blob for key.
func (f *FS) Load(key string) ([]byte, error) {
	p, err := f.Path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("snapshot: load %s: %w", key, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("snapshot: load %s: %w", key, err)
	}
	return data, nil
}

// Save atomically writes blob: tmp file → fsync → rename.
func (f *FS) Save(key string, blob []byte) error {
	p, err := f.Path(key)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(f.root, ".ansuz-tmp-*")
	if err != nil {
		return fmt.Errorf("snapshot: create temp: %w", err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(blob); err != nil {
		return fmt.Errorf("snapshot: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("snapshot: fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("snapshot: close temp: %w", err)
	}
	if err := os.Rename(tmpName, p); err != nil {
		return fmt.Errorf("snapshot: rename: %w", err)
	}
	success = true
	return nil
}

// Close is a no-op for the file backend.
func (f *FS) Close() error { return nil }
