// Package storage persists configuration snapshots under string keys, the
// way the browser-resident editor used local key-value storage. Storage is
// treated as unreliable: callers log and swallow failures, and a failed
// persist never rolls back in-memory state.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// ErrNotFound reports a missing key.
var ErrNotFound = errors.New("storage: key not found")

// Store is the key-value persistence surface.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// FileStore keeps one file per key under a base directory. Backed by afero
// so tests run on an in-memory filesystem.
type FileStore struct {
	fs  afero.Fs
	dir string
}

// NewFileStore creates the base directory if needed.
func NewFileStore(fs afero.Fs, dir string) (*FileStore, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage dir %q: %w", dir, err)
	}
	return &FileStore{fs: fs, dir: dir}, nil
}

// NewMemStore returns a FileStore on an in-memory filesystem.
func NewMemStore() *FileStore {
	fs := afero.NewMemMapFs()
	store, err := NewFileStore(fs, "searchpro")
	if err != nil {
		// MemMapFs MkdirAll cannot fail on a fresh filesystem.
		panic(err)
	}
	return store
}

func (s *FileStore) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, "/\\") || strings.Contains(key, "..") {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}

func (s *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}
	data, err := afero.ReadFile(s.fs, p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read %q: %w", key, err)
	}
	return data, nil
}

func (s *FileStore) Set(_ context.Context, key string, value []byte) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := afero.WriteFile(s.fs, p, value, 0o644); err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	return nil
}

func (s *FileStore) Delete(_ context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := s.fs.Remove(p); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	return nil
}
