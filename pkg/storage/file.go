package storage

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"github.com/glorpus-work/storysync/pkg/errors"
	"github.com/glorpus-work/storysync/pkg/fsutil"
)

// FileStore is a file-backed Adapter. Each key maps to one file under the
// store directory; writes go through a temp file and an atomic rename so a
// value is either fully written or absent.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore creates a file-backed store rooted at dir. The directory must
// be an absolute path; it is created if missing.
func NewFileStore(dir string) (*FileStore, error) {
	cleanDir := filepath.Clean(dir)
	if !filepath.IsAbs(cleanDir) {
		return nil, fmt.Errorf("store directory must be absolute: %s: %w", dir, errors.ErrInvalidPath)
	}
	if err := os.MkdirAll(cleanDir, fsutil.DirModeSecure); err != nil {
		return nil, errors.Wrapf(err, "failed to create store directory %s", cleanDir)
	}
	return &FileStore{dir: cleanDir}, nil
}

// Get returns the stored value for key, if present.
func (s *FileStore) Get(key string) (string, bool, error) {
	data, err := os.ReadFile(s.keyPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, errors.Wrapf(err, "failed to read key %s", key)
	}
	return string(data), true, nil
}

// Set stores value under key atomically.
func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, "kv-*.tmp")
	if err != nil {
		return errors.Wrap(err, "failed to create temporary file")
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmp.WriteString(value); err != nil {
		_ = tmp.Close()
		return errors.Wrapf(err, "failed to write key %s", key)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return errors.Wrapf(err, "failed to sync key %s", key)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "failed to close temporary file for key %s", key)
	}

	if err := os.Rename(tmpPath, s.keyPath(key)); err != nil {
		return errors.Wrapf(err, "failed to commit key %s", key)
	}
	return nil
}

// Remove deletes key. Absent keys are treated as already removed.
func (s *FileStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.keyPath(key)); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "failed to remove key %s", key)
	}
	return nil
}

// keyPath maps a key to its backing file. Keys may contain path separators
// (repository keys are "owner/language/id"), so they are percent-encoded into
// a flat filename.
func (s *FileStore) keyPath(key string) string {
	return filepath.Join(s.dir, url.PathEscape(key))
}
