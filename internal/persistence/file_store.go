package persistence

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore keeps each collection in <dir>/<collection>.json.
type FileStore struct {
	dir string

	mu    sync.Mutex
	locks map[string]*sync.RWMutex
}

// NewFileStore ensures the data directory exists and returns a handle.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		dir = "./data"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &FileStore{dir: dir, locks: make(map[string]*sync.RWMutex)}, nil
}

// Dir returns the data directory.
func (s *FileStore) Dir() string {
	return s.dir
}

func (s *FileStore) lockFor(collection string) *sync.RWMutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[collection]
	if !ok {
		l = &sync.RWMutex{}
		s.locks[collection] = l
	}
	return l
}

func (s *FileStore) path(collection string) string {
	return filepath.Join(s.dir, collection+".json")
}

// Load returns the collection document. A collection that was never written
// reads as an empty array; any other read failure is returned.
func (s *FileStore) Load(ctx context.Context, collection string) ([]byte, error) {
	if err := checkName(collection); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l := s.lockFor(collection)
	l.RLock()
	defer l.RUnlock()
	return s.read(collection)
}

// Update rewrites the collection with the document returned by fn.
func (s *FileStore) Update(ctx context.Context, collection string, fn UpdateFunc) error {
	if err := checkName(collection); err != nil {
		return err
	}
	l := s.lockFor(collection)
	l.Lock()
	defer l.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	current, err := s.read(collection)
	if err != nil {
		return err
	}
	next, err := fn(current)
	if err != nil {
		return err
	}
	return s.write(collection, next)
}

// Ping verifies the data directory is reachable.
func (s *FileStore) Ping(_ context.Context) error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", s.dir)
	}
	return nil
}

func (s *FileStore) read(collection string) ([]byte, error) {
	data, err := os.ReadFile(s.path(collection))
	if errors.Is(err, os.ErrNotExist) {
		return emptyCollection, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", collection, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return emptyCollection, nil
	}
	return data, nil
}

// write replaces the collection file atomically: temp file in the same
// directory, fsync, rename.
func (s *FileStore) write(collection string, data []byte) error {
	tmp, err := os.CreateTemp(s.dir, collection+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", collection, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write %s: %w", collection, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("sync %s: %w", collection, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close %s: %w", collection, err)
	}
	if err := os.Rename(tmpPath, s.path(collection)); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename %s into place: %w", collection, err)
	}
	return nil
}
