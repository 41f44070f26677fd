package lint

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/yaklabco/pepfix/pkg/fsutil"
)

// Store reads and persists document content.
type Store interface {
	// Read returns the current content at path.
	Read(ctx context.Context, path string) ([]byte, error)

	// Write persists content at path.
	Write(ctx context.Context, path string, content []byte) error
}

// FileStore is a Store backed by the file system. Writes are atomic and
// preserve the file mode. A write is refused when the file changed on disk
// since it was last read through the store.
type FileStore struct {
	mu    sync.Mutex
	infos map[string]*fsutil.FileInfo
	modes map[string]os.FileMode
}

// NewFileStore creates a FileStore.
func NewFileStore() *FileStore {
	return &FileStore{
		infos: make(map[string]*fsutil.FileInfo),
		modes: make(map[string]os.FileMode),
	}
}

// Read reads the file and records its state.
func (s *FileStore) Read(ctx context.Context, path string) ([]byte, error) {
	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, categorizeError(err)
	}

	s.mu.Lock()
	s.infos[path] = info
	s.mu.Unlock()

	return content, nil
}

// Write atomically replaces the file content.
func (s *FileStore) Write(ctx context.Context, path string, content []byte) error {
	s.mu.Lock()
	info := s.infos[path]
	mode, hasMode := s.modes[path]
	s.mu.Unlock()

	if info != nil {
		modified, err := fsutil.CheckModified(ctx, info)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrWriteFailure, err)
		}
		if modified {
			return fmt.Errorf("%w: %s was modified during processing", ErrWriteFailure, path)
		}
		if !hasMode {
			mode = info.Mode
		}
	}

	if err := fsutil.WriteAtomic(ctx, path, content, mode); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}

	s.mu.Lock()
	delete(s.infos, path)
	s.mu.Unlock()

	return nil
}

// Inherit makes writes to dst use the mode of src as last read through the
// store. It is used for copy-mode outputs, which are written without having
// been read.
func (s *FileStore) Inherit(dst, src string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if info, ok := s.infos[src]; ok {
		s.modes[dst] = info.Mode
	}
}

// MemoryStore is an in-memory Store used for lint-only runs, dry runs and tests.
type MemoryStore struct {
	mu     sync.RWMutex
	files  map[string][]byte
	writes int
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{files: make(map[string][]byte)}
}

// Seed sets the content of path without counting a write.
func (s *MemoryStore) Seed(path string, content []byte) {
	s.mu.Lock()
	s.files[path] = append([]byte(nil), content...)
	s.mu.Unlock()
}

// Read returns a copy of the stored content.
func (s *MemoryStore) Read(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadFailure, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	content, ok := s.files[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	return append([]byte(nil), content...), nil
}

// Write stores a copy of content.
func (s *MemoryStore) Write(ctx context.Context, path string, content []byte) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}

	s.mu.Lock()
	s.files[path] = append([]byte(nil), content...)
	s.writes++
	s.mu.Unlock()
	return nil
}

// Writes returns the number of writes performed.
func (s *MemoryStore) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}
