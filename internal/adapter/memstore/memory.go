package memstore

import (
	"sort"
	"sync"

	"symdoc/internal/port"
)

// MemoryStore is an in-process port.SymbolStore. Watch mode keeps one alive
// across regenerations when the on-disk cache is disabled.
type MemoryStore struct {
	mu    sync.RWMutex
	files map[string]port.CachedFile
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		files: make(map[string]port.CachedFile),
	}
}

func (s *MemoryStore) GetFile(path string) (port.CachedFile, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.files[path]
	return f, ok, nil
}

func (s *MemoryStore) PutFiles(files []port.CachedFile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range files {
		s.files[f.Path] = f
	}
	return nil
}

// ListFiles returns every entry sorted by path.
func (s *MemoryStore) ListFiles() ([]port.CachedFile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	files := make([]port.CachedFile, 0, len(s.files))
	for _, f := range s.files {
		files = append(files, f)
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})
	return files, nil
}

func (s *MemoryStore) Prune(keep map[string]bool) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for path := range s.files {
		if !keep[path] {
			delete(s.files, path)
			removed++
		}
	}
	return removed, nil
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.files)
}

func (s *MemoryStore) Close() error {
	return nil
}
