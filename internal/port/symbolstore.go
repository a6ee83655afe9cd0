package port

import "symdoc/internal/domain"

// SymbolStore caches per-file extraction results between runs.
type SymbolStore interface {
	// GetFile returns the cached entry for path, if any.
	GetFile(path string) (CachedFile, bool, error)

	// PutFiles stores entries, replacing existing ones for the same path.
	PutFiles(files []CachedFile) error

	// Prune removes entries whose path is not in keep and returns how many
	// were removed.
	Prune(keep map[string]bool) (int, error)

	Close() error
}

// CachedFile is one file's extraction result, valid while ModTime and Size
// still match the file on disk.
type CachedFile struct {
	Path    string            `json:"path"`
	ModTime int64             `json:"mod_time"`
	Size    int64             `json:"size"`
	Lang    domain.Language   `json:"lang"`
	Skip    domain.SkipReason `json:"skip,omitempty"`
	Symbols []domain.Symbol   `json:"symbols,omitempty"`
}

// Fresh reports whether the entry still describes info.
func (c CachedFile) Fresh(info FileInfo) bool {
	return c.ModTime == info.ModTime && c.Size == info.Size
}
