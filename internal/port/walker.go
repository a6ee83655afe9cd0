package port

import (
	"context"

	"symdoc/internal/domain"
)

type FileWalker interface {
	Walk(ctx context.Context, root string) ([]FileInfo, error)
}

type FileInfo struct {
	Path    string
	ModTime int64
	Size    int64
}

// FileReader returns a file's text, or a skip reason when the file cannot
// be used as text.
type FileReader interface {
	ReadText(path string) (string, domain.SkipReason, error)
}
