package fs

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
	"symdoc/internal/domain"
	"symdoc/internal/port"
)

// binarySniffLen is how much of a file is checked for NUL bytes.
const binarySniffLen = 8000

type Walker struct {
	ignoreNames map[string]bool
	excludes    []string
	gitignore   bool
}

// NewWalker creates a walker that prunes every path component named in
// ignoreNames, drops paths matching the doublestar excludes and, when
// gitignore is set, paths ignored by the root's .gitignore.
func NewWalker(ignoreNames, excludes []string, gitignore bool) *Walker {
	names := make(map[string]bool, len(ignoreNames))
	for _, n := range ignoreNames {
		names[n] = true
	}
	return &Walker{
		ignoreNames: names,
		excludes:    excludes,
		gitignore:   gitignore,
	}
}

// Walk returns the files under root in lexical order. Ignored directories
// are pruned before anything beneath them is touched; unreadable entries
// are skipped.
func (w *Walker) Walk(ctx context.Context, root string) ([]port.FileInfo, error) {
	var files []port.FileInfo

	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	var gi *ignore.GitIgnore
	if w.gitignore {
		gi = loadGitignore(root)
	}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if path == root {
				return err
			}
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if relPath == "." {
			return nil
		}
		slashed := filepath.ToSlash(relPath)

		if d.IsDir() {
			if w.ignoreNames[d.Name()] || w.shouldExclude(slashed+"/") || (gi != nil && gi.MatchesPath(slashed+"/")) {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() && d.Type()&fs.ModeSymlink == 0 {
			return nil
		}
		if w.IsIgnored(relPath) || w.shouldExclude(slashed) || (gi != nil && gi.MatchesPath(slashed)) {
			return nil
		}

		// Symlinks to files are followed; symlinked directories are not
		// descended into.
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			return nil
		}
		files = append(files, port.FileInfo{
			Path:    path,
			ModTime: info.ModTime().UnixNano(),
			Size:    info.Size(),
		})
		return nil
	})

	return files, err
}

// IsIgnored reports whether any component of relPath is an ignored name.
func (w *Walker) IsIgnored(relPath string) bool {
	for _, part := range strings.Split(filepath.ToSlash(relPath), "/") {
		if w.ignoreNames[part] {
			return true
		}
	}
	return false
}

func (w *Walker) shouldExclude(path string) bool {
	for _, pattern := range w.excludes {
		matched, err := doublestar.Match(pattern, path)
		if err == nil && matched {
			return true
		}
	}
	return false
}

func loadGitignore(root string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}

// Reader reads source files as text.
type Reader struct {
	maxSize int64
}

// NewReader creates a reader that refuses files larger than maxSize bytes.
// A maxSize of zero or less disables the limit.
func NewReader(maxSize int64) *Reader {
	return &Reader{maxSize: maxSize}
}

// ReadText never returns text together with a skip reason. Invalid UTF-8 is
// dropped rather than rejected.
func (r *Reader) ReadText(path string) (string, domain.SkipReason, error) {
	if r.maxSize > 0 {
		info, err := os.Stat(path)
		if err != nil {
			return "", domain.SkipUnreadable, err
		}
		if info.Size() > r.maxSize {
			return "", domain.SkipTooLarge, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", domain.SkipUnreadable, err
	}
	if len(data) == 0 {
		return "", domain.SkipEmpty, nil
	}

	sniff := data
	if len(sniff) > binarySniffLen {
		sniff = sniff[:binarySniffLen]
	}
	if bytes.IndexByte(sniff, 0) >= 0 {
		return "", domain.SkipBinary, nil
	}

	text := string(data)
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, "")
	}
	if strings.TrimSpace(text) == "" {
		return "", domain.SkipEmpty, nil
	}
	return text, domain.SkipNone, nil
}
