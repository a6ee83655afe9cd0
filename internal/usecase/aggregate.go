package usecase

import (
	"path/filepath"
	"sort"
	"strings"

	"symdoc/internal/domain"
)

// Group collects symbols by originating file. Each group keeps the order in
// which its symbols were discovered; groups are sorted by path so output
// does not depend on traversal or completion order. Nothing is deduplicated
// across files.
func Group(symbols []domain.Symbol, root string) []domain.FileGroup {
	index := make(map[string]int)
	var groups []domain.FileGroup

	for _, s := range symbols {
		i, ok := index[s.File]
		if !ok {
			i = len(groups)
			index[s.File] = i
			groups = append(groups, domain.FileGroup{
				Path:    s.File,
				RelPath: RelPath(root, s.File),
			})
		}
		groups[i].Symbols = append(groups[i].Symbols, s)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Path < groups[j].Path
	})
	return groups
}

// RelPath returns path relative to root with forward slashes, or path
// unchanged when it does not live under root. A relative root is resolved
// against the working directory when path is absolute.
func RelPath(root, path string) string {
	if root == "" {
		return filepath.ToSlash(path)
	}
	if filepath.IsAbs(path) && !filepath.IsAbs(root) {
		if abs, err := filepath.Abs(root); err == nil {
			root = abs
		}
	}
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// RelativePaths maps each group's path to its root-relative form.
func RelativePaths(groups []domain.FileGroup, root string) map[string]string {
	rel := make(map[string]string, len(groups))
	for _, g := range groups {
		rel[g.Path] = RelPath(root, g.Path)
	}
	return rel
}

// BuildReport groups symbols into the document model renderers consume.
func BuildReport(root string, symbols []domain.Symbol) domain.Report {
	return domain.Report{
		Root:   root,
		Groups: Group(symbols, root),
	}
}
