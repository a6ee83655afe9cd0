package usecase

import (
	"path/filepath"
	"reflect"
	"testing"

	"symdoc/internal/domain"
)

func sym(file, kind, name string) domain.Symbol {
	return domain.Symbol{Kind: kind, Name: name, Signature: name, File: file}
}

func TestGroupSortsFilesAndKeepsInFileOrder(t *testing.T) {
	root := filepath.FromSlash("/repo")
	a := filepath.Join(root, "a.py")
	b := filepath.Join(root, "b", "b.ts")
	c := filepath.Join(root, "c.go")

	symbols := []domain.Symbol{
		sym(c, "export", "C1"),
		sym(b, "function", "b1"),
		sym(b, "const", "b2"),
		sym(a, "class", "A"),
		sym(b, "symbol", "b3"),
	}

	groups := Group(symbols, root)
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}

	wantPaths := []string{a, b, c}
	for i, g := range groups {
		if g.Path != wantPaths[i] {
			t.Errorf("group %d: expected %s, got %s", i, wantPaths[i], g.Path)
		}
	}
	if groups[1].RelPath != "b/b.ts" {
		t.Errorf("expected rel path b/b.ts, got %s", groups[1].RelPath)
	}

	var names []string
	for _, s := range groups[1].Symbols {
		names = append(names, s.Name)
	}
	if !reflect.DeepEqual(names, []string{"b1", "b2", "b3"}) {
		t.Errorf("expected discovery order preserved, got %v", names)
	}
}

func TestGroupIndependentOfTraversalOrder(t *testing.T) {
	root := "/repo"
	forward := []domain.Symbol{
		sym("/repo/a.py", "class", "A"),
		sym("/repo/a.py", "function", "f"),
		sym("/repo/z/z.rs", "pub", "Z"),
		sym("/repo/m.sh", "function", "m"),
	}
	reversed := []domain.Symbol{
		sym("/repo/m.sh", "function", "m"),
		sym("/repo/z/z.rs", "pub", "Z"),
		sym("/repo/a.py", "class", "A"),
		sym("/repo/a.py", "function", "f"),
	}

	if !reflect.DeepEqual(Group(forward, root), Group(reversed, root)) {
		t.Error("expected identical grouping regardless of file order")
	}
}

func TestGroupNoCrossFileDedup(t *testing.T) {
	groups := Group([]domain.Symbol{
		sym("/repo/a.ts", "function", "init"),
		sym("/repo/b.ts", "function", "init"),
	}, "/repo")

	total := 0
	for _, g := range groups {
		total += len(g.Symbols)
	}
	if total != 2 {
		t.Errorf("expected both symbols kept, got %d", total)
	}
}

func TestGroupEmpty(t *testing.T) {
	if groups := Group(nil, "/repo"); len(groups) != 0 {
		t.Errorf("expected no groups, got %d", len(groups))
	}
	if !BuildReport("/repo", nil).Empty() {
		t.Error("expected empty report")
	}
}

func TestRelPath(t *testing.T) {
	tests := []struct {
		root, path, want string
	}{
		{"/repo", "/repo/src/a.ts", "src/a.ts"},
		{"/repo", "/repo/a.ts", "a.ts"},
		{"/repo", "/elsewhere/a.ts", "/elsewhere/a.ts"},
		{"/repo", "/repository/a.ts", "/repository/a.ts"},
		{"", "/repo/a.ts", "/repo/a.ts"},
	}
	for _, tt := range tests {
		root := filepath.FromSlash(tt.root)
		path := filepath.FromSlash(tt.path)
		want := filepath.ToSlash(filepath.FromSlash(tt.want))
		if got := RelPath(root, path); got != want {
			t.Errorf("RelPath(%q, %q) = %q, want %q", root, path, got, want)
		}
	}
}

func TestRelativePaths(t *testing.T) {
	groups := Group([]domain.Symbol{
		sym("/repo/x/y.go", "export", "Y"),
	}, "/repo")
	rel := RelativePaths(groups, "/repo")
	if rel["/repo/x/y.go"] != "x/y.go" {
		t.Errorf("unexpected relative paths: %v", rel)
	}
}
