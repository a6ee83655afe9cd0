package cli

import (
	"path/filepath"
	"testing"

	"symdoc/config"
	"symdoc/internal/adapter/render"
)

func TestResolveOutput(t *testing.T) {
	root := filepath.FromSlash("/repo")
	cfg := config.DefaultConfig()

	got, err := resolveOutput(cfg, root, "", render.NewMarkdown("", ""))
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(root, "docs", "API.md"); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}

	got, err = resolveOutput(cfg, root, "", render.NewJSON())
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(root, "docs", "API.json"); got != want {
		t.Errorf("expected extension swapped to .json, got %s", got)
	}

	got, err = resolveOutput(cfg, root, "out/custom.txt", render.NewJSON())
	if err != nil {
		t.Fatal(err)
	}
	abs, _ := filepath.Abs("out/custom.txt")
	if got != abs {
		t.Errorf("expected explicit path kept as %s, got %s", abs, got)
	}
}

func TestFormatOrDefault(t *testing.T) {
	cfg := config.DefaultConfig()
	if got := formatOrDefault("", cfg); got != "markdown" {
		t.Errorf("expected config format, got %s", got)
	}
	if got := formatOrDefault("JSON", cfg); got != "json" {
		t.Errorf("expected flag format lowercased, got %s", got)
	}
}
