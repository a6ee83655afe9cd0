package analyzer

import (
	"testing"

	"symdoc/internal/domain"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		path string
		want domain.Language
	}{
		{"src/app.ts", domain.LangTypeScript},
		{"src/App.tsx", domain.LangTypeScript},
		{"src/app.js", domain.LangJavaScript},
		{"src/App.jsx", domain.LangJavaScript},
		{"pkg/main.py", domain.LangPython},
		{"cmd/main.go", domain.LangGo},
		{"src/lib.rs", domain.LangRust},
		{"src/Main.java", domain.LangJVM},
		{"src/Main.kt", domain.LangJVM},
		{"build.gradle.kts", domain.LangJVM},
		{"build.groovy", domain.LangJVM},
		{"scripts/run.sh", domain.LangShell},
		{"scripts/run.bash", domain.LangShell},
		{"scripts/run.zsh", domain.LangShell},
		{"APP.TS", domain.LangNone},
		{"main.Go", domain.LangNone},
		{"README.md", domain.LangNone},
		{"Makefile", domain.LangNone},
		{"archive.ts.bak", domain.LangNone},
	}

	for _, tt := range tests {
		if got := Detect(tt.path); got != tt.want {
			t.Errorf("Detect(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestLanguagesCoversRuleTable(t *testing.T) {
	infos := Languages()
	if len(infos) != len(defaultRules) {
		t.Fatalf("expected %d languages, got %d", len(defaultRules), len(infos))
	}
	for i, info := range infos {
		if i > 0 && infos[i-1].Lang >= info.Lang {
			t.Errorf("languages not sorted at %d", i)
		}
		if info.Rules == 0 {
			t.Errorf("language %s has no rules", info.Lang)
		}
		if len(info.Extensions) == 0 {
			t.Errorf("language %s has no extensions", info.Lang)
		}
	}
}

func TestExtensionsSorted(t *testing.T) {
	exts := Extensions()
	if len(exts) != 14 {
		t.Errorf("expected 14 extensions, got %d", len(exts))
	}
	for i := 1; i < len(exts); i++ {
		if exts[i-1] >= exts[i] {
			t.Errorf("extensions not sorted: %s >= %s", exts[i-1], exts[i])
		}
	}
}
