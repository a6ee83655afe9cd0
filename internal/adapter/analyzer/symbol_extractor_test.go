package analyzer

import (
	"testing"

	"symdoc/internal/domain"
)

type wantSymbol struct {
	kind, name, signature string
}

func assertSymbols(t *testing.T, got []domain.Symbol, want []wantSymbol) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d symbols, got %d: %+v", len(want), len(got), got)
	}
	for i, w := range want {
		g := got[i]
		if g.Kind != w.kind || g.Name != w.name || g.Signature != w.signature {
			t.Errorf("symbol %d: expected {%s %s %q}, got {%s %s %q}",
				i, w.kind, w.name, w.signature, g.Kind, g.Name, g.Signature)
		}
	}
}

func TestExtractPython(t *testing.T) {
	content := `class Foo:
    def bar(x, y):
        pass

    def _hidden():
        pass
`
	res := NewSymbolExtractor().ExtractFile("/repo/foo.py", content)
	if res.Skipped() {
		t.Fatalf("unexpected skip: %s", res.Skip)
	}
	assertSymbols(t, res.Symbols, []wantSymbol{
		{"class", "Foo", "Foo"},
		{"function", "bar", "bar(x, y)"},
	})
	for _, s := range res.Symbols {
		if s.File != "/repo/foo.py" {
			t.Errorf("expected origin /repo/foo.py, got %s", s.File)
		}
	}
}

func TestExtractPythonClassWithBases(t *testing.T) {
	content := "class Child(Base, Mixin):\n    pass\n"
	res := NewSymbolExtractor().ExtractFile("child.py", content)
	assertSymbols(t, res.Symbols, []wantSymbol{{"class", "Child", "Child"}})
}

func TestExtractTypeScriptAliasAndPrecedence(t *testing.T) {
	content := `export function add(a, b) {}
export { add as sum }
`
	res := NewSymbolExtractor().ExtractFile("math.ts", content)
	assertSymbols(t, res.Symbols, []wantSymbol{
		{"function", "add", "add(a, b)"},
		{"symbol", "sum", "sum"},
	})
}

func TestExtractTypeScriptAllForms(t *testing.T) {
	content := `export function f(  a, b  ) {}
export class C {}
export const k = 1
export let l = 2
export var v = 3
export interface I {}
export type T = string
export enum E { A }
export { a, b as c }
`
	res := NewSymbolExtractor().ExtractFile("all.tsx", content)
	assertSymbols(t, res.Symbols, []wantSymbol{
		{"function", "f", "f(a, b)"},
		{"class", "C", "C"},
		{"const", "k", "k"},
		{"let", "l", "l"},
		{"var", "v", "v"},
		{"interface", "I", "I"},
		{"type", "T", "T"},
		{"enum", "E", "E"},
		{"symbol", "a", "a"},
		{"symbol", "c", "c"},
	})
}

func TestExtractNamedExportNeverEmitsPreAliasName(t *testing.T) {
	content := "export {\n  one,\n  two as three,\n  four as five\n}\n"
	res := NewSymbolExtractor().ExtractFile("index.js", content)
	assertSymbols(t, res.Symbols, []wantSymbol{
		{"symbol", "one", "one"},
		{"symbol", "three", "three"},
		{"symbol", "five", "five"},
	})
	for _, s := range res.Symbols {
		if s.Name == "two" || s.Name == "four" {
			t.Errorf("pre-alias name %q emitted", s.Name)
		}
	}
}

func TestExtractClassNotDuplicatedByGenericExport(t *testing.T) {
	content := "export class Widget {}\n"
	res := NewSymbolExtractor().ExtractFile("widget.js", content)
	assertSymbols(t, res.Symbols, []wantSymbol{{"class", "Widget", "Widget"}})
}

func TestExtractGo(t *testing.T) {
	content := `package server

type Server struct{}

type Handler interface{}

type ID string

func New() *Server { return nil }

func (s *Server) Start() error { return nil }

func helper() {}

type private struct{}
`
	res := NewSymbolExtractor().ExtractFile("server.go", content)
	assertSymbols(t, res.Symbols, []wantSymbol{
		{"export", "Server", "Server"},
		{"export", "Handler", "Handler"},
		{"export", "ID", "ID"},
		{"export", "New", "New"},
		{"export", "Start", "Start"},
	})
}

func TestExtractRust(t *testing.T) {
	content := `pub fn run() {}
pub struct Config {}
pub enum Mode { A }
pub trait Store {}
fn hidden() {}
pub(crate) fn scoped() {}
`
	res := NewSymbolExtractor().ExtractFile("lib.rs", content)
	assertSymbols(t, res.Symbols, []wantSymbol{
		{"pub", "run", "run"},
		{"pub", "Config", "Config"},
		{"pub", "Mode", "Mode"},
		{"pub", "Store", "Store"},
	})
}

func TestExtractJVM(t *testing.T) {
	content := `public class Greeter {
    public String greet( String name ) {
        return name;
    }

    private void hidden() {}
}
`
	for _, path := range []string{"Greeter.java", "Greeter.kt", "build.gradle.kts", "Greeter.groovy"} {
		res := NewSymbolExtractor().ExtractFile(path, content)
		assertSymbols(t, res.Symbols, []wantSymbol{
			{"type", "Greeter", "Greeter"},
			{"method", "greet", "greet( String name )"},
		})
	}
}

func TestExtractShell(t *testing.T) {
	content := `#!/bin/bash
function deploy() {
  echo deploying
}

build () {
  :
}
`
	res := NewSymbolExtractor().ExtractFile("ci.sh", content)
	assertSymbols(t, res.Symbols, []wantSymbol{
		{"function", "deploy", "deploy()"},
		{"function", "build", "build()"},
	})
}

func TestExtractUnsupported(t *testing.T) {
	res := NewSymbolExtractor().ExtractFile("README.md", "# export function nope() {}")
	if res.Skip != domain.SkipUnsupported {
		t.Errorf("expected skip %q, got %q", domain.SkipUnsupported, res.Skip)
	}
	if len(res.Symbols) != 0 {
		t.Errorf("expected no symbols, got %d", len(res.Symbols))
	}
}

func TestExtractRecoversFromRulePanic(t *testing.T) {
	good := func(path, text string) []domain.Symbol {
		return []domain.Symbol{{Kind: "function", Name: "ok", Signature: "ok", File: path}}
	}
	bad := func(path, text string) []domain.Symbol {
		panic("engine fault")
	}
	e := NewSymbolExtractorWithRules(map[domain.Language][]Rule{
		domain.LangPython: {good, bad},
	})

	res := e.Extract("bad.py", domain.LangPython, "def ok(): pass")
	if res.Skip != domain.SkipExtractFailed {
		t.Errorf("expected skip %q, got %q", domain.SkipExtractFailed, res.Skip)
	}
	if res.Err == nil {
		t.Error("expected error to be recorded")
	}
	if len(res.Symbols) != 0 {
		t.Errorf("expected partial symbols to be dropped, got %d", len(res.Symbols))
	}
}

func TestExtractJavaScriptUnicodeIdentifiers(t *testing.T) {
	content := "export const café = 1\nexport function naïve(a) {}\nexport class Größe2 {}\n"
	res := NewSymbolExtractor().ExtractFile("u.js", content)
	assertSymbols(t, res.Symbols, []wantSymbol{
		{"function", "naïve", "naïve(a)"},
		{"class", "Größe2", "Größe2"},
		{"const", "café", "café"},
	})
}

func TestExtractEmptyText(t *testing.T) {
	res := NewSymbolExtractor().ExtractFile("empty.ts", "")
	if res.Skipped() {
		t.Errorf("unexpected skip %q", res.Skip)
	}
	if len(res.Symbols) != 0 {
		t.Errorf("expected no symbols, got %d", len(res.Symbols))
	}
}

func TestFingerprintStable(t *testing.T) {
	a, b := Fingerprint(), Fingerprint()
	if a != b {
		t.Errorf("fingerprint not stable: %s != %s", a, b)
	}
	if len(a) != 16 {
		t.Errorf("expected 16 hex chars, got %d", len(a))
	}
}
