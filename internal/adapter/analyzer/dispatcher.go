package analyzer

import (
	"path/filepath"
	"sort"

	"symdoc/internal/domain"
)

// extensions maps a file extension, compared exactly and case-sensitively,
// to its language. Adding a language means adding entries here and a rule
// list in defaultRules.
var extensions = map[string]domain.Language{
	".ts":     domain.LangTypeScript,
	".tsx":    domain.LangTypeScript,
	".js":     domain.LangJavaScript,
	".jsx":    domain.LangJavaScript,
	".py":     domain.LangPython,
	".go":     domain.LangGo,
	".rs":     domain.LangRust,
	".java":   domain.LangJVM,
	".kt":     domain.LangJVM,
	".kts":    domain.LangJVM,
	".groovy": domain.LangJVM,
	".sh":     domain.LangShell,
	".bash":   domain.LangShell,
	".zsh":    domain.LangShell,
}

// Detect returns the language for path's extension, or LangNone.
func Detect(path string) domain.Language {
	return extensions[filepath.Ext(path)]
}

// Supported reports whether path has a recognized extension.
func Supported(path string) bool {
	return Detect(path) != domain.LangNone
}

// LanguageInfo describes one entry of the dispatch table.
type LanguageInfo struct {
	Lang       domain.Language
	Extensions []string
	Rules      int
}

// Languages lists the dispatch table sorted by language.
func Languages() []LanguageInfo {
	byLang := make(map[domain.Language][]string)
	for ext, lang := range extensions {
		byLang[lang] = append(byLang[lang], ext)
	}

	infos := make([]LanguageInfo, 0, len(byLang))
	for lang, exts := range byLang {
		sort.Strings(exts)
		infos = append(infos, LanguageInfo{
			Lang:       lang,
			Extensions: exts,
			Rules:      len(defaultRules[lang]),
		})
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Lang < infos[j].Lang
	})
	return infos
}

// Extensions returns every recognized extension, sorted.
func Extensions() []string {
	exts := make([]string, 0, len(extensions))
	for ext := range extensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
