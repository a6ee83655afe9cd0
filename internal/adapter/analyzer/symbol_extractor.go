package analyzer

import (
	"fmt"

	"symdoc/internal/domain"
)

// SymbolExtractor applies the rules registered for a language to the text of
// one file.
type SymbolExtractor struct {
	rules map[domain.Language][]Rule
}

// NewSymbolExtractor creates an extractor over the built-in rule table.
func NewSymbolExtractor() *SymbolExtractor {
	return &SymbolExtractor{rules: defaultRules}
}

// NewSymbolExtractorWithRules creates an extractor over a custom rule table.
func NewSymbolExtractorWithRules(rules map[domain.Language][]Rule) *SymbolExtractor {
	return &SymbolExtractor{rules: rules}
}

// Extract runs every rule for lang over text, in registration order. A rule
// that panics makes the whole file contribute nothing; it never escapes.
func (e *SymbolExtractor) Extract(path string, lang domain.Language, text string) (result domain.FileResult) {
	result = domain.FileResult{Path: path, Lang: lang}

	rules, ok := e.rules[lang]
	if !ok || lang == domain.LangNone {
		result.Skip = domain.SkipUnsupported
		return result
	}

	defer func() {
		if r := recover(); r != nil {
			result.Symbols = nil
			result.Skip = domain.SkipExtractFailed
			result.Err = fmt.Errorf("extract %s: %v", path, r)
		}
	}()

	var symbols []domain.Symbol
	for _, rule := range rules {
		symbols = append(symbols, rule(path, text)...)
	}
	result.Symbols = symbols
	return result
}

// ExtractFile detects the language from path and extracts symbols from text.
func (e *SymbolExtractor) ExtractFile(path, text string) domain.FileResult {
	return e.Extract(path, Detect(path), text)
}
