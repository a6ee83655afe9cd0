package analyzer

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"

	"symdoc/internal/domain"
)

// Rule turns the full text of one file into symbols. Rules are pure: they
// look at nothing but their arguments.
type Rule func(path, text string) []domain.Symbol

// rulesVersion is folded into Fingerprint. Bump it when rule behaviour
// changes without a pattern change.
const rulesVersion = "4"

// JS/TS identifiers may contain any Unicode letter; RE2's \w is ASCII only.
var (
	jsExportRe      = regexp.MustCompile(`(?m)^\s*export\s+(?:default\s+)?(function|class|const|let|var|interface|type|enum)\s+([\p{L}_$][\p{L}\p{N}_$]*)`)
	jsExportNamedRe = regexp.MustCompile(`(?m)^\s*export\s*\{([^}]+)\}`)
	jsFuncRe        = regexp.MustCompile(`(?m)^\s*export\s+function\s+([\p{L}_$][\p{L}\p{N}_$]*)\s*\(([^)]*)\)`)
	jsClassRe       = regexp.MustCompile(`(?m)^\s*export\s+class\s+([\p{L}_$][\p{L}\p{N}_$]*)`)

	pyDefRe   = regexp.MustCompile(`(?m)^\s*def\s+([A-Za-z_][A-Za-z0-9_]*)\s*\(([^)]*)\):`)
	pyClassRe = regexp.MustCompile(`(?m)^\s*class\s+([A-Za-z_][A-Za-z0-9_]*)(?:\([^)]*\))?:`)

	goExportRe = regexp.MustCompile(`(?m)^\s*(?:type\s+(?:struct\s+|interface\s+)?|func\s+(?:\([^)]*\)\s*)?)([A-Z][A-Za-z0-9_]*)`)

	rustPubRe = regexp.MustCompile(`(?m)^\s*pub\s+(?:fn|struct|enum|trait)\s+([A-Za-z_][A-Za-z0-9_]*)`)

	javaPublicRe = regexp.MustCompile(`\bpublic\s+(?:class|interface|enum)\s+([A-Za-z_][A-Za-z0-9_]*)`)
	javaMethodRe = regexp.MustCompile(`\bpublic\s+[^\s(]+\s+([a-zA-Z_][A-Za-z0-9_]*)\s*\(([^)]*)\)`)

	shellFuncRe = regexp.MustCompile(`(?m)^(?:function\s+)?([A-Za-z_][A-Za-z0-9_]*)\s*\(\)\s*\{`)
)

// handledKinds are captured by the dedicated function and class rules, so the
// generic export rule must not emit them again. The check is on the kind
// keyword only, not on position.
var handledKinds = map[string]bool{
	"function": true,
	"class":    true,
}

type paramMode int

const (
	paramsNone paramMode = iota
	paramsTrimmed
	paramsVerbatim
	paramsEmpty
)

// pattern is a single-regexp rule. Group 1 is the name, group 2 (when the
// mode needs it) is the raw parameter list.
type pattern struct {
	re     *regexp.Regexp
	kind   string
	params paramMode
	skip   func(name string) bool
}

func (p pattern) rule() Rule {
	return func(path, text string) []domain.Symbol {
		var symbols []domain.Symbol
		for _, m := range p.re.FindAllStringSubmatch(text, -1) {
			name := m[1]
			if p.skip != nil && p.skip(name) {
				continue
			}
			symbols = append(symbols, domain.Symbol{
				Kind:      p.kind,
				Name:      name,
				Signature: p.signature(name, m),
				File:      path,
			})
		}
		return symbols
	}
}

func (p pattern) signature(name string, m []string) string {
	switch p.params {
	case paramsTrimmed:
		return name + "(" + strings.TrimSpace(m[2]) + ")"
	case paramsVerbatim:
		return name + "(" + m[2] + ")"
	case paramsEmpty:
		return name + "()"
	default:
		return name
	}
}

// jsExportRule covers export const/let/var/interface/type/enum. Function and
// class exports are left to the earlier, more specific rules.
func jsExportRule(path, text string) []domain.Symbol {
	var symbols []domain.Symbol
	for _, m := range jsExportRe.FindAllStringSubmatch(text, -1) {
		kind, name := m[1], m[2]
		if handledKinds[kind] {
			continue
		}
		symbols = append(symbols, domain.Symbol{Kind: kind, Name: name, Signature: name, File: path})
	}
	return symbols
}

// jsNamedExportRule expands export { a, b as c } into one symbol per entry,
// named after the alias when there is one.
func jsNamedExportRule(path, text string) []domain.Symbol {
	var symbols []domain.Symbol
	for _, m := range jsExportNamedRe.FindAllStringSubmatch(text, -1) {
		for _, entry := range strings.Split(m[1], ",") {
			name := strings.TrimSpace(entry)
			if name == "" {
				continue
			}
			if strings.Contains(name, " as ") {
				name = strings.TrimSpace(strings.Split(name, " as ")[1])
			}
			symbols = append(symbols, domain.Symbol{Kind: "symbol", Name: name, Signature: name, File: path})
		}
	}
	return symbols
}

func private(name string) bool {
	return strings.HasPrefix(name, "_")
}

// jsRules is shared by the TypeScript and JavaScript families.
var jsRules = []Rule{
	pattern{re: jsFuncRe, kind: "function", params: paramsTrimmed}.rule(),
	pattern{re: jsClassRe, kind: "class"}.rule(),
	jsExportRule,
	jsNamedExportRule,
}

// defaultRules lists every language's rules in application order: most
// specific first, catch-all last.
var defaultRules = map[domain.Language][]Rule{
	domain.LangTypeScript: jsRules,
	domain.LangJavaScript: jsRules,
	domain.LangPython: {
		pattern{re: pyClassRe, kind: "class"}.rule(),
		pattern{re: pyDefRe, kind: "function", params: paramsTrimmed, skip: private}.rule(),
	},
	domain.LangGo: {
		pattern{re: goExportRe, kind: "export"}.rule(),
	},
	domain.LangRust: {
		pattern{re: rustPubRe, kind: "pub"}.rule(),
	},
	domain.LangJVM: {
		pattern{re: javaPublicRe, kind: "type"}.rule(),
		pattern{re: javaMethodRe, kind: "method", params: paramsVerbatim}.rule(),
	},
	domain.LangShell: {
		pattern{re: shellFuncRe, kind: "function", params: paramsEmpty}.rule(),
	},
}

// Fingerprint identifies the current rule set. Cached extraction results
// recorded under a different fingerprint are stale.
func Fingerprint() string {
	h := sha256.New()
	h.Write([]byte(rulesVersion))
	for _, re := range []*regexp.Regexp{
		jsExportRe, jsExportNamedRe, jsFuncRe, jsClassRe,
		pyDefRe, pyClassRe, goExportRe, rustPubRe,
		javaPublicRe, javaMethodRe, shellFuncRe,
	} {
		h.Write([]byte{0})
		h.Write([]byte(re.String()))
	}
	return hex.EncodeToString(h.Sum(nil)[:8])
}
