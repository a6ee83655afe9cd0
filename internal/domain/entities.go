package domain

// Language identifies a rule set. The zero value means no language.
type Language string

const (
	LangNone       Language = ""
	LangTypeScript Language = "typescript"
	LangJavaScript Language = "javascript"
	LangPython     Language = "python"
	LangGo         Language = "go"
	LangRust       Language = "rust"
	LangJVM        Language = "jvm"
	LangShell      Language = "shell"
)

// Symbol is one extracted declaration. Kind is whatever the producing rule
// emitted and is not unified across languages.
type Symbol struct {
	Kind      string `json:"kind"`
	Name      string `json:"name"`
	Signature string `json:"signature"`
	File      string `json:"file"`
}

// SkipReason explains why a visited file contributed no symbols.
type SkipReason string

const (
	SkipNone          SkipReason = ""
	SkipUnsupported   SkipReason = "unsupported"
	SkipTooLarge      SkipReason = "too_large"
	SkipUnreadable    SkipReason = "unreadable"
	SkipBinary        SkipReason = "binary"
	SkipEmpty         SkipReason = "empty"
	SkipExtractFailed SkipReason = "extract_failed"
)

// FileResult is the outcome of extracting a single file.
type FileResult struct {
	Path    string
	Lang    Language
	Symbols []Symbol
	Skip    SkipReason
	Err     error
	Cached  bool
}

// Skipped reports whether the file contributed nothing for a known reason.
func (r FileResult) Skipped() bool {
	return r.Skip != SkipNone
}

// FileGroup is one section of the report: a file and its symbols in
// discovery order.
type FileGroup struct {
	Path    string   `json:"path"`
	RelPath string   `json:"rel_path"`
	Symbols []Symbol `json:"symbols"`
}

type ScanStats struct {
	FilesVisited int                `json:"files_visited"`
	FilesScanned int                `json:"files_scanned"`
	CacheHits    int                `json:"cache_hits"`
	Symbols      int                `json:"symbols"`
	Skipped      map[SkipReason]int `json:"skipped,omitempty"`
}

// Report is what a renderer consumes.
type Report struct {
	Root   string      `json:"root"`
	Groups []FileGroup `json:"files"`
}

// Empty reports whether no symbols were found anywhere.
func (r Report) Empty() bool {
	for _, g := range r.Groups {
		if len(g.Symbols) > 0 {
			return false
		}
	}
	return true
}
