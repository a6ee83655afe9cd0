package render

import (
	"encoding/json"
	"fmt"

	"symdoc/internal/domain"
	"symdoc/internal/port"
)

type JSON struct{}

func NewJSON() *JSON {
	return &JSON{}
}

func (j *JSON) Extension() string {
	return ".json"
}

type jsonSymbol struct {
	Kind      string `json:"kind"`
	Name      string `json:"name"`
	Signature string `json:"signature"`
}

type jsonFile struct {
	Path    string       `json:"path"`
	Symbols []jsonSymbol `json:"symbols"`
}

type jsonDocument struct {
	GeneratedBy string     `json:"generated_by"`
	Files       []jsonFile `json:"files"`
}

// Render emits paths relative to the report root so output does not depend
// on where the tree is checked out.
func (j *JSON) Render(report domain.Report) ([]byte, error) {
	doc := jsonDocument{
		GeneratedBy: "symdoc",
		Files:       make([]jsonFile, 0, len(report.Groups)),
	}
	for _, g := range report.Groups {
		if len(g.Symbols) == 0 {
			continue
		}
		f := jsonFile{Path: g.RelPath, Symbols: make([]jsonSymbol, 0, len(g.Symbols))}
		if f.Path == "" {
			f.Path = g.Path
		}
		for _, s := range g.Symbols {
			f.Symbols = append(f.Symbols, jsonSymbol{Kind: s.Kind, Name: s.Name, Signature: s.Signature})
		}
		doc.Files = append(doc.Files, f)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}
	return append(data, '\n'), nil
}

// ForFormat returns the renderer for an output format name.
func ForFormat(format, title, description string) (port.Renderer, error) {
	switch format {
	case "", "markdown", "md":
		return NewMarkdown(title, description), nil
	case "json":
		return NewJSON(), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
