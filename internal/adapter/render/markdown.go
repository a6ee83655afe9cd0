package render

import (
	"fmt"
	"strings"

	"symdoc/internal/domain"
)

// NoSymbolsMessage is the body of the document when nothing was found.
const NoSymbolsMessage = "No public APIs were detected in this repository."

// Markdown renders one section per file, listing "kind: signature" entries.
type Markdown struct {
	Title       string
	Description string
	// Command is shown in the usage footer as the way to regenerate.
	Command string
}

func NewMarkdown(title, description string) *Markdown {
	if title == "" {
		title = "API Reference"
	}
	return &Markdown{
		Title:       title,
		Description: description,
		Command:     "symdoc generate",
	}
}

func (m *Markdown) Extension() string {
	return ".md"
}

func (m *Markdown) header() string {
	var b strings.Builder
	// Values are double-quoted so titles containing ": " or "#" stay valid
	// YAML.
	b.WriteString("---\n")
	fmt.Fprintf(&b, "title: %q\n", m.Title)
	if m.Description != "" {
		fmt.Fprintf(&b, "description: %q\n", m.Description)
	}
	b.WriteString("---\n\n")
	fmt.Fprintf(&b, "# %s\n\n", m.Title)
	b.WriteString("This document is auto-generated. Do not edit by hand.\n\n")
	return b.String()
}

func (m *Markdown) Render(report domain.Report) ([]byte, error) {
	if report.Empty() {
		return []byte(m.header() + NoSymbolsMessage + "\n"), nil
	}

	lines := []string{m.header()}
	for _, g := range report.Groups {
		if len(g.Symbols) == 0 {
			continue
		}
		name := g.RelPath
		if name == "" {
			name = g.Path
		}
		lines = append(lines, "## "+name)
		for _, s := range g.Symbols {
			lines = append(lines, fmt.Sprintf("- **%s**: `%s`", s.Kind, s.Signature))
		}
		lines = append(lines, "")
	}

	lines = append(lines,
		"---\n\n## Usage\n",
		fmt.Sprintf("- **Regenerate**: run `%s`.\n", m.Command),
		"- **Scope**: Detects exported/public functions, classes, types across JS/TS, Python, Go, Rust, Java/Kotlin/Groovy, and shell.",
		"- **Notes**: This is a static regex-based extractor; adjust as needed for your codebase.",
	)
	return []byte(strings.Join(lines, "\n")), nil
}
