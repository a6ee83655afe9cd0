package port

import "symdoc/internal/domain"

// Renderer turns a grouped report into a complete document.
type Renderer interface {
	Render(report domain.Report) ([]byte, error)

	// Extension is the conventional file extension of the output.
	Extension() string
}
