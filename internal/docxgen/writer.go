// Package docxgen renders the reconstructed paragraph stream for
// downstream document writers. The package defines the writer contract
// and ships two renderers: JSON for machine consumers and indented plain
// text for inspection.
package docxgen

import (
	"fmt"
	"io"
	"strings"

	"github.com/caseworks/judgment-converter/internal/layout"
)

// NumberingMode controls how numbered-list paragraphs are rendered.
type NumberingMode string

const (
	// NumberingLiteral keeps the marker exactly as it appeared in the
	// source document. This is the default: judgment citations refer to
	// paragraph numbers, so renumbering is never safe.
	NumberingLiteral NumberingMode = "literal"

	// NumberingAutomatic omits the marker text and leaves numbering to
	// the consuming writer's list mechanism.
	NumberingAutomatic NumberingMode = "automatic"
)

// Writer renders a paragraph stream to an output.
type Writer interface {
	Write(w io.Writer, paragraphs []layout.Paragraph) error
}

// Options configure rendering shared by all writers.
type Options struct {
	Numbering NumberingMode `json:"numbering"`
}

// DefaultOptions returns the default writer options
func DefaultOptions() Options {
	return Options{Numbering: NumberingLiteral}
}

// paragraphText renders paragraph content honoring the numbering mode
func paragraphText(p layout.Paragraph, mode NumberingMode) string {
	if mode == NumberingAutomatic || p.Marker == "" {
		return p.Text
	}
	return p.RenderedText()
}

// TextWriter renders paragraphs as indented plain text, one paragraph
// per line, prefixed with role and alignment for quick inspection.
type TextWriter struct {
	opts Options
}

// NewTextWriter creates a plain-text writer
func NewTextWriter(opts Options) *TextWriter {
	return &TextWriter{opts: opts}
}

// Write renders the paragraph stream as plain text
func (t *TextWriter) Write(w io.Writer, paragraphs []layout.Paragraph) error {
	for _, p := range paragraphs {
		indent := strings.Repeat("    ", p.IndentLevel)
		var marks []string
		if p.Bold {
			marks = append(marks, "bold")
		}
		if p.Underline {
			marks = append(marks, "underline")
		}
		suffix := ""
		if len(marks) > 0 {
			suffix = " [" + strings.Join(marks, ",") + "]"
		}

		line := fmt.Sprintf("%-16s %-9s %s%s%s\n",
			p.Role, p.Alignment, indent, paragraphText(p, t.opts.Numbering), suffix)
		if _, err := io.WriteString(w, line); err != nil {
			return fmt.Errorf("failed to write paragraph: %w", err)
		}
	}
	return nil
}
