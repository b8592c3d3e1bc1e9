package docxgen

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/caseworks/judgment-converter/internal/layout"
)

// jsonParagraph is the wire form of one rendered paragraph
type jsonParagraph struct {
	Text        string           `json:"text"`
	Role        layout.Role      `json:"role"`
	Alignment   layout.Alignment `json:"alignment"`
	FontTier    layout.FontTier  `json:"font_tier"`
	Bold        bool             `json:"bold,omitempty"`
	Underline   bool             `json:"underline,omitempty"`
	Marker      string           `json:"marker,omitempty"`
	IndentLevel int              `json:"indent_level,omitempty"`
}

// jsonDocument is the top-level wire form
type jsonDocument struct {
	Numbering  NumberingMode   `json:"numbering"`
	Paragraphs []jsonParagraph `json:"paragraphs"`
}

// JSONWriter renders paragraphs as a JSON document. In literal mode the
// marker stays embedded in the paragraph text and is also reported in
// its own field; in automatic mode the text excludes it.
type JSONWriter struct {
	opts Options
}

// NewJSONWriter creates a JSON writer
func NewJSONWriter(opts Options) *JSONWriter {
	return &JSONWriter{opts: opts}
}

// Write renders the paragraph stream as indented JSON
func (j *JSONWriter) Write(w io.Writer, paragraphs []layout.Paragraph) error {
	doc := jsonDocument{
		Numbering:  j.opts.Numbering,
		Paragraphs: make([]jsonParagraph, 0, len(paragraphs)),
	}

	for _, p := range paragraphs {
		doc.Paragraphs = append(doc.Paragraphs, jsonParagraph{
			Text:        paragraphText(p, j.opts.Numbering),
			Role:        p.Role,
			Alignment:   p.Alignment,
			FontTier:    p.FontTier,
			Bold:        p.Bold,
			Underline:   p.Underline,
			Marker:      p.Marker,
			IndentLevel: p.IndentLevel,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode paragraphs: %w", err)
	}
	return nil
}
