package docxgen

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caseworks/judgment-converter/internal/layout"
)

func sampleParagraphs() []layout.Paragraph {
	return []layout.Paragraph{
		{Text: "IN THE SUPREME COURT OF INDIA", Role: layout.RoleLegalHeader,
			Alignment: layout.AlignCenter, FontTier: layout.TierTitle, Bold: true},
		{Text: "Leave granted. The appeal raises a narrow question.",
			Role: layout.RoleListMarker, Alignment: layout.AlignJustified,
			FontTier: layout.TierBodyText, Marker: "1.", IndentLevel: 1},
	}
}

func TestTextWriter_LiteralNumbering(t *testing.T) {
	var buf bytes.Buffer
	w := NewTextWriter(DefaultOptions())

	require.NoError(t, w.Write(&buf, sampleParagraphs()))
	out := buf.String()
	assert.Contains(t, out, "1. Leave granted.")
	assert.Contains(t, out, "[bold]")
	assert.Equal(t, 2, strings.Count(out, "\n"))
}

func TestTextWriter_AutomaticNumberingOmitsMarker(t *testing.T) {
	var buf bytes.Buffer
	w := NewTextWriter(Options{Numbering: NumberingAutomatic})

	require.NoError(t, w.Write(&buf, sampleParagraphs()))
	assert.NotContains(t, buf.String(), "1. Leave granted.")
	assert.Contains(t, buf.String(), "Leave granted.")
}

func TestTextWriter_Indentation(t *testing.T) {
	var buf bytes.Buffer
	w := NewTextWriter(DefaultOptions())

	require.NoError(t, w.Write(&buf, sampleParagraphs()))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "    1. Leave granted.")
}

func TestJSONWriter_RoundTripFields(t *testing.T) {
	var buf bytes.Buffer
	w := NewJSONWriter(DefaultOptions())

	require.NoError(t, w.Write(&buf, sampleParagraphs()))

	var doc struct {
		Numbering  string `json:"numbering"`
		Paragraphs []struct {
			Text   string `json:"text"`
			Role   string `json:"role"`
			Marker string `json:"marker"`
			Bold   bool   `json:"bold"`
		} `json:"paragraphs"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "literal", doc.Numbering)
	require.Len(t, doc.Paragraphs, 2)
	assert.Equal(t, "legal_header", doc.Paragraphs[0].Role)
	assert.True(t, doc.Paragraphs[0].Bold)
	assert.Equal(t, "1.", doc.Paragraphs[1].Marker)
	assert.True(t, strings.HasPrefix(doc.Paragraphs[1].Text, "1. "))
}

func TestJSONWriter_AutomaticNumberingKeepsMarkerField(t *testing.T) {
	var buf bytes.Buffer
	w := NewJSONWriter(Options{Numbering: NumberingAutomatic})

	require.NoError(t, w.Write(&buf, sampleParagraphs()))

	var doc struct {
		Paragraphs []struct {
			Text   string `json:"text"`
			Marker string `json:"marker"`
		} `json:"paragraphs"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.Paragraphs, 2)
	assert.Equal(t, "1.", doc.Paragraphs[1].Marker)
	assert.False(t, strings.HasPrefix(doc.Paragraphs[1].Text, "1."))
}

func TestJSONWriter_EmptyStream(t *testing.T) {
	var buf bytes.Buffer
	w := NewJSONWriter(DefaultOptions())

	require.NoError(t, w.Write(&buf, nil))
	assert.Contains(t, buf.String(), `"paragraphs": []`)
}
