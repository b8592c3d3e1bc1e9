package pdf

import (
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPageHeight = 792.0

func span(s string, x, y, w float64) pdf.Text {
	return pdf.Text{S: s, X: x, Y: y, W: w, Font: "Times-Roman", FontSize: 12}
}

func TestGroupRows_Empty(t *testing.T) {
	assert.Nil(t, groupRows(nil, 1, testPageHeight))
}

func TestGroupRows_SameBaselineMergesIntoOneFragment(t *testing.T) {
	texts := []pdf.Text{
		span("The", 72, 700, 20),
		span(" appellant", 92, 700, 50),
		span(" contends", 142, 700.5, 48),
	}

	fragments := groupRows(texts, 1, testPageHeight)
	require.Len(t, fragments, 1)
	assert.Equal(t, "The appellant contends", fragments[0].Text)
	assert.Equal(t, 1, fragments[0].Page)
	assert.InDelta(t, 72.0, fragments[0].X, 0.01)
	assert.InDelta(t, 118.0, fragments[0].Width, 0.01)
}

func TestGroupRows_DistinctBaselinesStaySeparate(t *testing.T) {
	texts := []pdf.Text{
		span("first line", 72, 700, 60),
		span("second line", 72, 685, 70),
	}

	fragments := groupRows(texts, 2, testPageHeight)
	require.Len(t, fragments, 2)
	assert.Equal(t, "first line", fragments[0].Text)
	assert.Equal(t, "second line", fragments[1].Text)
	// The higher span on the page comes first after the flip.
	assert.Less(t, fragments[0].Y, fragments[1].Y)
}

func TestGroupRows_YFlipToTopLeftOrigin(t *testing.T) {
	texts := []pdf.Text{span("near the top", 72, 760, 80)}

	fragments := groupRows(texts, 1, testPageHeight)
	require.Len(t, fragments, 1)
	assert.InDelta(t, 792.0-760.0-12.0, fragments[0].Y, 0.01)
}

func TestGroupRows_UnorderedInputSortedByPosition(t *testing.T) {
	texts := []pdf.Text{
		span("world", 120, 700, 35),
		span("lower", 72, 650, 40),
		span("hello", 72, 700, 30),
	}

	fragments := groupRows(texts, 1, testPageHeight)
	require.Len(t, fragments, 2)
	assert.Equal(t, "hello world", fragments[0].Text)
	assert.Equal(t, "lower", fragments[1].Text)
}

func TestGroupRows_NoSpaceForAdjacentSpans(t *testing.T) {
	// Character-level output arrives with zero inter-span gaps; no
	// spaces may be invented inside a word.
	texts := []pdf.Text{
		span("Ver", 100, 700, 18),
		span("sus", 118, 700, 18),
	}

	fragments := groupRows(texts, 1, testPageHeight)
	require.Len(t, fragments, 1)
	assert.Equal(t, "Versus", fragments[0].Text)
}

func TestBuildFragment_FontStyleFromName(t *testing.T) {
	tests := []struct {
		font   string
		bold   bool
		italic bool
	}{
		{"Times-Bold", true, false},
		{"Helvetica-BoldOblique", true, true},
		{"Times-Italic", false, true},
		{"Times-Roman", false, false},
	}

	for _, tt := range tests {
		row := []pdf.Text{{S: "x", X: 72, Y: 700, W: 6, Font: tt.font, FontSize: 12}}
		f := buildFragment(row, 1, testPageHeight)
		assert.Equal(t, tt.bold, f.Bold, "font %s", tt.font)
		assert.Equal(t, tt.italic, f.Italic, "font %s", tt.font)
	}
}

func TestBuildFragment_MissingFontSizeFallsBack(t *testing.T) {
	row := []pdf.Text{{S: "scanned", X: 72, Y: 700, W: 40, Font: "Unknown"}}

	f := buildFragment(row, 1, testPageHeight)
	assert.InDelta(t, 12.0, f.Height, 0.01)
}

func TestExtractFragments_EmptyPath(t *testing.T) {
	s := NewSource(100 * 1024 * 1024)

	_, err := s.ExtractFragments(ExtractFragmentsRequest{Path: ""})
	assert.Error(t, err)
}
