package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// classify is a test helper that runs the classifier over fragments
// already in reading order.
func classify(t *testing.T, fragments []Fragment) []ClassifiedFragment {
	t.Helper()
	c := newTestClassifier(t)

	classified := make([]ClassifiedFragment, len(fragments))
	for i, f := range fragments {
		cf, _ := c.Classify(f, testPageWidth)
		classified[i] = cf
	}
	return classified
}

func TestDetect_MarkerWithIndentedContinuation(t *testing.T) {
	d := NewListDetector(DefaultDetectionConfig())

	classified := classify(t, []Fragment{
		{Text: "1.", Page: 1, X: 72, Y: 100, Width: 10, Height: 12, FontSize: 11},
		{Text: "The instant writ petition has been filed against the impugned", Page: 1, X: 100, Y: 114, Width: 300, Height: 12, FontSize: 11},
	})

	spans, warnings := d.Detect(classified)
	require.Len(t, spans, 1)
	assert.Equal(t, 0, spans[0].lead)
	assert.Equal(t, []int{1}, spans[0].continuations)

	// The run was closed by end-of-document.
	require.Len(t, warnings, 1)
	assert.Equal(t, WarnUnterminatedList, warnings[0].Code)
}

func TestDetect_FlushLeftIsNewParagraph(t *testing.T) {
	d := NewListDetector(DefaultDetectionConfig())

	classified := classify(t, []Fragment{
		{Text: "1.", Page: 1, X: 72, Y: 100, Width: 10, Height: 12, FontSize: 11},
		{Text: "flush left text starts a new paragraph", Page: 1, X: 72, Y: 114, Width: 300, Height: 12, FontSize: 11},
	})

	spans, _ := d.Detect(classified)
	require.Len(t, spans, 2)
	assert.Empty(t, spans[0].continuations)
	assert.Equal(t, 1, spans[1].lead)
}

func TestDetect_LargeGapTerminatesRun(t *testing.T) {
	d := NewListDetector(DefaultDetectionConfig())

	classified := classify(t, []Fragment{
		{Text: "1.", Page: 1, X: 72, Y: 100, Width: 10, Height: 12, FontSize: 11},
		{Text: "a distant indented paragraph", Page: 1, X: 100, Y: 200, Width: 300, Height: 12, FontSize: 11},
	})

	spans, _ := d.Detect(classified)
	require.Len(t, spans, 2)
	assert.Empty(t, spans[0].continuations)
}

func TestDetect_RunTerminatesAtNextMarker(t *testing.T) {
	d := NewListDetector(DefaultDetectionConfig())

	classified := classify(t, []Fragment{
		{Text: "1. first ground of appeal", Page: 1, X: 72, Y: 100, Width: 250, Height: 12, FontSize: 11},
		{Text: "continued reasoning of the first ground", Page: 1, X: 100, Y: 114, Width: 250, Height: 12, FontSize: 11},
		{Text: "2. second ground of appeal", Page: 1, X: 72, Y: 128, Width: 250, Height: 12, FontSize: 11},
	})

	spans, _ := d.Detect(classified)
	require.Len(t, spans, 2)
	assert.Equal(t, []int{1}, spans[0].continuations)
	assert.Equal(t, 2, spans[1].lead)
	assert.Empty(t, spans[1].continuations)
}

func TestDetect_RunTerminatesAtVersusAndBoundary(t *testing.T) {
	d := NewListDetector(DefaultDetectionConfig())

	classified := classify(t, []Fragment{
		{Text: "1. appellant name", Page: 1, X: 72, Y: 100, Width: 200, Height: 12, FontSize: 11},
		{Text: "Versus", Page: 1, X: 270, Y: 114, Width: 55, Height: 12, FontSize: 11},
		{Text: "1. respondent name", Page: 1, X: 72, Y: 128, Width: 200, Height: 12, FontSize: 11},
		{Text: "----Respondents", Page: 1, X: 380, Y: 142, Width: 120, Height: 12, FontSize: 11},
	})

	spans, _ := d.Detect(classified)
	require.Len(t, spans, 4)
	for _, span := range spans {
		assert.Empty(t, span.continuations)
	}
}

func TestDetect_CrossPageContinuation(t *testing.T) {
	d := NewListDetector(DefaultDetectionConfig())

	// The list item opens on the last line of page 1; its continuation is
	// the first fragment of page 2 with zero indent offset. Indentation
	// is not comparable across a page break, so the relaxed rule merges
	// them anyway.
	classified := classify(t, []Fragment{
		{Text: "3. The learned counsel submitted that the order", Page: 1, X: 72, Y: 760, Width: 400, Height: 12, FontSize: 11},
		{Text: "deserves to be set aside on the grounds stated above.", Page: 2, X: 72, Y: 80, Width: 400, Height: 12, FontSize: 11},
	})

	spans, _ := d.Detect(classified)
	require.Len(t, spans, 1)
	assert.Equal(t, []int{1}, spans[0].continuations)
}

func TestDetect_CrossPageStopsAtNonBodyRole(t *testing.T) {
	d := NewListDetector(DefaultDetectionConfig())

	classified := classify(t, []Fragment{
		{Text: "3. The learned counsel submitted that the order", Page: 1, X: 72, Y: 760, Width: 400, Height: 12, FontSize: 11},
		{Text: "4. The next ground of appeal", Page: 2, X: 72, Y: 80, Width: 400, Height: 12, FontSize: 11},
	})

	spans, _ := d.Detect(classified)
	require.Len(t, spans, 2)
	assert.Empty(t, spans[0].continuations)
	assert.Equal(t, 1, spans[1].lead)
}

func TestDetect_NonMarkerFragmentsAreSingletons(t *testing.T) {
	d := NewListDetector(DefaultDetectionConfig())

	classified := classify(t, []Fragment{
		{Text: "IN THE SUPREME COURT OF INDIA", Page: 1, X: 150, Y: 60, Width: 300, Height: 14, FontSize: 14},
		{Text: "plain body paragraph", Page: 1, X: 72, Y: 100, Width: 300, Height: 12, FontSize: 11},
	})

	spans, warnings := d.Detect(classified)
	require.Len(t, spans, 2)
	assert.Empty(t, warnings)
	assert.Empty(t, spans[0].continuations)
	assert.Empty(t, spans[1].continuations)
}
