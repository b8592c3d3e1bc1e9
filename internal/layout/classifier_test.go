package layout

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPageWidth = 595.0

func newTestClassifier(t *testing.T) *Classifier {
	t.Helper()
	c, warnings := NewClassifier(DefaultDetectionConfig())
	require.Empty(t, warnings)
	return c
}

func bodyFragment(text string, x, y float64) Fragment {
	return Fragment{
		Text:     text,
		Page:     1,
		X:        x,
		Y:        y,
		Width:    200,
		Height:   12,
		FontSize: 11,
	}
}

func TestClassifyAlignment(t *testing.T) {
	c := newTestClassifier(t)

	tests := []struct {
		name     string
		fragment Fragment
		want     Alignment
	}{
		{
			name:     "narrow fragment at left margin",
			fragment: Fragment{Text: "some text", Page: 1, X: 40, Y: 400, Width: 120, Height: 12, FontSize: 11},
			want:     AlignLeft,
		},
		{
			name:     "fragment centered on the page",
			fragment: Fragment{Text: "Versus", Page: 1, X: 270, Y: 400, Width: 55, Height: 12, FontSize: 11},
			want:     AlignCenter,
		},
		{
			name:     "short fragment near the right edge",
			fragment: Fragment{Text: "12.04.2021", Page: 1, X: 470, Y: 400, Width: 90, Height: 12, FontSize: 11},
			want:     AlignRight,
		},
		{
			name:     "full width body line",
			fragment: Fragment{Text: "some long body line", Page: 1, X: 35, Y: 400, Width: 520, Height: 12, FontSize: 11},
			want:     AlignJustified,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cf, warnings := c.Classify(tt.fragment, testPageWidth)
			assert.Empty(t, warnings)
			assert.Equal(t, tt.want, cf.Alignment)
		})
	}
}

func TestClassifyFontTier(t *testing.T) {
	c := newTestClassifier(t)

	tests := []struct {
		name     string
		fontSize float64
		want     FontTier
	}{
		{"title size", 18, TierTitle},
		{"heading size", 14, TierHeading},
		{"subheading size", 12, TierSubheading},
		{"body size", 11, TierBodyText},
		{"small size", 8, TierSmall},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := bodyFragment("mixed case body text", 40, 400)
			f.FontSize = tt.fontSize
			cf, _ := c.Classify(f, testPageWidth)
			assert.Equal(t, tt.want, cf.FontTier)
		})
	}
}

func TestClassifyFontTier_TopMarginPromotion(t *testing.T) {
	c := newTestClassifier(t)

	// All-caps short text inside the top margin is promoted to the title
	// tier even when the extractor reports a small size.
	f := Fragment{Text: "IN THE SUPREME COURT OF INDIA", Page: 1, X: 150, Y: 60, Width: 300, Height: 12, FontSize: 10}
	cf, _ := c.Classify(f, testPageWidth)
	assert.Equal(t, TierTitle, cf.FontTier)

	// The same text below the margin keeps its measured tier.
	f.Y = 400
	cf, _ = c.Classify(f, testPageWidth)
	assert.Equal(t, TierBodyText, cf.FontTier)
}

func TestClassifyRole_ListMarkers(t *testing.T) {
	c := newTestClassifier(t)

	tests := []struct {
		text   string
		marker string
	}{
		{"1. The instant writ petition", "1."},
		{"12.", "12."},
		{"(3) the third ground", "(3)"},
		{"a) first limb", "a)"},
		{"B) second limb", "B)"},
		{"(a) first limb", "(a)"},
		{"iv. fourth point", "iv."},
		{"II. second point", "II."},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			cf, warnings := c.Classify(bodyFragment(tt.text, 72, 300), testPageWidth)
			assert.Empty(t, warnings)
			assert.Equal(t, RoleListMarker, cf.Role)
			assert.Equal(t, tt.marker, cf.Marker)
		})
	}
}

func TestClassifyRole_RomanBeatsPartyName(t *testing.T) {
	c := newTestClassifier(t)

	// "I." is both a roman marker and short all-caps text. The fixed
	// precedence order resolves it as a marker.
	cf, _ := c.Classify(bodyFragment("I.", 72, 300), testPageWidth)
	assert.Equal(t, RoleListMarker, cf.Role)
	assert.Equal(t, "I.", cf.Marker)
}

func TestClassifyRole_Versus(t *testing.T) {
	c := newTestClassifier(t)

	for _, text := range []string{"Versus", "VERSUS", "vs.", "Vs."} {
		cf, _ := c.Classify(bodyFragment(text, 270, 300), testPageWidth)
		assert.Equal(t, RoleVersusMarker, cf.Role, "text %q", text)
	}

	// A bare "v." is a roman list marker first; the marker table takes
	// precedence over the versus tokens.
	cf, _ := c.Classify(bodyFragment("v.", 270, 300), testPageWidth)
	assert.Equal(t, RoleListMarker, cf.Role)

	// Embedded occurrences are not dividers.
	cf, _ = c.Classify(bodyFragment("the State versus the accused", 72, 300), testPageWidth)
	assert.Equal(t, RoleBody, cf.Role)
}

func TestClassifyRole_LegalHeaderAndPartyName(t *testing.T) {
	c := newTestClassifier(t)

	cf, _ := c.Classify(bodyFragment("IN THE SUPREME COURT OF INDIA", 150, 400), testPageWidth)
	assert.Equal(t, RoleLegalHeader, cf.Role)

	cf, _ = c.Classify(bodyFragment("JUDGMENT", 270, 400), testPageWidth)
	assert.Equal(t, RoleLegalHeader, cf.Role)
	assert.True(t, cf.Underlined)

	cf, _ = c.Classify(bodyFragment("RAM KUMAR SHARMA", 72, 400), testPageWidth)
	assert.Equal(t, RolePartyName, cf.Role)
	assert.True(t, cf.Emphasized)

	// All-caps text over the length ceiling is body, not a party name.
	long := "THIS IS A VERY LONG ALL CAPS LINE THAT EXCEEDS THE PARTY NAME LENGTH CEILING ENTIRELY"
	cf, _ = c.Classify(bodyFragment(long, 72, 400), testPageWidth)
	assert.Equal(t, RoleBody, cf.Role)
}

func TestClassifyRole_SectionBoundary(t *testing.T) {
	c := newTestClassifier(t)

	for _, text := range []string{"----Respondents", "...RESPONDENT(S)", "...APPELLANT(S)"} {
		cf, _ := c.Classify(bodyFragment(text, 400, 300), testPageWidth)
		assert.Equal(t, RoleSectionBoundary, cf.Role, "text %q", text)
	}
}

func TestClassify_MalformedGeometry(t *testing.T) {
	c := newTestClassifier(t)

	f := bodyFragment("recoverable text", 72, 300)
	f.X = math.NaN()

	cf, warnings := c.Classify(f, testPageWidth)
	require.Len(t, warnings, 1)
	assert.Equal(t, WarnMalformedFragment, warnings[0].Code)
	assert.Equal(t, RoleBody, cf.Role)
	assert.Equal(t, AlignLeft, cf.Alignment)
	assert.Equal(t, "recoverable text", cf.Text)
}

func TestClassify_AmbiguousMarkerWarning(t *testing.T) {
	cfg := DefaultDetectionConfig()
	cfg.ListMarkerPatterns = []string{`^(\d{1,3}\.)`}
	c, warnings := NewClassifier(cfg)
	require.Empty(t, warnings)

	cf, warnings := c.Classify(bodyFragment("1. duplicated pattern", 72, 300), testPageWidth)
	require.Len(t, warnings, 1)
	assert.Equal(t, WarnAmbiguousMarker, warnings[0].Code)
	// Resolved by precedence, never fatal.
	assert.Equal(t, RoleListMarker, cf.Role)
	assert.Equal(t, "1.", cf.Marker)
}

func TestNewClassifier_InvalidPattern(t *testing.T) {
	cfg := DefaultDetectionConfig()
	cfg.SectionBoundaryPatterns = []string{`([`}

	_, warnings := NewClassifier(cfg)
	require.Len(t, warnings, 1)
	assert.Equal(t, WarnInvalidPattern, warnings[0].Code)
}

func TestClassifyAll_PreservesOrder(t *testing.T) {
	c := newTestClassifier(t)

	fragments := make([]Fragment, 50)
	for i := range fragments {
		fragments[i] = bodyFragment("line", 72, float64(100+i*15))
		fragments[i].Text = "line " + string(rune('a'+i%26))
	}

	classified, warnings, err := c.ClassifyAll(context.Background(), fragments, testPageWidth)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, classified, len(fragments))
	for i := range fragments {
		assert.Equal(t, fragments[i].Text, classified[i].Text)
		assert.Equal(t, fragments[i].Y, classified[i].Y)
	}
}

func TestClassifyAll_Cancelled(t *testing.T) {
	c := newTestClassifier(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fragments := make([]Fragment, 100)
	for i := range fragments {
		fragments[i] = bodyFragment("line", 72, float64(100+i*15))
	}

	_, _, err := c.ClassifyAll(ctx, fragments, testPageWidth)
	assert.ErrorIs(t, err, context.Canceled)
}
