package layout

import "strings"

// Merger folds a lead fragment and its continuation run into one
// LogicalUnit. It never reorders and never drops a fragment; the only
// transformation applied to text is whitespace normalization and the
// one-time extraction of the marker literal.
type Merger struct{}

// NewMerger creates a merger
func NewMerger() *Merger {
	return &Merger{}
}

// Merge builds the LogicalUnit for one unit span. The marker is stripped
// from the lead text and retained separately so the writer can emit it
// exactly once, or substitute automatic numbering.
func (m *Merger) Merge(lead ClassifiedFragment, continuations []ClassifiedFragment) LogicalUnit {
	unit := LogicalUnit{
		Lead:          lead,
		Continuations: continuations,
		Role:          lead.Role,
		Alignment:     lead.Alignment,
		Marker:        lead.Marker,
	}

	parts := make([]string, 0, len(continuations)+1)
	leadText := normalizeSpace(lead.Text)
	if unit.Marker != "" {
		leadText = stripMarker(leadText, unit.Marker)
	}
	if leadText != "" {
		parts = append(parts, leadText)
	}
	for _, c := range continuations {
		if t := normalizeSpace(c.Text); t != "" {
			parts = append(parts, t)
		}
	}
	unit.MergedText = strings.Join(parts, " ")

	return unit
}

// normalizeSpace trims the text and collapses internal whitespace runs to
// a single space.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// stripMarker removes the leading marker literal from text. A
// continuation whose text happens to start with a similar token is never
// stripped; only the lead passes through here.
func stripMarker(text, marker string) string {
	if !strings.HasPrefix(text, marker) {
		return text
	}
	return strings.TrimLeft(strings.TrimPrefix(text, marker), " ")
}
