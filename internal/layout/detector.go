package layout

import "fmt"

// unitSpan is one logical unit before merging: the index of its lead
// fragment and the indexes of the continuation fragments folded into it.
// Spans partition the classified sequence; every fragment index appears
// in exactly one span.
type unitSpan struct {
	lead          int
	continuations []int
}

// ListDetector walks the ordered classified sequence and determines, for
// each list marker, the maximal contiguous run of continuation lines.
type ListDetector struct {
	cfg DetectionConfig
}

// NewListDetector creates a detector with the given thresholds
func NewListDetector(cfg DetectionConfig) *ListDetector {
	return &ListDetector{cfg: cfg}
}

// Detect partitions the fragment sequence into unit spans. Fragments must
// already be in reading order (page, then y, then x); the continuation
// decision depends on the immediately preceding fragment, so this walk is
// inherently sequential.
func (d *ListDetector) Detect(fragments []ClassifiedFragment) ([]unitSpan, []Warning) {
	var spans []unitSpan
	var warnings []Warning

	i := 0
	for i < len(fragments) {
		if fragments[i].Role != RoleListMarker {
			spans = append(spans, unitSpan{lead: i})
			i++
			continue
		}

		span, next, openAtEnd := d.gatherRun(fragments, i)
		spans = append(spans, span)
		if openAtEnd {
			warnings = append(warnings, Warning{
				Code:    WarnUnterminatedList,
				Message: fmt.Sprintf("list item %q still open at end of document, closing run", fragments[i].Marker),
				Page:    fragments[i].Page,
				Text:    snippet(fragments[i].Text),
			})
		}
		i = next
	}

	return spans, warnings
}

// gatherRun collects the continuation run for the marker at index lead.
// It returns the span, the index of the first fragment after the run, and
// whether the run was closed by end-of-document rather than a terminating
// fragment.
func (d *ListDetector) gatherRun(fragments []ClassifiedFragment, lead int) (unitSpan, int, bool) {
	marker := fragments[lead]
	span := unitSpan{lead: lead}

	prev := marker.Fragment
	j := lead + 1
	for ; j < len(fragments); j++ {
		cand := fragments[j]

		// Any non-body role terminates the run: a continuation can never
		// itself be a marker, header or section boundary.
		if cand.Role != RoleBody {
			return span, j, false
		}

		if cand.Page == prev.Page {
			if !d.samePageContinues(marker.Fragment, prev, cand.Fragment) {
				return span, j, false
			}
		} else if cand.Page == prev.Page+1 {
			// The run was still open at the last fragment of the page.
			// Page margins reset across the break, so the indent and gap
			// rules are not comparable here; only the role boundary
			// conditions apply to the first candidate of the new page.
		} else {
			return span, j, false
		}

		span.continuations = append(span.continuations, j)
		prev = cand.Fragment
	}

	return span, j, true
}

// samePageContinues applies the geometric continuation test for a
// candidate on the same page as the previous consumed fragment: strictly
// below the marker, within the line gap, and indented past the marker.
// Flush-left text is a new paragraph, not a continuation.
func (d *ListDetector) samePageContinues(marker, prev, cand Fragment) bool {
	if marker.Page == cand.Page && cand.Y <= marker.Y {
		return false
	}
	if cand.Y-prev.Bottom() > d.cfg.MaxLineGapPt {
		return false
	}
	if marker.Page == cand.Page && cand.X <= marker.X+d.cfg.IndentThresholdPt {
		return false
	}
	return true
}
