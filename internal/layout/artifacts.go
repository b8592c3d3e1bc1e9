package layout

import "strings"

// pageFrequencyThreshold returns the minimum number of pages a top or
// bottom line must repeat on before it is treated as a running header or
// footer. Mirrors the 60% rule used when tuning against judgment scans.
func pageFrequencyThreshold(pageCount int) int {
	t := (pageCount*6 + 9) / 10
	if t < 2 {
		t = 2
	}
	return t
}

// filterArtifacts removes page furniture before classification: running
// headers and footers repeated across pages, standalone page numbers and
// scan watermarks. Fragments must already be in reading order. Every
// removal is reported so content accounting stays auditable.
func filterArtifacts(fragments []Fragment) ([]Fragment, []Warning) {
	if len(fragments) == 0 {
		return fragments, nil
	}

	repeated := repeatedEdgeLines(fragments)

	kept := make([]Fragment, 0, len(fragments))
	var warnings []Warning
	for _, f := range fragments {
		text := strings.TrimSpace(f.Text)
		var reason string
		switch {
		case text == "":
			// Empty spans carry no content; drop silently.
			continue
		case repeated[text]:
			reason = "repeated page header/footer"
		case isPageNumber(text):
			reason = "page number"
		case isWatermark(text):
			reason = "watermark"
		default:
			kept = append(kept, f)
			continue
		}
		warnings = append(warnings, Warning{
			Code:    WarnArtifactRemoved,
			Message: "removed " + reason,
			Page:    f.Page,
			Text:    snippet(text),
		})
	}

	return kept, warnings
}

// repeatedEdgeLines finds the first and last fragment text of each page
// and returns the texts that repeat on enough pages to count as running
// headers or footers.
func repeatedEdgeLines(fragments []Fragment) map[string]bool {
	firstByPage := map[int]string{}
	lastByPage := map[int]string{}
	for _, f := range fragments {
		text := strings.TrimSpace(f.Text)
		if text == "" {
			continue
		}
		if _, seen := firstByPage[f.Page]; !seen {
			firstByPage[f.Page] = text
		}
		lastByPage[f.Page] = text
	}

	counts := map[string]int{}
	for _, text := range firstByPage {
		counts[text]++
	}
	for page, text := range lastByPage {
		if firstByPage[page] != text {
			counts[text]++
		}
	}

	threshold := pageFrequencyThreshold(len(firstByPage))
	repeated := map[string]bool{}
	for text, n := range counts {
		if n >= threshold {
			repeated[text] = true
		}
	}
	return repeated
}
