package layout

import (
	"regexp"
	"strings"
	"unicode"
)

// markerPattern is one entry in the ordered list-marker table. The order
// of the built-in table is load-bearing: it is the precedence used to
// resolve fragments matching more than one pattern, and it keeps roman
// numerals and letters from being swallowed by the party-name heuristic.
type markerPattern struct {
	name string
	re   *regexp.Regexp
}

var builtinMarkerPatterns = []markerPattern{
	{name: "arabic_dot", re: regexp.MustCompile(`^(\d{1,3}\.)(\s|$)`)},
	{name: "arabic_paren", re: regexp.MustCompile(`^(\(\d{1,3}\))(\s|$)`)},
	{name: "letter_paren_lower", re: regexp.MustCompile(`^([a-z]\))(\s|$)`)},
	{name: "letter_paren_upper", re: regexp.MustCompile(`^([A-Z]\))(\s|$)`)},
	{name: "paren_letter_lower", re: regexp.MustCompile(`^(\([a-z]\))(\s|$)`)},
	{name: "paren_letter_upper", re: regexp.MustCompile(`^(\([A-Z]\))(\s|$)`)},
	{name: "roman_dot_lower", re: regexp.MustCompile(`^([ivx]+\.)(\s|$)`)},
	{name: "roman_dot_upper", re: regexp.MustCompile(`^([IVX]+\.)(\s|$)`)},
}

// versusRe matches standalone versus divider tokens
var versusRe = regexp.MustCompile(`(?i)^(versus|vs\.|v\.)$`)

// legalHeaderRes matches court, jurisdiction and document-type headers
// common to Indian judgments and orders.
var legalHeaderRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)IN\s+THE\s+SUPREME\s+COURT\s+OF\s+INDIA`),
	regexp.MustCompile(`(?i)IN\s+THE\s+HIGH\s+COURT\s+OF\s+[A-Z\s]+`),
	regexp.MustCompile(`(?i)CRIMINAL\s+APPEAL\s+NO\.`),
	regexp.MustCompile(`(?i)CIVIL\s+APPEAL\s+NO\.`),
	regexp.MustCompile(`(?i)CRIMINAL\s+APPELLATE\s+JURISDICTION`),
	regexp.MustCompile(`(?i)CIVIL\s+APPELLATE\s+JURISDICTION`),
	regexp.MustCompile(`(?i)^S\.B\.\s+(CIVIL|CRIMINAL)\s+WRIT\s+PETITION`),
	regexp.MustCompile(`(?i)^(JUDGMENT|ORDER|REPORTABLE)$`),
}

// builtinBoundaryPatterns end an enumerated party list
var builtinBoundaryPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)----\s*RESPONDENTS?`),
	regexp.MustCompile(`(?i)\.\.\.\s*RESPONDENT\(S\)`),
	regexp.MustCompile(`(?i)\.\.\.\s*APPELLANT\(S\)`),
	regexp.MustCompile(`(?i)^RESPONDENT\(S\)$`),
}

// pageNumberRes matches standalone page numbering artifacts
var pageNumberRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^page\s*no\.?\s*\d+$`),
	regexp.MustCompile(`(?i)^page\s*\d+$`),
	regexp.MustCompile(`^\d+\s*of\s*\d+$`),
	regexp.MustCompile(`^\(\d+\s*of\s*\d+\)$`),
	regexp.MustCompile(`^\d+$`),
}

// watermarkRes matches scan watermarks that carry no content
var watermarkRes = []*regexp.Regexp{
	regexp.MustCompile(`^CONFIDENTIAL$`),
	regexp.MustCompile(`^DRAFT$`),
	regexp.MustCompile(`^COPY$`),
	regexp.MustCompile(`^SCANNED(\s+COPY)?$`),
	regexp.MustCompile(`^DIGITAL\s*COPY$`),
	regexp.MustCompile(`^ORIGINAL$`),
}

// caseNumberRe flags case references that get emphasized output
var caseNumberRe = regexp.MustCompile(`(?i)(NO\.|CASE|APPEAL|PETITION)`)

// underlineRes matches text the original formatting underlines
var underlineRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)NO\.\s*_+\s*OF\s*\d+`),
	regexp.MustCompile(`(?i)CRIMINAL\s+APPEAL\s+NO\.`),
}

// ruleSet holds the compiled pattern tables for one engine instance.
// User-supplied patterns from DetectionConfig extend, never reorder, the
// built-in tables.
type ruleSet struct {
	markers    []markerPattern
	boundaries []*regexp.Regexp
}

// newRuleSet compiles the pattern tables, appending any configured
// extensions after the built-ins. Invalid extension patterns are skipped
// and reported to the caller.
func newRuleSet(cfg DetectionConfig) (*ruleSet, []Warning) {
	rs := &ruleSet{
		markers:    append([]markerPattern(nil), builtinMarkerPatterns...),
		boundaries: append([]*regexp.Regexp(nil), builtinBoundaryPatterns...),
	}

	var warnings []Warning
	for _, p := range cfg.ListMarkerPatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			warnings = append(warnings, Warning{
				Code:    WarnInvalidPattern,
				Message: "skipping invalid list marker pattern: " + err.Error(),
				Text:    p,
			})
			continue
		}
		rs.markers = append(rs.markers, markerPattern{name: "custom", re: re})
	}
	for _, p := range cfg.SectionBoundaryPatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			warnings = append(warnings, Warning{
				Code:    WarnInvalidPattern,
				Message: "skipping invalid section boundary pattern: " + err.Error(),
				Text:    p,
			})
			continue
		}
		rs.boundaries = append(rs.boundaries, re)
	}

	return rs, warnings
}

// matchMarker returns the literal marker matched by the first pattern in
// the table, plus the number of patterns that matched. More than one
// match is resolved by table order, never an error.
func (rs *ruleSet) matchMarker(text string) (literal string, matches int) {
	trimmed := strings.TrimSpace(text)
	for _, mp := range rs.markers {
		if m := mp.re.FindStringSubmatch(trimmed); m != nil {
			if literal == "" {
				literal = m[1]
			}
			matches++
		}
	}
	return literal, matches
}

// isVersus reports whether text is a standalone versus divider
func isVersus(text string) bool {
	return versusRe.MatchString(strings.TrimSpace(text))
}

// isLegalHeader reports whether text matches a known court, jurisdiction
// or document-type header.
func isLegalHeader(text string) bool {
	t := strings.TrimSpace(text)
	for _, re := range legalHeaderRes {
		if re.MatchString(t) {
			return true
		}
	}
	return false
}

// isSectionBoundary reports whether text ends an enumerated party list
func (rs *ruleSet) isSectionBoundary(text string) bool {
	t := strings.TrimSpace(text)
	for _, re := range rs.boundaries {
		if re.MatchString(t) {
			return true
		}
	}
	return false
}

// isPageNumber reports whether text is a page numbering artifact
func isPageNumber(text string) bool {
	t := strings.TrimSpace(text)
	if t == "" {
		return false
	}
	for _, re := range pageNumberRes {
		if re.MatchString(t) {
			return true
		}
	}
	return false
}

// isWatermark reports whether text is a scan watermark
func isWatermark(text string) bool {
	t := strings.ToUpper(strings.TrimSpace(text))
	for _, re := range watermarkRes {
		if re.MatchString(t) {
			return true
		}
	}
	return false
}

// isAllCaps reports whether text contains at least one letter and no
// lowercase letters.
func isAllCaps(text string) bool {
	hasLetter := false
	for _, r := range text {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}

// shouldEmphasize reports whether text gets bold output: titles, legal
// headers, case references and party names in the source are set bold.
func shouldEmphasize(text string, maxPartyLen int) bool {
	t := strings.TrimSpace(text)
	if isAllCaps(t) && len(t) < 100 {
		return true
	}
	if isLegalHeader(t) {
		return true
	}
	if caseNumberRe.MatchString(t) {
		return true
	}
	return isAllCaps(t) && len(t) < maxPartyLen
}

// shouldUnderline reports whether text gets underlined output
func shouldUnderline(text string) bool {
	t := strings.ToUpper(strings.TrimSpace(text))
	if t == "JUDGMENT" || t == "ORDER" || t == "REPORTABLE" {
		return true
	}
	for _, re := range underlineRes {
		if re.MatchString(t) {
			return true
		}
	}
	return false
}
