package layout

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Classifier derives alignment, font tier, emphasis and a structural role
// for individual fragments. Classification is a pure function of the
// fragment, the page width and the configured thresholds, which is what
// makes ClassifyAll safe to parallelize.
type Classifier struct {
	cfg   DetectionConfig
	rules *ruleSet
}

// NewClassifier creates a classifier for the given configuration. Invalid
// configured patterns are skipped and reported in the returned warnings.
func NewClassifier(cfg DetectionConfig) (*Classifier, []Warning) {
	rules, warnings := newRuleSet(cfg)
	return &Classifier{cfg: cfg, rules: rules}, warnings
}

// Classify produces a ClassifiedFragment for one fragment. A fragment
// with unusable geometry degrades to left-aligned body text and a
// warning; it is never dropped.
func (c *Classifier) Classify(f Fragment, pageWidth float64) (ClassifiedFragment, []Warning) {
	cf := ClassifiedFragment{
		Fragment:  f,
		Alignment: AlignLeft,
		Role:      RoleBody,
		FontTier:  TierBodyText,
	}

	var warnings []Warning
	if !hasFiniteGeometry(f) || pageWidth <= 0 {
		warnings = append(warnings, Warning{
			Code:    WarnMalformedFragment,
			Message: "fragment has missing or non-finite geometry, defaulting to left-aligned body",
			Page:    f.Page,
			Text:    snippet(f.Text),
		})
		return cf, warnings
	}

	cf.Alignment = c.classifyAlignment(f, pageWidth)
	cf.FontTier = c.classifyFontTier(f)
	cf.Role, cf.Marker, warnings = c.classifyRole(f, warnings)
	cf.Emphasized = shouldEmphasize(f.Text, c.cfg.PartyNameMaxLen)
	cf.Underlined = shouldUnderline(f.Text)

	return cf, warnings
}

// classifyAlignment derives alignment from the fragment position relative
// to the page. Justified wins over centered so that full-width body lines
// whose center happens to sit near the page center are not misread as
// headings.
func (c *Classifier) classifyAlignment(f Fragment, pageWidth float64) Alignment {
	if f.Width > pageWidth*c.cfg.JustifiedWidthRatio {
		return AlignJustified
	}

	pageCenter := pageWidth / 2
	tolerance := pageWidth * c.cfg.CenterTolerancePercent / 100

	if math.Abs(f.CenterX()-pageCenter) < tolerance {
		return AlignCenter
	}
	if f.X+f.Width > pageCenter+tolerance && f.Width < pageWidth/2 {
		return AlignRight
	}
	return AlignLeft
}

// classifyFontTier maps the measured font size onto an ordered tier
// table. Short all-caps text in the top page margin is promoted to the
// title tier regardless of measured size; scanned sources frequently
// report wrong sizes for the court name line.
func (c *Classifier) classifyFontTier(f Fragment) FontTier {
	text := strings.TrimSpace(f.Text)
	if isAllCaps(text) && len(text) < 100 && f.Y < c.cfg.TitleMarginPt {
		return TierTitle
	}

	switch {
	case f.FontSize >= 16:
		return TierTitle
	case f.FontSize >= 14:
		return TierHeading
	case f.FontSize >= 12:
		return TierSubheading
	case f.FontSize >= 10:
		return TierBodyText
	default:
		return TierSmall
	}
}

// classifyRole evaluates the fixed-precedence role table: list markers,
// versus tokens, legal headers, then the party-name heuristic. The order
// must not change; reordering lets short roman markers and versus tokens
// be swallowed by the party-name rule.
func (c *Classifier) classifyRole(f Fragment, warnings []Warning) (Role, string, []Warning) {
	text := strings.TrimSpace(f.Text)

	if literal, matches := c.rules.matchMarker(text); matches > 0 {
		if matches > 1 {
			warnings = append(warnings, Warning{
				Code:    WarnAmbiguousMarker,
				Message: fmt.Sprintf("fragment matches %d marker patterns, using first by precedence", matches),
				Page:    f.Page,
				Text:    snippet(text),
			})
		}
		return RoleListMarker, literal, warnings
	}

	if isVersus(text) {
		return RoleVersusMarker, "", warnings
	}
	if c.rules.isSectionBoundary(text) {
		return RoleSectionBoundary, "", warnings
	}
	if isLegalHeader(text) {
		return RoleLegalHeader, "", warnings
	}
	if isAllCaps(text) && len(text) < c.cfg.PartyNameMaxLen {
		return RolePartyName, "", warnings
	}
	return RoleBody, "", warnings
}

// ClassifyAll classifies a fragment sequence, fanning out across workers
// and re-joining results in the original order. The detector and merger
// downstream are strictly ordered consumers, so output index i always
// corresponds to input index i.
func (c *Classifier) ClassifyAll(ctx context.Context, fragments []Fragment, pageWidth float64) ([]ClassifiedFragment, []Warning, error) {
	classified := make([]ClassifiedFragment, len(fragments))
	perFragment := make([][]Warning, len(fragments))

	workers := c.cfg.ClassifyWorkers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range fragments {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			classified[i], perFragment[i] = c.Classify(fragments[i], pageWidth)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var warnings []Warning
	for _, w := range perFragment {
		warnings = append(warnings, w...)
	}
	return classified, warnings, nil
}

// hasFiniteGeometry checks the numeric fields a classification depends on
func hasFiniteGeometry(f Fragment) bool {
	for _, v := range []float64{f.X, f.Y, f.Width, f.Height, f.FontSize} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return f.Width >= 0 && f.Height >= 0
}

// snippet truncates text for warning payloads
func snippet(text string) string {
	const maxLen = 60
	if len(text) <= maxLen {
		return text
	}
	return text[:maxLen] + "..."
}
