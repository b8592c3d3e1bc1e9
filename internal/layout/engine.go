package layout

import (
	"context"
	"fmt"
	"sort"
)

// Engine runs the full layout reconstruction pipeline for one document:
// reading-order sort, artifact filtering, per-fragment classification,
// list structure detection, merging, section handling and composition.
//
// An Engine is safe for concurrent use; each Reconstruct call owns all of
// its intermediate state, so multiple documents can be processed at once.
type Engine struct {
	cfg        DetectionConfig
	classifier *Classifier
	detector   *ListDetector
	merger     *Merger
	composer   *Composer

	// configWarnings are raised once at construction (e.g. invalid
	// configured patterns) and surfaced on every result.
	configWarnings []Warning
}

// NewEngine creates an engine with the default configuration
func NewEngine() *Engine {
	return NewEngineWithConfig(DefaultDetectionConfig())
}

// NewEngineWithConfig creates an engine with a custom configuration
func NewEngineWithConfig(cfg DetectionConfig) *Engine {
	classifier, warnings := NewClassifier(cfg)
	return &Engine{
		cfg:            cfg,
		classifier:     classifier,
		detector:       NewListDetector(cfg),
		merger:         NewMerger(),
		composer:       NewComposer(),
		configWarnings: warnings,
	}
}

// Reconstruct converts a document's positioned fragments into the final
// paragraph stream. Fragments may arrive in any order; they are sorted
// into reading order first. The returned result always carries the full
// warning list; no anomaly in this pipeline is fatal.
func (e *Engine) Reconstruct(ctx context.Context, fragments []Fragment, pageWidth float64) (*Result, error) {
	warnings := append([]Warning(nil), e.configWarnings...)

	ordered := sortReadingOrder(fragments)

	artifactCount := 0
	if e.cfg.FilterArtifacts {
		var artifactWarnings []Warning
		ordered, artifactWarnings = filterArtifacts(ordered)
		warnings = append(warnings, artifactWarnings...)
		artifactCount = len(artifactWarnings)
	}

	classified, classifyWarnings, err := e.classifier.ClassifyAll(ctx, ordered, pageWidth)
	if err != nil {
		return nil, fmt.Errorf("classification interrupted: %w", err)
	}
	warnings = append(warnings, classifyWarnings...)

	spans, detectWarnings := e.detector.Detect(classified)
	warnings = append(warnings, detectWarnings...)

	tracker := newSectionTracker()
	units := make([]LogicalUnit, 0, len(spans))
	for _, span := range spans {
		continuations := make([]ClassifiedFragment, 0, len(span.continuations))
		for _, idx := range span.continuations {
			continuations = append(continuations, classified[idx])
		}
		unit := e.merger.Merge(classified[span.lead], continuations)
		tracker.apply(&unit)
		units = append(units, unit)
	}

	paragraphs := e.composer.Compose(units)

	return &Result{
		Paragraphs: paragraphs,
		Units:      units,
		Warnings:   warnings,
		Stats:      buildStats(ordered, units, artifactCount),
	}, nil
}

// sortReadingOrder returns the fragments ordered by (page, y, x). The
// sort is stable, so fragments at identical positions keep their original
// extraction order.
func sortReadingOrder(fragments []Fragment) []Fragment {
	ordered := append([]Fragment(nil), fragments...)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.Page != b.Page {
			return a.Page < b.Page
		}
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})
	return ordered
}

// buildStats summarizes a completed run
func buildStats(fragments []Fragment, units []LogicalUnit, artifactCount int) Stats {
	stats := Stats{
		FragmentCount: len(fragments),
		UnitCount:     len(units),
		RolesEmitted:  make(map[Role]int),
		ArtifactCount: artifactCount,
	}

	pages := map[int]bool{}
	for _, f := range fragments {
		pages[f.Page] = true
	}
	stats.PageCount = len(pages)

	for _, u := range units {
		stats.RolesEmitted[u.Role]++
	}
	return stats
}
