// Package extract turns noisy natural-language input (imperfect
// transcriptions, OCR artifacts, informal phrasing) into a normalized
// scheduling result: suggested title, detected date and time, bounded
// confidence, and named entities.
//
// The pipeline is a pure, synchronous-per-request computation with no
// shared mutable state: each call builds its own candidate lists and
// returns a fresh result, so an Extractor may be used concurrently as
// long as its injected capabilities are.
package extract

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/speaknote/remind/plugin/flexdate"
	"github.com/speaknote/remind/plugin/nlp"
	"github.com/speaknote/remind/server/timezone"
)

// Extractor runs the scheduling-information extraction pipeline. The
// capabilities are injected at construction time and shared read-only
// across requests.
type Extractor struct {
	analyzer     nlp.Analyzer
	dates        flexdate.Parser
	fallbackZone *time.Location
	now          func() time.Time
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithFallbackZone sets the zone used when a request carries no valid
// timezone hint. Defaults to the host's local timezone.
func WithFallbackZone(loc *time.Location) Option {
	return func(e *Extractor) {
		e.fallbackZone = loc
	}
}

// WithNow overrides the anchor clock. Used by tests to fix "now".
func WithNow(now func() time.Time) Option {
	return func(e *Extractor) {
		e.now = now
	}
}

// New creates a new Extractor with the given capabilities.
func New(analyzer nlp.Analyzer, dates flexdate.Parser, opts ...Option) *Extractor {
	e := &Extractor{
		analyzer: analyzer,
		dates:    dates,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract runs the pipeline over one request. It never returns an error
// and never panics: capability failures and internal faults degrade to
// a zero-confidence result carrying a diagnostic message.
func (e *Extractor) Extract(ctx context.Context, req Request) (result *SchedulingResult) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("extraction panicked", "recover", fmt.Sprint(r))
			result = degraded(fmt.Sprintf("extraction failed: %v", r))
		}
	}()

	loc := timezone.Resolve(req.TimezoneHint, e.fallbackZone)
	anchor := e.now().In(loc)

	normalized := normalize(req.Text)

	dateCandidates := e.extractDates(normalized, anchor, loc)
	timeCandidates := extractTimes(normalized)

	// Entity extraction runs over the original-case text: proper-noun
	// recognition relies on capitalization the normalizer strips.
	analysis, err := e.analyzer.Analyze(ctx, req.Text)
	if err != nil {
		slog.Warn("text analysis failed, returning degraded result", "error", err)
		return degraded(fmt.Sprintf("text analysis failed: %v", err))
	}

	title, entities := synthesizeTitle(analysis)

	result = &SchedulingResult{
		SuggestedTitle: title,
		Entities:       entities,
	}

	confidence := 0.0
	if len(dateCandidates) > 0 {
		head := dateCandidates[0].Resolved
		result.DetectedDate = &head
		confidence += dateWeight
	}
	if len(timeCandidates) > 0 {
		head := timeCandidates[0].MatchedText
		result.DetectedTime = &head
		confidence += timeWeight
	}
	if result.DetectedDate != nil && result.DetectedTime != nil {
		confidence += jointBonus
	}
	result.Confidence = clamp(confidence)

	return result
}

// clamp bounds confidence to [0, 1].
func clamp(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > maxConfidence {
		return maxConfidence
	}
	return c
}
