package extract

import "time"

// Request is the immutable input to one extraction call.
type Request struct {
	// Text is the raw input text (transcript, OCR output, or typed text).
	Text string
	// TimezoneHint is an optional IANA zone identifier supplied by the
	// caller. Invalid hints degrade silently to the configured fallback.
	TimezoneHint string
}

// Entities holds the named entities recognized in the source text,
// in order of appearance.
type Entities struct {
	People []string `json:"people"`
	Places []string `json:"places"`
}

// SchedulingResult is the sole output of the extraction pipeline. It is
// produced fresh per request and never mutated after construction. The
// JSON field set is the wire contract consumed by the API and storage
// layers.
type SchedulingResult struct {
	SuggestedTitle string     `json:"suggested_title"`
	DetectedDate   *time.Time `json:"detected_date"`
	DetectedTime   *string    `json:"detected_time"`
	Confidence     float64    `json:"confidence"`
	Entities       Entities   `json:"entities"`
	// Diagnostic carries the failure message on the degraded path.
	// Empty on success.
	Diagnostic string `json:"diagnostic,omitempty"`
}

// FallbackTitle is used when no nouns, people, or places were found.
const FallbackTitle = "Reminder"

// Confidence contributions. A found date and a found time each
// contribute once, regardless of how many candidates matched.
const (
	dateWeight    = 0.5
	timeWeight    = 0.3
	jointBonus    = 0.2
	maxConfidence = 1.0
)

// degraded builds the zero-confidence result for the failure path: all
// detection fields absent, diagnostic attached. The caller never sees a
// hard failure for malformed input.
func degraded(diagnostic string) *SchedulingResult {
	return &SchedulingResult{
		SuggestedTitle: FallbackTitle,
		Confidence:     0.0,
		Entities:       Entities{People: []string{}, Places: []string{}},
		Diagnostic:     diagnostic,
	}
}
