// Package flexdate provides tolerant parsing of date strings found in
// noisy input. Unparsable strings yield a no-parse result, never an error:
// dropped candidates are the expected outcome for OCR artifacts.
package flexdate

import (
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	naturaldate "github.com/tj/go-naturaldate"
)

// dashNumericDate matches day-or-month-first numeric dates written with
// dashes, like 5-6-2025 or 25-12-26. Dateparse reads a leading dash
// group as a year, so these are rewritten with slashes before parsing.
// ISO dates (2025-01-31) keep their four-digit year first and do not
// match.
var dashNumericDate = regexp.MustCompile(`^\d{1,2}-\d{1,2}-\d{2,4}$`)

// Parser resolves a date string to a concrete instant.
type Parser interface {
	// Parse attempts to resolve input to a date anchored in loc. The
	// reference instant supplies the base for expressions that need one.
	// Returns false when no parse is possible.
	Parse(input string, ref time.Time, loc *time.Location) (time.Time, bool)
}

// Service implements Parser with a numeric-format pass followed by a
// natural-language pass.
type Service struct{}

// NewService creates a new flexible date parser.
func NewService() *Service {
	return &Service{}
}

// Parse resolves input to a date. Ambiguous day/month ordering is
// tolerated: when the month-first reading is impossible (e.g. 23/04/2024)
// the fields are swapped instead of failing.
func (s *Service) Parse(input string, ref time.Time, loc *time.Location) (time.Time, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}

	if dashNumericDate.MatchString(input) {
		input = strings.ReplaceAll(input, "-", "/")
	}

	if t, err := dateparse.ParseIn(input, loc, dateparse.RetryAmbiguousDateWithSwap(true)); err == nil {
		return t, true
	}

	if t, err := naturaldate.Parse(input, ref.In(loc), naturaldate.WithDirection(naturaldate.Future)); err == nil {
		return t, true
	}

	return time.Time{}, false
}
