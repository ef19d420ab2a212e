package extract

import (
	"regexp"
	"sort"
	"time"
)

// absoluteDatePattern matches numeric dates like 12/25/2024 or 5-6-24.
var absoluteDatePattern = regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`)

// DateSource identifies which pass produced a candidate.
type DateSource int

const (
	// SourceAbsolute marks candidates from the numeric-date pass.
	SourceAbsolute DateSource = iota
	// SourceRelative marks candidates from the relative-phrase pass.
	SourceRelative
)

// DateCandidate is a tentative date match before final selection.
type DateCandidate struct {
	MatchedText string
	Resolved    time.Time
	Span        [2]int
	Source      DateSource
}

// relativeRule maps a whole-word phrase to a day offset from the anchor.
type relativeRule struct {
	phrase  string
	pattern *regexp.Regexp
	days    int
}

// relativeRules is the fixed relative-date vocabulary. Dictation and OCR
// output are noisy, so common misspellings of "tomorrow" are tolerated;
// this meaningfully improves recall for voice input without a full
// fuzzy-matching engine. A trailing period after a phrase is tolerated
// because the word-boundary match stops before punctuation.
//
// "next month" stays at +30 days (calendar-naive). True month arithmetic
// would shift dates clients already rely on; see DESIGN.md.
var relativeRules = buildRelativeRules([]struct {
	phrase string
	days   int
}{
	{"today", 0},
	{"tomorrow", 1},
	{"tommorow", 1},
	{"tomorow", 1},
	{"tomoroww", 1},
	{"tommorrow", 1},
	{"tmrw", 1},
	{"tmr", 1},
	{"tmorrow", 1},
	{"yesterday", -1},
	{"yesturday", -1},
	{"next week", 7},
	{"next month", 30},
})

func buildRelativeRules(entries []struct {
	phrase string
	days   int
}) []relativeRule {
	rules := make([]relativeRule, 0, len(entries))
	for _, e := range entries {
		rules = append(rules, relativeRule{
			phrase:  e.phrase,
			pattern: regexp.MustCompile(`\b` + regexp.QuoteMeta(e.phrase) + `\b`),
			days:    e.days,
		})
	}
	return rules
}

// extractDates runs the absolute and relative passes over the
// normalized text and returns one explicitly ranked candidate list.
func (e *Extractor) extractDates(normalized string, anchor time.Time, loc *time.Location) []DateCandidate {
	var candidates []DateCandidate

	// Absolute pass: numeric dates handed to the flexible date parser.
	// Unparsable matches are silently dropped, not raised.
	for _, span := range absoluteDatePattern.FindAllStringIndex(normalized, -1) {
		matched := normalized[span[0]:span[1]]
		resolved, ok := e.dates.Parse(matched, anchor, loc)
		if !ok {
			continue
		}
		candidates = append(candidates, DateCandidate{
			MatchedText: matched,
			Resolved:    resolved,
			Span:        [2]int{span[0], span[1]},
			Source:      SourceAbsolute,
		})
	}

	// Relative pass: whole-word vocabulary matches offset from the anchor.
	for _, rule := range relativeRules {
		for _, span := range rule.pattern.FindAllStringIndex(normalized, -1) {
			candidates = append(candidates, DateCandidate{
				MatchedText: rule.phrase,
				Resolved:    anchor.AddDate(0, 0, rule.days),
				Span:        [2]int{span[0], span[1]},
				Source:      SourceRelative,
			})
		}
	}

	rankDateCandidates(candidates)
	return candidates
}

// rankDateCandidates orders the merged candidate list by the selection
// policy, which is explicit rather than an artifact of scan order:
//
//  1. absolute-pass candidates outrank relative-pass candidates, so a
//     concrete written date beats a vague phrase anywhere in the text;
//  2. within the same source class, the earliest text offset wins.
//
// The aggregator takes the head of this list as "the" detected date.
func rankDateCandidates(candidates []DateCandidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Source != candidates[j].Source {
			return candidates[i].Source < candidates[j].Source
		}
		return candidates[i].Span[0] < candidates[j].Span[0]
	})
}
