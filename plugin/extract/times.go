package extract

import "regexp"

// timePatterns are scanned in table order over the normalized text.
// Matches are collected pattern by pattern, text order within a pattern;
// the first candidate's raw text becomes detected_time. No normalization
// to a 24-hour clock is performed: the raw matched text is carried
// forward as-is.
var timePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b\d{1,2}:\d{2}\s*(?:am|pm)?\b`),
	regexp.MustCompile(`\b\d{1,2}\s*(?:am|pm)\b`),
	regexp.MustCompile(`\b(?:morning|afternoon|evening|night|noon|midnight)\b`),
}

// TimeCandidate is a tentative time match before final selection.
// Unlike dates, the match is not resolved to a structured clock value.
type TimeCandidate struct {
	MatchedText string
	Span        [2]int
}

// extractTimes collects all time matches across all patterns.
func extractTimes(normalized string) []TimeCandidate {
	var candidates []TimeCandidate
	for _, pattern := range timePatterns {
		for _, span := range pattern.FindAllStringIndex(normalized, -1) {
			candidates = append(candidates, TimeCandidate{
				MatchedText: normalized[span[0]:span[1]],
				Span:        [2]int{span[0], span[1]},
			})
		}
	}
	return candidates
}
