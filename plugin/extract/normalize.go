package extract

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// normalize produces the lower-cased search copy of the input used by
// the date and time passes. The original-case text is kept separately
// for entity extraction, since proper-noun recognition relies on
// capitalization. Always succeeds, including for empty strings.
func normalize(s string) string {
	return strings.ToLower(norm.NFKC.String(s))
}
