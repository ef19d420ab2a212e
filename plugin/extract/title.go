package extract

import (
	"strings"

	"github.com/speaknote/remind/plugin/nlp"
)

// maxCoreTitleNouns caps the number of nouns joined into the core title.
const maxCoreTitleNouns = 3

// synthesizeTitle builds a human-readable title from the analysis of the
// original-case text. The composition order is fixed: core title, then
// people, then places; it defines the canonical phrasing and must not be
// reordered.
func synthesizeTitle(analysis *nlp.Analysis) (string, Entities) {
	entities := Entities{People: []string{}, Places: []string{}}

	var nouns []string
	for _, tok := range analysis.Tokens {
		if nlp.IsNoun(tok.Tag) {
			nouns = append(nouns, tok.Text)
			if len(nouns) == maxCoreTitleNouns {
				break
			}
		}
	}

	for _, ent := range analysis.Entities {
		switch ent.Label {
		case nlp.LabelPerson:
			entities.People = append(entities.People, ent.Text)
		case nlp.LabelGPE, nlp.LabelLocation:
			entities.Places = append(entities.Places, ent.Text)
		}
	}

	var parts []string
	if len(nouns) > 0 {
		parts = append(parts, strings.Join(nouns, " "))
	}
	if len(entities.People) > 0 {
		parts = append(parts, "with "+strings.Join(entities.People, ", "))
	}
	if len(entities.Places) > 0 {
		parts = append(parts, "at "+strings.Join(entities.Places, ", "))
	}

	if len(parts) == 0 {
		return FallbackTitle, entities
	}
	return strings.Join(parts, " "), entities
}
