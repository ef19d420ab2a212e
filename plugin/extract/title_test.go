package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/speaknote/remind/plugin/nlp"
)

func TestSynthesizeTitle(t *testing.T) {
	tests := []struct {
		name       string
		analysis   *nlp.Analysis
		wantTitle  string
		wantPeople []string
		wantPlaces []string
	}{
		{
			name: "nouns only",
			analysis: &nlp.Analysis{
				Tokens: []nlp.Token{
					{Text: "team", Tag: "NN"},
					{Text: "meeting", Tag: "NN"},
				},
			},
			wantTitle:  "team meeting",
			wantPeople: []string{},
			wantPlaces: []string{},
		},
		{
			name: "at most three nouns",
			analysis: &nlp.Analysis{
				Tokens: []nlp.Token{
					{Text: "budget", Tag: "NN"},
					{Text: "review", Tag: "NN"},
					{Text: "meeting", Tag: "NN"},
					{Text: "agenda", Tag: "NN"},
				},
			},
			wantTitle:  "budget review meeting",
			wantPeople: []string{},
			wantPlaces: []string{},
		},
		{
			name: "people and places appended in fixed order",
			analysis: &nlp.Analysis{
				Tokens: []nlp.Token{
					{Text: "lunch", Tag: "NN"},
				},
				Entities: []nlp.Entity{
					{Text: "Alice", Label: nlp.LabelPerson},
					{Text: "Bob", Label: nlp.LabelPerson},
					{Text: "Paris", Label: nlp.LabelGPE},
				},
			},
			wantTitle:  "lunch with Alice, Bob at Paris",
			wantPeople: []string{"Alice", "Bob"},
			wantPlaces: []string{"Paris"},
		},
		{
			name: "location label merged with geopolitical",
			analysis: &nlp.Analysis{
				Entities: []nlp.Entity{
					{Text: "Lake Tahoe", Label: nlp.LabelLocation},
				},
			},
			wantTitle:  "at Lake Tahoe",
			wantPeople: []string{},
			wantPlaces: []string{"Lake Tahoe"},
		},
		{
			name: "people without nouns",
			analysis: &nlp.Analysis{
				Entities: []nlp.Entity{
					{Text: "Carol", Label: nlp.LabelPerson},
				},
			},
			wantTitle:  "with Carol",
			wantPeople: []string{"Carol"},
			wantPlaces: []string{},
		},
		{
			name:       "nothing found falls back",
			analysis:   &nlp.Analysis{},
			wantTitle:  FallbackTitle,
			wantPeople: []string{},
			wantPlaces: []string{},
		},
		{
			name: "verbs and pronouns ignored",
			analysis: &nlp.Analysis{
				Tokens: []nlp.Token{
					{Text: "remind", Tag: "VB"},
					{Text: "me", Tag: "PRP"},
					{Text: "quickly", Tag: "RB"},
				},
			},
			wantTitle:  FallbackTitle,
			wantPeople: []string{},
			wantPlaces: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, entities := synthesizeTitle(tt.analysis)
			assert.Equal(t, tt.wantTitle, title)
			assert.Equal(t, tt.wantPeople, entities.People)
			assert.Equal(t, tt.wantPlaces, entities.Places)
		})
	}
}
