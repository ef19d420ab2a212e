package extract

import (
	"context"
	"strings"

	"github.com/speaknote/remind/plugin/nlp"
)

// AnalysisEntity is a named entity with its character span in the
// normalized text.
type AnalysisEntity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// TextAnalysis is the general linguistic summary of an input, separate
// from the scheduling extraction.
type TextAnalysis struct {
	Entities       []AnalysisEntity `json:"entities"`
	KeyPhrases     []string         `json:"key_phrases"`
	SentimentScore int              `json:"sentiment_score"`
	WordCount      int              `json:"word_count"`
	ProcessedText  string           `json:"processed_text"`
	Diagnostic     string           `json:"diagnostic,omitempty"`
}

// Urgency cues nudge the sentiment score up, hedging cues down.
var (
	positiveWords = map[string]bool{
		"important": true, "urgent": true, "critical": true,
		"essential": true, "vital": true,
	}
	negativeWords = map[string]bool{
		"maybe": true, "perhaps": true, "sometime": true, "later": true,
	}
)

// Analyze produces the linguistic summary of the text. Like Extract it
// never fails: analyzer errors yield an empty analysis with a
// diagnostic.
func (e *Extractor) Analyze(ctx context.Context, text string) *TextAnalysis {
	out := &TextAnalysis{
		Entities:      []AnalysisEntity{},
		KeyPhrases:    []string{},
		ProcessedText: text,
	}

	normalized := normalize(text)
	analysis, err := e.analyzer.Analyze(ctx, normalized)
	if err != nil {
		out.Diagnostic = "language analysis unavailable"
		return out
	}

	searchFrom := 0
	for _, entity := range analysis.Entities {
		ent := AnalysisEntity{Text: entity.Text, Label: entity.Label, Start: -1, End: -1}
		if idx := strings.Index(normalized[searchFrom:], entity.Text); idx >= 0 {
			ent.Start = searchFrom + idx
			ent.End = ent.Start + len(entity.Text)
			searchFrom = ent.End
		}
		out.Entities = append(out.Entities, ent)
	}

	out.KeyPhrases = nounPhrases(analysis.Tokens)
	out.WordCount = len(analysis.Tokens)

	for _, token := range analysis.Tokens {
		if positiveWords[token.Text] {
			out.SentimentScore++
		} else if negativeWords[token.Text] {
			out.SentimentScore--
		}
	}

	return out
}

// nounPhrases approximates noun chunks: maximal runs of determiners,
// adjectives and nouns that contain at least one noun.
func nounPhrases(tokens []nlp.Token) []string {
	phrases := []string{}
	current := []string{}
	hasNoun := false

	flush := func() {
		if hasNoun && len(current) > 0 {
			phrases = append(phrases, strings.Join(current, " "))
		}
		current = current[:0]
		hasNoun = false
	}

	for _, token := range tokens {
		switch {
		case nlp.IsNoun(token.Tag):
			current = append(current, token.Text)
			hasNoun = true
		case token.Tag == "DT" || token.Tag == "JJ":
			current = append(current, token.Text)
		default:
			flush()
		}
	}
	flush()

	return phrases
}
