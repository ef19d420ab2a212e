package nlp

import (
	"context"

	prose "github.com/jdkato/prose/v2"
	"github.com/pkg/errors"
)

// ProseAnalyzer implements Analyzer using the prose NLP library.
// The underlying models are loaded lazily by prose on first use and are
// safe for concurrent reads afterwards.
type ProseAnalyzer struct{}

// NewProseAnalyzer creates a new prose-backed analyzer.
func NewProseAnalyzer() *ProseAnalyzer {
	return &ProseAnalyzer{}
}

// Analyze tags and extracts entities from text.
func (a *ProseAnalyzer) Analyze(ctx context.Context, text string) (*Analysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := prose.NewDocument(text)
	if err != nil {
		return nil, errors.Wrap(err, "failed to analyze text")
	}

	analysis := &Analysis{}
	for _, tok := range doc.Tokens() {
		analysis.Tokens = append(analysis.Tokens, Token{Text: tok.Text, Tag: tok.Tag})
	}
	for _, ent := range doc.Entities() {
		analysis.Entities = append(analysis.Entities, Entity{Text: ent.Text, Label: ent.Label})
	}
	return analysis, nil
}
