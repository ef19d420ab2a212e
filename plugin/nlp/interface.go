// Package nlp provides the text analysis capability consumed by the
// extraction pipeline: part-of-speech tags per token and named-entity
// labels per span. Implementations are constructed once at startup and
// shared read-only across requests.
package nlp

import "context"

// Part-of-speech tags used by the pipeline (Penn Treebank subset).
const (
	TagNoun             = "NN"
	TagNounPlural       = "NNS"
	TagProperNoun       = "NNP"
	TagProperNounPlural = "NNPS"
)

// Entity labels used by the pipeline.
const (
	LabelPerson = "PERSON"
	// LabelGPE marks geopolitical entities (countries, cities).
	LabelGPE = "GPE"
	// LabelLocation marks non-political locations.
	LabelLocation = "LOC"
)

// Token is a single token with its part-of-speech tag.
type Token struct {
	Text string
	Tag  string
}

// Entity is a named span with its entity label.
type Entity struct {
	Text  string
	Label string
}

// Analysis is the result of analyzing a text.
type Analysis struct {
	Tokens   []Token
	Entities []Entity
}

// Analyzer analyzes text into tagged tokens and named entities.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (*Analysis, error)
}

// IsNoun reports whether tag marks a common or proper noun.
func IsNoun(tag string) bool {
	switch tag {
	case TagNoun, TagNounPlural, TagProperNoun, TagProperNounPlural:
		return true
	}
	return false
}
