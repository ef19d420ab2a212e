package extract

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/speaknote/remind/plugin/flexdate"
	"github.com/speaknote/remind/plugin/nlp"
)

func TestExtractDatesRelativeVocabulary(t *testing.T) {
	extractor := newTestExtractor(&nlp.MockAnalyzer{})
	anchor := fixedNow()

	tests := []struct {
		name     string
		input    string
		wantDate string
	}{
		{"today", "do it today", "2026-06-15"},
		{"tomorrow", "see you tomorrow", "2026-06-16"},
		{"yesterday", "happened yesterday", "2026-06-14"},
		{"yesturday misspelling", "happened yesturday", "2026-06-14"},
		{"next week", "ship next week", "2026-06-22"},
		{"next month approximation", "renew next month", "2026-07-15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidates := extractor.extractDates(normalize(tt.input), anchor, time.UTC)
			require.NotEmpty(t, candidates)
			assert.Equal(t, tt.wantDate, candidates[0].Resolved.Format("2006-01-02"))
		})
	}
}

func TestExtractDatesWholeWordOnly(t *testing.T) {
	extractor := newTestExtractor(&nlp.MockAnalyzer{})
	anchor := fixedNow()

	// "today" inside another word must not match.
	candidates := extractor.extractDates(normalize("totodayto nothing"), anchor, time.UTC)
	assert.Empty(t, candidates)
}

func TestExtractDatesRanking(t *testing.T) {
	extractor := newTestExtractor(&nlp.MockAnalyzer{})
	anchor := fixedNow()

	t.Run("absolute outranks earlier relative phrase", func(t *testing.T) {
		candidates := extractor.extractDates(normalize("tomorrow or on 25/12/2026"), anchor, time.UTC)
		require.Len(t, candidates, 2)
		assert.Equal(t, SourceAbsolute, candidates[0].Source)
		assert.Equal(t, "2026-12-25", candidates[0].Resolved.Format("2006-01-02"))
	})

	t.Run("same source ties break by text offset", func(t *testing.T) {
		candidates := extractor.extractDates(normalize("yesterday it was due, move it to tomorrow"), anchor, time.UTC)
		require.Len(t, candidates, 2)
		assert.Equal(t, "yesterday", candidates[0].MatchedText)
		assert.Equal(t, "tomorrow", candidates[1].MatchedText)
	})
}

func TestExtractDatesUnparsableDropped(t *testing.T) {
	extractor := newTestExtractor(&nlp.MockAnalyzer{})
	anchor := fixedNow()

	// Matches the numeric pattern but is not a real date; silently dropped.
	candidates := extractor.extractDates(normalize("see 99/99/99 for details"), anchor, time.UTC)
	assert.Empty(t, candidates)
}

func TestExtractDatesSpans(t *testing.T) {
	extractor := newTestExtractor(&nlp.MockAnalyzer{})
	anchor := fixedNow()

	normalized := normalize("meet tomorrow ok")
	candidates := extractor.extractDates(normalized, anchor, time.UTC)
	require.Len(t, candidates, 1)
	span := candidates[0].Span
	assert.Equal(t, "tomorrow", normalized[span[0]:span[1]])
}

func TestExtractDatesKeepsAnchorClock(t *testing.T) {
	// Relative offsets preserve the anchor's time of day.
	extractor := New(&nlp.MockAnalyzer{}, flexdate.NewService(),
		WithFallbackZone(time.UTC),
		WithNow(func() time.Time { return time.Date(2026, 6, 15, 17, 30, 0, 0, time.UTC) }),
	)

	result := extractor.Extract(context.Background(), Request{Text: "tomorrow"})
	require.NotNil(t, result.DetectedDate)
	assert.Equal(t, "2026-06-16 17:30", result.DetectedDate.Format("2006-01-02 15:04"))
}
