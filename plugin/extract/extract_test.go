package extract

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/speaknote/remind/plugin/flexdate"
	"github.com/speaknote/remind/plugin/nlp"
)

// anchor used by all tests: 2026-06-15 10:00 UTC.
func fixedNow() time.Time {
	return time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC)
}

func newTestExtractor(analyzer nlp.Analyzer) *Extractor {
	return New(analyzer, flexdate.NewService(),
		WithFallbackZone(time.UTC),
		WithNow(fixedNow),
	)
}

func TestExtractFullExample(t *testing.T) {
	analyzer := &nlp.MockAnalyzer{
		Result: &nlp.Analysis{
			Tokens: []nlp.Token{
				{Text: "remind", Tag: "VB"},
				{Text: "me", Tag: "PRP"},
				{Text: "tomorrow", Tag: "NN"},
				{Text: "call", Tag: "VB"},
				{Text: "John", Tag: "NNP"},
				{Text: "office", Tag: "NN"},
			},
			Entities: []nlp.Entity{
				{Text: "John", Label: nlp.LabelPerson},
			},
		},
	}
	extractor := newTestExtractor(analyzer)

	result := extractor.Extract(context.Background(), Request{
		Text: "remind me tomorrow at 5pm to call John at the office",
	})

	require.NotNil(t, result.DetectedDate)
	assert.Equal(t, "2026-06-16", result.DetectedDate.Format("2006-01-02"))

	require.NotNil(t, result.DetectedTime)
	assert.Equal(t, "5pm", *result.DetectedTime)

	// date 0.5 + time 0.3 + joint bonus 0.2
	assert.InDelta(t, 1.0, result.Confidence, 1e-9)

	assert.Contains(t, result.Entities.People, "John")
	assert.Contains(t, result.SuggestedTitle, "with John")
	assert.Empty(t, result.Diagnostic)
}

func TestExtractNumericDate(t *testing.T) {
	extractor := newTestExtractor(&nlp.MockAnalyzer{})

	tests := []struct {
		name  string
		input string
	}{
		{"slash separated", "dentist appointment on 25/12/2026 please"},
		{"dash separated", "pay rent on 25-12-2026"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := extractor.Extract(context.Background(), Request{Text: tt.input})

			require.NotNil(t, result.DetectedDate)
			assert.Equal(t, "2026-12-25", result.DetectedDate.Format("2006-01-02"))
			assert.GreaterOrEqual(t, result.Confidence, 0.5)
		})
	}
}

func TestExtractMisspelledTomorrow(t *testing.T) {
	extractor := newTestExtractor(&nlp.MockAnalyzer{})

	for _, input := range []string{
		"tmrw meeting",
		"tommorow meeting",
		"standup tmr.",
		"tmorrow dentist",
	} {
		t.Run(input, func(t *testing.T) {
			result := extractor.Extract(context.Background(), Request{Text: input})
			require.NotNil(t, result.DetectedDate, "input %q", input)
			assert.Equal(t, "2026-06-16", result.DetectedDate.Format("2006-01-02"))
			assert.GreaterOrEqual(t, result.Confidence, 0.5)
		})
	}
}

func TestExtractEmptyText(t *testing.T) {
	extractor := newTestExtractor(&nlp.MockAnalyzer{})

	result := extractor.Extract(context.Background(), Request{Text: ""})

	assert.Nil(t, result.DetectedDate)
	assert.Nil(t, result.DetectedTime)
	assert.Equal(t, 0.0, result.Confidence)
	assert.Equal(t, FallbackTitle, result.SuggestedTitle)
}

func TestExtractConfidenceBounds(t *testing.T) {
	extractor := newTestExtractor(&nlp.MockAnalyzer{})

	inputs := []string{
		"",
		"nothing to see here",
		"today tomorrow yesterday next week next month 5pm 6pm noon 12/12/2024",
		"tomorrow at 5pm",
		"morning",
	}
	for _, input := range inputs {
		result := extractor.Extract(context.Background(), Request{Text: input})
		assert.GreaterOrEqual(t, result.Confidence, 0.0, "input %q", input)
		assert.LessOrEqual(t, result.Confidence, 1.0, "input %q", input)
	}
}

func TestExtractTimezoneHint(t *testing.T) {
	extractor := newTestExtractor(&nlp.MockAnalyzer{})

	t.Run("valid hint anchors tomorrow in that zone", func(t *testing.T) {
		// 2026-06-15 10:00 UTC is already 2026-06-15 19:00 in Tokyo.
		result := extractor.Extract(context.Background(), Request{
			Text:         "tomorrow",
			TimezoneHint: "Asia/Tokyo",
		})
		require.NotNil(t, result.DetectedDate)
		assert.Equal(t, "2026-06-16", result.DetectedDate.Format("2006-01-02"))
		assert.Equal(t, "Asia/Tokyo", result.DetectedDate.Location().String())
	})

	t.Run("invalid hint degrades to fallback zone", func(t *testing.T) {
		result := extractor.Extract(context.Background(), Request{
			Text:         "tomorrow",
			TimezoneHint: "Mars/Olympus",
		})
		require.NotNil(t, result.DetectedDate)
		assert.Equal(t, time.UTC, result.DetectedDate.Location())
		assert.Empty(t, result.Diagnostic)
	})
}

func TestExtractAnalyzerFailure(t *testing.T) {
	extractor := newTestExtractor(&nlp.MockAnalyzer{
		Err: errors.New("model not loaded"),
	})

	result := extractor.Extract(context.Background(), Request{
		Text: "tomorrow at 5pm",
	})

	assert.Nil(t, result.DetectedDate)
	assert.Nil(t, result.DetectedTime)
	assert.Equal(t, 0.0, result.Confidence)
	assert.Equal(t, FallbackTitle, result.SuggestedTitle)
	assert.Contains(t, result.Diagnostic, "model not loaded")
}

func TestExtractAnalyzerPanic(t *testing.T) {
	extractor := newTestExtractor(&nlp.MockAnalyzer{
		AnalyzeFunc: func(ctx context.Context, text string) (*nlp.Analysis, error) {
			panic("tokenizer blew up")
		},
	})

	result := extractor.Extract(context.Background(), Request{Text: "tomorrow"})

	assert.Equal(t, 0.0, result.Confidence)
	assert.Contains(t, result.Diagnostic, "tokenizer blew up")
}

func TestResultJSONRoundTrip(t *testing.T) {
	extractor := newTestExtractor(&nlp.MockAnalyzer{
		Result: &nlp.Analysis{
			Tokens:   []nlp.Token{{Text: "meeting", Tag: "NN"}},
			Entities: []nlp.Entity{{Text: "Alice", Label: nlp.LabelPerson}},
		},
	})
	original := extractor.Extract(context.Background(), Request{
		Text: "meeting with Alice tomorrow at 9am",
	})

	data, err := json.Marshal(original)
	require.NoError(t, err)

	// Wire keys are a contract other components depend on.
	var wire map[string]any
	require.NoError(t, json.Unmarshal(data, &wire))
	for _, key := range []string{"suggested_title", "detected_date", "detected_time", "confidence", "entities"} {
		assert.Contains(t, wire, key)
	}

	var decoded SchedulingResult
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, original.SuggestedTitle, decoded.SuggestedTitle)
	require.NotNil(t, decoded.DetectedDate)
	assert.True(t, original.DetectedDate.Equal(*decoded.DetectedDate))
	assert.Equal(t, original.DetectedTime, decoded.DetectedTime)
	assert.Equal(t, original.Confidence, decoded.Confidence)
	assert.Equal(t, original.Entities, decoded.Entities)
}

func TestExtractNullWireFields(t *testing.T) {
	extractor := newTestExtractor(&nlp.MockAnalyzer{})

	result := extractor.Extract(context.Background(), Request{Text: "no signal"})
	data, err := json.Marshal(result)
	require.NoError(t, err)

	var wire map[string]any
	require.NoError(t, json.Unmarshal(data, &wire))
	assert.Nil(t, wire["detected_date"])
	assert.Nil(t, wire["detected_time"])

	entities, ok := wire["entities"].(map[string]any)
	require.True(t, ok)
	assert.NotNil(t, entities["people"])
	assert.NotNil(t, entities["places"])
}
