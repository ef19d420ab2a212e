package flexdate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumericDates(t *testing.T) {
	svc := NewService()
	loc := time.UTC
	ref := time.Date(2026, 6, 1, 12, 0, 0, 0, loc)

	tests := []struct {
		name     string
		input    string
		wantDate string // "2006-01-02"
	}{
		{"slash month first", "12/25/2024", "2024-12-25"},
		{"slash day first resolved by swap", "25/12/2024", "2024-12-25"},
		{"dash separated", "5-6-2025", "2025-05-06"},
		{"dash separated zero padded", "05-06-2025", "2025-05-06"},
		{"dash separated day first resolved by swap", "25-12-2026", "2026-12-25"},
		{"dash separated two digit year", "5-6-25", "2025-05-06"},
		{"two digit year", "3/4/24", "2024-03-04"},
		{"iso date", "2025-01-31", "2025-01-31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := svc.Parse(tt.input, ref, loc)
			require.True(t, ok)
			assert.Equal(t, tt.wantDate, got.Format("2006-01-02"))
		})
	}
}

func TestParseNoParse(t *testing.T) {
	svc := NewService()
	ref := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	for _, input := range []string{"", "   ", "99/99/9999", "%%%%"} {
		_, ok := svc.Parse(input, ref, time.UTC)
		assert.False(t, ok, "input %q should not parse", input)
	}
}

func TestParseNilLocation(t *testing.T) {
	svc := NewService()
	ref := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	got, ok := svc.Parse("12/25/2024", ref, nil)
	require.True(t, ok)
	assert.Equal(t, "2024-12-25", got.Format("2006-01-02"))
}
