package nlp

import "context"

// MockAnalyzer is a deterministic Analyzer for tests.
type MockAnalyzer struct {
	// Result is returned for every input when AnalyzeFunc is nil.
	Result *Analysis
	// Err is returned for every input when AnalyzeFunc is nil.
	Err error
	// AnalyzeFunc overrides the canned result when set.
	AnalyzeFunc func(ctx context.Context, text string) (*Analysis, error)
}

// Analyze implements Analyzer.
func (m *MockAnalyzer) Analyze(ctx context.Context, text string) (*Analysis, error) {
	if m.AnalyzeFunc != nil {
		return m.AnalyzeFunc(ctx, text)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Result != nil {
		return m.Result, nil
	}
	return &Analysis{}, nil
}
