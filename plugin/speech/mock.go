package speech

import "context"

// MockRecognizer is a deterministic Recognizer for tests.
type MockRecognizer struct {
	Result *Transcript
	Err    error
}

// Transcribe implements Recognizer.
func (m *MockRecognizer) Transcribe(ctx context.Context, audio []byte, mimeType string) (*Transcript, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Result != nil {
		return m.Result, nil
	}
	return &Transcript{}, nil
}
