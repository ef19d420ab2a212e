// Package speech provides the voice transcription capability for
// voice-based reminder input. The recognizers are black boxes: the
// pipeline only consumes the transcript text and its confidence.
package speech

import "context"

// Supported audio MIME types for transcription
var SupportedMimeTypes = []string{
	"audio/wav",
	"audio/x-wav",
	"audio/wave",
	"audio/mpeg",
	"audio/mp4",
	"audio/ogg",
	"audio/webm",
}

// Transcript is the result of transcribing an audio clip.
type Transcript struct {
	// Text is the recognized text.
	Text string
	// Confidence is the mean word confidence in [0, 1]. Zero when the
	// backend does not report one.
	Confidence float64
}

// Recognizer transcribes audio to text.
type Recognizer interface {
	Transcribe(ctx context.Context, audio []byte, mimeType string) (*Transcript, error)
}

// IsSupported checks if the MIME type is supported for transcription.
func IsSupported(mimeType string) bool {
	for _, supported := range SupportedMimeTypes {
		if mimeType == supported {
			return true
		}
	}
	return false
}
