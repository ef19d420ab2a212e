package speech

import (
	"bytes"
	"context"
	"math"

	openai "github.com/sashabaranov/go-openai"
	"github.com/pkg/errors"
)

// WhisperConfig holds the Whisper API configuration
type WhisperConfig struct {
	// APIKey authenticates against the API
	APIKey string
	// BaseURL overrides the API endpoint (for compatible providers)
	BaseURL string
	// Model is the transcription model name
	Model string
}

// DefaultWhisperModel is the transcription model used when none is configured.
const DefaultWhisperModel = openai.Whisper1

// WhisperRecognizer implements Recognizer using the OpenAI audio
// transcription API.
type WhisperRecognizer struct {
	client *openai.Client
	model  string
}

// NewWhisperRecognizer creates a new Whisper-backed recognizer.
func NewWhisperRecognizer(config *WhisperConfig) (*WhisperRecognizer, error) {
	if config == nil || config.APIKey == "" {
		return nil, errors.New("whisper API key is required")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	model := config.Model
	if model == "" {
		model = DefaultWhisperModel
	}

	return &WhisperRecognizer{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
	}, nil
}

// Transcribe sends the audio to the transcription API. Confidence is
// derived from the mean segment log-probability.
func (r *WhisperRecognizer) Transcribe(ctx context.Context, audio []byte, mimeType string) (*Transcript, error) {
	if !IsSupported(mimeType) {
		return nil, errors.Errorf("unsupported MIME type: %s", mimeType)
	}

	resp, err := r.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    r.model,
		Reader:   bytes.NewReader(audio),
		FilePath: "audio" + extensionFor(mimeType),
		Format:   openai.AudioResponseFormatVerboseJSON,
	})
	if err != nil {
		return nil, errors.Wrap(err, "transcription request failed")
	}

	transcript := &Transcript{Text: resp.Text}
	if len(resp.Segments) > 0 {
		sum := 0.0
		for _, segment := range resp.Segments {
			sum += segment.AvgLogprob
		}
		// avg_logprob is a log-probability; exp maps it into (0, 1].
		transcript.Confidence = math.Exp(sum / float64(len(resp.Segments)))
	}

	return transcript, nil
}

// extensionFor maps a MIME type to the file extension the API expects.
func extensionFor(mimeType string) string {
	switch mimeType {
	case "audio/mpeg":
		return ".mp3"
	case "audio/mp4":
		return ".m4a"
	case "audio/ogg":
		return ".ogg"
	case "audio/webm":
		return ".webm"
	default:
		return ".wav"
	}
}
