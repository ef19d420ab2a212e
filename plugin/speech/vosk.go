package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

// VoskConfig holds the vosk-server connection configuration
type VoskConfig struct {
	// ServerURL is the URL of the vosk transcription server
	ServerURL string
	// Timeout is the HTTP timeout for transcription requests
	Timeout time.Duration
}

// DefaultVoskConfig returns the default vosk configuration
func DefaultVoskConfig() *VoskConfig {
	return &VoskConfig{
		ServerURL: "http://localhost:2700",
		Timeout:   60 * time.Second,
	}
}

// VoskRecognizer implements Recognizer against a vosk transcription server.
type VoskRecognizer struct {
	config     *VoskConfig
	httpClient *http.Client
}

// NewVoskRecognizer creates a new vosk-backed recognizer.
func NewVoskRecognizer(config *VoskConfig) *VoskRecognizer {
	if config == nil {
		config = DefaultVoskConfig()
	}
	return &VoskRecognizer{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
	}
}

// voskResponse is the JSON shape the vosk server returns: the final
// text plus per-word results carrying confidence values.
type voskResponse struct {
	Text   string `json:"text"`
	Result []struct {
		Conf  float64 `json:"conf"`
		Word  string  `json:"word"`
		Start float64 `json:"start"`
		End   float64 `json:"end"`
	} `json:"result"`
}

// Transcribe sends the audio to the vosk server and returns the
// transcript with the mean word confidence.
func (r *VoskRecognizer) Transcribe(ctx context.Context, audio []byte, mimeType string) (*Transcript, error) {
	if !IsSupported(mimeType) {
		return nil, errors.Errorf("unsupported MIME type: %s", mimeType)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.config.ServerURL+"/transcribe", bytes.NewReader(audio))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create transcription request")
	}
	req.Header.Set("Content-Type", mimeType)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "transcription request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, errors.Errorf("transcription server returned %d: %s", resp.StatusCode, string(body))
	}

	var parsed voskResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, errors.Wrap(err, "failed to decode transcription response")
	}

	transcript := &Transcript{Text: parsed.Text}
	if len(parsed.Result) > 0 {
		sum := 0.0
		for _, word := range parsed.Result {
			sum += word.Conf
		}
		transcript.Confidence = sum / float64(len(parsed.Result))
	}

	return transcript, nil
}

// IsAvailable checks if the vosk server is reachable.
func (r *VoskRecognizer) IsAvailable(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.config.ServerURL+"/status", nil)
	if err != nil {
		return false
	}
	resp, err := r.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
