package speech

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultVoskConfig(t *testing.T) {
	config := DefaultVoskConfig()
	assert.Equal(t, "http://localhost:2700", config.ServerURL)
	assert.Equal(t, 60*time.Second, config.Timeout)
}

func TestVoskTranscribe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/transcribe", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		json.NewEncoder(w).Encode(map[string]any{
			"text": "remind me tomorrow",
			"result": []map[string]any{
				{"conf": 0.9, "word": "remind"},
				{"conf": 0.8, "word": "me"},
				{"conf": 1.0, "word": "tomorrow"},
			},
		})
	}))
	defer server.Close()

	recognizer := NewVoskRecognizer(&VoskConfig{ServerURL: server.URL, Timeout: 5 * time.Second})

	transcript, err := recognizer.Transcribe(context.Background(), []byte("fake audio"), "audio/wav")
	require.NoError(t, err)
	assert.Equal(t, "remind me tomorrow", transcript.Text)
	assert.InDelta(t, 0.9, transcript.Confidence, 1e-9)
}

func TestVoskTranscribeServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer server.Close()

	recognizer := NewVoskRecognizer(&VoskConfig{ServerURL: server.URL, Timeout: 5 * time.Second})

	_, err := recognizer.Transcribe(context.Background(), []byte("fake audio"), "audio/wav")
	assert.Error(t, err)
}

func TestVoskTranscribeUnsupportedMime(t *testing.T) {
	recognizer := NewVoskRecognizer(nil)

	_, err := recognizer.Transcribe(context.Background(), []byte("data"), "video/mp4")
	assert.Error(t, err)
}

func TestIsSupported(t *testing.T) {
	assert.True(t, IsSupported("audio/wav"))
	assert.True(t, IsSupported("audio/mpeg"))
	assert.False(t, IsSupported("image/png"))
	assert.False(t, IsSupported(""))
}
