package v1

import (
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/labstack/echo/v4"

	"github.com/speaknote/remind/plugin/extract"
	"github.com/speaknote/remind/plugin/speech"
	"github.com/speaknote/remind/server/auth"
	apierrors "github.com/speaknote/remind/server/internal/errors"
	"github.com/speaknote/remind/server/internal/observability"
)

// maxUploadBytes bounds voice and image uploads.
const maxUploadBytes = 20 << 20

type AnalyzeTextRequest struct {
	Text     string `json:"text" form:"text"`
	Timezone string `json:"timezone" form:"timezone"`
}

type AnalyzeTextResponse struct {
	Analysis       *extract.TextAnalysis     `json:"analysis"`
	SchedulingInfo *extract.SchedulingResult `json:"scheduling_info"`
}

type AnalyzeVoiceResponse struct {
	Text           string                    `json:"text"`
	Confidence     float64                   `json:"confidence"`
	SchedulingInfo *extract.SchedulingResult `json:"scheduling_info"`
}

type AnalyzeImageResponse struct {
	Text           string                    `json:"text"`
	Confidence     float64                   `json:"confidence"`
	ImageURL       string                    `json:"image_url"`
	SchedulingInfo *extract.SchedulingResult `json:"scheduling_info"`
}

// AnalyzeText runs the extraction pipeline on raw text.
func (s *APIV1Service) AnalyzeText(c echo.Context) error {
	user := auth.UserFromContext(c)
	req := &AnalyzeTextRequest{}
	if err := c.Bind(req); err != nil {
		return apierrors.InvalidArgument("malformed request body")
	}
	if req.Text == "" {
		return apierrors.InvalidArgument("text is required")
	}
	if s.Extractor == nil {
		return apierrors.ServiceUnavailable("analysis is not configured")
	}

	ctx := c.Request().Context()
	reqCtx := observability.NewRequestContext(slog.Default(), "text", user.ID)
	reqCtx.Info("analyzing text", slog.Int("text_length", len(req.Text)))

	result := s.Extractor.Extract(ctx, extract.Request{
		Text:         req.Text,
		TimezoneHint: req.Timezone,
	})
	analysis := s.Extractor.Analyze(ctx, req.Text)

	reqCtx.Info("text analyzed",
		slog.Float64("confidence", result.Confidence),
		slog.Int64("duration_ms", reqCtx.DurationMs()))

	return c.JSON(http.StatusOK, &AnalyzeTextResponse{
		Analysis:       analysis,
		SchedulingInfo: result,
	})
}

// AnalyzeVoice transcribes an uploaded recording and runs extraction on
// the transcript.
func (s *APIV1Service) AnalyzeVoice(c echo.Context) error {
	user := auth.UserFromContext(c)
	if s.Speech == nil {
		return apierrors.ServiceUnavailable("speech recognition is not configured")
	}
	if s.Extractor == nil {
		return apierrors.ServiceUnavailable("analysis is not configured")
	}

	file, err := c.FormFile("audio_file")
	if err != nil {
		return apierrors.InvalidArgument("audio_file is required")
	}
	mimeType := file.Header.Get(echo.HeaderContentType)
	if !speech.IsSupported(mimeType) {
		return apierrors.InvalidArgument(fmt.Sprintf("unsupported audio type: %s", mimeType))
	}
	audio, err := readUpload(file)
	if err != nil {
		return apierrors.InvalidArgument("failed to read audio upload")
	}

	ctx := c.Request().Context()
	reqCtx := observability.NewRequestContext(slog.Default(), "voice", user.ID)

	transcript, err := s.Speech.Transcribe(ctx, audio, mimeType)
	if err != nil {
		reqCtx.Error("transcription failed", err)
		return apierrors.ServiceUnavailable("speech recognition failed")
	}

	result := s.Extractor.Extract(ctx, extract.Request{Text: transcript.Text})

	reqCtx.Info("voice analyzed",
		slog.Int("text_length", len(transcript.Text)),
		slog.Float64("confidence", result.Confidence),
		slog.Int64("duration_ms", reqCtx.DurationMs()))

	return c.JSON(http.StatusOK, &AnalyzeVoiceResponse{
		Text:           transcript.Text,
		Confidence:     transcript.Confidence,
		SchedulingInfo: result,
	})
}

// AnalyzeImage extracts text from an uploaded image, keeps the file
// under the uploads dir and runs extraction on the recognized text.
func (s *APIV1Service) AnalyzeImage(c echo.Context) error {
	user := auth.UserFromContext(c)
	if s.OCR == nil {
		return apierrors.ServiceUnavailable("image recognition is not configured")
	}
	if s.Extractor == nil {
		return apierrors.ServiceUnavailable("analysis is not configured")
	}

	file, err := c.FormFile("image_file")
	if err != nil {
		return apierrors.InvalidArgument("image_file is required")
	}
	mimeType := file.Header.Get(echo.HeaderContentType)
	if !s.OCR.IsSupported(mimeType) {
		return apierrors.InvalidArgument(fmt.Sprintf("unsupported image type: %s", mimeType))
	}
	imageData, err := readUpload(file)
	if err != nil {
		return apierrors.InvalidArgument("failed to read image upload")
	}

	ctx := c.Request().Context()
	reqCtx := observability.NewRequestContext(slog.Default(), "image", user.ID)

	imageURL := ""
	if s.UploadsDir != "" {
		name := fmt.Sprintf("%d_%d%s", user.ID, s.now().UnixNano(), extensionForImage(mimeType))
		if err := os.WriteFile(filepath.Join(s.UploadsDir, name), imageData, 0o600); err != nil {
			reqCtx.Error("failed to persist upload", err)
		} else {
			imageURL = "/uploads/" + name
		}
	}

	ocrResult, err := s.OCR.ExtractText(ctx, imageData, mimeType)
	if err != nil {
		reqCtx.Error("ocr failed", err)
		return apierrors.ServiceUnavailable("image recognition failed")
	}

	result := s.Extractor.Extract(ctx, extract.Request{Text: ocrResult.Text})

	reqCtx.Info("image analyzed",
		slog.Int("text_length", len(ocrResult.Text)),
		slog.Float64("confidence", result.Confidence),
		slog.Int64("duration_ms", reqCtx.DurationMs()))

	return c.JSON(http.StatusOK, &AnalyzeImageResponse{
		Text:           ocrResult.Text,
		Confidence:     ocrResult.Confidence,
		ImageURL:       imageURL,
		SchedulingInfo: result,
	})
}

func readUpload(file *multipart.FileHeader) ([]byte, error) {
	if file.Size > maxUploadBytes {
		return nil, fmt.Errorf("upload too large: %d bytes", file.Size)
	}
	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return io.ReadAll(io.LimitReader(src, maxUploadBytes))
}

func extensionForImage(mimeType string) string {
	switch mimeType {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/bmp":
		return ".bmp"
	case "image/tiff":
		return ".tiff"
	default:
		return ".jpg"
	}
}
