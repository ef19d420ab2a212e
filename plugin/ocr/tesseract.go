// Package ocr provides OCR (Optical Character Recognition) functionality using Tesseract.
// This is used to extract text from image-based reminder input.
package ocr

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// Supported image MIME types for OCR
var SupportedMimeTypes = []string{
	"image/png",
	"image/jpeg",
	"image/jpg",
	"image/gif",
	"image/bmp",
	"image/webp",
}

// Config holds the OCR configuration
type Config struct {
	// TesseractPath is the path to the tesseract executable
	TesseractPath string
	// DataPath is the path to the tessdata directory (optional)
	DataPath string
	// Languages are the languages to use for OCR (e.g., "eng")
	Languages string
}

// DefaultConfig returns the default OCR configuration
func DefaultConfig() *Config {
	return &Config{
		TesseractPath: "tesseract",
		DataPath:      "",
		Languages:     "eng",
	}
}

// Result holds extracted text and the mean word confidence reported by
// Tesseract, normalized to [0, 1].
type Result struct {
	Text       string
	Confidence float64
}

// Client provides OCR functionality
type Client struct {
	config *Config
}

// NewClient creates a new OCR client
func NewClient(config *Config) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	return &Client{config: config}
}

// ExtractText extracts text from an image using Tesseract OCR. The image
// is grayscaled before recognition to reduce noise in photographed notes.
func (c *Client) ExtractText(ctx context.Context, imageData []byte, mimeType string) (*Result, error) {
	if !c.IsSupported(mimeType) {
		return nil, errors.Errorf("unsupported MIME type: %s", mimeType)
	}

	prepared, err := c.preprocess(imageData)
	if err != nil {
		// Preprocessing is best effort; fall back to the raw bytes.
		slog.Warn("image preprocessing failed, using raw image", "error", err)
		prepared = imageData
	}

	// Create a temporary file for the image
	tmpFile, err := os.CreateTemp("", "ocr_*.png")
	if err != nil {
		return nil, errors.Wrap(err, "failed to create temp file")
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)
	tmpFile.Close()

	if err := os.WriteFile(tmpPath, prepared, 0644); err != nil {
		return nil, errors.Wrap(err, "failed to write temp file")
	}

	// Create output file path (without extension)
	outPath := strings.TrimSuffix(tmpPath, filepath.Ext(tmpPath))

	// txt and tsv outputs: text plus per-word confidence values
	args := []string{tmpPath, outPath}
	if c.config.Languages != "" {
		args = append(args, "-l", c.config.Languages)
	}
	if c.config.DataPath != "" {
		args = append(args, "--tessdata-dir", c.config.DataPath)
	}
	args = append(args, "txt", "tsv")

	cmd := exec.CommandContext(ctx, c.config.TesseractPath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		slog.Warn("tesseract command failed", "error", err, "stderr", stderr.String())
		return nil, errors.Wrap(err, "tesseract command failed")
	}

	txtPath := outPath + ".txt"
	defer os.Remove(txtPath)
	text, err := os.ReadFile(txtPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read OCR output")
	}

	result := &Result{Text: strings.TrimSpace(string(text))}

	tsvPath := outPath + ".tsv"
	defer os.Remove(tsvPath)
	if tsv, err := os.ReadFile(tsvPath); err == nil {
		result.Confidence = meanConfidence(string(tsv))
	}

	return result, nil
}

// preprocess grayscales the image and re-encodes it as PNG.
func (c *Client) preprocess(imageData []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode image")
	}

	gray := imaging.Grayscale(img)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, gray, imaging.PNG); err != nil {
		return nil, errors.Wrap(err, "failed to encode image")
	}
	return buf.Bytes(), nil
}

// meanConfidence averages the per-word confidence column of Tesseract's
// TSV output, normalized to [0, 1]. Rows with confidence -1 are layout
// rows, not words, and are skipped.
func meanConfidence(tsv string) float64 {
	lines := strings.Split(tsv, "\n")
	sum, count := 0.0, 0
	for i, line := range lines {
		if i == 0 {
			continue // header
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 11 {
			continue
		}
		conf, err := strconv.ParseFloat(fields[10], 64)
		if err != nil || conf < 0 {
			continue
		}
		sum += conf
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count) / 100.0
}

// IsSupported checks if the MIME type is supported for OCR
func (c *Client) IsSupported(mimeType string) bool {
	mimeType = strings.ToLower(mimeType)
	for _, supported := range SupportedMimeTypes {
		if mimeType == supported {
			return true
		}
	}
	return false
}

// IsAvailable checks if Tesseract is available
func (c *Client) IsAvailable(ctx context.Context) bool {
	cmd := exec.CommandContext(ctx, c.config.TesseractPath, "--version")
	if err := cmd.Run(); err != nil {
		return false
	}
	return true
}
