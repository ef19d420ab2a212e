package ocr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, "tesseract", config.TesseractPath)
	assert.Equal(t, "", config.DataPath)
	assert.Equal(t, "eng", config.Languages)
}

func TestNewClient(t *testing.T) {
	t.Run("with nil config", func(t *testing.T) {
		client := NewClient(nil)
		assert.NotNil(t, client)
		assert.Equal(t, "eng", client.config.Languages)
	})

	t.Run("with custom config", func(t *testing.T) {
		config := &Config{
			TesseractPath: "/usr/bin/tesseract",
			Languages:     "eng+deu",
		}
		client := NewClient(config)
		assert.NotNil(t, client)
		assert.Equal(t, "eng+deu", client.config.Languages)
		assert.Equal(t, "/usr/bin/tesseract", client.config.TesseractPath)
	})
}

func TestIsSupported(t *testing.T) {
	client := NewClient(nil)

	supportedTypes := []string{
		"image/png",
		"image/jpeg",
		"IMAGE/JPG", // Case insensitive
		"image/gif",
		"image/bmp",
		"image/webp",
	}
	for _, mimeType := range supportedTypes {
		t.Run(mimeType, func(t *testing.T) {
			assert.True(t, client.IsSupported(mimeType), "MIME type %s should be supported", mimeType)
		})
	}

	unsupportedTypes := []string{
		"application/pdf",
		"text/plain",
		"audio/wav",
		"",
	}
	for _, mimeType := range unsupportedTypes {
		t.Run("unsupported "+mimeType, func(t *testing.T) {
			assert.False(t, client.IsSupported(mimeType))
		})
	}
}

func TestMeanConfidence(t *testing.T) {
	header := "level\tpage_num\tblock_num\tpar_num\tline_num\tword_num\tleft\ttop\twidth\theight\tconf\ttext"
	tsv := header + "\n" +
		"1\t1\t0\t0\t0\t0\t0\t0\t100\t100\t-1\t\n" +
		"5\t1\t1\t1\t1\t1\t5\t5\t40\t10\t90\thello\n" +
		"5\t1\t1\t1\t1\t2\t50\t5\t40\t10\t70\tworld\n"

	conf := meanConfidence(tsv)
	assert.InDelta(t, 0.80, conf, 1e-9)
}

func TestMeanConfidenceEmpty(t *testing.T) {
	assert.Equal(t, 0.0, meanConfidence(""))
	assert.Equal(t, 0.0, meanConfidence("header only"))
}
