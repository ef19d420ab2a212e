package profile

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Profile is the configuration to start main server.
type Profile struct {
	// Mode can be "prod" or "dev" or "demo"
	Mode string
	// Addr is the binding address for server
	Addr string
	// Port is the binding port for server
	Port int
	// Data is the data directory
	Data string
	// DSN points to where speaknote stores its own data
	DSN string
	// Driver is the database driver (sqlite or postgres)
	Driver string
	// Version is the current version of server
	Version string
	// InstanceURL is the url of your speaknote instance.
	InstanceURL string
	// Secret signs access tokens. Generated at startup when empty.
	Secret string
	// Timezone is the default IANA zone used to anchor relative dates
	// when a request carries no timezone hint.
	Timezone string

	// Speech Recognition Configuration
	SpeechProvider  string // SPEAKNOTE_SPEECH_PROVIDER (vosk or whisper)
	VoskServerURL   string // SPEAKNOTE_SPEECH_VOSK_URL (default: http://localhost:2700)
	WhisperAPIKey   string // SPEAKNOTE_SPEECH_WHISPER_API_KEY
	WhisperBaseURL  string // SPEAKNOTE_SPEECH_WHISPER_BASE_URL (default: https://api.openai.com/v1)
	SpeechTimeout   time.Duration

	// OCR Configuration
	OCREnabled    bool   // SPEAKNOTE_OCR_ENABLED (default: true)
	TesseractPath string // SPEAKNOTE_OCR_TESSERACT_PATH (default: tesseract)
	TessdataPath  string // SPEAKNOTE_OCR_TESSDATA_PATH (default: "")
	OCRLanguages  string // SPEAKNOTE_OCR_LANGUAGES (default: eng)

	// Mail Configuration for OTP delivery
	MailHost     string // SPEAKNOTE_MAIL_HOST
	MailPort     int    // SPEAKNOTE_MAIL_PORT (default: 587)
	MailUsername string // SPEAKNOTE_MAIL_USERNAME
	MailPassword string // SPEAKNOTE_MAIL_PASSWORD
	MailFrom     string // SPEAKNOTE_MAIL_FROM
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// IsMailEnabled returns true if enough mail settings are present to send OTP emails.
func (p *Profile) IsMailEnabled() bool {
	return p.MailHost != "" && p.MailFrom != ""
}

// getEnvOrDefault returns the environment variable value or the default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// FromEnv loads configuration from environment variables.
func (p *Profile) FromEnv() {
	getBoolEnv := func(key string, defaultValue bool) bool {
		val := os.Getenv(key)
		if val == "" {
			return defaultValue
		}
		return val == "true" || val == "1"
	}

	p.Timezone = getEnvOrDefault("SPEAKNOTE_TIMEZONE", "")
	p.Secret = getEnvOrDefault("SPEAKNOTE_SECRET", p.Secret)

	// Speech recognition configuration
	p.SpeechProvider = getEnvOrDefault("SPEAKNOTE_SPEECH_PROVIDER", "vosk")
	p.VoskServerURL = getEnvOrDefault("SPEAKNOTE_SPEECH_VOSK_URL", "http://localhost:2700")
	p.WhisperAPIKey = os.Getenv("SPEAKNOTE_SPEECH_WHISPER_API_KEY")
	p.WhisperBaseURL = getEnvOrDefault("SPEAKNOTE_SPEECH_WHISPER_BASE_URL", "https://api.openai.com/v1")
	if timeout := os.Getenv("SPEAKNOTE_SPEECH_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			p.SpeechTimeout = d
		}
	}
	if p.SpeechTimeout == 0 {
		p.SpeechTimeout = 60 * time.Second
	}

	// OCR configuration
	p.OCREnabled = getBoolEnv("SPEAKNOTE_OCR_ENABLED", true)
	p.TesseractPath = getEnvOrDefault("SPEAKNOTE_OCR_TESSERACT_PATH", "tesseract")
	p.TessdataPath = os.Getenv("SPEAKNOTE_OCR_TESSDATA_PATH")
	p.OCRLanguages = getEnvOrDefault("SPEAKNOTE_OCR_LANGUAGES", "eng")

	// Mail configuration
	p.MailHost = os.Getenv("SPEAKNOTE_MAIL_HOST")
	p.MailPort = 587
	if port := os.Getenv("SPEAKNOTE_MAIL_PORT"); port != "" {
		if _, err := fmt.Sscanf(port, "%d", &p.MailPort); err != nil {
			p.MailPort = 587
		}
	}
	p.MailUsername = os.Getenv("SPEAKNOTE_MAIL_USERNAME")
	p.MailPassword = os.Getenv("SPEAKNOTE_MAIL_PASSWORD")
	p.MailFrom = os.Getenv("SPEAKNOTE_MAIL_FROM")
}

func checkDataDir(dataDir string) (string, error) {
	// Convert to absolute path if relative path is supplied.
	if !filepath.IsAbs(dataDir) {
		relativeDir := filepath.Join(filepath.Dir(os.Args[0]), dataDir)
		absDir, err := filepath.Abs(relativeDir)
		if err != nil {
			return "", err
		}
		dataDir = absDir
	}

	// Trim trailing \ or / in case user supplies
	dataDir = strings.TrimRight(dataDir, "\\/")
	if _, err := os.Stat(dataDir); err != nil {
		return "", errors.Wrapf(err, "unable to access data folder %s", dataDir)
	}
	return dataDir, nil
}

func (p *Profile) Validate() error {
	if p.Mode != "demo" && p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "demo"
	}

	if p.Mode == "prod" && p.Data == "" {
		if runtime.GOOS == "windows" {
			p.Data = filepath.Join(os.Getenv("ProgramData"), "speaknote")
			if _, err := os.Stat(p.Data); os.IsNotExist(err) {
				if err := os.MkdirAll(p.Data, 0770); err != nil {
					slog.Error("failed to create data directory", slog.String("data", p.Data), slog.String("error", err.Error()))
					return err
				}
			}
		} else {
			p.Data = "/var/opt/speaknote"
		}
	}

	dataDir, err := checkDataDir(p.Data)
	if err != nil {
		slog.Error("failed to check dsn", slog.String("data", dataDir), slog.String("error", err.Error()))
		return err
	}

	p.Data = dataDir
	if p.Driver == "sqlite" && p.DSN == "" {
		dbFile := fmt.Sprintf("speaknote_%s.db", p.Mode)
		p.DSN = filepath.Join(dataDir, dbFile)
	}

	if p.Timezone != "" {
		if _, err := time.LoadLocation(p.Timezone); err != nil {
			slog.Warn("invalid default timezone, falling back to system local", slog.String("timezone", p.Timezone))
			p.Timezone = ""
		}
	}

	return nil
}
