package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/speaknote/remind/internal/profile"
	"github.com/speaknote/remind/plugin/extract"
	"github.com/speaknote/remind/plugin/flexdate"
	"github.com/speaknote/remind/plugin/mail"
	"github.com/speaknote/remind/plugin/nlp"
	"github.com/speaknote/remind/plugin/ocr"
	"github.com/speaknote/remind/plugin/speech"
	apiv1 "github.com/speaknote/remind/server/router/api/v1"
	"github.com/speaknote/remind/server/timezone"
	"github.com/speaknote/remind/store"
)

// Server owns the HTTP surface and the capabilities behind it.
type Server struct {
	Profile *profile.Profile
	Store   *store.Store

	echoServer *echo.Echo
}

func NewServer(ctx context.Context, profile *profile.Profile, store *store.Store) (*Server, error) {
	s := &Server{
		Profile: profile,
		Store:   store,
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomw.Recover())
	s.echoServer = e

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "Service ready.")
	})

	opts, err := capabilityOptions(ctx, profile)
	if err != nil {
		return nil, err
	}
	apiService := apiv1.NewAPIV1Service(profile, store, opts...)
	apiService.RegisterRoutes(e)

	return s, nil
}

// capabilityOptions builds the injected capabilities from the profile.
// Missing optional capabilities (speech, ocr, mail) disable their
// endpoints instead of failing startup.
func capabilityOptions(ctx context.Context, p *profile.Profile) ([]apiv1.Option, error) {
	fallbackZone := timezone.Resolve(p.Timezone, time.UTC)
	extractor := extract.New(
		nlp.NewProseAnalyzer(),
		flexdate.NewService(),
		extract.WithFallbackZone(fallbackZone),
	)
	opts := []apiv1.Option{apiv1.WithExtractor(extractor)}

	switch p.SpeechProvider {
	case "whisper":
		recognizer, err := speech.NewWhisperRecognizer(&speech.WhisperConfig{
			APIKey:  p.WhisperAPIKey,
			BaseURL: p.WhisperBaseURL,
		})
		if err != nil {
			slog.Warn("whisper is not configured, voice analysis disabled", slog.Any("error", err))
		} else {
			opts = append(opts, apiv1.WithSpeech(recognizer))
		}
	case "vosk", "":
		config := speech.DefaultVoskConfig()
		if p.VoskServerURL != "" {
			config.ServerURL = p.VoskServerURL
		}
		if p.SpeechTimeout > 0 {
			config.Timeout = p.SpeechTimeout
		}
		recognizer := speech.NewVoskRecognizer(config)
		if !recognizer.IsAvailable(ctx) {
			slog.Warn("vosk server unreachable, voice analysis will fail until it comes up",
				slog.String("url", config.ServerURL))
		}
		opts = append(opts, apiv1.WithSpeech(recognizer))
	default:
		return nil, errors.Errorf("unknown speech provider: %s", p.SpeechProvider)
	}

	if p.OCREnabled {
		config := ocr.DefaultConfig()
		if p.TesseractPath != "" {
			config.TesseractPath = p.TesseractPath
		}
		if p.TessdataPath != "" {
			config.DataPath = p.TessdataPath
		}
		if p.OCRLanguages != "" {
			config.Languages = p.OCRLanguages
		}
		client := ocr.NewClient(config)
		if client.IsAvailable(ctx) {
			opts = append(opts, apiv1.WithOCR(client))
		} else {
			slog.Warn("tesseract not found, image analysis disabled",
				slog.String("path", config.TesseractPath))
		}
	}

	if p.IsMailEnabled() {
		sender, err := mail.NewSMTPSender(&mail.Config{
			Host:     p.MailHost,
			Port:     p.MailPort,
			Username: p.MailUsername,
			Password: p.MailPassword,
			From:     p.MailFrom,
		})
		if err != nil {
			slog.Warn("mail is not configured, otp login disabled", slog.Any("error", err))
		} else {
			opts = append(opts, apiv1.WithMailer(sender))
		}
	}

	uploadsDir := filepath.Join(p.Data, "uploads")
	if err := os.MkdirAll(uploadsDir, 0o750); err != nil {
		return nil, errors.Wrap(err, "failed to create uploads dir")
	}
	opts = append(opts, apiv1.WithUploadsDir(uploadsDir))

	return opts, nil
}

// Start runs the server until ctx is cancelled, then drains in-flight
// requests before returning.
func (s *Server) Start(ctx context.Context) error {
	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		address := fmt.Sprintf("%s:%d", s.Profile.Addr, s.Profile.Port)
		slog.Info("server listening", slog.String("address", address))
		if err := s.echoServer.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "failed to start server")
		}
		return nil
	})

	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.echoServer.Shutdown(shutdownCtx); err != nil {
			return errors.Wrap(err, "failed to shut down server")
		}
		return nil
	})

	return group.Wait()
}
