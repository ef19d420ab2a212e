package v1

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/speaknote/remind/internal/profile"
	"github.com/speaknote/remind/plugin/extract"
	"github.com/speaknote/remind/plugin/mail"
	"github.com/speaknote/remind/plugin/ocr"
	"github.com/speaknote/remind/plugin/speech"
	"github.com/speaknote/remind/server/auth"
	apierrors "github.com/speaknote/remind/server/internal/errors"
	"github.com/speaknote/remind/server/middleware"
	"github.com/speaknote/remind/store"
)

// APIV1Service carries the dependencies of the /api/v1 surface. All
// capabilities are injected so handlers never reach for globals.
type APIV1Service struct {
	Profile *profile.Profile
	Store   *store.Store

	TokenManager *auth.TokenManager
	Extractor    *extract.Extractor
	Speech       speech.Recognizer
	OCR          *ocr.Client
	Mailer       mail.Sender

	UploadsDir string

	authLimiter *middleware.RateLimiter
	apiLimiter  *middleware.RateLimiter

	now func() time.Time
}

func NewAPIV1Service(profile *profile.Profile, store *store.Store, opts ...Option) *APIV1Service {
	s := &APIV1Service{
		Profile:      profile,
		Store:        store,
		TokenManager: auth.NewTokenManager(profile.Secret, auth.DefaultAccessTTL),
		// Auth endpoints get a tight budget to slow down guessing,
		// the rest of the API a looser one.
		authLimiter: middleware.NewRateLimiter(1, 5),
		apiLimiter:  middleware.NewRateLimiter(10, 20),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Option configures optional capabilities on the service.
type Option func(*APIV1Service)

func WithExtractor(e *extract.Extractor) Option {
	return func(s *APIV1Service) { s.Extractor = e }
}

func WithSpeech(r speech.Recognizer) Option {
	return func(s *APIV1Service) { s.Speech = r }
}

func WithOCR(c *ocr.Client) Option {
	return func(s *APIV1Service) { s.OCR = c }
}

func WithMailer(m mail.Sender) Option {
	return func(s *APIV1Service) { s.Mailer = m }
}

func WithUploadsDir(dir string) Option {
	return func(s *APIV1Service) { s.UploadsDir = dir }
}

// WithNow overrides the clock, for tests.
func WithNow(now func() time.Time) Option {
	return func(s *APIV1Service) { s.now = now }
}

// RegisterRoutes mounts the API on the given echo instance.
func (s *APIV1Service) RegisterRoutes(e *echo.Echo) {
	e.HTTPErrorHandler = ErrorHandler

	api := e.Group("/api/v1", middleware.RateLimitByIP(s.apiLimiter))

	authGroup := api.Group("/auth")
	authGroup.POST("/register", s.Register, middleware.RateLimitByIP(s.authLimiter))
	authGroup.POST("/login", s.Login, middleware.RateLimitByIP(s.authLimiter))
	authGroup.POST("/otp/request", s.RequestOTP, middleware.RateLimitByIP(s.authLimiter))
	authGroup.POST("/otp/verify", s.VerifyOTP, middleware.RateLimitByIP(s.authLimiter))

	authed := auth.Middleware(s.TokenManager, s.Store)
	authGroup.GET("/me", s.Me, authed)
	authGroup.PATCH("/me", s.UpdateMe, authed)

	analyze := api.Group("/analyze", authed)
	analyze.POST("/text", s.AnalyzeText)
	analyze.POST("/voice", s.AnalyzeVoice)
	analyze.POST("/image", s.AnalyzeImage)

	reminders := api.Group("/reminders", authed)
	reminders.POST("", s.CreateReminder)
	reminders.GET("", s.ListReminders)
	reminders.GET("/upcoming", s.UpcomingReminders)
	reminders.GET("/:uid", s.GetReminder)
	reminders.PUT("/:uid", s.UpdateReminder)
	reminders.DELETE("/:uid", s.DeleteReminder)
	reminders.POST("/:uid/complete", s.CompleteReminder)

	if s.UploadsDir != "" {
		e.Static("/uploads", s.UploadsDir)
	}
}

// ErrorHandler renders APIError values as structured JSON and hides
// internal causes from clients.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := 0
	code := ""
	message := ""

	var apiErr *apierrors.APIError
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatus()
		code = string(apiErr.Code)
		message = apiErr.Message
		if apiErr.Cause != nil {
			slog.Error("request failed",
				slog.String("code", code),
				slog.Any("error", apiErr.Cause))
		}
	case errors.As(err, &httpErr):
		status = httpErr.Code
		code = string(apierrors.ErrCodeInvalidArgument)
		if status == 404 {
			code = string(apierrors.ErrCodeNotFound)
		}
		message = fmt.Sprintf("%v", httpErr.Message)
	default:
		status = 500
		code = string(apierrors.ErrCodeInternal)
		message = "internal server error"
		slog.Error("request failed", slog.Any("error", err))
	}

	_ = c.JSON(status, map[string]any{
		"error": map[string]any{"code": code, "message": message},
	})
}
