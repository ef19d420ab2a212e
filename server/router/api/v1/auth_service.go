package v1

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/speaknote/remind/server/auth"
	apierrors "github.com/speaknote/remind/server/internal/errors"
	"github.com/speaknote/remind/store"
)

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type OTPRequest struct {
	Email string `json:"email"`
}

type OTPVerifyRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type UpdateMeRequest struct {
	FullName *string `json:"full_name"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type UserResponse struct {
	ID        int32  `json:"id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	CreatedTs int64  `json:"created_ts"`
}

func toUserResponse(user *store.User) *UserResponse {
	return &UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		CreatedTs: user.CreatedTs,
	}
}

// Register creates a new account.
func (s *APIV1Service) Register(c echo.Context) error {
	req := &RegisterRequest{}
	if err := c.Bind(req); err != nil {
		return apierrors.InvalidArgument("malformed request body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return apierrors.InvalidArgument("a valid email is required")
	}
	if len(req.Password) < 8 {
		return apierrors.InvalidArgument("password must be at least 8 characters")
	}

	ctx := c.Request().Context()
	existing, err := s.Store.GetUser(ctx, &store.FindUser{Email: &req.Email})
	if err != nil {
		return apierrors.Internal("failed to check existing user", err)
	}
	if existing != nil {
		return apierrors.AlreadyExists("email is already registered")
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return apierrors.Internal("failed to hash password", err)
	}
	user, err := s.Store.CreateUser(ctx, &store.User{
		Email:          req.Email,
		HashedPassword: hashed,
		FullName:       strings.TrimSpace(req.FullName),
	})
	if err != nil {
		return apierrors.Internal("failed to create user", err)
	}

	slog.Info("user registered", slog.Int("user_id", int(user.ID)))
	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// Login exchanges email+password for an access token.
func (s *APIV1Service) Login(c echo.Context) error {
	req := &LoginRequest{}
	if err := c.Bind(req); err != nil {
		return apierrors.InvalidArgument("malformed request body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	ctx := c.Request().Context()
	user, err := s.Store.GetUser(ctx, &store.FindUser{Email: &req.Email})
	if err != nil {
		return apierrors.Internal("failed to load user", err)
	}
	if user == nil || !auth.VerifyPassword(user.HashedPassword, req.Password) {
		return apierrors.Unauthorized("invalid email or password")
	}

	return s.issueToken(c, user)
}

// RequestOTP generates a one-time login code and emails it. The
// response is identical whether or not the account exists, so the
// endpoint cannot be used to enumerate emails.
func (s *APIV1Service) RequestOTP(c echo.Context) error {
	req := &OTPRequest{}
	if err := c.Bind(req); err != nil {
		return apierrors.InvalidArgument("malformed request body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" {
		return apierrors.InvalidArgument("email is required")
	}
	if s.Mailer == nil {
		return apierrors.ServiceUnavailable("mail delivery is not configured")
	}

	ctx := c.Request().Context()
	user, err := s.Store.GetUser(ctx, &store.FindUser{Email: &req.Email})
	if err != nil {
		return apierrors.Internal("failed to load user", err)
	}
	if user != nil {
		otp, err := auth.GenerateOTP()
		if err != nil {
			return apierrors.Internal("failed to generate otp", err)
		}
		otpHash := auth.HashOTP(otp)
		expiresTs := s.now().Add(auth.OTPTTL).Unix()
		if _, err := s.Store.UpdateUser(ctx, &store.UpdateUser{
			ID:           user.ID,
			OTPHash:      &otpHash,
			OTPExpiresTs: &expiresTs,
		}); err != nil {
			return apierrors.Internal("failed to store otp", err)
		}
		if err := s.Mailer.SendOTP(ctx, user.Email, otp); err != nil {
			slog.Error("failed to send otp mail", slog.Any("error", err))
			return apierrors.ServiceUnavailable("failed to send login code")
		}
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "if the account exists, a login code has been sent",
	})
}

// VerifyOTP exchanges email+code for an access token. Codes are single
// use; the stored hash is cleared on success.
func (s *APIV1Service) VerifyOTP(c echo.Context) error {
	req := &OTPVerifyRequest{}
	if err := c.Bind(req); err != nil {
		return apierrors.InvalidArgument("malformed request body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	ctx := c.Request().Context()
	user, err := s.Store.GetUser(ctx, &store.FindUser{Email: &req.Email})
	if err != nil {
		return apierrors.Internal("failed to load user", err)
	}
	if user == nil || !auth.VerifyOTP(req.OTP, user.OTPHash, user.OTPExpiresTs, s.now()) {
		return apierrors.Unauthorized("invalid or expired login code")
	}

	empty := ""
	zero := int64(0)
	if _, err := s.Store.UpdateUser(ctx, &store.UpdateUser{
		ID:           user.ID,
		OTPHash:      &empty,
		OTPExpiresTs: &zero,
	}); err != nil {
		return apierrors.Internal("failed to clear otp", err)
	}

	return s.issueToken(c, user)
}

// Me returns the authenticated user.
func (s *APIV1Service) Me(c echo.Context) error {
	user := auth.UserFromContext(c)
	if user == nil {
		return apierrors.Unauthorized("not authenticated")
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// UpdateMe updates profile fields of the authenticated user.
func (s *APIV1Service) UpdateMe(c echo.Context) error {
	user := auth.UserFromContext(c)
	if user == nil {
		return apierrors.Unauthorized("not authenticated")
	}
	req := &UpdateMeRequest{}
	if err := c.Bind(req); err != nil {
		return apierrors.InvalidArgument("malformed request body")
	}

	update := &store.UpdateUser{ID: user.ID}
	if req.FullName != nil {
		trimmed := strings.TrimSpace(*req.FullName)
		update.FullName = &trimmed
	}
	updated, err := s.Store.UpdateUser(c.Request().Context(), update)
	if err != nil {
		return apierrors.Internal("failed to update user", err)
	}
	return c.JSON(http.StatusOK, toUserResponse(updated))
}

func (s *APIV1Service) issueToken(c echo.Context, user *store.User) error {
	token, _, err := s.TokenManager.IssueAccessToken(user.ID, user.Email, s.now())
	if err != nil {
		return apierrors.Internal("failed to issue token", err)
	}

	if _, err := s.Store.CreateLoginHistory(c.Request().Context(), &store.LoginHistory{
		UserID:    user.ID,
		Ts:        s.now().Unix(),
		IPAddress: c.RealIP(),
		UserAgent: c.Request().UserAgent(),
	}); err != nil {
		slog.Warn("failed to record login history", slog.Any("error", err))
	}

	return c.JSON(http.StatusOK, &TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}
