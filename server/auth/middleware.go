package auth

import (
	"strings"

	"github.com/labstack/echo/v4"

	apierrors "github.com/speaknote/remind/server/internal/errors"
	"github.com/speaknote/remind/store"
)

const userContextKey = "auth/user"

// Middleware authenticates requests with a Bearer access token and puts
// the resolved user on the echo context.
func Middleware(tm *TokenManager, st *store.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return apierrors.Unauthorized("missing authorization header")
			}
			tokenString := strings.TrimPrefix(header, "Bearer ")
			if tokenString == header || tokenString == "" {
				return apierrors.Unauthorized("malformed authorization header")
			}

			claims, err := tm.ParseAccessToken(tokenString)
			if err != nil {
				return apierrors.Unauthorized("invalid or expired token")
			}

			user, err := st.GetUser(c.Request().Context(), &store.FindUser{ID: &claims.UserID})
			if err != nil {
				return apierrors.Internal("failed to load user", err)
			}
			if user == nil {
				return apierrors.Unauthorized("user no longer exists")
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// UserFromContext returns the authenticated user set by Middleware, or
// nil for unauthenticated requests.
func UserFromContext(c echo.Context) *store.User {
	user, _ := c.Get(userContextKey).(*store.User)
	return user
}
