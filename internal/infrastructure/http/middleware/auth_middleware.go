package middleware

import (
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "github.com/johnquangdev/meeting-minutes/errors"
	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/auth"
)

// Echo context keys set by EchoAuth
const (
	UserKey   = "user"
	UserIDKey = "user_id"
)

// EchoAuth returns an Echo middleware that validates the Bearer access
// token and sets "user" (*entities.User) and "user_id" (uuid.UUID)
func EchoAuth(authService auth.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := ExtractToken(c)
			if token == "" {
				return apperrors.ErrUnauthorized("Missing authorization token")
			}

			user, err := authService.ValidateAccessToken(c.Request().Context(), token)
			if err != nil {
				return apperrors.ErrInvalidToken()
			}

			c.Set(UserKey, user)
			c.Set(UserIDKey, user.ID)
			return next(c)
		}
	}
}

// RequireRole rejects users whose role is not listed. It must run after EchoAuth.
func RequireRole(roles ...entities.UserRole) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := CurrentUser(c)
			if !ok {
				return apperrors.ErrUnauthorized("User not authenticated")
			}
			for _, role := range roles {
				if user.Role == role {
					return next(c)
				}
			}
			return apperrors.ErrForbidden("Insufficient permissions")
		}
	}
}

// CurrentUser returns the user set by EchoAuth
func CurrentUser(c echo.Context) (*entities.User, bool) {
	user, ok := c.Get(UserKey).(*entities.User)
	return user, ok && user != nil
}

// CurrentUserID returns the user ID set by EchoAuth
func CurrentUserID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(UserIDKey).(uuid.UUID)
	return id, ok
}

// ExtractToken reads a Bearer token from the Authorization header, falling
// back to the access_token cookie
func ExtractToken(c echo.Context) string {
	if header := c.Request().Header.Get(echo.HeaderAuthorization); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	if cookie, err := c.Cookie("access_token"); err == nil {
		return cookie.Value
	}
	return ""
}
