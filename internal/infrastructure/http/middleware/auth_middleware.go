package middleware

import (
	"context"
	stdErrors "errors"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/voicenote/errors"
	"github.com/johnquangdev/voicenote/internal/domain/entities"
)

const (
	// UserKey is the echo context key for the authenticated *entities.User
	UserKey = "user"
	// UserIDKey is the echo context key for the authenticated user's uuid.UUID
	UserIDKey = "user_id"
)

// SessionValidator resolves an access token to its user
type SessionValidator interface {
	ValidateSession(ctx context.Context, accessToken string) (*entities.User, error)
}

// EchoAuth returns an Echo middleware that validates JWT and sets
// "user_id" (uuid.UUID) and "user" (*entities.User) into Echo context.
// Failures are returned as AppErrors for the HTTP error handler.
func EchoAuth(validator SessionValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := ExtractToken(c)
			if token == "" {
				return errors.ErrUnauthenticated()
			}

			user, err := validator.ValidateSession(c.Request().Context(), token)
			if err != nil {
				switch {
				case stdErrors.Is(err, entities.ErrInvalidToken), stdErrors.Is(err, entities.ErrUserNotFound):
					return errors.ErrInvalidToken()
				case stdErrors.Is(err, entities.ErrUnauthorized), stdErrors.Is(err, entities.ErrUserInactive):
					return errors.ErrUserInactive()
				default:
					return errors.ErrInternal(err)
				}
			}

			c.Set(UserKey, user)
			c.Set(UserIDKey, user.ID)

			return next(c)
		}
	}
}

// ExtractToken reads a bearer token from the Authorization header, falling
// back to the access_token cookie.
func ExtractToken(c echo.Context) string {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	if cookie, err := c.Cookie("access_token"); err == nil {
		return cookie.Value
	}
	return ""
}

// GetUser retrieves the authenticated user from the echo context
func GetUser(c echo.Context) (*entities.User, bool) {
	user, ok := c.Get(UserKey).(*entities.User)
	return user, ok && user != nil
}

// GetUserID retrieves the authenticated user's ID from the echo context
func GetUserID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(UserIDKey).(uuid.UUID)
	return id, ok
}
