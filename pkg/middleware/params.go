package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/voicenote/errors"
)

// RequireUUIDParam parses the named path parameter as a UUID and stores it
// in the echo context under key. Malformed IDs are rejected before the
// handler runs.
func RequireUUIDParam(param, key string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, err := uuid.Parse(c.Param(param))
			if err != nil {
				return errors.ErrInvalidArgument(param + " must be a valid UUID").WithDetail(param, c.Param(param))
			}
			c.Set(key, id)
			return next(c)
		}
	}
}

// UUIDFromContext returns the UUID stored by RequireUUIDParam
func UUIDFromContext(c echo.Context, key string) (uuid.UUID, bool) {
	id, ok := c.Get(key).(uuid.UUID)
	return id, ok
}
