package middleware

import (
	stdErrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/voicenote/errors"
)

func TestRequireUUIDParam(t *testing.T) {
	e := echo.New()
	mw := RequireUUIDParam("id", "voice_note_id")

	var seen uuid.UUID
	h := mw(func(c echo.Context) error {
		seen, _ = UUIDFromContext(c, "voice_note_id")
		return c.NoContent(http.StatusOK)
	})

	id := uuid.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues(id.String())
	require.NoError(t, h(c))
	assert.Equal(t, id, seen)

	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")
	err := h(c)
	var appErr errors.AppError
	require.True(t, stdErrors.As(err, &appErr))
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode)
	assert.Equal(t, errors.ErrorCode_INVALID_ARGUMENT, appErr.Code)
}
