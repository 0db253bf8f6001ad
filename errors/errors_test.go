package errors

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorError(t *testing.T) {
	err := ErrInvalidArgument("text is required")
	assert.Equal(t, "[INVALID_ARGUMENT] text is required", err.Error())

	raw := stderrors.New("dial tcp: refused")
	wrapped := ErrStorageFailed("put", raw)
	assert.Equal(t, "[INTEGRATION_STORAGE_FAILED] Storage operation failed: put: dial tcp: refused", wrapped.Error())
	assert.ErrorIs(t, wrapped, raw)
}

func TestWithDetailDoesNotShareMaps(t *testing.T) {
	base := ErrTranscriptionUnavailable("timeout")
	extended := base.WithDetail("attempts", "3")

	assert.Equal(t, map[string]string{"reason": "timeout"}, base.Details)
	assert.Equal(t, "3", extended.Details["attempts"])
}

func TestTranscriptionErrors(t *testing.T) {
	assert.Equal(t, http.StatusUnprocessableEntity, ErrTranscriptionNotUnderstood("empty").HTTPCode)
	assert.Equal(t, http.StatusServiceUnavailable, ErrTranscriptionUnavailable("down").HTTPCode)
}

func TestErrorCodeString(t *testing.T) {
	assert.Equal(t, "TRANSCRIPTION_NOT_UNDERSTOOD", ErrorCode_TRANSCRIPTION_NOT_UNDERSTOOD.String())
	assert.Equal(t, "UNKNOWN", ErrorCode(999).String())

	text, err := ErrorCode_VOICE_NOTE_NOT_FOUND.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "VOICE_NOTE_NOT_FOUND", string(text))
}
