package errors

import (
	"errors"
	"fmt"
)

// Upload errors
var (
	ErrEmptyAudio       = errors.New("audio recording is empty")
	ErrAudioTooLarge    = errors.New("audio recording exceeds the upload limit")
	ErrUnsupportedAudio = errors.New("unsupported audio format")
)

// Integration errors
var (
	ErrStorage  = errors.New("object storage failure")
	ErrCache    = errors.New("token store failure")
	ErrAnalysis = errors.New("analysis failed")
)

// Pagination errors
var (
	ErrInvalidPage = errors.New("page and page size must be positive")
)

// TranscriptionError reports a recording that did not yield text. Status is
// "not_understood" or "unavailable".
type TranscriptionError struct {
	Status string
	Reason string
}

func (e *TranscriptionError) Error() string {
	return fmt.Sprintf("transcription %s: %s", e.Status, e.Reason)
}

// AsTranscriptionError unwraps a TranscriptionError from err
func AsTranscriptionError(err error) (*TranscriptionError, bool) {
	var te *TranscriptionError
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}
