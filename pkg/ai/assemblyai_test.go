package ai

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/voicenote/pkg/config"
)

type fakeTranscripts struct {
	calls   int
	results []aai.Transcript
	errs    []error
	got     []byte
}

func (f *fakeTranscripts) TranscribeFromReader(ctx context.Context, r io.Reader, params *aai.TranscriptOptionalParams) (aai.Transcript, error) {
	i := f.calls
	f.calls++
	f.got, _ = io.ReadAll(r)
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	if err != nil {
		return aai.Transcript{}, err
	}
	if i < len(f.results) {
		return f.results[i], nil
	}
	return f.results[len(f.results)-1], nil
}

func testClient(api transcriptsAPI) *AssemblyAIClient {
	return &AssemblyAIClient{
		api: api,
		cfg: config.TranscriptionConfig{
			LanguageCode:    "en",
			InitialInterval: time.Millisecond,
			MaxInterval:     2 * time.Millisecond,
			MaxElapsed:      time.Second,
			MaxRetries:      2,
		},
	}
}

func completed(text string) aai.Transcript {
	return aai.Transcript{Status: aai.TranscriptStatusCompleted, Text: aai.String(text)}
}

func TestTranscribeSuccess(t *testing.T) {
	api := &fakeTranscripts{results: []aai.Transcript{completed("  I am so happy today ")}}
	got := testClient(api).Transcribe(context.Background(), []byte("RIFF"))

	assert.Equal(t, Transcription{Status: StatusOK, Text: "I am so happy today"}, got)
	assert.True(t, got.OK())
	assert.Equal(t, []byte("RIFF"), api.got)
}

func TestTranscribeRetriesTransientErrors(t *testing.T) {
	api := &fakeTranscripts{
		errs:    []error{errors.New("connection reset"), nil},
		results: []aai.Transcript{{}, completed("hello")},
	}
	got := testClient(api).Transcribe(context.Background(), []byte("audio"))

	require.True(t, got.OK())
	assert.Equal(t, 2, api.calls)
	assert.Equal(t, []byte("audio"), api.got, "audio must be re-sent in full on retry")
}

func TestTranscribeUnavailableAfterRetries(t *testing.T) {
	boom := errors.New("service unavailable")
	api := &fakeTranscripts{errs: []error{boom, boom, boom, boom}}
	got := testClient(api).Transcribe(context.Background(), []byte("audio"))

	assert.Equal(t, StatusUnavailable, got.Status)
	assert.Contains(t, got.Reason, "service unavailable")
	assert.Equal(t, 3, api.calls)
}

func TestTranscribeNotUnderstood(t *testing.T) {
	tests := []struct {
		name   string
		result aai.Transcript
		reason string
	}{
		{"empty text", completed("   "), "no speech detected"},
		{"api error status", aai.Transcript{Status: aai.TranscriptStatusError, Error: aai.String("audio too short")}, "audio too short"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeTranscripts{results: []aai.Transcript{tt.result}}
			got := testClient(api).Transcribe(context.Background(), []byte("audio"))
			assert.Equal(t, StatusNotUnderstood, got.Status)
			assert.Contains(t, got.Reason, tt.reason)
		})
	}
}

func TestTranscribeWithoutAPIKey(t *testing.T) {
	c := NewAssemblyAIClient(config.TranscriptionConfig{}, nil)
	got := c.Transcribe(context.Background(), []byte("audio"))
	assert.Equal(t, StatusUnavailable, got.Status)
}

func TestTranscribeEmptyAudio(t *testing.T) {
	api := &fakeTranscripts{results: []aai.Transcript{completed("x")}}
	got := testClient(api).Transcribe(context.Background(), nil)
	assert.Equal(t, StatusNotUnderstood, got.Status)
	assert.Zero(t, api.calls)
}

func TestTranscribeCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	api := &fakeTranscripts{errs: []error{context.Canceled}}
	got := testClient(api).Transcribe(ctx, []byte("audio"))

	assert.Equal(t, StatusUnavailable, got.Status)
	assert.LessOrEqual(t, api.calls, 1)
}
