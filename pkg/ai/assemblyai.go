package ai

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
	backoff "github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/voicenote/pkg/config"
)

// TranscriptionStatus is the outcome of one transcription attempt
type TranscriptionStatus string

const (
	StatusOK            TranscriptionStatus = "ok"
	StatusNotUnderstood TranscriptionStatus = "not_understood"
	StatusUnavailable   TranscriptionStatus = "unavailable"
)

// Transcription is the result of transcribing a recording. Text is set only
// when Status is StatusOK; Reason explains every other status.
type Transcription struct {
	Status TranscriptionStatus `json:"status"`
	Text   string              `json:"text,omitempty"`
	Reason string              `json:"reason,omitempty"`
}

// OK reports whether usable text was produced
func (t Transcription) OK() bool {
	return t.Status == StatusOK
}

// Transcriber turns recorded audio into text. Failures are reported through
// the returned Transcription, never as an error.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) Transcription
}

// transcriptsAPI is the part of the AssemblyAI SDK the client uses
type transcriptsAPI interface {
	TranscribeFromReader(ctx context.Context, reader io.Reader, params *aai.TranscriptOptionalParams) (aai.Transcript, error)
}

// AssemblyAIClient transcribes audio with the AssemblyAI SDK
type AssemblyAIClient struct {
	api    transcriptsAPI
	cfg    config.TranscriptionConfig
	logger *zap.Logger
}

// NewAssemblyAIClient creates an AssemblyAI client. An empty API key yields a
// client that always reports StatusUnavailable.
func NewAssemblyAIClient(cfg config.TranscriptionConfig, logger *zap.Logger) *AssemblyAIClient {
	c := &AssemblyAIClient{cfg: cfg, logger: logger}
	if cfg.APIKey != "" {
		c.api = aai.NewClient(cfg.APIKey).Transcripts
	}
	return c
}

// Transcribe uploads audio and waits for the transcript. Submission is
// retried with exponential backoff; a completed transcript without text is
// reported as not understood.
func (c *AssemblyAIClient) Transcribe(ctx context.Context, audio []byte) Transcription {
	if c.api == nil {
		return Transcription{Status: StatusUnavailable, Reason: "transcription service is not configured"}
	}
	if len(audio) == 0 {
		return Transcription{Status: StatusNotUnderstood, Reason: "recording is empty"}
	}

	params := &aai.TranscriptOptionalParams{
		LanguageCode: aai.TranscriptLanguageCode(c.cfg.LanguageCode),
		Punctuate:    aai.Bool(true),
	}

	var (
		transcript aai.Transcript
		attempt    int
	)
	submitFn := func() error {
		attempt++
		tr, err := c.api.TranscribeFromReader(ctx, bytes.NewReader(audio), params)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			if c.logger != nil {
				c.logger.Warn("⚠️ AssemblyAI request failed",
					zap.Int("attempt", attempt),
					zap.Error(err),
				)
			}
			return err
		}
		transcript = tr
		return nil
	}

	// Retry logic with exponential backoff
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.cfg.InitialInterval
	bo.MaxInterval = c.cfg.MaxInterval
	bo.MaxElapsedTime = c.cfg.MaxElapsed

	var policy backoff.BackOff = bo
	if c.cfg.MaxRetries > 0 {
		policy = backoff.WithMaxRetries(bo, c.cfg.MaxRetries)
	}

	if err := backoff.Retry(submitFn, backoff.WithContext(policy, ctx)); err != nil {
		if c.logger != nil {
			c.logger.Error("❌ AssemblyAI transcription failed after retries",
				zap.Int("attempts", attempt),
				zap.Error(err),
			)
		}
		return Transcription{Status: StatusUnavailable, Reason: err.Error()}
	}

	return interpret(transcript)
}

// interpret maps a finished SDK transcript onto a Transcription
func interpret(tr aai.Transcript) Transcription {
	switch tr.Status {
	case aai.TranscriptStatusCompleted:
		text := strings.TrimSpace(deref(tr.Text))
		if text == "" {
			return Transcription{Status: StatusNotUnderstood, Reason: "no speech detected"}
		}
		return Transcription{Status: StatusOK, Text: text}
	case aai.TranscriptStatusError:
		reason := "transcription failed"
		if msg := deref(tr.Error); msg != "" {
			reason = fmt.Sprintf("transcription failed: %s", msg)
		}
		return Transcription{Status: StatusNotUnderstood, Reason: reason}
	default:
		return Transcription{
			Status: StatusUnavailable,
			Reason: fmt.Sprintf("transcript did not complete (status %q)", tr.Status),
		}
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
