package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/voicenote/pkg/textanalysis"
)

// VoiceNoteAnalyzed is published after a voice note has been stored
type VoiceNoteAnalyzed struct {
	VoiceNoteID     uuid.UUID                   `json:"voice_note_id"`
	Username        string                      `json:"username"`
	Sentiment       textanalysis.Sentiment      `json:"sentiment"`
	DominantEmotion textanalysis.Emotion        `json:"dominant_emotion"`
	Emotions        []textanalysis.EmotionScore `json:"emotions"`
	CreatedAt       time.Time                   `json:"created_at"`
}

// Publisher delivers domain events
type Publisher interface {
	PublishVoiceNoteAnalyzed(ctx context.Context, evt VoiceNoteAnalyzed) error
	Close()
}

// NopPublisher drops every event
type NopPublisher struct{}

func (NopPublisher) PublishVoiceNoteAnalyzed(context.Context, VoiceNoteAnalyzed) error { return nil }

func (NopPublisher) Close() {}
