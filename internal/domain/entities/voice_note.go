package entities

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/johnquangdev/voicenote/pkg/textanalysis"
)

// VoiceNoteSource records how the transcript was obtained
type VoiceNoteSource string

const (
	SourceAudio VoiceNoteSource = "audio"
	SourceText  VoiceNoteSource = "text"
)

// VoiceNote is one analyzed utterance appended to a user's history
type VoiceNote struct {
	ID          uuid.UUID              `json:"id" gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID              `json:"user_id" gorm:"type:uuid;not null;index:idx_voice_notes_user_created,priority:1"`
	Username    string                 `json:"username" gorm:"type:varchar(64);not null"`
	Source      VoiceNoteSource        `json:"source" gorm:"type:varchar(16);not null"`
	Transcript  string                 `json:"transcript" gorm:"type:text;not null"`
	Normalized  string                 `json:"normalized" gorm:"type:text;not null"`
	Sentiment   textanalysis.Sentiment `json:"sentiment" gorm:"type:varchar(16);not null"`
	Emotions    datatypes.JSON         `json:"emotions"`
	Dominant    textanalysis.Emotion   `json:"dominant_emotion" gorm:"column:dominant_emotion;type:varchar(16);not null"`
	AudioObject *string                `json:"audio_object,omitempty" gorm:"type:varchar(500)"`
	ChartObject *string                `json:"chart_object,omitempty" gorm:"type:varchar(500)"`
	CreatedAt   time.Time              `json:"created_at" gorm:"autoCreateTime;index:idx_voice_notes_user_created,priority:2"`
}

// NewVoiceNote builds a voice note from an analysis result
func NewVoiceNote(user *User, source VoiceNoteSource, res *textanalysis.Result) (*VoiceNote, error) {
	emotions, err := json.Marshal(res.Emotions.Ordered())
	if err != nil {
		return nil, fmt.Errorf("encode emotions: %w", err)
	}
	return &VoiceNote{
		ID:         uuid.New(),
		UserID:     user.ID,
		Username:   user.Username,
		Source:     source,
		Transcript: res.Utterance,
		Normalized: res.Normalized,
		Sentiment:  res.Sentiment,
		Emotions:   datatypes.JSON(emotions),
		Dominant:   res.Dominant,
		CreatedAt:  time.Now(),
	}, nil
}

// Distribution decodes the stored emotion scores
func (v *VoiceNote) Distribution() (textanalysis.EmotionDistribution, error) {
	var scores []textanalysis.EmotionScore
	if len(v.Emotions) > 0 {
		if err := json.Unmarshal(v.Emotions, &scores); err != nil {
			return nil, fmt.Errorf("decode emotions: %w", err)
		}
	}
	dist := textanalysis.NewEmotionDistribution()
	for _, s := range scores {
		if s.Emotion.IsValid() {
			dist[s.Emotion] = s.Score
		}
	}
	return dist, nil
}

// IsOwnedBy checks whether the note belongs to userID
func (v *VoiceNote) IsOwnedBy(userID uuid.UUID) bool {
	return v.UserID == userID
}
