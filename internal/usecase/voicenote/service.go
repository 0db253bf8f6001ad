package voicenote

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/voicenote/internal/domain/entities"
	"github.com/johnquangdev/voicenote/pkg/textanalysis"
)

// Service defines the interface for the voice note use case
type Service interface {
	// SubmitAudio transcribes a recording, analyzes it and appends it to the user's history
	SubmitAudio(ctx context.Context, user *entities.User, upload AudioUpload) (*Submission, error)

	// SubmitText analyzes typed text and appends it to the user's history
	SubmitText(ctx context.Context, user *entities.User, text string) (*Submission, error)

	// Analyze runs the pipeline on text without storing anything
	Analyze(ctx context.Context, text string) (*textanalysis.Result, error)

	// List returns a page of the user's voice notes, newest first
	List(ctx context.Context, userID uuid.UUID, page, pageSize int) (*Page, error)

	// Get returns one of the user's voice notes
	Get(ctx context.Context, userID, noteID uuid.UUID) (*entities.VoiceNote, error)

	// Chart renders the emotion chart of one of the user's voice notes
	Chart(ctx context.Context, userID, noteID uuid.UUID) (*textanalysis.ChartArtifact, error)

	// Object reads a stored recording or chart the user may access
	Object(ctx context.Context, user *entities.User, key string) (*StoredObject, error)
}

// Ensure VoiceNoteService implements Service interface
var _ Service = (*VoiceNoteService)(nil)

// AudioUpload is a recording received from a client
type AudioUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Submission is a stored voice note together with its full analysis
type Submission struct {
	Note     *entities.VoiceNote
	Result   *textanalysis.Result
	ChartURL string
}

// StoredObject is a recording or chart read back from object storage
type StoredObject struct {
	Key         string
	ContentType string
	Data        []byte
}

// Page is one page of a user's history
type Page struct {
	Notes    []*entities.VoiceNote
	Total    int64
	Page     int
	PageSize int
}

// Options tunes the voice note service
type Options struct {
	MaxAudioBytes int64
	URLExpiry     time.Duration
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)
