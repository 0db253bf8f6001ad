package voicenote

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/voicenote/internal/domain/entities"
	"github.com/johnquangdev/voicenote/internal/domain/repositories"
	"github.com/johnquangdev/voicenote/internal/infrastructure/events"
	"github.com/johnquangdev/voicenote/internal/infrastructure/storage"
	usecaseErrors "github.com/johnquangdev/voicenote/internal/usecase/errors"
	"github.com/johnquangdev/voicenote/pkg/ai"
	"github.com/johnquangdev/voicenote/pkg/textanalysis"
)

// audioFormats maps accepted file extensions to their content type
var audioFormats = map[string]string{
	".wav":  "audio/wav",
	".mp3":  "audio/mpeg",
	".m4a":  "audio/mp4",
	".webm": "audio/webm",
	".ogg":  "audio/ogg",
}

// VoiceNoteService handles voice note business logic
type VoiceNoteService struct {
	analyzer    *textanalysis.Analyzer
	transcriber ai.Transcriber
	notes       repositories.VoiceNoteRepository
	objects     storage.ObjectStore
	publisher   events.Publisher
	opts        Options
	logger      *zap.Logger
}

// NewVoiceNoteService creates a new voice note service. A nil publisher
// drops events.
func NewVoiceNoteService(
	analyzer *textanalysis.Analyzer,
	transcriber ai.Transcriber,
	notes repositories.VoiceNoteRepository,
	objects storage.ObjectStore,
	publisher events.Publisher,
	opts Options,
	logger *zap.Logger,
) *VoiceNoteService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.MaxAudioBytes <= 0 {
		opts.MaxAudioBytes = 10 << 20
	}
	if opts.URLExpiry <= 0 {
		opts.URLExpiry = time.Hour
	}
	return &VoiceNoteService{
		analyzer:    analyzer,
		transcriber: transcriber,
		notes:       notes,
		objects:     objects,
		publisher:   publisher,
		opts:        opts,
		logger:      logger,
	}
}

// AudioFormat resolves the extension and content type of an upload
func AudioFormat(filename, contentType string) (ext, ct string, ok bool) {
	ext = strings.ToLower(filepath.Ext(filename))
	if ct, ok := audioFormats[ext]; ok {
		return ext, ct, true
	}
	mediaType := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	for ext, ct := range audioFormats {
		if ct == mediaType {
			return ext, ct, true
		}
	}
	return "", "", false
}

// SubmitAudio validates and transcribes the recording first; nothing is
// stored unless transcription produced text.
func (s *VoiceNoteService) SubmitAudio(ctx context.Context, user *entities.User, upload AudioUpload) (*Submission, error) {
	if len(upload.Data) == 0 {
		return nil, usecaseErrors.ErrEmptyAudio
	}
	if int64(len(upload.Data)) > s.opts.MaxAudioBytes {
		return nil, usecaseErrors.ErrAudioTooLarge
	}
	ext, contentType, ok := AudioFormat(upload.Filename, upload.ContentType)
	if !ok {
		return nil, usecaseErrors.ErrUnsupportedAudio
	}

	tr := s.transcriber.Transcribe(ctx, upload.Data)
	if !tr.OK() {
		s.logger.Warn("Transcription failed",
			zap.String("username", user.Username),
			zap.String("status", string(tr.Status)),
			zap.String("reason", tr.Reason),
		)
		return nil, &usecaseErrors.TranscriptionError{Status: string(tr.Status), Reason: tr.Reason}
	}

	note, res, err := s.analyze(user, entities.SourceAudio, tr.Text)
	if err != nil {
		return nil, err
	}

	audioKey := storage.AudioKey(user.Username, note.ID.String(), ext)
	if err := s.objects.Put(ctx, audioKey, upload.Data, contentType); err != nil {
		return nil, fmt.Errorf("%w: store audio: %w", usecaseErrors.ErrStorage, err)
	}
	note.AudioObject = &audioKey

	return s.persist(ctx, note, res)
}

// SubmitText runs the same pipeline on typed text
func (s *VoiceNoteService) SubmitText(ctx context.Context, user *entities.User, text string) (*Submission, error) {
	if strings.TrimSpace(text) == "" {
		return nil, entities.ErrEmptyTranscript
	}
	note, res, err := s.analyze(user, entities.SourceText, text)
	if err != nil {
		return nil, err
	}
	return s.persist(ctx, note, res)
}

// Analyze runs the pipeline on text without storing anything
func (s *VoiceNoteService) Analyze(_ context.Context, text string) (*textanalysis.Result, error) {
	res, err := s.analyzer.Analyze(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", usecaseErrors.ErrAnalysis, err)
	}
	return res, nil
}

// List returns a page of the user's voice notes, newest first
func (s *VoiceNoteService) List(ctx context.Context, userID uuid.UUID, page, pageSize int) (*Page, error) {
	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = DefaultPageSize
	}
	if page < 0 || pageSize < 0 {
		return nil, usecaseErrors.ErrInvalidPage
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	total, err := s.notes.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count voice notes: %w", err)
	}
	notes, err := s.notes.ListByUser(ctx, userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list voice notes: %w", err)
	}
	return &Page{Notes: notes, Total: total, Page: page, PageSize: pageSize}, nil
}

// Get returns one of the user's voice notes. Notes owned by someone else are
// reported as not found.
func (s *VoiceNoteService) Get(ctx context.Context, userID, noteID uuid.UUID) (*entities.VoiceNote, error) {
	note, err := s.notes.FindByID(ctx, noteID)
	if err != nil {
		if errors.Is(err, entities.ErrVoiceNoteNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get voice note: %w", err)
	}
	if !note.IsOwnedBy(userID) {
		return nil, entities.ErrVoiceNoteNotFound
	}
	return note, nil
}

// Chart re-renders the emotion chart from the stored distribution
func (s *VoiceNoteService) Chart(ctx context.Context, userID, noteID uuid.UUID) (*textanalysis.ChartArtifact, error) {
	note, err := s.Get(ctx, userID, noteID)
	if err != nil {
		return nil, err
	}
	dist, err := note.Distribution()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", usecaseErrors.ErrAnalysis, err)
	}
	chart, err := textanalysis.PlotEmotions(dist)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", usecaseErrors.ErrAnalysis, err)
	}
	return chart, nil
}

// Object reads back a stored object. Charts are content addressed and
// readable by any user; recordings only by their owner. Everything else is
// reported as missing.
func (s *VoiceNoteService) Object(ctx context.Context, user *entities.User, key string) (*StoredObject, error) {
	key = strings.TrimPrefix(key, "/")
	if strings.Contains(key, "..") {
		return nil, storage.ErrObjectNotFound
	}

	var contentType string
	switch {
	case strings.HasPrefix(key, "charts/") && strings.HasSuffix(key, ".png"):
		contentType = textanalysis.ChartContentType
	case strings.HasPrefix(key, "audio/"+user.Username+"/"):
		ct, ok := audioFormats[strings.ToLower(filepath.Ext(key))]
		if !ok {
			return nil, storage.ErrObjectNotFound
		}
		contentType = ct
	default:
		return nil, storage.ErrObjectNotFound
	}

	data, err := s.objects.Get(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: read object: %w", usecaseErrors.ErrStorage, err)
	}
	return &StoredObject{Key: key, ContentType: contentType, Data: data}, nil
}

func (s *VoiceNoteService) analyze(user *entities.User, source entities.VoiceNoteSource, text string) (*entities.VoiceNote, *textanalysis.Result, error) {
	res, err := s.analyzer.Analyze(text)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", usecaseErrors.ErrAnalysis, err)
	}
	note, err := entities.NewVoiceNote(user, source, res)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", usecaseErrors.ErrAnalysis, err)
	}
	return note, res, nil
}

// persist uploads the chart, appends the note and announces it
func (s *VoiceNoteService) persist(ctx context.Context, note *entities.VoiceNote, res *textanalysis.Result) (*Submission, error) {
	chartKey := storage.ChartKey(res.Chart.Key)
	if err := s.objects.Put(ctx, chartKey, res.Chart.Data, res.Chart.ContentType); err != nil {
		return nil, fmt.Errorf("%w: store chart: %w", usecaseErrors.ErrStorage, err)
	}
	note.ChartObject = &chartKey

	if err := s.notes.Append(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to append voice note: %w", err)
	}

	chartURL, err := s.objects.URL(ctx, chartKey, s.opts.URLExpiry)
	if err != nil {
		s.logger.Warn("Failed to sign chart URL", zap.String("key", chartKey), zap.Error(err))
	}

	evt := events.VoiceNoteAnalyzed{
		VoiceNoteID:     note.ID,
		Username:        note.Username,
		Sentiment:       note.Sentiment,
		DominantEmotion: note.Dominant,
		Emotions:        res.Emotions.Ordered(),
		CreatedAt:       note.CreatedAt,
	}
	if err := s.publisher.PublishVoiceNoteAnalyzed(ctx, evt); err != nil {
		s.logger.Error("❌ Failed to publish voice note event", zap.String("voice_note_id", note.ID.String()), zap.Error(err))
	}

	s.logger.Info("✅ Voice note stored",
		zap.String("voice_note_id", note.ID.String()),
		zap.String("username", note.Username),
		zap.String("source", string(note.Source)),
		zap.String("sentiment", string(note.Sentiment)),
		zap.String("dominant_emotion", string(note.Dominant)),
	)

	return &Submission{Note: note, Result: res, ChartURL: chartURL}, nil
}
