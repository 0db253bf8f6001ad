package voicenote

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/voicenote/internal/adapter/repository"
	"github.com/johnquangdev/voicenote/internal/domain/entities"
	"github.com/johnquangdev/voicenote/internal/infrastructure/database"
	"github.com/johnquangdev/voicenote/internal/infrastructure/events"
	"github.com/johnquangdev/voicenote/internal/infrastructure/storage"
	usecaseErrors "github.com/johnquangdev/voicenote/internal/usecase/errors"
	"github.com/johnquangdev/voicenote/pkg/ai"
	"github.com/johnquangdev/voicenote/pkg/textanalysis"
)

type fakeTranscriber struct {
	result ai.Transcription
	calls  int
}

func (f *fakeTranscriber) Transcribe(context.Context, []byte) ai.Transcription {
	f.calls++
	return f.result
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.VoiceNoteAnalyzed
	err    error
}

func (p *recordingPublisher) PublishVoiceNoteAnalyzed(_ context.Context, evt events.VoiceNoteAnalyzed) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return p.err
}

func (p *recordingPublisher) Close() {}

type fixture struct {
	svc         *VoiceNoteService
	transcriber *fakeTranscriber
	objects     *storage.MemoryStore
	publisher   *recordingPublisher
	users       *repository.UserRepository
	user        *entities.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := database.OpenTest(t)
	analyzer, err := textanalysis.NewAnalyzer(nil)
	require.NoError(t, err)

	f := &fixture{
		transcriber: &fakeTranscriber{result: ai.Transcription{Status: ai.StatusOK, Text: "I am so happy today!"}},
		objects:     storage.NewMemoryStore(),
		publisher:   &recordingPublisher{},
		users:       repository.NewUserRepository(db),
	}
	f.svc = NewVoiceNoteService(
		analyzer,
		f.transcriber,
		repository.NewVoiceNoteRepository(db),
		f.objects,
		f.publisher,
		Options{MaxAudioBytes: 1024},
		nil,
	)
	f.user = f.addUser(t, "alice")
	return f
}

func (f *fixture) addUser(t *testing.T, username string) *entities.User {
	t.Helper()
	u := entities.NewUser(username, username+"@example.com", "hash")
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func wav() AudioUpload {
	return AudioUpload{Filename: "note.wav", ContentType: "audio/wav", Data: []byte("RIFF....WAVEfmt ")}
}

func TestSubmitAudio(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	sub, err := f.svc.SubmitAudio(ctx, f.user, wav())
	require.NoError(t, err)

	assert.Equal(t, "I am so happy today!", sub.Note.Transcript)
	assert.Equal(t, textanalysis.SentimentPositive, sub.Note.Sentiment)
	assert.Equal(t, textanalysis.EmotionHappy, sub.Note.Dominant)
	assert.Equal(t, entities.SourceAudio, sub.Note.Source)
	require.NotNil(t, sub.Note.AudioObject)
	require.NotNil(t, sub.Note.ChartObject)
	assert.Equal(t, "audio/alice/"+sub.Note.ID.String()+".wav", *sub.Note.AudioObject)
	assert.Equal(t, "memory://"+*sub.Note.ChartObject, sub.ChartURL)
	assert.ElementsMatch(t, []string{*sub.Note.AudioObject, *sub.Note.ChartObject}, f.objects.Keys())

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, sub.Note.ID, f.publisher.events[0].VoiceNoteID)
	assert.Equal(t, textanalysis.EmotionHappy, f.publisher.events[0].DominantEmotion)

	got, err := f.svc.Get(ctx, f.user.ID, sub.Note.ID)
	require.NoError(t, err)
	assert.Equal(t, sub.Note.Transcript, got.Transcript)
}

func TestSubmitAudioTranscriptionFailures(t *testing.T) {
	cases := []struct {
		name   string
		result ai.Transcription
		status string
	}{
		{"not understood", ai.Transcription{Status: ai.StatusNotUnderstood, Reason: "no speech detected"}, "not_understood"},
		{"unavailable", ai.Transcription{Status: ai.StatusUnavailable, Reason: "connection refused"}, "unavailable"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			f := newFixture(t)
			f.transcriber.result = tc.result

			_, err := f.svc.SubmitAudio(ctx, f.user, wav())
			te, ok := usecaseErrors.AsTranscriptionError(err)
			require.True(t, ok, "got %v", err)
			assert.Equal(t, tc.status, te.Status)
			assert.Equal(t, tc.result.Reason, te.Reason)

			// nothing persisted
			assert.Empty(t, f.objects.Keys())
			assert.Empty(t, f.publisher.events)
			page, err := f.svc.List(ctx, f.user.ID, 1, 10)
			require.NoError(t, err)
			assert.Zero(t, page.Total)
		})
	}
}

func TestSubmitAudioValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.SubmitAudio(ctx, f.user, AudioUpload{Filename: "a.wav"})
	assert.ErrorIs(t, err, usecaseErrors.ErrEmptyAudio)

	_, err = f.svc.SubmitAudio(ctx, f.user, AudioUpload{Filename: "a.wav", Data: make([]byte, 2048)})
	assert.ErrorIs(t, err, usecaseErrors.ErrAudioTooLarge)

	_, err = f.svc.SubmitAudio(ctx, f.user, AudioUpload{Filename: "a.txt", ContentType: "text/plain", Data: []byte("x")})
	assert.ErrorIs(t, err, usecaseErrors.ErrUnsupportedAudio)

	assert.Zero(t, f.transcriber.calls)
}

func TestAudioFormat(t *testing.T) {
	ext, ct, ok := AudioFormat("Recording.MP3", "")
	assert.True(t, ok)
	assert.Equal(t, ".mp3", ext)
	assert.Equal(t, "audio/mpeg", ct)

	ext, _, ok = AudioFormat("blob", "audio/webm;codecs=opus")
	assert.True(t, ok)
	assert.Equal(t, ".webm", ext)

	_, _, ok = AudioFormat("notes.pdf", "application/pdf")
	assert.False(t, ok)
}

func TestSubmitText(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	sub, err := f.svc.SubmitText(ctx, f.user, "I'm furious and terrified")
	require.NoError(t, err)
	assert.Equal(t, entities.SourceText, sub.Note.Source)
	assert.Nil(t, sub.Note.AudioObject)
	assert.Zero(t, f.transcriber.calls)

	_, err = f.svc.SubmitText(ctx, f.user, "   ")
	assert.ErrorIs(t, err, entities.ErrEmptyTranscript)
}

func TestPublishFailureDoesNotFailSubmission(t *testing.T) {
	f := newFixture(t)
	f.publisher.err = errors.New("nats: connection closed")

	sub, err := f.svc.SubmitText(context.Background(), f.user, "what a wonderful day")
	require.NoError(t, err)
	assert.NotNil(t, sub.Note)
}

func TestAnalyzeIsStateless(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	res, err := f.svc.Analyze(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, textanalysis.SentimentNeutral, res.Sentiment)
	assert.Equal(t, textanalysis.EmotionNeutral, res.Dominant)
	assert.NotNil(t, res.Chart)

	assert.Empty(t, f.objects.Keys())
	assert.Empty(t, f.publisher.events)
}

func TestListPagination(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	for _, text := range []string{"one happy note", "two sad notes", "three calm notes"} {
		_, err := f.svc.SubmitText(ctx, f.user, text)
		require.NoError(t, err)
	}

	page, err := f.svc.List(ctx, f.user.ID, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Len(t, page.Notes, 2)

	page, err = f.svc.List(ctx, f.user.ID, 2, 2)
	require.NoError(t, err)
	assert.Len(t, page.Notes, 1)

	page, err = f.svc.List(ctx, f.user.ID, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultPageSize, page.PageSize)

	page, err = f.svc.List(ctx, f.user.ID, 1, 1000)
	require.NoError(t, err)
	assert.Equal(t, MaxPageSize, page.PageSize)

	_, err = f.svc.List(ctx, f.user.ID, -1, 10)
	assert.ErrorIs(t, err, usecaseErrors.ErrInvalidPage)
}

func TestGetAndChartEnforceOwnership(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	bob := f.addUser(t, "bob")

	sub, err := f.svc.SubmitText(ctx, f.user, "I am so happy")
	require.NoError(t, err)

	_, err = f.svc.Get(ctx, bob.ID, sub.Note.ID)
	assert.ErrorIs(t, err, entities.ErrVoiceNoteNotFound)
	_, err = f.svc.Chart(ctx, bob.ID, sub.Note.ID)
	assert.ErrorIs(t, err, entities.ErrVoiceNoteNotFound)
	_, err = f.svc.Get(ctx, f.user.ID, uuid.New())
	assert.ErrorIs(t, err, entities.ErrVoiceNoteNotFound)

	chart, err := f.svc.Chart(ctx, f.user.ID, sub.Note.ID)
	require.NoError(t, err)
	assert.Equal(t, sub.Result.Chart.Key, chart.Key)
	assert.Equal(t, sub.Result.Chart.Data, chart.Data)
}

func TestObjectAccess(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	bob := f.addUser(t, "bob")

	sub, err := f.svc.SubmitAudio(ctx, f.user, wav())
	require.NoError(t, err)

	audio, err := f.svc.Object(ctx, f.user, *sub.Note.AudioObject)
	require.NoError(t, err)
	assert.Equal(t, "audio/wav", audio.ContentType)
	assert.Equal(t, wav().Data, audio.Data)

	chart, err := f.svc.Object(ctx, bob, *sub.Note.ChartObject)
	require.NoError(t, err)
	assert.Equal(t, textanalysis.ChartContentType, chart.ContentType)

	_, err = f.svc.Object(ctx, bob, *sub.Note.AudioObject)
	assert.ErrorIs(t, err, storage.ErrObjectNotFound)
	_, err = f.svc.Object(ctx, f.user, "audio/alice/../bob/x.wav")
	assert.ErrorIs(t, err, storage.ErrObjectNotFound)
	_, err = f.svc.Object(ctx, f.user, "charts/missing.png")
	assert.ErrorIs(t, err, storage.ErrObjectNotFound)
}
