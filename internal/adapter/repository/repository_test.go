package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/voicenote/internal/domain/entities"
	"github.com/johnquangdev/voicenote/internal/infrastructure/database"
	"github.com/johnquangdev/voicenote/pkg/textanalysis"
)

func createUser(t *testing.T, repo *UserRepository, username string) *entities.User {
	t.Helper()
	u := entities.NewUser(username, username+"@example.com", "hash")
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(database.OpenTest(t))

	alice := createUser(t, repo, "alice")

	got, err := repo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)
	assert.Equal(t, "alice@example.com", got.Email)
	assert.True(t, got.IsActive)

	byID, err := repo.FindByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)

	exists, err := repo.ExistsByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = repo.ExistsByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = repo.FindByUsername(ctx, "bob")
	assert.ErrorIs(t, err, entities.ErrUserNotFound)
	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, entities.ErrUserNotFound)

	err = repo.Create(ctx, entities.NewUser("alice", "other@example.com", "hash"))
	assert.ErrorIs(t, err, entities.ErrUsernameTaken)
	err = repo.Create(ctx, entities.NewUser("carol", "Alice@Example.com", "hash"))
	assert.ErrorIs(t, err, entities.ErrEmailTaken)

	exists, err = repo.ExistsByEmail(ctx, " ALICE@example.com ")
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = repo.ExistsByEmail(ctx, "carol@example.com")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, repo.UpdatePassword(ctx, alice.ID, "new-hash"))
	got, err = repo.FindByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", got.PasswordHash)
	assert.ErrorIs(t, repo.UpdatePassword(ctx, uuid.New(), "x"), entities.ErrUserNotFound)

	require.NoError(t, repo.UpdateLastLogin(ctx, alice.ID))
	got, err = repo.FindByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.LastLoginAt)
}

func TestSessionRepository(t *testing.T) {
	ctx := context.Background()
	db := database.OpenTest(t)
	users := NewUserRepository(db)
	repo := NewSessionRepository(db)

	alice := createUser(t, users, "alice")
	live := entities.NewSession(alice.ID, "token-live", time.Now().Add(time.Hour))
	other := entities.NewSession(alice.ID, "token-other", time.Now().Add(time.Hour))
	require.NoError(t, repo.Create(ctx, live))
	require.NoError(t, repo.Create(ctx, other))

	got, err := repo.FindByTokenHash(ctx, entities.HashToken("token-live"))
	require.NoError(t, err)
	assert.Equal(t, live.ID, got.ID)

	require.NoError(t, repo.UpdateLastUsed(ctx, live.ID))

	active, err := repo.FindActiveByID(ctx, live.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, active.UserID)

	require.NoError(t, repo.Revoke(ctx, live.ID))
	_, err = repo.FindByTokenHash(ctx, entities.HashToken("token-live"))
	assert.ErrorIs(t, err, entities.ErrSessionNotFound)
	_, err = repo.FindActiveByID(ctx, live.ID)
	assert.ErrorIs(t, err, entities.ErrSessionNotFound)

	// only the first revoke of a session succeeds
	assert.ErrorIs(t, repo.Revoke(ctx, live.ID), entities.ErrSessionNotFound)
	assert.ErrorIs(t, repo.Revoke(ctx, uuid.New()), entities.ErrSessionNotFound)

	require.NoError(t, repo.RevokeAllByUserID(ctx, alice.ID))
	_, err = repo.FindByTokenHash(ctx, entities.HashToken("token-other"))
	assert.ErrorIs(t, err, entities.ErrSessionNotFound)

	n, err := repo.CleanupOldSessions(ctx, time.Now().Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestSessionCleanupKeepsLiveSessions(t *testing.T) {
	ctx := context.Background()
	db := database.OpenTest(t)
	users := NewUserRepository(db)
	repo := NewSessionRepository(db)

	alice := createUser(t, users, "alice")
	require.NoError(t, repo.Create(ctx, entities.NewSession(alice.ID, "expired", time.Now().Add(-48*time.Hour))))
	require.NoError(t, repo.Create(ctx, entities.NewSession(alice.ID, "live", time.Now().Add(time.Hour))))

	n, err := repo.CleanupOldSessions(ctx, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = repo.FindByTokenHash(ctx, entities.HashToken("live"))
	assert.NoError(t, err)
}

func TestVoiceNoteRepository(t *testing.T) {
	ctx := context.Background()
	db := database.OpenTest(t)
	users := NewUserRepository(db)
	repo := NewVoiceNoteRepository(db)

	analyzer, err := textanalysis.NewAnalyzer(nil)
	require.NoError(t, err)

	alice := createUser(t, users, "alice")
	bob := createUser(t, users, "bob")

	utterances := []string{"I am happy", "this is not good", "wow what a surprise"}
	var ids []uuid.UUID
	base := time.Now().Add(-time.Hour).UTC()
	for i, text := range utterances {
		res, err := analyzer.Analyze(text)
		require.NoError(t, err)
		note, err := entities.NewVoiceNote(alice, entities.SourceText, res)
		require.NoError(t, err)
		note.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Append(ctx, note))
		ids = append(ids, note.ID)
	}

	count, err := repo.CountByUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	count, err = repo.CountByUser(ctx, bob.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	page, err := repo.ListByUser(ctx, alice.ID, 2, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, ids[2], page[0].ID, "newest first")
	assert.Equal(t, ids[1], page[1].ID)

	page, err = repo.ListByUser(ctx, alice.ID, 2, 2)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, ids[0], page[0].ID)

	got, err := repo.FindByID(ctx, ids[1])
	require.NoError(t, err)
	assert.Equal(t, textanalysis.SentimentNegative, got.Sentiment)
	assert.Equal(t, "this is not good", got.Transcript)
	dist, err := got.Distribution()
	require.NoError(t, err)
	assert.Len(t, dist, len(textanalysis.AllEmotions))

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, entities.ErrVoiceNoteNotFound)
}
