package entities

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/voicenote/pkg/textanalysis"
)

func TestNewVoiceNoteRoundTripsDistribution(t *testing.T) {
	a, err := textanalysis.NewAnalyzer(nil)
	require.NoError(t, err)
	res, err := a.Analyze("I am so happy and excited today")
	require.NoError(t, err)

	user := NewUser("alice", "Alice@Example.com", "hash")
	note, err := NewVoiceNote(user, SourceText, res)
	require.NoError(t, err)

	assert.Equal(t, user.ID, note.UserID)
	assert.Equal(t, "alice", note.Username)
	assert.Equal(t, textanalysis.SentimentPositive, note.Sentiment)
	assert.Equal(t, textanalysis.EmotionHappy, note.Dominant)
	assert.True(t, note.IsOwnedBy(user.ID))
	assert.False(t, note.IsOwnedBy(uuid.New()))

	dist, err := note.Distribution()
	require.NoError(t, err)
	assert.Equal(t, res.Emotions, dist)
	assert.Equal(t, res.Chart.Key, textanalysis.DistributionKey(dist))
}

func TestUserValidate(t *testing.T) {
	u := NewUser(" bob ", " BOB@example.com ", "hash")
	assert.Equal(t, "bob", u.Username)
	assert.Equal(t, "bob@example.com", u.Email)
	assert.NoError(t, u.Validate())

	assert.ErrorIs(t, NewUser("", "a@b.c", "h").Validate(), ErrInvalidUsername)
	assert.ErrorIs(t, NewUser("a", "nope", "h").Validate(), ErrInvalidEmail)
	assert.ErrorIs(t, NewUser("a", "a@b.c", "").Validate(), ErrInvalidPassword)
}

func TestSessionValidity(t *testing.T) {
	s := NewSession(uuid.New(), "refresh-token", timeNowPlusHour())
	assert.Equal(t, HashToken("refresh-token"), s.TokenHash)
	assert.True(t, s.IsValid())

	s.Revoke()
	assert.False(t, s.IsValid())

	var nilSession *Session
	assert.False(t, nilSession.IsValid())
}

func timeNowPlusHour() time.Time {
	return time.Now().Add(time.Hour)
}
