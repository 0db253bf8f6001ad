package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/voicenote/internal/domain/entities"
	"github.com/johnquangdev/voicenote/internal/infrastructure/cache"
	usecaseErrors "github.com/johnquangdev/voicenote/internal/usecase/errors"
)

func TestResetTokenManager(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemoryStore()
	defer store.Close()
	m := NewResetTokenManager(store)

	userID := uuid.New()
	token, _, err := m.Generate(ctx, userID)
	require.NoError(t, err)

	other, _, err := m.Generate(ctx, userID)
	require.NoError(t, err)
	assert.NotEqual(t, token, other)

	got, err := m.Consume(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)

	_, err = m.Consume(ctx, token)
	assert.ErrorIs(t, err, entities.ErrResetTokenInvalid)

	_, err = m.Consume(ctx, "")
	assert.ErrorIs(t, err, entities.ErrResetTokenInvalid)
}

type brokenStore struct{}

func (brokenStore) Set(context.Context, string, string, time.Duration) error {
	return errors.New("connection refused")
}

func (brokenStore) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("connection refused")
}

func (brokenStore) Delete(context.Context, string) error {
	return errors.New("connection refused")
}

func (brokenStore) Take(context.Context, string) (string, bool, error) {
	return "", false, errors.New("connection refused")
}

func TestResetTokenManagerStoreFailure(t *testing.T) {
	m := NewResetTokenManager(brokenStore{})

	_, _, err := m.Generate(context.Background(), uuid.New())
	assert.ErrorIs(t, err, usecaseErrors.ErrCache)

	_, err = m.Consume(context.Background(), "token")
	assert.ErrorIs(t, err, usecaseErrors.ErrCache)
	assert.NotErrorIs(t, err, entities.ErrResetTokenInvalid)
}
