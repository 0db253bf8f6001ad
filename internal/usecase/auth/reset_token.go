package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/voicenote/internal/domain/entities"
	"github.com/johnquangdev/voicenote/internal/infrastructure/cache"
	usecaseErrors "github.com/johnquangdev/voicenote/internal/usecase/errors"
)

// ResetTokenTTL is how long a password reset token stays redeemable
const ResetTokenTTL = 15 * time.Minute

// ResetTokenManager issues one-time password reset tokens backed by a cache store
type ResetTokenManager struct {
	store      cache.Store
	expiration time.Duration
}

// NewResetTokenManager creates a reset token manager
func NewResetTokenManager(store cache.Store) *ResetTokenManager {
	return &ResetTokenManager{
		store:      store,
		expiration: ResetTokenTTL,
	}
}

// Generate creates a random token bound to userID
func (m *ResetTokenManager) Generate(ctx context.Context, userID uuid.UUID) (string, time.Time, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", time.Time{}, err
	}
	token := base64.RawURLEncoding.EncodeToString(b)

	if err := m.store.Set(ctx, resetKey(token), userID.String(), m.expiration); err != nil {
		return "", time.Time{}, fmt.Errorf("%w: store reset token: %w", usecaseErrors.ErrCache, err)
	}
	return token, time.Now().Add(m.expiration), nil
}

// Consume redeems a token (one-time use) and returns the user it was issued for
func (m *ResetTokenManager) Consume(ctx context.Context, token string) (uuid.UUID, error) {
	if token == "" {
		return uuid.Nil, entities.ErrResetTokenInvalid
	}
	value, ok, err := m.store.Take(ctx, resetKey(token))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: redeem reset token: %w", usecaseErrors.ErrCache, err)
	}
	if !ok {
		return uuid.Nil, entities.ErrResetTokenInvalid
	}
	userID, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, entities.ErrResetTokenInvalid
	}
	return userID, nil
}

func resetKey(token string) string {
	return fmt.Sprintf("auth:reset:%s", token)
}
