package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/voicenote/internal/domain/entities"
)

// SessionRepository defines the interface for session data access
type SessionRepository interface {
	// Create creates a new session
	Create(ctx context.Context, session *entities.Session) error

	// FindByTokenHash finds an unrevoked session by refresh token hash
	FindByTokenHash(ctx context.Context, tokenHash string) (*entities.Session, error)

	// FindActiveByID finds an unrevoked session by ID
	FindActiveByID(ctx context.Context, id uuid.UUID) (*entities.Session, error)

	// UpdateLastUsed updates the last used timestamp
	UpdateLastUsed(ctx context.Context, sessionID uuid.UUID) error

	// Revoke revokes a session, returning ErrSessionNotFound if it was
	// missing or already revoked
	Revoke(ctx context.Context, sessionID uuid.UUID) error

	// RevokeAllByUserID revokes all sessions for a user
	RevokeAllByUserID(ctx context.Context, userID uuid.UUID) error

	// CleanupOldSessions removes sessions revoked or expired before the cutoff
	// and returns how many were deleted
	CleanupOldSessions(ctx context.Context, before time.Time) (int64, error)
}
