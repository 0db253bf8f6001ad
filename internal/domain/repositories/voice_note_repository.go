package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/johnquangdev/voicenote/internal/domain/entities"
)

// VoiceNoteRepository stores the analyzed voice notes of every user.
// Notes are append-only.
type VoiceNoteRepository interface {
	// Append stores a new voice note
	Append(ctx context.Context, note *entities.VoiceNote) error

	// FindByID finds a voice note by ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.VoiceNote, error)

	// ListByUser returns a user's notes, newest first
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.VoiceNote, error)

	// CountByUser returns how many notes a user has
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}
