package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/voicenote/internal/domain/entities"
)

// VoiceNoteRepository implements the voice note repository interface using GORM
type VoiceNoteRepository struct {
	db *gorm.DB
}

// NewVoiceNoteRepository creates a new voice note repository
func NewVoiceNoteRepository(db *gorm.DB) *VoiceNoteRepository {
	return &VoiceNoteRepository{db: db}
}

// Append stores a new voice note
func (r *VoiceNoteRepository) Append(ctx context.Context, note *entities.VoiceNote) error {
	if err := r.db.WithContext(ctx).Create(note).Error; err != nil {
		return fmt.Errorf("failed to append voice note: %w", err)
	}
	return nil
}

// FindByID finds a voice note by ID
func (r *VoiceNoteRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.VoiceNote, error) {
	var note entities.VoiceNote
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&note).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrVoiceNoteNotFound
		}
		return nil, fmt.Errorf("failed to find voice note: %w", err)
	}
	return &note, nil
}

// ListByUser returns a user's notes, newest first
func (r *VoiceNoteRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.VoiceNote, error) {
	var notes []*entities.VoiceNote
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id").
		Limit(limit).
		Offset(offset).
		Find(&notes).Error; err != nil {
		return nil, fmt.Errorf("failed to list voice notes: %w", err)
	}
	return notes, nil
}

// CountByUser returns how many notes a user has
func (r *VoiceNoteRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.VoiceNote{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count voice notes: %w", err)
	}
	return count, nil
}
