package repository

import (
	"context"

	"github.com/Bunrieu-sketch/content-pipeline/internal/sponsor/entity"
	"gorm.io/gorm"
)

// NoteRepository sponsor note storage
type NoteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

// FindByDeal lists notes for a deal, newest first
func (r *NoteRepository) FindByDeal(ctx context.Context, dealID string) ([]entity.Note, error) {
	var notes []entity.Note
	err := r.db.WithContext(ctx).
		Where("deal_id = ?", dealID).
		Order("created_at DESC").
		Find(&notes).Error
	return notes, err
}

// Create inserts a note
func (r *NoteRepository) Create(ctx context.Context, note *entity.Note) error {
	return r.db.WithContext(ctx).Create(note).Error
}

// Delete removes a note scoped to its deal
func (r *NoteRepository) Delete(ctx context.Context, dealID, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND deal_id = ?", id, dealID).
		Delete(&entity.Note{}).Error
}
