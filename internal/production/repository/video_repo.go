package repository

import (
	"context"
	"errors"

	"github.com/Bunrieu-sketch/content-pipeline/internal/production/entity"
	"gorm.io/gorm"
)

// VideoRepository video board storage
type VideoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

// FindAll lists videos in board order
func (r *VideoRepository) FindAll(ctx context.Context) ([]entity.Video, error) {
	var videos []entity.Video
	err := r.db.WithContext(ctx).
		Order("sort_order ASC, id ASC").
		Find(&videos).Error
	return videos, err
}

// FindByID loads one video
func (r *VideoRepository) FindByID(ctx context.Context, id string) (*entity.Video, error) {
	var video entity.Video
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&video).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &video, nil
}

// ExistsByTitle reports whether any video already uses the title,
// case-insensitively
func (r *VideoRepository) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Video{}).
		Where("LOWER(title) = LOWER(?)", title).
		Count(&count).Error
	return count > 0, err
}

// Create inserts a video
func (r *VideoRepository) Create(ctx context.Context, video *entity.Video) error {
	return r.db.WithContext(ctx).Create(video).Error
}

// UpdateColumns applies an accumulated column patch as a single UPDATE
func (r *VideoRepository) UpdateColumns(ctx context.Context, id string, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&entity.Video{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// Delete removes a video
func (r *VideoRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Video{}).Error
}
