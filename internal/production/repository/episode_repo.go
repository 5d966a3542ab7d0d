package repository

import (
	"context"
	"errors"

	"github.com/Bunrieu-sketch/content-pipeline/internal/production/entity"
	"gorm.io/gorm"
)

// EpisodeRepository episode storage
type EpisodeRepository struct {
	db *gorm.DB
}

func NewEpisodeRepository(db *gorm.DB) *EpisodeRepository {
	return &EpisodeRepository{db: db}
}

// FindBySeries lists a series' episodes in episode order
func (r *EpisodeRepository) FindBySeries(ctx context.Context, seriesID string) ([]entity.Episode, error) {
	var episodes []entity.Episode
	err := r.db.WithContext(ctx).
		Where("series_id = ?", seriesID).
		Order("episode_number ASC").
		Find(&episodes).Error
	return episodes, err
}

// FindByID loads one episode
func (r *EpisodeRepository) FindByID(ctx context.Context, id string) (*entity.Episode, error) {
	var episode entity.Episode
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&episode).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &episode, nil
}

// Create inserts an episode
func (r *EpisodeRepository) Create(ctx context.Context, episode *entity.Episode) error {
	return r.db.WithContext(ctx).Create(episode).Error
}

// UpdateColumns applies an accumulated column patch as a single UPDATE
func (r *EpisodeRepository) UpdateColumns(ctx context.Context, id string, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&entity.Episode{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// Delete removes an episode
func (r *EpisodeRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Episode{}).Error
}
