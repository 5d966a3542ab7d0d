package repository

import (
	"context"
	"errors"

	"github.com/Bunrieu-sketch/content-pipeline/internal/production/entity"
	"gorm.io/gorm"
)

// SeriesRepository series storage
type SeriesRepository struct {
	db *gorm.DB
}

func NewSeriesRepository(db *gorm.DB) *SeriesRepository {
	return &SeriesRepository{db: db}
}

// SeriesWithCounts is a series row joined with its episode aggregates
type SeriesWithCounts struct {
	entity.Series
	EpisodeCount   int `json:"episode_count"`
	PublishedCount int `json:"published_count"`
}

// FindAll lists series with episode aggregates, ordered by shoot start
func (r *SeriesRepository) FindAll(ctx context.Context) ([]SeriesWithCounts, error) {
	var rows []SeriesWithCounts
	err := r.db.WithContext(ctx).
		Model(&entity.Series{}).
		Select(`series.*,
			COUNT(episodes.id) AS episode_count,
			COUNT(CASE WHEN episodes.status = 'published' THEN 1 END) AS published_count`).
		Joins("LEFT JOIN episodes ON episodes.series_id = series.id").
		Group("series.id").
		Order("series.shoot_start ASC").
		Find(&rows).Error
	return rows, err
}

// FindByID loads one series with its episodes and checklist tasks
func (r *SeriesRepository) FindByID(ctx context.Context, id string) (*entity.Series, error) {
	var series entity.Series
	err := r.db.WithContext(ctx).
		Preload("Episodes", func(db *gorm.DB) *gorm.DB {
			return db.Order("episode_number ASC")
		}).
		Preload("Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("week_number ASC, task_name ASC")
		}).
		Where("id = ?", id).
		First(&series).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &series, nil
}

// Create inserts a series and its seeded checklist in one transaction
func (r *SeriesRepository) Create(ctx context.Context, series *entity.Series, tasks []entity.PreProTask) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(series).Error; err != nil {
			return err
		}
		if len(tasks) > 0 {
			if err := tx.Create(&tasks).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdateColumns applies an accumulated column patch as a single UPDATE
func (r *SeriesRepository) UpdateColumns(ctx context.Context, id string, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&entity.Series{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// Delete removes a series together with its episodes and tasks
func (r *SeriesRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("series_id = ?", id).Delete(&entity.Episode{}).Error; err != nil {
			return err
		}
		if err := tx.Where("series_id = ?", id).Delete(&entity.PreProTask{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entity.Series{}).Error
	})
}
