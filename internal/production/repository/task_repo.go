package repository

import (
	"context"
	"errors"

	"github.com/Bunrieu-sketch/content-pipeline/internal/production/entity"
	"gorm.io/gorm"
)

// TaskRepository pre-production checklist storage
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// FindByID loads one checklist task
func (r *TaskRepository) FindByID(ctx context.Context, id string) (*entity.PreProTask, error) {
	var task entity.PreProTask
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &task, nil
}

// UpdateColumns applies an accumulated column patch as a single UPDATE
func (r *TaskRepository) UpdateColumns(ctx context.Context, id string, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&entity.PreProTask{}).
		Where("id = ?", id).
		Updates(updates).Error
}
