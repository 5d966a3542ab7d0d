package repository

import (
	"context"
	"errors"

	"github.com/Bunrieu-sketch/content-pipeline/internal/sponsor/entity"
	"gorm.io/gorm"
)

// DeliverableRepository sponsor deliverable storage
type DeliverableRepository struct {
	db *gorm.DB
}

func NewDeliverableRepository(db *gorm.DB) *DeliverableRepository {
	return &DeliverableRepository{db: db}
}

// FindByDeal lists deliverables for a deal, newest first
func (r *DeliverableRepository) FindByDeal(ctx context.Context, dealID string) ([]entity.Deliverable, error) {
	var items []entity.Deliverable
	err := r.db.WithContext(ctx).
		Where("deal_id = ?", dealID).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

// FindByID loads a deliverable scoped to its deal
func (r *DeliverableRepository) FindByID(ctx context.Context, dealID, id string) (*entity.Deliverable, error) {
	var item entity.Deliverable
	err := r.db.WithContext(ctx).
		Where("id = ? AND deal_id = ?", id, dealID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Create inserts a deliverable
func (r *DeliverableRepository) Create(ctx context.Context, item *entity.Deliverable) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// Update saves a modified deliverable
func (r *DeliverableRepository) Update(ctx context.Context, item *entity.Deliverable) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// Delete removes a deliverable scoped to its deal
func (r *DeliverableRepository) Delete(ctx context.Context, dealID, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND deal_id = ?", id, dealID).
		Delete(&entity.Deliverable{}).Error
}
