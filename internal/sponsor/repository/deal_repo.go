package repository

import (
	"context"
	"errors"

	"github.com/Bunrieu-sketch/content-pipeline/internal/sponsor/entity"
	"gorm.io/gorm"
)

// DealRepository sponsor deal storage
type DealRepository struct {
	db *gorm.DB
}

func NewDealRepository(db *gorm.DB) *DealRepository {
	return &DealRepository{db: db}
}

// FindAll lists deals, optionally filtered by stage, in creation order
func (r *DealRepository) FindAll(ctx context.Context, stage string) ([]entity.Deal, error) {
	var deals []entity.Deal
	query := r.db.WithContext(ctx).Model(&entity.Deal{})
	if stage != "" {
		query = query.Where("stage = ?", stage)
	}
	err := query.Order("created_at ASC, id ASC").Find(&deals).Error
	return deals, err
}

// FindByID loads a single deal
func (r *DealRepository) FindByID(ctx context.Context, id string) (*entity.Deal, error) {
	var deal entity.Deal
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&deal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &deal, nil
}

// Create inserts a new deal
func (r *DealRepository) Create(ctx context.Context, deal *entity.Deal) error {
	return r.db.WithContext(ctx).Create(deal).Error
}

// UpdateColumns applies an accumulated column patch as a single UPDATE.
// Derived fields must already be resolved by the caller; nothing is computed
// here.
func (r *DealRepository) UpdateColumns(ctx context.Context, id string, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&entity.Deal{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// Delete removes a deal together with its deliverables and notes
func (r *DealRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("deal_id = ?", id).Delete(&entity.Deliverable{}).Error; err != nil {
			return err
		}
		if err := tx.Where("deal_id = ?", id).Delete(&entity.Note{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entity.Deal{}).Error
	})
}
