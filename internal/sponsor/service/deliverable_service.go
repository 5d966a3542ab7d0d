package service

import (
	"context"
	"strings"

	"github.com/Bunrieu-sketch/content-pipeline/internal/sponsor/entity"
	"github.com/google/uuid"
)

// CreateDeliverableRequest payload for adding a deliverable to a deal
type CreateDeliverableRequest struct {
	Title   string  `json:"title" binding:"required"`
	Status  *string `json:"status"`
	DueDate *string `json:"due_date"`
}

// UpdateDeliverableRequest partial deliverable patch
type UpdateDeliverableRequest struct {
	Title   *string `json:"title"`
	Status  *string `json:"status"`
	DueDate *string `json:"due_date"`
}

// ListDeliverables lists a deal's deliverables
func (s *DealService) ListDeliverables(ctx context.Context, dealID string) ([]entity.Deliverable, error) {
	if _, err := s.deals.FindByID(ctx, dealID); err != nil {
		return nil, err
	}
	return s.deliverables.FindByDeal(ctx, dealID)
}

// CreateDeliverable adds a deliverable to a deal
func (s *DealService) CreateDeliverable(ctx context.Context, dealID string, req *CreateDeliverableRequest) (*entity.Deliverable, error) {
	if _, err := s.deals.FindByID(ctx, dealID); err != nil {
		return nil, err
	}
	item := &entity.Deliverable{
		ID:     uuid.New().String()[:32],
		DealID: dealID,
		Title:  strings.TrimSpace(req.Title),
		Status: entity.DeliverableStatusPending,
	}
	if req.Status != nil {
		item.Status = *req.Status
	}
	item.DueDate = dateOrNil(req.DueDate)
	if err := s.deliverables.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateDeliverable patches a deliverable
func (s *DealService) UpdateDeliverable(ctx context.Context, dealID, id string, req *UpdateDeliverableRequest) (*entity.Deliverable, error) {
	item, err := s.deliverables.FindByID(ctx, dealID, id)
	if err != nil {
		return nil, err
	}
	if req.Title == nil && req.Status == nil && req.DueDate == nil {
		return nil, ErrNoFields
	}
	if req.Title != nil {
		item.Title = strings.TrimSpace(*req.Title)
	}
	if req.Status != nil {
		item.Status = *req.Status
	}
	if req.DueDate != nil {
		item.DueDate = dateOrNil(req.DueDate)
	}
	if err := s.deliverables.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteDeliverable removes a deliverable from a deal
func (s *DealService) DeleteDeliverable(ctx context.Context, dealID, id string) error {
	if _, err := s.deliverables.FindByID(ctx, dealID, id); err != nil {
		return err
	}
	return s.deliverables.Delete(ctx, dealID, id)
}

// CreateNoteRequest payload for a timestamped deal note
type CreateNoteRequest struct {
	Note string `json:"note" binding:"required"`
}

// ListNotes lists a deal's notes
func (s *DealService) ListNotes(ctx context.Context, dealID string) ([]entity.Note, error) {
	if _, err := s.deals.FindByID(ctx, dealID); err != nil {
		return nil, err
	}
	return s.notes.FindByDeal(ctx, dealID)
}

// CreateNote appends a note to a deal
func (s *DealService) CreateNote(ctx context.Context, dealID string, req *CreateNoteRequest) (*entity.Note, error) {
	if _, err := s.deals.FindByID(ctx, dealID); err != nil {
		return nil, err
	}
	note := &entity.Note{
		ID:     uuid.New().String()[:32],
		DealID: dealID,
		Note:   req.Note,
	}
	if err := s.notes.Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// DeleteNote removes a note from a deal
func (s *DealService) DeleteNote(ctx context.Context, dealID, id string) error {
	if _, err := s.deals.FindByID(ctx, dealID); err != nil {
		return err
	}
	return s.notes.Delete(ctx, dealID, id)
}
