package entity

import "time"

// Deliverable is a child item owned by a deal (tracking link, pinned comment,
// community post and similar). Cascade-deleted with its deal.
type Deliverable struct {
	ID        string    `json:"id" gorm:"primaryKey;size:32"`
	DealID    string    `json:"deal_id" gorm:"size:32;not null;index"`
	Title     string    `json:"title" gorm:"size:200;not null"`
	Status    string    `json:"status" gorm:"size:20;not null;default:pending"` // pending/complete
	DueDate   *string   `json:"due_date" gorm:"size:10"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Deliverable) TableName() string {
	return "sponsor_deliverables"
}

// Deliverable statuses
const (
	DeliverableStatusPending  = "pending"
	DeliverableStatusComplete = "complete"
)

// Note is a freeform timestamped note on a deal. Cascade-deleted with its deal.
type Note struct {
	ID        string    `json:"id" gorm:"primaryKey;size:32"`
	DealID    string    `json:"deal_id" gorm:"size:32;not null;index"`
	Note      string    `json:"note" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Note) TableName() string {
	return "sponsor_notes"
}
