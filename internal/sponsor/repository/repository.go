package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("record not found")
)

// Repositories is the sponsor module repository set
type Repositories struct {
	Deal        *DealRepository
	Deliverable *DeliverableRepository
	Note        *NoteRepository
}

// NewRepositories creates the sponsor module repository set
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Deal:        NewDealRepository(db),
		Deliverable: NewDeliverableRepository(db),
		Note:        NewNoteRepository(db),
	}
}
