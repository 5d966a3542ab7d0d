package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("record not found")
)

// Repositories is the production module repository set
type Repositories struct {
	Series  *SeriesRepository
	Episode *EpisodeRepository
	Task    *TaskRepository
	Video   *VideoRepository
}

// NewRepositories creates the production module repository set
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Series:  NewSeriesRepository(db),
		Episode: NewEpisodeRepository(db),
		Task:    NewTaskRepository(db),
		Video:   NewVideoRepository(db),
	}
}
