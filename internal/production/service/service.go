package service

import (
	"errors"

	"github.com/Bunrieu-sketch/content-pipeline/internal/production/repository"
)

var (
	ErrInvalidStage   = errors.New("invalid stage")
	ErrNoFields       = errors.New("no fields to update")
	ErrDuplicateTitle = errors.New("title already exists")
)

// Services is the production module service set
type Services struct {
	Series *SeriesService
	Video  *VideoService
}

// NewServices creates the production module service set
func NewServices(repos *repository.Repositories) *Services {
	return &Services{
		Series: NewSeriesService(repos.Series, repos.Episode, repos.Task),
		Video:  NewVideoService(repos.Video),
	}
}
