package service

import (
	"github.com/Bunrieu-sketch/content-pipeline/internal/sponsor/repository"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Services is the sponsor module service set
type Services struct {
	Deal      *DealService
	Dashboard *DashboardService
}

// NewServices creates the sponsor module service set
func NewServices(db *gorm.DB, rdb *redis.Client, repos *repository.Repositories) *Services {
	return &Services{
		Deal:      NewDealService(repos.Deal, repos.Deliverable, repos.Note),
		Dashboard: NewDashboardService(db, rdb),
	}
}
