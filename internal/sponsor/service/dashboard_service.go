package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	dashboardCacheKey = "dashboard:stats"
	dashboardCacheTTL = 30 * time.Second
)

// DashboardService aggregates cross-module counters for the overview page
type DashboardService struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewDashboardService(db *gorm.DB, rdb *redis.Client) *DashboardService {
	return &DashboardService{db: db, rdb: rdb}
}

// DashboardStats is the overview snapshot
type DashboardStats struct {
	TotalVideos     int     `json:"total_videos"`
	PublishedVideos int     `json:"published_videos"`
	ActiveDeals     int     `json:"active_deals"`
	PipelineValue   float64 `json:"pipeline_value"`
	PublishedDeals  int     `json:"published_deals"`
	PaidDeals       int     `json:"paid_deals"`
}

// GetStats returns the overview snapshot, served from a short Redis cache
// when available. A missing or unreachable cache is not an error.
func (s *DashboardService) GetStats(ctx context.Context) (*DashboardStats, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, dashboardCacheKey).Result(); err == nil {
			var stats DashboardStats
			if json.Unmarshal([]byte(cached), &stats) == nil {
				return &stats, nil
			}
		}
	}

	stats := &DashboardStats{}

	row := s.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) as total,
			COUNT(CASE WHEN stage = 'published' THEN 1 END) as published
		FROM videos
	`).Row()
	if err := row.Scan(&stats.TotalVideos, &stats.PublishedVideos); err != nil {
		return nil, err
	}

	row = s.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(CASE WHEN stage NOT IN ('paid', 'make_good') THEN 1 END) as active,
			COALESCE(SUM(CASE WHEN stage NOT IN ('paid', 'make_good') THEN deal_value_net END), 0) as pipeline_value,
			COUNT(CASE WHEN stage = 'published' THEN 1 END) as published,
			COUNT(CASE WHEN stage = 'paid' THEN 1 END) as paid
		FROM sponsor_deals
	`).Row()
	if err := row.Scan(&stats.ActiveDeals, &stats.PipelineValue, &stats.PublishedDeals, &stats.PaidDeals); err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if payload, err := json.Marshal(stats); err == nil {
			s.rdb.Set(ctx, dashboardCacheKey, payload, dashboardCacheTTL)
		}
	}
	return stats, nil
}

// InvalidateStats drops the cached snapshot after a write
func (s *DashboardService) InvalidateStats(ctx context.Context) {
	if s.rdb != nil {
		s.rdb.Del(ctx, dashboardCacheKey)
	}
}
