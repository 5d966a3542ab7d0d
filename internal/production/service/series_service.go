package service

import (
	"context"
	"strings"

	"github.com/Bunrieu-sketch/content-pipeline/internal/production/entity"
	"github.com/Bunrieu-sketch/content-pipeline/internal/production/repository"
	"github.com/google/uuid"
)

// SeriesService owns series, episodes and the pre-production checklist
type SeriesService struct {
	series   *repository.SeriesRepository
	episodes *repository.EpisodeRepository
	tasks    *repository.TaskRepository
}

func NewSeriesService(series *repository.SeriesRepository, episodes *repository.EpisodeRepository, tasks *repository.TaskRepository) *SeriesService {
	return &SeriesService{series: series, episodes: episodes, tasks: tasks}
}

// CreateSeriesRequest series creation payload
type CreateSeriesRequest struct {
	Title                string   `json:"title" binding:"required"`
	Location             *string  `json:"location"`
	Country              *string  `json:"country"`
	Status               *string  `json:"status"`
	PreProWeek           *int     `json:"pre_pro_week"`
	ShootStart           *string  `json:"shoot_start"`
	ShootEnd             *string  `json:"shoot_end"`
	TargetPublish        *string  `json:"target_publish"`
	BudgetTotal          *float64 `json:"budget_total"`
	TargetCostPerEpisode *float64 `json:"target_cost_per_episode"`
	FixerName            *string  `json:"fixer_name"`
	FixerContact         *string  `json:"fixer_contact"`
	FixerRateDay         *float64 `json:"fixer_rate_day"`
	Notes                *string  `json:"notes"`
}

// PatchSeriesRequest partial series patch
type PatchSeriesRequest struct {
	Title                *string  `json:"title"`
	Location             *string  `json:"location"`
	Country              *string  `json:"country"`
	Status               *string  `json:"status"`
	PreProWeek           *int     `json:"pre_pro_week"`
	ShootStart           *string  `json:"shoot_start"`
	ShootEnd             *string  `json:"shoot_end"`
	TargetPublish        *string  `json:"target_publish"`
	BudgetTotal          *float64 `json:"budget_total"`
	TargetCostPerEpisode *float64 `json:"target_cost_per_episode"`
	FixerName            *string  `json:"fixer_name"`
	FixerContact         *string  `json:"fixer_contact"`
	FixerRateDay         *float64 `json:"fixer_rate_day"`
	Notes                *string  `json:"notes"`
}

// List lists all series with episode aggregates
func (s *SeriesService) List(ctx context.Context) ([]repository.SeriesWithCounts, error) {
	return s.series.FindAll(ctx)
}

// Get loads one series with episodes and checklist tasks
func (s *SeriesService) Get(ctx context.Context, id string) (*entity.Series, error) {
	return s.series.FindByID(ctx, id)
}

// Create creates a series and seeds its 21-item pre-production checklist
// across weeks 1-5 in the same transaction.
func (s *SeriesService) Create(ctx context.Context, req *CreateSeriesRequest) (*entity.Series, error) {
	series := &entity.Series{
		ID:                   uuid.New().String()[:32],
		Title:                strings.TrimSpace(req.Title),
		Status:               entity.SeriesStatusPlanning,
		PreProWeek:           1,
		TargetCostPerEpisode: 1000,
	}

	if req.Location != nil {
		series.Location = *req.Location
	}
	if req.Country != nil {
		series.Country = *req.Country
	}
	if req.Status != nil {
		series.Status = *req.Status
	}
	if req.PreProWeek != nil {
		series.PreProWeek = *req.PreProWeek
	}
	series.ShootStart = dateOrNil(req.ShootStart)
	series.ShootEnd = dateOrNil(req.ShootEnd)
	series.TargetPublish = dateOrNil(req.TargetPublish)
	if req.BudgetTotal != nil {
		series.BudgetTotal = *req.BudgetTotal
	}
	if req.TargetCostPerEpisode != nil {
		series.TargetCostPerEpisode = *req.TargetCostPerEpisode
	}
	if req.FixerName != nil {
		series.FixerName = *req.FixerName
	}
	if req.FixerContact != nil {
		series.FixerContact = *req.FixerContact
	}
	series.FixerRateDay = req.FixerRateDay
	if req.Notes != nil {
		series.Notes = *req.Notes
	}

	tasks := entity.DefaultPreProTasks(series.ID, func() string {
		return uuid.New().String()[:32]
	})
	if err := s.series.Create(ctx, series, tasks); err != nil {
		return nil, err
	}
	return s.series.FindByID(ctx, series.ID)
}

// Patch applies a partial series patch
func (s *SeriesService) Patch(ctx context.Context, id string, req *PatchSeriesRequest) (*entity.Series, error) {
	if _, err := s.series.FindByID(ctx, id); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	putString(updates, "title", req.Title)
	putString(updates, "location", req.Location)
	putString(updates, "country", req.Country)
	putString(updates, "status", req.Status)
	putInt(updates, "pre_pro_week", req.PreProWeek)
	putDate(updates, "shoot_start", req.ShootStart)
	putDate(updates, "shoot_end", req.ShootEnd)
	putDate(updates, "target_publish", req.TargetPublish)
	putFloat(updates, "budget_total", req.BudgetTotal)
	putFloat(updates, "target_cost_per_episode", req.TargetCostPerEpisode)
	putString(updates, "fixer_name", req.FixerName)
	putString(updates, "fixer_contact", req.FixerContact)
	putFloat(updates, "fixer_rate_day", req.FixerRateDay)
	putString(updates, "notes", req.Notes)

	if len(updates) == 0 {
		return nil, ErrNoFields
	}
	if err := s.series.UpdateColumns(ctx, id, updates); err != nil {
		return nil, err
	}
	return s.series.FindByID(ctx, id)
}

// Delete removes a series and its episodes and tasks
func (s *SeriesService) Delete(ctx context.Context, id string) error {
	if _, err := s.series.FindByID(ctx, id); err != nil {
		return err
	}
	return s.series.Delete(ctx, id)
}

// CreateEpisodeRequest episode creation payload
type CreateEpisodeRequest struct {
	EpisodeNumber    *int    `json:"episode_number"`
	Title            string  `json:"title" binding:"required"`
	Hook             *string `json:"hook"`
	ThumbnailConcept *string `json:"thumbnail_concept"`
	EpisodeType      *string `json:"episode_type"`
	Status           *string `json:"status"`
	TargetPublish    *string `json:"target_publish"`
	Notes            *string `json:"notes"`
}

// PatchEpisodeRequest partial episode patch
type PatchEpisodeRequest struct {
	EpisodeNumber    *int    `json:"episode_number"`
	Title            *string `json:"title"`
	Hook             *string `json:"hook"`
	ThumbnailConcept *string `json:"thumbnail_concept"`
	EpisodeType      *string `json:"episode_type"`
	Status           *string `json:"status"`
	TargetPublish    *string `json:"target_publish"`
	Notes            *string `json:"notes"`
}

// ListEpisodes lists a series' episodes
func (s *SeriesService) ListEpisodes(ctx context.Context, seriesID string) ([]entity.Episode, error) {
	if _, err := s.series.FindByID(ctx, seriesID); err != nil {
		return nil, err
	}
	return s.episodes.FindBySeries(ctx, seriesID)
}

// CreateEpisode adds an episode to a series
func (s *SeriesService) CreateEpisode(ctx context.Context, seriesID string, req *CreateEpisodeRequest) (*entity.Episode, error) {
	if _, err := s.series.FindByID(ctx, seriesID); err != nil {
		return nil, err
	}

	episode := &entity.Episode{
		ID:            uuid.New().String()[:32],
		SeriesID:      seriesID,
		EpisodeNumber: 1,
		Title:         strings.TrimSpace(req.Title),
		EpisodeType:   entity.EpisodeTypeSecondary,
		Status:        entity.SeriesStatusPlanning,
	}
	if req.EpisodeNumber != nil {
		episode.EpisodeNumber = *req.EpisodeNumber
	}
	if req.Hook != nil {
		episode.Hook = *req.Hook
	}
	if req.ThumbnailConcept != nil {
		episode.ThumbnailConcept = *req.ThumbnailConcept
	}
	if req.EpisodeType != nil {
		episode.EpisodeType = *req.EpisodeType
	}
	if req.Status != nil {
		episode.Status = *req.Status
	}
	episode.TargetPublish = dateOrNil(req.TargetPublish)
	if req.Notes != nil {
		episode.Notes = *req.Notes
	}

	if err := s.episodes.Create(ctx, episode); err != nil {
		return nil, err
	}
	return episode, nil
}

// PatchEpisode applies a partial episode patch
func (s *SeriesService) PatchEpisode(ctx context.Context, id string, req *PatchEpisodeRequest) (*entity.Episode, error) {
	if _, err := s.episodes.FindByID(ctx, id); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	putInt(updates, "episode_number", req.EpisodeNumber)
	putString(updates, "title", req.Title)
	putString(updates, "hook", req.Hook)
	putString(updates, "thumbnail_concept", req.ThumbnailConcept)
	putString(updates, "episode_type", req.EpisodeType)
	putString(updates, "status", req.Status)
	putDate(updates, "target_publish", req.TargetPublish)
	putString(updates, "notes", req.Notes)

	if len(updates) == 0 {
		return nil, ErrNoFields
	}
	if err := s.episodes.UpdateColumns(ctx, id, updates); err != nil {
		return nil, err
	}
	return s.episodes.FindByID(ctx, id)
}

// DeleteEpisode removes an episode
func (s *SeriesService) DeleteEpisode(ctx context.Context, id string) error {
	if _, err := s.episodes.FindByID(ctx, id); err != nil {
		return err
	}
	return s.episodes.Delete(ctx, id)
}

// PatchTaskRequest partial checklist task patch
type PatchTaskRequest struct {
	TaskName   *string `json:"task_name"`
	WeekNumber *int    `json:"week_number"`
	Completed  *int    `json:"completed"`
}

// PatchTask applies a partial checklist task patch
func (s *SeriesService) PatchTask(ctx context.Context, id string, req *PatchTaskRequest) (*entity.PreProTask, error) {
	if _, err := s.tasks.FindByID(ctx, id); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	putString(updates, "task_name", req.TaskName)
	putInt(updates, "week_number", req.WeekNumber)
	putInt(updates, "completed", req.Completed)

	if len(updates) == 0 {
		return nil, ErrNoFields
	}
	if err := s.tasks.UpdateColumns(ctx, id, updates); err != nil {
		return nil, err
	}
	return s.tasks.FindByID(ctx, id)
}

func dateOrNil(v *string) *string {
	if v == nil || *v == "" {
		return nil
	}
	return v
}

func putString(m map[string]interface{}, col string, v *string) {
	if v != nil {
		m[col] = *v
	}
}

func putInt(m map[string]interface{}, col string, v *int) {
	if v != nil {
		m[col] = *v
	}
}

func putFloat(m map[string]interface{}, col string, v *float64) {
	if v != nil {
		m[col] = *v
	}
}

// putDate stores NULL for an empty date string so dates can be cleared
func putDate(m map[string]interface{}, col string, v *string) {
	if v == nil {
		return
	}
	if *v == "" {
		m[col] = nil
		return
	}
	m[col] = *v
}
