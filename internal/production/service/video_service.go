package service

import (
	"context"
	"strings"

	"github.com/Bunrieu-sketch/content-pipeline/internal/production/entity"
	"github.com/Bunrieu-sketch/content-pipeline/internal/production/repository"
	"github.com/Bunrieu-sketch/content-pipeline/internal/sse"
	"github.com/google/uuid"
)

// VideoService owns the video pipeline board
type VideoService struct {
	videos *repository.VideoRepository
}

func NewVideoService(videos *repository.VideoRepository) *VideoService {
	return &VideoService{videos: videos}
}

// CreateVideoRequest video creation payload
type CreateVideoRequest struct {
	Title string  `json:"title" binding:"required"`
	Stage *string `json:"stage"`
}

// PatchVideoRequest partial video patch
type PatchVideoRequest struct {
	Title          *string  `json:"title"`
	Stage          *string  `json:"stage"`
	DueDate        *string  `json:"due_date"`
	Notes          *string  `json:"notes"`
	YouTubeVideoID *string  `json:"youtube_video_id"`
	ViewCount      *int     `json:"view_count"`
	OutlierScore   *float64 `json:"outlier_score"`
	SortOrder      *int     `json:"sort_order"`
}

// List lists videos in board order
func (s *VideoService) List(ctx context.Context) ([]entity.Video, error) {
	return s.videos.FindAll(ctx)
}

// Create creates a video. A title already on the board (case-insensitive) is
// rejected as a duplicate.
func (s *VideoService) Create(ctx context.Context, req *CreateVideoRequest) (*entity.Video, error) {
	title := strings.TrimSpace(req.Title)

	stage := entity.VideoStageIdea
	if req.Stage != nil && *req.Stage != "" {
		stage = strings.TrimSpace(*req.Stage)
	}
	if !entity.ValidVideoStages[stage] {
		return nil, ErrInvalidStage
	}

	exists, err := s.videos.ExistsByTitle(ctx, title)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateTitle
	}

	video := &entity.Video{
		ID:    uuid.New().String()[:32],
		Title: title,
		Stage: stage,
	}
	if err := s.videos.Create(ctx, video); err != nil {
		return nil, err
	}
	return video, nil
}

// Patch applies a partial video patch. A stage change publishes a board
// update event.
func (s *VideoService) Patch(ctx context.Context, id string, req *PatchVideoRequest) (*entity.Video, error) {
	video, err := s.videos.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Stage != nil && !entity.ValidVideoStages[*req.Stage] {
		return nil, ErrInvalidStage
	}

	updates := map[string]interface{}{}
	putString(updates, "title", req.Title)
	putString(updates, "stage", req.Stage)
	putDate(updates, "due_date", req.DueDate)
	putString(updates, "notes", req.Notes)
	putString(updates, "youtube_video_id", req.YouTubeVideoID)
	putInt(updates, "view_count", req.ViewCount)
	putFloat(updates, "outlier_score", req.OutlierScore)
	putInt(updates, "sort_order", req.SortOrder)

	if len(updates) == 0 {
		return nil, ErrNoFields
	}
	if err := s.videos.UpdateColumns(ctx, id, updates); err != nil {
		return nil, err
	}

	updated, err := s.videos.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Stage != nil && *req.Stage != video.Stage {
		sse.PublishVideoUpdate(id, *req.Stage, "stage_moved")
	}
	return updated, nil
}

// Delete removes a video from the board
func (s *VideoService) Delete(ctx context.Context, id string) error {
	if _, err := s.videos.FindByID(ctx, id); err != nil {
		return err
	}
	return s.videos.Delete(ctx, id)
}
