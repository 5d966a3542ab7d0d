package handler

import (
	"errors"

	"github.com/Bunrieu-sketch/content-pipeline/internal/production/repository"
	"github.com/Bunrieu-sketch/content-pipeline/internal/production/service"
	"github.com/gin-gonic/gin"
)

// SeriesHandler series / episode / checklist endpoints
type SeriesHandler struct {
	svc *service.SeriesService
}

func NewSeriesHandler(svc *service.SeriesService) *SeriesHandler {
	return &SeriesHandler{svc: svc}
}

// ListSeries series list with episode aggregates
// GET /api/v1/series
func (h *SeriesHandler) ListSeries(c *gin.Context) {
	rows, err := h.svc.List(c.Request.Context())
	if err != nil {
		InternalError(c, "failed to list series: "+err.Error())
		return
	}
	Success(c, ListResponse{Items: rows})
}

// GetSeries series detail with episodes and checklist tasks
// GET /api/v1/series/:id
func (h *SeriesHandler) GetSeries(c *gin.Context) {
	series, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "series not found")
			return
		}
		InternalError(c, "failed to load series: "+err.Error())
		return
	}
	Success(c, series)
}

// CreateSeries creates a series and seeds its pre-production checklist
// POST /api/v1/series
func (h *SeriesHandler) CreateSeries(c *gin.Context) {
	var req service.CreateSeriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid payload: "+err.Error())
		return
	}

	series, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		InternalError(c, "failed to create series: "+err.Error())
		return
	}
	Created(c, series)
}

// PatchSeries partial series update
// PATCH /api/v1/series/:id
func (h *SeriesHandler) PatchSeries(c *gin.Context) {
	var req service.PatchSeriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid payload: "+err.Error())
		return
	}

	series, err := h.svc.Patch(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			NotFound(c, "series not found")
		case errors.Is(err, service.ErrNoFields):
			BadRequest(c, "no fields to update")
		default:
			InternalError(c, "failed to update series: "+err.Error())
		}
		return
	}
	Success(c, series)
}

// DeleteSeries removes a series and its episodes and tasks
// DELETE /api/v1/series/:id
func (h *SeriesHandler) DeleteSeries(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "series not found")
			return
		}
		InternalError(c, "failed to delete series: "+err.Error())
		return
	}
	Success(c, gin.H{"deleted": true})
}

// ListEpisodes episodes of a series
// GET /api/v1/series/:id/episodes
func (h *SeriesHandler) ListEpisodes(c *gin.Context) {
	episodes, err := h.svc.ListEpisodes(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "series not found")
			return
		}
		InternalError(c, "failed to list episodes: "+err.Error())
		return
	}
	Success(c, ListResponse{Items: episodes})
}

// CreateEpisode adds an episode to a series
// POST /api/v1/series/:id/episodes
func (h *SeriesHandler) CreateEpisode(c *gin.Context) {
	var req service.CreateEpisodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid payload: "+err.Error())
		return
	}

	episode, err := h.svc.CreateEpisode(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "series not found")
			return
		}
		InternalError(c, "failed to create episode: "+err.Error())
		return
	}
	Created(c, episode)
}

// PatchEpisode partial episode update
// PATCH /api/v1/episodes/:id
func (h *SeriesHandler) PatchEpisode(c *gin.Context) {
	var req service.PatchEpisodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid payload: "+err.Error())
		return
	}

	episode, err := h.svc.PatchEpisode(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			NotFound(c, "episode not found")
		case errors.Is(err, service.ErrNoFields):
			BadRequest(c, "no fields to update")
		default:
			InternalError(c, "failed to update episode: "+err.Error())
		}
		return
	}
	Success(c, episode)
}

// DeleteEpisode removes an episode
// DELETE /api/v1/episodes/:id
func (h *SeriesHandler) DeleteEpisode(c *gin.Context) {
	if err := h.svc.DeleteEpisode(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "episode not found")
			return
		}
		InternalError(c, "failed to delete episode: "+err.Error())
		return
	}
	Success(c, gin.H{"deleted": true})
}

// PatchTask partial checklist task update
// PATCH /api/v1/tasks/:id
func (h *SeriesHandler) PatchTask(c *gin.Context) {
	var req service.PatchTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid payload: "+err.Error())
		return
	}

	task, err := h.svc.PatchTask(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			NotFound(c, "task not found")
		case errors.Is(err, service.ErrNoFields):
			BadRequest(c, "no fields to update")
		default:
			InternalError(c, "failed to update task: "+err.Error())
		}
		return
	}
	Success(c, task)
}
