package handler

import (
	"errors"

	"github.com/Bunrieu-sketch/content-pipeline/internal/production/repository"
	"github.com/Bunrieu-sketch/content-pipeline/internal/production/service"
	"github.com/gin-gonic/gin"
)

// VideoHandler video board endpoints
type VideoHandler struct {
	svc *service.VideoService
}

func NewVideoHandler(svc *service.VideoService) *VideoHandler {
	return &VideoHandler{svc: svc}
}

// ListVideos board list in sort order
// GET /api/v1/videos
func (h *VideoHandler) ListVideos(c *gin.Context) {
	videos, err := h.svc.List(c.Request.Context())
	if err != nil {
		InternalError(c, "failed to list videos: "+err.Error())
		return
	}
	Success(c, ListResponse{Items: videos})
}

// CreateVideo adds a video to the board
// POST /api/v1/videos
func (h *VideoHandler) CreateVideo(c *gin.Context) {
	var req service.CreateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid payload: "+err.Error())
		return
	}

	video, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStage):
			BadRequest(c, "invalid stage")
		case errors.Is(err, service.ErrDuplicateTitle):
			Conflict(c, "video already exists")
		default:
			InternalError(c, "failed to create video: "+err.Error())
		}
		return
	}
	Created(c, video)
}

// PatchVideo partial video update
// PATCH /api/v1/videos/:id
func (h *VideoHandler) PatchVideo(c *gin.Context) {
	var req service.PatchVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid payload: "+err.Error())
		return
	}

	video, err := h.svc.Patch(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			NotFound(c, "video not found")
		case errors.Is(err, service.ErrNoFields):
			BadRequest(c, "no fields to update")
		case errors.Is(err, service.ErrInvalidStage):
			BadRequest(c, "invalid stage")
		default:
			InternalError(c, "failed to update video: "+err.Error())
		}
		return
	}
	Success(c, video)
}

// DeleteVideo removes a video from the board
// DELETE /api/v1/videos/:id
func (h *VideoHandler) DeleteVideo(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "video not found")
			return
		}
		InternalError(c, "failed to delete video: "+err.Error())
		return
	}
	Success(c, gin.H{"deleted": true})
}
