package handler

import (
	"errors"

	"github.com/Bunrieu-sketch/content-pipeline/internal/sponsor/repository"
	"github.com/Bunrieu-sketch/content-pipeline/internal/sponsor/service"
	"github.com/gin-gonic/gin"
)

// DealHandler sponsor deal pipeline endpoints
type DealHandler struct {
	svc       *service.DealService
	dashboard *service.DashboardService
}

func NewDealHandler(svc *service.DealService, dashboard *service.DashboardService) *DealHandler {
	return &DealHandler{svc: svc, dashboard: dashboard}
}

// ListDeals deal list, optionally filtered by stage
// GET /api/v1/sponsors?stage=xxx
func (h *DealHandler) ListDeals(c *gin.Context) {
	stage := c.Query("stage")
	deals, err := h.svc.List(c.Request.Context(), stage)
	if err != nil {
		if errors.Is(err, service.ErrInvalidStage) {
			BadRequest(c, "invalid stage: "+stage)
			return
		}
		InternalError(c, "failed to list deals: "+err.Error())
		return
	}
	Success(c, ListResponse{Items: deals})
}

// GetDeal deal detail
// GET /api/v1/sponsors/:id
func (h *DealHandler) GetDeal(c *gin.Context) {
	deal, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "deal not found")
			return
		}
		InternalError(c, "failed to load deal: "+err.Error())
		return
	}
	Success(c, deal)
}

// CreateDeal creates a deal
// POST /api/v1/sponsors
func (h *DealHandler) CreateDeal(c *gin.Context) {
	var req service.CreateDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid payload: "+err.Error())
		return
	}

	deal, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidStage) {
			BadRequest(c, "invalid stage")
			return
		}
		InternalError(c, "failed to create deal: "+err.Error())
		return
	}
	h.dashboard.InvalidateStats(c.Request.Context())
	Created(c, deal)
}

// PatchDeal partial deal update
// PATCH /api/v1/sponsors/:id
func (h *DealHandler) PatchDeal(c *gin.Context) {
	var req service.PatchDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid payload: "+err.Error())
		return
	}

	deal, err := h.svc.Patch(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			NotFound(c, "deal not found")
		case errors.Is(err, service.ErrNoFields):
			BadRequest(c, "no fields to update")
		case errors.Is(err, service.ErrInvalidStage):
			BadRequest(c, "invalid stage")
		default:
			InternalError(c, "failed to update deal: "+err.Error())
		}
		return
	}
	h.dashboard.InvalidateStats(c.Request.Context())
	Success(c, deal)
}

// MoveStageRequest optional explicit target; empty means next stage in order
type MoveStageRequest struct {
	Stage string `json:"stage"`
}

// MoveDeal advances a deal through the pipeline
// POST /api/v1/sponsors/:id/move
func (h *DealHandler) MoveDeal(c *gin.Context) {
	var req MoveStageRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			BadRequest(c, "invalid payload: "+err.Error())
			return
		}
	}

	deal, err := h.svc.MoveStage(c.Request.Context(), c.Param("id"), req.Stage)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			NotFound(c, "deal not found")
		case errors.Is(err, service.ErrInvalidStage):
			BadRequest(c, "invalid stage: "+req.Stage)
		default:
			InternalError(c, "failed to move deal: "+err.Error())
		}
		return
	}
	h.dashboard.InvalidateStats(c.Request.Context())
	Success(c, deal)
}

// DeleteDeal removes a deal and its children
// DELETE /api/v1/sponsors/:id
func (h *DealHandler) DeleteDeal(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "deal not found")
			return
		}
		InternalError(c, "failed to delete deal: "+err.Error())
		return
	}
	h.dashboard.InvalidateStats(c.Request.Context())
	Success(c, gin.H{"deleted": true})
}

// ListDeliverables deliverables of a deal
// GET /api/v1/sponsors/:id/deliverables
func (h *DealHandler) ListDeliverables(c *gin.Context) {
	items, err := h.svc.ListDeliverables(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "deal not found")
			return
		}
		InternalError(c, "failed to list deliverables: "+err.Error())
		return
	}
	Success(c, ListResponse{Items: items})
}

// CreateDeliverable adds a deliverable to a deal
// POST /api/v1/sponsors/:id/deliverables
func (h *DealHandler) CreateDeliverable(c *gin.Context) {
	var req service.CreateDeliverableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid payload: "+err.Error())
		return
	}

	item, err := h.svc.CreateDeliverable(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "deal not found")
			return
		}
		InternalError(c, "failed to create deliverable: "+err.Error())
		return
	}
	Created(c, item)
}

// UpdateDeliverable patches a deliverable
// PATCH /api/v1/sponsors/:id/deliverables/:deliverableId
func (h *DealHandler) UpdateDeliverable(c *gin.Context) {
	var req service.UpdateDeliverableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid payload: "+err.Error())
		return
	}

	item, err := h.svc.UpdateDeliverable(c.Request.Context(), c.Param("id"), c.Param("deliverableId"), &req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			NotFound(c, "deliverable not found")
		case errors.Is(err, service.ErrNoFields):
			BadRequest(c, "no fields to update")
		default:
			InternalError(c, "failed to update deliverable: "+err.Error())
		}
		return
	}
	Success(c, item)
}

// DeleteDeliverable removes a deliverable
// DELETE /api/v1/sponsors/:id/deliverables/:deliverableId
func (h *DealHandler) DeleteDeliverable(c *gin.Context) {
	if err := h.svc.DeleteDeliverable(c.Request.Context(), c.Param("id"), c.Param("deliverableId")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "deliverable not found")
			return
		}
		InternalError(c, "failed to delete deliverable: "+err.Error())
		return
	}
	Success(c, gin.H{"deleted": true})
}

// ListNotes notes of a deal
// GET /api/v1/sponsors/:id/notes
func (h *DealHandler) ListNotes(c *gin.Context) {
	notes, err := h.svc.ListNotes(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "deal not found")
			return
		}
		InternalError(c, "failed to list notes: "+err.Error())
		return
	}
	Success(c, ListResponse{Items: notes})
}

// CreateNote appends a note to a deal
// POST /api/v1/sponsors/:id/notes
func (h *DealHandler) CreateNote(c *gin.Context) {
	var req service.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid payload: "+err.Error())
		return
	}

	note, err := h.svc.CreateNote(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "deal not found")
			return
		}
		InternalError(c, "failed to create note: "+err.Error())
		return
	}
	Created(c, note)
}

// DeleteNote removes a note
// DELETE /api/v1/sponsors/:id/notes/:noteId
func (h *DealHandler) DeleteNote(c *gin.Context) {
	if err := h.svc.DeleteNote(c.Request.Context(), c.Param("id"), c.Param("noteId")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "deal not found")
			return
		}
		InternalError(c, "failed to delete note: "+err.Error())
		return
	}
	Success(c, gin.H{"deleted": true})
}
