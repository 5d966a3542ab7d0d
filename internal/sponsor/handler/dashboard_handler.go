package handler

import (
	"github.com/Bunrieu-sketch/content-pipeline/internal/sponsor/service"
	"github.com/gin-gonic/gin"
)

// DashboardHandler overview stats endpoint
type DashboardHandler struct {
	svc *service.DashboardService
}

func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// GetStats overview counters
// GET /api/v1/stats
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.svc.GetStats(c.Request.Context())
	if err != nil {
		InternalError(c, "failed to load dashboard stats: "+err.Error())
		return
	}
	Success(c, stats)
}
