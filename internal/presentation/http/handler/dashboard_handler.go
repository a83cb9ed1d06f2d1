package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sparetrack/sparetrack-api/internal/application/service"
	"github.com/sparetrack/sparetrack-api/internal/presentation/http/dto/response"
)

// DashboardHandler handles dashboard HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Stats returns the shop's dashboard figures
func (h *DashboardHandler) Stats(c *gin.Context) {
	shopID := GetShopID(c)
	if shopID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var from, to time.Time
	if fromStr := c.Query("from"); fromStr != "" {
		if parsed, err := time.Parse("2006-01-02", fromStr); err == nil {
			from = parsed
		}
	}
	if toStr := c.Query("to"); toStr != "" {
		if parsed, err := time.Parse("2006-01-02", toStr); err == nil {
			to = parsed.AddDate(0, 0, 1)
		}
	}

	stats, err := h.dashboardService.Stats(c.Request.Context(), *shopID, from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard stats retrieved successfully", stats)
}
