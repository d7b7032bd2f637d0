package handler

import (
	"sales_portal_backend/internal/analytics/service"
	"sales_portal_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler serves the reporting views.
type Handler struct {
	svc *service.Service
}

// New creates a new analytics handler
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterDashboardRoutes registers the dashboard routes
func (h *Handler) RegisterDashboardRoutes(rg *gin.RouterGroup) {
	rg.GET("/stats", h.DashboardStats)
}

// RegisterAnalyticsRoutes registers the analytics routes
func (h *Handler) RegisterAnalyticsRoutes(rg *gin.RouterGroup) {
	rg.GET("/stats", h.AnalyticsStats)
}

// DashboardStats handles GET /api/dashboard/stats
func (h *Handler) DashboardStats(c *gin.Context) {
	stats, err := h.svc.Dashboard(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, stats)
}

// AnalyticsStats handles GET /api/analytics/stats
func (h *Handler) AnalyticsStats(c *gin.Context) {
	stats, err := h.svc.Analytics(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, stats)
}
