package handler

import (
	"net/http"

	"sales_portal_backend/internal/leads/filter"
	"sales_portal_backend/internal/leads/service"
	"sales_portal_backend/internal/leads/transport"
	"sales_portal_backend/platform/httpkit"
	"sales_portal_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgLeadConverted    = "Lead converted successfully"
)

// Handler handles HTTP requests for leads
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new leads handler
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes registers the lead routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.POST("/convert", h.Convert)
	rg.GET("/:id", h.GetByID)
	rg.PUT("/:id/status", h.UpdateStatus)
	rg.POST("/:id/feedback", h.ReplaceFeedback)
}

// List handles GET /api/leads
func (h *Handler) List(c *gin.Context) {
	var req transport.ListLeadsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	items, err := h.svc.List(c.Request.Context(), filter.Params{
		Industry:    req.Industry,
		Status:      req.Status,
		MinScore:    req.MinScore,
		MaxScore:    req.MaxScore,
		Search:      req.Search,
		Confidence:  req.Confidence,
		CompanySize: req.CompanySize,
		Location:    req.Location,
		LastUpdated: req.LastUpdated,
		Sort:        req.Sort,
	})
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.List(c, items, len(items))
}

// Create handles POST /api/leads
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateLeadRequest
	if !h.bind(c, &req) {
		return
	}

	result, err := h.svc.Create(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.Created(c, result)
}

// GetByID handles GET /api/leads/:id
func (h *Handler) GetByID(c *gin.Context) {
	result, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// UpdateStatus handles PUT /api/leads/:id/status
func (h *Handler) UpdateStatus(c *gin.Context) {
	var req transport.UpdateLeadStatusRequest
	if !h.bind(c, &req) {
		return
	}

	result, err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// ReplaceFeedback handles POST /api/leads/:id/feedback
func (h *Handler) ReplaceFeedback(c *gin.Context) {
	var req transport.ReplaceFeedbackRequest
	if !h.bind(c, &req) {
		return
	}

	result, err := h.svc.ReplaceFeedback(c.Request.Context(), c.Param("id"), req.Feedback)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// Convert handles POST /api/leads/convert
func (h *Handler) Convert(c *gin.Context) {
	var req transport.ConvertLeadRequest
	if !h.bind(c, &req) {
		return
	}

	result, err := h.svc.Convert(c.Request.Context(), req.LeadID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OKWithMessage(c, result, msgLeadConverted)
}

func (h *Handler) bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest)
		return false
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed)
		return false
	}
	return true
}
