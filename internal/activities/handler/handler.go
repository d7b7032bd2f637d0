package handler

import (
	"net/http"

	"sales_portal_backend/internal/activities/service"
	"sales_portal_backend/internal/activities/transport"
	"sales_portal_backend/platform/httpkit"
	"sales_portal_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidAccount   = "invalid account id"
)

// Handler handles HTTP requests for account activities
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new activities handler
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes registers the activity routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/:accountId", h.ListByAccount)
	rg.POST("", h.Create)
}

// ListByAccount handles GET /api/activities/:accountId
func (h *Handler) ListByAccount(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("accountId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidAccount)
		return
	}

	items, err := h.svc.ListByAccount(c.Request.Context(), accountID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.List(c, items, len(items))
}

// Create handles POST /api/activities
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed)
		return
	}

	result, err := h.svc.Create(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.Created(c, result)
}
