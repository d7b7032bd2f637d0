// Package activities provides the account activity log module.
package activities

import (
	"sales_portal_backend/internal/activities/handler"
	"sales_portal_backend/internal/activities/repository"
	"sales_portal_backend/internal/activities/service"
	apphttp "sales_portal_backend/internal/http"
	"sales_portal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the activities domain module
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new activities module with all dependencies wired
func NewModule(pool *pgxpool.Pool, val *validator.Validator) *Module {
	svc := service.New(repository.New(pool))

	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "activities"
}

// Service returns the service layer for the onboarding worker
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers the module's routes
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/activities"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
