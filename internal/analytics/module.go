// Package analytics provides the dashboard and analytics reporting module.
package analytics

import (
	"time"

	"sales_portal_backend/internal/analytics/handler"
	"sales_portal_backend/internal/analytics/repository"
	"sales_portal_backend/internal/analytics/service"
	apphttp "sales_portal_backend/internal/http"
	"sales_portal_backend/platform/random"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the analytics module
type Module struct {
	handler *handler.Handler
}

// NewModule creates a new analytics module. loc fixes day and month
// boundaries for every statistic.
func NewModule(pool *pgxpool.Pool, loc *time.Location) *Module {
	svc := service.New(repository.New(pool), service.Options{
		Location: loc,
		Random:   random.Default(),
	})

	return &Module{handler: handler.New(svc)}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "analytics"
}

// RegisterRoutes registers /api/dashboard and /api/analytics
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterDashboardRoutes(ctx.Protected.Group("/dashboard"))
	m.handler.RegisterAnalyticsRoutes(ctx.Protected.Group("/analytics"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
