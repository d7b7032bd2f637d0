// Package accounts provides the accounts domain module.
package accounts

import (
	"sales_portal_backend/internal/accounts/handler"
	"sales_portal_backend/internal/accounts/repository"
	"sales_portal_backend/internal/accounts/service"
	apphttp "sales_portal_backend/internal/http"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the accounts domain module
type Module struct {
	handler    *handler.Handler
	repository *repository.Repository
}

// NewModule creates a new accounts module with all dependencies wired
func NewModule(pool *pgxpool.Pool) *Module {
	repo := repository.New(pool)
	svc := service.New(repo)

	return &Module{
		handler:    handler.New(svc),
		repository: repo,
	}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "accounts"
}

// Repository exposes the store so the leads module can create accounts
// inside its conversion transaction.
func (m *Module) Repository() *repository.Repository {
	return m.repository
}

// RegisterRoutes registers the module's routes
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/accounts"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
