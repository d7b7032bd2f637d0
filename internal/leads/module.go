// Package leads provides the lead management bounded context module.
// This file defines the module that encapsulates all leads setup and route registration.
package leads

import (
	"time"

	"sales_portal_backend/internal/events"
	apphttp "sales_portal_backend/internal/http"
	"sales_portal_backend/internal/leads/handler"
	"sales_portal_backend/internal/leads/repository"
	"sales_portal_backend/internal/leads/service"
	"sales_portal_backend/internal/leads/transport"
	"sales_portal_backend/platform/random"
	"sales_portal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config is what the leads module reads from application config.
type Config interface {
	GetReportingLocation() *time.Location
	GetPhoneDefaultRegion() string
}

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

// NewModule creates and initializes the leads module with all its dependencies.
func NewModule(pool *pgxpool.Pool, accounts repository.AccountCreator, eventBus events.Bus, val *validator.Validator, cfg Config) (*Module, error) {
	if err := transport.RegisterValidations(val); err != nil {
		return nil, err
	}

	repo := repository.New(pool, accounts)
	svc := service.New(repo, eventBus, service.Options{
		Location:    cfg.GetReportingLocation(),
		PhoneRegion: cfg.GetPhoneDefaultRegion(),
		Random:      random.Default(),
	})

	return &Module{
		handler: handler.New(svc, val),
	}, nil
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// RegisterRoutes mounts the lead routes under /api/leads.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/leads"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
