// Package events defines the lead lifecycle events. The bus itself lives in
// platform/events and is aliased here so modules import a single package.
package events

import (
	"sales_portal_backend/platform/events"

	"github.com/google/uuid"
)

type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
	InMemoryBus = events.InMemoryBus
)

var (
	NewBaseEvent   = events.NewBaseEvent
	NewInMemoryBus = events.NewInMemoryBus
)

// =============================================================================
// Lead Domain Events
// =============================================================================

// LeadCreated is published when a lead enters through intake.
type LeadCreated struct {
	BaseEvent
	LeadID     uuid.UUID `json:"leadId"`
	Company    string    `json:"company"`
	MatchScore int       `json:"matchScore"`
}

func (e LeadCreated) EventName() string { return "leads.lead.created" }

// LeadStatusChanged is published after a status update is persisted.
type LeadStatusChanged struct {
	BaseEvent
	LeadID    uuid.UUID `json:"leadId"`
	NewStatus string    `json:"newStatus"`
}

func (e LeadStatusChanged) EventName() string { return "leads.status.changed" }

// LeadConverted is published after a lead and its new account are committed.
type LeadConverted struct {
	BaseEvent
	LeadID    uuid.UUID `json:"leadId"`
	AccountID uuid.UUID `json:"accountId"`
	Company   string    `json:"company"`
	Owner     string    `json:"owner"`
}

func (e LeadConverted) EventName() string { return "leads.lead.converted" }
