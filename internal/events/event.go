// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"salescrm_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Prospect Domain Events
// =============================================================================

// ProspectCreated is published when a new prospect is created.
type ProspectCreated struct {
	BaseEvent
	ProspectID     uuid.UUID  `json:"prospectId"`
	OrganizationID uuid.UUID  `json:"organizationId"`
	CompanyName    string     `json:"companyName"`
	OwnerID        *uuid.UUID `json:"ownerId,omitempty"`
}

func (e ProspectCreated) EventName() string { return "prospects.created" }

// ProspectAssigned is published when a prospect's owner changes.
type ProspectAssigned struct {
	BaseEvent
	ProspectID     uuid.UUID  `json:"prospectId"`
	OrganizationID uuid.UUID  `json:"organizationId"`
	CompanyName    string     `json:"companyName"`
	PreviousOwner  *uuid.UUID `json:"previousOwner,omitempty"`
	NewOwner       *uuid.UUID `json:"newOwner,omitempty"`
	NewOwnerName   string     `json:"newOwnerName,omitempty"`
	AssignedByID   uuid.UUID  `json:"assignedById"`
}

func (e ProspectAssigned) EventName() string { return "prospects.assigned" }

// ProspectStatusChanged is published when a prospect's status changes.
type ProspectStatusChanged struct {
	BaseEvent
	ProspectID     uuid.UUID `json:"prospectId"`
	OrganizationID uuid.UUID `json:"organizationId"`
	OldStatus      string    `json:"oldStatus"`
	NewStatus      string    `json:"newStatus"`
}

func (e ProspectStatusChanged) EventName() string { return "prospects.status.changed" }

// ActivityLogged is published when a prospect activity is recorded.
type ActivityLogged struct {
	BaseEvent
	ActivityID     uuid.UUID `json:"activityId"`
	ProspectID     uuid.UUID `json:"prospectId"`
	OrganizationID uuid.UUID `json:"organizationId"`
	IsTask         bool      `json:"isTask"`
}

func (e ActivityLogged) EventName() string { return "prospects.activity.logged" }

// =============================================================================
// Reclamation Domain Events
// =============================================================================

// ProspectsReleased is published after a reclamation run returns prospects to
// the unassigned pool. One event summarizes the whole batch.
type ProspectsReleased struct {
	BaseEvent
	OrganizationID uuid.UUID   `json:"organizationId"`
	ReleasedIDs    []uuid.UUID `json:"releasedIds"`
	CompanyNames   []string    `json:"companyNames"`
	PreviousOwners []string    `json:"previousOwners"`
}

func (e ProspectsReleased) EventName() string { return "reclamation.prospects.released" }

// =============================================================================
// Holiday Domain Events
// =============================================================================

// HolidayCalendarUpdated is published when the holiday registry is replaced.
type HolidayCalendarUpdated struct {
	BaseEvent
	OrganizationID uuid.UUID `json:"organizationId"`
	HolidayCount   int       `json:"holidayCount"`
}

func (e HolidayCalendarUpdated) EventName() string { return "holidays.calendar.updated" }
