package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Prospect statuses. Converted and NotProspective are terminal: prospects in
// those states are never reclaimed.
const (
	StatusNew            = "new"
	StatusContacted      = "contacted"
	StatusQualified      = "qualified"
	StatusConverted      = "converted"
	StatusNotProspective = "not_prospective"
)

// UnassignedOwnerName is the display label stored when a prospect has no owner.
const UnassignedOwnerName = "Unassigned"

// Prospect represents a pre-sale lead record, distinct from a converted client.
type Prospect struct {
	ID              uuid.UUID
	OrganizationID  uuid.UUID
	CompanyName     string
	ContactName     *string
	ContactEmail    *string
	ContactPhone    *string
	OwnerID         *uuid.UUID
	OwnerName       string
	Status          string
	CreatedAt       time.Time
	StatusChangedAt time.Time
	UpdatedAt       time.Time
}

// Activity is an immutable record of an interaction with a prospect.
// When IsTask is true, DueDate carries the scheduled follow-up date.
type Activity struct {
	ID             uuid.UUID
	ProspectID     uuid.UUID
	OrganizationID uuid.UUID
	AuthorID       uuid.UUID
	AuthorName     string
	Note           string
	IsTask         bool
	DueDate        *time.Time
	CreatedAt      time.Time
}

// CreateParams contains parameters for creating a prospect.
type CreateParams struct {
	OrganizationID uuid.UUID
	CompanyName    string
	ContactName    *string
	ContactEmail   *string
	ContactPhone   *string
	OwnerID        *uuid.UUID
	OwnerName      *string
}

// UpdateParams contains parameters for partially updating a prospect.
// Nil fields are left unchanged.
type UpdateParams struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	CompanyName    *string
	ContactName    *string
	ContactEmail   *string
	ContactPhone   *string
	Status         *string
}

// AssignParams contains parameters for changing a prospect's owner.
type AssignParams struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	OwnerID        *uuid.UUID
	OwnerName      *string
}

// ListParams contains filters and pagination for listing prospects.
type ListParams struct {
	OrganizationID uuid.UUID
	Status         *string
	OwnerID        *uuid.UUID
	Unassigned     bool
	Limit          int
	Offset         int
}

// CreateActivityParams contains parameters for recording an activity.
type CreateActivityParams struct {
	ProspectID     uuid.UUID
	OrganizationID uuid.UUID
	AuthorID       uuid.UUID
	AuthorName     string
	Note           string
	IsTask         bool
	DueDate        *time.Time
}

// ProspectReader provides read operations for prospects.
type ProspectReader interface {
	GetByID(ctx context.Context, organizationID, id uuid.UUID) (Prospect, error)
	List(ctx context.Context, params ListParams) ([]Prospect, int, error)
}

// ProspectWriter provides write operations for prospects.
type ProspectWriter interface {
	Create(ctx context.Context, params CreateParams) (Prospect, error)
	Update(ctx context.Context, params UpdateParams) (Prospect, error)
	Assign(ctx context.Context, params AssignParams) (Prospect, error)
}

// ActivityStore provides operations for prospect activities.
type ActivityStore interface {
	CreateActivity(ctx context.Context, params CreateActivityParams) (Activity, error)
	ListActivities(ctx context.Context, organizationID, prospectID uuid.UUID) ([]Activity, error)
}

// Repository combines all prospect repository operations.
type Repository interface {
	ProspectReader
	ProspectWriter
	ActivityStore
}

// IsTerminalStatus reports whether a status excludes a prospect from reclamation.
func IsTerminalStatus(status string) bool {
	return status == StatusConverted || status == StatusNotProspective
}

// IsValidStatus reports whether the given status is a known enum value.
func IsValidStatus(status string) bool {
	switch status {
	case StatusNew, StatusContacted, StatusQualified, StatusConverted, StatusNotProspective:
		return true
	}
	return false
}
