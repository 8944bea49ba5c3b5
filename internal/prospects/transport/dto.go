package transport

import (
	"time"

	"github.com/google/uuid"
)

// CreateProspectRequest contains data for creating a new prospect.
type CreateProspectRequest struct {
	CompanyName  string     `json:"companyName" validate:"required,min=1,max=200"`
	ContactName  *string    `json:"contactName,omitempty" validate:"omitempty,max=200"`
	ContactEmail *string    `json:"contactEmail,omitempty" validate:"omitempty,email,max=254"`
	ContactPhone *string    `json:"contactPhone,omitempty" validate:"omitempty,max=32"`
	OwnerID      *uuid.UUID `json:"ownerId,omitempty"`
	OwnerName    *string    `json:"ownerName,omitempty" validate:"omitempty,max=200"`
}

// UpdateProspectRequest contains data for partially updating a prospect.
type UpdateProspectRequest struct {
	CompanyName  *string `json:"companyName,omitempty" validate:"omitempty,min=1,max=200"`
	ContactName  *string `json:"contactName,omitempty" validate:"omitempty,max=200"`
	ContactEmail *string `json:"contactEmail,omitempty" validate:"omitempty,email,max=254"`
	ContactPhone *string `json:"contactPhone,omitempty" validate:"omitempty,max=32"`
	Status       *string `json:"status,omitempty" validate:"omitempty,oneof=new contacted qualified converted not_prospective"`
}

// AssignProspectRequest contains data for changing a prospect's owner.
// A nil owner returns the prospect to the unassigned pool.
type AssignProspectRequest struct {
	OwnerID   *uuid.UUID `json:"ownerId,omitempty"`
	OwnerName *string    `json:"ownerName,omitempty" validate:"omitempty,max=200"`
}

// ListProspectsRequest contains query filters for listing prospects.
type ListProspectsRequest struct {
	Status     *string    `form:"status" validate:"omitempty,oneof=new contacted qualified converted not_prospective"`
	OwnerID    *uuid.UUID `form:"ownerId"`
	Unassigned bool       `form:"unassigned"`
	Page       int        `form:"page" validate:"omitempty,min=1"`
	PageSize   int        `form:"pageSize" validate:"omitempty,min=1,max=100"`
}

// CreateActivityRequest contains data for recording a prospect activity.
type CreateActivityRequest struct {
	Note    string     `json:"note" validate:"required,min=1,max=2000"`
	IsTask  bool       `json:"isTask"`
	DueDate *time.Time `json:"dueDate,omitempty"`
}

// ProspectResponse represents a prospect in API responses.
type ProspectResponse struct {
	ID              uuid.UUID  `json:"id"`
	CompanyName     string     `json:"companyName"`
	ContactName     *string    `json:"contactName,omitempty"`
	ContactEmail    *string    `json:"contactEmail,omitempty"`
	ContactPhone    *string    `json:"contactPhone,omitempty"`
	OwnerID         *uuid.UUID `json:"ownerId,omitempty"`
	OwnerName       string     `json:"ownerName"`
	Status          string     `json:"status"`
	CreatedAt       string     `json:"createdAt"`
	StatusChangedAt string     `json:"statusChangedAt"`
	UpdatedAt       string     `json:"updatedAt"`
}

// ProspectListResponse wraps a paged list of prospects.
type ProspectListResponse struct {
	Items    []ProspectResponse `json:"items"`
	Total    int                `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"pageSize"`
}

// ActivityResponse represents an activity in API responses.
type ActivityResponse struct {
	ID         uuid.UUID  `json:"id"`
	ProspectID uuid.UUID  `json:"prospectId"`
	AuthorID   uuid.UUID  `json:"authorId"`
	AuthorName string     `json:"authorName"`
	Note       string     `json:"note"`
	IsTask     bool       `json:"isTask"`
	DueDate    *time.Time `json:"dueDate,omitempty"`
	CreatedAt  string     `json:"createdAt"`
}

// ActivityListResponse wraps a list of activities.
type ActivityListResponse struct {
	Items []ActivityResponse `json:"items"`
	Total int                `json:"total"`
}
