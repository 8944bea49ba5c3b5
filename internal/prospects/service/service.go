package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"salescrm_backend/internal/events"
	"salescrm_backend/internal/prospects/repository"
	"salescrm_backend/internal/prospects/transport"
	"salescrm_backend/platform/logger"
	"salescrm_backend/platform/phone"
)

// Service provides business logic for prospects and their activities.
type Service struct {
	repo repository.Repository
	bus  events.Bus
	log  *logger.Logger
}

// New creates a new prospects service.
func New(repo repository.Repository, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, log: log}
}

// Create creates a new prospect and publishes ProspectCreated.
func (s *Service) Create(ctx context.Context, orgID uuid.UUID, req transport.CreateProspectRequest) (transport.ProspectResponse, error) {
	var contactPhone *string
	if req.ContactPhone != nil {
		normalized := phone.NormalizeE164(*req.ContactPhone)
		contactPhone = &normalized
	}

	ownerName := req.OwnerName
	if req.OwnerID == nil {
		ownerName = nil
	}

	p, err := s.repo.Create(ctx, repository.CreateParams{
		OrganizationID: orgID,
		CompanyName:    req.CompanyName,
		ContactName:    req.ContactName,
		ContactEmail:   req.ContactEmail,
		ContactPhone:   contactPhone,
		OwnerID:        req.OwnerID,
		OwnerName:      ownerName,
	})
	if err != nil {
		return transport.ProspectResponse{}, err
	}

	s.bus.Publish(ctx, events.ProspectCreated{
		BaseEvent:      events.NewBaseEvent(),
		ProspectID:     p.ID,
		OrganizationID: p.OrganizationID,
		CompanyName:    p.CompanyName,
		OwnerID:        p.OwnerID,
	})

	return toResponse(p), nil
}

// GetByID retrieves a prospect by ID.
func (s *Service) GetByID(ctx context.Context, orgID, id uuid.UUID) (transport.ProspectResponse, error) {
	p, err := s.repo.GetByID(ctx, orgID, id)
	if err != nil {
		return transport.ProspectResponse{}, err
	}
	return toResponse(p), nil
}

// List retrieves prospects with filters and pagination.
func (s *Service) List(ctx context.Context, orgID uuid.UUID, req transport.ListProspectsRequest) (transport.ProspectListResponse, error) {
	page := req.Page
	pageSize := req.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	items, total, err := s.repo.List(ctx, repository.ListParams{
		OrganizationID: orgID,
		Status:         req.Status,
		OwnerID:        req.OwnerID,
		Unassigned:     req.Unassigned,
		Limit:          pageSize,
		Offset:         (page - 1) * pageSize,
	})
	if err != nil {
		return transport.ProspectListResponse{}, err
	}

	responses := make([]transport.ProspectResponse, 0, len(items))
	for _, p := range items {
		responses = append(responses, toResponse(p))
	}

	return transport.ProspectListResponse{
		Items:    responses,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// Update partially updates a prospect; a status change publishes
// ProspectStatusChanged.
func (s *Service) Update(ctx context.Context, orgID, id uuid.UUID, req transport.UpdateProspectRequest) (transport.ProspectResponse, error) {
	var oldStatus string
	if req.Status != nil {
		existing, err := s.repo.GetByID(ctx, orgID, id)
		if err != nil {
			return transport.ProspectResponse{}, err
		}
		oldStatus = existing.Status
	}

	var contactPhone *string
	if req.ContactPhone != nil {
		normalized := phone.NormalizeE164(*req.ContactPhone)
		contactPhone = &normalized
	}

	p, err := s.repo.Update(ctx, repository.UpdateParams{
		ID:             id,
		OrganizationID: orgID,
		CompanyName:    req.CompanyName,
		ContactName:    req.ContactName,
		ContactEmail:   req.ContactEmail,
		ContactPhone:   contactPhone,
		Status:         req.Status,
	})
	if err != nil {
		return transport.ProspectResponse{}, err
	}

	if req.Status != nil && oldStatus != p.Status {
		s.bus.Publish(ctx, events.ProspectStatusChanged{
			BaseEvent:      events.NewBaseEvent(),
			ProspectID:     p.ID,
			OrganizationID: p.OrganizationID,
			OldStatus:      oldStatus,
			NewStatus:      p.Status,
		})
	}

	return toResponse(p), nil
}

// Assign changes a prospect's owner and publishes ProspectAssigned.
func (s *Service) Assign(ctx context.Context, orgID, id, assignedBy uuid.UUID, req transport.AssignProspectRequest) (transport.ProspectResponse, error) {
	existing, err := s.repo.GetByID(ctx, orgID, id)
	if err != nil {
		return transport.ProspectResponse{}, err
	}

	ownerName := req.OwnerName
	if req.OwnerID == nil {
		ownerName = nil
	}

	p, err := s.repo.Assign(ctx, repository.AssignParams{
		ID:             id,
		OrganizationID: orgID,
		OwnerID:        req.OwnerID,
		OwnerName:      ownerName,
	})
	if err != nil {
		return transport.ProspectResponse{}, err
	}

	s.bus.Publish(ctx, events.ProspectAssigned{
		BaseEvent:      events.NewBaseEvent(),
		ProspectID:     p.ID,
		OrganizationID: p.OrganizationID,
		CompanyName:    p.CompanyName,
		PreviousOwner:  existing.OwnerID,
		NewOwner:       p.OwnerID,
		NewOwnerName:   p.OwnerName,
		AssignedByID:   assignedBy,
	})

	return toResponse(p), nil
}

// LogActivity records an activity against a prospect and publishes ActivityLogged.
func (s *Service) LogActivity(ctx context.Context, orgID, prospectID, authorID uuid.UUID, authorName string, req transport.CreateActivityRequest) (transport.ActivityResponse, error) {
	// Verify the prospect exists within the caller's organization first.
	if _, err := s.repo.GetByID(ctx, orgID, prospectID); err != nil {
		return transport.ActivityResponse{}, err
	}

	var dueDate *time.Time
	if req.IsTask {
		dueDate = req.DueDate
	}

	a, err := s.repo.CreateActivity(ctx, repository.CreateActivityParams{
		ProspectID:     prospectID,
		OrganizationID: orgID,
		AuthorID:       authorID,
		AuthorName:     authorName,
		Note:           req.Note,
		IsTask:         req.IsTask,
		DueDate:        dueDate,
	})
	if err != nil {
		return transport.ActivityResponse{}, err
	}

	s.bus.Publish(ctx, events.ActivityLogged{
		BaseEvent:      events.NewBaseEvent(),
		ActivityID:     a.ID,
		ProspectID:     a.ProspectID,
		OrganizationID: a.OrganizationID,
		IsTask:         a.IsTask,
	})

	return toActivityResponse(a), nil
}

// ListActivities returns all activities for a prospect.
func (s *Service) ListActivities(ctx context.Context, orgID, prospectID uuid.UUID) (transport.ActivityListResponse, error) {
	if _, err := s.repo.GetByID(ctx, orgID, prospectID); err != nil {
		return transport.ActivityListResponse{}, err
	}

	items, err := s.repo.ListActivities(ctx, orgID, prospectID)
	if err != nil {
		return transport.ActivityListResponse{}, err
	}

	responses := make([]transport.ActivityResponse, 0, len(items))
	for _, a := range items {
		responses = append(responses, toActivityResponse(a))
	}

	return transport.ActivityListResponse{Items: responses, Total: len(responses)}, nil
}

func toResponse(p repository.Prospect) transport.ProspectResponse {
	return transport.ProspectResponse{
		ID:              p.ID,
		CompanyName:     p.CompanyName,
		ContactName:     p.ContactName,
		ContactEmail:    p.ContactEmail,
		ContactPhone:    p.ContactPhone,
		OwnerID:         p.OwnerID,
		OwnerName:       p.OwnerName,
		Status:          p.Status,
		CreatedAt:       p.CreatedAt.Format(time.RFC3339),
		StatusChangedAt: p.StatusChangedAt.Format(time.RFC3339),
		UpdatedAt:       p.UpdatedAt.Format(time.RFC3339),
	}
}

func toActivityResponse(a repository.Activity) transport.ActivityResponse {
	return transport.ActivityResponse{
		ID:         a.ID,
		ProspectID: a.ProspectID,
		AuthorID:   a.AuthorID,
		AuthorName: a.AuthorName,
		Note:       a.Note,
		IsTask:     a.IsTask,
		DueDate:    a.DueDate,
		CreatedAt:  a.CreatedAt.Format(time.RFC3339),
	}
}
