package audit

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"salescrm_backend/platform/httpkit"
)

// RecordResponse represents an audit record in API responses.
type RecordResponse struct {
	ID         uuid.UUID `json:"id"`
	ActorID    string    `json:"actorId"`
	ActorName  string    `json:"actorName"`
	Action     string    `json:"action"`
	EntityType string    `json:"entityType"`
	EntityID   uuid.UUID `json:"entityId"`
	EntityName string    `json:"entityName"`
	Details    string    `json:"details"`
	OwnerName  string    `json:"ownerName"`
	CreatedAt  string    `json:"createdAt"`
}

// ListResponse wraps a list of audit records.
type ListResponse struct {
	Items []RecordResponse `json:"items"`
	Total int              `json:"total"`
}

// Handler handles HTTP requests for the audit log.
type Handler struct {
	repo *Repository
}

// NewHandler creates a new audit log handler.
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// List returns the newest audit records.
// GET /api/v1/admin/audit
func (h *Handler) List(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	orgID := identity.OrgID()
	if orgID == nil {
		httpkit.Error(c, http.StatusBadRequest, "organization ID is required", nil)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	records, err := h.repo.List(c.Request.Context(), *orgID, limit)
	if httpkit.HandleError(c, err) {
		return
	}

	items := make([]RecordResponse, 0, len(records))
	for _, rec := range records {
		items = append(items, RecordResponse{
			ID:         rec.ID,
			ActorID:    rec.ActorID,
			ActorName:  rec.ActorName,
			Action:     rec.Action,
			EntityType: rec.EntityType,
			EntityID:   rec.EntityID,
			EntityName: rec.EntityName,
			Details:    rec.Details,
			OwnerName:  rec.OwnerName,
			CreatedAt:  rec.CreatedAt.Format(time.RFC3339),
		})
	}

	httpkit.OK(c, ListResponse{Items: items, Total: len(items)})
}
