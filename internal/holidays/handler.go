package holidays

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"salescrm_backend/internal/events"
	"salescrm_backend/platform/httpkit"
	"salescrm_backend/platform/validator"
)

// ReplaceHolidaysRequest contains the full replacement holiday list.
type ReplaceHolidaysRequest struct {
	Dates []string `json:"dates" validate:"required,dive,datetime=2006-01-02"`
}

// HolidayListResponse represents the holiday registry in API responses.
type HolidayListResponse struct {
	Dates []string `json:"dates"`
}

// Handler handles HTTP requests for the holiday registry.
type Handler struct {
	repo *Repository
	bus  events.Bus
	val  *validator.Validator
}

// NewHandler creates a new holiday registry handler.
func NewHandler(repo *Repository, bus events.Bus, val *validator.Validator) *Handler {
	return &Handler{repo: repo, bus: bus, val: val}
}

// List returns the organization's holiday dates.
// GET /api/v1/holidays
func (h *Handler) List(c *gin.Context) {
	orgID, ok := mustGetOrgID(c)
	if !ok {
		return
	}

	dates, err := h.repo.GetHolidays(c.Request.Context(), orgID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, toResponse(dates))
}

// Replace replaces the organization's holiday list wholesale.
// PUT /api/v1/admin/holidays
func (h *Handler) Replace(c *gin.Context) {
	var req ReplaceHolidaysRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}
	orgID, ok := mustGetOrgID(c)
	if !ok {
		return
	}

	dates := make([]time.Time, 0, len(req.Dates))
	for _, raw := range req.Dates {
		// Validated by the datetime tag above; parse cannot fail here.
		parsed, err := time.Parse(DateFormat, raw)
		if err != nil {
			httpkit.Error(c, http.StatusBadRequest, "invalid date: "+raw, nil)
			return
		}
		dates = append(dates, parsed)
	}

	if err := h.repo.ReplaceHolidays(c.Request.Context(), orgID, dates); httpkit.HandleError(c, err) {
		return
	}

	h.bus.Publish(c.Request.Context(), events.HolidayCalendarUpdated{
		BaseEvent:      events.NewBaseEvent(),
		OrganizationID: orgID,
		HolidayCount:   len(dates),
	})

	httpkit.OK(c, toResponse(dates))
}

func toResponse(dates []time.Time) HolidayListResponse {
	formatted := make([]string, 0, len(dates))
	for _, d := range dates {
		formatted = append(formatted, d.Format(DateFormat))
	}
	sort.Strings(formatted)
	return HolidayListResponse{Dates: formatted}
}

func mustGetOrgID(c *gin.Context) (uuid.UUID, bool) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return uuid.UUID{}, false
	}
	orgID := identity.OrgID()
	if orgID == nil {
		httpkit.Error(c, http.StatusBadRequest, "organization ID is required", nil)
		return uuid.UUID{}, false
	}
	return *orgID, true
}
