package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"salescrm_backend/internal/reclamation/service"
	"salescrm_backend/platform/httpkit"
	"salescrm_backend/platform/logger"
)

// RunResponse is the success payload for a reclamation run.
type RunResponse struct {
	Success       bool        `json:"success"`
	ReleasedCount int         `json:"releasedCount"`
	ReleasedIDs   []uuid.UUID `json:"releasedIds"`
}

// ReleaseEnqueuer queues a release run for background execution.
type ReleaseEnqueuer interface {
	EnqueueReleaseRun(ctx context.Context, triggeredBy string) error
}

// Handler exposes the reclamation engine to the cron entry point.
type Handler struct {
	svc      *service.Service
	enqueuer ReleaseEnqueuer
	log      *logger.Logger
}

// NewHandler creates a new reclamation handler.
func NewHandler(svc *service.Service, log *logger.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// SetReleaseEnqueuer enables the admin endpoint that queues a run on the
// background worker instead of executing it inline.
func (h *Handler) SetReleaseEnqueuer(enqueuer ReleaseEnqueuer) {
	h.enqueuer = enqueuer
}

// ReleaseInactive triggers one reclamation pass.
// GET /api/v1/cron/release-inactive-prospects
func (h *Handler) ReleaseInactive(c *gin.Context) {
	result, err := h.svc.Run(c.Request.Context())
	h.log.CronRun("release_inactive_prospects", result.ReleasedCount, err)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, RunResponse{
		Success:       true,
		ReleasedCount: result.ReleasedCount,
		ReleasedIDs:   result.ReleasedIDs,
	})
}

// EnqueueRelease queues a release run on the background worker.
// POST /api/v1/admin/reclamation/run
func (h *Handler) EnqueueRelease(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	if err := h.enqueuer.EnqueueReleaseRun(c.Request.Context(), identity.UserID().String()); err != nil {
		h.log.Error("failed to enqueue release run", "error", err.Error())
		httpkit.Error(c, http.StatusInternalServerError, "failed to queue release run", nil)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"success": true, "queued": true})
}
