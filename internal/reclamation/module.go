// Package reclamation provides the prospect lifecycle reclamation module:
// business-day aware inactivity detection and the scheduled bulk release of
// stale prospects back to the unassigned pool.
package reclamation

import (
	"salescrm_backend/internal/audit"
	"salescrm_backend/internal/events"
	apphttp "salescrm_backend/internal/http"
	"salescrm_backend/internal/reclamation/handler"
	"salescrm_backend/internal/reclamation/repository"
	"salescrm_backend/internal/reclamation/service"
	"salescrm_backend/platform/config"
	"salescrm_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the reclamation module implementing http.Module.
type Module struct {
	handler     *handler.Handler
	service     *service.Service
	hasEnqueuer bool
}

// NewModule creates and initializes the reclamation module.
func NewModule(pool *pgxpool.Pool, auditWriter audit.Writer, bus events.Bus, cfg config.ReclamationConfig, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, auditWriter, bus, log, cfg.GetReleaseThresholdDays())

	return &Module{
		handler: handler.NewHandler(svc, log),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "reclamation"
}

// Service returns the reclamation service for the scheduler worker.
func (m *Module) Service() *service.Service {
	return m.service
}

// SetReleaseEnqueuer enables queuing runs on the background worker via the
// admin endpoint. Must be called before RegisterRoutes.
func (m *Module) SetReleaseEnqueuer(enqueuer handler.ReleaseEnqueuer) {
	m.handler.SetReleaseEnqueuer(enqueuer)
	m.hasEnqueuer = true
}

// RegisterRoutes mounts the cron entry point on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Cron.GET("/release-inactive-prospects", m.handler.ReleaseInactive)
	if m.hasEnqueuer {
		ctx.Admin.POST("/reclamation/run", m.handler.EnqueueRelease)
	}
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
