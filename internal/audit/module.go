// Package audit provides the append-only audit log bounded context.
// The reclamation executor writes one record per release batch here.
package audit

import (
	apphttp "salescrm_backend/internal/http"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the audit log module implementing http.Module.
type Module struct {
	handler *Handler
	repo    *Repository
}

// NewModule creates and initializes the audit module.
func NewModule(pool *pgxpool.Pool) *Module {
	repo := NewRepository(pool)
	return &Module{
		handler: NewHandler(repo),
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "audit"
}

// Repository returns the audit repository for other modules.
func (m *Module) Repository() *Repository {
	return m.repo
}

// RegisterRoutes mounts audit log routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Admin.GET("/audit", m.handler.List)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
