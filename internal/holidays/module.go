// Package holidays provides the holiday registry bounded context: the
// per-organization list of non-business dates consumed by the business-day
// calculator.
package holidays

import (
	"salescrm_backend/internal/events"
	apphttp "salescrm_backend/internal/http"
	"salescrm_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the holiday registry module implementing http.Module.
type Module struct {
	handler *Handler
}

// NewModule creates and initializes the holidays module.
func NewModule(pool *pgxpool.Pool, bus events.Bus, val *validator.Validator) *Module {
	repo := NewRepository(pool)
	h := NewHandler(repo, bus, val)

	return &Module{handler: h}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "holidays"
}

// RegisterRoutes mounts holiday registry routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.GET("/holidays", m.handler.List)
	ctx.Admin.PUT("/holidays", m.handler.Replace)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
