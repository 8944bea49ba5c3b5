// Package notification turns domain events into outbound messages. It holds
// no state of its own; it subscribes to the event bus and delegates delivery
// to the email sender.
package notification

import (
	"context"
	"fmt"

	"salescrm_backend/internal/email"
	"salescrm_backend/internal/events"
	apphttp "salescrm_backend/internal/http"
	"salescrm_backend/platform/config"
	"salescrm_backend/platform/logger"
)

// Module is the notification module implementing http.Module.
type Module struct {
	sender       email.Sender
	managerEmail string
	baseURL      string
	log          *logger.Logger
}

// NewModule creates the notification module and subscribes its handlers.
func NewModule(bus events.Bus, sender email.Sender, cfg config.NotificationConfig, log *logger.Logger) *Module {
	m := &Module{
		sender:       sender,
		managerEmail: cfg.GetManagerEmail(),
		baseURL:      cfg.GetAppBaseURL(),
		log:          log,
	}

	bus.Subscribe(events.ProspectsReleased{}.EventName(), events.HandlerFunc(m.onProspectsReleased))
	bus.Subscribe(events.ProspectAssigned{}.EventName(), events.HandlerFunc(m.onProspectAssigned))

	return m
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "notification"
}

// RegisterRoutes is a no-op; the notification module has no HTTP surface.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {}

// onProspectsReleased mails the sales manager a summary of the batch.
// Delivery failures are logged; they never affect the release itself.
func (m *Module) onProspectsReleased(ctx context.Context, event events.Event) error {
	released, ok := event.(events.ProspectsReleased)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}
	if m.managerEmail == "" {
		return nil
	}

	lines := make([]email.ReleasedProspect, 0, len(released.CompanyNames))
	for i, name := range released.CompanyNames {
		owner := ""
		if i < len(released.PreviousOwners) {
			owner = released.PreviousOwners[i]
		}
		lines = append(lines, email.ReleasedProspect{CompanyName: name, PreviousOwner: owner})
	}

	poolURL := m.baseURL + "/prospects?owner=unassigned"
	if err := m.sender.SendReleaseSummaryEmail(ctx, m.managerEmail, lines, poolURL); err != nil {
		m.log.Warn("release summary email failed",
			"organization_id", released.OrganizationID.String(),
			"released", len(released.ReleasedIDs),
			"error", err.Error(),
		)
		return err
	}

	return nil
}

// onProspectAssigned mails the sales manager when a prospect changes hands.
// Owner identities live in the external identity provider, so the manager is
// the only address this system knows; returns to the unassigned pool are
// covered by the release summary and skipped here.
func (m *Module) onProspectAssigned(ctx context.Context, event events.Event) error {
	assigned, ok := event.(events.ProspectAssigned)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}
	if m.managerEmail == "" || assigned.NewOwner == nil {
		return nil
	}

	prospectURL := m.baseURL + "/prospects/" + assigned.ProspectID.String()
	if err := m.sender.SendProspectAssignedEmail(ctx, m.managerEmail, assigned.CompanyName, assigned.NewOwnerName, prospectURL); err != nil {
		m.log.Warn("assignment email failed",
			"prospect_id", assigned.ProspectID.String(),
			"error", err.Error(),
		)
		return err
	}

	return nil
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
