package service

import (
	"time"

	"github.com/google/uuid"

	"salescrm_backend/internal/prospects/repository"
	"salescrm_backend/internal/reclamation/businessday"
	reclamationrepo "salescrm_backend/internal/reclamation/repository"
)

// EligibleProspect is a prospect the evaluator selected for release.
type EligibleProspect struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	OwnerID        uuid.UUID
	OwnerName      string
	CompanyName    string
	LastTouch      time.Time
}

// EvaluateInactivity selects the prospects whose owners have gone quiet for
// more than threshold business days. A prospect's last touch is the most
// recent of its creation time, its last status change, the timestamps of its
// activities, and the due dates of its tasks. A task due in the future
// therefore holds the prospect until that date has passed; a task due three
// days ago means the prospect went quiet three days ago, not when the task
// was written.
//
// Prospects without an owner and prospects in a terminal status are never
// candidates. Holiday sets are keyed by organization; an organization without
// a calendar counts weekdays only.
func EvaluateInactivity(
	prospects []reclamationrepo.ProspectCandidate,
	activities []reclamationrepo.ActivityRecord,
	holidaysByOrg map[uuid.UUID]map[string]struct{},
	now time.Time,
	thresholdDays int,
) []EligibleProspect {
	touches := make(map[uuid.UUID]time.Time)

	for _, act := range activities {
		if act.ProspectID == nil {
			continue
		}
		id := *act.ProspectID
		if act.CreatedAt.After(touches[id]) {
			touches[id] = act.CreatedAt
		}
		if act.IsTask && act.DueDate != nil && act.DueDate.After(touches[id]) {
			touches[id] = *act.DueDate
		}
	}

	eligible := make([]EligibleProspect, 0)
	for _, p := range prospects {
		if p.OwnerID == nil {
			continue
		}
		if repository.IsTerminalStatus(p.Status) {
			continue
		}

		lastTouch := p.CreatedAt
		if p.StatusChangedAt.After(lastTouch) {
			lastTouch = p.StatusChangedAt
		}
		if t, ok := touches[p.ID]; ok && t.After(lastTouch) {
			lastTouch = t
		}
		// A record with no usable timestamps cannot be judged; leave it alone.
		if lastTouch.IsZero() {
			continue
		}

		if businessday.Between(lastTouch, now, holidaysByOrg[p.OrganizationID]) <= thresholdDays {
			continue
		}

		eligible = append(eligible, EligibleProspect{
			ID:             p.ID,
			OrganizationID: p.OrganizationID,
			OwnerID:        *p.OwnerID,
			OwnerName:      p.OwnerName,
			CompanyName:    p.CompanyName,
			LastTouch:      lastTouch,
		})
	}

	return eligible
}
