package service

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"salescrm_backend/internal/prospects/repository"
	reclamationrepo "salescrm_backend/internal/reclamation/repository"
)

var evalNow = time.Date(2024, time.February, 5, 9, 0, 0, 0, time.UTC) // Monday

const evalThreshold = 7

func candidate(orgID uuid.UUID, status string, lastTouch time.Time) reclamationrepo.ProspectCandidate {
	ownerID := uuid.New()
	return reclamationrepo.ProspectCandidate{
		ID:              uuid.New(),
		OrganizationID:  orgID,
		OwnerID:         &ownerID,
		OwnerName:       "Alex Doe",
		CompanyName:     "Acme BV",
		Status:          status,
		CreatedAt:       lastTouch,
		StatusChangedAt: lastTouch,
	}
}

func TestEvaluateInactivity_StaleProspectIsEligible(t *testing.T) {
	orgID := uuid.New()
	// Two calendar weeks back is ten business days.
	p := candidate(orgID, repository.StatusContacted, evalNow.AddDate(0, 0, -14))

	got := EvaluateInactivity(
		[]reclamationrepo.ProspectCandidate{p}, nil, nil, evalNow, evalThreshold,
	)
	if len(got) != 1 {
		t.Fatalf("expected 1 eligible prospect, got %d", len(got))
	}
	if got[0].ID != p.ID {
		t.Fatalf("expected prospect %s, got %s", p.ID, got[0].ID)
	}
	if got[0].OwnerName != "Alex Doe" {
		t.Fatalf("expected owner name preserved, got %q", got[0].OwnerName)
	}
}

func TestEvaluateInactivity_RecentTouchNotEligible(t *testing.T) {
	orgID := uuid.New()
	// One calendar week back is five business days, under the threshold.
	p := candidate(orgID, repository.StatusContacted, evalNow.AddDate(0, 0, -7))

	got := EvaluateInactivity(
		[]reclamationrepo.ProspectCandidate{p}, nil, nil, evalNow, evalThreshold,
	)
	if len(got) != 0 {
		t.Fatalf("expected no eligible prospects, got %d", len(got))
	}
}

func TestEvaluateInactivity_TerminalStatusesNeverEligible(t *testing.T) {
	orgID := uuid.New()
	stale := evalNow.AddDate(0, 0, -60)
	prospects := []reclamationrepo.ProspectCandidate{
		candidate(orgID, repository.StatusConverted, stale),
		candidate(orgID, repository.StatusNotProspective, stale),
	}

	got := EvaluateInactivity(prospects, nil, nil, evalNow, evalThreshold)
	if len(got) != 0 {
		t.Fatalf("expected terminal prospects to be excluded, got %d", len(got))
	}
}

func TestEvaluateInactivity_UnownedSkipped(t *testing.T) {
	orgID := uuid.New()
	p := candidate(orgID, repository.StatusNew, evalNow.AddDate(0, 0, -60))
	p.OwnerID = nil
	p.OwnerName = repository.UnassignedOwnerName

	got := EvaluateInactivity(
		[]reclamationrepo.ProspectCandidate{p}, nil, nil, evalNow, evalThreshold,
	)
	if len(got) != 0 {
		t.Fatalf("expected unowned prospect to be skipped, got %d", len(got))
	}
}

func TestEvaluateInactivity_ActivityResetsTheClock(t *testing.T) {
	orgID := uuid.New()
	p := candidate(orgID, repository.StatusContacted, evalNow.AddDate(0, 0, -60))
	recent := evalNow.AddDate(0, 0, -2)
	activities := []reclamationrepo.ActivityRecord{
		{ProspectID: &p.ID, CreatedAt: recent},
	}

	got := EvaluateInactivity(
		[]reclamationrepo.ProspectCandidate{p}, activities, nil, evalNow, evalThreshold,
	)
	if len(got) != 0 {
		t.Fatalf("expected recent activity to keep prospect owned, got %d eligible", len(got))
	}
}

func TestEvaluateInactivity_FutureTaskParksProspect(t *testing.T) {
	orgID := uuid.New()
	p := candidate(orgID, repository.StatusQualified, evalNow.AddDate(0, 0, -60))
	due := evalNow.AddDate(0, 0, 3)
	activities := []reclamationrepo.ActivityRecord{
		{ProspectID: &p.ID, CreatedAt: evalNow.AddDate(0, 0, -59), IsTask: true, DueDate: &due},
	}

	got := EvaluateInactivity(
		[]reclamationrepo.ProspectCandidate{p}, activities, nil, evalNow, evalThreshold,
	)
	if len(got) != 0 {
		t.Fatalf("expected future task to park prospect, got %d eligible", len(got))
	}
}

func TestEvaluateInactivity_LongOverdueTaskLeavesProspectEligible(t *testing.T) {
	orgID := uuid.New()
	p := candidate(orgID, repository.StatusQualified, evalNow.AddDate(0, 0, -60))
	// The due date is the freshest touch, but it is a month stale itself.
	due := evalNow.AddDate(0, 0, -30)
	activities := []reclamationrepo.ActivityRecord{
		{ProspectID: &p.ID, CreatedAt: evalNow.AddDate(0, 0, -59), IsTask: true, DueDate: &due},
	}

	got := EvaluateInactivity(
		[]reclamationrepo.ProspectCandidate{p}, activities, nil, evalNow, evalThreshold,
	)
	if len(got) != 1 {
		t.Fatalf("expected long-overdue task to leave prospect eligible, got %d", len(got))
	}
	if !got[0].LastTouch.Equal(due) {
		t.Fatalf("expected last touch %v, got %v", due, got[0].LastTouch)
	}
}

func TestEvaluateInactivity_RecentDueDateResetsTheClock(t *testing.T) {
	orgID := uuid.New()
	// Every other touch is three weeks stale, but a task fell due last
	// Friday, one business day before the Monday evaluation.
	p := candidate(orgID, repository.StatusQualified, evalNow.AddDate(0, 0, -21))
	due := evalNow.AddDate(0, 0, -3)
	activities := []reclamationrepo.ActivityRecord{
		{ProspectID: &p.ID, CreatedAt: evalNow.AddDate(0, 0, -21), IsTask: true, DueDate: &due},
	}

	got := EvaluateInactivity(
		[]reclamationrepo.ProspectCandidate{p}, activities, nil, evalNow, evalThreshold,
	)
	if len(got) != 0 {
		t.Fatalf("expected recent due date to keep prospect owned, got %d eligible", len(got))
	}
}

func TestEvaluateInactivity_UnlinkedActivityIgnored(t *testing.T) {
	orgID := uuid.New()
	p := candidate(orgID, repository.StatusContacted, evalNow.AddDate(0, 0, -60))
	activities := []reclamationrepo.ActivityRecord{
		{ProspectID: nil, CreatedAt: evalNow.AddDate(0, 0, -1)},
	}

	got := EvaluateInactivity(
		[]reclamationrepo.ProspectCandidate{p}, activities, nil, evalNow, evalThreshold,
	)
	if len(got) != 1 {
		t.Fatalf("expected unlinked activity to be ignored, got %d eligible", len(got))
	}
}

func TestEvaluateInactivity_ZeroTimestampsSkipped(t *testing.T) {
	orgID := uuid.New()
	p := candidate(orgID, repository.StatusContacted, time.Time{})

	got := EvaluateInactivity(
		[]reclamationrepo.ProspectCandidate{p}, nil, nil, evalNow, evalThreshold,
	)
	if len(got) != 0 {
		t.Fatalf("expected prospect without timestamps to be skipped, got %d", len(got))
	}
}

func TestEvaluateInactivity_HolidaysExtendTheWindow(t *testing.T) {
	orgWithHolidays := uuid.New()
	orgWithout := uuid.New()

	// Twelve calendar days back is eight business days, just over the
	// threshold without holidays.
	lastTouch := evalNow.AddDate(0, 0, -12)
	holidays := map[uuid.UUID]map[string]struct{}{
		orgWithHolidays: {
			lastTouch.AddDate(0, 0, 1).Format("2006-01-02"): {},
			lastTouch.AddDate(0, 0, 2).Format("2006-01-02"): {},
		},
	}

	prospects := []reclamationrepo.ProspectCandidate{
		candidate(orgWithHolidays, repository.StatusContacted, lastTouch),
		candidate(orgWithout, repository.StatusContacted, lastTouch),
	}

	got := EvaluateInactivity(prospects, nil, holidays, evalNow, evalThreshold)
	if len(got) != 1 {
		t.Fatalf("expected only the org without holidays to release, got %d", len(got))
	}
	if got[0].OrganizationID != orgWithout {
		t.Fatalf("expected release in org %s, got %s", orgWithout, got[0].OrganizationID)
	}
}
