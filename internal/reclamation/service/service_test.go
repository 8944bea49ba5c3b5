package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"salescrm_backend/internal/audit"
	"salescrm_backend/internal/events"
	"salescrm_backend/internal/prospects/repository"
	reclamationrepo "salescrm_backend/internal/reclamation/repository"
	"salescrm_backend/platform/logger"
)

type fakeRepo struct {
	prospects  []reclamationrepo.ProspectCandidate
	activities []reclamationrepo.ActivityRecord
	calendars  map[uuid.UUID][]time.Time

	released   [][]uuid.UUID
	releaseErr error
}

func (f *fakeRepo) ListProspects(context.Context) ([]reclamationrepo.ProspectCandidate, error) {
	return f.prospects, nil
}

func (f *fakeRepo) ListActivities(context.Context) ([]reclamationrepo.ActivityRecord, error) {
	return f.activities, nil
}

func (f *fakeRepo) ListHolidayCalendars(context.Context) (map[uuid.UUID][]time.Time, error) {
	return f.calendars, nil
}

// ReleaseProspects mirrors the real executor: on failure nothing is applied,
// on success the whole batch loses its owner.
func (f *fakeRepo) ReleaseProspects(_ context.Context, ids []uuid.UUID) error {
	if f.releaseErr != nil {
		return f.releaseErr
	}
	for _, id := range ids {
		for i := range f.prospects {
			if f.prospects[i].ID == id {
				f.prospects[i].OwnerID = nil
				f.prospects[i].OwnerName = repository.UnassignedOwnerName
			}
		}
	}
	f.released = append(f.released, ids)
	return nil
}

type fakeAuditWriter struct {
	appended  []audit.AppendParams
	appendErr error
}

func (f *fakeAuditWriter) Append(_ context.Context, params audit.AppendParams) (audit.Record, error) {
	if f.appendErr != nil {
		return audit.Record{}, f.appendErr
	}
	f.appended = append(f.appended, params)
	return audit.Record{ID: uuid.New()}, nil
}

type captureBus struct {
	published []events.Event
}

func (b *captureBus) Publish(_ context.Context, event events.Event) {
	b.published = append(b.published, event)
}

func (b *captureBus) PublishSync(_ context.Context, event events.Event) error {
	b.published = append(b.published, event)
	return nil
}

func (b *captureBus) Subscribe(string, events.Handler) {}

func newTestService(repo *fakeRepo, auditWriter *fakeAuditWriter, bus *captureBus) *Service {
	svc := New(repo, auditWriter, bus, logger.New("development"), evalThreshold)
	svc.now = func() time.Time { return evalNow }
	return svc
}

func TestRun_ReleasesStaleProspects(t *testing.T) {
	orgID := uuid.New()
	stale := candidate(orgID, repository.StatusContacted, evalNow.AddDate(0, 0, -30))
	fresh := candidate(orgID, repository.StatusContacted, evalNow.AddDate(0, 0, -1))
	repo := &fakeRepo{prospects: []reclamationrepo.ProspectCandidate{stale, fresh}}
	auditWriter := &fakeAuditWriter{}
	bus := &captureBus{}

	result, err := newTestService(repo, auditWriter, bus).Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ReleasedCount != 1 {
		t.Fatalf("expected 1 released, got %d", result.ReleasedCount)
	}
	if len(result.ReleasedIDs) != 1 || result.ReleasedIDs[0] != stale.ID {
		t.Fatalf("expected released ID %s, got %v", stale.ID, result.ReleasedIDs)
	}

	if len(repo.released) != 1 {
		t.Fatalf("expected a single release batch, got %d", len(repo.released))
	}
	if len(auditWriter.appended) != 1 {
		t.Fatalf("expected 1 audit record, got %d", len(auditWriter.appended))
	}
	rec := auditWriter.appended[0]
	if rec.ActorID != SystemActorID || rec.ActorName != SystemActorName {
		t.Fatalf("expected system actor, got %q/%q", rec.ActorID, rec.ActorName)
	}
	if rec.OrganizationID != orgID {
		t.Fatalf("expected audit record for org %s, got %s", orgID, rec.OrganizationID)
	}

	if len(bus.published) != 1 {
		t.Fatalf("expected 1 event, got %d", len(bus.published))
	}
	released, ok := bus.published[0].(events.ProspectsReleased)
	if !ok {
		t.Fatalf("expected ProspectsReleased event, got %T", bus.published[0])
	}
	if len(released.ReleasedIDs) != 1 || released.ReleasedIDs[0] != stale.ID {
		t.Fatalf("expected event for %s, got %v", stale.ID, released.ReleasedIDs)
	}
	if len(released.CompanyNames) != 1 || released.CompanyNames[0] != stale.CompanyName {
		t.Fatalf("expected company names in event, got %v", released.CompanyNames)
	}
}

func TestRun_NothingEligibleIsNoOp(t *testing.T) {
	orgID := uuid.New()
	fresh := candidate(orgID, repository.StatusContacted, evalNow.AddDate(0, 0, -1))
	repo := &fakeRepo{prospects: []reclamationrepo.ProspectCandidate{fresh}}
	auditWriter := &fakeAuditWriter{}
	bus := &captureBus{}

	result, err := newTestService(repo, auditWriter, bus).Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ReleasedCount != 0 {
		t.Fatalf("expected 0 released, got %d", result.ReleasedCount)
	}
	if result.ReleasedIDs == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(repo.released) != 0 {
		t.Fatalf("expected no release batches, got %d", len(repo.released))
	}
	if len(auditWriter.appended) != 0 {
		t.Fatalf("expected no audit records on empty run, got %d", len(auditWriter.appended))
	}
	if len(bus.published) != 0 {
		t.Fatalf("expected no events on empty run, got %d", len(bus.published))
	}
}

func TestRun_ReleaseFailurePropagatesWithoutAudit(t *testing.T) {
	orgID := uuid.New()
	stale := candidate(orgID, repository.StatusContacted, evalNow.AddDate(0, 0, -30))
	repo := &fakeRepo{
		prospects:  []reclamationrepo.ProspectCandidate{stale},
		releaseErr: errors.New("deadlock detected"),
	}
	auditWriter := &fakeAuditWriter{}
	bus := &captureBus{}

	_, err := newTestService(repo, auditWriter, bus).Run(context.Background())
	if err == nil {
		t.Fatal("expected error from failed release")
	}
	if len(repo.released) != 0 {
		t.Fatalf("expected no applied release after failure, got %d batches", len(repo.released))
	}
	if repo.prospects[0].OwnerID == nil {
		t.Fatal("expected prospect to keep its owner after a failed release")
	}
	if len(auditWriter.appended) != 0 {
		t.Fatalf("expected no audit records after failed release, got %d", len(auditWriter.appended))
	}
	if len(bus.published) != 0 {
		t.Fatalf("expected no events after failed release, got %d", len(bus.published))
	}
}

func TestRun_SecondRunIsIdempotent(t *testing.T) {
	orgID := uuid.New()
	stale := candidate(orgID, repository.StatusContacted, evalNow.AddDate(0, 0, -30))
	repo := &fakeRepo{prospects: []reclamationrepo.ProspectCandidate{stale}}
	auditWriter := &fakeAuditWriter{}
	bus := &captureBus{}
	svc := newTestService(repo, auditWriter, bus)

	first, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error on first run: %v", err)
	}
	if first.ReleasedCount != 1 {
		t.Fatalf("expected 1 released on first run, got %d", first.ReleasedCount)
	}

	second, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error on second run: %v", err)
	}
	if second.ReleasedCount != 0 {
		t.Fatalf("expected already-released prospect to be left alone, got %d", second.ReleasedCount)
	}
	if len(repo.released) != 1 {
		t.Fatalf("expected one release batch across both runs, got %d", len(repo.released))
	}
	if len(auditWriter.appended) != 1 || len(bus.published) != 1 {
		t.Fatalf("expected one audit record and one event across both runs, got %d/%d",
			len(auditWriter.appended), len(bus.published))
	}
}

func TestRun_AuditFailureDoesNotFailTheRun(t *testing.T) {
	orgID := uuid.New()
	stale := candidate(orgID, repository.StatusContacted, evalNow.AddDate(0, 0, -30))
	repo := &fakeRepo{prospects: []reclamationrepo.ProspectCandidate{stale}}
	auditWriter := &fakeAuditWriter{appendErr: errors.New("audit store down")}
	bus := &captureBus{}

	result, err := newTestService(repo, auditWriter, bus).Run(context.Background())
	if err != nil {
		t.Fatalf("expected success despite audit failure, got %v", err)
	}
	if result.ReleasedCount != 1 {
		t.Fatalf("expected 1 released, got %d", result.ReleasedCount)
	}
	if len(bus.published) != 1 {
		t.Fatalf("expected event despite audit failure, got %d", len(bus.published))
	}
}

func TestRun_GroupsAuditByOrganization(t *testing.T) {
	orgA := uuid.New()
	orgB := uuid.New()
	repo := &fakeRepo{prospects: []reclamationrepo.ProspectCandidate{
		candidate(orgA, repository.StatusContacted, evalNow.AddDate(0, 0, -30)),
		candidate(orgA, repository.StatusQualified, evalNow.AddDate(0, 0, -40)),
		candidate(orgB, repository.StatusNew, evalNow.AddDate(0, 0, -30)),
	}}
	auditWriter := &fakeAuditWriter{}
	bus := &captureBus{}

	result, err := newTestService(repo, auditWriter, bus).Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ReleasedCount != 3 {
		t.Fatalf("expected 3 released, got %d", result.ReleasedCount)
	}
	if len(repo.released) != 1 {
		t.Fatalf("expected one atomic batch across orgs, got %d", len(repo.released))
	}
	if len(auditWriter.appended) != 2 {
		t.Fatalf("expected one audit record per org, got %d", len(auditWriter.appended))
	}
	if len(bus.published) != 2 {
		t.Fatalf("expected one event per org, got %d", len(bus.published))
	}
}
