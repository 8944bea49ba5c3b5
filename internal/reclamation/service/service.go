// Package service implements the prospect lifecycle reclamation engine: it
// snapshots the prospect base, evaluates owner inactivity against the
// business-day calendar, and returns stale prospects to the unassigned pool
// in one atomic batch.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"salescrm_backend/internal/audit"
	"salescrm_backend/internal/events"
	"salescrm_backend/internal/holidays"
	"salescrm_backend/internal/prospects/repository"
	reclamationrepo "salescrm_backend/internal/reclamation/repository"
	"salescrm_backend/platform/logger"
)

// SystemActorID identifies batch runs in the audit log.
const SystemActorID = "system"

// SystemActorName is the display name for batch runs in the audit log.
const SystemActorName = "System"

// Result summarizes one reclamation run.
type Result struct {
	ReleasedCount int
	ReleasedIDs   []uuid.UUID
}

// Service runs the reclamation engine.
type Service struct {
	repo      reclamationrepo.Repository
	audit     audit.Writer
	bus       events.Bus
	log       *logger.Logger
	threshold int
	now       func() time.Time
}

// New creates a reclamation service. thresholdDays is the number of business
// days of owner silence after which a prospect is released.
func New(repo reclamationrepo.Repository, auditWriter audit.Writer, bus events.Bus, log *logger.Logger, thresholdDays int) *Service {
	return &Service{
		repo:      repo,
		audit:     auditWriter,
		bus:       bus,
		log:       log,
		threshold: thresholdDays,
		now:       time.Now,
	}
}

// Run executes one reclamation pass over all organizations. The three
// snapshot reads run concurrently; the release itself is a single atomic
// write. Audit records and events are emitted only after the release commits,
// and failures there are logged rather than propagated so a flaky audit store
// cannot make a committed release look failed.
func (s *Service) Run(ctx context.Context) (Result, error) {
	var (
		prospects  []reclamationrepo.ProspectCandidate
		activities []reclamationrepo.ActivityRecord
		calendars  map[uuid.UUID][]time.Time
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		prospects, err = s.repo.ListProspects(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		activities, err = s.repo.ListActivities(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		calendars, err = s.repo.ListHolidayCalendars(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return Result{}, fmt.Errorf("reclamation snapshot: %w", err)
	}

	holidaysByOrg := make(map[uuid.UUID]map[string]struct{}, len(calendars))
	for orgID, dates := range calendars {
		holidaysByOrg[orgID] = holidays.ToDateSet(dates)
	}

	eligible := EvaluateInactivity(prospects, activities, holidaysByOrg, s.now(), s.threshold)

	result := Result{ReleasedIDs: make([]uuid.UUID, 0, len(eligible))}
	if len(eligible) == 0 {
		return result, nil
	}

	for _, p := range eligible {
		result.ReleasedIDs = append(result.ReleasedIDs, p.ID)
	}

	if err := s.repo.ReleaseProspects(ctx, result.ReleasedIDs); err != nil {
		return Result{}, fmt.Errorf("release prospects: %w", err)
	}
	result.ReleasedCount = len(result.ReleasedIDs)

	s.recordReleases(ctx, eligible)

	return result, nil
}

// recordReleases appends one audit record per organization and publishes a
// batch event per organization. Best effort after the commit.
func (s *Service) recordReleases(ctx context.Context, eligible []EligibleProspect) {
	byOrg := make(map[uuid.UUID][]EligibleProspect)
	for _, p := range eligible {
		byOrg[p.OrganizationID] = append(byOrg[p.OrganizationID], p)
	}

	for orgID, batch := range byOrg {
		ids := make([]uuid.UUID, 0, len(batch))
		names := make([]string, 0, len(batch))
		owners := make([]string, 0, len(batch))
		for _, p := range batch {
			ids = append(ids, p.ID)
			names = append(names, p.CompanyName)
			owners = append(owners, p.OwnerName)
		}

		_, err := s.audit.Append(ctx, audit.AppendParams{
			OrganizationID: orgID,
			ActorID:        SystemActorID,
			ActorName:      SystemActorName,
			Action:         "update",
			EntityType:     "prospect",
			EntityID:       uuid.New(),
			EntityName:     fmt.Sprintf("%d prospects released", len(batch)),
			Details:        strings.Join(names, ", "),
			OwnerName:      repository.UnassignedOwnerName,
		})
		if err != nil {
			s.log.Warn("audit append failed after release",
				"organization_id", orgID.String(),
				"released", len(batch),
				"error", err.Error(),
			)
		}

		s.bus.Publish(ctx, events.ProspectsReleased{
			BaseEvent:      events.NewBaseEvent(),
			OrganizationID: orgID,
			ReleasedIDs:    ids,
			CompanyNames:   names,
			PreviousOwners: owners,
		})
	}
}
