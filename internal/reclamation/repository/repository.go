// Package repository provides the reclamation engine's data accessors: full
// snapshot reads of prospects, activities and holiday calendars, plus the
// atomic bulk release write.
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProspectCandidate is the slice of a prospect the inactivity evaluator needs.
type ProspectCandidate struct {
	ID              uuid.UUID
	OrganizationID  uuid.UUID
	OwnerID         *uuid.UUID
	OwnerName       string
	CompanyName     string
	Status          string
	CreatedAt       time.Time
	StatusChangedAt time.Time
}

// ActivityRecord is the slice of an activity the inactivity evaluator needs.
// ProspectID may be nil for activities not linked to a prospect.
type ActivityRecord struct {
	ProspectID *uuid.UUID
	CreatedAt  time.Time
	IsTask     bool
	DueDate    *time.Time
}

// Repository combines the reclamation engine's store operations.
type Repository interface {
	ListProspects(ctx context.Context) ([]ProspectCandidate, error)
	ListActivities(ctx context.Context) ([]ActivityRecord, error)
	ListHolidayCalendars(ctx context.Context) (map[uuid.UUID][]time.Time, error)
	ReleaseProspects(ctx context.Context, ids []uuid.UUID) error
}

// Repo implements Repository with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new reclamation repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var _ Repository = (*Repo)(nil)

// ListProspects returns a snapshot of every prospect across all organizations.
func (r *Repo) ListProspects(ctx context.Context) ([]ProspectCandidate, error) {
	query := `
		SELECT id, organization_id, owner_id, owner_name, company_name, status, created_at, status_changed_at
		FROM prospects`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list prospects: %w", err)
	}
	defer rows.Close()

	var results []ProspectCandidate
	for rows.Next() {
		var p ProspectCandidate
		if err := rows.Scan(&p.ID, &p.OrganizationID, &p.OwnerID, &p.OwnerName, &p.CompanyName, &p.Status, &p.CreatedAt, &p.StatusChangedAt); err != nil {
			return nil, fmt.Errorf("scan prospect: %w", err)
		}
		results = append(results, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate prospects: %w", err)
	}

	return results, nil
}

// ListActivities returns a snapshot of every prospect activity.
func (r *Repo) ListActivities(ctx context.Context) ([]ActivityRecord, error) {
	query := `
		SELECT prospect_id, created_at, is_task, due_date
		FROM prospect_activities`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()

	var results []ActivityRecord
	for rows.Next() {
		var a ActivityRecord
		if err := rows.Scan(&a.ProspectID, &a.CreatedAt, &a.IsTask, &a.DueDate); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		results = append(results, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activities: %w", err)
	}

	return results, nil
}

// ListHolidayCalendars returns every organization's holiday dates.
func (r *Repo) ListHolidayCalendars(ctx context.Context) (map[uuid.UUID][]time.Time, error) {
	query := `SELECT organization_id, holidays FROM holiday_calendars`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list holiday calendars: %w", err)
	}
	defer rows.Close()

	results := make(map[uuid.UUID][]time.Time)
	for rows.Next() {
		var orgID uuid.UUID
		var dates []time.Time
		if err := rows.Scan(&orgID, &dates); err != nil {
			return nil, fmt.Errorf("scan holiday calendar: %w", err)
		}
		results[orgID] = dates
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate holiday calendars: %w", err)
	}

	return results, nil
}

// ReleaseProspects clears ownership on all listed prospects as one atomic
// unit: every update is queued on a single batch inside one transaction, so
// either all prospects are released or none are. Re-releasing an already
// unowned prospect is a harmless no-op update.
func (r *Repo) ReleaseProspects(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin release tx: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, id := range ids {
		batch.Queue(`
			UPDATE prospects
			SET owner_id = NULL, owner_name = 'Unassigned', updated_at = now()
			WHERE id = $1`, id)
	}

	results := tx.SendBatch(ctx, batch)
	for range ids {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return fmt.Errorf("release prospects: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("close release batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit release tx: %w", err)
	}

	return nil
}
