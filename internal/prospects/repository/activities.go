package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

const activitySelectCols = `
	id, prospect_id, organization_id, author_id, author_name, note, is_task, due_date, created_at`

// CreateActivity records a new activity against a prospect. Activities are
// immutable once written.
func (r *Repo) CreateActivity(ctx context.Context, params CreateActivityParams) (Activity, error) {
	query := `
		INSERT INTO prospect_activities (prospect_id, organization_id, author_id, author_name, note, is_task, due_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING` + activitySelectCols

	a, err := scanActivity(r.pool.QueryRow(ctx, query,
		params.ProspectID, params.OrganizationID, params.AuthorID, params.AuthorName,
		params.Note, params.IsTask, params.DueDate,
	))
	if err != nil {
		return Activity{}, fmt.Errorf("create activity: %w", err)
	}

	return a, nil
}

// ListActivities returns all activities for a prospect, newest first.
func (r *Repo) ListActivities(ctx context.Context, organizationID, prospectID uuid.UUID) ([]Activity, error) {
	query := `
		SELECT` + activitySelectCols + `
		FROM prospect_activities
		WHERE prospect_id = $1 AND organization_id = $2
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, prospectID, organizationID)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()

	var results []Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		results = append(results, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activities: %w", err)
	}

	return results, nil
}

type activityRowScanner interface {
	Scan(dest ...any) error
}

func scanActivity(s activityRowScanner) (Activity, error) {
	var a Activity
	err := s.Scan(
		&a.ID, &a.ProspectID, &a.OrganizationID, &a.AuthorID, &a.AuthorName,
		&a.Note, &a.IsTask, &a.DueDate, &a.CreatedAt,
	)
	return a, err
}
