package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"salescrm_backend/platform/apperr"
)

const prospectNotFoundMessage = "prospect not found"

const prospectSelectCols = `
	id, organization_id, company_name, contact_name, contact_email, contact_phone,
	owner_id, owner_name, status, created_at, status_changed_at, updated_at`

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new prospects repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// GetByID retrieves a prospect by its ID.
func (r *Repo) GetByID(ctx context.Context, organizationID, id uuid.UUID) (Prospect, error) {
	query := `
		SELECT` + prospectSelectCols + `
		FROM prospects
		WHERE id = $1 AND organization_id = $2`

	p, err := scanProspect(r.pool.QueryRow(ctx, query, id, organizationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Prospect{}, apperr.NotFound(prospectNotFoundMessage)
		}
		return Prospect{}, fmt.Errorf("get prospect by id: %w", err)
	}

	return p, nil
}

// List retrieves prospects with optional status/owner filters and pagination.
func (r *Repo) List(ctx context.Context, params ListParams) ([]Prospect, int, error) {
	var statusParam interface{}
	if params.Status != nil {
		statusParam = *params.Status
	}
	var ownerParam interface{}
	if params.OwnerID != nil {
		ownerParam = *params.OwnerID
	}

	args := []interface{}{params.OrganizationID, statusParam, ownerParam, params.Unassigned}

	countQuery := `
		SELECT COUNT(*)
		FROM prospects
		WHERE organization_id = $1
			AND ($2::text IS NULL OR status = $2)
			AND ($3::uuid IS NULL OR owner_id = $3)
			AND (NOT $4::boolean OR owner_id IS NULL)`

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count prospects: %w", err)
	}

	query := `
		SELECT` + prospectSelectCols + `
		FROM prospects
		WHERE organization_id = $1
			AND ($2::text IS NULL OR status = $2)
			AND ($3::uuid IS NULL OR owner_id = $3)
			AND (NOT $4::boolean OR owner_id IS NULL)
		ORDER BY created_at DESC
		LIMIT $5 OFFSET $6`

	args = append(args, params.Limit, params.Offset)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list prospects: %w", err)
	}
	defer rows.Close()

	items, err := scanProspects(rows)
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// Create creates a new prospect. A missing owner name defaults to the
// unassigned sentinel so the column is never blank.
func (r *Repo) Create(ctx context.Context, params CreateParams) (Prospect, error) {
	ownerName := UnassignedOwnerName
	if params.OwnerName != nil {
		ownerName = *params.OwnerName
	}

	query := `
		INSERT INTO prospects (organization_id, company_name, contact_name, contact_email, contact_phone, owner_id, owner_name, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING` + prospectSelectCols

	p, err := scanProspect(r.pool.QueryRow(ctx, query,
		params.OrganizationID, params.CompanyName, params.ContactName, params.ContactEmail,
		params.ContactPhone, params.OwnerID, ownerName, StatusNew,
	))
	if err != nil {
		return Prospect{}, fmt.Errorf("create prospect: %w", err)
	}

	return p, nil
}

// Update partially updates a prospect. A status change also stamps
// status_changed_at, which feeds the inactivity evaluator.
func (r *Repo) Update(ctx context.Context, params UpdateParams) (Prospect, error) {
	query := `
		UPDATE prospects SET
			company_name = COALESCE($3, company_name),
			contact_name = COALESCE($4, contact_name),
			contact_email = COALESCE($5, contact_email),
			contact_phone = COALESCE($6, contact_phone),
			status = COALESCE($7, status),
			status_changed_at = CASE WHEN $7::text IS NOT NULL AND $7 IS DISTINCT FROM status THEN now() ELSE status_changed_at END,
			updated_at = now()
		WHERE id = $1 AND organization_id = $2
		RETURNING` + prospectSelectCols

	p, err := scanProspect(r.pool.QueryRow(ctx, query,
		params.ID, params.OrganizationID, params.CompanyName, params.ContactName,
		params.ContactEmail, params.ContactPhone, params.Status,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Prospect{}, apperr.NotFound(prospectNotFoundMessage)
		}
		return Prospect{}, fmt.Errorf("update prospect: %w", err)
	}

	return p, nil
}

// Assign sets or clears the prospect's owner.
func (r *Repo) Assign(ctx context.Context, params AssignParams) (Prospect, error) {
	ownerName := UnassignedOwnerName
	if params.OwnerName != nil {
		ownerName = *params.OwnerName
	}

	query := `
		UPDATE prospects SET
			owner_id = $3,
			owner_name = $4,
			updated_at = now()
		WHERE id = $1 AND organization_id = $2
		RETURNING` + prospectSelectCols

	p, err := scanProspect(r.pool.QueryRow(ctx, query, params.ID, params.OrganizationID, params.OwnerID, ownerName))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Prospect{}, apperr.NotFound(prospectNotFoundMessage)
		}
		return Prospect{}, fmt.Errorf("assign prospect: %w", err)
	}

	return p, nil
}

// prospectRowScanner is satisfied by pgx.Rows and pgx.Row so that scanProspect
// can be shared between single-row and multi-row queries.
type prospectRowScanner interface {
	Scan(dest ...any) error
}

func scanProspect(s prospectRowScanner) (Prospect, error) {
	var p Prospect
	err := s.Scan(
		&p.ID, &p.OrganizationID, &p.CompanyName, &p.ContactName, &p.ContactEmail, &p.ContactPhone,
		&p.OwnerID, &p.OwnerName, &p.Status, &p.CreatedAt, &p.StatusChangedAt, &p.UpdatedAt,
	)
	return p, err
}

func scanProspects(rows pgx.Rows) ([]Prospect, error) {
	var results []Prospect

	for rows.Next() {
		p, err := scanProspect(rows)
		if err != nil {
			return nil, fmt.Errorf("scan prospect: %w", err)
		}
		results = append(results, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate prospects: %w", err)
	}

	return results, nil
}
