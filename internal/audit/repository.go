package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Record is one append-only audit log entry.
type Record struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	ActorID        string
	ActorName      string
	Action         string
	EntityType     string
	EntityID       uuid.UUID
	EntityName     string
	Details        string
	OwnerName      string
	CreatedAt      time.Time
}

// AppendParams contains the fields for a new audit record.
type AppendParams struct {
	OrganizationID uuid.UUID
	ActorID        string
	ActorName      string
	Action         string
	EntityType     string
	EntityID       uuid.UUID
	EntityName     string
	Details        string
	OwnerName      string
}

// Writer appends audit records. The reclamation executor depends on this
// narrow interface rather than the full repository.
type Writer interface {
	Append(ctx context.Context, params AppendParams) (Record, error)
}

// Repository implements the audit log with PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new audit log repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

var _ Writer = (*Repository)(nil)

const auditSelectCols = `
	id, organization_id, actor_id, actor_name, action, entity_type, entity_id, entity_name, details, owner_name, created_at`

// Append writes one audit record. Records are never updated or deleted.
func (r *Repository) Append(ctx context.Context, params AppendParams) (Record, error) {
	query := `
		INSERT INTO audit_log (organization_id, actor_id, actor_name, action, entity_type, entity_id, entity_name, details, owner_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING` + auditSelectCols

	rec, err := scanRecord(r.pool.QueryRow(ctx, query,
		params.OrganizationID, params.ActorID, params.ActorName, params.Action,
		params.EntityType, params.EntityID, params.EntityName, params.Details, params.OwnerName,
	))
	if err != nil {
		return Record{}, fmt.Errorf("append audit record: %w", err)
	}

	return rec, nil
}

// List returns the newest audit records for an organization, up to limit.
func (r *Repository) List(ctx context.Context, organizationID uuid.UUID, limit int) ([]Record, error) {
	if limit < 1 || limit > 500 {
		limit = 100
	}

	query := `
		SELECT` + auditSelectCols + `
		FROM audit_log
		WHERE organization_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.pool.Query(ctx, query, organizationID, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit records: %w", err)
	}
	defer rows.Close()

	var results []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan audit record: %w", err)
		}
		results = append(results, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit records: %w", err)
	}

	return results, nil
}

type recordScanner interface {
	Scan(dest ...any) error
}

func scanRecord(s recordScanner) (Record, error) {
	var rec Record
	err := s.Scan(
		&rec.ID, &rec.OrganizationID, &rec.ActorID, &rec.ActorName, &rec.Action,
		&rec.EntityType, &rec.EntityID, &rec.EntityName, &rec.Details, &rec.OwnerName, &rec.CreatedAt,
	)
	return rec, err
}
