package holidays

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DateFormat is the canonical wire format for holiday dates.
const DateFormat = "2006-01-02"

// Repository stores the per-organization holiday registry: a single row
// holding the full list of non-business dates.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new holiday registry repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// GetHolidays returns the configured holiday dates for an organization.
// An organization without a registry row has no holidays.
func (r *Repository) GetHolidays(ctx context.Context, organizationID uuid.UUID) ([]time.Time, error) {
	query := `SELECT holidays FROM holiday_calendars WHERE organization_id = $1`

	var dates []time.Time
	err := r.pool.QueryRow(ctx, query, organizationID).Scan(&dates)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get holidays: %w", err)
	}

	return dates, nil
}

// ReplaceHolidays replaces the organization's holiday list wholesale.
func (r *Repository) ReplaceHolidays(ctx context.Context, organizationID uuid.UUID, dates []time.Time) error {
	query := `
		INSERT INTO holiday_calendars (organization_id, holidays, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (organization_id)
		DO UPDATE SET holidays = EXCLUDED.holidays, updated_at = now()`

	if _, err := r.pool.Exec(ctx, query, organizationID, dates); err != nil {
		return fmt.Errorf("replace holidays: %w", err)
	}

	return nil
}

// ToDateSet converts a list of holiday dates to a set keyed by DateFormat,
// the shape consumed by the business-day calculator.
func ToDateSet(dates []time.Time) map[string]struct{} {
	set := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		set[d.Format(DateFormat)] = struct{}{}
	}
	return set
}
