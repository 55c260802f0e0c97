package storage

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/FabioF7/TheBooker/internal/domain"
	"github.com/FabioF7/TheBooker/internal/temporal"
	"github.com/FabioF7/TheBooker/libs/db"
)

type OverrideRepository struct {
	pool *db.Pool
}

func NewOverrideRepository(pool *db.Pool) *OverrideRepository {
	return &OverrideRepository{pool: pool}
}

const overrideColumns = `id, tenant_id, provider_id, start_date, end_date, override_type, open_minute, close_minute, reason, created_at, modified_at`

func (r *OverrideRepository) ListForDate(ctx context.Context, tenantID uuid.UUID, date temporal.Date) ([]*domain.ScheduleOverride, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+overrideColumns+`
		FROM schedule_overrides
		WHERE tenant_id = $1 AND start_date <= $2 AND end_date >= $2
		ORDER BY created_at
	`, tenantID, date.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOverrides(rows)
}

func (r *OverrideRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*domain.ScheduleOverride, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+overrideColumns+`
		FROM schedule_overrides
		WHERE tenant_id = $1
		ORDER BY start_date
	`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOverrides(rows)
}

func (r *OverrideRepository) Insert(ctx context.Context, o *domain.ScheduleOverride) error {
	var open, close *int
	if o.Hours != nil {
		openMin, closeMin := int(o.Hours.Start), int(o.Hours.End)
		open, close = &openMin, &closeMin
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO schedule_overrides (id, tenant_id, provider_id, start_date, end_date, override_type, open_minute, close_minute, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, o.ID, o.TenantID, o.ProviderID, o.StartDate.String(), o.EndDate.String(), string(o.Type), open, close, o.Reason, o.CreatedAtUTC)
	return err
}

func (r *OverrideRepository) Delete(ctx context.Context, tenantID, overrideID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM schedule_overrides
		WHERE id = $1 AND tenant_id = $2
	`, overrideID, tenantID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFound("ScheduleOverride", overrideID)
	}
	return nil
}

func scanOverrides(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]*domain.ScheduleOverride, error) {
	var overrides []*domain.ScheduleOverride
	for rows.Next() {
		var (
			o           domain.ScheduleOverride
			startDate   time.Time
			endDate     time.Time
			kind        string
			open, close *int
			modifiedAt  *time.Time
		)
		if err := rows.Scan(&o.ID, &o.TenantID, &o.ProviderID, &startDate, &endDate, &kind, &open, &close, &o.Reason, &o.CreatedAtUTC, &modifiedAt); err != nil {
			return nil, err
		}
		o.StartDate = temporal.DateOf(startDate)
		o.EndDate = temporal.DateOf(endDate)
		o.Type = domain.OverrideType(kind)
		if open != nil && close != nil {
			o.Hours = &domain.TimeRange{Start: temporal.TimeOfDay(*open), End: temporal.TimeOfDay(*close)}
		}
		if modifiedAt != nil {
			o.ModifiedAtUTC = *modifiedAt
		}
		overrides = append(overrides, &o)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return overrides, nil
}
