package storage

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/FabioF7/TheBooker/internal/domain"
	"github.com/FabioF7/TheBooker/libs/db"
)

type ServiceRepository struct {
	pool *db.Pool
}

func NewServiceRepository(pool *db.Pool) *ServiceRepository {
	return &ServiceRepository{pool: pool}
}

const serviceColumns = `id, tenant_id, name, description, duration_minutes, price_cents, currency, is_active, created_at, modified_at`

func (r *ServiceRepository) GetByID(ctx context.Context, tenantID, serviceID uuid.UUID) (*domain.Service, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+serviceColumns+`
		FROM services
		WHERE id = $1 AND tenant_id = $2
	`, serviceID, tenantID)
	svc, err := scanService(row)
	if IsNotFound(err) {
		return nil, domain.NewNotFound("Service", serviceID)
	}
	return svc, err
}

func (r *ServiceRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*domain.Service, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+serviceColumns+`
		FROM services
		WHERE tenant_id = $1
		ORDER BY name
	`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanServices(rows)
}

func (r *ServiceRepository) Insert(ctx context.Context, s *domain.Service) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO services (id, tenant_id, name, description, duration_minutes, price_cents, currency, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, s.ID, s.TenantID, s.Name, s.Description, s.DurationMinutes, s.Price.Cents, s.Price.Currency, s.IsActive, s.CreatedAtUTC)
	return err
}

func (r *ServiceRepository) Update(ctx context.Context, s *domain.Service) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE services
		SET name = $3,
			description = $4,
			duration_minutes = $5,
			price_cents = $6,
			currency = $7,
			is_active = $8,
			modified_at = $9
		WHERE id = $1 AND tenant_id = $2
	`, s.ID, s.TenantID, s.Name, s.Description, s.DurationMinutes, s.Price.Cents, s.Price.Currency, s.IsActive, s.ModifiedAtUTC)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFound("Service", s.ID)
	}
	return nil
}

func scanService(row rowScanner) (*domain.Service, error) {
	var (
		s          domain.Service
		modifiedAt *time.Time
	)
	err := row.Scan(&s.ID, &s.TenantID, &s.Name, &s.Description, &s.DurationMinutes, &s.Price.Cents, &s.Price.Currency, &s.IsActive, &s.CreatedAtUTC, &modifiedAt)
	if err != nil {
		return nil, err
	}
	if modifiedAt != nil {
		s.ModifiedAtUTC = *modifiedAt
	}
	return &s, nil
}

func scanServices(rows pgx.Rows) ([]*domain.Service, error) {
	var services []*domain.Service
	for rows.Next() {
		svc, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		services = append(services, svc)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return services, nil
}
