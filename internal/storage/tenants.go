package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/FabioF7/TheBooker/internal/domain"
	"github.com/FabioF7/TheBooker/libs/db"
)

type TenantRepository struct {
	pool *db.Pool
}

func NewTenantRepository(pool *db.Pool) *TenantRepository {
	return &TenantRepository{pool: pool}
}

const tenantColumns = `id, slug, name, timezone, business_hours, buffer_minutes, is_active, created_at, modified_at`

func (r *TenantRepository) GetBySlug(ctx context.Context, slug domain.Slug) (*domain.Tenant, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+tenantColumns+`
		FROM tenants
		WHERE slug = $1
	`, string(slug))
	return scanTenant(row)
}

func (r *TenantRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+tenantColumns+`
		FROM tenants
		WHERE id = $1
	`, id)
	return scanTenant(row)
}

func (r *TenantRepository) Insert(ctx context.Context, t *domain.Tenant) error {
	hours, err := json.Marshal(t.Hours)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO tenants (id, slug, name, timezone, business_hours, buffer_minutes, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, t.ID, string(t.Slug), t.Name, t.TimeZoneID, hours, t.BufferMinutes, t.IsActive, t.CreatedAtUTC)
	if IsUniqueViolation(err) {
		return domain.ErrSlugAlreadyExists
	}
	return err
}

func (r *TenantRepository) Update(ctx context.Context, t *domain.Tenant) error {
	hours, err := json.Marshal(t.Hours)
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE tenants
		SET name = $2,
			timezone = $3,
			business_hours = $4,
			buffer_minutes = $5,
			is_active = $6,
			modified_at = $7
		WHERE id = $1
	`, t.ID, t.Name, t.TimeZoneID, hours, t.BufferMinutes, t.IsActive, t.ModifiedAtUTC)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFound("Tenant", t.ID)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTenant(row rowScanner) (*domain.Tenant, error) {
	var (
		t          domain.Tenant
		slug       string
		hoursJSON  []byte
		modifiedAt *time.Time
	)
	err := row.Scan(&t.ID, &slug, &t.Name, &t.TimeZoneID, &hoursJSON, &t.BufferMinutes, &t.IsActive, &t.CreatedAtUTC, &modifiedAt)
	if IsNotFound(err) {
		return nil, domain.NewNotFound("Tenant", "")
	}
	if err != nil {
		return nil, err
	}
	t.Slug = domain.Slug(slug)
	if err := json.Unmarshal(hoursJSON, &t.Hours); err != nil {
		return nil, err
	}
	if modifiedAt != nil {
		t.ModifiedAtUTC = *modifiedAt
	}
	return &t, nil
}
