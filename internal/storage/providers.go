package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/FabioF7/TheBooker/internal/domain"
	"github.com/FabioF7/TheBooker/libs/db"
)

type ProviderRepository struct {
	pool     *db.Pool
	services *ServiceRepository
}

func NewProviderRepository(pool *db.Pool, services *ServiceRepository) *ProviderRepository {
	return &ProviderRepository{pool: pool, services: services}
}

const providerColumns = `id, tenant_id, user_id, name, email, custom_hours, is_active, created_at, modified_at`

func (r *ProviderRepository) GetByID(ctx context.Context, tenantID, providerID uuid.UUID) (*domain.ServiceProvider, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+providerColumns+`
		FROM providers
		WHERE id = $1 AND tenant_id = $2
	`, providerID, tenantID)
	p, err := scanProvider(row)
	if err != nil {
		return nil, err
	}
	if err := r.loadServices(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *ProviderRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*domain.ServiceProvider, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+providerColumns+`
		FROM providers
		WHERE tenant_id = $1
		ORDER BY name
	`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var providers []*domain.ServiceProvider
	for rows.Next() {
		p, err := scanProvider(rows)
		if err != nil {
			return nil, err
		}
		providers = append(providers, p)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	for _, p := range providers {
		if err := r.loadServices(ctx, p); err != nil {
			return nil, err
		}
	}
	return providers, nil
}

func (r *ProviderRepository) Insert(ctx context.Context, p *domain.ServiceProvider) error {
	hours, err := marshalCustomHours(p.CustomHours)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO providers (id, tenant_id, user_id, name, email, custom_hours, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, p.ID, p.TenantID, p.UserID, p.Name, string(p.Email), hours, p.IsActive, p.CreatedAtUTC)
	return err
}

// Update rewrites the provider row and its service links in one transaction.
func (r *ProviderRepository) Update(ctx context.Context, p *domain.ServiceProvider) error {
	hours, err := marshalCustomHours(p.CustomHours)
	if err != nil {
		return err
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
		UPDATE providers
		SET name = $3,
			email = $4,
			custom_hours = $5,
			is_active = $6,
			modified_at = $7
		WHERE id = $1 AND tenant_id = $2
	`, p.ID, p.TenantID, p.Name, string(p.Email), hours, p.IsActive, p.ModifiedAtUTC)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFound("ServiceProvider", p.ID)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM provider_services WHERE provider_id = $1`, p.ID); err != nil {
		return err
	}
	for _, svc := range p.Services {
		if _, err := tx.Exec(ctx, `
			INSERT INTO provider_services (provider_id, service_id)
			VALUES ($1, $2)
		`, p.ID, svc.ID); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *ProviderRepository) loadServices(ctx context.Context, p *domain.ServiceProvider) error {
	rows, err := r.pool.Query(ctx, `
		SELECT `+serviceColumns+`
		FROM services
		WHERE id IN (SELECT service_id FROM provider_services WHERE provider_id = $1)
		ORDER BY name
	`, p.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	services, err := scanServices(rows)
	if err != nil {
		return err
	}
	p.Services = services
	return nil
}

func scanProvider(row rowScanner) (*domain.ServiceProvider, error) {
	var (
		p          domain.ServiceProvider
		email      string
		hoursJSON  []byte
		modifiedAt *time.Time
	)
	err := row.Scan(&p.ID, &p.TenantID, &p.UserID, &p.Name, &email, &hoursJSON, &p.IsActive, &p.CreatedAtUTC, &modifiedAt)
	if IsNotFound(err) {
		return nil, domain.NewNotFound("ServiceProvider", "")
	}
	if err != nil {
		return nil, err
	}
	p.Email = domain.Email(email)
	if len(hoursJSON) > 0 {
		var hours domain.BusinessHours
		if err := json.Unmarshal(hoursJSON, &hours); err != nil {
			return nil, err
		}
		p.CustomHours = &hours
	}
	if modifiedAt != nil {
		p.ModifiedAtUTC = *modifiedAt
	}
	return &p, nil
}

func marshalCustomHours(hours *domain.BusinessHours) ([]byte, error) {
	if hours == nil {
		return nil, nil
	}
	return json.Marshal(hours)
}
