package booking

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/FabioF7/TheBooker/internal/domain"
	"github.com/FabioF7/TheBooker/internal/temporal"
)

// Admin covers the management surface: tenants, service catalogs, providers
// and schedule overrides.
type Admin struct {
	tenants   TenantStore
	providers ProviderStore
	services  ServiceStore
	overrides OverrideStore
	log       *slog.Logger
	now       func() time.Time
}

func NewAdmin(tenants TenantStore, providers ProviderStore, services ServiceStore, overrides OverrideStore, log *slog.Logger) *Admin {
	return &Admin{
		tenants:   tenants,
		providers: providers,
		services:  services,
		overrides: overrides,
		log:       log,
		now:       time.Now,
	}
}

// WithClock replaces the wall clock, for tests.
func (a *Admin) WithClock(now func() time.Time) *Admin {
	a.now = now
	return a
}

// CreateTenant registers a new tenant. Slugs are unique across the system.
func (a *Admin) CreateTenant(ctx context.Context, name, slug, timeZoneID string, bufferMinutes int) (*domain.Tenant, error) {
	tenant, err := domain.NewTenant(name, slug, timeZoneID, bufferMinutes, a.now())
	if err != nil {
		return nil, err
	}
	if _, err := a.tenants.GetBySlug(ctx, tenant.Slug); err == nil {
		return nil, domain.ErrSlugAlreadyExists
	} else if domain.KindOf(err) != domain.KindNotFound {
		return nil, err
	}
	if err := a.tenants.Insert(ctx, tenant); err != nil {
		return nil, err
	}
	a.log.InfoContext(ctx, "tenant created", "tenant", tenant.Slug, "tenant_id", tenant.ID)
	return tenant, nil
}

func (a *Admin) GetTenant(ctx context.Context, slug string) (*domain.Tenant, error) {
	s, err := domain.ParseSlug(slug)
	if err != nil {
		return nil, err
	}
	return a.tenants.GetBySlug(ctx, s)
}

// UpdateTenantHours replaces the tenant's weekly schedule.
func (a *Admin) UpdateTenantHours(ctx context.Context, slug string, hours domain.BusinessHours) (*domain.Tenant, error) {
	tenant, err := a.GetTenant(ctx, slug)
	if err != nil {
		return nil, err
	}
	tenant.UpdateBusinessHours(hours, a.now())
	if err := a.tenants.Update(ctx, tenant); err != nil {
		return nil, err
	}
	return tenant, nil
}

// UpdateTenantBuffer changes the post-appointment buffer.
func (a *Admin) UpdateTenantBuffer(ctx context.Context, slug string, bufferMinutes int) (*domain.Tenant, error) {
	tenant, err := a.GetTenant(ctx, slug)
	if err != nil {
		return nil, err
	}
	if err := tenant.UpdateBufferMinutes(bufferMinutes, a.now()); err != nil {
		return nil, err
	}
	if err := a.tenants.Update(ctx, tenant); err != nil {
		return nil, err
	}
	return tenant, nil
}

// CreateService adds a service to the tenant catalog.
func (a *Admin) CreateService(ctx context.Context, slug, name string, durationMinutes int, price float64, currency, description string) (*domain.Service, error) {
	tenant, err := a.GetTenant(ctx, slug)
	if err != nil {
		return nil, err
	}
	svc, err := domain.NewService(tenant.ID, name, durationMinutes, price, currency, description, a.now())
	if err != nil {
		return nil, err
	}
	if err := a.services.Insert(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (a *Admin) ListServices(ctx context.Context, slug string) ([]*domain.Service, error) {
	tenant, err := a.GetTenant(ctx, slug)
	if err != nil {
		return nil, err
	}
	return a.services.ListByTenant(ctx, tenant.ID)
}

// CreateProvider registers a provider for the tenant.
func (a *Admin) CreateProvider(ctx context.Context, slug, name, email string) (*domain.ServiceProvider, error) {
	tenant, err := a.GetTenant(ctx, slug)
	if err != nil {
		return nil, err
	}
	provider, err := domain.NewServiceProvider(tenant.ID, name, email, nil, a.now())
	if err != nil {
		return nil, err
	}
	if err := a.providers.Insert(ctx, provider); err != nil {
		return nil, err
	}
	return provider, nil
}

func (a *Admin) ListProviders(ctx context.Context, slug string) ([]*domain.ServiceProvider, error) {
	tenant, err := a.GetTenant(ctx, slug)
	if err != nil {
		return nil, err
	}
	return a.providers.ListByTenant(ctx, tenant.ID)
}

// AssignService lets a provider offer a catalog service.
func (a *Admin) AssignService(ctx context.Context, slug string, providerID, serviceID uuid.UUID) (*domain.ServiceProvider, error) {
	tenant, err := a.GetTenant(ctx, slug)
	if err != nil {
		return nil, err
	}
	provider, err := a.providers.GetByID(ctx, tenant.ID, providerID)
	if err != nil {
		return nil, err
	}
	svc, err := a.services.GetByID(ctx, tenant.ID, serviceID)
	if err != nil {
		return nil, err
	}
	provider.AssignService(svc, a.now())
	if err := a.providers.Update(ctx, provider); err != nil {
		return nil, err
	}
	return provider, nil
}

// RemoveService stops a provider from offering a service.
func (a *Admin) RemoveService(ctx context.Context, slug string, providerID, serviceID uuid.UUID) (*domain.ServiceProvider, error) {
	tenant, err := a.GetTenant(ctx, slug)
	if err != nil {
		return nil, err
	}
	provider, err := a.providers.GetByID(ctx, tenant.ID, providerID)
	if err != nil {
		return nil, err
	}
	provider.RemoveService(serviceID, a.now())
	if err := a.providers.Update(ctx, provider); err != nil {
		return nil, err
	}
	return provider, nil
}

// SetProviderHours gives a provider a custom weekly schedule.
func (a *Admin) SetProviderHours(ctx context.Context, slug string, providerID uuid.UUID, hours domain.BusinessHours) (*domain.ServiceProvider, error) {
	tenant, err := a.GetTenant(ctx, slug)
	if err != nil {
		return nil, err
	}
	provider, err := a.providers.GetByID(ctx, tenant.ID, providerID)
	if err != nil {
		return nil, err
	}
	provider.SetCustomHours(hours, a.now())
	if err := a.providers.Update(ctx, provider); err != nil {
		return nil, err
	}
	return provider, nil
}

// ClearProviderHours reverts a provider to the tenant schedule.
func (a *Admin) ClearProviderHours(ctx context.Context, slug string, providerID uuid.UUID) (*domain.ServiceProvider, error) {
	tenant, err := a.GetTenant(ctx, slug)
	if err != nil {
		return nil, err
	}
	provider, err := a.providers.GetByID(ctx, tenant.ID, providerID)
	if err != nil {
		return nil, err
	}
	provider.ClearCustomHours(a.now())
	if err := a.providers.Update(ctx, provider); err != nil {
		return nil, err
	}
	return provider, nil
}

// OverrideRequest describes a new schedule override.
type OverrideRequest struct {
	ProviderID *uuid.UUID
	StartDate  temporal.Date
	EndDate    temporal.Date
	Type       domain.OverrideType
	Open       *temporal.TimeOfDay
	Close      *temporal.TimeOfDay
	Reason     string
}

// CreateOverride records a schedule exception. Overlapping overrides for the
// same scope are rejected so the effective window stays unambiguous.
func (a *Admin) CreateOverride(ctx context.Context, slug string, req OverrideRequest) (*domain.ScheduleOverride, error) {
	tenant, err := a.GetTenant(ctx, slug)
	if err != nil {
		return nil, err
	}
	if req.ProviderID != nil {
		if _, err := a.providers.GetByID(ctx, tenant.ID, *req.ProviderID); err != nil {
			return nil, err
		}
	}

	var override *domain.ScheduleOverride
	switch req.Type {
	case domain.OverrideClosed:
		override, err = domain.NewClosedOverride(tenant.ID, req.ProviderID, req.StartDate, req.EndDate, req.Reason, a.now())
	case domain.OverrideModifiedHours, domain.OverrideExtendedHours:
		if req.Open == nil || req.Close == nil {
			return nil, domain.NewValidation("ScheduleOverride.HoursRequired",
				"Open and close times are required for hours overrides.")
		}
		if req.Type == domain.OverrideModifiedHours {
			override, err = domain.NewModifiedHoursOverride(tenant.ID, req.ProviderID, req.StartDate, req.EndDate, *req.Open, *req.Close, req.Reason, a.now())
		} else {
			override, err = domain.NewExtendedHoursOverride(tenant.ID, req.ProviderID, req.StartDate, req.EndDate, *req.Open, *req.Close, req.Reason, a.now())
		}
	default:
		return nil, domain.NewValidation("ScheduleOverride.InvalidType",
			"Override type must be closed, modified_hours or extended_hours.")
	}
	if err != nil {
		return nil, err
	}

	existing, err := a.overrides.ListByTenant(ctx, tenant.ID)
	if err != nil {
		return nil, err
	}
	for _, other := range existing {
		if !sameScope(other.ProviderID, req.ProviderID) {
			continue
		}
		if !override.StartDate.After(other.EndDate) && !override.EndDate.Before(other.StartDate) {
			return nil, domain.ErrOverlappingOverride
		}
	}

	if err := a.overrides.Insert(ctx, override); err != nil {
		return nil, err
	}
	a.log.InfoContext(ctx, "schedule override created",
		"tenant", tenant.Slug, "override_id", override.ID, "type", string(override.Type))
	return override, nil
}

func (a *Admin) ListOverrides(ctx context.Context, slug string) ([]*domain.ScheduleOverride, error) {
	tenant, err := a.GetTenant(ctx, slug)
	if err != nil {
		return nil, err
	}
	return a.overrides.ListByTenant(ctx, tenant.ID)
}

func (a *Admin) DeleteOverride(ctx context.Context, slug string, overrideID uuid.UUID) error {
	tenant, err := a.GetTenant(ctx, slug)
	if err != nil {
		return err
	}
	return a.overrides.Delete(ctx, tenant.ID, overrideID)
}

func sameScope(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
