package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/FabioF7/TheBooker/internal/domain"
	"github.com/FabioF7/TheBooker/internal/temporal"
)

// TenantStore loads and persists tenants.
type TenantStore interface {
	GetBySlug(ctx context.Context, slug domain.Slug) (*domain.Tenant, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error)
	Insert(ctx context.Context, t *domain.Tenant) error
	Update(ctx context.Context, t *domain.Tenant) error
}

// ProviderStore loads and persists providers with their offered services.
type ProviderStore interface {
	GetByID(ctx context.Context, tenantID, providerID uuid.UUID) (*domain.ServiceProvider, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*domain.ServiceProvider, error)
	Insert(ctx context.Context, p *domain.ServiceProvider) error
	Update(ctx context.Context, p *domain.ServiceProvider) error
}

// ServiceStore persists the tenant's service catalog.
type ServiceStore interface {
	GetByID(ctx context.Context, tenantID, serviceID uuid.UUID) (*domain.Service, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*domain.Service, error)
	Insert(ctx context.Context, s *domain.Service) error
	Update(ctx context.Context, s *domain.Service) error
}

// OverrideStore persists schedule overrides.
type OverrideStore interface {
	ListForDate(ctx context.Context, tenantID uuid.UUID, date temporal.Date) ([]*domain.ScheduleOverride, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*domain.ScheduleOverride, error)
	Insert(ctx context.Context, o *domain.ScheduleOverride) error
	Delete(ctx context.Context, tenantID, overrideID uuid.UUID) error
}

// AppointmentQuery filters ListByTenant.
type AppointmentQuery struct {
	ProviderID *uuid.UUID
	From       *temporal.Date
	To         *temporal.Date
	Status     *domain.Status
	Limit      int
}

// AppointmentStore persists appointments. Insert and Update take the domain
// events raised by the transition and record them in the same transaction so
// they are published only if the write commits.
type AppointmentStore interface {
	GetByID(ctx context.Context, tenantID, appointmentID uuid.UUID) (*domain.Appointment, error)
	ListForProviderDate(ctx context.Context, tenantID, providerID uuid.UUID, date temporal.Date) ([]*domain.Appointment, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID, q AppointmentQuery) ([]*domain.Appointment, error)

	Insert(ctx context.Context, a *domain.Appointment, events []domain.Event) error
	Update(ctx context.Context, a *domain.Appointment, events []domain.Event) error

	// HasConflict reports whether an active appointment blocks
	// [start, end) on the date, with bufferMinutes of padding after each
	// existing appointment. excludeID skips one appointment (zero value
	// skips none).
	HasConflict(ctx context.Context, tenantID, providerID uuid.UUID, date temporal.Date, start, end temporal.TimeOfDay, bufferMinutes int, excludeID uuid.UUID, now time.Time) (bool, error)

	// CancelExpired atomically cancels every pending appointment whose
	// lock lapsed before now, recording an expiry event per row. Returns
	// how many were cancelled.
	CancelExpired(ctx context.Context, now time.Time) (int, error)
}
