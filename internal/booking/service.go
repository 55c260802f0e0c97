// Package booking orchestrates the hold, confirm and cancel flows on top of
// the availability engine and the storage ports.
package booking

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/FabioF7/TheBooker/internal/availability"
	"github.com/FabioF7/TheBooker/internal/domain"
	"github.com/FabioF7/TheBooker/internal/temporal"
)

// Service wires the booking flows together. All methods resolve the tenant
// by slug so public callers never handle tenant ids.
type Service struct {
	tenants      TenantStore
	providers    ProviderStore
	services     ServiceStore
	overrides    OverrideStore
	appointments AppointmentStore
	lockMinutes  int
	log          *slog.Logger
	now          func() time.Time
}

func NewService(tenants TenantStore, providers ProviderStore, services ServiceStore, overrides OverrideStore, appointments AppointmentStore, lockMinutes int, log *slog.Logger) *Service {
	if lockMinutes <= 0 {
		lockMinutes = domain.DefaultLockMinutes
	}
	return &Service{
		tenants:      tenants,
		providers:    providers,
		services:     services,
		overrides:    overrides,
		appointments: appointments,
		lockMinutes:  lockMinutes,
		log:          log,
		now:          time.Now,
	}
}

// WithClock replaces the wall clock, for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// GetAvailability computes the slot grid for a provider, service and date.
// slotIntervalMinutes falls back to the engine default when not positive.
func (s *Service) GetAvailability(ctx context.Context, tenantSlug string, providerID, serviceID uuid.UUID, date temporal.Date, slotIntervalMinutes int) (*availability.Response, error) {
	tenant, provider, svc, err := s.resolveBookingScope(ctx, tenantSlug, providerID, serviceID)
	if err != nil {
		return nil, err
	}
	overrides, err := s.overrides.ListForDate(ctx, tenant.ID, date)
	if err != nil {
		return nil, err
	}
	appts, err := s.appointments.ListForProviderDate(ctx, tenant.ID, provider.ID, date)
	if err != nil {
		return nil, err
	}
	return availability.Compute(availability.Request{
		Tenant:              tenant,
		Provider:            provider,
		DurationMinutes:     svc.DurationMinutes,
		Date:                date,
		Overrides:           overrides,
		Appointments:        appts,
		SlotIntervalMinutes: slotIntervalMinutes,
		Now:                 s.now(),
	})
}

// HoldRequest identifies the slot a customer wants to reserve.
type HoldRequest struct {
	TenantSlug string
	ProviderID uuid.UUID
	ServiceID  uuid.UUID
	Date       temporal.Date
	StartTime  temporal.TimeOfDay
	SessionID  string
}

// HoldSlot places a soft lock on a slot. The conflict check runs immediately
// before the insert to keep the race window small; the database exclusion
// constraint is the final arbiter when two holders race past it anyway.
func (s *Service) HoldSlot(ctx context.Context, req HoldRequest) (*domain.Appointment, error) {
	tenant, provider, svc, err := s.resolveBookingScope(ctx, req.TenantSlug, req.ProviderID, req.ServiceID)
	if err != nil {
		return nil, err
	}
	now := s.now()

	end := req.StartTime.Add(svc.DurationMinutes)
	conflict, err := s.appointments.HasConflict(ctx, tenant.ID, provider.ID, req.Date, req.StartTime, end, tenant.BufferMinutes, uuid.Nil, now)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, domain.ErrSlotNotAvailable
	}

	appt, events, err := domain.Hold(tenant.ID, provider.ID, svc.ID, req.Date, req.StartTime, svc.DurationMinutes, req.SessionID, s.lockMinutes, now)
	if err != nil {
		return nil, err
	}
	if err := s.appointments.Insert(ctx, appt, events); err != nil {
		return nil, err
	}
	s.log.InfoContext(ctx, "slot held",
		"appointment_id", appt.ID,
		"tenant", tenant.Slug,
		"provider_id", provider.ID,
		"date", req.Date.String(),
		"start", req.StartTime.String())
	return appt, nil
}

// ConfirmRequest carries the customer details for confirming a hold.
type ConfirmRequest struct {
	TenantSlug    string
	AppointmentID uuid.UUID
	SessionID     string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Notes         string
}

// Confirm finalizes a pending hold with the customer's details.
func (s *Service) Confirm(ctx context.Context, req ConfirmRequest) (*domain.Appointment, error) {
	tenant, appt, err := s.resolveAppointment(ctx, req.TenantSlug, req.AppointmentID)
	if err != nil {
		return nil, err
	}
	customer, err := domain.NewCustomerInfo(req.CustomerName, req.CustomerEmail, req.CustomerPhone, req.Notes)
	if err != nil {
		return nil, err
	}
	events, err := appt.Confirm(req.SessionID, customer, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.appointments.Update(ctx, appt, events); err != nil {
		return nil, err
	}
	s.log.InfoContext(ctx, "appointment confirmed",
		"appointment_id", appt.ID, "tenant", tenant.Slug)
	return appt, nil
}

// Cancel releases a pending or confirmed appointment.
func (s *Service) Cancel(ctx context.Context, tenantSlug string, appointmentID uuid.UUID, reason string) (*domain.Appointment, error) {
	tenant, appt, err := s.resolveAppointment(ctx, tenantSlug, appointmentID)
	if err != nil {
		return nil, err
	}
	events, err := appt.Cancel(reason, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.appointments.Update(ctx, appt, events); err != nil {
		return nil, err
	}
	s.log.InfoContext(ctx, "appointment cancelled",
		"appointment_id", appt.ID, "tenant", tenant.Slug)
	return appt, nil
}

// MarkNoShow flags a confirmed appointment whose customer did not arrive.
func (s *Service) MarkNoShow(ctx context.Context, tenantSlug string, appointmentID uuid.UUID) (*domain.Appointment, error) {
	return s.transition(ctx, tenantSlug, appointmentID, (*domain.Appointment).MarkNoShow)
}

// Complete marks a confirmed appointment as delivered.
func (s *Service) Complete(ctx context.Context, tenantSlug string, appointmentID uuid.UUID) (*domain.Appointment, error) {
	return s.transition(ctx, tenantSlug, appointmentID, (*domain.Appointment).Complete)
}

// GetAppointment returns one appointment scoped to the tenant.
func (s *Service) GetAppointment(ctx context.Context, tenantSlug string, appointmentID uuid.UUID) (*domain.Appointment, error) {
	_, appt, err := s.resolveAppointment(ctx, tenantSlug, appointmentID)
	return appt, err
}

// ListAppointments returns the tenant's appointments matching the query.
func (s *Service) ListAppointments(ctx context.Context, tenantSlug string, q AppointmentQuery) ([]*domain.Appointment, error) {
	tenant, err := s.resolveTenant(ctx, tenantSlug)
	if err != nil {
		return nil, err
	}
	return s.appointments.ListByTenant(ctx, tenant.ID, q)
}

func (s *Service) transition(ctx context.Context, tenantSlug string, appointmentID uuid.UUID, op func(*domain.Appointment, time.Time) ([]domain.Event, error)) (*domain.Appointment, error) {
	_, appt, err := s.resolveAppointment(ctx, tenantSlug, appointmentID)
	if err != nil {
		return nil, err
	}
	events, err := op(appt, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.appointments.Update(ctx, appt, events); err != nil {
		return nil, err
	}
	return appt, nil
}

func (s *Service) resolveTenant(ctx context.Context, tenantSlug string) (*domain.Tenant, error) {
	slug, err := domain.ParseSlug(tenantSlug)
	if err != nil {
		return nil, err
	}
	tenant, err := s.tenants.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !tenant.IsActive {
		return nil, domain.NewNotFound("Tenant", tenantSlug)
	}
	return tenant, nil
}

func (s *Service) resolveBookingScope(ctx context.Context, tenantSlug string, providerID, serviceID uuid.UUID) (*domain.Tenant, *domain.ServiceProvider, *domain.Service, error) {
	tenant, err := s.resolveTenant(ctx, tenantSlug)
	if err != nil {
		return nil, nil, nil, err
	}
	provider, err := s.providers.GetByID(ctx, tenant.ID, providerID)
	if err != nil {
		return nil, nil, nil, err
	}
	if !provider.IsActive {
		return nil, nil, nil, domain.NewNotFound("ServiceProvider", providerID)
	}
	svc := provider.FindService(serviceID)
	if svc == nil || !svc.IsActive {
		return nil, nil, nil, domain.NewNotFound("Service", serviceID)
	}
	return tenant, provider, svc, nil
}

func (s *Service) resolveAppointment(ctx context.Context, tenantSlug string, appointmentID uuid.UUID) (*domain.Tenant, *domain.Appointment, error) {
	tenant, err := s.resolveTenant(ctx, tenantSlug)
	if err != nil {
		return nil, nil, err
	}
	appt, err := s.appointments.GetByID(ctx, tenant.ID, appointmentID)
	if err != nil {
		return nil, nil, err
	}
	return tenant, appt, nil
}

