package booking

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/FabioF7/TheBooker/internal/domain"
	"github.com/FabioF7/TheBooker/internal/temporal"
)

// In-memory stores backing the service tests. The appointment store applies
// the same exclusivity rule as the database so concurrent holds can race
// realistically.

type fakeTenantStore struct {
	mu      sync.Mutex
	tenants map[uuid.UUID]*domain.Tenant
}

func newFakeTenantStore() *fakeTenantStore {
	return &fakeTenantStore{tenants: map[uuid.UUID]*domain.Tenant{}}
}

func (s *fakeTenantStore) GetBySlug(_ context.Context, slug domain.Slug) (*domain.Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tenants {
		if t.Slug == slug {
			cp := *t
			return &cp, nil
		}
	}
	return nil, domain.NewNotFound("Tenant", slug)
}

func (s *fakeTenantStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.tenants[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, domain.NewNotFound("Tenant", id)
}

func (s *fakeTenantStore) Insert(_ context.Context, t *domain.Tenant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.tenants {
		if existing.Slug == t.Slug {
			return domain.ErrSlugAlreadyExists
		}
	}
	cp := *t
	s.tenants[t.ID] = &cp
	return nil
}

func (s *fakeTenantStore) Update(_ context.Context, t *domain.Tenant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *t
	s.tenants[t.ID] = &cp
	return nil
}

type fakeProviderStore struct {
	mu        sync.Mutex
	providers map[uuid.UUID]*domain.ServiceProvider
}

func newFakeProviderStore() *fakeProviderStore {
	return &fakeProviderStore{providers: map[uuid.UUID]*domain.ServiceProvider{}}
}

func (s *fakeProviderStore) GetByID(_ context.Context, tenantID, providerID uuid.UUID) (*domain.ServiceProvider, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.providers[providerID]; ok && p.TenantID == tenantID {
		cp := *p
		return &cp, nil
	}
	return nil, domain.NewNotFound("ServiceProvider", providerID)
}

func (s *fakeProviderStore) ListByTenant(_ context.Context, tenantID uuid.UUID) ([]*domain.ServiceProvider, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.ServiceProvider
	for _, p := range s.providers {
		if p.TenantID == tenantID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *fakeProviderStore) Insert(_ context.Context, p *domain.ServiceProvider) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.providers[p.ID] = &cp
	return nil
}

func (s *fakeProviderStore) Update(_ context.Context, p *domain.ServiceProvider) error {
	return s.Insert(context.Background(), p)
}

type fakeServiceStore struct {
	mu       sync.Mutex
	services map[uuid.UUID]*domain.Service
}

func newFakeServiceStore() *fakeServiceStore {
	return &fakeServiceStore{services: map[uuid.UUID]*domain.Service{}}
}

func (s *fakeServiceStore) GetByID(_ context.Context, tenantID, serviceID uuid.UUID) (*domain.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if svc, ok := s.services[serviceID]; ok && svc.TenantID == tenantID {
		cp := *svc
		return &cp, nil
	}
	return nil, domain.NewNotFound("Service", serviceID)
}

func (s *fakeServiceStore) ListByTenant(_ context.Context, tenantID uuid.UUID) ([]*domain.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Service
	for _, svc := range s.services {
		if svc.TenantID == tenantID {
			cp := *svc
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *fakeServiceStore) Insert(_ context.Context, svc *domain.Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *svc
	s.services[svc.ID] = &cp
	return nil
}

func (s *fakeServiceStore) Update(_ context.Context, svc *domain.Service) error {
	return s.Insert(context.Background(), svc)
}

type fakeOverrideStore struct {
	mu        sync.Mutex
	overrides map[uuid.UUID]*domain.ScheduleOverride
}

func newFakeOverrideStore() *fakeOverrideStore {
	return &fakeOverrideStore{overrides: map[uuid.UUID]*domain.ScheduleOverride{}}
}

func (s *fakeOverrideStore) ListForDate(_ context.Context, tenantID uuid.UUID, date temporal.Date) ([]*domain.ScheduleOverride, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.ScheduleOverride
	for _, ov := range s.overrides {
		if ov.TenantID == tenantID && ov.AppliesToDate(date) {
			cp := *ov
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *fakeOverrideStore) ListByTenant(_ context.Context, tenantID uuid.UUID) ([]*domain.ScheduleOverride, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.ScheduleOverride
	for _, ov := range s.overrides {
		if ov.TenantID == tenantID {
			cp := *ov
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *fakeOverrideStore) Insert(_ context.Context, ov *domain.ScheduleOverride) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *ov
	s.overrides[ov.ID] = &cp
	return nil
}

func (s *fakeOverrideStore) Delete(_ context.Context, tenantID, overrideID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ov, ok := s.overrides[overrideID]; ok && ov.TenantID == tenantID {
		delete(s.overrides, overrideID)
		return nil
	}
	return domain.NewNotFound("ScheduleOverride", overrideID)
}

type fakeAppointmentStore struct {
	mu           sync.Mutex
	appointments map[uuid.UUID]*domain.Appointment
	events       []domain.Event
}

func newFakeAppointmentStore() *fakeAppointmentStore {
	return &fakeAppointmentStore{appointments: map[uuid.UUID]*domain.Appointment{}}
}

func (s *fakeAppointmentStore) GetByID(_ context.Context, tenantID, appointmentID uuid.UUID) (*domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.appointments[appointmentID]; ok && a.TenantID == tenantID {
		cp := *a
		return &cp, nil
	}
	return nil, domain.NewNotFound("Appointment", appointmentID)
}

func (s *fakeAppointmentStore) ListForProviderDate(_ context.Context, tenantID, providerID uuid.UUID, date temporal.Date) ([]*domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Appointment
	for _, a := range s.appointments {
		if a.TenantID == tenantID && a.ProviderID == providerID && a.Date.Compare(date) == 0 && a.Status.OccupiesSlot() {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *fakeAppointmentStore) ListByTenant(_ context.Context, tenantID uuid.UUID, q AppointmentQuery) ([]*domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Appointment
	for _, a := range s.appointments {
		if a.TenantID != tenantID {
			continue
		}
		if q.ProviderID != nil && a.ProviderID != *q.ProviderID {
			continue
		}
		if q.Status != nil && a.Status != *q.Status {
			continue
		}
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}

// Insert rejects overlapping active appointments, mirroring the exclusion
// constraint, so racing holds see exactly one winner.
func (s *fakeAppointmentStore) Insert(_ context.Context, a *domain.Appointment, events []domain.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, other := range s.appointments {
		if other.ProviderID != a.ProviderID || other.Date.Compare(a.Date) != 0 {
			continue
		}
		if !other.Status.OccupiesSlot() {
			continue
		}
		if a.StartTime < other.EndTime && a.EndTime > other.StartTime {
			return domain.ErrSlotNotAvailable
		}
	}
	cp := *a
	s.appointments[a.ID] = &cp
	s.events = append(s.events, events...)
	return nil
}

func (s *fakeAppointmentStore) Update(_ context.Context, a *domain.Appointment, events []domain.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.appointments[a.ID]; !ok {
		return domain.NewNotFound("Appointment", a.ID)
	}
	cp := *a
	s.appointments[a.ID] = &cp
	s.events = append(s.events, events...)
	return nil
}

func (s *fakeAppointmentStore) HasConflict(_ context.Context, tenantID, providerID uuid.UUID, date temporal.Date, start, end temporal.TimeOfDay, bufferMinutes int, excludeID uuid.UUID, now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.appointments {
		if a.TenantID != tenantID || a.ProviderID != providerID || a.Date.Compare(date) != 0 || a.ID == excludeID {
			continue
		}
		if a.OccupiesSlot(start, end, bufferMinutes, now) {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeAppointmentStore) CancelExpired(_ context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	released := 0
	for _, a := range s.appointments {
		events, err := a.Expire(now)
		if err != nil {
			continue
		}
		s.events = append(s.events, events...)
		released++
	}
	return released, nil
}

func (s *fakeAppointmentStore) eventTypes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.events))
	for i, e := range s.events {
		out[i] = e.Type
	}
	return out
}
