package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ServiceProvider is a staff member who delivers services. Providers may carry
// their own weekly hours, which replace (not merge with) the tenant hours.
type ServiceProvider struct {
	ID           uuid.UUID
	TenantID     uuid.UUID
	UserID       *uuid.UUID
	Name         string
	Email        Email
	CustomHours  *BusinessHours
	IsActive     bool
	Services     []*Service
	CreatedAtUTC time.Time
	ModifiedAtUTC time.Time
}

func NewServiceProvider(tenantID uuid.UUID, name, email string, userID *uuid.UUID, now time.Time) (*ServiceProvider, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewValidation("ServiceProvider.NameRequired", "Provider name is required.")
	}
	var addr Email
	if strings.TrimSpace(email) != "" {
		parsed, err := ParseEmail(email)
		if err != nil {
			return nil, err
		}
		addr = parsed
	}
	return &ServiceProvider{
		ID:           uuid.New(),
		TenantID:     tenantID,
		UserID:       userID,
		Name:         name,
		Email:        addr,
		IsActive:     true,
		CreatedAtUTC: now,
	}, nil
}

// SetCustomHours overrides the tenant schedule for this provider.
func (p *ServiceProvider) SetCustomHours(hours BusinessHours, now time.Time) {
	p.CustomHours = &hours
	p.ModifiedAtUTC = now
}

// ClearCustomHours reverts the provider to the tenant schedule.
func (p *ServiceProvider) ClearCustomHours(now time.Time) {
	p.CustomHours = nil
	p.ModifiedAtUTC = now
}

// EffectiveHours is the provider's custom schedule when set, otherwise the
// tenant's.
func (p *ServiceProvider) EffectiveHours(tenant *Tenant) BusinessHours {
	if p.CustomHours != nil {
		return *p.CustomHours
	}
	return tenant.Hours
}

// FindService returns the offered service with the given id, or nil.
func (p *ServiceProvider) FindService(serviceID uuid.UUID) *Service {
	for _, s := range p.Services {
		if s.ID == serviceID {
			return s
		}
	}
	return nil
}

func (p *ServiceProvider) AssignService(svc *Service, now time.Time) {
	if p.FindService(svc.ID) != nil {
		return
	}
	p.Services = append(p.Services, svc)
	p.ModifiedAtUTC = now
}

func (p *ServiceProvider) RemoveService(serviceID uuid.UUID, now time.Time) {
	for i, s := range p.Services {
		if s.ID == serviceID {
			p.Services = append(p.Services[:i], p.Services[i+1:]...)
			p.ModifiedAtUTC = now
			return
		}
	}
}

func (p *ServiceProvider) Deactivate(now time.Time) {
	p.IsActive = false
	p.ModifiedAtUTC = now
}

func (p *ServiceProvider) Activate(now time.Time) {
	p.IsActive = true
	p.ModifiedAtUTC = now
}
