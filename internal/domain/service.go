package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	serviceDurationMin = 5
	serviceDurationMax = 480
)

// Service is a bookable offering (e.g. "Haircut", "Consultation").
type Service struct {
	ID              uuid.UUID
	TenantID        uuid.UUID
	Name            string
	Description     string
	DurationMinutes int
	Price           Money
	IsActive        bool
	CreatedAtUTC    time.Time
	ModifiedAtUTC   time.Time
}

func NewService(tenantID uuid.UUID, name string, durationMinutes int, price float64, currency, description string, now time.Time) (*Service, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewValidation("Service.NameRequired", "Service name is required.")
	}
	if len(name) > 100 {
		return nil, NewValidation("Service.NameTooLong", "Service name cannot exceed 100 characters.")
	}
	if durationMinutes < serviceDurationMin || durationMinutes > serviceDurationMax {
		return nil, NewValidation("Service.InvalidDuration", "Service duration must be between 5 and 480 minutes.")
	}
	money, err := NewMoney(price, currency)
	if err != nil {
		return nil, err
	}
	return &Service{
		ID:              uuid.New(),
		TenantID:        tenantID,
		Name:            name,
		Description:     strings.TrimSpace(description),
		DurationMinutes: durationMinutes,
		Price:           money,
		IsActive:        true,
		CreatedAtUTC:    now,
	}, nil
}

func (s *Service) Update(name string, durationMinutes int, price float64, description string, now time.Time) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return NewValidation("Service.NameRequired", "Service name is required.")
	}
	if durationMinutes < serviceDurationMin || durationMinutes > serviceDurationMax {
		return NewValidation("Service.InvalidDuration", "Service duration must be between 5 and 480 minutes.")
	}
	money, err := NewMoney(price, s.Price.Currency)
	if err != nil {
		return err
	}
	s.Name = name
	s.DurationMinutes = durationMinutes
	s.Price = money
	s.Description = strings.TrimSpace(description)
	s.ModifiedAtUTC = now
	return nil
}

func (s *Service) Deactivate(now time.Time) {
	s.IsActive = false
	s.ModifiedAtUTC = now
}

func (s *Service) Activate(now time.Time) {
	s.IsActive = true
	s.ModifiedAtUTC = now
}
