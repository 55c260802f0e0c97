package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/FabioF7/TheBooker/internal/temporal"
)

const (
	bufferMinutesMin = 0
	bufferMinutesMax = 120
)

// Tenant is a business using the booking system. All tenant data shares one
// schema, discriminated by TenantID on owned rows.
type Tenant struct {
	ID            uuid.UUID
	Slug          Slug
	Name          string
	TimeZoneID    string
	Hours         BusinessHours
	BufferMinutes int
	IsActive      bool
	CreatedAtUTC  time.Time
	ModifiedAtUTC time.Time
}

// NewTenant creates a tenant with default Mon-Fri business hours.
func NewTenant(name, slug, timeZoneID string, bufferMinutes int, now time.Time) (*Tenant, error) {
	s, err := ParseSlug(slug)
	if err != nil {
		return nil, err
	}
	if _, err := temporal.LoadLocation(timeZoneID); err != nil {
		return nil, NewValidation("Tenant.InvalidTimeZone", "Invalid timezone: "+timeZoneID)
	}
	if bufferMinutes < bufferMinutesMin || bufferMinutes > bufferMinutesMax {
		return nil, NewValidation("Tenant.InvalidBuffer", "Buffer must be between 0 and 120 minutes.")
	}
	return &Tenant{
		ID:            uuid.New(),
		Slug:          s,
		Name:          strings.TrimSpace(name),
		TimeZoneID:    timeZoneID,
		Hours:         DefaultBusinessHours(),
		BufferMinutes: bufferMinutes,
		IsActive:      true,
		CreatedAtUTC:  now,
	}, nil
}

// UpdateBusinessHours replaces the weekly schedule. The hours value carries
// its own invariants from NewBusinessHours.
func (t *Tenant) UpdateBusinessHours(hours BusinessHours, now time.Time) {
	t.Hours = hours
	t.ModifiedAtUTC = now
}

func (t *Tenant) UpdateBufferMinutes(bufferMinutes int, now time.Time) error {
	if bufferMinutes < bufferMinutesMin || bufferMinutes > bufferMinutesMax {
		return NewValidation("Tenant.InvalidBuffer", "Buffer must be between 0 and 120 minutes.")
	}
	t.BufferMinutes = bufferMinutes
	t.ModifiedAtUTC = now
	return nil
}

func (t *Tenant) Deactivate(now time.Time) {
	t.IsActive = false
	t.ModifiedAtUTC = now
}

func (t *Tenant) Activate(now time.Time) {
	t.IsActive = true
	t.ModifiedAtUTC = now
}
