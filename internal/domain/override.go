package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/FabioF7/TheBooker/internal/temporal"
)

// OverrideType classifies a schedule override.
type OverrideType string

const (
	OverrideClosed        OverrideType = "closed"
	OverrideModifiedHours OverrideType = "modified_hours"
	OverrideExtendedHours OverrideType = "extended_hours"
)

// ScheduleOverride is a date-ranged exception to regular business hours,
// tenant-wide (ProviderID nil) or provider-specific.
type ScheduleOverride struct {
	ID            uuid.UUID
	TenantID      uuid.UUID
	ProviderID    *uuid.UUID
	StartDate     temporal.Date
	EndDate       temporal.Date
	Type          OverrideType
	Hours         *TimeRange
	Reason        string
	CreatedAtUTC  time.Time
	ModifiedAtUTC time.Time
}

// NewClosedOverride marks a date range as closed (e.g. a holiday).
func NewClosedOverride(tenantID uuid.UUID, providerID *uuid.UUID, startDate, endDate temporal.Date, reason string, now time.Time) (*ScheduleOverride, error) {
	if endDate.Before(startDate) {
		return nil, errInvalidOverrideRange
	}
	return &ScheduleOverride{
		ID:           uuid.New(),
		TenantID:     tenantID,
		ProviderID:   providerID,
		StartDate:    startDate,
		EndDate:      endDate,
		Type:         OverrideClosed,
		Reason:       strings.TrimSpace(reason),
		CreatedAtUTC: now,
	}, nil
}

// NewModifiedHoursOverride replaces the regular hours for a date range.
func NewModifiedHoursOverride(tenantID uuid.UUID, providerID *uuid.UUID, startDate, endDate temporal.Date, open, close temporal.TimeOfDay, reason string, now time.Time) (*ScheduleOverride, error) {
	return newHoursOverride(OverrideModifiedHours, tenantID, providerID, startDate, endDate, open, close, reason, now)
}

// NewExtendedHoursOverride records extra availability for a date range. The
// engine currently treats it the same as modified hours (the window becomes
// the day's sole operating hours rather than being layered on top).
func NewExtendedHoursOverride(tenantID uuid.UUID, providerID *uuid.UUID, startDate, endDate temporal.Date, open, close temporal.TimeOfDay, reason string, now time.Time) (*ScheduleOverride, error) {
	return newHoursOverride(OverrideExtendedHours, tenantID, providerID, startDate, endDate, open, close, reason, now)
}

var errInvalidOverrideRange = NewValidation("ScheduleOverride.InvalidDateRange",
	"End date must be on or after start date.")

func newHoursOverride(kind OverrideType, tenantID uuid.UUID, providerID *uuid.UUID, startDate, endDate temporal.Date, open, close temporal.TimeOfDay, reason string, now time.Time) (*ScheduleOverride, error) {
	if endDate.Before(startDate) {
		return nil, errInvalidOverrideRange
	}
	window, err := NewTimeRange(open, close)
	if err != nil {
		return nil, err
	}
	return &ScheduleOverride{
		ID:           uuid.New(),
		TenantID:     tenantID,
		ProviderID:   providerID,
		StartDate:    startDate,
		EndDate:      endDate,
		Type:         kind,
		Hours:        &window,
		Reason:       strings.TrimSpace(reason),
		CreatedAtUTC: now,
	}, nil
}

// AppliesToDate reports whether date falls in the inclusive override range.
func (o *ScheduleOverride) AppliesToDate(date temporal.Date) bool {
	return !date.Before(o.StartDate) && !date.After(o.EndDate)
}

// AppliesToProvider reports whether the override covers the given provider
// (tenant-wide overrides cover every provider).
func (o *ScheduleOverride) AppliesToProvider(providerID uuid.UUID) bool {
	return o.ProviderID == nil || *o.ProviderID == providerID
}
