// Package availability computes bookable slots for a provider on a given
// date. It is pure: callers load the tenant, provider, overrides and
// appointments and the engine does the arithmetic.
package availability

import (
	"time"

	"github.com/FabioF7/TheBooker/internal/domain"
	"github.com/FabioF7/TheBooker/internal/temporal"
)

// DefaultSlotIntervalMinutes is the step between candidate slot starts.
const DefaultSlotIntervalMinutes = 15

// Slot is one candidate booking window on the requested date, in the
// tenant's local time. Unavailable slots are emitted too, marked, so callers
// can render them struck through.
type Slot struct {
	Start           temporal.TimeOfDay `json:"startTime"`
	End             temporal.TimeOfDay `json:"endTime"`
	DurationMinutes int                `json:"durationMinutes"`
	IsAvailable     bool               `json:"isAvailable"`
}

// Response is the availability for one provider on one date.
type Response struct {
	Date            temporal.Date       `json:"date"`
	ProviderID      string              `json:"providerId"`
	ProviderName    string              `json:"providerName"`
	IsOpen          bool                `json:"isOpen"`
	OpenTime        *temporal.TimeOfDay `json:"openTime,omitempty"`
	CloseTime       *temporal.TimeOfDay `json:"closeTime,omitempty"`
	ClosedReason    string              `json:"closedReason,omitempty"`
	Slots           []Slot              `json:"slots"`
	DurationMinutes int                 `json:"durationMinutes"`
}

// Request carries everything the engine needs for one computation.
// Appointments must already be filtered to active ones touching the date;
// Overrides to those plausibly covering it.
type Request struct {
	Tenant          *domain.Tenant
	Provider        *domain.ServiceProvider
	DurationMinutes int
	Date            temporal.Date
	Overrides       []*domain.ScheduleOverride
	Appointments    []*domain.Appointment
	// SlotIntervalMinutes defaults to DefaultSlotIntervalMinutes when <= 0.
	SlotIntervalMinutes int
	Now                 time.Time
}

// Compute resolves the effective operating window for the date and walks it
// in slot-interval steps, marking each candidate available or not against the
// active appointments. A service longer than the window yields zero slots,
// not an error.
func Compute(req Request) (*Response, error) {
	if req.DurationMinutes <= 0 {
		return nil, domain.NewValidation("Availability.InvalidDuration",
			"Service duration must be positive.")
	}
	interval := req.SlotIntervalMinutes
	if interval <= 0 {
		interval = DefaultSlotIntervalMinutes
	}

	resp := &Response{
		Date:            req.Date,
		ProviderID:      req.Provider.ID.String(),
		ProviderName:    req.Provider.Name,
		DurationMinutes: req.DurationMinutes,
		Slots:           []Slot{},
	}

	window, closedReason := effectiveWindow(req)
	if window == nil {
		resp.ClosedReason = closedReason
		return resp, nil
	}
	resp.IsOpen = true
	openAt, closeAt := window.Start, window.End
	resp.OpenTime, resp.CloseTime = &openAt, &closeAt

	for start := window.Start; ; start = start.Add(interval) {
		end := start.Add(req.DurationMinutes)
		if end > window.End {
			break
		}
		resp.Slots = append(resp.Slots, Slot{
			Start:           start,
			End:             end,
			DurationMinutes: req.DurationMinutes,
			IsAvailable:     !slotTaken(req, start, end),
		})
	}
	return resp, nil
}

// effectiveWindow resolves the operating hours for the date. Provider
// overrides beat tenant-wide ones; within a scope the first matching override
// wins. Any hours-bearing override replaces the regular schedule outright,
// including ExtendedHours.
func effectiveWindow(req Request) (*domain.TimeRange, string) {
	if ov := matchOverride(req, true); ov != nil {
		return overrideWindow(ov)
	}
	if ov := matchOverride(req, false); ov != nil {
		return overrideWindow(ov)
	}

	hours := req.Provider.EffectiveHours(req.Tenant)
	day := hours.ForWeekday(req.Date.Weekday())
	if !day.IsOpen || day.Open == nil || day.Close == nil {
		return nil, "Regularly closed"
	}
	return &domain.TimeRange{Start: *day.Open, End: *day.Close}, ""
}

func matchOverride(req Request, providerSpecific bool) *domain.ScheduleOverride {
	for _, ov := range req.Overrides {
		if (ov.ProviderID != nil) != providerSpecific {
			continue
		}
		if !ov.AppliesToProvider(req.Provider.ID) || !ov.AppliesToDate(req.Date) {
			continue
		}
		return ov
	}
	return nil
}

func overrideWindow(ov *domain.ScheduleOverride) (*domain.TimeRange, string) {
	if ov.Type == domain.OverrideClosed || ov.Hours == nil {
		reason := ov.Reason
		if reason == "" {
			reason = "Closed"
		}
		return nil, reason
	}
	return ov.Hours, ""
}

func slotTaken(req Request, start, end temporal.TimeOfDay) bool {
	for _, appt := range req.Appointments {
		if appt.ProviderID != req.Provider.ID || appt.Date.Compare(req.Date) != 0 {
			continue
		}
		if appt.OccupiesSlot(start, end, req.Tenant.BufferMinutes, req.Now) {
			return true
		}
	}
	return false
}
