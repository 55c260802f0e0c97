package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/FabioF7/TheBooker/internal/temporal"
)

// DefaultLockMinutes is how long a held slot stays reserved before the
// sweeper releases it.
const DefaultLockMinutes = 10

// SweepCancelReason marks holds released by the background sweeper rather
// than by a caller.
const SweepCancelReason = "Expired - slot lock timeout"

var errSessionRequired = NewValidation("Appointment.SessionRequired",
	"A session id is required to hold a slot.")

// Appointment is a booked (or held) slot for one provider and service. A hold
// starts Pending with an expiry; confirming within the lock window makes it
// Confirmed, otherwise the sweeper cancels it.
type Appointment struct {
	ID            uuid.UUID
	TenantID      uuid.UUID
	ProviderID    uuid.UUID
	ServiceID     uuid.UUID
	Date          temporal.Date
	StartTime     temporal.TimeOfDay
	EndTime       temporal.TimeOfDay
	Status        Status
	Customer      *CustomerInfo
	SessionID     string
	LockedAtUTC   *time.Time
	ExpiresAtUTC  *time.Time
	CancelReason  string
	CreatedAtUTC  time.Time
	ModifiedAtUTC time.Time
}

// Hold reserves a slot as a pending appointment locked to sessionID for
// lockMinutes (DefaultLockMinutes when <= 0). Conflict detection is the
// caller's job, immediately before this call; slot exclusivity under races
// is enforced by storage.
func Hold(tenantID, providerID, serviceID uuid.UUID, date temporal.Date, start temporal.TimeOfDay, durationMinutes int, sessionID string, lockMinutes int, now time.Time) (*Appointment, []Event, error) {
	if durationMinutes <= 0 {
		return nil, nil, NewValidation("Appointment.InvalidDuration", "Appointment duration must be positive.")
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, nil, errSessionRequired
	}
	if lockMinutes <= 0 {
		lockMinutes = DefaultLockMinutes
	}
	expires := now.Add(time.Duration(lockMinutes) * time.Minute)
	appt := &Appointment{
		ID:           uuid.New(),
		TenantID:     tenantID,
		ProviderID:   providerID,
		ServiceID:    serviceID,
		Date:         date,
		StartTime:    start,
		EndTime:      start.Add(durationMinutes),
		Status:       StatusPending,
		SessionID:    sessionID,
		LockedAtUTC:  &now,
		ExpiresAtUTC: &expires,
		CreatedAtUTC: now,
	}
	events := []Event{{
		Type:        EventAppointmentHeld,
		AggregateID: appt.ID,
		Data: map[string]any{
			"tenantId":   tenantID.String(),
			"providerId": providerID.String(),
			"serviceId":  serviceID.String(),
			"date":       date.String(),
			"startTime":  start.String(),
			"endTime":    appt.EndTime.String(),
			"expiresAt":  expires.UTC().Format(time.RFC3339),
		},
	}}
	return appt, events, nil
}

// IsLockExpired reports whether the pending hold has lapsed at the given
// instant. The lock is still live at exactly expiresAt; the sweeper uses the
// same strict comparison. Non-pending appointments never report expired.
func (a *Appointment) IsLockExpired(now time.Time) bool {
	return a.Status == StatusPending && a.ExpiresAtUTC != nil && now.After(*a.ExpiresAtUTC)
}

// Confirm turns a pending hold into a confirmed appointment. The caller must
// present the session that placed the hold, and the lock must not have
// expired. On failure the appointment is unchanged.
func (a *Appointment) Confirm(sessionID string, customer CustomerInfo, now time.Time) ([]Event, error) {
	if !a.Status.CanTransitionTo(StatusConfirmed) {
		return nil, ErrCannotConfirm
	}
	if strings.TrimSpace(sessionID) != a.SessionID {
		return nil, ErrInvalidSessionID
	}
	if a.IsLockExpired(now) {
		return nil, ErrLockExpired
	}
	a.Status = StatusConfirmed
	a.Customer = &customer
	a.clearLock()
	a.ModifiedAtUTC = now
	return []Event{{
		Type:        EventAppointmentConfirmed,
		AggregateID: a.ID,
		Data: map[string]any{
			"tenantId":      a.TenantID.String(),
			"providerId":    a.ProviderID.String(),
			"serviceId":     a.ServiceID.String(),
			"date":          a.Date.String(),
			"startTime":     a.StartTime.String(),
			"endTime":       a.EndTime.String(),
			"customerName":  customer.Name,
			"customerEmail": string(customer.Email),
		},
	}}, nil
}

// Cancel moves a pending or confirmed appointment to cancelled, releasing
// its slot.
func (a *Appointment) Cancel(reason string, now time.Time) ([]Event, error) {
	if !a.Status.CanTransitionTo(StatusCancelled) {
		return nil, ErrCannotCancel
	}
	a.Status = StatusCancelled
	a.CancelReason = strings.TrimSpace(reason)
	a.clearLock()
	a.ModifiedAtUTC = now
	return []Event{{
		Type:        EventAppointmentCancelled,
		AggregateID: a.ID,
		Data: map[string]any{
			"tenantId":   a.TenantID.String(),
			"providerId": a.ProviderID.String(),
			"date":       a.Date.String(),
			"startTime":  a.StartTime.String(),
			"reason":     a.CancelReason,
		},
	}}, nil
}

// Expire cancels a pending hold whose lock has lapsed. Holds that are still
// live, or that already moved on, return an error instead of mutating, which
// keeps sweep retries idempotent.
func (a *Appointment) Expire(now time.Time) ([]Event, error) {
	if a.Status != StatusPending {
		return nil, ErrCannotCancel
	}
	if !a.IsLockExpired(now) {
		return nil, NewConflict("Appointment.LockStillActive", "Appointment hold has not expired yet.")
	}
	a.Status = StatusCancelled
	a.CancelReason = SweepCancelReason
	a.clearLock()
	a.ModifiedAtUTC = now
	return []Event{{
		Type:        EventAppointmentExpired,
		AggregateID: a.ID,
		Data: map[string]any{
			"tenantId":   a.TenantID.String(),
			"providerId": a.ProviderID.String(),
			"date":       a.Date.String(),
			"startTime":  a.StartTime.String(),
		},
	}}, nil
}

// MarkNoShow flags a confirmed appointment whose customer did not arrive.
func (a *Appointment) MarkNoShow(now time.Time) ([]Event, error) {
	if !a.Status.CanTransitionTo(StatusNoShow) {
		return nil, NewConflict("Appointment.CannotMarkNoShow",
			"Only confirmed appointments can be marked as no-show.")
	}
	a.Status = StatusNoShow
	a.ModifiedAtUTC = now
	return []Event{{
		Type:        EventAppointmentNoShow,
		AggregateID: a.ID,
		Data: map[string]any{
			"tenantId": a.TenantID.String(),
			"date":     a.Date.String(),
		},
	}}, nil
}

// Complete marks a confirmed appointment as delivered.
func (a *Appointment) Complete(now time.Time) ([]Event, error) {
	if !a.Status.CanTransitionTo(StatusCompleted) {
		return nil, NewConflict("Appointment.CannotComplete",
			"Only confirmed appointments can be completed.")
	}
	a.Status = StatusCompleted
	a.ModifiedAtUTC = now
	return []Event{{
		Type:        EventAppointmentCompleted,
		AggregateID: a.ID,
		Data: map[string]any{
			"tenantId": a.TenantID.String(),
			"date":     a.Date.String(),
		},
	}}, nil
}

// OccupiesSlot reports whether this appointment blocks the candidate slot
// [slotStart, slotEnd) on its date, applying bufferMinutes of padding after
// this appointment's end. Expired pending holds do not block.
func (a *Appointment) OccupiesSlot(slotStart, slotEnd temporal.TimeOfDay, bufferMinutes int, now time.Time) bool {
	if !a.Status.OccupiesSlot() {
		return false
	}
	if a.Status == StatusPending && a.IsLockExpired(now) {
		return false
	}
	paddedEnd := a.EndTime.Add(bufferMinutes)
	return slotStart < paddedEnd && slotEnd > a.StartTime
}

func (a *Appointment) clearLock() {
	a.SessionID = ""
	a.LockedAtUTC = nil
	a.ExpiresAtUTC = nil
}
