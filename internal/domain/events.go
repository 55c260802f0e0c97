package domain

import "github.com/google/uuid"

// Event type names double as Kafka topics, so they follow the
// <context>.<aggregate>.<action>.v<N> convention.
const (
	EventAppointmentHeld      = "booking.appointment.held.v1"
	EventAppointmentConfirmed = "booking.appointment.confirmed.v1"
	EventAppointmentCancelled = "booking.appointment.cancelled.v1"
	EventAppointmentExpired   = "booking.appointment.expired.v1"
	EventAppointmentNoShow    = "booking.appointment.noshow.v1"
	EventAppointmentCompleted = "booking.appointment.completed.v1"
)

// Event is a lifecycle fact produced by a successful state transition.
// Transitions return events instead of dispatching them; the orchestration
// layer writes them to the outbox in the same transaction as the state change
// and they are published only after commit.
type Event struct {
	Type        string
	AggregateID uuid.UUID
	Data        map[string]any
}
