package domain

// Status is the appointment lifecycle state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
	StatusCompleted Status = "completed"
)

// allowedTransitions is the full state machine. Cancelled, NoShow and
// Completed are terminal.
var allowedTransitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCancelled, StatusNoShow, StatusCompleted},
}

// CanTransitionTo reports whether the state machine permits moving from s to
// target.
func (s Status) CanTransitionTo(target Status) bool {
	for _, t := range allowedTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// OccupiesSlot reports whether the status blocks a time slot. Pending holds
// additionally require a live lock; see Appointment.OccupiesSlot.
func (s Status) OccupiesSlot() bool {
	return s == StatusPending || s == StatusConfirmed
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusNoShow, StatusCompleted:
		return true
	}
	return false
}
