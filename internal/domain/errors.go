package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies domain failures so the transport layer can map them to
// status codes without inspecting individual codes.
type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindNotFound
	KindConflict
	KindInternal
)

// Error is a typed domain failure with a stable machine-readable code.
type Error struct {
	Kind    ErrorKind
	Code    string
	Message string
}

func (e *Error) Error() string { return e.Code + ": " + e.Message }

func NewValidation(code, message string) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: message}
}

func NewConflict(code, message string) *Error {
	return &Error{Kind: KindConflict, Code: code, Message: message}
}

func NewInternal(message string) *Error {
	return &Error{Kind: KindInternal, Code: "Internal", Message: message}
}

// NewNotFound builds a not-found error for a named resource.
func NewNotFound(resource string, id any) *Error {
	return &Error{
		Kind:    KindNotFound,
		Code:    resource + ".NotFound",
		Message: fmt.Sprintf("%s %v was not found", resource, id),
	}
}

// KindOf returns the kind of a domain error, or 0 for non-domain errors.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return 0
}

// Shared errors referenced from more than one place. Errors used by a single
// constructor live next to that constructor.
var (
	ErrSlotNotAvailable = NewConflict("Appointment.SlotNotAvailable",
		"The requested time slot is no longer available.")
	ErrCannotConfirm = NewValidation("Appointment.CannotConfirm",
		"This appointment cannot be confirmed in its current state.")
	ErrCannotCancel = NewValidation("Appointment.CannotCancel",
		"This appointment cannot be cancelled in its current state.")
	ErrLockExpired = NewValidation("Appointment.LockExpired",
		"The slot lock has expired. Please try again.")
	ErrInvalidSessionID = NewValidation("Appointment.InvalidSessionId",
		"Invalid session ID for this appointment.")
	ErrSlugAlreadyExists = NewConflict("Tenant.SlugAlreadyExists",
		"A tenant with this slug already exists.")
	ErrOverlappingOverride = NewConflict("ScheduleOverride.Overlapping",
		"An override already exists for this date range.")
)
