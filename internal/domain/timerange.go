package domain

import (
	"fmt"

	"github.com/FabioF7/TheBooker/internal/temporal"
)

// TimeRange is a wall-clock interval within a single day, start exclusive of
// end. End must be strictly after start.
type TimeRange struct {
	Start temporal.TimeOfDay
	End   temporal.TimeOfDay
}

func NewTimeRange(start, end temporal.TimeOfDay) (TimeRange, error) {
	if end <= start {
		return TimeRange{}, NewValidation("TimeRange.EndBeforeStart", "End time must be after start time.")
	}
	return TimeRange{Start: start, End: end}, nil
}

func (r TimeRange) DurationMinutes() int {
	return int(r.End - r.Start)
}

// Overlaps uses open-interval semantics: [a,b) vs [c,d) overlap iff a < d && b > c.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start < other.End && r.End > other.Start
}

// Contains reports inclusive-start, exclusive-end membership.
func (r TimeRange) Contains(t temporal.TimeOfDay) bool {
	return t >= r.Start && t < r.End
}

// ContainsRange reports whether other lies fully within r.
func (r TimeRange) ContainsRange(other TimeRange) bool {
	return r.Start <= other.Start && r.End >= other.End
}

func (r TimeRange) String() string {
	return fmt.Sprintf("%s - %s", r.Start, r.End)
}
