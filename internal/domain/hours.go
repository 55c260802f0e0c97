package domain

import (
	"time"

	"github.com/FabioF7/TheBooker/internal/temporal"
)

// DaySchedule is the operating window for one weekday. Open and Close are nil
// on closed days. Serialized as JSON into the tenants/providers rows.
type DaySchedule struct {
	IsOpen bool                `json:"isOpen"`
	Open   *temporal.TimeOfDay `json:"openTime,omitempty"`
	Close  *temporal.TimeOfDay `json:"closeTime,omitempty"`
}

// ClosedDay is the schedule of a day with no operating hours.
func ClosedDay() DaySchedule { return DaySchedule{} }

// OpenDay builds an open-day schedule; validation happens in NewBusinessHours.
func OpenDay(open, close temporal.TimeOfDay) DaySchedule {
	return DaySchedule{IsOpen: true, Open: &open, Close: &close}
}

// BusinessHours is a full weekly schedule.
type BusinessHours struct {
	Monday    DaySchedule `json:"monday"`
	Tuesday   DaySchedule `json:"tuesday"`
	Wednesday DaySchedule `json:"wednesday"`
	Thursday  DaySchedule `json:"thursday"`
	Friday    DaySchedule `json:"friday"`
	Saturday  DaySchedule `json:"saturday"`
	Sunday    DaySchedule `json:"sunday"`
}

// NewBusinessHours validates a full week definition: at least one day open,
// every open day carrying a window with close after open.
func NewBusinessHours(monday, tuesday, wednesday, thursday, friday, saturday, sunday DaySchedule) (BusinessHours, error) {
	hours := BusinessHours{
		Monday:    monday,
		Tuesday:   tuesday,
		Wednesday: wednesday,
		Thursday:  thursday,
		Friday:    friday,
		Saturday:  saturday,
		Sunday:    sunday,
	}

	anyOpen := false
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		day := hours.ForWeekday(wd)
		if !day.IsOpen {
			continue
		}
		anyOpen = true
		if day.Open == nil || day.Close == nil {
			return BusinessHours{}, NewValidation("BusinessHours.OpenDayRequiresTimes",
				"Open days must have both open and close times.")
		}
		if *day.Close <= *day.Open {
			return BusinessHours{}, NewValidation("BusinessHours.CloseTimeBeforeOpenTime",
				"Close time must be after open time.")
		}
	}
	if !anyOpen {
		return BusinessHours{}, NewValidation("BusinessHours.AtLeastOneDayMustBeOpen",
			"At least one day must be open.")
	}
	return hours, nil
}

// DefaultBusinessHours is Monday-Friday 09:00-17:00.
func DefaultBusinessHours() BusinessHours {
	open := OpenDay(9*60, 17*60)
	return BusinessHours{
		Monday:    open,
		Tuesday:   open,
		Wednesday: open,
		Thursday:  open,
		Friday:    open,
		Saturday:  ClosedDay(),
		Sunday:    ClosedDay(),
	}
}

// ForWeekday returns the schedule entry for a day of week.
func (h BusinessHours) ForWeekday(wd time.Weekday) DaySchedule {
	switch wd {
	case time.Monday:
		return h.Monday
	case time.Tuesday:
		return h.Tuesday
	case time.Wednesday:
		return h.Wednesday
	case time.Thursday:
		return h.Thursday
	case time.Friday:
		return h.Friday
	case time.Saturday:
		return h.Saturday
	default:
		return h.Sunday
	}
}
