// Package temporal provides the date and time-of-day primitives used by the
// scheduling core. A Date is a civil calendar date with no timezone attached;
// a TimeOfDay is a wall-clock minute offset from midnight. Conversions to
// absolute instants always go through an IANA timezone id.
package temporal

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTimeZone is returned when an IANA timezone id cannot be resolved.
var ErrInvalidTimeZone = errors.New("invalid time zone")

const minutesPerDay = 24 * 60

// TimeOfDay is minutes since local midnight. Values at or above 24h are legal
// as interval ends (a booking whose service runs past midnight), which keeps
// comparisons monotonic within a day.
type TimeOfDay int

// ParseTimeOfDay parses "HH:MM" (24-hour clock).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("parse time of day %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("time of day %q out of range", s)
	}
	return TimeOfDay(h*60 + m), nil
}

func (t TimeOfDay) Hour() int    { return int(t) / 60 % 24 }
func (t TimeOfDay) Minute() int  { return int(t) % 60 }
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60%24, int(t)%60)
}

// Add returns the time shifted by the given number of minutes. The result is
// not wrapped at midnight.
func (t TimeOfDay) Add(minutes int) TimeOfDay { return t + TimeOfDay(minutes) }

func (t TimeOfDay) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *TimeOfDay) UnmarshalText(b []byte) error {
	parsed, err := ParseTimeOfDay(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Date is a civil calendar date.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate parses "YYYY-MM-DD".
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// DateOf extracts the civil date from an instant in the instant's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d Date) IsZero() bool { return d == Date{} }

// In returns midnight of the date in the given location.
func (d Date) In(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

func (d Date) Weekday() time.Weekday {
	return d.In(time.UTC).Weekday()
}

func (d Date) AddDays(n int) Date {
	return DateOf(d.In(time.UTC).AddDate(0, 0, n))
}

// Compare returns -1, 0 or 1 ordering d against other.
func (d Date) Compare(other Date) int {
	switch {
	case d.Year != other.Year:
		return sign(d.Year - other.Year)
	case d.Month != other.Month:
		return sign(int(d.Month) - int(other.Month))
	default:
		return sign(d.Day - other.Day)
	}
}

func (d Date) Before(other Date) bool { return d.Compare(other) < 0 }
func (d Date) After(other Date) bool  { return d.Compare(other) > 0 }

func (d Date) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

// LoadLocation resolves an IANA timezone id, mapping resolution failures to
// ErrInvalidTimeZone.
func LoadLocation(tzID string) (*time.Location, error) {
	loc, err := time.LoadLocation(tzID)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimeZone, tzID)
	}
	return loc, nil
}

// ToUTC combines a civil date and wall-clock time in the given timezone and
// returns the corresponding UTC instant.
func ToUTC(date Date, t TimeOfDay, tzID string) (time.Time, error) {
	loc, err := LoadLocation(tzID)
	if err != nil {
		return time.Time{}, err
	}
	local := time.Date(date.Year, date.Month, date.Day, 0, int(t), 0, 0, loc)
	return local.UTC(), nil
}

// ToLocalDate returns the civil date of a UTC instant in the given timezone.
func ToLocalDate(utc time.Time, tzID string) (Date, error) {
	loc, err := LoadLocation(tzID)
	if err != nil {
		return Date{}, err
	}
	return DateOf(utc.In(loc)), nil
}

// ToLocalTime returns the wall-clock time of a UTC instant in the given timezone.
func ToLocalTime(utc time.Time, tzID string) (TimeOfDay, error) {
	loc, err := LoadLocation(tzID)
	if err != nil {
		return 0, err
	}
	local := utc.In(loc)
	return TimeOfDay(local.Hour()*60 + local.Minute()), nil
}

// SpansMidnight reports whether a wall-clock range crosses midnight.
func SpansMidnight(start, end TimeOfDay) bool { return end < start }

// DurationMinutes is the length of the wall-clock range [start, end] in
// minutes. A range with end before start is taken to cross midnight: minutes
// from start to the end of day, plus minutes from the start of day to end,
// plus one for the midnight boundary itself.
func DurationMinutes(start, end TimeOfDay) int {
	if end >= start {
		return int(end - start)
	}
	beforeMidnight := minutesPerDay - 1 - int(start)
	afterMidnight := int(end)
	return beforeMidnight + afterMidnight + 1
}

// IsInRange reports membership of t in [start, end) where a range with
// end <= start wraps past midnight.
func IsInRange(t, start, end TimeOfDay) bool {
	if end > start {
		return t >= start && t < end
	}
	return t >= start || t < end
}
