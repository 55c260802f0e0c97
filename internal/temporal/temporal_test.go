package temporal

import (
	"testing"
	"time"
)

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		in      string
		want    TimeOfDay
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:30", 9*60 + 30, false},
		{"23:59", 23*60 + 59, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"garbage", 0, true},
	}
	for _, c := range cases {
		got, err := ParseTimeOfDay(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParseTimeOfDay(%q): expected error, got %v", c.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTimeOfDay(%q): %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseTimeOfDay(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestTimeOfDay_String(t *testing.T) {
	if got := TimeOfDay(9*60 + 5).String(); got != "09:05" {
		t.Fatalf("expected 09:05, got %s", got)
	}
}

func TestTimeOfDay_AddDoesNotWrap(t *testing.T) {
	start := TimeOfDay(23 * 60)
	end := start.Add(120)
	if end <= start {
		t.Fatalf("expected end past start, got %d", end)
	}
	if int(end) != 25*60 {
		t.Fatalf("expected 1500 minutes, got %d", end)
	}
}

func TestDurationMinutes(t *testing.T) {
	if got := DurationMinutes(9*60, 10*60); got != 60 {
		t.Fatalf("expected 60, got %d", got)
	}
	// 23:00 across midnight to 01:00: 59 before midnight, 60 after,
	// plus the boundary minute.
	if got := DurationMinutes(23*60, 60); got != 120 {
		t.Fatalf("expected 120, got %d", got)
	}
}

func TestIsInRange_Wrapping(t *testing.T) {
	// 22:00 - 02:00 wraps.
	start, end := TimeOfDay(22*60), TimeOfDay(2*60)
	if !IsInRange(23*60, start, end) {
		t.Fatal("23:00 should be in 22:00-02:00")
	}
	if !IsInRange(60, start, end) {
		t.Fatal("01:00 should be in 22:00-02:00")
	}
	if IsInRange(12*60, start, end) {
		t.Fatal("12:00 should not be in 22:00-02:00")
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-03-15")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if d.Year != 2026 || d.Month != time.March || d.Day != 15 {
		t.Fatalf("unexpected date %v", d)
	}
	if d.String() != "2026-03-15" {
		t.Fatalf("round trip mismatch: %s", d.String())
	}
	if _, err := ParseDate("15/03/2026"); err == nil {
		t.Fatal("expected error for non-ISO format")
	}
}

func TestDate_Ordering(t *testing.T) {
	a, _ := ParseDate("2026-03-15")
	b, _ := ParseDate("2026-04-01")
	if !a.Before(b) || b.Before(a) {
		t.Fatal("expected a < b")
	}
	if a.Compare(a) != 0 {
		t.Fatal("expected a == a")
	}
}

func TestDate_Weekday(t *testing.T) {
	d, _ := ParseDate("2026-03-16")
	if d.Weekday() != time.Monday {
		t.Fatalf("2026-03-16 should be Monday, got %s", d.Weekday())
	}
}

func TestToUTC_AndBack(t *testing.T) {
	date, _ := ParseDate("2026-07-01")
	// 10:00 in New York is 14:00 UTC in July (EDT).
	utc, err := ToUTC(date, 10*60, "America/New_York")
	if err != nil {
		t.Fatalf("ToUTC: %v", err)
	}
	if utc.Hour() != 14 {
		t.Fatalf("expected 14:00 UTC, got %02d:%02d", utc.Hour(), utc.Minute())
	}
	back, err := ToLocalTime(utc, "America/New_York")
	if err != nil {
		t.Fatalf("ToLocalTime: %v", err)
	}
	if back != 10*60 {
		t.Fatalf("expected 10:00 local, got %s", back)
	}
}

func TestLoadLocation_Invalid(t *testing.T) {
	if _, err := LoadLocation("Not/AZone"); err == nil {
		t.Fatal("expected error for unknown zone")
	}
}
