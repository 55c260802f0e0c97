package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/FabioF7/TheBooker/internal/temporal"
)

func TestParseSlug(t *testing.T) {
	cases := []struct {
		in      string
		want    Slug
		wantErr bool
	}{
		{"acme-dental", "acme-dental", false},
		{"  Acme-Dental  ", "acme-dental", false},
		{"ab", "", true},
		{"has spaces", "", true},
		{"-leading", "", true},
		{"double--hyphen", "", true},
	}
	for _, c := range cases {
		got, err := ParseSlug(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParseSlug(%q): expected error, got %q", c.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseSlug(%q): %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseSlug(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSlugFromName(t *testing.T) {
	s, err := SlugFromName("Bob's Barber Shop!")
	if err != nil {
		t.Fatalf("SlugFromName: %v", err)
	}
	if s != "bob-s-barber-shop" {
		t.Fatalf("unexpected slug %q", s)
	}
}

func TestParseEmail(t *testing.T) {
	e, err := ParseEmail("  Jane.Doe@Example.COM ")
	if err != nil {
		t.Fatalf("ParseEmail: %v", err)
	}
	if e != "jane.doe@example.com" {
		t.Fatalf("expected lowercased address, got %q", e)
	}
	for _, bad := range []string{"", "nope", "a@b", "@example.com"} {
		if _, err := ParseEmail(bad); err == nil {
			t.Errorf("ParseEmail(%q): expected error", bad)
		}
	}
}

func TestNewMoney(t *testing.T) {
	m, err := NewMoney(49.99, "usd")
	if err != nil {
		t.Fatalf("NewMoney: %v", err)
	}
	if m.Cents != 4999 || m.Currency != "USD" {
		t.Fatalf("unexpected money %+v", m)
	}
	if _, err := NewMoney(-1, "USD"); err == nil {
		t.Fatal("expected error for negative amount")
	}
	if _, err := NewMoney(1, "dollars"); err == nil {
		t.Fatal("expected error for bad currency code")
	}
}

func TestMoney_Add(t *testing.T) {
	a, _ := NewMoney(10, "USD")
	b, _ := NewMoney(2.50, "USD")
	sum, err := a.Add(b)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if sum.Cents != 1250 {
		t.Fatalf("expected 1250 cents, got %d", sum.Cents)
	}
	c, _ := NewMoney(1, "EUR")
	if _, err := a.Add(c); err == nil {
		t.Fatal("expected currency mismatch error")
	}
}

func TestNewBusinessHours(t *testing.T) {
	open := OpenDay(9*60, 17*60)
	if _, err := NewBusinessHours(open, open, open, open, open, ClosedDay(), ClosedDay()); err != nil {
		t.Fatalf("valid hours rejected: %v", err)
	}

	allClosed := ClosedDay()
	if _, err := NewBusinessHours(allClosed, allClosed, allClosed, allClosed, allClosed, allClosed, allClosed); err == nil {
		t.Fatal("expected error when every day is closed")
	}

	inverted := OpenDay(17*60, 9*60)
	if _, err := NewBusinessHours(inverted, open, open, open, open, allClosed, allClosed); err == nil {
		t.Fatal("expected error for close before open")
	}
}

func TestTimeRange_Overlaps(t *testing.T) {
	a, _ := NewTimeRange(9*60, 10*60)
	b, _ := NewTimeRange(10*60, 11*60)
	if a.Overlaps(b) {
		t.Fatal("adjacent ranges should not overlap")
	}
	c, _ := NewTimeRange(9*60+30, 10*60+30)
	if !a.Overlaps(c) {
		t.Fatal("expected overlap")
	}
}

func TestNewTenant(t *testing.T) {
	now := time.Date(2026, 3, 16, 12, 0, 0, 0, time.UTC)
	tn, err := NewTenant("Acme Dental", "acme-dental", "America/New_York", 15, now)
	if err != nil {
		t.Fatalf("NewTenant: %v", err)
	}
	if !tn.IsActive || tn.BufferMinutes != 15 {
		t.Fatalf("unexpected tenant %+v", tn)
	}
	monday := tn.Hours.Monday
	if !monday.IsOpen || *monday.Open != 9*60 || *monday.Close != 17*60 {
		t.Fatalf("expected default Mon 09:00-17:00, got %+v", monday)
	}

	if _, err := NewTenant("X", "acme-dental", "Mars/Olympus", 0, now); err == nil {
		t.Fatal("expected error for bad timezone")
	}
	if _, err := NewTenant("X", "acme-dental", "UTC", 121, now); err == nil {
		t.Fatal("expected error for buffer over 120")
	}
}

func TestProvider_EffectiveHours(t *testing.T) {
	now := time.Date(2026, 3, 16, 12, 0, 0, 0, time.UTC)
	tn, _ := NewTenant("Acme", "acme-dental", "UTC", 0, now)
	p, err := NewServiceProvider(tn.ID, "Dr. Smith", "", nil, now)
	if err != nil {
		t.Fatalf("NewServiceProvider: %v", err)
	}
	if p.EffectiveHours(tn).Monday != tn.Hours.Monday {
		t.Fatal("expected tenant hours when no custom hours set")
	}

	custom, _ := NewBusinessHours(OpenDay(10*60, 14*60), ClosedDay(), ClosedDay(), ClosedDay(), ClosedDay(), ClosedDay(), ClosedDay())
	p.SetCustomHours(custom, now)
	if got := p.EffectiveHours(tn).Monday; *got.Open != 10*60 {
		t.Fatalf("expected custom hours, got %+v", got)
	}
	p.ClearCustomHours(now)
	if p.CustomHours != nil {
		t.Fatal("expected custom hours cleared")
	}
}

func TestProvider_AssignService(t *testing.T) {
	now := time.Date(2026, 3, 16, 12, 0, 0, 0, time.UTC)
	tenantID := uuid.New()
	p, _ := NewServiceProvider(tenantID, "Dr. Smith", "", nil, now)
	svc, err := NewService(tenantID, "Cleaning", 30, 80, "USD", "", now)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	p.AssignService(svc, now)
	p.AssignService(svc, now)
	if len(p.Services) != 1 {
		t.Fatalf("assign should be idempotent, got %d services", len(p.Services))
	}
	if p.FindService(svc.ID) == nil {
		t.Fatal("expected to find assigned service")
	}
	p.RemoveService(svc.ID, now)
	if len(p.Services) != 0 {
		t.Fatal("expected service removed")
	}
}

func TestNewService_DurationBounds(t *testing.T) {
	now := time.Date(2026, 3, 16, 12, 0, 0, 0, time.UTC)
	if _, err := NewService(uuid.New(), "Quick", 4, 0, "USD", "", now); err == nil {
		t.Fatal("expected error below 5 minutes")
	}
	if _, err := NewService(uuid.New(), "Marathon", 481, 0, "USD", "", now); err == nil {
		t.Fatal("expected error above 480 minutes")
	}
}

func TestScheduleOverride_Applicability(t *testing.T) {
	now := time.Date(2026, 3, 16, 12, 0, 0, 0, time.UTC)
	start, _ := temporal.ParseDate("2026-12-24")
	end, _ := temporal.ParseDate("2026-12-26")

	ov, err := NewClosedOverride(uuid.New(), nil, start, end, "Holidays", now)
	if err != nil {
		t.Fatalf("NewClosedOverride: %v", err)
	}
	inside, _ := temporal.ParseDate("2026-12-25")
	outside, _ := temporal.ParseDate("2026-12-27")
	if !ov.AppliesToDate(start) || !ov.AppliesToDate(inside) || !ov.AppliesToDate(end) {
		t.Fatal("inclusive range should cover start, middle and end")
	}
	if ov.AppliesToDate(outside) {
		t.Fatal("date past the range should not apply")
	}
	if !ov.AppliesToProvider(uuid.New()) {
		t.Fatal("tenant-wide override should cover every provider")
	}

	providerID := uuid.New()
	scoped, _ := NewModifiedHoursOverride(uuid.New(), &providerID, start, end, 10*60, 14*60, "", now)
	if scoped.AppliesToProvider(uuid.New()) {
		t.Fatal("provider-scoped override should not cover other providers")
	}
	if !scoped.AppliesToProvider(providerID) {
		t.Fatal("provider-scoped override should cover its provider")
	}

	if _, err := NewClosedOverride(uuid.New(), nil, end, start, "", now); err == nil {
		t.Fatal("expected error for end before start")
	}
	if _, err := NewModifiedHoursOverride(uuid.New(), nil, start, end, 14*60, 10*60, "", now); err == nil {
		t.Fatal("expected error for close before open")
	}
}
