package booking

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/FabioF7/TheBooker/internal/domain"
	"github.com/FabioF7/TheBooker/internal/temporal"
)

var svcNow = time.Date(2026, 3, 16, 8, 0, 0, 0, time.UTC)

type fixture struct {
	svc          *Service
	admin        *Admin
	appointments *fakeAppointmentStore
	tenant       *domain.Tenant
	provider     *domain.ServiceProvider
	service      *domain.Service
	date         temporal.Date
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	tenants := newFakeTenantStore()
	providers := newFakeProviderStore()
	services := newFakeServiceStore()
	overrides := newFakeOverrideStore()
	appointments := newFakeAppointmentStore()
	logger := testLogger()

	svc := NewService(tenants, providers, services, overrides, appointments, 10, logger).
		WithClock(func() time.Time { return svcNow })
	admin := NewAdmin(tenants, providers, services, overrides, logger).
		WithClock(func() time.Time { return svcNow })

	ctx := context.Background()
	tenant, err := admin.CreateTenant(ctx, "Acme Dental", "acme-dental", "America/New_York", 0)
	if err != nil {
		t.Fatalf("CreateTenant: %v", err)
	}
	catalog, err := admin.CreateService(ctx, "acme-dental", "Cleaning", 30, 80, "USD", "")
	if err != nil {
		t.Fatalf("CreateService: %v", err)
	}
	provider, err := admin.CreateProvider(ctx, "acme-dental", "Dr. Smith", "smith@acme.example")
	if err != nil {
		t.Fatalf("CreateProvider: %v", err)
	}
	if _, err := admin.AssignService(ctx, "acme-dental", provider.ID, catalog.ID); err != nil {
		t.Fatalf("AssignService: %v", err)
	}

	date, _ := temporal.ParseDate("2026-03-16") // Monday
	return &fixture{
		svc:          svc,
		admin:        admin,
		appointments: appointments,
		tenant:       tenant,
		provider:     provider,
		service:      catalog,
		date:         date,
	}
}

func (f *fixture) hold(t *testing.T, start temporal.TimeOfDay, session string) *domain.Appointment {
	t.Helper()
	appt, err := f.svc.HoldSlot(context.Background(), HoldRequest{
		TenantSlug: "acme-dental",
		ProviderID: f.provider.ID,
		ServiceID:  f.service.ID,
		Date:       f.date,
		StartTime:  start,
		SessionID:  session,
	})
	if err != nil {
		t.Fatalf("HoldSlot: %v", err)
	}
	return appt
}

func TestHoldSlot_HappyPath(t *testing.T) {
	f := newFixture(t)
	appt := f.hold(t, 9*60, "sess-1")

	if appt.Status != domain.StatusPending {
		t.Fatalf("expected pending, got %s", appt.Status)
	}
	if appt.EndTime != 9*60+30 {
		t.Fatalf("expected end 09:30, got %s", appt.EndTime)
	}
	if appt.ExpiresAtUTC == nil || !appt.ExpiresAtUTC.Equal(svcNow.Add(10*time.Minute)) {
		t.Fatalf("unexpected expiry %v", appt.ExpiresAtUTC)
	}
	types := f.appointments.eventTypes()
	if len(types) != 1 || types[0] != domain.EventAppointmentHeld {
		t.Fatalf("expected one held event, got %v", types)
	}
}

func TestHoldSlot_ConflictingSlot(t *testing.T) {
	f := newFixture(t)
	f.hold(t, 9*60, "sess-1")

	_, err := f.svc.HoldSlot(context.Background(), HoldRequest{
		TenantSlug: "acme-dental",
		ProviderID: f.provider.ID,
		ServiceID:  f.service.ID,
		Date:       f.date,
		StartTime:  9*60 + 15, // overlaps 09:00-09:30
		SessionID:  "sess-2",
	})
	if !errors.Is(err, domain.ErrSlotNotAvailable) {
		t.Fatalf("expected ErrSlotNotAvailable, got %v", err)
	}
}

func TestHoldSlot_ConcurrentHoldersGetOneWinner(t *testing.T) {
	f := newFixture(t)

	const holders = 16
	var wg sync.WaitGroup
	errs := make([]error, holders)
	for i := 0; i < holders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.HoldSlot(context.Background(), HoldRequest{
				TenantSlug: "acme-dental",
				ProviderID: f.provider.ID,
				ServiceID:  f.service.ID,
				Date:       f.date,
				StartTime:  10 * 60,
				SessionID:  "sess",
			})
		}(i)
	}
	wg.Wait()

	won := 0
	for _, err := range errs {
		switch {
		case err == nil:
			won++
		case errors.Is(err, domain.ErrSlotNotAvailable):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if won != 1 {
		t.Fatalf("expected exactly one winner, got %d", won)
	}
}

func TestHoldSlot_UnknownService(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.HoldSlot(context.Background(), HoldRequest{
		TenantSlug: "acme-dental",
		ProviderID: f.provider.ID,
		ServiceID:  uuid.New(),
		Date:       f.date,
		StartTime:  9 * 60,
		SessionID:  "sess",
	})
	if domain.KindOf(err) != domain.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestConfirm_HappyPath(t *testing.T) {
	f := newFixture(t)
	held := f.hold(t, 9*60, "sess-1")

	appt, err := f.svc.Confirm(context.Background(), ConfirmRequest{
		TenantSlug:    "acme-dental",
		AppointmentID: held.ID,
		SessionID:     "sess-1",
		CustomerName:  "Jane Doe",
		CustomerEmail: "jane@example.com",
	})
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if appt.Status != domain.StatusConfirmed {
		t.Fatalf("expected confirmed, got %s", appt.Status)
	}
	if appt.Customer == nil || appt.Customer.Email != "jane@example.com" {
		t.Fatalf("expected customer attached, got %v", appt.Customer)
	}

	stored, err := f.svc.GetAppointment(context.Background(), "acme-dental", held.ID)
	if err != nil {
		t.Fatalf("GetAppointment: %v", err)
	}
	if stored.Status != domain.StatusConfirmed {
		t.Fatalf("confirm not persisted, got %s", stored.Status)
	}
	types := f.appointments.eventTypes()
	if len(types) != 2 || types[1] != domain.EventAppointmentConfirmed {
		t.Fatalf("expected held then confirmed, got %v", types)
	}
}

func TestConfirm_WrongSession(t *testing.T) {
	f := newFixture(t)
	held := f.hold(t, 9*60, "sess-1")

	_, err := f.svc.Confirm(context.Background(), ConfirmRequest{
		TenantSlug:    "acme-dental",
		AppointmentID: held.ID,
		SessionID:     "someone-else",
		CustomerName:  "Jane Doe",
		CustomerEmail: "jane@example.com",
	})
	if !errors.Is(err, domain.ErrInvalidSessionID) {
		t.Fatalf("expected ErrInvalidSessionID, got %v", err)
	}
}

func TestConfirm_AfterLockExpiry(t *testing.T) {
	f := newFixture(t)
	held := f.hold(t, 9*60, "sess-1")

	f.svc.WithClock(func() time.Time { return svcNow.Add(11 * time.Minute) })
	_, err := f.svc.Confirm(context.Background(), ConfirmRequest{
		TenantSlug:    "acme-dental",
		AppointmentID: held.ID,
		SessionID:     "sess-1",
		CustomerName:  "Jane Doe",
		CustomerEmail: "jane@example.com",
	})
	if !errors.Is(err, domain.ErrLockExpired) {
		t.Fatalf("expected ErrLockExpired, got %v", err)
	}
}

func TestCancel_ThenSlotReopens(t *testing.T) {
	f := newFixture(t)
	held := f.hold(t, 9*60, "sess-1")

	appt, err := f.svc.Cancel(context.Background(), "acme-dental", held.ID, "ran out of time")
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if appt.Status != domain.StatusCancelled || appt.CancelReason != "ran out of time" {
		t.Fatalf("unexpected state %s / %q", appt.Status, appt.CancelReason)
	}

	// The slot can be held again.
	f.hold(t, 9*60, "sess-2")
}

func TestMarkNoShowAndComplete(t *testing.T) {
	f := newFixture(t)
	held := f.hold(t, 9*60, "sess-1")
	if _, err := f.svc.MarkNoShow(context.Background(), "acme-dental", held.ID); err == nil {
		t.Fatal("no-show from pending should fail")
	}

	if _, err := f.svc.Confirm(context.Background(), ConfirmRequest{
		TenantSlug:    "acme-dental",
		AppointmentID: held.ID,
		SessionID:     "sess-1",
		CustomerName:  "Jane Doe",
		CustomerEmail: "jane@example.com",
	}); err != nil {
		t.Fatalf("Confirm: %v", err)
	}

	appt, err := f.svc.Complete(context.Background(), "acme-dental", held.ID)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if appt.Status != domain.StatusCompleted {
		t.Fatalf("expected completed, got %s", appt.Status)
	}
}

func TestGetAvailability_ReflectsHolds(t *testing.T) {
	f := newFixture(t)
	f.hold(t, 10*60, "sess-1") // 10:00-10:30

	resp, err := f.svc.GetAvailability(context.Background(), "acme-dental", f.provider.ID, f.service.ID, f.date, 30)
	if err != nil {
		t.Fatalf("GetAvailability: %v", err)
	}
	if !resp.IsOpen {
		t.Fatalf("expected open day, got closed (%s)", resp.ClosedReason)
	}
	for _, s := range resp.Slots {
		want := s.Start != 10*60
		if s.IsAvailable != want {
			t.Fatalf("slot %s availability = %v, want %v", s.Start, s.IsAvailable, want)
		}
	}
}

func TestGetAvailability_UnknownTenant(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.GetAvailability(context.Background(), "nobody-here", f.provider.ID, f.service.ID, f.date, 0)
	if domain.KindOf(err) != domain.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAdmin_DuplicateSlug(t *testing.T) {
	f := newFixture(t)
	_, err := f.admin.CreateTenant(context.Background(), "Copycat", "acme-dental", "UTC", 0)
	if !errors.Is(err, domain.ErrSlugAlreadyExists) {
		t.Fatalf("expected ErrSlugAlreadyExists, got %v", err)
	}
}

func TestAdmin_OverlappingOverrideRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	start, _ := temporal.ParseDate("2026-12-24")
	end, _ := temporal.ParseDate("2026-12-26")

	if _, err := f.admin.CreateOverride(ctx, "acme-dental", OverrideRequest{
		StartDate: start,
		EndDate:   end,
		Type:      domain.OverrideClosed,
		Reason:    "Holidays",
	}); err != nil {
		t.Fatalf("CreateOverride: %v", err)
	}

	overlapStart, _ := temporal.ParseDate("2026-12-26")
	overlapEnd, _ := temporal.ParseDate("2026-12-28")
	_, err := f.admin.CreateOverride(ctx, "acme-dental", OverrideRequest{
		StartDate: overlapStart,
		EndDate:   overlapEnd,
		Type:      domain.OverrideClosed,
	})
	if !errors.Is(err, domain.ErrOverlappingOverride) {
		t.Fatalf("expected ErrOverlappingOverride, got %v", err)
	}

	// Same dates for a specific provider are a different scope.
	if _, err := f.admin.CreateOverride(ctx, "acme-dental", OverrideRequest{
		ProviderID: &f.provider.ID,
		StartDate:  overlapStart,
		EndDate:    overlapEnd,
		Type:       domain.OverrideClosed,
	}); err != nil {
		t.Fatalf("provider-scoped override should not collide: %v", err)
	}
}

func TestGetAvailability_TenantClosedOverride(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	if _, err := f.admin.CreateOverride(ctx, "acme-dental", OverrideRequest{
		StartDate: f.date,
		EndDate:   f.date,
		Type:      domain.OverrideClosed,
		Reason:    "Renovation",
	}); err != nil {
		t.Fatalf("CreateOverride: %v", err)
	}

	resp, err := f.svc.GetAvailability(ctx, "acme-dental", f.provider.ID, f.service.ID, f.date, 0)
	if err != nil {
		t.Fatalf("GetAvailability: %v", err)
	}
	if resp.IsOpen || resp.ClosedReason != "Renovation" {
		t.Fatalf("expected closed for renovation, got open=%v reason=%q", resp.IsOpen, resp.ClosedReason)
	}
}
