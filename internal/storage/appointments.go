package storage

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/FabioF7/TheBooker/internal/booking"
	"github.com/FabioF7/TheBooker/internal/domain"
	"github.com/FabioF7/TheBooker/internal/outbox"
	"github.com/FabioF7/TheBooker/internal/temporal"
	"github.com/FabioF7/TheBooker/libs/db"
)

// AppointmentRepository persists appointments and their lifecycle events.
// Every write that raises events commits the outbox rows in the same
// transaction.
type AppointmentRepository struct {
	pool   *db.Pool
	outbox *outbox.Repository
}

func NewAppointmentRepository(pool *db.Pool, ob *outbox.Repository) *AppointmentRepository {
	return &AppointmentRepository{pool: pool, outbox: ob}
}

const appointmentColumns = `id, tenant_id, provider_id, service_id, date, start_minute, end_minute, status,
	customer_name, customer_email, customer_phone, customer_notes,
	session_id, locked_at, expires_at, cancel_reason, created_at, modified_at`

func (r *AppointmentRepository) GetByID(ctx context.Context, tenantID, appointmentID uuid.UUID) (*domain.Appointment, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE id = $1 AND tenant_id = $2
	`, appointmentID, tenantID)
	return scanAppointment(row)
}

func (r *AppointmentRepository) ListForProviderDate(ctx context.Context, tenantID, providerID uuid.UUID, date temporal.Date) ([]*domain.Appointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE tenant_id = $1 AND provider_id = $2 AND date = $3
			AND status IN ('pending', 'confirmed')
		ORDER BY start_minute
	`, tenantID, providerID, date.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAppointments(rows)
}

func (r *AppointmentRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID, q booking.AppointmentQuery) ([]*domain.Appointment, error) {
	sql := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE tenant_id = $1`
	args := []any{tenantID}
	if q.ProviderID != nil {
		args = append(args, *q.ProviderID)
		sql += ` AND provider_id = $` + strconv.Itoa(len(args))
	}
	if q.From != nil {
		args = append(args, q.From.String())
		sql += ` AND date >= $` + strconv.Itoa(len(args))
	}
	if q.To != nil {
		args = append(args, q.To.String())
		sql += ` AND date <= $` + strconv.Itoa(len(args))
	}
	if q.Status != nil {
		args = append(args, string(*q.Status))
		sql += ` AND status = $` + strconv.Itoa(len(args))
	}
	limit := q.Limit
	if limit <= 0 {
		limit = 100
	}
	args = append(args, limit)
	sql += ` ORDER BY date DESC, start_minute DESC LIMIT $` + strconv.Itoa(len(args))

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAppointments(rows)
}

func (r *AppointmentRepository) Insert(ctx context.Context, a *domain.Appointment, events []domain.Event) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO appointments
			(id, tenant_id, provider_id, service_id, date, start_minute, end_minute, status,
			 session_id, locked_at, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, a.ID, a.TenantID, a.ProviderID, a.ServiceID, a.Date.String(), int(a.StartTime), int(a.EndTime),
		string(a.Status), a.SessionID, a.LockedAtUTC, a.ExpiresAtUTC, a.CreatedAtUTC)
	if IsConflict(err) {
		return domain.ErrSlotNotAvailable
	}
	if err != nil {
		return err
	}
	if err := r.outbox.InsertEvents(ctx, tx, events); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *AppointmentRepository) Update(ctx context.Context, a *domain.Appointment, events []domain.Event) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var name, email, phone, notes *string
	if a.Customer != nil {
		e := string(a.Customer.Email)
		name, email, phone, notes = &a.Customer.Name, &e, &a.Customer.Phone, &a.Customer.Notes
	}
	tag, err := tx.Exec(ctx, `
		UPDATE appointments
		SET status = $3,
			customer_name = $4,
			customer_email = $5,
			customer_phone = $6,
			customer_notes = $7,
			session_id = $8,
			locked_at = $9,
			expires_at = $10,
			cancel_reason = $11,
			modified_at = $12
		WHERE id = $1 AND tenant_id = $2
	`, a.ID, a.TenantID, string(a.Status), name, email, phone, notes,
		a.SessionID, a.LockedAtUTC, a.ExpiresAtUTC, a.CancelReason, a.ModifiedAtUTC)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFound("Appointment", a.ID)
	}
	if err := r.outbox.InsertEvents(ctx, tx, events); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// HasConflict applies the buffer after each existing appointment's end, never
// before a candidate's start, and ignores pending holds whose lock already
// lapsed.
func (r *AppointmentRepository) HasConflict(ctx context.Context, tenantID, providerID uuid.UUID, date temporal.Date, start, end temporal.TimeOfDay, bufferMinutes int, excludeID uuid.UUID, now time.Time) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1
			FROM appointments
			WHERE tenant_id = $1
				AND provider_id = $2
				AND date = $3
				AND id <> $4
				AND (status = 'confirmed' OR (status = 'pending' AND expires_at > $5))
				AND $6 < end_minute + $8
				AND $7 > start_minute
		)
	`, tenantID, providerID, date.String(), excludeID, now, int(start), int(end), bufferMinutes).Scan(&exists)
	return exists, err
}

// CancelExpired sweeps lapsed pending holds in one statement and records an
// expiry event per released slot, all in one transaction. Safe to re-run:
// already cancelled rows no longer match.
func (r *AppointmentRepository) CancelExpired(ctx context.Context, now time.Time) (int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	rows, err := tx.Query(ctx, `
		UPDATE appointments
		SET status = 'cancelled',
			cancel_reason = $2,
			session_id = '',
			locked_at = NULL,
			expires_at = NULL,
			modified_at = $1
		WHERE status = 'pending' AND expires_at < $1
		RETURNING id, tenant_id, provider_id, date, start_minute
	`, now, domain.SweepCancelReason)
	if err != nil {
		return 0, err
	}

	var events []domain.Event
	for rows.Next() {
		var (
			id, tenantID, providerID uuid.UUID
			date                     time.Time
			startMinute              int
		)
		if err := rows.Scan(&id, &tenantID, &providerID, &date, &startMinute); err != nil {
			rows.Close()
			return 0, err
		}
		events = append(events, domain.Event{
			Type:        domain.EventAppointmentExpired,
			AggregateID: id,
			Data: map[string]any{
				"tenantId":   tenantID.String(),
				"providerId": providerID.String(),
				"date":       temporal.DateOf(date).String(),
				"startTime":  temporal.TimeOfDay(startMinute).String(),
			},
		})
	}
	if rows.Err() != nil {
		rows.Close()
		return 0, rows.Err()
	}
	rows.Close()

	if err := r.outbox.InsertEvents(ctx, tx, events); err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return len(events), nil
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var (
		a                         domain.Appointment
		date                      time.Time
		startMinute, endMinute    int
		status                    string
		name, email, phone, notes *string
		modifiedAt                *time.Time
	)
	err := row.Scan(&a.ID, &a.TenantID, &a.ProviderID, &a.ServiceID, &date, &startMinute, &endMinute, &status,
		&name, &email, &phone, &notes, &a.SessionID, &a.LockedAtUTC, &a.ExpiresAtUTC, &a.CancelReason, &a.CreatedAtUTC, &modifiedAt)
	if IsNotFound(err) {
		return nil, domain.NewNotFound("Appointment", "")
	}
	if err != nil {
		return nil, err
	}
	a.Date = temporal.DateOf(date)
	a.StartTime = temporal.TimeOfDay(startMinute)
	a.EndTime = temporal.TimeOfDay(endMinute)
	a.Status = domain.Status(status)
	if name != nil {
		a.Customer = &domain.CustomerInfo{
			Name:  *name,
			Email: domain.Email(deref(email)),
			Phone: deref(phone),
			Notes: deref(notes),
		}
	}
	if modifiedAt != nil {
		a.ModifiedAtUTC = *modifiedAt
	}
	return &a, nil
}

func scanAppointments(rows pgx.Rows) ([]*domain.Appointment, error) {
	var appts []*domain.Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		appts = append(appts, a)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return appts, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

