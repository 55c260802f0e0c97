package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/FabioF7/TheBooker/internal/booking"
	"github.com/FabioF7/TheBooker/internal/domain"
	"github.com/FabioF7/TheBooker/internal/temporal"
)

// BookingHandler serves the public booking flow: availability, hold, confirm
// and cancel.
type BookingHandler struct {
	svc    *booking.Service
	logger *slog.Logger
}

func NewBookingHandler(svc *booking.Service, logger *slog.Logger) *BookingHandler {
	return &BookingHandler{svc: svc, logger: logger}
}

// Availability handles GET /api/v1/tenants/{slug}/availability.
func (h *BookingHandler) Availability(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	providerID, ok := parseUUIDParam(w, r, h.logger, "providerId")
	if !ok {
		return
	}
	serviceID, ok := parseUUIDParam(w, r, h.logger, "serviceId")
	if !ok {
		return
	}
	date, err := temporal.ParseDate(strings.TrimSpace(r.URL.Query().Get("date")))
	if err != nil {
		writeError(w, r, h.logger, domain.NewValidation("Availability.InvalidDate",
			"date must be in YYYY-MM-DD format."))
		return
	}
	interval := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("slotIntervalMinutes")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 240 {
			writeError(w, r, h.logger, domain.NewValidation("Availability.InvalidSlotInterval",
				"slotIntervalMinutes must be a positive number of minutes."))
			return
		}
		interval = n
	}

	resp, err := h.svc.GetAvailability(r.Context(), slug, providerID, serviceID, date, interval)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

type holdRequest struct {
	ProviderID string `json:"providerId"`
	ServiceID  string `json:"serviceId"`
	Date       string `json:"date"`
	StartTime  string `json:"startTime"`
	SessionID  string `json:"sessionId"`
}

type holdResponse struct {
	appointmentBody
	SessionID string `json:"sessionId"`
}

// Hold handles POST /api/v1/tenants/{slug}/appointments/hold.
func (h *BookingHandler) Hold(w http.ResponseWriter, r *http.Request) {
	var req holdRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, h.logger, errInvalidJSON)
		return
	}
	providerID, err := uuid.Parse(strings.TrimSpace(req.ProviderID))
	if err != nil {
		writeError(w, r, h.logger, domain.NewValidation("Appointment.InvalidProviderId", "providerId must be a UUID."))
		return
	}
	serviceID, err := uuid.Parse(strings.TrimSpace(req.ServiceID))
	if err != nil {
		writeError(w, r, h.logger, domain.NewValidation("Appointment.InvalidServiceId", "serviceId must be a UUID."))
		return
	}
	date, err := temporal.ParseDate(strings.TrimSpace(req.Date))
	if err != nil {
		writeError(w, r, h.logger, domain.NewValidation("Appointment.InvalidDate", "date must be in YYYY-MM-DD format."))
		return
	}
	start, err := temporal.ParseTimeOfDay(strings.TrimSpace(req.StartTime))
	if err != nil {
		writeError(w, r, h.logger, domain.NewValidation("Appointment.InvalidStartTime", "startTime must be in HH:MM format."))
		return
	}

	appt, err := h.svc.HoldSlot(r.Context(), booking.HoldRequest{
		TenantSlug: r.PathValue("slug"),
		ProviderID: providerID,
		ServiceID:  serviceID,
		Date:       date,
		StartTime:  start,
		SessionID:  req.SessionID,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, holdResponse{
		appointmentBody: appointmentToBody(appt),
		SessionID:       appt.SessionID,
	})
}

type confirmRequest struct {
	SessionID     string `json:"sessionId"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	CustomerPhone string `json:"customerPhone"`
	Notes         string `json:"notes"`
}

// Confirm handles POST /api/v1/tenants/{slug}/appointments/{id}/confirm.
func (h *BookingHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	appointmentID, ok := parsePathUUID(w, r, h.logger)
	if !ok {
		return
	}
	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, h.logger, errInvalidJSON)
		return
	}

	appt, err := h.svc.Confirm(r.Context(), booking.ConfirmRequest{
		TenantSlug:    r.PathValue("slug"),
		AppointmentID: appointmentID,
		SessionID:     req.SessionID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Notes:         req.Notes,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, appointmentToBody(appt))
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

// Cancel handles POST /api/v1/tenants/{slug}/appointments/{id}/cancel.
func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	appointmentID, ok := parsePathUUID(w, r, h.logger)
	if !ok {
		return
	}
	var req cancelRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	appt, err := h.svc.Cancel(r.Context(), r.PathValue("slug"), appointmentID, req.Reason)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, appointmentToBody(appt))
}

// Get handles GET /api/v1/tenants/{slug}/appointments/{id}.
func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	appointmentID, ok := parsePathUUID(w, r, h.logger)
	if !ok {
		return
	}
	appt, err := h.svc.GetAppointment(r.Context(), r.PathValue("slug"), appointmentID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, appointmentToBody(appt))
}

// List handles GET /api/v1/tenants/{slug}/appointments.
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	q := booking.AppointmentQuery{}
	if raw := strings.TrimSpace(r.URL.Query().Get("providerId")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, r, h.logger, domain.NewValidation("Appointment.InvalidProviderId", "providerId must be a UUID."))
			return
		}
		q.ProviderID = &id
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("from")); raw != "" {
		d, err := temporal.ParseDate(raw)
		if err != nil {
			writeError(w, r, h.logger, domain.NewValidation("Appointment.InvalidDate", "from must be in YYYY-MM-DD format."))
			return
		}
		q.From = &d
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("to")); raw != "" {
		d, err := temporal.ParseDate(raw)
		if err != nil {
			writeError(w, r, h.logger, domain.NewValidation("Appointment.InvalidDate", "to must be in YYYY-MM-DD format."))
			return
		}
		q.To = &d
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
		st := domain.Status(raw)
		if !st.Valid() {
			writeError(w, r, h.logger, domain.NewValidation("Appointment.InvalidStatus", "Unknown appointment status."))
			return
		}
		q.Status = &st
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 500 {
			q.Limit = n
		}
	}

	appts, err := h.svc.ListAppointments(r.Context(), r.PathValue("slug"), q)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	items := make([]appointmentBody, 0, len(appts))
	for _, a := range appts {
		items = append(items, appointmentToBody(a))
	}
	writeJSON(w, http.StatusOK, items)
}

// NoShow handles POST /api/v1/tenants/{slug}/appointments/{id}/no-show.
func (h *BookingHandler) NoShow(w http.ResponseWriter, r *http.Request) {
	h.simpleTransition(w, r, h.svc.MarkNoShow)
}

// Complete handles POST /api/v1/tenants/{slug}/appointments/{id}/complete.
func (h *BookingHandler) Complete(w http.ResponseWriter, r *http.Request) {
	h.simpleTransition(w, r, h.svc.Complete)
}

func (h *BookingHandler) simpleTransition(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, slug string, id uuid.UUID) (*domain.Appointment, error)) {
	appointmentID, ok := parsePathUUID(w, r, h.logger)
	if !ok {
		return
	}
	appt, err := op(r.Context(), r.PathValue("slug"), appointmentID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, appointmentToBody(appt))
}

var errInvalidJSON = domain.NewValidation("Request.InvalidJson", "Request body must be valid JSON.")

func parsePathUUID(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, r, logger, domain.NewValidation("Request.InvalidId", "id must be a UUID."))
		return uuid.Nil, false
	}
	return id, true
}

func parseUUIDParam(w http.ResponseWriter, r *http.Request, logger *slog.Logger, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(r.URL.Query().Get(name)))
	if err != nil {
		writeError(w, r, logger, domain.NewValidation("Request.InvalidParam",
			name+" must be a UUID."))
		return uuid.Nil, false
	}
	return id, true
}
