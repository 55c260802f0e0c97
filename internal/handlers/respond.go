// Package handlers exposes the booking and management HTTP APIs.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/FabioF7/TheBooker/internal/domain"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError maps domain error kinds onto HTTP statuses: validation 400,
// not found 404, conflict 409, everything else 500 with the detail hidden.
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var status int
	switch domain.KindOf(err) {
	case domain.KindValidation:
		status = http.StatusBadRequest
	case domain.KindNotFound:
		status = http.StatusNotFound
	case domain.KindConflict:
		status = http.StatusConflict
	default:
		logger.ErrorContext(r.Context(), "request failed",
			"method", r.Method, "path", r.URL.Path, "err", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{
			Code:    "Internal",
			Message: "An internal error occurred.",
		})
		return
	}

	var derr *domain.Error
	body := errorBody{Code: "Unknown", Message: err.Error()}
	if errors.As(err, &derr) {
		body = errorBody{Code: derr.Code, Message: derr.Message}
	}
	writeJSON(w, status, body)
}

type appointmentBody struct {
	ID           string `json:"id"`
	ProviderID   string `json:"providerId"`
	ServiceID    string `json:"serviceId"`
	Date         string `json:"date"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	Status       string `json:"status"`
	CustomerName string `json:"customerName,omitempty"`
	ExpiresAt    string `json:"expiresAt,omitempty"`
	CancelReason string `json:"cancelReason,omitempty"`
}

func appointmentToBody(a *domain.Appointment) appointmentBody {
	body := appointmentBody{
		ID:           a.ID.String(),
		ProviderID:   a.ProviderID.String(),
		ServiceID:    a.ServiceID.String(),
		Date:         a.Date.String(),
		StartTime:    a.StartTime.String(),
		EndTime:      a.EndTime.String(),
		Status:       string(a.Status),
		CancelReason: a.CancelReason,
	}
	if a.Customer != nil {
		body.CustomerName = a.Customer.Name
	}
	if a.ExpiresAtUTC != nil {
		body.ExpiresAt = a.ExpiresAtUTC.UTC().Format(time.RFC3339)
	}
	return body
}
