package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/FabioF7/TheBooker/internal/booking"
	"github.com/FabioF7/TheBooker/internal/domain"
	"github.com/FabioF7/TheBooker/internal/temporal"
)

// AdminHandler serves the management API: tenants, catalogs, providers and
// schedule overrides.
type AdminHandler struct {
	admin  *booking.Admin
	logger *slog.Logger
}

func NewAdminHandler(admin *booking.Admin, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{admin: admin, logger: logger}
}

type createTenantRequest struct {
	Name          string `json:"name"`
	Slug          string `json:"slug"`
	TimeZone      string `json:"timeZone"`
	BufferMinutes int    `json:"bufferMinutes"`
}

type tenantBody struct {
	ID            string               `json:"id"`
	Slug          string               `json:"slug"`
	Name          string               `json:"name"`
	TimeZone      string               `json:"timeZone"`
	Hours         domain.BusinessHours `json:"businessHours"`
	BufferMinutes int                  `json:"bufferMinutes"`
	IsActive      bool                 `json:"isActive"`
}

func tenantToBody(t *domain.Tenant) tenantBody {
	return tenantBody{
		ID:            t.ID.String(),
		Slug:          string(t.Slug),
		Name:          t.Name,
		TimeZone:      t.TimeZoneID,
		Hours:         t.Hours,
		BufferMinutes: t.BufferMinutes,
		IsActive:      t.IsActive,
	}
}

// CreateTenant handles POST /api/v1/tenants.
func (h *AdminHandler) CreateTenant(w http.ResponseWriter, r *http.Request) {
	var req createTenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, h.logger, errInvalidJSON)
		return
	}
	tenant, err := h.admin.CreateTenant(r.Context(), req.Name, req.Slug, req.TimeZone, req.BufferMinutes)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, tenantToBody(tenant))
}

// GetTenant handles GET /api/v1/tenants/{slug}.
func (h *AdminHandler) GetTenant(w http.ResponseWriter, r *http.Request) {
	tenant, err := h.admin.GetTenant(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, tenantToBody(tenant))
}

// UpdateTenantHours handles PUT /api/v1/tenants/{slug}/hours.
func (h *AdminHandler) UpdateTenantHours(w http.ResponseWriter, r *http.Request) {
	hours, ok := decodeHours(w, r, h.logger)
	if !ok {
		return
	}
	tenant, err := h.admin.UpdateTenantHours(r.Context(), r.PathValue("slug"), hours)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, tenantToBody(tenant))
}

type updateBufferRequest struct {
	BufferMinutes int `json:"bufferMinutes"`
}

// UpdateTenantBuffer handles PUT /api/v1/tenants/{slug}/buffer.
func (h *AdminHandler) UpdateTenantBuffer(w http.ResponseWriter, r *http.Request) {
	var req updateBufferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, h.logger, errInvalidJSON)
		return
	}
	tenant, err := h.admin.UpdateTenantBuffer(r.Context(), r.PathValue("slug"), req.BufferMinutes)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, tenantToBody(tenant))
}

type createServiceRequest struct {
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
	Currency        string  `json:"currency"`
	Description     string  `json:"description"`
}

type serviceBody struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description,omitempty"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
	Currency        string  `json:"currency"`
	IsActive        bool    `json:"isActive"`
}

func serviceToBody(s *domain.Service) serviceBody {
	return serviceBody{
		ID:              s.ID.String(),
		Name:            s.Name,
		Description:     s.Description,
		DurationMinutes: s.DurationMinutes,
		Price:           s.Price.Amount(),
		Currency:        s.Price.Currency,
		IsActive:        s.IsActive,
	}
}

// CreateService handles POST /api/v1/tenants/{slug}/services.
func (h *AdminHandler) CreateService(w http.ResponseWriter, r *http.Request) {
	var req createServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, h.logger, errInvalidJSON)
		return
	}
	svc, err := h.admin.CreateService(r.Context(), r.PathValue("slug"), req.Name, req.DurationMinutes, req.Price, req.Currency, req.Description)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, serviceToBody(svc))
}

// ListServices handles GET /api/v1/tenants/{slug}/services.
func (h *AdminHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.admin.ListServices(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	items := make([]serviceBody, 0, len(services))
	for _, s := range services {
		items = append(items, serviceToBody(s))
	}
	writeJSON(w, http.StatusOK, items)
}

type createProviderRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type providerBody struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	Email       string                `json:"email,omitempty"`
	CustomHours *domain.BusinessHours `json:"customHours,omitempty"`
	IsActive    bool                  `json:"isActive"`
	Services    []serviceBody         `json:"services"`
}

func providerToBody(p *domain.ServiceProvider) providerBody {
	body := providerBody{
		ID:          p.ID.String(),
		Name:        p.Name,
		Email:       string(p.Email),
		CustomHours: p.CustomHours,
		IsActive:    p.IsActive,
		Services:    make([]serviceBody, 0, len(p.Services)),
	}
	for _, s := range p.Services {
		body.Services = append(body.Services, serviceToBody(s))
	}
	return body
}

// CreateProvider handles POST /api/v1/tenants/{slug}/providers.
func (h *AdminHandler) CreateProvider(w http.ResponseWriter, r *http.Request) {
	var req createProviderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, h.logger, errInvalidJSON)
		return
	}
	provider, err := h.admin.CreateProvider(r.Context(), r.PathValue("slug"), req.Name, req.Email)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, providerToBody(provider))
}

// ListProviders handles GET /api/v1/tenants/{slug}/providers.
func (h *AdminHandler) ListProviders(w http.ResponseWriter, r *http.Request) {
	providers, err := h.admin.ListProviders(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	items := make([]providerBody, 0, len(providers))
	for _, p := range providers {
		items = append(items, providerToBody(p))
	}
	writeJSON(w, http.StatusOK, items)
}

// AssignService handles POST /api/v1/tenants/{slug}/providers/{id}/services/{serviceId}.
func (h *AdminHandler) AssignService(w http.ResponseWriter, r *http.Request) {
	providerID, ok := parsePathUUID(w, r, h.logger)
	if !ok {
		return
	}
	serviceID, err := uuid.Parse(r.PathValue("serviceId"))
	if err != nil {
		writeError(w, r, h.logger, domain.NewValidation("Request.InvalidId", "serviceId must be a UUID."))
		return
	}
	provider, err := h.admin.AssignService(r.Context(), r.PathValue("slug"), providerID, serviceID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, providerToBody(provider))
}

// RemoveService handles DELETE /api/v1/tenants/{slug}/providers/{id}/services/{serviceId}.
func (h *AdminHandler) RemoveService(w http.ResponseWriter, r *http.Request) {
	providerID, ok := parsePathUUID(w, r, h.logger)
	if !ok {
		return
	}
	serviceID, err := uuid.Parse(r.PathValue("serviceId"))
	if err != nil {
		writeError(w, r, h.logger, domain.NewValidation("Request.InvalidId", "serviceId must be a UUID."))
		return
	}
	provider, err := h.admin.RemoveService(r.Context(), r.PathValue("slug"), providerID, serviceID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, providerToBody(provider))
}

// SetProviderHours handles PUT /api/v1/tenants/{slug}/providers/{id}/hours.
func (h *AdminHandler) SetProviderHours(w http.ResponseWriter, r *http.Request) {
	providerID, ok := parsePathUUID(w, r, h.logger)
	if !ok {
		return
	}
	hours, ok := decodeHours(w, r, h.logger)
	if !ok {
		return
	}
	provider, err := h.admin.SetProviderHours(r.Context(), r.PathValue("slug"), providerID, hours)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, providerToBody(provider))
}

// ClearProviderHours handles DELETE /api/v1/tenants/{slug}/providers/{id}/hours.
func (h *AdminHandler) ClearProviderHours(w http.ResponseWriter, r *http.Request) {
	providerID, ok := parsePathUUID(w, r, h.logger)
	if !ok {
		return
	}
	provider, err := h.admin.ClearProviderHours(r.Context(), r.PathValue("slug"), providerID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, providerToBody(provider))
}

type createOverrideRequest struct {
	ProviderID string `json:"providerId,omitempty"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	Type       string `json:"type"`
	OpenTime   string `json:"openTime,omitempty"`
	CloseTime  string `json:"closeTime,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

type overrideBody struct {
	ID         string `json:"id"`
	ProviderID string `json:"providerId,omitempty"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	Type       string `json:"type"`
	OpenTime   string `json:"openTime,omitempty"`
	CloseTime  string `json:"closeTime,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

func overrideToBody(o *domain.ScheduleOverride) overrideBody {
	body := overrideBody{
		ID:        o.ID.String(),
		StartDate: o.StartDate.String(),
		EndDate:   o.EndDate.String(),
		Type:      string(o.Type),
		Reason:    o.Reason,
	}
	if o.ProviderID != nil {
		body.ProviderID = o.ProviderID.String()
	}
	if o.Hours != nil {
		body.OpenTime = o.Hours.Start.String()
		body.CloseTime = o.Hours.End.String()
	}
	return body
}

// CreateOverride handles POST /api/v1/tenants/{slug}/overrides.
func (h *AdminHandler) CreateOverride(w http.ResponseWriter, r *http.Request) {
	var req createOverrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, h.logger, errInvalidJSON)
		return
	}

	adminReq := booking.OverrideRequest{
		Type:   domain.OverrideType(strings.TrimSpace(req.Type)),
		Reason: req.Reason,
	}
	if raw := strings.TrimSpace(req.ProviderID); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, r, h.logger, domain.NewValidation("Request.InvalidId", "providerId must be a UUID."))
			return
		}
		adminReq.ProviderID = &id
	}
	var err error
	if adminReq.StartDate, err = temporal.ParseDate(strings.TrimSpace(req.StartDate)); err != nil {
		writeError(w, r, h.logger, domain.NewValidation("ScheduleOverride.InvalidDate", "startDate must be in YYYY-MM-DD format."))
		return
	}
	if adminReq.EndDate, err = temporal.ParseDate(strings.TrimSpace(req.EndDate)); err != nil {
		writeError(w, r, h.logger, domain.NewValidation("ScheduleOverride.InvalidDate", "endDate must be in YYYY-MM-DD format."))
		return
	}
	if req.OpenTime != "" || req.CloseTime != "" {
		open, err := temporal.ParseTimeOfDay(strings.TrimSpace(req.OpenTime))
		if err != nil {
			writeError(w, r, h.logger, domain.NewValidation("ScheduleOverride.InvalidTime", "openTime must be in HH:MM format."))
			return
		}
		closeT, err := temporal.ParseTimeOfDay(strings.TrimSpace(req.CloseTime))
		if err != nil {
			writeError(w, r, h.logger, domain.NewValidation("ScheduleOverride.InvalidTime", "closeTime must be in HH:MM format."))
			return
		}
		adminReq.Open, adminReq.Close = &open, &closeT
	}

	override, err := h.admin.CreateOverride(r.Context(), r.PathValue("slug"), adminReq)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, overrideToBody(override))
}

// ListOverrides handles GET /api/v1/tenants/{slug}/overrides.
func (h *AdminHandler) ListOverrides(w http.ResponseWriter, r *http.Request) {
	overrides, err := h.admin.ListOverrides(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	items := make([]overrideBody, 0, len(overrides))
	for _, o := range overrides {
		items = append(items, overrideToBody(o))
	}
	writeJSON(w, http.StatusOK, items)
}

// DeleteOverride handles DELETE /api/v1/tenants/{slug}/overrides/{id}.
func (h *AdminHandler) DeleteOverride(w http.ResponseWriter, r *http.Request) {
	overrideID, ok := parsePathUUID(w, r, h.logger)
	if !ok {
		return
	}
	if err := h.admin.DeleteOverride(r.Context(), r.PathValue("slug"), overrideID); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeHours reads a weekly schedule body and revalidates it through the
// domain constructor.
func decodeHours(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (domain.BusinessHours, bool) {
	var raw domain.BusinessHours
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeError(w, r, logger, errInvalidJSON)
		return domain.BusinessHours{}, false
	}
	hours, err := domain.NewBusinessHours(raw.Monday, raw.Tuesday, raw.Wednesday, raw.Thursday, raw.Friday, raw.Saturday, raw.Sunday)
	if err != nil {
		writeError(w, r, logger, err)
		return domain.BusinessHours{}, false
	}
	return hours, true
}
