package handlers

import (
	"net/http"

	"github.com/FabioF7/TheBooker/libs/httpx"
)

// Register mounts every route on the mux. publicLimit wraps the
// customer-facing booking endpoints; the management surface is expected to
// sit behind an internal gateway and is not throttled here.
func Register(mux *http.ServeMux, bh *BookingHandler, ah *AdminHandler, publicLimit httpx.Middleware) {
	public := func(h http.HandlerFunc) http.Handler {
		if publicLimit == nil {
			return h
		}
		return publicLimit(h)
	}

	mux.Handle("GET /api/v1/tenants/{slug}/availability", public(bh.Availability))
	mux.Handle("POST /api/v1/tenants/{slug}/appointments/hold", public(bh.Hold))
	mux.Handle("POST /api/v1/tenants/{slug}/appointments/{id}/confirm", public(bh.Confirm))
	mux.Handle("POST /api/v1/tenants/{slug}/appointments/{id}/cancel", public(bh.Cancel))
	mux.Handle("GET /api/v1/tenants/{slug}/appointments/{id}", public(bh.Get))

	mux.HandleFunc("GET /api/v1/tenants/{slug}/appointments", bh.List)
	mux.HandleFunc("POST /api/v1/tenants/{slug}/appointments/{id}/no-show", bh.NoShow)
	mux.HandleFunc("POST /api/v1/tenants/{slug}/appointments/{id}/complete", bh.Complete)

	mux.HandleFunc("POST /api/v1/tenants", ah.CreateTenant)
	mux.HandleFunc("GET /api/v1/tenants/{slug}", ah.GetTenant)
	mux.HandleFunc("PUT /api/v1/tenants/{slug}/hours", ah.UpdateTenantHours)
	mux.HandleFunc("PUT /api/v1/tenants/{slug}/buffer", ah.UpdateTenantBuffer)

	mux.HandleFunc("POST /api/v1/tenants/{slug}/services", ah.CreateService)
	mux.HandleFunc("GET /api/v1/tenants/{slug}/services", ah.ListServices)

	mux.HandleFunc("POST /api/v1/tenants/{slug}/providers", ah.CreateProvider)
	mux.HandleFunc("GET /api/v1/tenants/{slug}/providers", ah.ListProviders)
	mux.HandleFunc("PUT /api/v1/tenants/{slug}/providers/{id}/hours", ah.SetProviderHours)
	mux.HandleFunc("DELETE /api/v1/tenants/{slug}/providers/{id}/hours", ah.ClearProviderHours)
	mux.HandleFunc("POST /api/v1/tenants/{slug}/providers/{id}/services/{serviceId}", ah.AssignService)
	mux.HandleFunc("DELETE /api/v1/tenants/{slug}/providers/{id}/services/{serviceId}", ah.RemoveService)

	mux.HandleFunc("POST /api/v1/tenants/{slug}/overrides", ah.CreateOverride)
	mux.HandleFunc("GET /api/v1/tenants/{slug}/overrides", ah.ListOverrides)
	mux.HandleFunc("DELETE /api/v1/tenants/{slug}/overrides/{id}", ah.DeleteOverride)
}
