package v1

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/loftylabs/marketplace/application/service"
	"github.com/loftylabs/marketplace/domain/tenant"
	"github.com/loftylabs/marketplace/infrastructure/api/middleware"
	"github.com/loftylabs/marketplace/internal/log"
)

// Tenants exposes tenant extended configuration to operators.
type Tenants struct {
	tenants *service.Tenants
	logger  *log.Logger
}

// NewTenants creates a new Tenants handler.
func NewTenants(tenants *service.Tenants, logger *log.Logger) *Tenants {
	return &Tenants{tenants: tenants, logger: logger}
}

// RegisterRoutes mounts the public tenant configuration routes.
func (h *Tenants) RegisterRoutes(r chi.Router) {
	r.Get("/api/tenant/config/{key}", h.extendedConfig)
}

// RegisterAdminRoutes mounts the tenant configuration routes.
func (h *Tenants) RegisterAdminRoutes(r chi.Router) {
	r.Get("/api/admin/tenant-config/{tenantID}", h.get)
	r.Put("/api/admin/tenant-config/{tenantID}", h.put)
}

type tenantConfigResponse struct {
	TenantID        string            `json:"tenant_id"`
	Name            string            `json:"name"`
	DefaultCurrency string            `json:"default_currency"`
	ImageBaseURL    string            `json:"image_base_url,omitempty"`
	Settings        map[string]string `json:"settings"`
}

func (h *Tenants) get(w http.ResponseWriter, r *http.Request) {
	config, err := h.tenants.Config(r.Context(), chi.URLParam(r, "tenantID"))
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, tenantConfigResponse{
		TenantID:        config.TenantID(),
		Name:            config.Name(),
		DefaultCurrency: config.DefaultCurrency(),
		ImageBaseURL:    config.ImageBaseURL(),
		Settings:        config.Settings(),
	})
}

func (h *Tenants) extendedConfig(w http.ResponseWriter, r *http.Request) {
	tenantID, err := tenantFromRequest(r)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	key := chi.URLParam(r, "key")
	value, ok, err := h.tenants.ExtendedConfig(r.Context(), tenantID, key)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}
	if !ok {
		WriteJSON(w, http.StatusNotFound, errorResponse{Error: "config key not found"})
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"config_key": key, "config_value": value})
}

func (h *Tenants) put(w http.ResponseWriter, r *http.Request) {
	var body tenantConfigResponse
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		WriteError(w, r, h.logger,
			middleware.NewAPIError(http.StatusBadRequest, "invalid request body", err))
		return
	}

	config := tenant.NewConfig(chi.URLParam(r, "tenantID"), body.Name,
		body.DefaultCurrency, body.ImageBaseURL, body.Settings)
	if err := h.tenants.Save(r.Context(), config); err != nil {
		WriteError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
