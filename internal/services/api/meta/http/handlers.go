// Package http provides meta endpoints
package http

import (
	"net/http"
	"time"

	"recipescraper/internal/core/version"
	"recipescraper/internal/modkit/httpkit"
	"recipescraper/internal/services/api/recipes/domain"
)

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	// Status is optional; without it collaborators report unconfigured
	Status    domain.StatusPort
	Endpoints map[string]string
	Now       func() time.Time
}

type handlers struct {
	deps Deps
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	if d.Now == nil {
		d.Now = time.Now
	}
	h := &handlers{deps: d}

	// mount routes
	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
}

// HealthResponse is the health payload
type HealthResponse struct {
	Status            string            `json:"status"             example:"healthy"`
	Service           string            `json:"service"            example:"recipescraper-api"`
	Timestamp         float64           `json:"timestamp"          example:"1760781600.25"`
	Started           string            `json:"started"            example:"2026-10-18T10:00:00Z"`
	GeminiConfigured  bool              `json:"gemini_configured"  example:"true"`
	StorageConfigured bool              `json:"storage_configured" example:"false"`
	Endpoints         map[string]string `json:"endpoints"`
}

// ServiceResponse describes service info
type ServiceResponse struct {
	Name    string `json:"name"    example:"recipescraper-api"`
	Started string `json:"started" example:"2026-10-18T10:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

// swagger:route GET /meta/health Meta metaHealth
// @Summary Health and configured collaborators
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse "ok"
// @Router /meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	now := h.deps.Now()
	out := HealthResponse{
		Status:    "healthy",
		Service:   h.deps.ServiceName,
		Timestamp: float64(now.UnixMilli()) / 1000,
		Started:   h.deps.StartedAt.UTC().Format(time.RFC3339),
		Endpoints: h.deps.Endpoints,
	}
	if h.deps.Status != nil {
		st := h.deps.Status.Status()
		out.GeminiConfigured = st.GeminiConfigured
		out.StorageConfigured = st.StorageConfigured
	}
	if out.Endpoints == nil {
		out.Endpoints = map[string]string{}
	}
	return out, nil
}

// swagger:route GET /meta/version Meta metaVersion
// @Summary Build information
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo "ok"
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}

// swagger:route GET /meta/service Meta metaService
// @Summary Service name and uptime
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse "ok"
// @Router /meta/service [get]
func (h *handlers) service(_ *http.Request) (any, error) {
	uptime := h.deps.Now().Sub(h.deps.StartedAt)
	return ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(uptime / time.Second),
	}, nil
}
