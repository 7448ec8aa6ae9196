// Package modkit provides module wiring and core deps
package modkit

import (
	"net/http"

	"recipescraper/internal/modkit/httpkit"
	"recipescraper/internal/modkit/module"
	"recipescraper/internal/platform/config"
	"recipescraper/internal/platform/logger"
	"recipescraper/internal/platform/metrics"
	str "recipescraper/internal/platform/strings"
)

// Module is the surface the API mounts
type Module = module.Module

// Deps holds the core dependencies passed to modules
// A nil Metrics registry is a no-op
type Deps struct {
	Log     logger.Logger
	Cfg     config.Conf
	Metrics *metrics.Registry
}

// Base carries the name, prefix and middleware a module mounts with
// Modules embed it and supply Ports
type Base struct {
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler
	routes func(httpkit.Router)
}

// Name returns the module name
func (b Base) Name() string { return b.name }

// Prefix returns the normalized route prefix
func (b Base) Prefix() string { return str.MustPrefix(b.prefix) }

// MountRoutes mounts the module routes under its prefix
func (b Base) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, b.Prefix(), b.mws, func(sub httpkit.Router) {
		if b.routes != nil {
			b.routes(sub)
		}
	})
}
