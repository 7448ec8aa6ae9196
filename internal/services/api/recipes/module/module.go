// Package module wires recipes into the API using modkit
package module

import (
	"context"

	modkit "recipescraper/internal/modkit"
	"recipescraper/internal/modkit/httpkit"
	"recipescraper/internal/platform/net/middleware"

	"recipescraper/internal/services/api/recipes/domain"
	rhttp "recipescraper/internal/services/api/recipes/http"
	rsvc "recipescraper/internal/services/api/recipes/service"
)

// Module implements the recipes API module
type Module struct {
	modkit.Base

	svc   rsvc.Service
	close func() error
}

// Ports is the port set other modules can pull from recipes
type Ports struct {
	Scraper domain.ServicePort
	Status  domain.StatusPort
}

// New constructs the recipes module
// A service injected with modkit.WithPorts replaces the config-built one
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	head := []modkit.Option{
		modkit.WithName("recipes"),
		modkit.WithPrefix("/recipes"),
	}
	// the scrape limit runs ahead of caller middleware
	if o := FromConfig(deps.Cfg.Prefix("SCRAPER_")); o.MaxConcurrent > 0 {
		head = append(head, modkit.WithMiddlewares(middleware.ThrottleBacklog(o.MaxConcurrent, o.Backlog, o.BacklogWait)))
	}
	b := modkit.Build(append(head, opts...)...)

	m := &Module{close: func() error { return nil }}
	if injected, ok := b.Ports.(rsvc.Service); ok && injected != nil {
		m.svc = injected
	} else {
		s, closeFn, err := NewService(context.Background(), deps)
		if err != nil {
			panic("recipes module: " + err.Error())
		}
		m.svc, m.close = s, closeFn
	}
	m.Base = b.Base(func(r httpkit.Router) { rhttp.Register(r, m.svc) })
	return m
}

// Ports exposes the scrape service and its status
func (m *Module) Ports() any { return Ports{Scraper: m.svc, Status: m.svc} }

// Close releases adapter clients
func (m *Module) Close() error { return m.close() }
