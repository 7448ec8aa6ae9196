// Package module wires meta endpoints into the API
package module

import (
	"time"

	"recipescraper/internal/core/version"
	modkit "recipescraper/internal/modkit"
	"recipescraper/internal/modkit/httpkit"
	"recipescraper/internal/modkit/swaggerkit"
	"recipescraper/internal/services/api/recipes/domain"

	metahttp "recipescraper/internal/services/api/meta/http"
)

// Ports are the optional ports injected into meta
type Ports struct {
	Status    domain.StatusPort
	Endpoints map[string]string
}

func init() {
	swaggerkit.Register(stampVersion)
}

// stampVersion reports the running build as the document version
func stampVersion(spec map[string]any) {
	if info, ok := spec["info"].(map[string]any); ok {
		info["version"] = version.Info().Version
	}
}

// Module serves health and version
type Module struct {
	modkit.Base
	startedAt time.Time
}

// New constructs the meta module; inject Ports with modkit.WithPorts
func New(_ modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	injected, _ := b.Ports.(Ports)
	m := &Module{startedAt: time.Now()}
	m.Base = b.Base(func(r httpkit.Router) {
		metahttp.Register(r, metahttp.Deps{
			ServiceName: version.Info().Service,
			StartedAt:   m.startedAt,
			Status:      injected.Status,
			Endpoints:   injected.Endpoints,
		})
	})
	return m
}

// Ports is empty, meta only consumes
func (m *Module) Ports() any { return nil }
