// Package api provides the HTTP API for the application
package api

import (
	"errors"
	"net/http"
	"time"

	"recipescraper/internal/platform/config"
	"recipescraper/internal/platform/logger"
	"recipescraper/internal/platform/metrics"
	phttp "recipescraper/internal/platform/net/http"

	"recipescraper/internal/modkit"
	"recipescraper/internal/modkit/httpkit"
	"recipescraper/internal/modkit/module"
	"recipescraper/internal/modkit/swaggerkit"

	metamod "recipescraper/internal/services/api/meta/module"
	normalizemod "recipescraper/internal/services/api/normalize/module"
	recipesdom "recipescraper/internal/services/api/recipes/domain"
	recipesmod "recipescraper/internal/services/api/recipes/module"
)

// Endpoints is the public route list reported by /meta/health
var Endpoints = map[string]string{
	"scrape":   "POST /api/v1/recipes/scrape",
	"duration": "POST /api/v1/normalize/duration",
	"servings": "POST /api/v1/normalize/servings",
	"platform": "GET /api/v1/normalize/platform?url=",
	"health":   "GET /api/v1/meta/health",
	"version":  "GET /api/v1/meta/version",
	"metrics":  "GET /metrics",
	"docs":     "GET /docs/index.html",
}

// Options are the API options
type Options struct {
	Config         config.Conf
	Logger         *logger.Logger
	Metrics        *metrics.Registry
	EnableSwagger  bool
	EnableProfiler bool
	// RequestTimeout bounds one API request, scrapes chain remote fetches and a model call
	RequestTimeout time.Duration
	SlowRequest    time.Duration

	// Modules replaces the default module set, tests use it
	Modules []modkit.Module
}

// Mount mounts the API service onto the given router
// The returned func releases module resources
func Mount(r phttp.Router, opt Options) func() error {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg:     opt.Config,
		Metrics: opt.Metrics,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}

	var set module.Set
	if opt.Modules != nil {
		set.Add(opt.Modules...)
	} else {
		set.Add(recipesmod.New(deps))
		// meta reports on whatever status port recipes exposes
		status, _ := module.Lookup[recipesdom.StatusPort](&set)
		set.Add(
			metamod.New(deps, modkit.WithPorts(metamod.Ports{Status: status, Endpoints: Endpoints})),
			normalizemod.New(deps),
		)
	}

	if opt.Metrics != nil {
		r.Handle("/metrics", opt.Metrics.Handler())
	}
	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	stack := httpkit.CommonStack(httpkit.StackOptions{
		Timeout: opt.RequestTimeout,
		Slow:    opt.SlowRequest,
		Extra:   []func(http.Handler) http.Handler{opt.Metrics.Middleware()},
	})

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		for _, m := range set.Modules() {
			m.MountRoutes(api)
		}
	})

	return func() error {
		var errs []error
		for _, m := range set.Modules() {
			if c, ok := m.(interface{ Close() error }); ok {
				errs = append(errs, c.Close())
			}
		}
		return errors.Join(errs...)
	}
}
