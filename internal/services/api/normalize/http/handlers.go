// Package http exposes the duration, servings and platform normalizers
package http

import (
	stdhttp "net/http"

	"recipescraper/internal/core/normalize"
	"recipescraper/internal/core/platform"
	"recipescraper/internal/modkit/httpkit"
	"recipescraper/internal/platform/net/http/bind"
	"recipescraper/internal/services/api/normalize/domain"
)

// Register mounts the router
func Register(r httpkit.Router) {
	httpkit.PostJSON[domain.ValueInput](r, "/duration", duration)
	httpkit.PostJSON[domain.ValueInput](r, "/servings", servings)
	httpkit.Get(r, "/platform", classify)
}

// swagger:route POST /normalize/duration Normalize normalizeDuration
// @Summary Normalize a duration to whole minutes
// @Tags Normalize
// @Accept json
// @Produce json
// @Param payload body domain.ValueInput true "Duration as ISO-8601, text or a number of minutes"
// @Success 200 {object} domain.DurationOutput "ok"
// @Router /normalize/duration [post]
func duration(_ *stdhttp.Request, in domain.ValueInput) (any, error) {
	return domain.DurationOutput{Input: in.Value, Minutes: normalize.Duration(in.Value)}, nil
}

// swagger:route POST /normalize/servings Normalize normalizeServings
// @Summary Normalize a yield to a serving count
// @Tags Normalize
// @Accept json
// @Produce json
// @Param payload body domain.ValueInput true "Yield as text or a number"
// @Success 200 {object} domain.ServingsOutput "ok"
// @Router /normalize/servings [post]
func servings(_ *stdhttp.Request, in domain.ValueInput) (any, error) {
	return domain.ServingsOutput{Input: in.Value, Servings: normalize.Servings(in.Value)}, nil
}

// swagger:route GET /normalize/platform Normalize normalizePlatform
// @Summary Classify a URL as tiktok, youtube or website
// @Tags Normalize
// @Produce json
// @Param url query string true "Recipe URL"
// @Success 200 {object} domain.PlatformOutput "ok"
// @Router /normalize/platform [get]
func classify(r *stdhttp.Request) (any, error) {
	q := domain.PlatformQuery{URL: r.URL.Query().Get("url")}
	if err := bind.Validate(q); err != nil {
		return nil, err
	}
	return domain.PlatformOutput{URL: q.URL, Platform: platform.Classify(q.URL)}, nil
}
