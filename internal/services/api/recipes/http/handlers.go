// Package http provides http transport for recipes
package http

import (
	stdhttp "net/http"

	"recipescraper/internal/modkit/httpkit"
	"recipescraper/internal/platform/logger"
	pnet "recipescraper/internal/platform/net"
	"recipescraper/internal/services/api/recipes/domain"
	svc "recipescraper/internal/services/api/recipes/service"
)

// Register mounts the router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.ScrapeInput](r, "/scrape", h.scrape)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /recipes/scrape Recipes recipesScrape
// @Summary Scrape a recipe from a page or video URL
// @Tags Recipes
// @Accept json
// @Produce json
// @Param payload body domain.ScrapeInput true "Page URL"
// @Success 200 {object} domain.Result "ok"
// @Failure 422 {object} pnet.Wire "no recipe found"
// @Failure 502 {object} pnet.Wire "target site failed"
// @Failure 504 {object} pnet.Wire "timed out"
// @Router /recipes/scrape [post]
func (h *handlers) scrape(r *stdhttp.Request, in domain.ScrapeInput) (any, error) {
	ctx := logger.WithRequest(r.Context(), pnet.RequestID(r.Context()), in.URL)
	return h.svc.Scrape(ctx, in.URL)
}
