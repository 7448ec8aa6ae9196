package module

import (
	"context"
	"errors"

	"recipescraper/internal/adapters/blobstore"
	"recipescraper/internal/adapters/fetch"
	"recipescraper/internal/adapters/gemini"
	modkit "recipescraper/internal/modkit"
	rsvc "recipescraper/internal/services/api/recipes/service"
)

// NewService builds the scrape service and its adapters from deps.Cfg
// The returned close func releases the model client
func NewService(ctx context.Context, deps modkit.Deps) (*rsvc.Svc, func() error, error) {
	cfg := deps.Cfg
	scope := cfg.Prefix("SCRAPER_")

	fo := fetch.OptionsFrom(scope)
	fo.Metrics = deps.Metrics
	fetcher := fetch.New(fo)

	gen, err := gemini.New(ctx, gemini.OptionsFrom(cfg))
	if err != nil {
		return nil, nil, err
	}
	store, err := blobstore.New(ctx, blobstore.OptionsFrom(cfg), fetcher, deps.Metrics)
	if err != nil {
		return nil, nil, errors.Join(err, gen.Close())
	}

	o := FromConfig(scope)
	s := rsvc.New(rsvc.Options{
		Fetcher:   fetcher,
		Generator: gen,
		Store:     store,
		CacheSize: o.CacheSize,
		CacheTTL:  o.CacheTTL,
		Metrics:   deps.Metrics,
	})
	return s, gen.Close, nil
}
