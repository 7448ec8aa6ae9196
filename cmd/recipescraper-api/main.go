// @title         Recipe Scraper API
// @version       0.1.0
// @description   Turns recipe pages and recipe videos into normalized recipes
// @BasePath      /api/v1
// @schemes       http https
// @accept        json
// @produce       json

// Recipe scraper HTTP API
// POST /api/v1/recipes/scrape turns a recipe page or video URL into a normalized recipe
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"recipescraper/internal/platform/config"
	"recipescraper/internal/platform/config/raw"
	"recipescraper/internal/platform/logger"
	"recipescraper/internal/platform/metrics"
	phttp "recipescraper/internal/platform/net/http"

	"recipescraper/internal/services/api"
)

func main() {
	// .env first so logger and config see it
	loaded, envErr := raw.LoadDotEnv()

	// bring up logging early
	l := logger.Get()
	if envErr != nil {
		l.Panic().Err(envErr).Msg("load .env failed")
	}
	if len(loaded) > 0 {
		l.Debug().Strs("files", loaded).Msg("env files loaded")
	}

	// service-scoped config for HTTP etc (SCRAPER_*)
	root := config.New()
	apiCfg := root.Prefix("SCRAPER_")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// http server (reads SCRAPER_API_PORT)
	srv := phttp.NewServer(apiCfg)

	// mount our API
	closeAPI := api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Logger:         l,
			Metrics:        metrics.New(),
			EnableSwagger:  apiCfg.MayBool("API_SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("API_PROFILER", false),
			RequestTimeout: apiCfg.MayDuration("API_TIMEOUT", 0),
			SlowRequest:    apiCfg.MayDuration("API_SLOW", 0),
		},
	)
	defer func() {
		if err := closeAPI(); err != nil {
			l.Error().Err(err).Msg("failed to close api")
		}
	}()

	// run until SIGINT/SIGTERM
	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
	l.Info().Msg("http server stopped")
}
