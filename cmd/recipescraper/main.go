// Recipe scraper command line

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"recipescraper/internal/cli"
	modkit "recipescraper/internal/modkit"
	"recipescraper/internal/platform/config"
	"recipescraper/internal/platform/config/raw"
	"recipescraper/internal/platform/logger"
	"recipescraper/internal/services/api/recipes/domain"
	recipesmod "recipescraper/internal/services/api/recipes/module"
)

func main() {
	if _, err := raw.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scraper := func(ctx context.Context) (domain.ServicePort, func() error, error) {
		return recipesmod.NewService(ctx, modkit.Deps{
			Cfg: config.New(),
			Log: *logger.Named("cli"),
		})
	}

	if err := cli.New(os.Stdout, scraper).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
