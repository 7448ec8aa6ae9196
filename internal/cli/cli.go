// Package cli implements the recipescraper command line using Cobra
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"recipescraper/internal/core/normalize"
	"recipescraper/internal/core/platform"
	"recipescraper/internal/core/version"
	"recipescraper/internal/services/api/recipes/domain"

	"github.com/spf13/cobra"
)

// ScraperFactory builds the scrape service on demand, only the scrape command pays for it
type ScraperFactory func(ctx context.Context) (domain.ServicePort, func() error, error)

// New returns the root command writing results to out
func New(out io.Writer, scraper ScraperFactory) *cobra.Command {
	root := &cobra.Command{
		Use:   "recipescraper",
		Short: "Normalize recipe durations and servings, classify and scrape recipe URLs",
		Long: `recipescraper turns free-form recipe text and recipe URLs into normalized values.

Usage:
  recipescraper duration "1 hr 30 min"
  recipescraper servings "serves 4-6"
  recipescraper platform https://youtu.be/abc
  recipescraper scrape https://example.com/pie --json`,
		Version:      version.Info().String(),
		SilenceUsage: true,
	}
	root.SetOut(out)

	root.AddCommand(
		durationCmd(),
		servingsCmd(),
		platformCmd(),
		scrapeCmd(scraper),
	)
	return root
}

func durationCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "duration <text>",
		Short: "Print a duration in whole minutes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), normalize.Duration(normalize.Text(strings.Join(args, " "))))
			return err
		},
	}
}

func servingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "servings <text>",
		Short: "Print a serving count",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), normalize.Servings(normalize.Text(strings.Join(args, " "))))
			return err
		},
	}
}

func platformCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "platform <url>",
		Short: "Print the platform a URL belongs to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), platform.Classify(args[0]))
			return err
		},
	}
}

func scrapeCmd(factory ScraperFactory) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "scrape <url>",
		Short: "Scrape a recipe from a page or video URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if factory == nil {
				return fmt.Errorf("scrape is not available")
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			svc, closeFn, err := factory(ctx)
			if err != nil {
				return fmt.Errorf("build scraper: %w", err)
			}
			if closeFn != nil {
				defer func() { _ = closeFn() }()
			}

			res, err := svc.Scrape(ctx, args[0])
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			return printRecipe(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full result as JSON")
	return cmd
}

func printRecipe(w io.Writer, res domain.Result) error {
	r := res.Recipe
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", r.Title)
	fmt.Fprintf(&b, "source: %s  platform: %s  host: %s\n", res.Source, res.Platform, r.Host)
	fmt.Fprintf(&b, "prep: %d min  cook: %d min  total: %d min  serves: %d\n", r.PrepTime, r.CookTime, r.TotalTime, r.Yields)
	if r.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", r.Description)
	}
	if len(r.Ingredients) > 0 {
		b.WriteString("\nIngredients\n")
		for _, in := range r.Ingredients {
			fmt.Fprintf(&b, "  - %s\n", in)
		}
	}
	if len(r.Instructions) > 0 {
		b.WriteString("\nInstructions\n")
		for i, st := range r.Instructions {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, st)
		}
	}
	if r.Image.URL != "" {
		fmt.Fprintf(&b, "\nimage: %s\n", r.Image.URL)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
