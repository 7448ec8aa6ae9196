package service

import (
	"math"

	"recipescraper/internal/adapters/extract"
	"recipescraper/internal/core/normalize"
	"recipescraper/internal/services/api/recipes/domain"
)

// toRecipe normalizes a candidate; total time falls back to prep plus cook
func toRecipe(c extract.Candidate, pageURL string) domain.Recipe {
	prep := normalize.Duration(c.PrepTime)
	cook := normalize.Duration(c.CookTime)
	total := normalize.Duration(c.TotalTime)
	if total == 0 {
		total = addSat(prep, cook)
	}
	return domain.Recipe{
		Title:        c.Title,
		Description:  c.Description,
		PrepTime:     prep,
		CookTime:     cook,
		TotalTime:    total,
		Yields:       normalize.Servings(c.Yield),
		Ingredients:  nonNil(c.Ingredients),
		Instructions: nonNil(c.Instructions),
		URL:          pageURL,
		Host:         Host(pageURL),
	}
}

func addSat(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
