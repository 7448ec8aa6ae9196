// Package domain holds DTOs for the normalize endpoints
package domain

import (
	"recipescraper/internal/core/normalize"
	"recipescraper/internal/core/platform"
)

// ValueInput carries a raw duration or yield, a JSON string, number or null
type ValueInput struct {
	Value normalize.Value `json:"value" example:"1 hr 30 min"`
}

// DurationOutput is a duration in whole minutes
type DurationOutput struct {
	Input   normalize.Value `json:"input"`
	Minutes int             `json:"minutes" example:"90"`
}

// ServingsOutput is a serving count
type ServingsOutput struct {
	Input    normalize.Value `json:"input"`
	Servings int             `json:"servings" example:"4"`
}

// PlatformQuery is bound from the query string
type PlatformQuery struct {
	URL string `json:"url" validate:"required,max=2048"`
}

// PlatformOutput is the source tag of a URL
type PlatformOutput struct {
	URL      string            `json:"url"`
	Platform platform.Platform `json:"platform" example:"website"`
}
