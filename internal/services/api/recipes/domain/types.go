// Package domain holds recipe types independent of transport
package domain

import "recipescraper/internal/core/platform"

// Image is the recipe photo, Key is set only when the image was copied to object storage
type Image struct {
	URL string `json:"url" example:"https://bucket.s3.us-east-1.amazonaws.com/uploads/scraper/0190b7c2.jpg"`
	Key string `json:"key" example:"uploads/scraper/0190b7c2.jpg"`
}

// Recipe is the normalized recipe; times are minutes and every int is >= 0
type Recipe struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	PrepTime     int      `json:"prep_time"`
	CookTime     int      `json:"cook_time"`
	TotalTime    int      `json:"total_time"`
	Yields       int      `json:"yields"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	Image        Image    `json:"image"`
	URL          string   `json:"url"`
	Host         string   `json:"host"`
}

// Result is one scrape outcome
type Result struct {
	// Source is the extractor that produced the recipe: json-ld, microdata or gemini
	Source   string            `json:"source"`
	Platform platform.Platform `json:"platform"`
	// ProcessingTime is in seconds
	ProcessingTime float64 `json:"processing_time"`
	Cached         bool    `json:"cached"`
	Recipe         Recipe  `json:"data"`
}

// Status reports which optional collaborators are configured
type Status struct {
	GeminiConfigured  bool
	StorageConfigured bool
}
