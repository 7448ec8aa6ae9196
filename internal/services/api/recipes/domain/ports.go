package domain

import (
	"context"

	"recipescraper/internal/adapters/blobstore"
	"recipescraper/internal/adapters/extract"
	"recipescraper/internal/adapters/fetch"
	"recipescraper/internal/adapters/gemini"
)

// ServicePort is the interface implemented by the recipes service
type ServicePort interface {
	Scrape(ctx context.Context, url string) (Result, error)
}

// StatusPort exposes collaborator configuration to other modules
type StatusPort interface {
	Status() Status
}

// PageFetcher downloads a page
type PageFetcher interface {
	Page(ctx context.Context, url string) (fetch.Result, error)
}

// Generator is the model fallback
type Generator interface {
	Enabled() bool
	Extract(ctx context.Context, in gemini.Input) (extract.Candidate, error)
}

// ImageStore copies images to object storage
type ImageStore interface {
	Enabled() bool
	Upload(ctx context.Context, imageURL string) (blobstore.Object, error)
}
