package extract

import "recipescraper/internal/core/normalize"

// Source names the extractor that produced a Candidate
type Source string

const (
	// SourceJSONLD is schema.org Recipe data in a ld+json script
	SourceJSONLD Source = "json-ld"
	// SourceMicrodata is schema.org Recipe data in itemprop attributes
	SourceMicrodata Source = "microdata"
	// SourceGemini is a generative model reading the page
	SourceGemini Source = "gemini"
)

// Candidate is a recipe as found on a page, before normalization
// Times and yield stay raw so one normalizer handles every source
type Candidate struct {
	Title        string
	Description  string
	PrepTime     normalize.Value
	CookTime     normalize.Value
	TotalTime    normalize.Value
	Yield        normalize.Value
	Ingredients  []string
	Instructions []string
	Image        string
}

// Complete reports whether c is worth returning: a title plus ingredients or steps
func (c Candidate) Complete() bool {
	return c.Title != "" && (len(c.Ingredients) > 0 || len(c.Instructions) > 0)
}
