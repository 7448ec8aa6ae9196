package domain

// ScrapeInput asks for the recipe at URL
type ScrapeInput struct {
	URL string `json:"url" validate:"required,max=2048,web_url" example:"https://www.example.com/recipes/lemon-drizzle"`
}
