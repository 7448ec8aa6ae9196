// Package docs holds the API's Swagger document, built by swag from the handler annotations
package docs

//go:generate swag init -d ../../../../ -g cmd/recipescraper-api/main.go -o . --outputTypes json

import (
	_ "embed"

	"github.com/swaggo/swag"
)

//go:embed swagger.json
var docTemplate string

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "Recipe Scraper API",
	Description:      "Turns recipe pages and recipe videos into normalized recipes",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
