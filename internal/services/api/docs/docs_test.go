package docs

import (
	"encoding/json"
	"testing"

	"github.com/swaggo/swag"
)

func TestRegisteredDoc(t *testing.T) {
	raw, err := swag.ReadDoc()
	if err != nil {
		t.Fatalf("ReadDoc: %v", err)
	}
	var d struct {
		Swagger  string                    `json:"swagger"`
		BasePath string                    `json:"basePath"`
		Paths    map[string]map[string]any `json:"paths"`
	}
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		t.Fatalf("doc is not json: %v", err)
	}
	if d.Swagger != "2.0" || d.BasePath != "/api/v1" {
		t.Fatalf("header = %q %q", d.Swagger, d.BasePath)
	}
	for _, p := range []string{"/recipes/scrape", "/normalize/duration", "/normalize/servings", "/normalize/platform", "/meta/health"} {
		if _, ok := d.Paths[p]; !ok {
			t.Fatalf("path %s missing", p)
		}
	}
}
