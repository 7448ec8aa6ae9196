package swaggerkit

import (
	"encoding/json"
	"net/http"
	"sync"

	"recipescraper/internal/platform/config"

	docs "recipescraper/internal/services/api/docs"
)

// SpecMutator adjusts the parsed document before it is served
type SpecMutator func(map[string]any)

var (
	mu       sync.Mutex
	mutators []SpecMutator
)

var docReader = func() string { return docs.SwaggerInfo.ReadDoc() }

// Register adds a mutator, modules call it from init
func Register(m SpecMutator) {
	if m == nil {
		return
	}
	mu.Lock()
	mutators = append(mutators, m)
	mu.Unlock()
}

func registered() []SpecMutator {
	mu.Lock()
	defer mu.Unlock()
	return append([]SpecMutator(nil), mutators...)
}

// serveDocJSON parses the swag document, fills shared error responses and applies mutators
func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		var spec map[string]any
		if err := json.Unmarshal([]byte(docReader()), &spec); err != nil {
			http.Error(w, "spec parse error", http.StatusInternalServerError)
			return
		}

		if _, ok := spec["basePath"]; !ok {
			spec["basePath"] = "/api/v1"
		}

		cfg := config.New().Prefix("SCRAPER_")
		if v := cfg.MayString("DOCS_TITLE_SUFFIX", ""); v != "" {
			if info, ok := spec["info"].(map[string]any); ok {
				if title, ok := info["title"].(string); ok {
					info["title"] = title + " " + v
				}
			}
		}

		ensureErrorDefinition(spec)
		addDefaultResponse(spec, "400", "Bad Request")
		addDefaultResponse(spec, "500", "Internal Server Error")

		for _, m := range registered() {
			m(spec)
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(spec)
	}
}

// ensureErrorDefinition adds the error envelope model when the document lacks it
// it mirrors net.Wire for a failed call
func ensureErrorDefinition(spec map[string]any) {
	defs, ok := spec["definitions"].(map[string]any)
	if !ok {
		defs = map[string]any{}
		spec["definitions"] = defs
	}
	if _, ok := defs["ErrorEnvelope"]; ok {
		return
	}
	defs["ErrorEnvelope"] = map[string]any{
		"type": "object",
		"properties": map[string]any{
			"success":     map[string]any{"type": "boolean", "example": false},
			"status_code": map[string]any{"type": "integer"},
			"status":      map[string]any{"type": "string"},
			"code":        map[string]any{"type": "string"},
			"error":       map[string]any{"type": "string"},
			"request_id":  map[string]any{"type": "string"},
		},
	}
}

// addDefaultResponse gives every operation an error response for status when it has none
func addDefaultResponse(spec map[string]any, status, desc string) {
	paths, ok := spec["paths"].(map[string]any)
	if !ok {
		return
	}
	for _, p := range paths {
		node, ok := p.(map[string]any)
		if !ok {
			continue
		}
		for _, opAny := range node {
			op, ok := opAny.(map[string]any)
			if !ok {
				continue
			}
			resps, ok := op["responses"].(map[string]any)
			if !ok {
				resps = map[string]any{}
				op["responses"] = resps
			}
			if _, exists := resps[status]; !exists {
				resps[status] = map[string]any{
					"description": desc,
					"schema":      map[string]any{"$ref": "#/definitions/ErrorEnvelope"},
				}
			}
		}
	}
}
