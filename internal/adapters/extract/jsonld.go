package extract

import (
	"strings"

	"recipescraper/internal/core/normalize"
	"recipescraper/internal/core/textclean"

	"github.com/PuerkitoBio/goquery"
	"github.com/tidwall/gjson"
)

// maxGraphDepth bounds the walk through nested @graph and mainEntity nodes
const maxGraphDepth = 8

// JSONLD returns the first complete Recipe node found in ld+json scripts
// Invalid JSON blocks are skipped
func (p *Page) JSONLD() (Candidate, bool) {
	var out Candidate
	found := false
	p.doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		raw := strings.TrimSpace(s.Text())
		if raw == "" || !gjson.Valid(raw) {
			return true
		}
		node, ok := findRecipe(gjson.Parse(raw), 0)
		if !ok {
			return true
		}
		c := p.fromJSONLD(node)
		if c.Complete() {
			out, found = c, true
			return false
		}
		return true
	})
	return out, found
}

// findRecipe walks arrays, @graph and mainEntity looking for a Recipe typed object
func findRecipe(r gjson.Result, depth int) (gjson.Result, bool) {
	if depth > maxGraphDepth {
		return gjson.Result{}, false
	}
	if r.IsArray() {
		for _, el := range r.Array() {
			if n, ok := findRecipe(el, depth+1); ok {
				return n, true
			}
		}
		return gjson.Result{}, false
	}
	if !r.IsObject() {
		return gjson.Result{}, false
	}
	if isType(prop(r, "@type"), "Recipe") {
		return r, true
	}
	for _, k := range []string{"@graph", "mainEntity", "mainEntityOfPage"} {
		if n, ok := findRecipe(prop(r, k), depth+1); ok {
			return n, true
		}
	}
	return gjson.Result{}, false
}

// prop reads a top-level key, keys starting with '@' bypass gjson path syntax
func prop(r gjson.Result, key string) gjson.Result {
	if !strings.HasPrefix(key, "@") {
		return r.Get(key)
	}
	var out gjson.Result
	r.ForEach(func(k, v gjson.Result) bool {
		if k.String() == key {
			out = v
			return false
		}
		return true
	})
	return out
}

// isType matches a schema.org @type given as a string or array, with or without the schema.org prefix
func isType(t gjson.Result, want string) bool {
	match := func(s string) bool {
		s = strings.TrimPrefix(strings.TrimPrefix(s, "https://schema.org/"), "http://schema.org/")
		return strings.EqualFold(s, want)
	}
	if t.IsArray() {
		for _, el := range t.Array() {
			if match(el.String()) {
				return true
			}
		}
		return false
	}
	return match(t.String())
}

func (p *Page) fromJSONLD(n gjson.Result) Candidate {
	ingredients := stringList(n.Get("recipeIngredient"))
	if len(ingredients) == 0 {
		ingredients = stringList(n.Get("ingredients"))
	}
	return Candidate{
		Title:        textclean.Line(plain(n.Get("name").String())),
		Description:  textclean.Line(plain(n.Get("description").String())),
		PrepTime:     valueOf(n.Get("prepTime")),
		CookTime:     valueOf(n.Get("cookTime")),
		TotalTime:    valueOf(n.Get("totalTime")),
		Yield:        valueOf(n.Get("recipeYield")),
		Ingredients:  textclean.Lines(ingredients),
		Instructions: textclean.Lines(instructions(n.Get("recipeInstructions"), 0)),
		Image:        p.Resolve(imageURL(n.Get("image"), 0)),
	}
}

// valueOf turns a JSON scalar into a normalizer input, arrays use their first usable element
func valueOf(r gjson.Result) normalize.Value {
	switch r.Type {
	case gjson.Number:
		return normalize.Number(r.Num)
	case gjson.String:
		return normalize.Text(r.Str)
	case gjson.JSON:
		if r.IsArray() {
			for _, el := range r.Array() {
				if v := valueOf(el); v.Kind() != normalize.KindAbsent && v.String() != "" {
					return v
				}
			}
		}
	}
	return normalize.Absent
}

// stringList flattens a string or array of strings
func stringList(r gjson.Result) []string {
	if !r.Exists() {
		return nil
	}
	if r.IsArray() {
		out := make([]string, 0, len(r.Array()))
		for _, el := range r.Array() {
			if el.Type == gjson.String {
				out = append(out, plain(el.Str))
			}
		}
		return out
	}
	if r.Type == gjson.String {
		return strings.Split(plain(r.Str), "\n")
	}
	return nil
}

// instructions reads plain text, arrays, HowToStep and HowToSection nodes in document order
func instructions(r gjson.Result, depth int) []string {
	if depth > maxGraphDepth || !r.Exists() {
		return nil
	}
	switch {
	case r.Type == gjson.String:
		return strings.Split(textclean.Block(plain(r.Str)), "\n")
	case r.IsArray():
		var out []string
		for _, el := range r.Array() {
			out = append(out, instructions(el, depth+1)...)
		}
		return out
	case r.IsObject():
		if items := r.Get("itemListElement"); items.Exists() {
			return instructions(items, depth+1)
		}
		if t := r.Get("text"); t.Exists() {
			return []string{plain(t.String())}
		}
		return []string{plain(r.Get("name").String())}
	}
	return nil
}

// imageURL reads an image given as a URL, an ImageObject or a list of either
func imageURL(r gjson.Result, depth int) string {
	if depth > maxGraphDepth {
		return ""
	}
	switch {
	case r.Type == gjson.String:
		return r.Str
	case r.IsArray():
		for _, el := range r.Array() {
			if u := imageURL(el, depth+1); u != "" {
				return u
			}
		}
	case r.IsObject():
		if u := r.Get("url").String(); u != "" {
			return u
		}
		return r.Get("contentUrl").String()
	}
	return ""
}
