package extract

import (
	"strings"
	"testing"

	"recipescraper/internal/core/normalize"
	perr "recipescraper/internal/platform/errors"
	kit "recipescraper/internal/platform/testkit"
)

func mustParse(t *testing.T, fixture, pageURL string) *Page {
	t.Helper()
	p, err := Parse([]byte(kit.Fixture(t, fixture)), pageURL)
	if err != nil {
		t.Fatalf("Parse(%s): %v", fixture, err)
	}
	return p
}

func TestJSONLD_GraphRecipe(t *testing.T) {
	p := mustParse(t, "jsonld_graph.html", "https://kitchen.example/recipes/lemon")

	c, src, ok := p.Recipe()
	if !ok || src != SourceJSONLD {
		t.Fatalf("Recipe() = %v %v, want json-ld", ok, src)
	}
	if c.Title != "Lemon Drizzle & Glaze" {
		t.Fatalf("title = %q", c.Title)
	}
	if c.Description != "A bright, sticky loaf." {
		t.Fatalf("description = %q", c.Description)
	}
	if c.Image != "https://kitchen.example/img/lemon.jpg" {
		t.Fatalf("image = %q", c.Image)
	}
	if normalize.Duration(c.PrepTime) != 15 || normalize.Duration(c.CookTime) != 45 {
		t.Fatalf("times = %v %v", c.PrepTime, c.CookTime)
	}
	if c.TotalTime.Kind() != normalize.KindAbsent {
		t.Fatalf("total time should be absent, got %v", c.TotalTime)
	}
	if normalize.Servings(c.Yield) != 8 {
		t.Fatalf("yield = %v", c.Yield)
	}
	if got := strings.Join(c.Ingredients, "|"); got != "225g butter|225g caster sugar" {
		t.Fatalf("ingredients = %q", got)
	}
	want := "Heat the oven to 180C.|Beat butter and sugar.|Drizzle over the warm cake."
	if got := strings.Join(c.Instructions, "|"); got != want {
		t.Fatalf("instructions = %q", got)
	}
}

func TestMicrodata_Recipe(t *testing.T) {
	p := mustParse(t, "microdata.html", "https://pancakes.example/r/1/")

	if _, ok := p.JSONLD(); ok {
		t.Fatalf("no ld+json on this page")
	}
	c, src, ok := p.Recipe()
	if !ok || src != SourceMicrodata {
		t.Fatalf("Recipe() = %v %v, want microdata", ok, src)
	}
	// the author's name belongs to a nested scope
	if c.Title != "Fluffy Pancakes" {
		t.Fatalf("title = %q", c.Title)
	}
	if c.Image != "https://pancakes.example/r/1/pancakes.jpg" {
		t.Fatalf("image = %q", c.Image)
	}
	if normalize.Duration(c.PrepTime) != 10 || normalize.Duration(c.CookTime) != 20 {
		t.Fatalf("times = %v %v", c.PrepTime, c.CookTime)
	}
	if normalize.Servings(c.Yield) != 4 {
		t.Fatalf("yield = %v", c.Yield)
	}
	if len(c.Ingredients) != 3 || c.Ingredients[1] != "2 eggs" {
		t.Fatalf("ingredients = %#v", c.Ingredients)
	}
	if len(c.Instructions) != 2 || c.Instructions[1] != "Cook ladlefuls in a hot pan." {
		t.Fatalf("instructions = %#v", c.Instructions)
	}
}

func TestRecipe_NoneFound(t *testing.T) {
	p := mustParse(t, "plain.html", "https://blog.example/rome")
	if _, _, ok := p.Recipe(); ok {
		t.Fatalf("plain page should have no recipe")
	}

	m := p.Meta()
	if m.Title != "My trip to Rome" || m.Description != "Notes from the road" || m.SiteName != "Travel Blog" {
		t.Fatalf("meta = %+v", m)
	}
	if m.Image != "" {
		t.Fatalf("no image expected, got %q", m.Image)
	}
}

func TestMeta_OpenGraph(t *testing.T) {
	p := mustParse(t, "jsonld_graph.html", "https://kitchen.example/recipes/lemon")
	m := p.Meta()
	if m.Title != "Lemon Drizzle Cake" || m.Image != "https://kitchen.example/img/og.jpg" {
		t.Fatalf("meta = %+v", m)
	}
}

func TestContent_StripsNoise(t *testing.T) {
	p := mustParse(t, "plain.html", "https://blog.example/rome")
	html, err := p.Content()
	if err != nil {
		t.Fatalf("Content: %v", err)
	}
	kit.MustContain(t, html, "We ate a lot of pasta.")
	for _, gone := range []string{"Site header", "Footer", "track()"} {
		if strings.Contains(html, gone) {
			t.Fatalf("content still has %q: %s", gone, html)
		}
	}

	// Content works on its own copy
	if p.doc.Find("footer").Length() != 1 {
		t.Fatalf("parsed document was modified")
	}
}

func TestCandidate_Complete(t *testing.T) {
	cases := []struct {
		c    Candidate
		want bool
	}{
		{Candidate{}, false},
		{Candidate{Title: "x"}, false},
		{Candidate{Title: "x", Ingredients: []string{"a"}}, true},
		{Candidate{Title: "x", Instructions: []string{"a"}}, true},
		{Candidate{Ingredients: []string{"a"}, Instructions: []string{"b"}}, false},
	}
	for i, tc := range cases {
		if got := tc.c.Complete(); got != tc.want {
			t.Fatalf("case %d: Complete() = %v, want %v", i, got, tc.want)
		}
	}
}

func TestResolve(t *testing.T) {
	p, err := Parse([]byte("<html></html>"), "https://a.example/x/y")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	cases := map[string]string{
		"":                        "",
		"  ":                      "",
		"z.png":                   "https://a.example/x/z.png",
		"/z.png":                  "https://a.example/z.png",
		"//cdn.example/z.png":     "https://cdn.example/z.png",
		"http://b.example/z.png":  "http://b.example/z.png",
		"data:image/png;base64,x": "",
		"ftp://b.example/z.png":   "",
	}
	for in, want := range cases {
		if got := p.Resolve(in); got != want {
			t.Fatalf("Resolve(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParse_BadBaseKeepsAbsoluteRefs(t *testing.T) {
	p, err := Parse([]byte("<html></html>"), "::not a url")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := p.Resolve("https://x.example/a.jpg"); got != "https://x.example/a.jpg" {
		t.Fatalf("Resolve = %q", got)
	}
	if got := p.Resolve("a.jpg"); got != "" {
		t.Fatalf("relative ref without base should be dropped, got %q", got)
	}
	if _, err := p.Content(); err != nil && !perr.IsCode(err, perr.ErrorCodeNoRecipe) {
		t.Fatalf("Content err = %v", err)
	}
}

func TestInstructions_StringForms(t *testing.T) {
	body := `<script type="application/ld+json">{"@type":"Recipe","name":"Toast",
"recipeIngredient":"bread\nbutter",
"recipeInstructions":"Toast the bread.\n\nButter it."}</script>`
	p, err := Parse([]byte(body), "https://t.example/")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	c, ok := p.JSONLD()
	if !ok {
		t.Fatalf("expected a recipe")
	}
	if strings.Join(c.Ingredients, "|") != "bread|butter" {
		t.Fatalf("ingredients = %#v", c.Ingredients)
	}
	if strings.Join(c.Instructions, "|") != "Toast the bread.|Butter it." {
		t.Fatalf("instructions = %#v", c.Instructions)
	}
}
