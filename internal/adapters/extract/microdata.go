package extract

import (
	"strings"

	"recipescraper/internal/core/normalize"
	"recipescraper/internal/core/textclean"

	"github.com/PuerkitoBio/goquery"
)

// Microdata reads the first itemscope typed schema.org/Recipe
func (p *Page) Microdata() (Candidate, bool) {
	scope := p.doc.Find(`[itemscope][itemtype*="schema.org/Recipe"]`).First()
	if scope.Length() == 0 {
		return Candidate{}, false
	}

	c := Candidate{
		Title:       textclean.Line(itemValue(ownProp(scope, "name").First())),
		Description: textclean.Line(itemValue(ownProp(scope, "description").First())),
		PrepTime:    textValue(itemValue(ownProp(scope, "prepTime").First())),
		CookTime:    textValue(itemValue(ownProp(scope, "cookTime").First())),
		TotalTime:   textValue(itemValue(ownProp(scope, "totalTime").First())),
		Yield:       textValue(itemValue(ownProp(scope, "recipeYield").First())),
		Image:       p.Resolve(imageProp(ownProp(scope, "image").First())),
	}

	ings := ownProp(scope, "recipeIngredient")
	if ings.Length() == 0 {
		ings = ownProp(scope, "ingredients")
	}
	c.Ingredients = textclean.Lines(ings.Map(func(_ int, s *goquery.Selection) string { return itemValue(s) }))

	var steps []string
	ownProp(scope, "recipeInstructions").Each(func(_ int, s *goquery.Selection) {
		steps = append(steps, stepTexts(s)...)
	})
	c.Instructions = textclean.Lines(steps)

	return c, c.Complete()
}

// ownProp finds itemprop=name elements that belong to scope and not to a nested itemscope
func ownProp(scope *goquery.Selection, name string) *goquery.Selection {
	return scope.Find(`[itemprop~="` + name + `"]`).FilterFunction(func(_ int, s *goquery.Selection) bool {
		owner := s.Parent().Closest("[itemscope]")
		return owner.Length() > 0 && owner.Get(0) == scope.Get(0)
	})
}

// itemValue follows the microdata value rules for the common elements
func itemValue(s *goquery.Selection) string {
	if s.Length() == 0 {
		return ""
	}
	switch goquery.NodeName(s) {
	case "meta":
		return s.AttrOr("content", "")
	case "time":
		if v, ok := s.Attr("datetime"); ok {
			return v
		}
	case "img", "source", "audio", "video":
		return s.AttrOr("src", "")
	case "a", "link", "area":
		return s.AttrOr("href", "")
	case "data", "meter":
		return s.AttrOr("value", "")
	}
	if v, ok := s.Attr("content"); ok {
		return v
	}
	return s.Text()
}

// imageProp reads an image itemprop given directly or as a nested ImageObject
func imageProp(s *goquery.Selection) string {
	if s.Length() == 0 {
		return ""
	}
	if _, ok := s.Attr("itemscope"); ok {
		if u := itemValue(ownProp(s, "url").First()); u != "" {
			return u
		}
		return itemValue(ownProp(s, "contentUrl").First())
	}
	return itemValue(s)
}

// stepTexts splits one recipeInstructions element into steps
// Lists and nested HowToStep text win over the element's flat text
func stepTexts(s *goquery.Selection) []string {
	if _, ok := s.Attr("itemscope"); ok {
		if t := ownProp(s, "text"); t.Length() > 0 {
			return []string{itemValue(t.First())}
		}
	}
	if li := s.Find("li"); li.Length() > 0 {
		return li.Map(func(_ int, el *goquery.Selection) string { return el.Text() })
	}
	if ps := s.Find("p"); ps.Length() > 1 {
		return ps.Map(func(_ int, el *goquery.Selection) string { return el.Text() })
	}
	return strings.Split(textclean.Block(itemValue(s)), "\n")
}

func textValue(s string) normalize.Value {
	if strings.TrimSpace(s) == "" {
		return normalize.Absent
	}
	return normalize.Text(s)
}
