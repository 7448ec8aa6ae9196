// Package extract reads recipe data out of HTML pages
// Extractors run in a fixed order, JSON-LD first then microdata
package extract

import (
	"bytes"
	"net/url"
	"strings"

	"recipescraper/internal/core/textclean"
	perr "recipescraper/internal/platform/errors"
	pstrings "recipescraper/internal/platform/strings"

	"github.com/PuerkitoBio/goquery"
)

// noiseSelectors carry no recipe text and are dropped before the page is handed to a model
var noiseSelectors = []string{
	"script", "style", "noscript", "template",
	"nav", "footer", "header", "aside",
	"iframe", "video", "audio", "svg", "canvas",
	"form", "button", "input", "select", "textarea",
	".sidebar", ".menu", ".navigation", ".ads", ".advertisement", ".comments",
}

// Page is a parsed HTML document plus the URL it was served from
type Page struct {
	doc  *goquery.Document
	raw  []byte
	base *url.URL
}

// Meta is the page-level metadata used when no structured recipe is present
type Meta struct {
	Title       string
	Description string
	Image       string
	SiteName    string
}

// Parse reads an HTML body, pageURL resolves relative links
func Parse(body []byte, pageURL string) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUpstream, "parse html")
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		base = nil
	}
	return &Page{doc: doc, raw: body, base: base}, nil
}

// Recipe runs the extractors in order and returns the first complete candidate
func (p *Page) Recipe() (Candidate, Source, bool) {
	if c, ok := p.JSONLD(); ok {
		return c, SourceJSONLD, true
	}
	if c, ok := p.Microdata(); ok {
		return c, SourceMicrodata, true
	}
	return Candidate{}, "", false
}

// Meta reads Open Graph tags with plain HTML fallbacks
func (p *Page) Meta() Meta {
	m := Meta{
		Title: textclean.Line(pstrings.FirstNonEmpty(
			p.metaContent(`meta[property="og:title"]`),
			p.metaContent(`meta[name="twitter:title"]`),
			p.doc.Find("title").First().Text(),
		)),
		Description: textclean.Line(pstrings.FirstNonEmpty(
			p.metaContent(`meta[property="og:description"]`),
			p.metaContent(`meta[name="description"]`),
		)),
		Image: pstrings.FirstNonEmpty(
			p.metaContent(`meta[property="og:image"]`),
			p.metaContent(`meta[name="twitter:image"]`),
		),
		SiteName: textclean.Line(p.metaContent(`meta[property="og:site_name"]`)),
	}
	m.Image = p.Resolve(m.Image)
	return m
}

func (p *Page) metaContent(sel string) string {
	v, _ := p.doc.Find(sel).First().Attr("content")
	return strings.TrimSpace(v)
}

// Content returns the main content fragment as HTML with noise removed
// The parsed document is left untouched
func (p *Page) Content() (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(p.raw))
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeUpstream, "parse html")
	}
	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}
	for _, tag := range []string{"main", "article", "body"} {
		if s := doc.Find(tag); s.Length() > 0 {
			return goquery.OuterHtml(s.First())
		}
	}
	return "", perr.NoRecipef("no content container found")
}

// Resolve makes ref absolute against the page URL, it returns "" for empty or unusable refs
func (p *Page) Resolve(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" || strings.HasPrefix(ref, "data:") {
		return ""
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	if p.base != nil {
		u = p.base.ResolveReference(u)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	return u.String()
}

// plain strips markup from a fragment, text without tags passes through
func plain(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return doc.Text()
}
