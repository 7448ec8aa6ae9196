// Package textclean tidies human text scraped from recipe pages
// Pipeline order
// 1 Control/invalid byte removal (Sanitize)
// 2 HTML entity decoding, structured data often double-encodes "&amp;"
// 3 Unicode NFKC normalization, so "ﬁ" becomes "fi" and "½" becomes "1⁄2"
// 4 Remove format chars (zero-width joiners, BOM, soft hyphen)
// 5 Width fold fullwidth to ASCII
// 6 Collapse whitespace and trim
package textclean

import (
	"html"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// pool of fresh transformer chains
var chainPool = sync.Pool{
	New: func() any {
		// order matters and mirrors the documented pipeline
		return transform.Chain(
			norm.NFKC,
			runes.Remove(runes.In(unicode.Cf)), // ZWJ ZWNJ FEFF soft hyphen etc
			width.Fold,
		)
	},
}

// Line returns s cleaned and flattened to a single line
func Line(s string) string {
	return collapseSpaces(prepare(s), false)
}

// Block returns s cleaned with line breaks kept, runs of blank lines become one newline
func Block(s string) string {
	return collapseSpaces(prepare(s), true)
}

// Lines cleans every entry with Line and drops the ones left empty
func Lines(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if c := Line(s); c != "" {
			out = append(out, c)
		}
	}
	return out
}

func prepare(s string) string {
	if s == "" {
		return ""
	}

	s = Sanitize(s)
	s = html.UnescapeString(s)

	tr := chainPool.Get().(transform.Transformer)
	ns, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		// a failed transform keeps the sanitized input rather than losing the text
		return s
	}
	return ns
}

// collapseSpaces converts whitespace runs to a single ASCII space
// With keepLines, runs that contain a newline collapse to a single newline instead
// Leading and trailing whitespace is trimmed
func collapseSpaces(s string, keepLines bool) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	inWS := false
	sawNL := false
	flush := func() {
		if !inWS {
			return
		}
		if sawNL && keepLines {
			b.WriteByte('\n')
		} else {
			b.WriteByte(' ')
		}
		inWS = false
		sawNL = false
	}
	for _, r := range s {
		if unicode.IsSpace(r) {
			inWS = true
			if r == '\n' || r == '\r' {
				sawNL = true
			}
			continue
		}
		flush()
		b.WriteRune(r)
	}
	flush()
	return strings.Trim(b.String(), " \n\t\r")
}
