package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// num is a decimal with an optional fraction, captured
const num = `([0-9]+(?:\.[0-9]+)?)`

var reNumber = regexp.MustCompile(`[0-9]+(?:\.[0-9]+)?`)

// fold trims and lower-cases raw text
func fold(raw string) string { return strings.ToLower(strings.TrimSpace(raw)) }

// isDigits reports whether s is one or more ASCII digits and nothing else
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// atoi parses an all-digit string, saturating at MaxInt
func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return math.MaxInt
	}
	return n
}

// parseFloat parses a matched number, "" is 0
func parseFloat(s string) float64 {
	if s == "" {
		return 0
	}
	f, _ := strconv.ParseFloat(s, 64) // out of range still yields ±Inf
	return f
}

// unit is one family of duration words and its conversion to minutes (n*mul/div)
// words are ordered longest first so "hours" wins over "h"
type unit struct {
	words []string
	mul   float64
	div   float64
}

// sum adds every non-overlapping "<number> <word>" in s, left to right
// A word only counts when the next rune is not a letter, so "1hr30min" yields
// both 1hr and 30min while "5 hamburgers" yields nothing
func (u unit) sum(s string) float64 {
	total := 0.0
	for i := 0; i < len(s); {
		end, ok := numberEnd(s, i)
		if !ok {
			i++
			continue
		}
		if k, ok := u.wordAt(s, skipSpace(s, end)); ok {
			total += parseFloat(s[i:end]) * u.mul / u.div
			i = k
			continue
		}
		i++
	}
	return total
}

// wordAt returns the end offset of the first unit word starting at j
func (u unit) wordAt(s string, j int) (int, bool) {
	rest := s[j:]
	for _, w := range u.words {
		if !strings.HasPrefix(rest, w) {
			continue
		}
		k := j + len(w)
		if !letterAt(s, k) {
			return k, true
		}
	}
	return 0, false
}

// numberEnd matches [0-9]+(\.[0-9]+)? anchored at i
func numberEnd(s string, i int) (int, bool) {
	j := i
	for j < len(s) && isDigit(s[j]) {
		j++
	}
	if j == i {
		return 0, false
	}
	if j+1 < len(s) && s[j] == '.' && isDigit(s[j+1]) {
		j += 2
		for j < len(s) && isDigit(s[j]) {
			j++
		}
	}
	return j, true
}

func skipSpace(s string, j int) int {
	for j < len(s) {
		r, size := utf8.DecodeRuneInString(s[j:])
		if !unicode.IsSpace(r) {
			break
		}
		j += size
	}
	return j
}

func letterAt(s string, k int) bool {
	if k >= len(s) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s[k:])
	return unicode.IsLetter(r)
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
