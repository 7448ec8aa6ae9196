package normalize

import "regexp"

// reRange finds "4-6", "4 – 6", "4—6" or "4 to 6" anywhere in the text
var reRange = regexp.MustCompile(num + `[\s\p{Zs}]*(?:-|\x{2013}|\x{2014}|to)[\s\p{Zs}]*` + num)

// Servings converts v into a whole serving count
// A range yields its lower bound; otherwise the first number found is used
func Servings(v Value) int {
	switch v.kind {
	case KindNumber:
		return toInt(v.num)
	case KindText:
		return servingsText(v.text)
	default:
		return 0
	}
}

// ServingsOf is Servings over a loosely typed input, see Of
func ServingsOf(in any) int { return Servings(Of(in)) }

func servingsText(raw string) int {
	s := fold(raw)
	if s == "" {
		return 0
	}
	if isDigits(s) {
		return atoi(s)
	}
	if m := reRange.FindStringSubmatch(s); m != nil {
		return toInt(parseFloat(m[1]))
	}
	if n := reNumber.FindString(s); n != "" {
		return toInt(parseFloat(n))
	}
	return 0
}
