package normalize

import (
	"regexp"
	"strings"
)

// Duration grammars, tried in this order against the trimmed lower-cased text
// 1 pure digits                  "90"
// 2 clock                        "1:30" "1:30:00"
// 3 ISO-8601 time part           "pt1h30m" "pt45m" "pt90s"
// 4 unit words, all summed       "1 hour 30 minutes" "1hr30min" "90 min"
// 5 compact units, only when 4 found nothing
// 6 first bare number, only when 5 found nothing
var (
	reClock = regexp.MustCompile(`^([0-9]+):([0-9]{1,2})(?::([0-9]{1,2}))?$`)
	reISO   = regexp.MustCompile(`^pt(?:` + num + `h)?(?:` + num + `m)?(?:` + num + `s)?$`)

	reCompactHM = regexp.MustCompile(num + `h[\s\p{Zs}]*` + num + `m`)
	reCompactH  = regexp.MustCompile(num + `h\b`)
	reCompactM  = regexp.MustCompile(num + `m\b`)
)

// durationFolder maps alternative dashes to '-' and commas to spaces before unit scanning
var durationFolder = strings.NewReplacer(",", " ", "–", "-", "—", "-")

var (
	hours   = unit{words: []string{"hours", "hour", "hrs", "hr", "h"}, mul: 60, div: 1}
	minutes = unit{words: []string{"minutes", "minute", "mins", "min", "m"}, mul: 1, div: 1}
	seconds = unit{words: []string{"seconds", "second", "secs", "sec", "s"}, mul: 1, div: 60}
)

// Duration converts v into whole minutes
// Numbers are taken as minutes; Absent and empty text yield 0
func Duration(v Value) int {
	switch v.kind {
	case KindNumber:
		return toInt(v.num)
	case KindText:
		return durationText(v.text)
	default:
		return 0
	}
}

// DurationOf is Duration over a loosely typed input, see Of
func DurationOf(in any) int { return Duration(Of(in)) }

func durationText(raw string) int {
	s := fold(raw)
	if s == "" {
		return 0
	}
	if isDigits(s) {
		return atoi(s)
	}
	return toInt(durationMinutes(s))
}

// durationMinutes runs grammars 2 through 6 over folded, non-digit text
func durationMinutes(s string) float64 {
	if m := reClock.FindStringSubmatch(s); m != nil {
		return parseFloat(m[1])*60 + parseFloat(m[2]) + parseFloat(m[3])/60
	}

	s = durationFolder.Replace(s)

	if m := reISO.FindStringSubmatch(s); m != nil {
		return parseFloat(m[1])*60 + parseFloat(m[2]) + parseFloat(m[3])/60
	}

	total := hours.sum(s) + minutes.sum(s) + seconds.sum(s)
	if total == 0 {
		total = compactMinutes(s)
	}
	if total == 0 {
		total = parseFloat(reNumber.FindString(s))
	}
	return total
}

// compactMinutes reads glued forms like "2h15m", then lone "2h", then lone "15m"
// The first family with any match decides the result
func compactMinutes(s string) float64 {
	if ms := reCompactHM.FindAllStringSubmatch(s, -1); len(ms) > 0 {
		t := 0.0
		for _, m := range ms {
			t += parseFloat(m[1])*60 + parseFloat(m[2])
		}
		return t
	}
	if ms := reCompactH.FindAllStringSubmatch(s, -1); len(ms) > 0 {
		t := 0.0
		for _, m := range ms {
			t += parseFloat(m[1]) * 60
		}
		return t
	}
	if ms := reCompactM.FindAllStringSubmatch(s, -1); len(ms) > 0 {
		t := 0.0
		for _, m := range ms {
			t += parseFloat(m[1])
		}
		return t
	}
	return 0
}
