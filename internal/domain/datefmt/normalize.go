// Package datefmt normalizes the timestamp shapes emitted by the SEMEFO
// backend into zoned instants and renders them in the process's local time.
package datefmt

import (
	"regexp"
	"strings"
	"time"
)

var (
	// 2026-01-20T17:34:00Z, 2026-01-20T17:34:00.123-06:00
	zonedISO = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T.+(?:[Zz]|[+-]\d{2}:\d{2})$`)

	// 2026-01-20T17:34:00, 2026-01-20T17:34:00.123456
	naiveISO = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}(?::\d{2}(?:\.\d+)?)?$`)

	// 2026-01-20 17:34:00.123456, 2026-01-20 17:34:00+00:00
	spaced = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}) (\d{2}:\d{2})(:\d{2})?(?:\.(\d+))?(Z|[+-]\d{2}(?::\d{2})?)?$`)

	dateOnly = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

var parseLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
}

// Normalize rewrites raw into a zone-qualified ISO-8601 string.
//
// Zoned ISO strings are returned unchanged, apart from upper-casing a
// lowercase "z". ISO strings without a zone are
// taken as UTC and get a "Z". Space-separated database timestamps are taken
// as UTC (unless they carry an offset) and rewritten as
// YYYY-MM-DDTHH:MM:SS.mmmZ with the fraction cut or padded to milliseconds.
// Anything else is returned trimmed, and will fail to parse.
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)

	switch {
	case s == "":
		return ""
	case zonedISO.MatchString(s):
		if strings.HasSuffix(s, "z") {
			s = strings.TrimSuffix(s, "z") + "Z"
		}
		return s
	case naiveISO.MatchString(s):
		return s + "Z"
	case dateOnly.MatchString(s):
		return s + "T00:00:00.000Z"
	}

	m := spaced.FindStringSubmatch(s)
	if m == nil {
		return s
	}

	date, hm, sec, frac, zone := m[1], m[2], m[3], m[4], m[5]
	if sec == "" {
		sec = ":00"
	}

	switch {
	case zone == "" || zone == "Z":
		zone = "Z"
	case len(zone) == 3:
		zone += ":00"
	}

	return date + "T" + hm + sec + "." + millis(frac) + zone
}

// Parse normalizes raw and returns the instant it denotes.
func Parse(raw string) (time.Time, bool) {
	s := Normalize(raw)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// millis truncates or right-pads a fractional-second digit string to 3 digits.
func millis(frac string) string {
	if len(frac) >= 3 {
		return frac[:3]
	}
	return frac + strings.Repeat("0", 3-len(frac))
}
