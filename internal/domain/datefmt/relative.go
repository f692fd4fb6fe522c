package datefmt

import (
	"fmt"
	"math"
	"time"
)

// Locale selects the wording of relative timestamps.
type Locale int

const (
	Spanish Locale = iota
	English
)

type relativeWords struct {
	now       string
	minutes   string
	hours     string
	yesterday string
	days      string
}

var words = map[Locale]relativeWords{
	Spanish: {now: "ahora", minutes: "hace %d min", hours: "hace %dh", yesterday: "ayer", days: "hace %d días"},
	English: {now: "now", minutes: "%d min ago", hours: "%dh ago", yesterday: "yesterday", days: "%d days ago"},
}

// Relative renders raw relative to the current time in Spanish.
func Relative(raw string) string {
	return Spanish.RelativeTo(raw, time.Now())
}

// RelativeTo renders raw relative to now. Elapsed time is floored to whole
// minutes, hours and days; anything a week or older falls back to Date.
func (l Locale) RelativeTo(raw string, now time.Time) string {
	t, ok := Parse(raw)
	if !ok {
		return Placeholder
	}

	w, ok := words[l]
	if !ok {
		w = words[Spanish]
	}

	elapsed := now.Sub(t)
	minutes := int(math.Floor(elapsed.Minutes()))
	hours := int(math.Floor(elapsed.Hours()))
	days := int(math.Floor(elapsed.Hours() / 24))

	switch {
	case minutes < 1:
		return w.now
	case minutes < 60:
		return fmt.Sprintf(w.minutes, minutes)
	case hours < 24:
		return fmt.Sprintf(w.hours, hours)
	case days == 1:
		return w.yesterday
	case days < 7:
		return fmt.Sprintf(w.days, days)
	}
	return Date(raw)
}
