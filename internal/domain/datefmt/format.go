package datefmt

import "time"

// Placeholder is rendered for missing or unparseable timestamps.
const Placeholder = "-"

const (
	layoutDateTime = "02/01/2006 15:04"
	layoutDate     = "02/01/2006"
	layoutClock    = "15:04"
)

// DateTime renders raw as dd/mm/yyyy hh:mm in local time.
func DateTime(raw string) string {
	return render(raw, layoutDateTime)
}

// Date renders raw as dd/mm/yyyy in local time.
func Date(raw string) string {
	return render(raw, layoutDate)
}

// Clock renders raw as hh:mm (24-hour) in local time.
func Clock(raw string) string {
	return render(raw, layoutClock)
}

// Deref returns the pointed-to timestamp, or "" for nil, so optional
// backend fields render as Placeholder.
func Deref(raw *string) string {
	if raw == nil {
		return ""
	}
	return *raw
}

func render(raw, layout string) string {
	t, ok := Parse(raw)
	if !ok {
		return Placeholder
	}
	return t.In(time.Local).Format(layout)
}
