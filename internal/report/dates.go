package report

import (
	"strings"
	"time"
)

const (
	// NotAvailable stands in for any missing date.
	NotAvailable = "N/A"
	// InvalidDate is what an unparseable date renders as.
	InvalidDate = "Invalid Date"

	displayLayout = "2 January 2006"
)

// dateLayouts are tried in order; zoned timestamps are shown in UTC.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01",
	"2006/01/02",
	"01/02/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
}

// FormatDate renders dateStr as an en-GB long date ("15 January 2025").
// Empty input and the literal "N/A" pass through as "N/A"; anything that
// cannot be parsed renders as "Invalid Date".
func FormatDate(dateStr string) string {
	s := strings.TrimSpace(dateStr)
	if s == "" || s == NotAvailable {
		return NotAvailable
	}
	t, ok := parseDate(s)
	if !ok {
		return InvalidDate
	}
	return t.UTC().Format(displayLayout)
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// rawDate is the metadata value as reported back in the bundle.
func rawDate(s string) string {
	if s == "" {
		return NotAvailable
	}
	return s
}

// ReportPeriod joins the two formatted dates.
func ReportPeriod(from, to string) string {
	return FormatDate(from) + " - " + FormatDate(to)
}
