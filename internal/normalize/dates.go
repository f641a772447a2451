package normalize

import (
	"strings"
	"time"
)

// Date formats seen in incident exports. Spreadsheet datetimes serialize as
// "2006-01-02 15:04:05"; manual entries use US slash dates.
var dateFormats = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
}

// ParseDate attempts to parse a date string in multiple common formats.
// Returns nil if the input is empty or unparseable.
func ParseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, fmt := range dateFormats {
		if t, err := time.Parse(fmt, s); err == nil {
			return &t
		}
	}
	return nil
}

// MonthKey formats a date as the canonical YYYY-MM grouping key.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// DayKey formats a date as the canonical YYYY-MM-DD grouping key.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
