package storage

import (
	"fmt"
	"time"
)

// ISO8601 is the layout of timestamps written by the service: UTC with
// millisecond precision, the same text JavaScript's Date.toISOString emits.
const ISO8601 = "2006-01-02T15:04:05.000Z07:00"

// FormatTime renders t as an ISO8601 string in UTC.
func FormatTime(t time.Time) string {
	return t.UTC().Format(ISO8601)
}

// isoLayouts are the ISO-8601 forms accepted by ParseTime, most common first.
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02",
	"20060102T150405Z0700",
	"20060102",
	"2006-01",
}

// ParseTime parses the ISO-8601 forms found in stored records: full
// instants with or without fraction and offset, and calendar dates.
// Values without an offset are taken as UTC.
func ParseTime(s string) (time.Time, error) {
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("not an ISO-8601 date or time: %q", s)
}
