package doc

import (
	"fmt"
	"time"
)

// DateLayout is the canonical text form of Date values.
const DateLayout = "2006-01-02T15:04:05.000Z"

func canonicalTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

// FormatDate returns t in canonical form: UTC, millisecond precision.
func FormatDate(t time.Time) string {
	return canonicalTime(t).Format(DateLayout)
}

// ParseDate parses an ISO-8601 timestamp (RFC 3339, with or without
// fractional seconds) or a bare date. The result is canonicalized.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err == nil {
		return canonicalTime(t), nil
	}
	t, dErr := time.Parse(time.DateOnly, s)
	if dErr == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("not an ISO-8601 date %q: %w", s, err)
}
