package utils

import (
	"strings"
	"time"
)

const layoutDate = "2006-01-02"

// Clock is injected where "today" matters so tests can pin it.
type Clock func() time.Time

// SystemClock returns local time.
func SystemClock() time.Time {
	return time.Now()
}

// ParseDate parses YYYY-MM-DD in local timezone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(layoutDate, strings.TrimSpace(s), time.Local)
}

// IsDate reports whether s is a valid YYYY-MM-DD date.
func IsDate(s string) bool {
	_, err := ParseDate(s)
	return err == nil
}

// FormatDate formats time to YYYY-MM-DD in local timezone.
func FormatDate(t time.Time) string {
	return t.In(time.Local).Format(layoutDate)
}
