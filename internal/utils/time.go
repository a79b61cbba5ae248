package utils

import (
	"fmt"
	"strings"
	"time"

	_ "time/tzdata"

	"github.com/go-universal/jalaali"
)

const (
	CalendarGregorian = "gregorian"
	CalendarJalali    = "jalali"
)

const stampLayout = "2006/01/02 - 15:04"

// LoadLocation resolves an IANA zone name. Empty and "Local" mean the host zone.
func LoadLocation(name string) (*time.Location, error) {
	switch strings.TrimSpace(name) {
	case "", "Local", "local":
		return time.Local, nil
	case "Asia/Tehran":
		// The jalaali helper carries its own Tehran zone for minimal systems.
		return jalaali.TehranTz(), nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", name, err)
	}
	return loc, nil
}

// ValidCalendar reports whether name is a supported display calendar.
func ValidCalendar(name string) bool {
	return name == CalendarGregorian || name == CalendarJalali
}

// FormatStamp returns a string like "2024/06/01 - 16:40" in loc, using the
// Jalali calendar when requested.
func FormatStamp(t time.Time, loc *time.Location, calendar string) string {
	if loc == nil {
		loc = time.Local
	}
	t = t.In(loc)
	if calendar == CalendarJalali {
		return jalaali.New(t).Format(stampLayout)
	}
	return t.Format(stampLayout)
}

// ISOTimestamp is the format written to last_updated.
func ISOTimestamp(t time.Time) string {
	return t.Format(time.RFC3339)
}

// Ago renders a coarse age such as "5 minutes" or "2 hours".
func Ago(since time.Duration) string {
	switch {
	case since < time.Minute:
		return "less than a minute"
	case since < time.Hour:
		return plural(int(since/time.Minute), "minute")
	case since < 24*time.Hour:
		return plural(int(since/time.Hour), "hour")
	default:
		return plural(int(since/(24*time.Hour)), "day")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
