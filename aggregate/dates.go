package aggregate

import (
	"strconv"
	"strings"
	"time"

	"relationship-dashboard/model"
)

const dayLayout = "2006-01-02"

// ParseDate parses M/D/YYYY or M/D/YY. Two-digit years are 2000+YY.
// Anything else yields model.MinDate so malformed rows sort last.
func ParseDate(s string) time.Time {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 3 {
		return model.MinDate
	}
	for _, p := range parts {
		if !allDigits(p) {
			return model.MinDate
		}
	}

	month, err := strconv.Atoi(parts[0])
	if err != nil {
		return model.MinDate
	}
	day, err := strconv.Atoi(parts[1])
	if err != nil {
		return model.MinDate
	}

	var year int
	switch len(parts[2]) {
	case 2:
		yy, err := strconv.Atoi(parts[2])
		if err != nil {
			return model.MinDate
		}
		year = 2000 + yy
	case 4:
		year, err = strconv.Atoi(parts[2])
		if err != nil {
			return model.MinDate
		}
	default:
		return model.MinDate
	}

	if month < 1 || month > 12 || day < 1 {
		return model.MinDate
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflow (2/30 -> 3/2); reject it instead.
	if t.Month() != time.Month(month) || t.Day() != day {
		return model.MinDate
	}
	return t
}

// ParseTimestamp parses a form submission timestamp ("6/29/2025 21:04:05").
// A bare date is accepted; failures yield model.MinDate.
func ParseTimestamp(s string) time.Time {
	s = strings.TrimSpace(s)
	datePart, clockPart, hasClock := strings.Cut(s, " ")

	d := ParseDate(datePart)
	if d.Equal(model.MinDate) || !hasClock {
		return d
	}

	clock, err := time.Parse("15:04:05", strings.TrimSpace(clockPart))
	if err != nil {
		return model.MinDate
	}
	return d.Add(time.Duration(clock.Hour())*time.Hour +
		time.Duration(clock.Minute())*time.Minute +
		time.Duration(clock.Second())*time.Second)
}

// Today returns the calendar day of now in loc, as a UTC midnight so it
// compares directly with parsed survey dates.
func Today(now time.Time, loc *time.Location) time.Time {
	if loc != nil {
		now = now.In(loc)
	}
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// DayKey formats a calendar day as YYYY-MM-DD.
func DayKey(t time.Time) string {
	return t.Format(dayLayout)
}

// DaysBetween counts whole calendar days from earlier to later.
func DaysBetween(earlier, later time.Time) int {
	return int(later.Sub(earlier).Hours() / 24)
}

// allDigits rejects the signs and spaces strconv.Atoi would accept.
func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
