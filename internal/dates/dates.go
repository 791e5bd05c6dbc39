// Package dates parses and formats the DD/MM/YYYY dates operators type.
// The data service itself speaks RFC 3339; this package only covers the
// user-facing boundary.
package dates

import (
	"errors"
	"regexp"
	"strconv"
	"time"
)

// ErrInvalid is returned for anything that is not a real DD/MM/YYYY date.
var ErrInvalid = errors.New("data inválida, use o formato DD/MM/AAAA")

var pattern = regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4})$`)

// Parse converts DD/MM/YYYY text into a local-time date at midnight.
// Both digit count and calendar validity are enforced: "1/1/2020" and
// "31/02/2024" fail alike.
func Parse(s string) (time.Time, error) {
	m := pattern.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, ErrInvalid
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
	// time.Date normalizes overflow (Feb 31 becomes Mar 2), so a changed
	// component means the input named a day that does not exist.
	if t.Day() != day || t.Month() != time.Month(month) || t.Year() != year {
		return time.Time{}, ErrInvalid
	}
	return t, nil
}

// Format renders a date as DD/MM/YYYY.
func Format(t time.Time) string {
	return t.Format("02/01/2006")
}

// FormatPtr renders an optional date, returning "" for nil.
func FormatPtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return Format(*t)
}
