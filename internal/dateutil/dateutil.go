// Package dateutil validates and compares naive calendar dates in
// YYYY-MM-DD form. Dates are plain strings with no timezone attached;
// malformed input never produces an error, comparisons and arithmetic
// degrade to false or zero instead.
package dateutil

import "time"

// Accepted year range for valid dates.
const (
	MinYear = 1900
	MaxYear = 2100
)

// ParseDate splits s into year, month and day. It requires the exact
// YYYY-MM-DD shape: ten bytes, digits in the date positions, dashes in
// between. It does not check calendar validity; use IsValidDate for that.
func ParseDate(s string) (year, month, day int, ok bool) {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return 0, 0, 0, false
	}
	for i, c := range []byte(s) {
		if i == 4 || i == 7 {
			continue
		}
		if c < '0' || c > '9' {
			return 0, 0, 0, false
		}
	}
	year = atoi4(s[0:4])
	month = atoi2(s[5:7])
	day = atoi2(s[8:10])
	return year, month, day, true
}

func atoi4(s string) int {
	return int(s[0]-'0')*1000 + int(s[1]-'0')*100 + int(s[2]-'0')*10 + int(s[3]-'0')
}

func atoi2(s string) int {
	return int(s[0]-'0')*10 + int(s[1]-'0')
}

// IsValidDate reports whether s is a well-formed calendar date: exact
// YYYY-MM-DD shape, year within [MinYear, MaxYear], month within [1,12],
// and day within the month's length for that year.
func IsValidDate(s string) bool {
	year, month, day, ok := ParseDate(s)
	if !ok {
		return false
	}
	if year < MinYear || year > MaxYear {
		return false
	}
	if month < 1 || month > 12 {
		return false
	}
	if day < 1 {
		return false
	}
	return day <= DaysInMonth(month, year)
}

// CurrentDate returns the local calendar date as YYYY-MM-DD.
func CurrentDate() string {
	return time.Now().Format("2006-01-02")
}

// IsLeapYear reports whether year is a Gregorian leap year.
func IsLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// DaysInMonth returns the number of days in the given month of the given
// year, or 0 for an invalid month.
func DaysInMonth(month, year int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	case 2:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	default:
		return 0
	}
}

// DaysBetween returns the signed number of calendar days from a to b.
// The count is exact (proleptic Gregorian). Returns 0 if either input
// is unparseable.
func DaysBetween(a, b string) int {
	ta, ok := toTime(a)
	if !ok {
		return 0
	}
	tb, ok := toTime(b)
	if !ok {
		return 0
	}
	return int(tb.Sub(ta) / (24 * time.Hour))
}

// IsDateBefore reports whether a chronologically precedes b. Returns
// false if either input is unparseable.
func IsDateBefore(a, b string) bool {
	ta, ok := toTime(a)
	if !ok {
		return false
	}
	tb, ok := toTime(b)
	if !ok {
		return false
	}
	return ta.Before(tb)
}

// IsDateEqual reports whether the two date strings are literally
// identical. No calendar normalization happens.
func IsDateEqual(a, b string) bool {
	return a == b
}

// IsDateInRange reports whether d falls within [start, end] inclusive.
// Returns false if any input is unparseable.
func IsDateInRange(d, start, end string) bool {
	td, ok := toTime(d)
	if !ok {
		return false
	}
	ts, ok := toTime(start)
	if !ok {
		return false
	}
	te, ok := toTime(end)
	if !ok {
		return false
	}
	return !td.Before(ts) && !td.After(te)
}

// toTime converts a date string to a UTC midnight instant. UTC keeps day
// arithmetic free of DST jumps.
func toTime(s string) (time.Time, bool) {
	year, month, day, ok := ParseDate(s)
	if !ok {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}
