// Package civil implements calendar dates and wall-clock times with no
// time zone attached. Components are plain bounded ints; write paths
// clamp out-of-range values instead of rejecting them.
package civil

import (
	"fmt"
	"time"
)

// Year bounds accepted by the pickers and the CLI.
const (
	MinYear = 1900
	MaxYear = 2100
)

// defaultYear is what an unset (zero) year component decodes to.
const defaultYear = 1975

// Date is a calendar date. Construct via DateFromVec, Today or ParseDate;
// after mutating components, run Clamp before persisting.
type Date struct {
	Year  int
	Month int
	Day   int
}

// DateFromVec decodes a (year, month, day) triple. Zero components are
// unset and take defaults (1975, January, the 1st). Year and month are
// clamped into range, then the day is clamped against the month length.
func DateFromVec(v [3]int) Date {
	y, mo, d := v[0], v[1], v[2]
	if y == 0 {
		y = defaultYear
	}
	if mo == 0 {
		mo = 1
	}
	if d == 0 {
		d = 1
	}
	dt := Date{
		Year:  clampInt(y, MinYear, MaxYear),
		Month: clampInt(mo, 1, 12),
		Day:   clampInt(d, 1, 31),
	}
	return dt.Clamp()
}

// Vec encodes the date back to its (year, month, day) triple.
func (d Date) Vec() [3]int {
	return [3]int{d.Year, d.Month, d.Day}
}

// IsLeapYear reports whether year has a February 29.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the length of a month. Months outside 1..12 read
// as long months (31) rather than failing.
func DaysInMonth(month, year int) int {
	switch month {
	case 4, 6, 9, 11:
		return 30
	case 2:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	default:
		return 31
	}
}

// Clamp pulls the day back into the month. Changing the year or month can
// strand the day past the month end (Jan 31 then month set to Feb); the
// stranded day becomes the last valid day, never an error. Idempotent.
func (d Date) Clamp() Date {
	max := DaysInMonth(d.Month, d.Year)
	if d.Day < 1 {
		d.Day = 1
	}
	if d.Day > max {
		d.Day = max
	}
	return d
}

// WithYear and friends replace one component without clamping.
func (d Date) WithYear(year int) Date   { d.Year = year; return d }
func (d Date) WithMonth(month int) Date { d.Month = month; return d }
func (d Date) WithDay(day int) Date     { d.Day = day; return d }

// String formats as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Today returns the current date in local time.
func Today() Date {
	now := time.Now()
	return Date{Year: now.Year(), Month: int(now.Month()), Day: now.Day()}
}

// Compare returns -1, 0 or +1 ordering d against o.
func (d Date) Compare(o Date) int {
	av, bv := d.Vec(), o.Vec()
	for i := range av {
		if av[i] != bv[i] {
			if av[i] < bv[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Weekday returns the day of the week.
func (d Date) Weekday() time.Weekday {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC).Weekday()
}

// MonthName returns the English month name, or "?" outside 1..12.
func (d Date) MonthName() string {
	if d.Month < 1 || d.Month > 12 {
		return "?"
	}
	return time.Month(d.Month).String()
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}, nil
}

func clampInt(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
