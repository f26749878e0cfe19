package civil

import (
	"fmt"
	"math"
	"time"
)

// MaxHours is the ceiling for the fractional-hours encoding: 23:59:59
// expressed in hours, not 24.0. An encoded value must decode back to
// itself, and 24.0 would come back as 23:59:59.
const MaxHours = 86399.0 / 3600.0

const maxSecondOfDay = 24*60*60 - 1

// floorGuard is added before flooring a seconds value. Hour fractions
// arrive as decimal-truncated literals (23.999722 for the last second of
// the day) or as former single-precision floats, both of which can sit a
// few milliseconds under the whole second they mean.
const floorGuard = 0.01

// Clock is a wall-clock time of day. Component ranges are independent;
// there is no carry between them.
type Clock struct {
	Hour   int
	Minute int
	Second int
}

// ClockFromVec decodes an (hour, minute, second) triple, clamping each
// component into its own range.
func ClockFromVec(v [3]int) Clock {
	return Clock{
		Hour:   clampInt(v[0], 0, 23),
		Minute: clampInt(v[1], 0, 59),
		Second: clampInt(v[2], 0, 59),
	}
}

// ClockFromHours decodes a fractional-hours value such as 9.5 for
// 09:30:00. The value is floored to whole seconds and clamped into
// [0, 86399], so the result can never read 24:00:00.
func ClockFromHours(v float64) Clock {
	if math.IsNaN(v) {
		// NaN reads as midnight.
		return Clock{}
	}
	ts := math.Floor(v*3600 + floorGuard)
	if ts < 0 {
		ts = 0
	}
	if ts > maxSecondOfDay {
		ts = maxSecondOfDay
	}
	n := int(ts)
	return Clock{Hour: n / 3600, Minute: n / 60 % 60, Second: n % 60}
}

// Vec encodes the clock as an (hour, minute, second) triple.
func (c Clock) Vec() [3]int {
	return [3]int{c.Hour, c.Minute, c.Second}
}

// Hours encodes the clock as fractional hours, clamped into [0, MaxHours].
func (c Clock) Hours() float64 {
	h := float64(c.SecondOfDay()) / 3600
	if h < 0 {
		return 0
	}
	if h > MaxHours {
		return MaxHours
	}
	return h
}

// SecondOfDay returns the clock as seconds since midnight.
func (c Clock) SecondOfDay() int {
	return c.Hour*3600 + c.Minute*60 + c.Second
}

// String formats as HH:MM:SS.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", c.Hour, c.Minute, c.Second)
}

// Compare returns -1, 0 or +1 ordering c against o.
func (c Clock) Compare(o Clock) int {
	a, b := c.SecondOfDay(), o.SecondOfDay()
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

// WithHour and friends replace one component without clamping.
func (c Clock) WithHour(h int) Clock   { c.Hour = h; return c }
func (c Clock) WithMinute(m int) Clock { c.Minute = m; return c }
func (c Clock) WithSecond(s int) Clock { c.Second = s; return c }

// ParseClock parses HH:MM or HH:MM:SS.
func ParseClock(s string) (Clock, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return Clock{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}, nil
		}
	}
	return Clock{}, fmt.Errorf("invalid time %q (want HH:MM or HH:MM:SS)", s)
}
