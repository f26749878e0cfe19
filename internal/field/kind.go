package field

import (
	"fmt"

	"datebook-cli/internal/civil"
)

// Kind binds a slot shape to a value model.
type Kind int

const (
	// KindDate is a calendar date stored as a (year, month, day) triple.
	KindDate Kind = iota
	// KindClock is a time of day stored as an (hour, minute, second) triple.
	KindClock
	// KindClockHours is a time of day stored as fractional hours.
	KindClockHours
)

func (k Kind) String() string {
	switch k {
	case KindDate:
		return "date"
	case KindClock:
		return "clock"
	case KindClockHours:
		return "clock-hours"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Shape returns the slot shape this kind expects.
func (k Kind) Shape() ValueShape {
	if k == KindClockHours {
		return ShapeScalar
	}
	return ShapeVec3
}

// Unit is one selector column of a picker: a name and the bounds the
// column bumps and enumerates over. Day keeps its static 1..31 bounds;
// month-length clamping happens in the apply step, not the selector.
type Unit struct {
	Name string
	Min  int
	Max  int
}

// Clamp forces n into the unit's bounds.
func (u Unit) Clamp(n int) int {
	if n < u.Min {
		return u.Min
	}
	if n > u.Max {
		return u.Max
	}
	return n
}

// Units returns the selector columns in display order. Both clock
// encodings edit through the same three columns.
func (k Kind) Units() []Unit {
	if k == KindDate {
		return []Unit{
			{Name: "year", Min: civil.MinYear, Max: civil.MaxYear},
			{Name: "month", Min: 1, Max: 12},
			{Name: "day", Min: 1, Max: 31},
		}
	}
	return []Unit{
		{Name: "hour", Min: 0, Max: 23},
		{Name: "minute", Min: 0, Max: 59},
		{Name: "second", Min: 0, Max: 59},
	}
}

// Spec declares one editable field on a host object.
type Spec struct {
	Key   string
	Label string
	Kind  Kind
}

// ShapeError reports a stored slot whose shape does not match its field
// spec. It is the only recoverable slot error: the field renders as
// broken and refuses edits, everything else keeps working.
type ShapeError struct {
	Field string
	Want  ValueShape
	Got   ValueShape
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("field %s: stored %s where %s expected", e.Field, e.Got, e.Want)
}

// CheckShape validates a slot against its spec.
func CheckShape(spec Spec, v Value) error {
	if v.Shape != spec.Kind.Shape() {
		return &ShapeError{Field: spec.Key, Want: spec.Kind.Shape(), Got: v.Shape}
	}
	return nil
}
