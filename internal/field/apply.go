package field

import (
	"fmt"

	"datebook-cli/internal/civil"
)

// Apply sets one unit of a slot to n and returns the re-encoded slot.
// It is the single write path for picker edits: decode, clamp n into the
// unit's bounds, set, clamp the model, encode. A shape mismatch aborts
// before anything is mutated.
func Apply(spec Spec, v Value, unit, n int) (Value, error) {
	if err := CheckShape(spec, v); err != nil {
		return v, err
	}
	units := spec.Kind.Units()
	if unit < 0 || unit >= len(units) {
		return v, fmt.Errorf("field %s: no unit %d", spec.Key, unit)
	}
	n = units[unit].Clamp(n)

	switch spec.Kind {
	case KindDate:
		d := civil.DateFromVec(v.Vec)
		switch unit {
		case 0:
			d = d.WithYear(n)
		case 1:
			d = d.WithMonth(n)
		case 2:
			d = d.WithDay(n)
		}
		d = d.Clamp()
		return Value{Shape: ShapeVec3, Vec: d.Vec()}, nil

	case KindClockHours:
		c := setClockUnit(civil.ClockFromHours(v.Scalar), unit, n)
		return Scalar(c.Hours()), nil

	default:
		c := setClockUnit(civil.ClockFromVec(v.Vec), unit, n)
		return Value{Shape: ShapeVec3, Vec: c.Vec()}, nil
	}
}

func setClockUnit(c civil.Clock, unit, n int) civil.Clock {
	switch unit {
	case 0:
		return c.WithHour(n)
	case 1:
		return c.WithMinute(n)
	default:
		return c.WithSecond(n)
	}
}

// Components decodes a slot and returns its normalized components in
// unit order: (year, month, day) or (hour, minute, second).
func Components(spec Spec, v Value) ([3]int, error) {
	if err := CheckShape(spec, v); err != nil {
		return [3]int{}, err
	}
	switch spec.Kind {
	case KindDate:
		return civil.DateFromVec(v.Vec).Vec(), nil
	case KindClockHours:
		return civil.ClockFromHours(v.Scalar).Vec(), nil
	default:
		return civil.ClockFromVec(v.Vec).Vec(), nil
	}
}

// EncodeDate stores a calendar value in the vec3 slot encoding.
func EncodeDate(d civil.Date) Value {
	v := d.Clamp().Vec()
	return Vec3(v[0], v[1], v[2])
}

// EncodeClock stores a clock value in the slot encoding of k: fractional
// hours for KindClockHours, an (hour, minute, second) triple otherwise.
func EncodeClock(k Kind, c civil.Clock) Value {
	if k == KindClockHours {
		return Scalar(c.Hours())
	}
	v := c.Vec()
	return Vec3(v[0], v[1], v[2])
}

// Default returns the slot a freshly created field starts with: today
// for dates, 09:00:00 for clocks.
func Default(k Kind) Value {
	switch k {
	case KindDate:
		return Value{Shape: ShapeVec3, Vec: civil.Today().Vec()}
	case KindClockHours:
		return Scalar(9)
	default:
		return Vec3(9, 0, 0)
	}
}

// Display renders a slot for list rows and CLI output. Mismatched slots
// display as "invalid" rather than erroring.
func Display(spec Spec, v Value) string {
	if err := CheckShape(spec, v); err != nil {
		return "invalid"
	}
	switch spec.Kind {
	case KindDate:
		return civil.DateFromVec(v.Vec).String()
	case KindClockHours:
		return civil.ClockFromHours(v.Scalar).String()
	default:
		return civil.ClockFromVec(v.Vec).String()
	}
}
