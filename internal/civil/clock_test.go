package civil

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestClockFromVec(t *testing.T) {
	for _, test := range []struct {
		vec  [3]int
		want Clock
	}{
		{[3]int{9, 30, 0}, Clock{9, 30, 0}},
		{[3]int{23, 59, 59}, Clock{23, 59, 59}},
		{[3]int{0, 0, 0}, Clock{0, 0, 0}},
		// Components clamp independently, no carry.
		{[3]int{-5, 70, 999}, Clock{0, 59, 59}},
		{[3]int{24, 0, 0}, Clock{23, 0, 0}},
		{[3]int{12, -1, 60}, Clock{12, 0, 59}},
	} {
		got := ClockFromVec(test.vec)
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("ClockFromVec(%v) mismatch (-want +got):\n%s", test.vec, diff)
		}
	}
}

func TestClockVecRoundTrip(t *testing.T) {
	for _, c := range []Clock{
		{0, 0, 0},
		{9, 30, 0},
		{16, 0, 1},
		{23, 59, 59},
	} {
		got := ClockFromVec(c.Vec())
		if diff := cmp.Diff(c, got); diff != "" {
			t.Errorf("round trip of %+v (-want +got):\n%s", c, diff)
		}
	}
}

func TestClockFromHours(t *testing.T) {
	for _, test := range []struct {
		in   float64
		want Clock
	}{
		{0, Clock{0, 0, 0}},
		{0.25, Clock{0, 15, 0}},
		{9, Clock{9, 0, 0}},
		{9.5, Clock{9, 30, 0}},
		{23.75, Clock{23, 45, 0}},
		{MaxHours, Clock{23, 59, 59}},
		// The six-decimal spelling of the ceiling sits 0.8ms under the
		// last second; it must still read as 23:59:59, not 23:59:58.
		{23.999722, Clock{23, 59, 59}},
		// Values past the ceiling clamp to the last second of the day.
		{24, Clock{23, 59, 59}},
		{1000, Clock{23, 59, 59}},
		{-1, Clock{0, 0, 0}},
		{math.NaN(), Clock{0, 0, 0}},
	} {
		got := ClockFromHours(test.in)
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("ClockFromHours(%v) mismatch (-want +got):\n%s", test.in, diff)
		}
	}
}

func TestHoursCeiling(t *testing.T) {
	if got := (Clock{23, 59, 59}).Hours(); got != MaxHours {
		t.Fatalf("23:59:59 encodes to %v, want MaxHours (%v)", got, MaxHours)
	}
	// The ceiling must decode back to itself. A 24.0 ceiling would not.
	if got := ClockFromHours(MaxHours); got != (Clock{23, 59, 59}) {
		t.Fatalf("MaxHours decodes to %+v, want 23:59:59", got)
	}
}

func TestHoursRoundTrip(t *testing.T) {
	for _, c := range []Clock{
		{0, 0, 0},
		{9, 0, 0},
		{9, 30, 0},
		{16, 0, 1},
		{17, 0, 30},
		{23, 45, 0},
		{23, 59, 58},
		{23, 59, 59},
	} {
		got := ClockFromHours(c.Hours())
		if diff := cmp.Diff(c, got); diff != "" {
			t.Errorf("round trip of %+v (-want +got):\n%s", c, diff)
		}
	}
}

func TestHoursRoundTripAllSeconds(t *testing.T) {
	for s := 0; s < 24*60*60; s++ {
		c := Clock{Hour: s / 3600, Minute: s / 60 % 60, Second: s % 60}
		if got := ClockFromHours(c.Hours()); got != c {
			t.Fatalf("round trip of %v came back as %v", c, got)
		}
	}
}

func TestHoursTolerance(t *testing.T) {
	// Decoding then re-encoding lands within one second of the input.
	const tol = 1.0/3600 + 1e-9
	for _, v := range []float64{0, 0.1, 3.14159, 9.5, 12.000001, 16.5004, 23.9} {
		got := ClockFromHours(v).Hours()
		if diff := math.Abs(got - v); diff > tol {
			t.Errorf("ClockFromHours(%v).Hours() = %v, drift %v exceeds 1/3600", v, got, diff)
		}
	}
}

func TestClockString(t *testing.T) {
	for _, test := range []struct {
		clock Clock
		want  string
	}{
		{Clock{9, 30, 0}, "09:30:00"},
		{Clock{0, 0, 0}, "00:00:00"},
		{Clock{23, 59, 59}, "23:59:59"},
	} {
		if got := test.clock.String(); got != test.want {
			t.Errorf("%#v.String() = %q, want %q", test.clock, got, test.want)
		}
	}
}

func TestClockCompare(t *testing.T) {
	for _, test := range []struct {
		a, b Clock
		want int
	}{
		{Clock{9, 0, 0}, Clock{9, 0, 0}, 0},
		{Clock{8, 59, 59}, Clock{9, 0, 0}, -1},
		{Clock{9, 0, 1}, Clock{9, 0, 0}, 1},
	} {
		if got := test.a.Compare(test.b); got != test.want {
			t.Errorf("%v.Compare(%v) = %d, want %d", test.a, test.b, got, test.want)
		}
	}
}

func TestSecondOfDay(t *testing.T) {
	if got := (Clock{23, 59, 59}).SecondOfDay(); got != 86399 {
		t.Errorf("23:59:59 = %d seconds, want 86399", got)
	}
	if got := (Clock{9, 30, 0}).SecondOfDay(); got != 34200 {
		t.Errorf("09:30:00 = %d seconds, want 34200", got)
	}
}

func TestParseClock(t *testing.T) {
	for _, test := range []struct {
		in      string
		want    Clock
		wantErr bool
	}{
		{"09:30", Clock{9, 30, 0}, false},
		{"9:30", Clock{9, 30, 0}, false},
		{"23:59:59", Clock{23, 59, 59}, false},
		{"00:00:00", Clock{0, 0, 0}, false},
		{"25:00", Clock{}, true},
		{"12:60", Clock{}, true},
		{"noon", Clock{}, true},
		{"", Clock{}, true},
	} {
		got, err := ParseClock(test.in)
		if test.wantErr {
			if err == nil {
				t.Errorf("ParseClock(%q): expected error, got %+v", test.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q): unexpected error %v", test.in, err)
			continue
		}
		if got != test.want {
			t.Errorf("ParseClock(%q) = %+v, want %+v", test.in, got, test.want)
		}
	}
}
