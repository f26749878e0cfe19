// Package field implements the persisted value slots behind the date and
// time pickers: a small tagged union, the field kinds that bind a slot
// shape to a value model, and the single apply step that edits a slot.
package field

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ValueShape tags which arm of the Value union is live.
type ValueShape int

const (
	ShapeVec3 ValueShape = iota
	ShapeScalar
)

func (s ValueShape) String() string {
	if s == ShapeScalar {
		return "scalar"
	}
	return "vec3"
}

// Value is a raw slot as stored: either a triple of ints or a single
// float. It carries no date or time semantics of its own; value models
// are decoded from it at draw time and re-encoded after an edit.
type Value struct {
	Shape  ValueShape
	Vec    [3]int
	Scalar float64
}

// Vec3 builds a triple-shaped slot.
func Vec3(x, y, z int) Value {
	return Value{Shape: ShapeVec3, Vec: [3]int{x, y, z}}
}

// Scalar builds a number-shaped slot.
func Scalar(f float64) Value {
	return Value{Shape: ShapeScalar, Scalar: f}
}

// MarshalJSON writes the wire form: [x, y, z] for triples, a bare
// number for scalars.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.Shape == ShapeScalar {
		return json.Marshal(v.Scalar)
	}
	return json.Marshal(v.Vec)
}

// UnmarshalJSON reads the wire form back. Arrays shorter than three
// elements pad with zeros, which the value models read as unset.
func (v *Value) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var vec [3]int
	if err := json.Unmarshal(b, &vec); err == nil {
		*v = Value{Shape: ShapeVec3, Vec: vec}
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		*v = Value{Shape: ShapeScalar, Scalar: f}
		return nil
	}
	return fmt.Errorf("slot must be a number or an array of integers, got %s", string(b))
}

func (v Value) String() string {
	if v.Shape == ShapeScalar {
		return strconv.FormatFloat(v.Scalar, 'g', -1, 64)
	}
	return fmt.Sprintf("[%d, %d, %d]", v.Vec[0], v.Vec[1], v.Vec[2])
}
