package model

import (
	"time"

	"datebook-cli/internal/field"
)

// Entry is one datebook entry: a titled item pinned to a calendar date
// with a start and end time. Date, Start and End are raw slots; decode
// them through the field layer before reading components.
type Entry struct {
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	Note      string      `json:"note,omitempty"`
	Date      field.Value `json:"date"`
	Start     field.Value `json:"start"`
	End       field.Value `json:"end"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// FieldSpecs lists the entry's picker fields in display order. Start is
// stored as fractional hours, End as an (hour, minute, second) triple.
func FieldSpecs() []field.Spec {
	return []field.Spec{
		{Key: "date", Label: "Date", Kind: field.KindDate},
		{Key: "start", Label: "Start", Kind: field.KindClockHours},
		{Key: "end", Label: "End", Kind: field.KindClock},
	}
}

// SpecFor returns the field spec for key.
func SpecFor(key string) (field.Spec, bool) {
	for _, spec := range FieldSpecs() {
		if spec.Key == key {
			return spec, true
		}
	}
	return field.Spec{}, false
}

// Slot returns the raw slot stored under one of the entry's field keys.
func (e *Entry) Slot(key string) (field.Value, bool) {
	switch key {
	case "date":
		return e.Date, true
	case "start":
		return e.Start, true
	case "end":
		return e.End, true
	}
	return field.Value{}, false
}

// SetSlot replaces the raw slot stored under key.
func (e *Entry) SetSlot(key string, v field.Value) bool {
	switch key {
	case "date":
		e.Date = v
	case "start":
		e.Start = v
	case "end":
		e.End = v
	default:
		return false
	}
	return true
}
