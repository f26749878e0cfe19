// Package export renders a book's entries to plain markdown files, for
// sharing or archiving the datebook outside its sqlite store.
package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"datebook-cli/internal/civil"
	"datebook-cli/internal/field"
	"datebook-cli/internal/model"
)

// RenderEntryMarkdown renders one entry as a standalone page.
func RenderEntryMarkdown(e *model.Entry) (string, error) {
	if e == nil {
		return "", fmt.Errorf("missing entry")
	}

	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	title := strings.TrimSpace(e.Title)
	if title == "" {
		title = "(untitled)"
	}
	writeLn("# " + title)
	writeLn("")

	writeLn("## Meta")
	writeLn("")
	writeLn("- ID: " + e.ID)
	for _, spec := range model.FieldSpecs() {
		v, ok := e.Slot(spec.Key)
		if !ok {
			continue
		}
		writeLn("- " + spec.Label + ": " + displaySlot(spec, v))
	}
	writeLn("- Created: " + e.CreatedAt.UTC().Format(time.RFC3339))
	writeLn("- Updated: " + e.UpdatedAt.UTC().Format(time.RFC3339))

	note := strings.TrimSpace(e.Note)
	if note != "" {
		writeLn("")
		writeLn("## Note")
		writeLn("")
		writeLn(note)
	}

	return buf.String(), nil
}

// displaySlot renders a slot value. Shape-mismatched slots keep their
// raw form next to the verdict; an export must not hide a broken field.
func displaySlot(spec field.Spec, v field.Value) string {
	if err := field.CheckShape(spec, v); err != nil {
		return "invalid (raw " + v.String() + ")"
	}
	return field.Display(spec, v)
}

// RenderBookIndexMarkdown renders the day-by-day index over entries,
// which the caller supplies already sorted by (date, start). Entries
// whose date slot does not decode are collected under Unscheduled.
func RenderBookIndexMarkdown(entries []*model.Entry) string {
	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	writeLn("# Datebook")

	dateSpec, _ := model.SpecFor("date")
	startSpec, _ := model.SpecFor("start")
	endSpec, _ := model.SpecFor("end")

	var unscheduled []*model.Entry
	lastDay := ""
	for _, e := range entries {
		if e == nil {
			continue
		}
		comps, err := field.Components(dateSpec, e.Date)
		if err != nil {
			unscheduled = append(unscheduled, e)
			continue
		}
		d := civil.Date{Year: comps[0], Month: comps[1], Day: comps[2]}
		if day := d.String(); day != lastDay {
			writeLn("")
			writeLn("## " + day + " (" + d.Weekday().String() + ")")
			writeLn("")
			lastDay = day
		}
		writeLn(indexRow(e, startSpec, endSpec))
	}

	if len(unscheduled) > 0 {
		writeLn("")
		writeLn("## Unscheduled")
		writeLn("")
		for _, e := range unscheduled {
			writeLn(indexRow(e, startSpec, endSpec))
		}
	}

	return buf.String()
}

func indexRow(e *model.Entry, startSpec, endSpec field.Spec) string {
	title := strings.TrimSpace(e.Title)
	if title == "" {
		title = "(untitled)"
	}
	return "- " + field.Display(startSpec, e.Start) + " to " + field.Display(endSpec, e.End) +
		"  " + title + " (" + e.ID + ")"
}
