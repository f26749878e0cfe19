package tui

import (
	"context"
	"testing"

	"datebook-cli/internal/field"
	"datebook-cli/internal/model"
	"datebook-cli/internal/store"
)

func TestNewAppModel_RestoresEntryView(t *testing.T) {
	s, id := seedEntry(t, field.Vec3(2026, 3, 14), field.Scalar(9.5), field.Vec3(10, 15, 0))

	if err := s.SaveTUIState(&store.TUIState{
		Version:         1,
		View:            "entry",
		SelectedEntryID: id,
		OpenEntryID:     id,
	}); err != nil {
		t.Fatalf("seed SaveTUIState: %v", err)
	}

	m := newAppModel(s)
	if m.view != viewEntry {
		t.Fatalf("expected entry view restored; got %v", m.view)
	}
	if m.openEntryID != id {
		t.Fatalf("expected open entry %q; got %q", id, m.openEntryID)
	}
	if m.entry == nil || m.entry.Title != "Dentist" {
		t.Fatalf("expected entry loaded; got %#v", m.entry)
	}
}

func TestNewAppModel_StaleOpenEntryFallsBackToList(t *testing.T) {
	s, id := seedEntry(t, field.Vec3(2026, 3, 14), field.Scalar(9.5), field.Vec3(10, 15, 0))

	if err := s.SaveTUIState(&store.TUIState{
		Version:     1,
		View:        "entry",
		OpenEntryID: "ent-gone",
	}); err != nil {
		t.Fatalf("seed SaveTUIState: %v", err)
	}

	m := newAppModel(s)
	if m.view != viewEntries {
		t.Fatalf("expected fall back to the list view; got %v", m.view)
	}
	if m.openEntryID != "" {
		t.Fatalf("expected no open entry; got %q", m.openEntryID)
	}

	// The book itself is untouched by the stale state.
	if _, err := s.GetEntry(context.Background(), id); err != nil {
		t.Fatalf("expected seeded entry to survive: %v", err)
	}
}

func TestNewAppModel_RestoresListSelection(t *testing.T) {
	// The seeded entry sorts first; restoring must move the cursor off it.
	s, _ := seedEntry(t, field.Vec3(2026, 3, 14), field.Scalar(9), field.Vec3(10, 0, 0))
	second := &model.Entry{
		Title: "Brunch",
		Date:  field.Vec3(2026, 3, 15),
		Start: field.Scalar(11),
		End:   field.Vec3(12, 0, 0),
	}
	if err := s.CreateEntry(context.Background(), second); err != nil {
		t.Fatalf("create second entry: %v", err)
	}

	if err := s.SaveTUIState(&store.TUIState{
		Version:         1,
		View:            "entries",
		SelectedEntryID: second.ID,
	}); err != nil {
		t.Fatalf("seed SaveTUIState: %v", err)
	}

	m := newAppModel(s)
	if got := m.selectedEntryID(); got != second.ID {
		t.Fatalf("expected %q selected; got %q", second.ID, got)
	}
}
