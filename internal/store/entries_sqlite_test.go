package store

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"datebook-cli/internal/field"
	"datebook-cli/internal/model"
)

func testEntry(title string) *model.Entry {
	return &model.Entry{
		Title: title,
		Date:  field.Vec3(2024, 6, 15),
		Start: field.Scalar(9.5),
		End:   field.Vec3(10, 30, 0),
	}
}

func TestEntryCreateGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := Store{Dir: t.TempDir()}

	e := testEntry("standup")
	e.Note = "every weekday"
	if err := s.CreateEntry(ctx, e); err != nil {
		t.Fatalf("create: %v", err)
	}
	if !strings.HasPrefix(e.ID, "ent-") || len(e.ID) != len("ent-")+8 {
		t.Fatalf("unexpected id %q", e.ID)
	}
	if e.CreatedAt.IsZero() || e.UpdatedAt.IsZero() {
		t.Fatalf("timestamps not set: %+v", e)
	}

	got, err := s.GetEntry(ctx, e.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if diff := cmp.Diff(e, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestGetEntryMissing(t *testing.T) {
	s := Store{Dir: t.TempDir()}
	_, err := s.GetEntry(context.Background(), "ent-nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPutEntryUpdates(t *testing.T) {
	ctx := context.Background()
	s := Store{Dir: t.TempDir()}

	e := testEntry("review")
	if err := s.CreateEntry(ctx, e); err != nil {
		t.Fatalf("create: %v", err)
	}

	e.Title = "design review"
	e.End = field.Vec3(11, 0, 0)
	if err := s.PutEntry(ctx, e); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := s.GetEntry(ctx, e.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "design review" {
		t.Errorf("title = %q", got.Title)
	}
	if got.End != field.Vec3(11, 0, 0) {
		t.Errorf("end = %+v", got.End)
	}
	if got.UpdatedAt.Before(got.CreatedAt) {
		t.Errorf("updated %v before created %v", got.UpdatedAt, got.CreatedAt)
	}
}

func TestPutEntryMissing(t *testing.T) {
	s := Store{Dir: t.TempDir()}
	e := testEntry("ghost")
	e.ID = "ent-missing1"
	if err := s.PutEntry(context.Background(), e); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteEntry(t *testing.T) {
	ctx := context.Background()
	s := Store{Dir: t.TempDir()}

	e := testEntry("old")
	if err := s.CreateEntry(ctx, e); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.DeleteEntry(ctx, e.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.DeleteEntry(ctx, e.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
	if _, err := s.GetEntry(ctx, e.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestRawSlotPreservedAcrossLoad(t *testing.T) {
	ctx := context.Background()
	s := Store{Dir: t.TempDir()}

	e := testEntry("broken")
	if err := s.CreateEntry(ctx, e); err != nil {
		t.Fatalf("create: %v", err)
	}

	// Store a scalar where the date field expects a triple. The store must
	// keep it verbatim; the mismatch belongs to the field layer.
	e.Date = field.Scalar(9.5)
	if err := s.PutEntry(ctx, e); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := s.GetEntry(ctx, e.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Date.Shape != field.ShapeScalar || got.Date.Scalar != 9.5 {
		t.Fatalf("date slot normalized on load: %+v", got.Date)
	}
	spec, _ := model.SpecFor("date")
	if err := field.CheckShape(spec, got.Date); err == nil {
		t.Fatal("expected shape mismatch to surface at decode")
	}
}

func TestListEntriesSorted(t *testing.T) {
	ctx := context.Background()
	s := Store{Dir: t.TempDir()}

	mk := func(id string, date field.Value, start field.Value) {
		e := testEntry(id)
		e.ID = id
		e.Date = date
		e.Start = start
		if err := s.CreateEntry(ctx, e); err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}
	mk("ent-late", field.Vec3(2024, 6, 15), field.Scalar(9.5))
	mk("ent-early", field.Vec3(2024, 6, 14), field.Scalar(17))
	mk("ent-morning", field.Vec3(2024, 6, 15), field.Scalar(8))
	// Shape-mismatched date: must sort last, not break the listing.
	mk("ent-broken", field.Scalar(1), field.Scalar(9))

	got, err := s.ListEntries(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	ids := make([]string, 0, len(got))
	for _, e := range got {
		ids = append(ids, e.ID)
	}
	want := []string{"ent-early", "ent-morning", "ent-late", "ent-broken"}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveEntryID(t *testing.T) {
	ctx := context.Background()
	s := Store{Dir: t.TempDir()}

	for _, id := range []string{"ent-abcd1234", "ent-abzz9999", "ent-xyz55555"} {
		e := testEntry(id)
		e.ID = id
		if err := s.CreateEntry(ctx, e); err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}

	if got, err := s.ResolveEntryID(ctx, "ent-abcd1234"); err != nil || got != "ent-abcd1234" {
		t.Fatalf("exact: got %q, %v", got, err)
	}
	if got, err := s.ResolveEntryID(ctx, "ent-x"); err != nil || got != "ent-xyz55555" {
		t.Fatalf("prefix: got %q, %v", got, err)
	}
	if _, err := s.ResolveEntryID(ctx, "ent-ab"); err == nil || errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ambiguity error, got %v", err)
	}
	if _, err := s.ResolveEntryID(ctx, "ent-qq"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestInitAndSchemaVersion(t *testing.T) {
	ctx := context.Background()
	s := Store{Dir: t.TempDir()}

	if err := s.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	v, err := s.SchemaVersion(ctx)
	if err != nil {
		t.Fatalf("schema version: %v", err)
	}
	if v != schemaVersion {
		t.Errorf("schema version = %d, want %d", v, schemaVersion)
	}

	n, err := s.CountEntries(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Errorf("fresh book has %d entries", n)
	}
}
