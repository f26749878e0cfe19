package cli

import (
	"testing"
)

func listTitles(t *testing.T, env map[string]any) []string {
	t.Helper()
	rows, ok := env["data"].([]any)
	if !ok {
		t.Fatalf("expected data list; got: %#v", env["data"])
	}
	var titles []string
	for _, row := range rows {
		rm, _ := row.(map[string]any)
		title, _ := rm["title"].(string)
		titles = append(titles, title)
	}
	return titles
}

func TestListSortedAndFiltered(t *testing.T) {
	t.Setenv("DATEBOOK_CONFIG_DIR", t.TempDir())
	dir := t.TempDir()

	mustRunCLI(t, "--dir", dir, "add", "Lunch", "--date", "2026-03-14", "--start", "12:00")
	mustRunCLI(t, "--dir", dir, "add", "Standup", "--date", "2026-03-14", "--start", "8:15")
	mustRunCLI(t, "--dir", dir, "add", "Retro", "--date", "2026-03-15", "--start", "7:00")

	all := mustRunCLI(t, "--dir", dir, "list")
	wantAll := []string{"Standup", "Lunch", "Retro"}
	gotAll := listTitles(t, all)
	if len(gotAll) != len(wantAll) {
		t.Fatalf("expected %d entries; got %v", len(wantAll), gotAll)
	}
	for i := range wantAll {
		if gotAll[i] != wantAll[i] {
			t.Fatalf("expected order %v; got %v", wantAll, gotAll)
		}
	}
	if count, _ := all["meta"].(map[string]any)["count"].(float64); count != 3 {
		t.Fatalf("expected count 3; got %v", all["meta"])
	}

	day := mustRunCLI(t, "--dir", dir, "list", "--on", "2026-03-14")
	gotDay := listTitles(t, day)
	if len(gotDay) != 2 || gotDay[0] != "Standup" || gotDay[1] != "Lunch" {
		t.Fatalf("expected [Standup Lunch]; got %v", gotDay)
	}

	empty := mustRunCLI(t, "--dir", dir, "list", "--on", "2026-03-16")
	if got := listTitles(t, empty); len(got) != 0 {
		t.Fatalf("expected no entries; got %v", got)
	}
}

func TestListFilterSkipsBrokenDates(t *testing.T) {
	t.Setenv("DATEBOOK_CONFIG_DIR", t.TempDir())
	dir := t.TempDir()

	id := addEntry(t, dir, "Broken")
	mustRunCLI(t, "--dir", dir, "set", "--raw", id, "date", "9.5")

	all := mustRunCLI(t, "--dir", dir, "list")
	if got := listTitles(t, all); len(got) != 1 {
		t.Fatalf("broken entry should still list; got %v", got)
	}

	day := mustRunCLI(t, "--dir", dir, "list", "--on", "2026-03-14")
	if got := listTitles(t, day); len(got) != 0 {
		t.Fatalf("broken date cannot match a day filter; got %v", got)
	}
}

func TestRemoveByPrefix(t *testing.T) {
	t.Setenv("DATEBOOK_CONFIG_DIR", t.TempDir())
	dir := t.TempDir()

	id := addEntry(t, dir, "Ephemeral")

	removed := mustRunCLI(t, "--dir", dir, "remove", id[:len("ent-")+3])
	if got, _ := dataMap(t, removed)["removed"].(string); got != id {
		t.Fatalf("expected removed %s; got %v", id, got)
	}

	if _, _, err := runCLI(t, []string{"--dir", dir, "show", id}); err == nil {
		t.Fatal("expected show to fail after remove")
	}
}
