package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestConfigRoundTrip(t *testing.T) {
	t.Setenv("DATEBOOK_CONFIG_DIR", t.TempDir())

	cfg := &GlobalConfig{
		CurrentBook: "work",
		TUI:         &TUIConfig{Theme: "dark", Glyphs: "ascii"},
	}
	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigMissingIsEmpty(t *testing.T) {
	t.Setenv("DATEBOOK_CONFIG_DIR", t.TempDir())

	got, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.CurrentBook != "" || got.TUI != nil {
		t.Errorf("expected empty config, got %+v", got)
	}
}

func TestSaveConfigKeepsBackup(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DATEBOOK_CONFIG_DIR", dir)

	if err := SaveConfig(&GlobalConfig{CurrentBook: "one"}); err != nil {
		t.Fatalf("save one: %v", err)
	}
	if err := SaveConfig(&GlobalConfig{CurrentBook: "two"}); err != nil {
		t.Fatalf("save two: %v", err)
	}
	b, err := os.ReadFile(filepath.Join(dir, "config.json.bak"))
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if want := `"currentBook": "one"`; !strings.Contains(string(b), want) {
		t.Errorf("backup does not hold previous config: %s", b)
	}
}

func TestNormalizeBookName(t *testing.T) {
	for _, test := range []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"work", "work", false},
		{"  personal  ", "personal", false},
		{"", "", true},
		{"a/b", "", true},
		{`a\b`, "", true},
		{"..", "", true},
	} {
		got, err := NormalizeBookName(test.in)
		if test.wantErr {
			if err == nil {
				t.Errorf("NormalizeBookName(%q): expected error, got %q", test.in, got)
			}
			continue
		}
		if err != nil || got != test.want {
			t.Errorf("NormalizeBookName(%q) = %q, %v; want %q", test.in, got, err, test.want)
		}
	}
}

func TestResolveDirPrecedence(t *testing.T) {
	cfgDir := t.TempDir()
	t.Setenv("DATEBOOK_CONFIG_DIR", cfgDir)

	if err := SaveConfig(&GlobalConfig{CurrentBook: "work"}); err != nil {
		t.Fatalf("save config: %v", err)
	}

	// Explicit --dir wins over everything.
	if got, err := ResolveDir("/tmp/explicit", "personal"); err != nil || got != filepath.Clean("/tmp/explicit") {
		t.Fatalf("dir flag: got %q, %v", got, err)
	}
	// --book beats the configured current book.
	if got, err := ResolveDir("", "personal"); err != nil || got != filepath.Join(cfgDir, "books", "personal") {
		t.Fatalf("book flag: got %q, %v", got, err)
	}
	// Configured current book.
	if got, err := ResolveDir("", ""); err != nil || got != filepath.Join(cfgDir, "books", "work") {
		t.Fatalf("config book: got %q, %v", got, err)
	}

	// Nothing configured falls back to the default book.
	t.Setenv("DATEBOOK_CONFIG_DIR", t.TempDir())
	got, err := ResolveDir("", "")
	if err != nil {
		t.Fatalf("default: %v", err)
	}
	if filepath.Base(got) != DefaultBook {
		t.Errorf("default dir = %q", got)
	}
}

func TestListBooks(t *testing.T) {
	cfgDir := t.TempDir()
	t.Setenv("DATEBOOK_CONFIG_DIR", cfgDir)

	books, err := ListBooks()
	if err != nil {
		t.Fatalf("list (empty): %v", err)
	}
	if len(books) != 0 {
		t.Fatalf("expected no books, got %v", books)
	}

	for _, name := range []string{"work", "personal"} {
		dir, err := BookDir(name)
		if err != nil {
			t.Fatalf("book dir %s: %v", name, err)
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}
	books, err = ListBooks()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if diff := cmp.Diff([]string{"personal", "work"}, books); diff != "" {
		t.Errorf("books mismatch (-want +got):\n%s", diff)
	}
}
