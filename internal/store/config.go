package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultBook is the book used before any other is configured.
const DefaultBook = "default"

type GlobalConfig struct {
	// CurrentBook names the book opened when no --book or --dir is given.
	CurrentBook string `json:"currentBook,omitempty"`

	// TUI holds optional user preferences for the interactive TUI.
	TUI *TUIConfig `json:"tui,omitempty"`
}

type TUIConfig struct {
	// Theme is "dark" or "light"; empty means autodetect.
	Theme string `json:"theme,omitempty"`
	// Glyphs selects the glyph set ("unicode", "ascii").
	Glyphs string `json:"glyphs,omitempty"`
}

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.datebook).
	if v := strings.TrimSpace(os.Getenv("DATEBOOK_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".datebook"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

func LoadConfig() (*GlobalConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &GlobalConfig{}, nil
		}
		return nil, err
	}
	var cfg GlobalConfig
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}

func SaveConfig(cfg *GlobalConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	// Keep the previous config as config.json.bak; ignore errors so a
	// failed backup never blocks the write.
	if prev, err := os.ReadFile(path); err == nil && len(prev) > 0 {
		_ = atomicWriteFile(dir, "config.json.bak.*.tmp", path+".bak", prev, 0o644)
	}

	// Unique temp name + rename so concurrent CLI and TUI writes cannot
	// corrupt each other.
	return atomicWriteFile(dir, "config.json.*.tmp", path, b, 0o600)
}

func NormalizeBookName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("book name is empty")
	}
	if strings.ContainsAny(name, "/\\") || name == "." || name == ".." {
		return "", fmt.Errorf("invalid book name %q", name)
	}
	return name, nil
}

// BookDir returns the directory backing a named book.
func BookDir(name string) (string, error) {
	name, err := NormalizeBookName(name)
	if err != nil {
		return "", err
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "books", name), nil
}

// ListBooks returns the names of existing book directories.
func ListBooks() ([]string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	root := filepath.Join(dir, "books")
	ents, err := os.ReadDir(root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, err
	}
	out := []string{}
	for _, e := range ents {
		if e.IsDir() {
			out = append(out, e.Name())
		}
	}
	sort.Strings(out)
	return out, nil
}

// ResolveDir picks the book directory for a run: an explicit --dir wins,
// then --book, then the configured current book, then "default".
func ResolveDir(dirFlag, book string) (string, error) {
	if d := strings.TrimSpace(dirFlag); d != "" {
		return filepath.Clean(d), nil
	}
	if strings.TrimSpace(book) == "" {
		cfg, err := LoadConfig()
		if err != nil {
			return "", err
		}
		book = cfg.CurrentBook
	}
	if strings.TrimSpace(book) == "" {
		book = DefaultBook
	}
	return BookDir(book)
}
