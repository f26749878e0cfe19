package tui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestApplyThemePreference_ResolutionOrder(t *testing.T) {
	oldBG := lipgloss.HasDarkBackground()
	t.Cleanup(func() { lipgloss.SetHasDarkBackground(oldBG) })

	t.Setenv("DATEBOOK_TUI_THEME", "")
	t.Setenv("DATEBOOK_TUI_DARKBG", "")
	t.Setenv("COLORFGBG", "")

	// Configured value applies when no env overrides.
	lipgloss.SetHasDarkBackground(false)
	applyThemePreference("dark")
	if !lipgloss.HasDarkBackground() {
		t.Fatalf("expected configured dark theme to apply")
	}

	// The env var beats the configured value.
	t.Setenv("DATEBOOK_TUI_THEME", "light")
	applyThemePreference("dark")
	if lipgloss.HasDarkBackground() {
		t.Fatalf("expected env light theme to win")
	}

	// DARKBG is the next fallback.
	t.Setenv("DATEBOOK_TUI_THEME", "")
	t.Setenv("DATEBOOK_TUI_DARKBG", "true")
	applyThemePreference("")
	if !lipgloss.HasDarkBackground() {
		t.Fatalf("expected DARKBG=true to force dark")
	}

	// COLORFGBG: the last segment is the background color.
	t.Setenv("DATEBOOK_TUI_DARKBG", "")
	t.Setenv("COLORFGBG", "0;15")
	applyThemePreference("")
	if lipgloss.HasDarkBackground() {
		t.Fatalf("expected bg 15 to read as light")
	}
	t.Setenv("COLORFGBG", "15;0")
	applyThemePreference("")
	if !lipgloss.HasDarkBackground() {
		t.Fatalf("expected bg 0 to read as dark")
	}
}

func TestSetThemeByName(t *testing.T) {
	oldBG := lipgloss.HasDarkBackground()
	t.Cleanup(func() { lipgloss.SetHasDarkBackground(oldBG) })

	if !setThemeByName("Dark") || !lipgloss.HasDarkBackground() {
		t.Fatalf("expected Dark to set a dark background")
	}
	if !setThemeByName(" light ") || lipgloss.HasDarkBackground() {
		t.Fatalf("expected light to set a light background")
	}
	for _, name := range []string{"", "auto", "solarized"} {
		if setThemeByName(name) {
			t.Fatalf("expected %q to fall through to heuristics", name)
		}
	}
}
