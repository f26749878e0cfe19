package tui

import (
	"context"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme/palette helpers.
//
// The TUI must remain readable on both light and dark terminal backgrounds.
// Every color is a lipgloss.AdaptiveColor and "faint" styling is applied on
// dark backgrounds only (faint text on light terminals often becomes
// illegible).

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

// Semantic colors used across the TUI.
var (
	colorMuted  = ac("240", "243")
	colorHeader = ac("235", "252")

	// Selection highlight for list rows; surface bg is 255/235 so both
	// variants bump contrast against it.
	colorSelectedBg = ac("#e9e9e9", "#262626")
	colorSelectedFg = ac("235", "255")

	colorSurfaceBg = ac("255", "235")
	colorSurfaceFg = ac("235", "252")

	// Slightly elevated surface for controls/inputs so they remain
	// visible on light terminals.
	colorControlBg = ac("252", "237")
	colorInputBg   = ac("254", "234")

	colorAccent   = ac("27", "62") // blue
	colorAccentFg = ac("255", "255")

	// Broken slots and error minibuffer text.
	colorError = ac("160", "203")

	// Short status feedback in the minibuffer.
	colorStatus = ac("28", "114") // green
)

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func styleError() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorError)
}

// applyColorProfilePreference sets Lip Gloss's color profile for the
// interactive TUI.
//
// Note: termenv.EnvColorProfile respects CLICOLOR/CLICOLOR_FORCE, which is
// useful for non-interactive CLI output but can accidentally disable colors
// in a TUI. Here only NO_COLOR is honored; otherwise the terminal's
// capabilities decide.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	// Start from termenv's best guess.
	profile := termenv.ColorProfile()

	// If TERM/COLORTERM indicate stronger support than the detector
	// reports, trust the env. Helps terminals like macOS Terminal.app
	// where color probing can under-report.
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") {
		if profile == termenv.Ascii || profile == termenv.ANSI {
			profile = termenv.ANSI256
		}
	}

	lipgloss.SetColorProfile(profile)
}

// applyThemePreference configures Lip Gloss's background detection.
//
// Some terminals don't reliably report their background, which can cause
// lipgloss.AdaptiveColor to pick the wrong variant (e.g. dark palette on a
// light theme).
//
// Priority:
// 1) DATEBOOK_TUI_THEME=light|dark|auto
// 2) configured theme from the global config ("light"/"dark")
// 3) DATEBOOK_TUI_DARKBG=true|false
// 4) COLORFGBG heuristic (common in terminals; format like "15;0" = fg;bg)
// 5) macOS appearance lookup
func applyThemePreference(configured string) {
	if setThemeByName(os.Getenv("DATEBOOK_TUI_THEME")) {
		return
	}
	if setThemeByName(configured) {
		return
	}

	if v := strings.TrimSpace(os.Getenv("DATEBOOK_TUI_DARKBG")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			lipgloss.SetHasDarkBackground(b)
			return
		}
	}

	// COLORFGBG is often "fg;bg" (sometimes more segments); use the last
	// segment as bg. Lighter backgrounds read as non-dark.
	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		bgStr := strings.TrimSpace(parts[len(parts)-1])
		if bg, err := strconv.Atoi(bgStr); err == nil {
			lipgloss.SetHasDarkBackground(bg < 7)
			return
		}
	}

	// macOS Terminal.app often doesn't set COLORFGBG, and background
	// probing can be unreliable. Fall back to the OS appearance.
	if runtime.GOOS == "darwin" {
		if dark, ok := macOSHasDarkAppearance(); ok {
			lipgloss.SetHasDarkBackground(dark)
			return
		}
	}
}

func setThemeByName(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "light":
		lipgloss.SetHasDarkBackground(false)
		return true
	case "dark":
		lipgloss.SetHasDarkBackground(true)
		return true
	}
	// "auto", empty and unknown values fall through to heuristics.
	return false
}

func macOSHasDarkAppearance() (dark bool, ok bool) {
	// `defaults read -g AppleInterfaceStyle` prints "Dark" in dark mode
	// and exits 1 in light mode (key missing).
	ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()

	out, err := exec.CommandContext(ctx, "defaults", "read", "-g", "AppleInterfaceStyle").CombinedOutput()
	if ctx.Err() != nil {
		return false, false
	}
	if err == nil {
		return strings.Contains(strings.ToLower(string(out)), "dark"), true
	}
	if ee, ok := err.(*exec.ExitError); ok && ee.ExitCode() == 1 {
		return false, true
	}
	return false, false
}
