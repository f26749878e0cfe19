package tui

import (
	"datebook-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive TUI on one book. Appearance preferences
// come from the global config, with DATEBOOK_TUI_* env vars taking
// precedence; see theme.go and glyphs.go for the resolution order.
func Run(s store.Store) error {
	var themePref, glyphPref string
	if cfg, err := store.LoadConfig(); err == nil && cfg != nil && cfg.TUI != nil {
		themePref = cfg.TUI.Theme
		glyphPref = cfg.TUI.Glyphs
	}
	applyColorProfilePreference()
	applyThemePreference(themePref)
	applyGlyphPreference(glyphPref)

	m := newAppModel(s)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
