package tui

import (
	"os"
	"strings"
	"sync"
)

// glyphSet holds the decorative characters the TUI draws with. Terminals
// without good Unicode fonts can switch to the plain ASCII set.
type glyphSet struct {
	Bullet string // entry list rows
	Arrow  string // start/end time ranges
	HRule  string // modal title separator
	Warn   string // broken slot marker
}

var glyphsUnicode = glyphSet{
	Bullet: "•",
	Arrow:  "→",
	HRule:  "─",
	Warn:   "⚠",
}

var glyphsASCII = glyphSet{
	Bullet: "*",
	Arrow:  "->",
	HRule:  "-",
	Warn:   "!",
}

var (
	glyphsMu sync.RWMutex
	glyphs   = glyphsUnicode
)

func currentGlyphs() glyphSet {
	glyphsMu.RLock()
	defer glyphsMu.RUnlock()
	return glyphs
}

func setGlyphs(g glyphSet) {
	glyphsMu.Lock()
	glyphs = g
	glyphsMu.Unlock()
}

// applyGlyphPreference selects the glyph set. DATEBOOK_TUI_GLYPHS wins,
// then the configured value; unknown names keep the Unicode default.
func applyGlyphPreference(configured string) {
	name := strings.TrimSpace(os.Getenv("DATEBOOK_TUI_GLYPHS"))
	if name == "" {
		name = strings.TrimSpace(configured)
	}
	switch strings.ToLower(name) {
	case "ascii":
		setGlyphs(glyphsASCII)
	case "", "unicode":
		setGlyphs(glyphsUnicode)
	}
}
