package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"datebook-cli/internal/field"
	"datebook-cli/internal/model"
)

func newList(items []list.Item) list.Model {
	l := list.New(items, newCompactDelegate(), 0, 0)
	// The app renders its own header + footer, so keep list chrome off.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(true)
	l.SetStatusBarItemName("entry", "entries")
	// Bubble list defaults to quitting on ESC; here ESC is "back/cancel".
	l.KeyMap.Quit.SetKeys("q")
	// Emacs-style navigation aliases.
	cursorUpKeys := append([]string{}, l.KeyMap.CursorUp.Keys()...)
	cursorUpKeys = append(cursorUpKeys, "ctrl+p")
	l.KeyMap.CursorUp.SetKeys(cursorUpKeys...)

	cursorDownKeys := append([]string{}, l.KeyMap.CursorDown.Keys()...)
	cursorDownKeys = append(cursorDownKeys, "ctrl+n")
	l.KeyMap.CursorDown.SetKeys(cursorDownKeys...)
	// Extra go-to-start/end aliases for non-US keyboard muscle memory;
	// complements the defaults home/g and end/G.
	goToStartKeys := append([]string{}, l.KeyMap.GoToStart.Keys()...)
	goToStartKeys = append(goToStartKeys, "<")
	l.KeyMap.GoToStart.SetKeys(goToStartKeys...)

	goToEndKeys := append([]string{}, l.KeyMap.GoToEnd.Keys()...)
	goToEndKeys = append(goToEndKeys, ">")
	l.KeyMap.GoToEnd.SetKeys(goToEndKeys...)
	return l
}

// entryListItem is one row of the entries list.
type entryListItem struct {
	entry *model.Entry
}

func (i entryListItem) FilterValue() string {
	return strings.TrimSpace(i.entry.Title)
}

// Title renders the row: date, start/end range, then the entry title.
// Slots that fail their shape check show as "invalid" plus a warning
// marker so broken rows are visible without opening them.
func (i entryListItem) Title() string {
	g := currentGlyphs()
	e := i.entry

	var broken bool
	parts := make(map[string]string, 3)
	for _, spec := range model.FieldSpecs() {
		v, _ := e.Slot(spec.Key)
		parts[spec.Key] = field.Display(spec, v)
		if field.CheckShape(spec, v) != nil {
			broken = true
		}
	}

	marker := " "
	if broken {
		marker = g.Warn
	}

	title := strings.TrimSpace(e.Title)
	if title == "" {
		title = "(untitled)"
	}
	return fmt.Sprintf("%s %s %-10s  %-8s %s %-8s  %s",
		g.Bullet, marker, parts["date"], parts["start"], g.Arrow, parts["end"], title)
}

type compactDelegate struct {
	normal   lipgloss.Style
	selected lipgloss.Style
}

func newCompactDelegate() compactDelegate {
	return compactDelegate{
		normal: lipgloss.NewStyle(),
		selected: lipgloss.NewStyle().
			Foreground(colorSelectedFg).
			Background(colorSelectedBg).
			Bold(true),
	}
}

func (d compactDelegate) Height() int  { return 1 }
func (d compactDelegate) Spacing() int { return 0 }
func (d compactDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d compactDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	contentW := m.Width()
	if contentW < 4 {
		fmt.Fprint(w, "")
		return
	}

	style := d.normal
	if index == m.Index() {
		style = d.selected
	}

	txt := ""
	if t, ok := item.(interface{ Title() string }); ok {
		txt = t.Title()
	} else {
		txt = fmt.Sprint(item)
	}

	line := txt
	lineW := xansi.StringWidth(line)
	if lineW < contentW {
		line += strings.Repeat(" ", contentW-lineW)
	} else if lineW > contentW {
		line = xansi.Cut(line, 0, contentW)
	}

	fmt.Fprint(w, style.Render(line))
}

// unitListItem is one choice in the unit picker popup.
type unitListItem struct {
	n     int
	label string
}

func (i unitListItem) FilterValue() string { return i.label }
func (i unitListItem) Title() string       { return i.label }
