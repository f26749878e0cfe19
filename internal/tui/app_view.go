package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"datebook-cli/internal/model"
)

func (m appModel) View() string {
	if m.quitting {
		return ""
	}
	if !m.seenWindowSize || m.width < 10 || m.height < 4 {
		return "Initializing..."
	}

	header := m.renderHeader()
	footer := m.renderFooter()
	minibuffer := m.renderMinibuffer()

	bodyH := m.height - lipgloss.Height(header) - lipgloss.Height(footer) - lipgloss.Height(minibuffer)
	if bodyH < 1 {
		bodyH = 1
	}

	var body string
	switch m.view {
	case viewEntry:
		body = m.renderEntryView(m.width, bodyH)
	default:
		body = m.renderEntriesView(m.width, bodyH)
	}
	body = normalizePane(body, m.width, bodyH)

	base := strings.Join([]string{header, body, minibuffer, footer}, "\n")

	if m.modal != modalNone {
		return overlayCenter(base, m.renderModal(), m.width, m.height)
	}
	return base
}

func (m appModel) renderHeader() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(colorHeader).Render("Datebook")
	where := styleMuted().Render(m.store.Dir)

	gap := m.width - lipgloss.Width(title) - lipgloss.Width(where) - 2
	if gap < 1 {
		return normalizePane(" "+title, m.width, 1)
	}
	return " " + title + strings.Repeat(" ", gap) + where + " "
}

func (m appModel) renderFooter() string {
	var hints string
	switch {
	case m.modal == modalNewEntry, m.modal == modalEditTitle:
		hints = "enter: save   esc: cancel"
	case m.modal == modalEditNote:
		hints = "ctrl+s: save   esc: cancel"
	case m.modal == modalPickUnit:
		hints = "enter: select   esc: cancel"
	case m.modal == modalConfirmRemove:
		hints = "y: remove   n/esc: cancel"
	case m.modal == modalHelp:
		hints = "tab: next topic   esc: close"
	case m.view == viewEntry:
		hints = "tab: field   " + currentGlyphs().Arrow + ": unit   +/-: bump   enter: pick   t: title   n: note   x: remove   esc: back"
	default:
		hints = "enter: open   a: add   x: remove   /: filter   ?: help   q: quit"
	}
	return normalizePane(" "+styleMuted().Render(hints), m.width, 1)
}

func (m appModel) renderMinibuffer() string {
	if m.minibufferText == "" {
		return normalizePane("", m.width, 1)
	}
	st := lipgloss.NewStyle().Foreground(colorStatus)
	if m.minibufferIsErr {
		st = styleError()
	}
	return normalizePane(" "+st.Render(m.minibufferText), m.width, 1)
}

func (m appModel) renderEntriesView(width, height int) string {
	if len(m.entriesList.Items()) == 0 {
		empty := styleMuted().Render("No entries yet. Press a to add one.")
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, empty)
	}
	return m.entriesList.View()
}

// renderEntryView lays the form and the note preview side by side when
// the terminal is wide enough, stacked otherwise.
func (m appModel) renderEntryView(width, height int) string {
	e := m.entry
	if e == nil {
		return styleMuted().Render("No entry open.")
	}

	title := lipgloss.NewStyle().Bold(true).Render(strings.TrimSpace(e.Title))
	id := styleMuted().Render(shortID(e.ID))
	head := " " + title + "  " + id

	form := head + "\n\n" + indentBlock(m.renderPickerRows(width-2), " ")

	if width >= 100 {
		cols := fieldCells(width, 2)
		note := m.renderNotePane(cols[1])
		left := normalizePane(form, cols[0], height)
		right := normalizePane(note, cols[1], height)
		return lipgloss.JoinHorizontal(lipgloss.Top, left, cellGap, right)
	}

	note := m.renderNotePane(width - 2)
	return form + "\n\n" + indentBlock(note, " ")
}

func (m appModel) renderNotePane(width int) string {
	label := styleMuted().Render("Note")
	if m.entry == nil || strings.TrimSpace(m.entry.Note) == "" {
		return label + "\n" + styleMuted().Render("(none; press n to write one)")
	}
	return label + "\n" + renderMarkdown(m.entry.Note, width)
}

func indentBlock(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

func (m appModel) renderModal() string {
	switch m.modal {
	case modalNewEntry:
		body := renderInputLine(modalBodyWidth(m.width), m.input.View()) +
			"\n\n" + styleMuted().Render("enter: save   esc: cancel")
		return renderModalBox(m.width, "New entry", body)

	case modalEditTitle:
		body := renderInputLine(modalBodyWidth(m.width), m.input.View()) +
			"\n\n" + styleMuted().Render("enter: save   esc: cancel")
		return renderModalBox(m.width, "Edit title", body)

	case modalEditNote:
		body := m.noteArea.View() +
			"\n\n" + styleMuted().Render("ctrl+s: save   esc: cancel")
		return renderModalBox(m.width, "Edit note", body)

	case modalPickUnit:
		body := m.unitList.View() +
			"\n\n" + styleMuted().Render("enter: select   esc: cancel")
		return renderModalBox(m.width, m.pickTitle(), body)

	case modalConfirmRemove:
		target := m.removeTargetTitle()
		return renderConfirmModal(m.width, "Remove entry",
			"Remove "+target+"? This cannot be undone.",
			"Remove", "Cancel", m.confirmFocus)

	case modalHelp:
		topic := m.helpTopics[m.helpIdx]
		nav := styleMuted().Render("topics: " + strings.Join(m.helpTopics, "  "))
		return renderModalBox(m.width, "Help: "+topic, m.helpBody+"\n\n"+nav)
	}
	return ""
}

func (m appModel) pickTitle() string {
	spec, ok := model.SpecFor(m.pickKey)
	if !ok {
		return "Pick"
	}
	units := spec.Kind.Units()
	if m.pickUnit < 0 || m.pickUnit >= len(units) {
		return spec.Label
	}
	return spec.Label + ": " + units[m.pickUnit].Name
}

func (m appModel) removeTargetTitle() string {
	id := m.selectedEntryID()
	if m.view == viewEntry {
		id = m.openEntryID
	}
	for _, e := range m.entries {
		if e.ID == id {
			t := strings.TrimSpace(e.Title)
			if t != "" {
				return "\"" + t + "\""
			}
		}
	}
	if m.view == viewEntry && m.entry != nil {
		if t := strings.TrimSpace(m.entry.Title); t != "" {
			return "\"" + t + "\""
		}
	}
	return "this entry"
}
