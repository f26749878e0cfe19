package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"datebook-cli/internal/docs"
	"datebook-cli/internal/field"
	"datebook-cli/internal/model"
)

func proposeCmd(msg proposeUnitMsg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.seenWindowSize = true
		m.resize()
		return m, nil

	case reloadTickMsg:
		if m.minibufferText != "" && time.Since(m.minibufferSetAt) > minibufferAutoClearAfter {
			m.minibufferText = ""
			m.minibufferIsErr = false
		}
		return m, reloadTick()

	case proposeUnitMsg:
		m.applyProposal(msg)
		return m, nil

	case tea.KeyMsg:
		m.debugKeyMsg(msg)
		return m.updateKey(msg)
	}

	return m, nil
}

func (m *appModel) resize() {
	listH := m.height - chromeHeight
	if listH < 1 {
		listH = 1
	}
	m.entriesList.SetSize(m.width-2, listH)

	bodyW := modalBodyWidth(m.width)
	m.input.Width = bodyW - 4
	m.noteArea.SetWidth(bodyW)
	noteH := m.height - 12
	if noteH > 16 {
		noteH = 16
	}
	if noteH < 3 {
		noteH = 3
	}
	m.noteArea.SetHeight(noteH)
	m.unitList.SetSize(bodyW, m.popupListHeight())
}

// chromeHeight is the vertical space the header, footer and minibuffer
// take away from the list.
const chromeHeight = 5

func (m appModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.modal != modalNone {
		return m.updateModal(msg)
	}
	switch m.view {
	case viewEntry:
		return m.updateEntry(msg)
	default:
		return m.updateEntries(msg)
	}
}

func (m appModel) updateEntries(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While the list filter owns the keyboard, everything passes through.
	if m.entriesList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.entriesList, cmd = m.entriesList.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q", "ctrl+c":
		m.persistUIState()
		m.quitting = true
		return m, tea.Quit

	case "enter", "o":
		if id := m.selectedEntryID(); id != "" {
			m.openEntry(id)
			m.persistUIState()
		}
		return m, nil

	case "a":
		m.closeAllModals()
		m.modal = modalNewEntry
		m.input.Placeholder = "Entry title"
		m.input.Focus()
		return m, nil

	case "x", "d":
		if m.selectedEntryID() != "" {
			m.closeAllModals()
			m.modal = modalConfirmRemove
			m.confirmFocus = confirmFocusCancel
		}
		return m, nil

	case "?":
		m.openHelp()
		return m, nil
	}

	var cmd tea.Cmd
	m.entriesList, cmd = m.entriesList.Update(msg)
	return m, cmd
}

func (m appModel) updateEntry(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	specs := model.FieldSpecs()

	switch msg.String() {
	case "ctrl+c":
		m.persistUIState()
		m.quitting = true
		return m, tea.Quit

	case "esc", "q":
		m.closeEntry()
		m.persistUIState()
		return m, nil

	case "tab", "down", "j":
		m.fieldIdx = (m.fieldIdx + 1) % len(specs)
		m.clampUnitIdx()
		return m, nil

	case "shift+tab", "up", "k":
		m.fieldIdx = (m.fieldIdx - 1 + len(specs)) % len(specs)
		m.clampUnitIdx()
		return m, nil

	case "right", "l":
		m.unitIdx++
		m.clampUnitIdx()
		return m, nil

	case "left", "h":
		m.unitIdx--
		m.clampUnitIdx()
		return m, nil

	case "+", "=":
		if spec, v, ok := m.focusedSlot(); ok {
			if p, ok := bumpProposal(spec, v, m.unitIdx, +1); ok {
				return m, proposeCmd(p)
			}
		}
		return m, nil

	case "-", "_":
		if spec, v, ok := m.focusedSlot(); ok {
			if p, ok := bumpProposal(spec, v, m.unitIdx, -1); ok {
				return m, proposeCmd(p)
			}
		}
		return m, nil

	case "enter", " ":
		m.openUnitPopup()
		return m, nil

	case "t":
		if m.entry != nil {
			m.closeAllModals()
			m.modal = modalEditTitle
			m.input.Placeholder = "Entry title"
			m.input.SetValue(m.entry.Title)
			m.input.CursorEnd()
			m.input.Focus()
		}
		return m, nil

	case "n":
		if m.entry != nil {
			m.closeAllModals()
			m.modal = modalEditNote
			m.noteArea.SetValue(m.entry.Note)
			m.noteArea.Focus()
		}
		return m, nil

	case "x":
		m.closeAllModals()
		m.modal = modalConfirmRemove
		m.confirmFocus = confirmFocusCancel
		return m, nil

	case "?":
		m.openHelp()
		return m, nil
	}

	return m, nil
}

func (m appModel) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modal {
	case modalNewEntry:
		return m.updateNewEntryModal(msg)
	case modalEditTitle:
		return m.updateEditTitleModal(msg)
	case modalEditNote:
		return m.updateEditNoteModal(msg)
	case modalPickUnit:
		return m.updatePickUnitModal(msg)
	case modalConfirmRemove:
		return m.updateConfirmRemoveModal(msg)
	case modalHelp:
		return m.updateHelpModal(msg)
	}
	m.closeAllModals()
	return m, nil
}

func (m appModel) updateNewEntryModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+g":
		m.closeAllModals()
		return m, nil

	case "enter":
		title := strings.TrimSpace(m.input.Value())
		if title == "" {
			m.showError("Title is empty")
			return m, nil
		}
		e := &model.Entry{
			Title: title,
			Date:  field.Default(field.KindDate),
			Start: field.Default(field.KindClockHours),
			End:   field.Default(field.KindClock),
		}
		if err := m.store.CreateEntry(context.Background(), e); err != nil {
			m.showError("Add failed: " + err.Error())
			return m, nil
		}
		m.closeAllModals()
		m.reloadEntries()
		m.selectEntry(e.ID)
		m.showMinibuffer("Added: " + shortID(e.ID))
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m appModel) updateEditTitleModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+g":
		m.closeAllModals()
		return m, nil

	case "enter":
		title := strings.TrimSpace(m.input.Value())
		if title == "" {
			m.showError("Title is empty")
			return m, nil
		}
		if m.entry == nil {
			m.closeAllModals()
			return m, nil
		}
		m.entry.Title = title
		if err := m.store.PutEntry(context.Background(), m.entry); err != nil {
			m.showError("Save failed: " + err.Error())
			return m, nil
		}
		m.closeAllModals()
		m.reloadOpenEntry()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m appModel) updateEditNoteModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+g":
		m.closeAllModals()
		return m, nil

	case "ctrl+s":
		if m.entry == nil {
			m.closeAllModals()
			return m, nil
		}
		m.entry.Note = strings.TrimSpace(m.noteArea.Value())
		if err := m.store.PutEntry(context.Background(), m.entry); err != nil {
			m.showError("Save failed: " + err.Error())
			return m, nil
		}
		m.closeAllModals()
		m.reloadOpenEntry()
		return m, nil
	}

	var cmd tea.Cmd
	m.noteArea, cmd = m.noteArea.Update(msg)
	return m, cmd
}

func (m appModel) updatePickUnitModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+g", "q":
		m.closeAllModals()
		return m, nil

	case "enter":
		it := m.unitList.SelectedItem()
		m.closeAllModals()
		if ui, ok := it.(unitListItem); ok {
			return m, proposeCmd(proposeUnitMsg{key: m.pickKey, unit: m.pickUnit, n: ui.n})
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.unitList, cmd = m.unitList.Update(msg)
	return m, cmd
}

func (m appModel) updateConfirmRemoveModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+g", "n":
		m.closeAllModals()
		return m, nil

	case "tab", "left", "right", "shift+tab":
		if m.confirmFocus == confirmFocusConfirm {
			m.confirmFocus = confirmFocusCancel
		} else {
			m.confirmFocus = confirmFocusConfirm
		}
		return m, nil

	case "y":
		return m.removeTargetEntry()

	case "enter":
		if m.confirmFocus == confirmFocusConfirm {
			return m.removeTargetEntry()
		}
		m.closeAllModals()
		return m, nil
	}
	return m, nil
}

// removeTargetEntry deletes whichever entry the confirm modal was
// opened for: the open one in the form view, the selected row in the
// list view.
func (m appModel) removeTargetEntry() (tea.Model, tea.Cmd) {
	id := m.selectedEntryID()
	if m.view == viewEntry {
		id = m.openEntryID
	}
	m.closeAllModals()
	if id == "" {
		return m, nil
	}
	if err := m.store.DeleteEntry(context.Background(), id); err != nil {
		m.showError("Remove failed: " + err.Error())
		return m, nil
	}
	if m.view == viewEntry {
		m.closeEntry()
	} else {
		m.reloadEntries()
	}
	m.showMinibuffer("Removed: " + shortID(id))
	m.persistUIState()
	return m, nil
}

func (m *appModel) openHelp() {
	if len(m.helpTopics) == 0 {
		m.showError("No help topics bundled")
		return
	}
	m.closeAllModals()
	m.modal = modalHelp
	m.loadHelpTopic()
}

func (m *appModel) loadHelpTopic() {
	topic := m.helpTopics[m.helpIdx]
	body, ok := docs.Get(topic)
	if !ok {
		m.helpBody = "Topic missing: " + topic
		return
	}
	m.helpBody = renderMarkdown(body, modalBodyWidth(m.width))
}

func (m appModel) updateHelpModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "ctrl+g", "?":
		m.closeAllModals()
		return m, nil

	case "tab", "right", "l":
		m.helpIdx = (m.helpIdx + 1) % len(m.helpTopics)
		m.loadHelpTopic()
		return m, nil

	case "shift+tab", "left", "h":
		m.helpIdx = (m.helpIdx - 1 + len(m.helpTopics)) % len(m.helpTopics)
		m.loadHelpTopic()
		return m, nil
	}
	return m, nil
}
