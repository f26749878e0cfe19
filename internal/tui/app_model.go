package tui

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"datebook-cli/internal/docs"
	"datebook-cli/internal/model"
	"datebook-cli/internal/store"
)

const minibufferAutoClearAfter = 4 * time.Second

// appModel is the single bubbletea model for the whole TUI. Views and
// modals are plain enums on it rather than nested models; only the
// bubbles components (list, inputs) keep their own state.
type appModel struct {
	store store.Store

	width          int
	height         int
	seenWindowSize bool

	view view

	entries     []*model.Entry
	entriesList list.Model

	// Entry form state. entry is the loaded copy being edited;
	// fieldIdx/unitIdx address the focused picker row and selector
	// column.
	openEntryID string
	entry       *model.Entry
	fieldIdx    int
	unitIdx     int

	modal        modalKind
	confirmFocus confirmModalFocus
	input        textinput.Model
	noteArea     textarea.Model

	// Unit picker popup: the list of candidate values plus the slot
	// address it writes back to.
	unitList list.Model
	pickKey  string
	pickUnit int

	helpTopics []string
	helpIdx    int
	helpBody   string

	minibufferText  string
	minibufferIsErr bool
	minibufferSetAt time.Time

	// Key logging for diagnosing terminal/keyboard problems; see debug.go.
	debugEnabled bool
	debugLogPath string

	quitting bool
}

func newAppModel(s store.Store) appModel {
	input := textinput.New()
	input.CharLimit = 200
	input.Width = 40

	noteArea := textarea.New()
	noteArea.CharLimit = 0
	noteArea.ShowLineNumbers = false

	m := appModel{
		store:        s,
		view:         viewEntries,
		entriesList:  newList(nil),
		confirmFocus: confirmFocusCancel,
		input:        input,
		noteArea:     noteArea,
		unitList:     newList(nil),
		helpTopics:   docs.Topics(),
	}
	m.unitList.SetFilteringEnabled(false)

	if strings.TrimSpace(os.Getenv("DATEBOOK_TUI_DEBUG")) != "" {
		m.debugEnabled = true
	}
	m.debugLogPath = strings.TrimSpace(os.Getenv("DATEBOOK_TUI_DEBUG_LOG"))

	m.reloadEntries()
	m.restoreUIState()
	return m
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(reloadTick(), textinput.Blink)
}

func reloadTick() tea.Cmd {
	return tea.Tick(reloadTickEvery, func(time.Time) tea.Msg {
		return reloadTickMsg{}
	})
}

// reloadEntries refetches the list from the store, preserving the
// selected row by entry ID across the refresh.
func (m *appModel) reloadEntries() {
	selected := m.selectedEntryID()

	entries, err := m.store.ListEntries(context.Background())
	if err != nil {
		m.showError("Load failed: " + err.Error())
		return
	}
	m.entries = entries

	items := make([]list.Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, entryListItem{entry: e})
	}
	m.entriesList.SetItems(items)
	m.selectEntry(selected)
}

func (m *appModel) selectEntry(id string) {
	if id == "" {
		return
	}
	for i, it := range m.entriesList.Items() {
		if ei, ok := it.(entryListItem); ok && ei.entry.ID == id {
			m.entriesList.Select(i)
			return
		}
	}
}

func (m *appModel) selectedEntryID() string {
	it := m.entriesList.SelectedItem()
	if ei, ok := it.(entryListItem); ok {
		return ei.entry.ID
	}
	return ""
}

// openEntry loads an entry into the form view. The focused picker
// resets to the first row's first unit.
func (m *appModel) openEntry(id string) {
	e, err := m.store.GetEntry(context.Background(), id)
	if err != nil {
		m.showError("Open failed: " + err.Error())
		return
	}
	m.entry = e
	m.openEntryID = e.ID
	m.fieldIdx = 0
	m.unitIdx = 0
	m.view = viewEntry
}

// reloadOpenEntry refreshes the form copy after a store write.
func (m *appModel) reloadOpenEntry() {
	if m.openEntryID == "" {
		return
	}
	e, err := m.store.GetEntry(context.Background(), m.openEntryID)
	if err != nil {
		m.showError("Reload failed: " + err.Error())
		return
	}
	m.entry = e
}

func (m *appModel) closeEntry() {
	m.view = viewEntries
	m.entry = nil
	m.openEntryID = ""
	m.reloadEntries()
}

// restoreUIState reopens the screen recorded on the last quit. Invalid
// or stale state (a removed entry) silently falls back to the list.
func (m *appModel) restoreUIState() {
	st, err := m.store.LoadTUIState()
	if err != nil || st == nil {
		return
	}
	m.selectEntry(st.SelectedEntryID)
	if viewFromString(st.View) == viewEntry && st.OpenEntryID != "" {
		if _, err := m.store.GetEntry(context.Background(), st.OpenEntryID); err == nil {
			m.openEntry(st.OpenEntryID)
		}
	}
}

// persistUIState is best effort; saving must never block or fail the UI.
func (m *appModel) persistUIState() {
	st := &store.TUIState{
		Version:         1,
		View:            m.view.String(),
		SelectedEntryID: m.selectedEntryID(),
	}
	if m.view == viewEntry {
		st.OpenEntryID = m.openEntryID
	}
	_ = m.store.SaveTUIState(st)
}

func (m *appModel) showMinibuffer(text string) {
	m.minibufferText = text
	m.minibufferIsErr = false
	m.minibufferSetAt = time.Now()
}

func (m *appModel) showError(text string) {
	m.minibufferText = text
	m.minibufferIsErr = true
	m.minibufferSetAt = time.Now()
}
