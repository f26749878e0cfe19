package tui

import "time"

// view identifies the top-level screen.
type view int

const (
	viewEntries view = iota
	viewEntry
)

func (v view) String() string {
	switch v {
	case viewEntries:
		return "entries"
	case viewEntry:
		return "entry"
	}
	return "unknown"
}

func viewFromString(s string) view {
	if s == "entry" {
		return viewEntry
	}
	return viewEntries
}

// modalKind identifies which overlay owns the keyboard. modalNone means
// keys go to the current view.
type modalKind int

const (
	modalNone modalKind = iota
	modalNewEntry
	modalEditTitle
	modalEditNote
	modalPickUnit
	modalConfirmRemove
	modalHelp
)

// reloadTickMsg drives periodic housekeeping like minibuffer auto-clear.
type reloadTickMsg struct{}

const reloadTickEvery = 2 * time.Second

// proposeUnitMsg asks the entry form to set one unit of one field slot.
// Bump keys may propose a value one past the unit's bounds; the form
// resolves month rolls and clock wraps before applying, everything else
// clamps in the apply step.
type proposeUnitMsg struct {
	key  string
	unit int
	n    int
}

// closeAllModals resets every modal input so no stale state leaks into
// the next open.
func (m *appModel) closeAllModals() {
	m.modal = modalNone
	m.confirmFocus = confirmFocusCancel
	m.input.Blur()
	m.input.SetValue("")
	m.noteArea.Blur()
	m.helpBody = ""
}
