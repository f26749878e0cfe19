package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"

	"datebook-cli/internal/civil"
	"datebook-cli/internal/field"
	"datebook-cli/internal/model"
)

// Picker interaction for the entry form. Every edit funnels into a
// proposeUnitMsg carrying (field key, unit index, candidate value); the
// apply step resolves rolls and wraps, then clamps through the field
// layer. The pickers never write a slot directly.

func fmt2(n int) string {
	return fmt.Sprintf("%02d", n)
}

func fmtYear(n int) string {
	return fmt.Sprintf("%04d", n)
}

// unitCellLabel renders one selector cell value. Months show a short
// name; everything but years zero-pads to two digits.
func unitCellLabel(spec field.Spec, unit, n int) string {
	if spec.Kind == field.KindDate {
		switch unit {
		case 0:
			return fmtYear(n)
		case 1:
			name := time.Month(n).String()
			if len(name) > 3 {
				name = name[:3]
			}
			return name
		}
	}
	return fmt2(n)
}

// unitChoiceLabel renders one popup row. Months get their full name so
// the popup reads as a calendar, not a number column.
func unitChoiceLabel(spec field.Spec, unit, n int) string {
	if spec.Kind == field.KindDate {
		switch unit {
		case 0:
			return fmtYear(n)
		case 1:
			return time.Month(n).String()
		}
	}
	return fmt2(n)
}

// bumpProposal turns a +/- keypress on the focused unit into a
// proposal. The candidate may sit one past the unit's bounds; rolls and
// wraps are the apply step's business. Broken slots propose nothing.
func bumpProposal(spec field.Spec, v field.Value, unit, delta int) (proposeUnitMsg, bool) {
	comps, err := field.Components(spec, v)
	if err != nil {
		return proposeUnitMsg{}, false
	}
	return proposeUnitMsg{
		key:  spec.Key,
		unit: unit,
		n:    comps[unit] + delta,
	}, true
}

// applyProposal resolves a proposed unit value and persists the entry.
//
// Out-of-bounds proposals resolve by kind:
//   - date month: rolls into the neighboring year (December forward
//     lands on January, January backward on December). At the year
//     bounds the roll is suppressed and the month clamps instead.
//   - clock units: wrap within their own range with no carry into the
//     larger unit (23 bumps to 00 without touching minutes).
//   - everything else: clamps in field.Apply (day against the month
//     length, year against its bounds).
func (m *appModel) applyProposal(msg proposeUnitMsg) {
	if m.entry == nil {
		return
	}
	spec, ok := model.SpecFor(msg.key)
	if !ok {
		return
	}
	v, ok := m.entry.Slot(msg.key)
	if !ok {
		return
	}
	comps, err := field.Components(spec, v)
	if err != nil {
		m.showError(err.Error())
		return
	}

	units := spec.Kind.Units()
	if msg.unit < 0 || msg.unit >= len(units) {
		return
	}
	u := units[msg.unit]
	n := msg.n

	next := v
	switch {
	case spec.Kind == field.KindDate && msg.unit == 1 && n > u.Max:
		if comps[0]+1 > civil.MaxYear {
			n = u.Max
		} else {
			next, err = field.Apply(spec, next, 0, comps[0]+1)
			if err != nil {
				m.showError(err.Error())
				return
			}
			n = u.Min
		}
	case spec.Kind == field.KindDate && msg.unit == 1 && n < u.Min:
		if comps[0]-1 < civil.MinYear {
			n = u.Min
		} else {
			next, err = field.Apply(spec, next, 0, comps[0]-1)
			if err != nil {
				m.showError(err.Error())
				return
			}
			n = u.Max
		}
	case spec.Kind != field.KindDate && n > u.Max:
		n = u.Min
	case spec.Kind != field.KindDate && n < u.Min:
		n = u.Max
	}

	next, err = field.Apply(spec, next, msg.unit, n)
	if err != nil {
		m.showError(err.Error())
		return
	}

	m.entry.SetSlot(msg.key, next)
	if err := m.store.PutEntry(context.Background(), m.entry); err != nil {
		m.showError("Save failed: " + err.Error())
		return
	}
	m.reloadOpenEntry()
}

// openUnitPopup opens the enumerated picker for the focused unit.
// Broken slots refuse to open; they only heal through the CLI.
func (m *appModel) openUnitPopup() {
	spec, v, ok := m.focusedSlot()
	if !ok {
		return
	}
	comps, err := field.Components(spec, v)
	if err != nil {
		m.showError(err.Error())
		return
	}

	u := spec.Kind.Units()[m.unitIdx]
	items := make([]list.Item, 0, u.Max-u.Min+1)
	for n := u.Min; n <= u.Max; n++ {
		items = append(items, unitListItem{n: n, label: unitChoiceLabel(spec, m.unitIdx, n)})
	}
	m.unitList.SetItems(items)
	m.unitList.Select(comps[m.unitIdx] - u.Min)
	m.unitList.SetSize(modalBodyWidth(m.width), m.popupListHeight())

	m.pickKey = spec.Key
	m.pickUnit = m.unitIdx
	m.modal = modalPickUnit
}

func (m *appModel) popupListHeight() int {
	h := m.height - 10
	if h > 12 {
		h = 12
	}
	if h < 3 {
		h = 3
	}
	return h
}

// focusedSlot returns the spec and raw slot under the form cursor.
func (m *appModel) focusedSlot() (field.Spec, field.Value, bool) {
	if m.entry == nil {
		return field.Spec{}, field.Value{}, false
	}
	specs := model.FieldSpecs()
	if m.fieldIdx < 0 || m.fieldIdx >= len(specs) {
		return field.Spec{}, field.Value{}, false
	}
	spec := specs[m.fieldIdx]
	v, ok := m.entry.Slot(spec.Key)
	return spec, v, ok
}

// clampUnitIdx keeps the unit cursor inside the focused row's columns.
func (m *appModel) clampUnitIdx() {
	spec, _, ok := m.focusedSlot()
	if !ok {
		return
	}
	max := len(spec.Kind.Units()) - 1
	if m.unitIdx > max {
		m.unitIdx = max
	}
	if m.unitIdx < 0 {
		m.unitIdx = 0
	}
}

// renderPickerRows draws the three field rows of the entry form. The
// focused unit cell carries the accent background; rows whose slot
// fails its shape check render the error inline and take no cursor.
func (m *appModel) renderPickerRows(width int) string {
	e := m.entry
	if e == nil {
		return ""
	}

	labelW := 0
	specs := model.FieldSpecs()
	for _, spec := range specs {
		if len(spec.Label) > labelW {
			labelW = len(spec.Label)
		}
	}

	labelStyle := styleMuted()
	labelFocused := lipgloss.NewStyle().Bold(true)
	cellStyle := lipgloss.NewStyle().Background(colorControlBg).Foreground(colorSurfaceFg).Padding(0, 1)
	cellFocused := lipgloss.NewStyle().Background(colorAccent).Foreground(colorAccentFg).Bold(true).Padding(0, 1)

	var rows []string
	for fi, spec := range specs {
		v, _ := e.Slot(spec.Key)
		focusedRow := fi == m.fieldIdx

		label := fmt.Sprintf("%-*s", labelW, spec.Label)
		if focusedRow {
			label = labelFocused.Render(label)
		} else {
			label = labelStyle.Render(label)
		}

		if err := field.CheckShape(spec, v); err != nil {
			msg := styleError().Render(currentGlyphs().Warn + " " + err.Error())
			hint := styleMuted().Render("fix via: datebook set " + shortID(e.ID) + " " + spec.Key + " <value>")
			rows = append(rows, label+"  "+msg+"  "+hint)
			continue
		}

		comps, err := field.Components(spec, v)
		if err != nil {
			rows = append(rows, label+"  "+styleError().Render(err.Error()))
			continue
		}

		cells := make([]string, 0, 4)
		for ui := range spec.Kind.Units() {
			txt := unitCellLabel(spec, ui, comps[ui])
			if focusedRow && ui == m.unitIdx {
				cells = append(cells, cellFocused.Render(txt))
			} else {
				cells = append(cells, cellStyle.Render(txt))
			}
		}

		display := styleMuted().Render(fmt.Sprintf("%-10s", field.Display(spec, v)))
		row := label + "  " + display + "  " + strings.Join(cells, " ")
		rows = append(rows, row)
	}
	return strings.Join(rows, "\n")
}

func shortID(id string) string {
	const n = 8
	if len(id) <= n {
		return id
	}
	return id[:n]
}
