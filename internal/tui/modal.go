package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

const (
	modalMaxBoxWidth = 72
	modalMinBoxWidth = 24
)

func modalBoxWidth(width int) int {
	w := width - 6
	if w > modalMaxBoxWidth {
		w = modalMaxBoxWidth
	}
	if w < modalMinBoxWidth {
		w = modalMinBoxWidth
	}
	return w
}

// modalBodyWidth is the inner width available to modal content: the box
// width minus the border and horizontal padding.
func modalBodyWidth(width int) int {
	return modalBoxWidth(width) - 2 - 2*modalPadX
}

const modalPadX = 1

// renderModalBox wraps content in the shared modal chrome: a rounded
// border, a title line and a rule under it.
func renderModalBox(width int, title, content string) string {
	bodyW := modalBodyWidth(width)

	titleLine := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorSurfaceFg).
		Render(title)
	rule := styleMuted().Render(strings.Repeat(currentGlyphs().HRule, bodyW))

	inner := titleLine + "\n" + rule + "\n" + content

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorMuted).
		Background(colorSurfaceBg).
		Foreground(colorSurfaceFg).
		Padding(0, modalPadX).
		Width(bodyW + 2*modalPadX)
	return box.Render(inner)
}

type confirmModalFocus int

const (
	confirmFocusConfirm confirmModalFocus = iota
	confirmFocusCancel
)

func renderConfirmModal(width int, title, body, confirmLabel, cancelLabel string, focus confirmModalFocus) string {
	// No borders here: some terminals show background artifacts when
	// nesting bordered components inside a modal with a background color.
	btnBase := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(colorSurfaceFg).
		Background(colorControlBg)
	btnActive := btnBase.
		Foreground(colorAccentFg).
		Background(colorAccent).
		Bold(true)

	confirm := btnBase.Render(confirmLabel)
	cancel := btnBase.Render(cancelLabel)
	if focus == confirmFocusConfirm {
		confirm = btnActive.Render(confirmLabel)
	}
	if focus == confirmFocusCancel {
		cancel = btnActive.Render(cancelLabel)
	}

	controls := lipgloss.JoinHorizontal(lipgloss.Top, confirm, " ", cancel)

	bodyW := modalBodyWidth(width)
	help := styleMuted().Width(bodyW).Render("tab: focus   enter: select   esc: cancel")

	content := strings.Join([]string{
		body,
		"",
		controls,
		"",
		help,
	}, "\n")
	return renderModalBox(width, title, content)
}

// renderInputLine keeps a text input on a single visual line inside a
// modal. If the view ever contains newlines or overflows due to
// ANSI/cursor styling, wrapping can look like newline insertion while
// typing.
func renderInputLine(bodyW int, inputView string) string {
	if bodyW < 10 {
		bodyW = 10
	}

	inputView = strings.ReplaceAll(inputView, "\n", " ")
	inputView = strings.ReplaceAll(inputView, "\r", " ")

	line := lipgloss.PlaceHorizontal(
		bodyW,
		lipgloss.Left,
		" "+inputView+" ",
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceBackground(colorInputBg),
	)
	if xansi.StringWidth(line) > bodyW {
		// Never exceed the modal body width; terminate ANSI styling to
		// prevent bleed.
		line = xansi.Cut(line, 0, bodyW) + "\x1b[0m"
	}
	return line
}
