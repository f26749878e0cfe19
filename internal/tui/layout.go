package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// normalizePane forces a block of text to an exact width and height so
// panes and overlays line up regardless of what a child renderer
// produced. Overlong lines are cut ANSI-aware with an ellipsis; short
// lines are padded with spaces.
func normalizePane(s string, width, height int) string {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	out := make([]string, height)
	for i := 0; i < height; i++ {
		var line string
		if i < len(lines) {
			line = lines[i]
		}
		w := xansi.StringWidth(line)
		switch {
		case w > width:
			if width == 1 {
				line = "…"
			} else {
				// Terminate styling after the cut so colors cannot bleed
				// into the padding or the next line.
				line = xansi.Cut(line, 0, width-1) + "\x1b[0m…"
			}
		case w < width:
			line += strings.Repeat(" ", width-w)
		}
		out[i] = line
	}
	return strings.Join(out, "\n")
}

// fieldCells splits a row into n equal columns with a two-cell gap, the
// last column absorbing the remainder. Widths never drop below 1.
func fieldCells(width, n int) []int {
	if n <= 0 {
		return nil
	}
	const gap = 2
	avail := width - gap*(n-1)
	if avail < n {
		avail = n
	}
	colW := avail / n
	ws := make([]int, n)
	for i := range ws {
		ws[i] = colW
	}
	ws[n-1] += avail - colW*n
	return ws
}

const cellGap = "  "

// dimBackground re-renders a view as an unstyled scrim behind a modal.
// Inner ANSI styling is stripped first; otherwise strong inner colors
// override the scrim.
func dimBackground(s string) string {
	scrim := lipgloss.NewStyle().Foreground(ac("250", "241"))
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = scrim.Render(xansi.Strip(line))
	}
	return strings.Join(lines, "\n")
}

// overlayCenter splices a modal box into the center of a dimmed base
// view. Both dimensions are clamped so a tiny terminal still renders
// something sensible.
func overlayCenter(base, overlay string, width, height int) string {
	if width < 1 || height < 1 {
		return overlay
	}
	base = dimBackground(normalizePane(base, width, height))
	baseLines := strings.Split(base, "\n")

	ovW := 0
	ovLines := strings.Split(overlay, "\n")
	for _, l := range ovLines {
		if w := xansi.StringWidth(l); w > ovW {
			ovW = w
		}
	}
	if ovW > width {
		ovW = width
	}
	if len(ovLines) > height {
		ovLines = ovLines[:height]
	}
	overlay = normalizePane(strings.Join(ovLines, "\n"), ovW, len(ovLines))
	ovLines = strings.Split(overlay, "\n")

	top := (height - len(ovLines)) / 2
	if top < 0 {
		top = 0
	}
	left := (width - ovW) / 2
	if left < 0 {
		left = 0
	}
	for i, ol := range ovLines {
		y := top + i
		if y >= len(baseLines) {
			break
		}
		bl := baseLines[y]
		leftSeg := xansi.Cut(bl, 0, left)
		rightSeg := xansi.Cut(bl, left+ovW, width)
		baseLines[y] = leftSeg + "\x1b[0m" + ol + "\x1b[0m" + rightSeg
	}
	return strings.Join(baseLines, "\n")
}
