package tui

import (
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// debugLogf appends one line to the debug key log. Failures are
// swallowed; diagnostics must never take down the UI.
func (m *appModel) debugLogf(format string, args ...any) {
	path := strings.TrimSpace(m.debugLogPath)
	if path == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()
	args = append([]any{time.Now().Format("15:04:05.000")}, args...)
	fmt.Fprintf(f, "%s "+format+"\n", args...)
}

// debugKeyMsg records a keypress with enough addressing context to
// diagnose modifier and focus problems.
func (m appModel) debugKeyMsg(k tea.KeyMsg) {
	if !m.debugEnabled {
		return
	}
	// Only write if the user provided a log path.
	if strings.TrimSpace(m.debugLogPath) == "" {
		return
	}
	(&m).debugLogf("key view=%s modal=%d field=%d unit=%d str=%q type=%v alt=%v runes=%q",
		m.view.String(), int(m.modal), m.fieldIdx, m.unitIdx,
		k.String(), k.Type, k.Alt, string(k.Runes))
}
