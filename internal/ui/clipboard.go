package ui

import (
	"log/slog"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/pwarps/internal/warps"
)

// clipboardResultMsg is sent after a clipboard copy operation.
type clipboardResultMsg struct {
	command string
	err     error
}

func systemClipboard(text string) error {
	return clipboard.WriteAll(text)
}

// copyCommand writes the /pwarp command for rec off the update loop.
func (m Model) copyCommand(rec warps.Record) tea.Cmd {
	write := m.copyFn
	command := rec.Command()
	return func() tea.Msg {
		return clipboardResultMsg{command: command, err: write(command)}
	}
}

func (m *Model) handleClipboardResult(msg clipboardResultMsg) tea.Cmd {
	if msg.err != nil {
		slog.Warn("clipboard write failed", "command", msg.command, "error", msg.err)
		return m.notify(noticeDanger, "Copy failed: "+msg.err.Error())
	}
	return m.notify(noticeSuccess, "Copied "+msg.command)
}
