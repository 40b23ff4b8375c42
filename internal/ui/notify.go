package ui

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/pwarps/internal/warps"
)

type noticeKind int

const (
	noticeInfo noticeKind = iota
	noticeSuccess
	noticeWarning
	noticeDanger
)

// notification is a transient message shown on the status line.
type notification struct {
	kind noticeKind
	text string
}

type noticeExpiredMsg struct{ id int }

// notify replaces the current notification and schedules its removal.
// Only the newest notification is cleared by its own timer.
func (m *Model) notify(kind noticeKind, text string) tea.Cmd {
	m.noticeID++
	m.notice = notification{kind: kind, text: text}
	id := m.noticeID
	return tea.Tick(NotificationTTL, func(time.Time) tea.Msg {
		return noticeExpiredMsg{id: id}
	})
}

func (m *Model) expireNotice(id int) {
	if id == m.noticeID {
		m.notice = notification{}
	}
}

func (m Model) renderNotice(bg BgStyle, styles Styles) string {
	if m.notice.text == "" {
		return ""
	}
	style := styles.InfoText
	switch m.notice.kind {
	case noticeSuccess:
		style = styles.SuccessText
	case noticeWarning:
		style = styles.WarningText
	case noticeDanger:
		style = styles.DangerText
	}
	return bg.Render(truncate(m.notice.text, m.width-2), style)
}

// describeLoadError turns a catalog failure into a short user-facing reason.
func describeLoadError(err error) string {
	var fetchErr *warps.FetchError
	if !errors.As(err, &fetchErr) {
		return err.Error()
	}
	switch fetchErr.Kind {
	case warps.FetchStatus:
		return fmt.Sprintf("server returned %d", fetchErr.Status)
	case warps.FetchDecode:
		return "catalog data is not a list of warps"
	default:
		return "network error"
	}
}
