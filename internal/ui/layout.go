package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which header stats are shortened.
	LayoutCompactWidth = 100

	// LayoutDetailsInfoWidth is the minimum width to show info text in details rows.
	LayoutDetailsInfoWidth = 120
)

// Chrome heights around the catalog pane.
const (
	headerLines  = 2 // header + command bar
	statusLines  = 1 // search line / notification
	detailsLines = 2 // lines per record in details mode
)

// Timing constants.
const (
	// NotificationTTL is how long a notification stays on screen.
	NotificationTTL = 3 * time.Second

	// CatalogLoadTimeout bounds the initial catalog request.
	CatalogLoadTimeout = 15 * time.Second
)

// MaxSuggestions caps "did you mean" names for unknown deep links.
const MaxSuggestions = 3

// contentHeight is the space left for the catalog pane.
func (m Model) contentHeight() int {
	h := m.height - headerLines - statusLines
	if h < 3 {
		return 3
	}
	return h
}

// visibleWindow returns the [start, end) slice of total items that fits in
// rows, keeping selected on screen.
func visibleWindow(selected, total, rows int) (int, int) {
	if rows <= 0 || total <= 0 {
		return 0, 0
	}
	if total <= rows {
		return 0, total
	}
	start := selected - rows/2
	if start < 0 {
		start = 0
	}
	if start+rows > total {
		start = total - rows
	}
	return start, start + rows
}

// renderTitledBox draws content inside a box with the title set into the top border.
func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	borderColorStr, bgColorStr := m.theme.Border, m.theme.SurfaceAlt
	if focused {
		borderColorStr, bgColorStr = m.theme.BorderFocus, m.theme.FocusBg
	}
	bg := NewBgStyle(bgColorStr)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColorStr))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := width - 2
	if innerWidth < 1 {
		innerWidth = 1
	}
	title = truncate(title, innerWidth-2)
	titleLen := lipgloss.Width(title)
	leftPad := (innerWidth - titleLen - 2) / 2
	if leftPad < 0 {
		leftPad = 0
	}
	rightPad := innerWidth - titleLen - 2 - leftPad
	if rightPad < 0 {
		rightPad = 0
	}

	topBorder := bg.Render("┌", borderStyle) +
		bg.Render(strings.Repeat("─", leftPad), borderStyle) +
		bg.Render(" "+title+" ", titleStyle) +
		bg.Render(strings.Repeat("─", rightPad), borderStyle) +
		bg.Render("┐", borderStyle)

	bottomBorder := bg.Render("└", borderStyle) +
		bg.Render(strings.Repeat("─", innerWidth), borderStyle) +
		bg.Render("┘", borderStyle)

	contentStyle := lipgloss.NewStyle().Width(innerWidth).MaxWidth(innerWidth).Background(lipgloss.Color(bgColorStr))
	contentLines := strings.Split(content, "\n")
	boxHeight := height - 2

	lines := make([]string, 0, boxHeight)
	for i := 0; i < boxHeight; i++ {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		lines = append(lines,
			bg.Render("│", borderStyle)+
				contentStyle.Render(line)+
				bg.Render("│", borderStyle))
	}

	return topBorder + "\n" + strings.Join(lines, "\n") + "\n" + bottomBorder
}
