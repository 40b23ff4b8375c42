package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/pwarps/internal/prefs"
	"github.com/five82/pwarps/internal/warps"
)

// renderCatalog renders the filtered, ordered warp list.
func (m Model) renderCatalog() string {
	styles := m.theme.Styles()
	height := m.contentHeight()
	view := m.snapshot.View

	title := fmt.Sprintf("Warps · %s", m.snapshot.SortBy.Label())
	if m.snapshot.Loaded {
		title = fmt.Sprintf("Warps (%d of %d) · %s", len(view), m.snapshot.Stats.Warps, m.snapshot.SortBy.Label())
	}

	var content string
	switch {
	case m.snapshot.Loading:
		content = m.centered(styles.WarningText.Render("Loading warps..."), height-2)
	case m.snapshot.LastError != nil:
		content = m.centered(styles.DangerText.Render("Could not load the catalog"), height-2)
	case len(view) == 0:
		msg := styles.Text.Bold(true).Render("No warps found") + "\n" +
			styles.MutedText.Render("Try adjusting your search")
		content = m.centered(msg, height-2)
	case m.snapshot.DisplayMode == prefs.Details:
		content = m.renderDetailsRows(m.width-2, height-2)
	default:
		content = m.renderImmersiveRows(m.width-2, height-2)
	}

	return m.renderTitledBox(title, content, m.width, height, false)
}

func (m Model) centered(content string, height int) string {
	return lipgloss.Place(m.width-2, max(height, 1), lipgloss.Center, lipgloss.Center, content,
		lipgloss.WithWhitespaceBackground(lipgloss.Color(m.theme.SurfaceAlt)))
}

// renderImmersiveRows renders one line per warp: name, owner and badges.
func (m Model) renderImmersiveRows(width, rows int) string {
	view := m.snapshot.View
	start, end := visibleWindow(m.selectedRow, len(view), rows)
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		selected := i == m.selectedRow
		bgColor := ternary(selected, m.theme.SelectionBg, m.theme.SurfaceAlt)
		lines = append(lines, m.formatSummaryLine(view[i], width, bgColor, selected))
	}
	return strings.Join(lines, "\n")
}

// renderDetailsRows adds the command, created date and info on a second line.
func (m Model) renderDetailsRows(width, rows int) string {
	view := m.snapshot.View
	start, end := visibleWindow(m.selectedRow, len(view), max(rows/detailsLines, 1))
	lines := make([]string, 0, (end-start)*detailsLines)
	for i := start; i < end; i++ {
		selected := i == m.selectedRow
		bgColor := ternary(selected, m.theme.SelectionBg, m.theme.SurfaceAlt)
		lines = append(lines,
			m.formatSummaryLine(view[i], width, bgColor, selected),
			m.formatDetailsLine(view[i], width, bgColor, selected))
	}
	return strings.Join(lines, "\n")
}

// formatSummaryLine formats "name @owner ... [N visits] [note]".
func (m Model) formatSummaryLine(rec warps.Record, width int, bgColor string, selected bool) string {
	styles := m.theme.Styles()
	bg := NewBgStyle(bgColor)

	nameStyle := styles.Text.Bold(true)
	ownerStyle := styles.MutedText
	if selected {
		nameStyle = nameStyle.Foreground(lipgloss.Color(m.theme.SelectionText))
		ownerStyle = ownerStyle.Foreground(lipgloss.Color(m.theme.SelectionText))
	}

	visits := rec.VisitCount()
	right := styles.VisitsBadge.Render(formatCount(visits) + " " + plural(visits, "visit"))
	if strings.TrimSpace(rec.Note) != "" {
		right = styles.NoteBadge.Render(truncate(rec.Note, 24)) + bg.Space() + right
	}

	room := width - lipgloss.Width(right) - 3
	name := truncate(rec.Name, max(room/2, 8))
	owner := truncate("@"+rec.Owner, max(room-lipgloss.Width(name)-2, 4))
	left := bg.Space() + bg.Render(name, nameStyle) + bg.Spaces(2) + bg.Render(owner, ownerStyle)

	gap := width - lipgloss.Width(left) - lipgloss.Width(right) - 1
	return bg.FillLine(left+bg.Spaces(gap)+right, width)
}

func (m Model) formatDetailsLine(rec warps.Record, width int, bgColor string, selected bool) string {
	styles := m.theme.Styles()
	bg := NewBgStyle(bgColor)

	faint := styles.FaintText
	if selected {
		faint = faint.Foreground(lipgloss.Color(m.theme.SelectionText))
	}

	parts := []string{
		bg.Render(rec.Command(), styles.AccentText),
		bg.Render(formatCreated(rec, false), faint),
	}
	if info := strings.TrimSpace(rec.Info); info != "" && m.width >= LayoutDetailsInfoWidth {
		used := lipgloss.Width(strings.Join(parts, "  ")) + 6
		parts = append(parts, bg.Render(truncate(info, max(width-used, 4)), faint))
	}
	return bg.FillLine(bg.Spaces(3)+bg.Join(parts, "  "), width)
}

// formatCreated renders the created date, falling back to the raw value.
func formatCreated(rec warps.Record, withTime bool) string {
	t, ok := rec.CreatedAt()
	if !ok {
		if strings.TrimSpace(rec.Created) == "" {
			return "unknown date"
		}
		return rec.Created
	}
	if withTime {
		return t.UTC().Format("2006-01-02 15:04 MST")
	}
	return t.UTC().Format("2006-01-02")
}
