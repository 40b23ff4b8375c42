package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/pwarps/internal/nav"
	"github.com/five82/pwarps/internal/warps"
)

const detailLabelWidth = 10

// renderDetail renders every field of the open warp.
func (m Model) renderDetail() string {
	styles := m.theme.Styles()
	height := m.contentHeight()
	innerWidth := m.width - 4

	rec, ok := m.detailRecord()
	if !ok {
		name, _ := m.sync.Selected()
		msg := styles.DangerText.Render("Warp not found: " + name)
		return m.renderTitledBox("Detail", msg, m.width, height, true)
	}

	bg := NewBgStyle(m.theme.FocusBg)
	label := func(s string) string {
		return bg.Render(padRight(s, detailLabelWidth), styles.MutedText)
	}
	value := func(s string, style lipgloss.Style) string {
		return bg.Render(truncate(s, innerWidth-detailLabelWidth), style)
	}

	visits := rec.VisitCount()
	visitText := formatCount(visits)
	if raw := strings.TrimSpace(rec.Visits); raw != "" && raw != strconv.FormatInt(visits, 10) {
		visitText += " (" + raw + ")"
	}

	created := formatCreated(rec, true)
	if _, ok := rec.CreatedAt(); !ok {
		created += " (unparsed)"
	}

	var lines []string
	lines = append(lines,
		bg.Space()+bg.Render(rec.Name, styles.Text.Bold(true)),
		"",
		bg.Space()+label("Owner")+value("@"+rec.Owner, styles.Text),
		bg.Space()+label("Visits")+styles.VisitsBadge.Render(visitText),
		bg.Space()+label("Created")+value(created, styles.Text),
		bg.Space()+label("Image")+value(rec.Image(), ternary(rec.Image() == warps.PlaceholderImage, styles.FaintText, styles.InfoText)),
	)

	if info := strings.TrimSpace(rec.Info); info != "" {
		wrapped := lipgloss.NewStyle().
			Width(max(innerWidth-detailLabelWidth-1, 10)).
			Foreground(lipgloss.Color(m.theme.Text)).
			Background(lipgloss.Color(m.theme.FocusBg)).
			Render(info)
		for i, line := range strings.Split(wrapped, "\n") {
			prefix := bg.Spaces(detailLabelWidth)
			if i == 0 {
				prefix = label("Info")
			}
			lines = append(lines, bg.Space()+prefix+line)
		}
	}
	if note := strings.TrimSpace(rec.Note); note != "" {
		lines = append(lines, bg.Space()+label("Note")+styles.NoteBadge.Render(truncate(note, innerWidth-detailLabelWidth-2)))
	}

	lines = append(lines,
		"",
		bg.Space()+label("Command")+value(rec.Command(), styles.AccentText.Bold(true)),
		bg.Space()+label("Link")+value(nav.WarpPath(rec.Name), styles.FaintText),
		"",
		bg.Space()+m.detailPosition(styles, bg),
	)

	return m.renderTitledBox("Warp", strings.Join(lines, "\n"), m.width, height, true)
}

// detailPosition shows where the open warp sits in the current view.
func (m Model) detailPosition(styles Styles, bg BgStyle) string {
	idx := m.detailIndex()
	if idx < 0 {
		return bg.Render("Hidden by the current search", styles.FaintText)
	}
	return bg.Render(formatCount(int64(idx+1))+" of "+formatCount(int64(len(m.snapshot.View))), styles.FaintText)
}
