package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/pwarps/internal/catalog"
	"github.com/five82/pwarps/internal/prefs"
)

// renderHeader renders the stats bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(2)

	parts := []string{bg.Render("pwarps", styles.Logo)}

	switch {
	case m.snapshot.Loading:
		parts = append(parts, bg.Render("Loading warps...", styles.WarningText.Bold(true)))
	case m.snapshot.LastError != nil:
		parts = append(parts,
			bg.Render("Catalog unavailable", styles.DangerText),
			bg.Render(describeLoadError(m.snapshot.LastError), styles.MutedText))
	default:
		parts = append(parts, m.statsParts(styles, bg)...)
	}

	if path := m.history.CurrentPath(); m.width >= LayoutCompactWidth {
		parts = append(parts, bg.Render(truncate(path, 40), styles.FaintText))
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Width(m.width).
		Render(styles.Header.Render(strings.Join(parts, sep)))
}

func (m Model) statsParts(styles Styles, bg BgStyle) []string {
	stats := m.snapshot.Stats
	compact := m.width < LayoutCompactWidth

	stat := func(label string, value int64) string {
		if compact {
			return bg.Render(formatCount(value), styles.Text) + bg.Space() + bg.Render(label, styles.MutedText)
		}
		return bg.Render(label+":", styles.MutedText) + bg.Space() + bg.Render(formatCount(value), styles.Text)
	}

	parts := []string{
		stat(ternary(compact, "warps", "Warps"), int64(stats.Warps)),
		stat(ternary(compact, "visits", "Total visits"), stats.TotalVisits),
		stat(ternary(compact, "owners", "Owners"), int64(stats.UniqueOwners)),
	}
	showing := fmt.Sprintf("Showing %d of %d %s", len(m.snapshot.View), stats.Warps, plural(int64(stats.Warps), "warp"))
	parts = append(parts, bg.Render(showing, styles.AccentText))
	return parts
}

// renderCommandBar renders the key hints for the active view.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	if m.detailOpen() {
		commands = []cmd{
			{"j/k", "Next/Prev"},
			{"c", "Copy"},
			{"esc", "Close"},
			{"bksp", "Back"},
			{"?", "More"},
		}
	} else {
		order := "Asc"
		if m.snapshot.SortOrder == catalog.Desc {
			order = "Desc"
		}
		if m.snapshot.SortBy == catalog.SortShuffle {
			order = "n/a"
		}
		mode := "Immersive"
		if m.snapshot.DisplayMode == prefs.Details {
			mode = "Details"
		}
		commands = []cmd{
			{"/", "Search"},
			{"s", "Sort " + m.snapshot.SortBy.Label()},
			{"o", order},
		}
		if m.snapshot.SortBy == catalog.SortShuffle {
			commands = append(commands, cmd{"r", "Reshuffle"})
		}
		commands = append(commands,
			cmd{"m", mode},
			cmd{"enter", "Open"},
			cmd{"c", "Copy"},
			cmd{"?", "More"},
		)
	}

	colon := bg.Sep(":")
	sep := bg.Spaces(2)

	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}

	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, sep))
}

// renderStatusLine shows the search input, the current notification, or the
// active filter, in that order of precedence.
func (m Model) renderStatusLine() string {
	styles := m.theme.Styles().WithBackground(m.theme.Background)
	bg := NewBgStyle(m.theme.Background)

	var content string
	switch {
	case m.searching:
		content = m.searchInput.View()
	case m.notice.text != "":
		content = m.renderNotice(bg, styles)
	case m.snapshot.SearchTerm != "":
		content = bg.Render("filter", styles.FaintText) + bg.Space() +
			bg.Render(truncate(m.snapshot.SearchTerm, 40), styles.AccentText) + bg.Spaces(2) +
			bg.Render("esc clears", styles.FaintText)
	}
	return bg.FillLine(content, m.width)
}
