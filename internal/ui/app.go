package ui

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/pwarps/internal/nav"
	"github.com/five82/pwarps/internal/prefs"
	"github.com/five82/pwarps/internal/state"
	"github.com/five82/pwarps/internal/warps"
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Source    warps.Source
	Store     *state.Store
	History   *nav.History
	Sync      *nav.Synchronizer
	Prefs     *prefs.Store
	ThemeName string
	// Clipboard writes text to the system clipboard. Nil uses the OS clipboard.
	Clipboard func(string) error
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Collaborators
	ctx     context.Context
	source  warps.Source
	store   *state.Store
	history *nav.History
	sync    *nav.Synchronizer
	prefs   *prefs.Store
	copyFn  func(string) error
	keys    keyMap

	// UI state
	theme  Theme
	width  int
	height int
	ready  bool

	// Data state
	snapshot    state.Snapshot
	selectedRow int

	// Search input
	searching   bool
	searchInput textinput.Model

	showHelp bool

	notice   notification
	noticeID int
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	userPrefs := opts.Prefs
	if userPrefs == nil {
		userPrefs = prefs.NewStore(nil)
	}

	history := opts.History
	if history == nil {
		history = nav.NewHistory(nav.RootPath)
	}

	sync := opts.Sync
	if sync == nil {
		sync = nav.NewSynchronizer(history)
	}

	store := opts.Store
	if store == nil {
		store = state.NewStore(state.DefaultViewState(), userPrefs, nil)
	}

	themeName := opts.ThemeName
	if themeName == "" {
		if saved, ok := userPrefs.Theme(); ok {
			themeName = saved
		}
	}

	copyFn := opts.Clipboard
	if copyFn == nil {
		copyFn = systemClipboard
	}

	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "name or owner"
	ti.CharLimit = 120

	return Model{
		ctx:         ctx,
		source:      opts.Source,
		store:       store,
		history:     history,
		sync:        sync,
		prefs:       userPrefs,
		copyFn:      copyFn,
		keys:        DefaultKeyMap(),
		theme:       GetTheme(themeName),
		snapshot:    store.Snapshot(),
		searchInput: ti,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return loadCatalogCmd(m.ctx, m.source)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.searchInput.Width = max(10, msg.Width-4)
		m.ready = true
		return m, nil

	case catalogLoadedMsg:
		cmd := m.handleCatalogLoaded(msg)
		return m, cmd

	case clipboardResultMsg:
		cmd := m.handleClipboardResult(msg)
		return m, cmd

	case noticeExpiredMsg:
		m.expireNotice(msg.id)
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	if m.detailOpen() {
		b.WriteString(m.renderDetail())
	} else {
		b.WriteString(m.renderCatalog())
	}
	b.WriteString("\n")
	b.WriteString(m.renderStatusLine())
	return b.String()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.searching {
		return m.handleSearchInput(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.prefs.SetTheme(m.theme.Name)
		return m, nil

	case key.Matches(msg, m.keys.Back):
		if !m.history.Back() {
			cmd := m.notify(noticeInfo, "No earlier history")
			return m, cmd
		}
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.Forward):
		if !m.history.Forward() {
			cmd := m.notify(noticeInfo, "No later history")
			return m, cmd
		}
		m.refresh()
		return m, nil
	}

	if m.detailOpen() {
		return m.handleDetailKey(msg)
	}
	return m.handleCatalogKey(msg)
}

// handleCatalogKey processes keyboard input for the catalog list.
func (m Model) handleCatalogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.searchInput.SetValue(m.snapshot.SearchTerm)
		m.searchInput.CursorEnd()
		cmd := m.searchInput.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.Escape):
		if m.snapshot.SearchTerm != "" {
			m.searchInput.SetValue("")
			m.store.SetSearchTerm("")
			m.selectedRow = 0
			m.refresh()
		}
		return m, nil

	case key.Matches(msg, m.keys.NextSort):
		m.store.SetSortBy(m.snapshot.SortBy.Next())
		m.selectedRow = 0
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.PrevSort):
		m.store.SetSortBy(m.snapshot.SortBy.Prev())
		m.selectedRow = 0
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.ToggleOrder):
		if !m.store.ToggleSortOrder() {
			cmd := m.notify(noticeWarning, "Sort order is unavailable in shuffle mode")
			return m, cmd
		}
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.Reshuffle):
		m.store.Reshuffle()
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.ToggleDisplay):
		m.store.SetDisplayMode(m.snapshot.DisplayMode.Toggle())
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.Open):
		if rec, ok := m.selectedRecord(); ok {
			m.sync.OpenDetail(rec.Name)
		}
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		if rec, ok := m.selectedRecord(); ok {
			return m, m.copyCommand(rec)
		}
		return m, nil
	}

	m.moveSelection(msg)
	return m, nil
}

// handleDetailKey processes keyboard input while a detail view is open.
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.sync.CloseDetail()
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.stepDetail(1)
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.stepDetail(-1)
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		if rec, ok := m.detailRecord(); ok {
			return m, m.copyCommand(rec)
		}
		return m, nil
	}
	return m, nil
}

// handleSearchInput applies every edit to the search term as it is typed.
func (m Model) handleSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit

	case key.Matches(msg, m.keys.Confirm):
		m.searching = false
		m.searchInput.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		m.searching = false
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.store.SetSearchTerm("")
		m.selectedRow = 0
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if term := m.searchInput.Value(); term != m.snapshot.SearchTerm {
		m.store.SetSearchTerm(term)
		m.selectedRow = 0
		m.refresh()
	}
	return m, cmd
}

// handleCatalogLoaded installs the catalog, then resolves a deep link in
// the start path against it.
func (m *Model) handleCatalogLoaded(msg catalogLoadedMsg) tea.Cmd {
	if msg.err != nil {
		m.store.SetLoadError(msg.err)
		m.sync.Resolve(nil)
		m.refresh()
		return m.notify(noticeDanger, "Could not load warps: "+describeLoadError(msg.err))
	}

	m.store.SetRecords(msg.records)
	m.refresh()

	link := m.sync.Resolve(func(name string) bool {
		_, ok := m.store.Find(name)
		return ok
	})
	switch {
	case link.Found:
		if idx := indexOfName(m.snapshot.View, link.Name); idx >= 0 {
			m.selectedRow = idx
		}
	case link.Requested:
		text := fmt.Sprintf("No warp named %q", link.Name)
		if names := suggestNames(link.Name, recordNames(m.snapshot.Records), MaxSuggestions); len(names) > 0 {
			text += "; did you mean " + strings.Join(names, ", ") + "?"
		}
		return m.notify(noticeWarning, text)
	}
	return nil
}

// refresh pulls a new snapshot and keeps the selection in range.
func (m *Model) refresh() {
	m.snapshot = m.store.Snapshot()
	if n := len(m.snapshot.View); m.selectedRow >= n {
		m.selectedRow = n - 1
	}
	if m.selectedRow < 0 {
		m.selectedRow = 0
	}
}

func (m *Model) moveSelection(msg tea.KeyMsg) {
	n := len(m.snapshot.View)
	if n == 0 {
		return
	}
	page := m.pageSize()
	switch {
	case key.Matches(msg, m.keys.Down):
		m.selectedRow = min(m.selectedRow+1, n-1)
	case key.Matches(msg, m.keys.Up):
		m.selectedRow = max(m.selectedRow-1, 0)
	case key.Matches(msg, m.keys.Top):
		m.selectedRow = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selectedRow = n - 1
	case key.Matches(msg, m.keys.PageDown):
		m.selectedRow = min(m.selectedRow+page, n-1)
	case key.Matches(msg, m.keys.PageUp):
		m.selectedRow = max(m.selectedRow-page, 0)
	}
}

// stepDetail shows the neighbouring warp of the current view in the open
// detail. The synchronizer replaces the history entry rather than pushing.
func (m *Model) stepDetail(delta int) {
	idx := m.detailIndex()
	if idx < 0 {
		return
	}
	next := idx + delta
	if next < 0 || next >= len(m.snapshot.View) {
		return
	}
	m.selectedRow = next
	m.sync.OpenDetail(m.snapshot.View[next].Name)
}

func (m Model) detailOpen() bool {
	_, open := m.sync.Selected()
	return open
}

// detailIndex locates the open warp in the current view, preferring the
// selected row when names repeat.
func (m Model) detailIndex() int {
	name, open := m.sync.Selected()
	if !open {
		return -1
	}
	view := m.snapshot.View
	if m.selectedRow >= 0 && m.selectedRow < len(view) && view[m.selectedRow].Name == name {
		return m.selectedRow
	}
	return indexOfName(view, name)
}

// detailRecord returns the warp shown in the detail view. Warps hidden by
// the current search are still found in the catalog.
func (m Model) detailRecord() (warps.Record, bool) {
	if idx := m.detailIndex(); idx >= 0 {
		return m.snapshot.View[idx], true
	}
	name, open := m.sync.Selected()
	if !open {
		return warps.Record{}, false
	}
	return m.store.Find(name)
}

func (m Model) selectedRecord() (warps.Record, bool) {
	if m.selectedRow < 0 || m.selectedRow >= len(m.snapshot.View) {
		return warps.Record{}, false
	}
	return m.snapshot.View[m.selectedRow], true
}

func (m Model) pageSize() int {
	rows := m.contentHeight() - 2
	if m.snapshot.DisplayMode == prefs.Details {
		rows /= detailsLines
	}
	return max(rows, 1)
}

func indexOfName(records []warps.Record, name string) int {
	return slices.IndexFunc(records, func(r warps.Record) bool { return r.Name == name })
}

func recordNames(records []warps.Record) []string {
	names := make([]string, len(records))
	for i, r := range records {
		names[i] = r.Name
	}
	return names
}

// Messages

type catalogLoadedMsg struct {
	records []warps.Record
	err     error
}

// Commands

func loadCatalogCmd(ctx context.Context, source warps.Source) tea.Cmd {
	return func() tea.Msg {
		if source == nil {
			return catalogLoadedMsg{err: errors.New("no catalog source configured")}
		}
		loadCtx, cancel := context.WithTimeout(ctx, CatalogLoadTimeout)
		defer cancel()
		records, err := source.Load(loadCtx)
		return catalogLoadedMsg{records: records, err: err}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
