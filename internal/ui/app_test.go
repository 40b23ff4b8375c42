package ui

import (
	"context"
	"errors"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/five82/pwarps/internal/catalog"
	"github.com/five82/pwarps/internal/nav"
	"github.com/five82/pwarps/internal/prefs"
	"github.com/five82/pwarps/internal/state"
	"github.com/five82/pwarps/internal/warps"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

type fakeSource struct {
	records []warps.Record
	err     error
}

func (f fakeSource) Load(context.Context) ([]warps.Record, error) {
	return f.records, f.err
}

type harness struct {
	history *nav.History
	prefs   *prefs.Store
	copied  []string
	copyErr error
}

func sampleRecords() []warps.Record {
	return []warps.Record{
		{Name: "a", Owner: "x", Visits: "10"},
		{Name: "b", Owner: "y", Visits: "5"},
		{Name: "c", Owner: "x", Visits: "bad"},
	}
}

func newHarness(t *testing.T, start string, source warps.Source) (*harness, Model) {
	t.Helper()
	h := &harness{history: nav.NewHistory(start)}
	h.prefs = prefs.NewStore(prefs.NewFileStore(filepath.Join(t.TempDir(), "prefs.toml"), "http://warps.test"))
	sync := nav.NewSynchronizer(h.history)
	t.Cleanup(sync.Close)

	store := state.NewStore(state.DefaultViewState(), h.prefs, rand.New(rand.NewPCG(1, 2)))
	m := New(Options{
		Source:  source,
		Store:   store,
		History: h.history,
		Sync:    sync,
		Prefs:   h.prefs,
		Clipboard: func(text string) error {
			h.copied = append(h.copied, text)
			return h.copyErr
		},
	})
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 30})
	return h, m
}

// loaded runs the catalog load issued by Init.
func loaded(t *testing.T, m Model) Model {
	t.Helper()
	cmd := m.Init()
	if cmd == nil {
		t.Fatalf("Init returned nil command")
	}
	return update(t, m, cmd())
}

func update(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		if !ok {
			t.Fatalf("Update returned %T, want Model", next)
		}
	}
	return m
}

func updateCmd(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enterKey   = tea.KeyMsg{Type: tea.KeyEnter}
	escKey     = tea.KeyMsg{Type: tea.KeyEsc}
	backKey    = tea.KeyMsg{Type: tea.KeyBackspace}
	forwardKey = tea.KeyMsg{Type: tea.KeyRight, Alt: true}
)

func shownNames(m Model) string {
	names := make([]string, len(m.snapshot.View))
	for i, r := range m.snapshot.View {
		names[i] = r.Name
	}
	return strings.Join(names, ",")
}

func TestModel_LoadsCatalog(t *testing.T) {
	_, m := newHarness(t, nav.RootPath, fakeSource{records: sampleRecords()})
	if !m.snapshot.Loading {
		t.Fatalf("snapshot not loading before Init")
	}
	if !strings.Contains(m.View(), "Loading warps...") {
		t.Fatalf("view does not show loading state")
	}

	m = loaded(t, m)
	if got := shownNames(m); got != "a,b,c" {
		t.Fatalf("view = %q, want a,b,c", got)
	}
	if m.snapshot.Stats.TotalVisits != 15 || m.snapshot.Stats.UniqueOwners != 2 {
		t.Fatalf("stats = %+v, want 15 visits and 2 owners", m.snapshot.Stats)
	}
}

func TestModel_LiveSearch(t *testing.T) {
	_, m := newHarness(t, nav.RootPath, fakeSource{records: sampleRecords()})
	m = loaded(t, m)

	m = update(t, m, runes("/"), runes("Y"))
	if !m.searching {
		t.Fatalf("searching = false after /")
	}
	if got := shownNames(m); got != "b" {
		t.Fatalf("view after typing Y = %q, want b", got)
	}
	if !strings.Contains(m.View(), "Showing 1 of 3 warps") {
		t.Fatalf("header does not report filtered count")
	}

	m = update(t, m, enterKey)
	if m.searching || m.snapshot.SearchTerm != "Y" {
		t.Fatalf("after enter searching=%v term=%q, want false and Y", m.searching, m.snapshot.SearchTerm)
	}

	m = update(t, m, escKey)
	if got := shownNames(m); got != "a,b,c" {
		t.Fatalf("view after esc = %q, want a,b,c", got)
	}

	m = update(t, m, runes("/"), runes("zzz"))
	if !strings.Contains(m.View(), "No warps found") {
		t.Fatalf("empty result does not show the empty state")
	}
	m = update(t, m, escKey)
	if m.searching || m.snapshot.SearchTerm != "" {
		t.Fatalf("esc in the search field did not clear it")
	}
}

func TestModel_SortKeysAndOrder(t *testing.T) {
	_, m := newHarness(t, nav.RootPath, fakeSource{records: sampleRecords()})
	m = loaded(t, m)

	m = update(t, m, runes("s"), runes("s"), runes("s"))
	if m.snapshot.SortBy != catalog.SortVisits {
		t.Fatalf("SortBy = %q, want visits", m.snapshot.SortBy)
	}
	m = update(t, m, runes("o"))
	if m.snapshot.SortOrder != catalog.Desc {
		t.Fatalf("SortOrder = %q, want desc", m.snapshot.SortOrder)
	}
	if got := shownNames(m); got != "a,b,c" {
		t.Fatalf("visits desc = %q, want a,b,c", got)
	}

	m = update(t, m, runes("S"))
	if m.snapshot.SortBy != catalog.SortCreated {
		t.Fatalf("SortBy after S = %q, want created", m.snapshot.SortBy)
	}
}

func TestModel_ToggleOrderUnavailableInShuffle(t *testing.T) {
	_, m := newHarness(t, nav.RootPath, fakeSource{records: sampleRecords()})
	m = loaded(t, m)

	m = update(t, m, runes("S"))
	if m.snapshot.SortBy != catalog.SortShuffle {
		t.Fatalf("SortBy = %q, want shuffle", m.snapshot.SortBy)
	}
	m = update(t, m, runes("o"))
	if m.snapshot.SortOrder != catalog.Asc {
		t.Fatalf("SortOrder changed in shuffle mode")
	}
	if !strings.Contains(m.notice.text, "unavailable in shuffle mode") {
		t.Fatalf("notice = %q, want shuffle warning", m.notice.text)
	}

	m = update(t, m, runes("r"))
	if n := len(m.snapshot.View); n != 3 {
		t.Fatalf("reshuffled view has %d records, want 3", n)
	}
}

func TestModel_DisplayModePersists(t *testing.T) {
	h, m := newHarness(t, nav.RootPath, fakeSource{records: sampleRecords()})
	m = loaded(t, m)

	m = update(t, m, runes("m"))
	if m.snapshot.DisplayMode != prefs.Details {
		t.Fatalf("DisplayMode = %q, want details", m.snapshot.DisplayMode)
	}
	if got, ok := h.prefs.DisplayMode(); !ok || got != prefs.Details {
		t.Fatalf("persisted mode = %q, %v; want details", got, ok)
	}
	if !strings.Contains(m.View(), "/pwarp a") {
		t.Fatalf("details layout does not show the command")
	}
}

func TestModel_DetailConsumesOneHistoryEntry(t *testing.T) {
	h, m := newHarness(t, nav.RootPath, fakeSource{records: sampleRecords()})
	m = loaded(t, m)

	m = update(t, m, enterKey)
	if !m.detailOpen() || h.history.CurrentPath() != "/warp/a" {
		t.Fatalf("open: detail=%v path=%q", m.detailOpen(), h.history.CurrentPath())
	}

	m = update(t, m, runes("j"))
	if got := h.history.CurrentPath(); got != "/warp/b" {
		t.Fatalf("after j path = %q, want /warp/b", got)
	}
	if m.selectedRow != 1 {
		t.Fatalf("selectedRow = %d, want 1", m.selectedRow)
	}
	m = update(t, m, runes("j"), runes("j"))
	if got := h.history.CurrentPath(); got != "/warp/c" {
		t.Fatalf("stepping past the end moved to %q", got)
	}
	if h.history.Len() != 2 {
		t.Fatalf("history len = %d while open, want 2", h.history.Len())
	}

	m = update(t, m, escKey)
	if m.detailOpen() {
		t.Fatalf("detail still open after esc")
	}
	if got := h.history.CurrentPath(); got != nav.RootPath {
		t.Fatalf("path after close = %q, want /", got)
	}
	if h.history.Len() != 2 {
		t.Fatalf("history len = %d after close, want 2", h.history.Len())
	}
}

func TestModel_HistoryBackClosesDetail(t *testing.T) {
	h, m := newHarness(t, nav.RootPath, fakeSource{records: sampleRecords()})
	m = loaded(t, m)

	m = update(t, m, enterKey, backKey)
	if m.detailOpen() {
		t.Fatalf("detail still open after history back")
	}
	if h.history.Index() != 0 || h.history.CurrentPath() != nav.RootPath {
		t.Fatalf("history at %d %q, want 0 /", h.history.Index(), h.history.CurrentPath())
	}

	m = update(t, m, forwardKey)
	if got := h.history.CurrentPath(); got != "/warp/a" {
		t.Fatalf("forward path = %q, want /warp/a", got)
	}
	if m.detailOpen() {
		t.Fatalf("forward navigation reopened the detail")
	}
	if h.history.Len() != 2 {
		t.Fatalf("history len = %d, want 2", h.history.Len())
	}

	m = update(t, m, backKey, backKey)
	if !strings.Contains(m.notice.text, "No earlier history") {
		t.Fatalf("notice = %q, want no earlier history", m.notice.text)
	}
}

func TestModel_DeepLinkOpensDetail(t *testing.T) {
	records := append(sampleRecords(), warps.Record{Name: "My Base/2", Owner: "z", Visits: "1"})
	start := nav.WarpPath("My Base/2")
	h, m := newHarness(t, start, fakeSource{records: records})
	m = loaded(t, m)

	name, open := m.sync.Selected()
	if !open || name != "My Base/2" {
		t.Fatalf("selected = %q, %v; want My Base/2 open", name, open)
	}
	if m.selectedRow != 3 {
		t.Fatalf("selectedRow = %d, want 3", m.selectedRow)
	}
	if h.history.Len() != 1 || h.history.CurrentPath() != start {
		t.Fatalf("history = %d %q, want the start entry adopted", h.history.Len(), h.history.CurrentPath())
	}

	m = update(t, m, escKey)
	if got := h.history.CurrentPath(); got != nav.RootPath {
		t.Fatalf("close after deep link path = %q, want /", got)
	}
}

func TestModel_UnknownDeepLinkSuggests(t *testing.T) {
	h, m := newHarness(t, "/warp/bb", fakeSource{records: sampleRecords()})
	m = loaded(t, m)

	if m.detailOpen() {
		t.Fatalf("unknown deep link opened a detail")
	}
	if got := h.history.CurrentPath(); got != nav.RootPath {
		t.Fatalf("path = %q, want /", got)
	}
	if !strings.Contains(m.notice.text, `No warp named "bb"`) || !strings.Contains(m.notice.text, "did you mean b") {
		t.Fatalf("notice = %q, want suggestions", m.notice.text)
	}
}

func TestModel_LoadErrorIsReported(t *testing.T) {
	fetchErr := &warps.FetchError{Kind: warps.FetchStatus, URL: "http://warps.test/data.json", Status: 503}
	h, m := newHarness(t, "/warp/a", fakeSource{err: fetchErr})
	m = loaded(t, m)

	if m.snapshot.Loading || m.snapshot.LastError == nil {
		t.Fatalf("Loading=%v LastError=%v", m.snapshot.Loading, m.snapshot.LastError)
	}
	if len(m.snapshot.View) != 0 {
		t.Fatalf("view not empty after load error")
	}
	if !strings.Contains(m.notice.text, "server returned 503") {
		t.Fatalf("notice = %q", m.notice.text)
	}
	if got := h.history.CurrentPath(); got != nav.RootPath {
		t.Fatalf("path = %q, want / after failed load", got)
	}
	if !strings.Contains(m.View(), "Catalog unavailable") {
		t.Fatalf("header does not show the failure")
	}
}

func TestModel_CopyCommand(t *testing.T) {
	h, m := newHarness(t, nav.RootPath, fakeSource{records: sampleRecords()})
	m = loaded(t, m)

	m, cmd := updateCmd(t, m, runes("c"))
	if cmd == nil {
		t.Fatalf("copy returned nil command")
	}
	m = update(t, m, cmd())
	if len(h.copied) != 1 || h.copied[0] != "/pwarp a" {
		t.Fatalf("copied = %v, want [/pwarp a]", h.copied)
	}
	if m.notice.kind != noticeSuccess || !strings.Contains(m.notice.text, "/pwarp a") {
		t.Fatalf("notice = %+v, want success", m.notice)
	}

	h.copyErr = errors.New("no clipboard utility")
	m = update(t, m, enterKey, runes("j"))
	m, cmd = updateCmd(t, m, runes("c"))
	m = update(t, m, cmd())
	if h.copied[len(h.copied)-1] != "/pwarp b" {
		t.Fatalf("copied = %v, want /pwarp b last", h.copied)
	}
	if m.notice.kind != noticeDanger || !strings.HasPrefix(m.notice.text, "Copy failed") {
		t.Fatalf("notice = %+v, want failure", m.notice)
	}
}

func TestModel_NoticeExpires(t *testing.T) {
	_, m := newHarness(t, nav.RootPath, fakeSource{records: sampleRecords()})
	m = loaded(t, m)

	m = update(t, m, runes("S"), runes("o"))
	first := m.noticeID
	m = update(t, m, runes("o"))
	m = update(t, m, noticeExpiredMsg{id: first})
	if m.notice.text == "" {
		t.Fatalf("stale timer cleared the newer notice")
	}
	m = update(t, m, noticeExpiredMsg{id: m.noticeID})
	if m.notice.text != "" {
		t.Fatalf("notice = %q after expiry", m.notice.text)
	}
}

func TestModel_ThemeCyclesAndPersists(t *testing.T) {
	h, m := newHarness(t, nav.RootPath, fakeSource{records: sampleRecords()})
	m = update(t, m, runes("T"))
	if m.theme.Name != "Kanagawa" {
		t.Fatalf("theme = %q, want Kanagawa", m.theme.Name)
	}
	if got, ok := h.prefs.Theme(); !ok || got != "Kanagawa" {
		t.Fatalf("persisted theme = %q, %v", got, ok)
	}
}

func TestModel_HelpAndQuit(t *testing.T) {
	_, m := newHarness(t, nav.RootPath, fakeSource{records: sampleRecords()})
	m = loaded(t, m)

	m = update(t, m, runes("?"))
	if !m.showHelp || !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Fatalf("help overlay not shown")
	}
	m = update(t, m, runes("x"))
	if m.showHelp {
		t.Fatalf("help still shown after a key")
	}

	_, cmd := updateCmd(t, m, runes("q"))
	if cmd == nil {
		t.Fatalf("q returned nil command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("q did not quit")
	}
}

func TestModel_NilSourceReportsError(t *testing.T) {
	_, m := newHarness(t, nav.RootPath, nil)
	m = loaded(t, m)
	if m.snapshot.LastError == nil {
		t.Fatalf("LastError = nil, want error for missing source")
	}
}
