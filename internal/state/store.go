package state

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/five82/pwarps/internal/catalog"
	"github.com/five82/pwarps/internal/prefs"
	"github.com/five82/pwarps/internal/warps"
)

// PreferenceWriter receives display mode changes for persistence.
type PreferenceWriter interface {
	SetDisplayMode(mode prefs.DisplayMode)
}

// ViewState holds the user-selected inputs of the catalog view.
type ViewState struct {
	SearchTerm  string
	SortBy      catalog.SortKey
	SortOrder   catalog.SortOrder
	DisplayMode prefs.DisplayMode
}

// DefaultViewState is name ascending, no search, immersive.
func DefaultViewState() ViewState {
	return ViewState{
		SortBy:      catalog.SortName,
		SortOrder:   catalog.Asc,
		DisplayMode: prefs.Immersive,
	}
}

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	ViewState
	// Records is the catalog as loaded; it is shared and must not be modified.
	Records   []warps.Record
	View      []warps.Record
	Stats     catalog.Stats
	Loading   bool
	Loaded    bool
	LoadedAt  time.Time
	LastError error
}

// Store owns the view state and the derived view. Every change to a view
// input (records, search, sort key, sort order) recomputes the view before
// returning, so readers never observe a stale combination.
type Store struct {
	mu    sync.RWMutex
	prefs PreferenceWriter
	rng   catalog.Rand

	state    ViewState
	records  []warps.Record
	view     []warps.Record
	stats    catalog.Stats
	loading  bool
	loaded   bool
	loadedAt time.Time
	lastErr  error
}

// NewStore starts in the loading state with initial as the view inputs.
// Zero fields of initial take their defaults. rng may be nil.
func NewStore(initial ViewState, writer PreferenceWriter, rng catalog.Rand) *Store {
	def := DefaultViewState()
	if initial.SortBy == "" {
		initial.SortBy = def.SortBy
	}
	if initial.SortOrder == "" {
		initial.SortOrder = def.SortOrder
	}
	if !initial.DisplayMode.Valid() {
		initial.DisplayMode = def.DisplayMode
	}
	return &Store{
		prefs:   writer,
		rng:     rng,
		state:   initial,
		loading: true,
	}
}

// SetRecords installs a loaded catalog and leaves the loading state.
func (s *Store) SetRecords(records []warps.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = records
	s.stats = catalog.Summarize(records)
	s.loading = false
	s.loaded = true
	s.loadedAt = time.Now()
	s.lastErr = nil
	s.recompute()
}

// SetLoadError records a failed load. The catalog stays empty.
func (s *Store) SetLoadError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = nil
	s.stats = catalog.Stats{}
	s.loading = false
	s.loaded = false
	s.loadedAt = time.Now()
	s.lastErr = err
	s.recompute()
}

// SetSearchTerm updates the filter.
func (s *Store) SetSearchTerm(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SearchTerm = term
	s.recompute()
}

// SetSortBy changes the sort key.
func (s *Store) SetSortBy(key catalog.SortKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SortBy = key
	s.recompute()
}

// SetSortOrder changes the sort direction.
func (s *Store) SetSortOrder(order catalog.SortOrder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SortOrder = order
	s.recompute()
}

// CanToggleSortOrder is false in shuffle mode, where order has no meaning.
func (s *Store) CanToggleSortOrder() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.SortBy != catalog.SortShuffle
}

// ToggleSortOrder flips asc and desc. It does nothing in shuffle mode and
// reports whether the order changed.
func (s *Store) ToggleSortOrder() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.SortBy == catalog.SortShuffle {
		return false
	}
	s.state.SortOrder = s.state.SortOrder.Toggle()
	s.recompute()
	return true
}

// SetDisplayMode changes the layout and hands it to the preference writer.
// The layout is not a view input, so the view keeps its order.
func (s *Store) SetDisplayMode(mode prefs.DisplayMode) {
	s.mu.Lock()
	s.state.DisplayMode = mode
	writer := s.prefs
	s.mu.Unlock()

	if writer != nil {
		writer.SetDisplayMode(mode)
	}
}

// Reshuffle recomputes the view with the current inputs, drawing a new
// permutation in shuffle mode.
func (s *Store) Reshuffle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recompute()
}

// ViewState returns the current inputs.
func (s *Store) ViewState() ViewState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Find returns the first catalog record named name.
func (s *Store) Find(name string) (warps.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.records {
		if r.Name == name {
			return r, true
		}
	}
	return warps.Record{}, false
}

// Snapshot returns a copy of the current state. The view is cloned; the
// catalog records are shared.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		ViewState: s.state,
		Records:   s.records,
		View:      slices.Clone(s.view),
		Stats:     s.stats,
		Loading:   s.loading,
		Loaded:    s.loaded,
		LoadedAt:  s.loadedAt,
	}
	if s.lastErr != nil {
		snap.LastError = fmt.Errorf("%w", s.lastErr)
	}
	return snap
}

// recompute must run with mu held. Nothing is derived while loading.
func (s *Store) recompute() {
	if s.loading {
		s.view = nil
		return
	}
	s.view = catalog.ComputeView(s.records, s.state.SearchTerm, s.state.SortBy, s.state.SortOrder, s.rng)
}
