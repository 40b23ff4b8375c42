package nav

import "log/slog"

// State is a read-only view of the synchronizer.
type State struct {
	Open         bool
	Selected     string
	CapturedPath string
}

// DeepLink describes what Resolve found in the start path.
type DeepLink struct {
	// Requested is true when the current path named a warp.
	Requested bool
	// Name is the decoded warp name from the path.
	Name string
	// Found is true when the catalog contained Name and the detail view was opened.
	Found bool
}

// Synchronizer binds the open detail view to the navigation history.
// States are Closed and Open(selected). The whole lifetime of a detail view
// consumes at most one pushed entry, however many warps are viewed in turn.
type Synchronizer struct {
	port        Port
	open        bool
	selected    string
	captured    string
	unsubscribe func()
}

// NewSynchronizer starts Closed and listens for platform back/forward events on port.
func NewSynchronizer(port Port) *Synchronizer {
	s := &Synchronizer{port: port}
	s.unsubscribe = port.Subscribe(s.ExternalBack)
	return s
}

// State returns the current state.
func (s *Synchronizer) State() State {
	return State{Open: s.open, Selected: s.selected, CapturedPath: s.captured}
}

// Selected returns the open warp name, if any.
func (s *Synchronizer) Selected() (string, bool) {
	return s.selected, s.open
}

// OpenDetail shows name. From Closed it captures the current path and pushes
// the detail path; from Open it replaces the current entry instead.
func (s *Synchronizer) OpenDetail(name string) {
	path := WarpPath(name)
	if !s.open {
		s.captured = s.port.CurrentPath()
		s.open = true
		s.selected = name
		s.port.PushPath(path)
		slog.Debug("detail opened", "warp", name, "captured", s.captured)
		return
	}
	s.selected = name
	s.port.ReplacePath(path)
	slog.Debug("detail switched", "warp", name)
}

// CloseDetail returns to Closed and rewrites the current entry to the
// captured path, or RootPath when nothing was captured. No-op when Closed.
func (s *Synchronizer) CloseDetail() {
	if !s.open {
		return
	}
	target := s.captured
	if target == "" {
		target = RootPath
	}
	s.reset()
	s.port.ReplacePath(target)
	slog.Debug("detail closed", "path", target)
}

// ExternalBack forces Closed after the platform already navigated. It never
// touches the history.
func (s *Synchronizer) ExternalBack() {
	if s.open {
		slog.Debug("detail closed by history navigation", "warp", s.selected)
	}
	s.reset()
}

// Resolve treats a warp path under the cursor as a direct entry point. When
// exists reports the warp, the current entry is adopted as Open(name) without
// a push, capturing RootPath. An unknown warp rewrites the entry to RootPath.
// Only acts while Closed.
func (s *Synchronizer) Resolve(exists func(name string) bool) DeepLink {
	if s.open {
		return DeepLink{}
	}
	name, ok := ParseWarpPath(s.port.CurrentPath())
	if !ok {
		return DeepLink{}
	}
	link := DeepLink{Requested: true, Name: name}
	if exists == nil || !exists(name) {
		s.port.ReplacePath(RootPath)
		slog.Info("deep link did not match a warp", "warp", name)
		return link
	}
	s.open = true
	s.selected = name
	s.captured = RootPath
	link.Found = true
	slog.Debug("detail opened from deep link", "warp", name)
	return link
}

// Close stops listening for history events.
func (s *Synchronizer) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

func (s *Synchronizer) reset() {
	s.open = false
	s.selected = ""
	s.captured = ""
}
