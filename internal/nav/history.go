package nav

import "sync"

// Port is the slice of a navigable history the Synchronizer depends on.
type Port interface {
	PushPath(path string)
	ReplacePath(path string)
	CurrentPath() string
	// Subscribe registers fn for back/forward navigations performed by the
	// platform. The returned func removes the registration.
	Subscribe(fn func()) (unsubscribe func())
}

// Ensure History implements Port at compile time.
var _ Port = (*History)(nil)

// History is an in-process navigation stack with a cursor, the terminal
// counterpart of a browser session history.
type History struct {
	mu      sync.Mutex
	entries []string
	index   int
	nextID  int
	subs    []subscriber
}

type subscriber struct {
	id int
	fn func()
}

// NewHistory starts a history whose only entry is start (RootPath when blank).
func NewHistory(start string) *History {
	return &History{entries: []string{NormalizePath(start)}}
}

// PushPath adds an entry after the cursor, discarding any forward entries.
func (h *History) PushPath(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries[:h.index+1], path)
	h.index = len(h.entries) - 1
}

// ReplacePath rewrites the entry under the cursor.
func (h *History) ReplacePath(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries[h.index] = path
}

// CurrentPath returns the entry under the cursor.
func (h *History) CurrentPath() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[h.index]
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Index returns the cursor position.
func (h *History) Index() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.index
}

// Subscribe implements Port.
func (h *History) Subscribe(fn func()) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	id := h.nextID
	h.subs = append(h.subs, subscriber{id: id, fn: fn})
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		for i, s := range h.subs {
			if s.id == id {
				h.subs = append(h.subs[:i], h.subs[i+1:]...)
				return
			}
		}
	}
}

// Back moves the cursor one entry back and notifies subscribers.
// It reports false, without notifying, at the first entry.
func (h *History) Back() bool {
	return h.move(-1)
}

// Forward moves the cursor one entry forward and notifies subscribers.
// It reports false, without notifying, at the last entry.
func (h *History) Forward() bool {
	return h.move(1)
}

func (h *History) move(delta int) bool {
	h.mu.Lock()
	next := h.index + delta
	if next < 0 || next >= len(h.entries) {
		h.mu.Unlock()
		return false
	}
	h.index = next
	subs := make([]subscriber, len(h.subs))
	copy(subs, h.subs)
	h.mu.Unlock()

	for _, s := range subs {
		s.fn()
	}
	return true
}
