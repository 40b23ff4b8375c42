// Package prefs persists pwarps user preferences.
// Values are kept per catalog origin in ~/.config/pwarps/prefs.toml, or in a
// SQLite database when configured.
package prefs

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// KV is a durable string store already scoped to one origin.
type KV interface {
	// Get returns the stored value and whether it exists.
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendTOML   = "toml"
	BackendSQLite = "sqlite"
)

const (
	defaultPrefsPath  = "~/.config/pwarps/prefs.toml"
	defaultSQLitePath = "~/.config/pwarps/prefs.db"

	keyDisplayMode = "displayMode"
	keyTheme       = "theme"
)

// DefaultPath returns the default preferences location for a backend.
func DefaultPath(backend string) string {
	if backend == BackendSQLite {
		return defaultSQLitePath
	}
	return defaultPrefsPath
}

// Open returns the KV for backend at path, scoped to origin. An empty path
// uses the backend's default location.
func Open(backend, path, origin string) (KV, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath(backend)
	}
	resolved, err := expandPath(path)
	if err != nil {
		return nil, fmt.Errorf("resolve prefs path: %w", err)
	}
	switch backend {
	case "", BackendTOML:
		return NewFileStore(resolved, origin), nil
	case BackendSQLite:
		store, err := OpenSQLite(resolved, origin)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown prefs backend %q", backend)
	}
}

// DisplayMode selects between the two catalog layouts.
type DisplayMode string

const (
	Immersive DisplayMode = "immersive"
	Details   DisplayMode = "details"
)

// Valid reports whether m is one of the recognised modes.
func (m DisplayMode) Valid() bool {
	return m == Immersive || m == Details
}

// Toggle returns the other mode.
func (m DisplayMode) Toggle() DisplayMode {
	if m == Details {
		return Immersive
	}
	return Details
}

// Store reads and writes the individual preferences on top of a KV.
// Writes are fire-and-forget: failures are logged and never returned.
type Store struct {
	kv KV
}

// NewStore wraps kv. A nil kv yields a store that remembers nothing.
func NewStore(kv KV) *Store {
	return &Store{kv: kv}
}

// DisplayMode returns the persisted mode, or false when it is missing or not
// a recognised value.
func (s *Store) DisplayMode() (DisplayMode, bool) {
	value, ok := s.get(keyDisplayMode)
	if !ok {
		return "", false
	}
	mode := DisplayMode(value)
	if !mode.Valid() {
		return "", false
	}
	return mode, true
}

// SetDisplayMode persists mode.
func (s *Store) SetDisplayMode(mode DisplayMode) {
	s.set(keyDisplayMode, string(mode))
}

// Theme returns the persisted theme name.
func (s *Store) Theme() (string, bool) {
	value, ok := s.get(keyTheme)
	if !ok || strings.TrimSpace(value) == "" {
		return "", false
	}
	return value, true
}

// SetTheme persists the theme name.
func (s *Store) SetTheme(name string) {
	s.set(keyTheme, name)
}

func (s *Store) get(key string) (string, bool) {
	if s == nil || s.kv == nil {
		return "", false
	}
	value, ok, err := s.kv.Get(key)
	if err != nil {
		slog.Warn("preference read failed", "key", key, "err", err)
		return "", false
	}
	return value, ok
}

func (s *Store) set(key, value string) {
	if s == nil || s.kv == nil {
		return
	}
	if err := s.kv.Set(key, value); err != nil {
		slog.Warn("preference write failed", "key", key, "err", err)
	}
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
