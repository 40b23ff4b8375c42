package prefs

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
)

// FileStore keeps preferences in a TOML file with one table per origin.
//
//	["https://warps.example"]
//	displayMode = "details"
//	theme = "Slate"
type FileStore struct {
	mu     sync.Mutex
	path   string
	origin string
}

// NewFileStore returns a store for origin backed by the file at path.
// The file is created on first write.
func NewFileStore(path, origin string) *FileStore {
	return &FileStore{path: path, origin: origin}
}

// Get implements KV.
func (f *FileStore) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.load()
	if err != nil {
		return "", false, err
	}
	value, ok := doc[f.origin][key]
	return value, ok, nil
}

// Set implements KV. An unreadable existing file is replaced.
func (f *FileStore) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.load()
	if err != nil {
		slog.Warn("replacing unreadable prefs file", "path", f.path, "err", err)
		doc = map[string]map[string]string{}
	}
	if doc[f.origin] == nil {
		doc[f.origin] = map[string]string{}
	}
	doc[f.origin][key] = value
	return f.save(doc)
}

// Close implements KV.
func (f *FileStore) Close() error { return nil }

func (f *FileStore) load() (map[string]map[string]string, error) {
	doc := map[string]map[string]string{}

	file, err := os.Open(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return doc, nil
		}
		return nil, fmt.Errorf("open prefs: %w", err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read prefs: %w", err)
	}
	if err := toml.Unmarshal(bytes, &doc); err != nil {
		return nil, fmt.Errorf("parse prefs: %w", err)
	}
	return doc, nil
}

func (f *FileStore) save(doc map[string]map[string]string) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	bytes, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(f.path, bytes, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}
