// Package logging routes slog output to a file so it never draws over the TUI.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Configure installs a text slog handler writing to path as the default
// logger and returns a function that closes the file. When the file cannot
// be opened logs are discarded and a warning goes to stderr.
func Configure(path string, debug bool) func() error {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	w, closeFn, err := open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pwarps: logging disabled: %v\n", err)
		w, closeFn = io.Discard, func() error { return nil }
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
	return closeFn
}

func open(path string) (io.Writer, func() error, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, nil, fmt.Errorf("log path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return f, f.Close, nil
}
