package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures pwarps settings.
type Config struct {
	SiteURL        string
	PrefsBackend   string
	PrefsPath      string
	LogFile        string
	RequestTimeout time.Duration
}

const (
	defaultConfigPath     = "~/.config/pwarps/config.toml"
	defaultSiteURL        = "http://127.0.0.1:8080"
	defaultPrefsBackend   = "toml"
	defaultPrefsPath      = "~/.config/pwarps/prefs.toml"
	defaultSQLitePath     = "~/.config/pwarps/prefs.db"
	defaultLogFile        = "~/.local/state/pwarps/pwarps.log"
	defaultRequestTimeout = 10 * time.Second
)

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return finish(Config{})
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		SiteURL        string `toml:"site_url"`
		PrefsBackend   string `toml:"prefs_backend"`
		PrefsPath      string `toml:"prefs_path"`
		LogFile        string `toml:"log_file"`
		RequestTimeout int    `toml:"request_timeout_seconds"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg := Config{
		SiteURL:      strings.TrimSpace(raw.SiteURL),
		PrefsBackend: strings.ToLower(strings.TrimSpace(raw.PrefsBackend)),
		PrefsPath:    strings.TrimSpace(raw.PrefsPath),
		LogFile:      strings.TrimSpace(raw.LogFile),
	}
	if raw.RequestTimeout < 0 {
		return Config{}, fmt.Errorf("request_timeout_seconds must not be negative")
	}
	cfg.RequestTimeout = time.Duration(raw.RequestTimeout) * time.Second
	return finish(cfg)
}

func finish(cfg Config) (Config, error) {
	if cfg.SiteURL == "" {
		cfg.SiteURL = defaultSiteURL
	}
	if cfg.PrefsBackend == "" {
		cfg.PrefsBackend = defaultPrefsBackend
	}
	switch cfg.PrefsBackend {
	case "toml", "sqlite":
	default:
		return Config{}, fmt.Errorf("unknown prefs_backend %q (want toml or sqlite)", cfg.PrefsBackend)
	}
	if cfg.PrefsPath == "" {
		cfg.PrefsPath = defaultPrefsPath
		if cfg.PrefsBackend == "sqlite" {
			cfg.PrefsPath = defaultSQLitePath
		}
	}
	cfg.PrefsPath = mustExpand(cfg.PrefsPath)
	if cfg.LogFile == "" {
		cfg.LogFile = defaultLogFile
	}
	cfg.LogFile = mustExpand(cfg.LogFile)
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}
	return cfg, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
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
