// Package config handles loading and parsing the pwarps configuration file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/pwarps/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # Default Values
//
//   - Site URL: http://127.0.0.1:8080 (the catalog is read from <site>/data.json)
//   - Preferences backend: toml
//   - Preferences file: ~/.config/pwarps/prefs.toml (prefs.db for sqlite)
//   - Log file: ~/.local/state/pwarps/pwarps.log
//   - Request timeout: 10 seconds
//
// # TOML Format
//
//	site_url = "https://warps.example"
//	prefs_backend = "sqlite"
//	prefs_path = "~/.config/pwarps/prefs.db"
//	log_file = "~/.local/state/pwarps/pwarps.log"
//	request_timeout_seconds = 10
//
// All fields are optional. Tilde expansion is performed on paths.
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than
// os.ErrNotExist, TOML parse errors, an unknown prefs_backend and a negative
// timeout. A missing config file is not an error.
package config
