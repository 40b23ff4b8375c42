// Package app is the composition root for pwarps.
//
// # Overview
//
// Run wires configuration, logging, the catalog client, preferences, the
// view-state store and navigation history together, then hands control to
// the TUI until the user quits or the context is cancelled.
//
// List is the non-interactive counterpart used by `pwarps list`: it loads the
// catalog once, derives the same view the TUI would show for the given
// search and sort, and writes it as a table, plain names, JSON or YAML.
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()         Read ~/.config/pwarps/config.toml
//	       ├─────> logging.Configure()   slog to the log file
//	       ├─────> warps.NewClient()     HTTP client for /data.json
//	       ├─────> prefs.Open()          Per-origin preference store
//	       ├─────> state.NewStore()      View inputs + derived view
//	       ├─────> nav.NewHistory()      Start path from --path / open
//	       └─────> ui.Run()              TUI (blocks; loads the catalog once)
//
// # Error Handling
//
// Configuration and client construction errors are returned from Run.
// An unusable preference store is logged and replaced by one that
// remembers nothing. Catalog load failures are shown inside the TUI.
package app
