// Package logtail reads the tail of the pwarps log file for `pwarps logs`.
//
// The log is written by the logging package with slog's text handler, one
// record per line:
//
//	time=2026-01-02T15:04:05.000Z level=WARN msg="catalog load failed" url=... err=...
//
// Read keeps a fixed-size ring of the most recent matching lines so memory
// stays bounded regardless of file size. Filtering uses the level= attribute;
// slog.Level.UnmarshalText accepts the same names the handler writes,
// including offsets such as INFO+2.
package logtail
