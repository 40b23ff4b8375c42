// Package ui provides the terminal user interface for pwarps.
//
// # Architecture Overview
//
// The UI is a single Bubble Tea Model. It owns no catalog logic: the view
// inputs and the derived list live in state.Store, the open detail view lives
// in nav.Synchronizer, and the Model reads a state.Snapshot after every
// mutation it makes. Rendering uses Lipgloss with the theme palettes in
// theme.go.
//
// # Package Structure
//
//   - app.go: Model, Update loop, key dispatch, the catalog load command and Run
//   - header.go: Stats header, command bar and status line
//   - catalog.go: Immersive and details list layouts
//   - detail.go: Detail view for the open warp
//   - notify.go: Transient notifications and load error wording
//   - clipboard.go: Copying the /pwarp command
//   - suggest.go: "Did you mean" names for unknown deep links
//   - keys.go, help.go: Key bindings and the help overlay
//   - theme.go, style_helpers.go, layout.go, strings.go: Styling and layout helpers
//
// # Event Flow
//
// Init issues the catalog load. While it is in flight the store is in its
// loading state and the list shows a loading message. When the load
// completes the records go into the store and the synchronizer resolves the
// start path, so a session started on /warp/<name> opens that warp's detail.
//
// Keys map one-to-one onto store and synchronizer operations. Search is live:
// every edit in the search field calls SetSearchTerm. History back and
// forward move the nav.History cursor; the synchronizer hears about it
// through its subscription and closes the detail view.
//
// # Notifications
//
// Load failures, clipboard results and unknown deep links are reported on the
// status line and cleared after NotificationTTL. They never block input.
package ui
