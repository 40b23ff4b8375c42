// Package state holds the catalog view state for pwarps.
//
// # Overview
//
// Store combines the loaded catalog with the inputs the user controls (search
// term, sort key, sort order, display mode) and keeps the derived view
// current. The UI reads everything it paints from a Snapshot.
//
// # Recompute on every mutation
//
// Each setter applies its change and then calls catalog.ComputeView before
// releasing the lock. There is no memoisation and no deferred work, so a
// Snapshot never pairs a new search term with an old sort order. In shuffle
// mode this also means every mutation draws a fresh permutation.
//
// While the initial load is in flight the store is in the loading state and
// derives nothing; setters still record their inputs so they apply once the
// catalog arrives.
//
// # Ownership
//
// The record slice passed to SetRecords is kept by reference and treated as
// read-only for the lifetime of the session. Snapshot clones the derived view
// but shares the records.
//
// # Preferences
//
// SetDisplayMode forwards the new mode to a PreferenceWriter after the lock
// is released. Writers are expected to swallow their own failures.
package state
