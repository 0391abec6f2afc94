// Package notebook implements the UI-driven workflows against the target
// notebook application: resolving a notebook by title (or creating it),
// attaching website and file sources, and orchestrating a full replay run
// on top of a restored session.
//
// The package is a thin choreography layer, not an API client. Every
// operation drives the application's own UI through ordered selector
// strategies (see the browser package) and best-effort settle delays; there
// is no confirmation that the server finished ingesting a source, only that
// the configured amount of wall-clock time elapsed.
//
// Client is the entry point for automated runs. It enforces the
// precondition (persisted session state must exist), restores that state
// into a fresh browser context, performs exactly one logical operation, and
// persists the possibly-rotated state and closes the browser on every exit
// path — success or failure alike.
package notebook
