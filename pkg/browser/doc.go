// Package browser wraps the Playwright automation driver behind the narrow
// surface notebridge actually uses: launch a browser, restore persisted
// storage state into a context, navigate, query and drive elements, and
// capture state back out.
//
// Two pieces matter to callers:
//
//  1. Manager/Runtime: one driver process and one browser per invocation.
//     The Runtime is created either fresh (interactive authentication) or
//     restored from a persisted storage-state file (automated replay), and
//     is always torn down through Close.
//
//  2. Locate: ordered selector-strategy resolution for logical UI targets.
//     Each Target carries the strategies that may find its control in the
//     unversioned target UI; the first match wins and a miss is a typed
//     NotFoundError naming the control.
//
// The Page and Element interfaces exist so the workflow layer never touches
// the driver directly; tests substitute recording stubs for both.
package browser
