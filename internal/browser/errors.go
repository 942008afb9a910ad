// internal/browser/errors.go
package browser

import "errors"

// Failure taxonomy shared by the registry, the WebDriver adapter and the
// action facade. Wrapped errors keep the underlying cause; test with errors.Is.
var (
	// ErrSessionInitFailed means the browser could not be launched or the
	// control channel could not be opened.
	ErrSessionInitFailed = errors.New("session init failed")
	// ErrNoSession means a facade operation ran on a worker with no live session.
	ErrNoSession = errors.New("no session bound to worker")
	// ErrNotFound means a locator resolved to nothing where an element is required.
	ErrNotFound = errors.New("element not found")
	// ErrWaitTimeout means a wait predicate did not hold within its budget.
	ErrWaitTimeout = errors.New("wait timed out")
	// ErrAlertMissing means an alert was expected but not present.
	ErrAlertMissing = errors.New("alert missing")
	// ErrUnhandledAlert means an alert was open when none was expected.
	ErrUnhandledAlert = errors.New("unhandled alert")
	// ErrInteractionFailed means the browser rejected a click, select or key input.
	ErrInteractionFailed = errors.New("interaction failed")
	// ErrScriptFailed means a scripted evaluation threw.
	ErrScriptFailed = errors.New("script failed")
	// ErrStaleElement means an element handle outlived its node.
	ErrStaleElement = errors.New("stale element reference")
)
