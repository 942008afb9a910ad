// internal/browser/session.go
package browser

import "time"

// Session is a live browser control channel bound to one worker. It is
// created and destroyed only by the Registry.
type Session struct {
	id           string
	worker       WorkerID
	kind         Kind
	driver       Driver
	implicitWait time.Duration
	maximized    bool
	createdAt    time.Time
}

// ID returns the session's unique identifier.
func (s *Session) ID() string { return s.id }

// Worker returns the worker the session is bound to.
func (s *Session) Worker() WorkerID { return s.worker }

// Kind returns the browser kind the session was launched with.
func (s *Session) Kind() Kind { return s.kind }

// Driver returns the control channel. Callers borrow it for the duration of
// a single operation and must not retain it past Release.
func (s *Session) Driver() Driver { return s.driver }

// ImplicitWait is the element-lookup floor applied at creation.
func (s *Session) ImplicitWait() time.Duration { return s.implicitWait }

// Maximized reports whether the window was maximized at creation.
func (s *Session) Maximized() bool { return s.maximized }

// CreatedAt is when the browser came up.
func (s *Session) CreatedAt() time.Time { return s.createdAt }
