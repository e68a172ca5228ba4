package browser

import "fmt"

// SessionError represents a failure to create or drive the browser handle.
// It is session-fatal: callers abort the whole adapter run.
type SessionError struct {
	Message string
	Cause   error
}

func (e *SessionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("browser session error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("browser session error: %s", e.Message)
}

func (e *SessionError) Unwrap() error {
	return e.Cause
}

// NavigationError represents a navigation that did not complete before the
// page-load timeout. It is surfaced to the caller, never swallowed.
type NavigationError struct {
	URL   string
	Cause error
}

func (e *NavigationError) Error() string {
	return fmt.Sprintf("navigation error for %s: %v", e.URL, e.Cause)
}

func (e *NavigationError) Unwrap() error {
	return e.Cause
}
