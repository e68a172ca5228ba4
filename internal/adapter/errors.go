package adapter

import "fmt"

// AuthError represents a failed login flow. It aborts the adapter run but
// does not crash the process; the caller records the run as failed.
type AuthError struct {
	Platform string
	Step     string
	Cause    error
}

func (e *AuthError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s login failed at %s: %v", e.Platform, e.Step, e.Cause)
	}
	return fmt.Sprintf("%s login failed at %s", e.Platform, e.Step)
}

func (e *AuthError) Unwrap() error {
	return e.Cause
}
