// Package adapter defines the uniform contract every platform adapter
// implements, plus the collaborator interfaces and flow-outcome tags shared
// across adapters.
package adapter

import (
	"context"
	"time"

	"github.com/julian/jobbider/internal/browser"
	"github.com/julian/jobbider/internal/types"
)

// Adapter drives one external job platform end to end.
type Adapter interface {
	// Platform returns the platform identifier, e.g. "dice".
	Platform() string

	// Run executes the full discovery/application pipeline. With searchOnly
	// set, jobs are discovered and persisted but the submission flow is never
	// entered. Run fails only on unrecoverable session-level errors; per-job
	// failures are recorded, not propagated.
	Run(ctx context.Context, searchOnly bool) (types.RunResult, error)
}

// Browser is the automation capability an adapter drives. One Session per
// run; the adapter never shares or re-uses it. Satisfied by *browser.Session.
type Browser interface {
	Navigate(url string) error
	CurrentURL() (string, error)
	PageHTML() (string, error)
	WaitFor(loc browser.Locator, timeout time.Duration, silent bool) bool
	Resolve(chain browser.Chain, perCandidate time.Duration, silent bool) (browser.Locator, bool)
	ClickWhenReady(loc browser.Locator, timeout time.Duration) bool
	Type(loc browser.Locator, text string) error
	PressEnter(loc browser.Locator) error
	Upload(loc browser.Locator, absPath string) error
	WaitForURL(pred func(string) bool, timeout time.Duration) bool
	Snapshot(name string)
	CloseSecondaryPages()
	Close() error
}

// OpenBrowser creates the session for one run. The run id names the run's
// screenshot files so logs and screenshots correlate. Injected so tests can
// substitute a fake capability.
type OpenBrowser func(ctx context.Context, runID string) (Browser, error)

// Store is the persistence gateway adapters record outcomes against.
// Satisfied by *store.DB.
type Store interface {
	JobExists(ctx context.Context, jobID, platform string) (bool, error)
	ApplicationExists(ctx context.Context, jobID, platform string) (bool, error)
	SaveJob(ctx context.Context, job *types.JobRecord) error
	SaveApplication(ctx context.Context, app *types.ApplicationRecord) error
	SaveSearchHistory(ctx context.Context, h *types.SearchHistory) error
}

// PageOutcome tags the result of extracting one result page.
type PageOutcome int

const (
	// PageOK means the page yielded result cards and pagination continues.
	PageOK PageOutcome = iota
	// PageEmpty means the page rendered but held no result cards.
	PageEmpty
	// PageRedirected means the platform redirected away from the requested
	// page number, i.e. there are no further pages.
	PageRedirected
)

func (o PageOutcome) String() string {
	switch o {
	case PageOK:
		return "ok"
	case PageEmpty:
		return "empty"
	case PageRedirected:
		return "redirected"
	default:
		return "unknown"
	}
}

// ApplyStatus tags the outcome of one submission flow.
type ApplyStatus int

const (
	// Applied means the submit control was clicked.
	Applied ApplyStatus = iota
	// Abandoned means a required control was missing mid-flow; the job is
	// recorded as a failed application and the outer loop continues.
	Abandoned
	// AlreadyApplied means the prior-upload probe judged the listing as one
	// we already applied to; a skip, not a failure to investigate.
	AlreadyApplied
)

// ApplyResult is the tagged outcome of a submission flow. Callers
// pattern-match on Status instead of branching on error types.
type ApplyResult struct {
	Status ApplyStatus
	Reason string
}
