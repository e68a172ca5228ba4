// Package dice implements the Dice.com adapter: two-step login, paginated
// result extraction, match scoring, and the quick-apply submission flow.
package dice

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/julian/jobbider/internal/adapter"
	"github.com/julian/jobbider/internal/config"
	"github.com/julian/jobbider/internal/matching"
	"github.com/julian/jobbider/internal/types"
)

const platformName = "dice"

// Config carries everything one Dice run needs besides the injected
// collaborators.
type Config struct {
	SearchQuery               string
	MaxPages                  int
	AssumeAppliedWhenNoUpload bool
	ResumePath                string
	Credentials               config.Credentials
	Criteria                  types.SearchCriteria
	Verbose                   bool
}

// Adapter drives Dice.com. It holds no browser session between runs; each Run
// opens a fresh one through the injected factory and closes it on return.
type Adapter struct {
	open  adapter.OpenBrowser
	store adapter.Store
	cfg   Config

	runID         string
	authenticated bool
}

var _ adapter.Adapter = (*Adapter)(nil)

// New builds a Dice adapter around a browser factory and a persistence
// gateway.
func New(open adapter.OpenBrowser, store adapter.Store, cfg Config) *Adapter {
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = config.DefaultMaxPages
	}
	return &Adapter{open: open, store: store, cfg: cfg}
}

// Platform returns the platform identifier.
func (a *Adapter) Platform() string {
	return platformName
}

// jobOutcome tags what happened to one extracted job inside the run loop.
type jobOutcome int

const (
	jobSkipped jobOutcome = iota
	jobDiscovered
	jobBelowThreshold
	jobApplied
	jobAlreadyApplied
	jobFailed
)

// Run executes the full pipeline. Session-level failures (browser launch,
// login) abort the run; everything per-job is recorded and the loop moves on.
func (a *Adapter) Run(ctx context.Context, searchOnly bool) (types.RunResult, error) {
	var result types.RunResult
	start := time.Now()
	a.authenticated = false
	a.runID = uuid.NewString()[:8]
	a.logf("starting run %s (searchOnly=%v, maxPages=%d)", a.runID, searchOnly, a.cfg.MaxPages)

	b, err := a.open(ctx, a.runID)
	if err != nil {
		return result, fmt.Errorf("failed to open browser session: %w", err)
	}
	defer func() {
		if cerr := b.Close(); cerr != nil {
			a.logf("closing browser session: %v", cerr)
		}
	}()

	if err := a.login(b); err != nil {
		return result, err
	}

	if !searchOnly {
		if _, err := os.Stat(a.cfg.ResumePath); err != nil {
			a.logf("resume file %q is not readable; submissions will be abandoned", a.cfg.ResumePath)
		}
	}

	matched, failed := 0, 0
	for page := 1; page <= a.cfg.MaxPages; page++ {
		if err := ctx.Err(); err != nil {
			a.logf("run cancelled on page %d", page)
			break
		}

		jobs, outcome, err := a.searchPage(b, page)
		if err != nil {
			a.logf("page %d failed: %v", page, err)
			break
		}
		if outcome == adapter.PageRedirected {
			a.logf("redirected away from page %d, no further pages", page)
			break
		}
		if outcome == adapter.PageEmpty {
			a.logf("no job cards on page %d, stopping", page)
			break
		}

		result.JobsFound += len(jobs)
		result.Discovered = append(result.Discovered, jobs...)
		for i := range jobs {
			switch a.processJob(ctx, b, &jobs[i], searchOnly) {
			case jobApplied:
				matched++
				result.ApplicationsSubmitted++
			case jobFailed:
				matched++
				failed++
			case jobAlreadyApplied:
				matched++
			}
		}
	}

	history := &types.SearchHistory{
		Platform:         platformName,
		Keywords:         a.cfg.SearchQuery,
		JobsFound:        result.JobsFound,
		JobsMatched:      matched,
		Submitted:        result.ApplicationsSubmitted,
		Failed:           failed,
		ExecutionSeconds: time.Since(start).Seconds(),
	}
	if err := a.store.SaveSearchHistory(ctx, history); err != nil {
		a.logf("saving search history: %v", err)
	}

	a.logf("run %s complete: %d jobs found, %d applications submitted, %d failed",
		a.runID, result.JobsFound, result.ApplicationsSubmitted, failed)
	return result, nil
}

// processJob takes one extracted job through dedup, persistence, scoring and
// submission. Exactly one ApplicationRecord is written when the submission
// flow is entered, whatever its outcome.
func (a *Adapter) processJob(ctx context.Context, b adapter.Browser, job *types.JobRecord, searchOnly bool) jobOutcome {
	if !job.Persistable() {
		a.debugf("job %q carries no platform id, skipping", job.Title)
		return jobSkipped
	}

	applied, err := a.store.ApplicationExists(ctx, job.JobID, platformName)
	if err != nil {
		a.logf("checking application history for %s: %v", job.JobID, err)
		return jobSkipped
	}
	if applied {
		a.debugf("already attempted %s, skipping", job.JobID)
		return jobSkipped
	}

	known, err := a.store.JobExists(ctx, job.JobID, platformName)
	if err != nil {
		a.logf("checking job history for %s: %v", job.JobID, err)
		return jobSkipped
	}
	if !known {
		if err := a.store.SaveJob(ctx, job); err != nil {
			a.logf("saving job %s: %v", job.JobID, err)
		} else {
			a.debugf("saved new job %s: %s at %s", job.JobID, job.Title, job.Company)
		}
	}

	if searchOnly {
		return jobDiscovered
	}

	score := matching.Score(job, &a.cfg.Criteria)
	if !score.Passed {
		a.debugf("job %s scored %.1f, below threshold", job.JobID, score.Value)
		return jobBelowThreshold
	}
	a.logf("job %s (%s) scored %.1f, applying", job.JobID, job.Title, score.Value)

	res := a.apply(b, job)
	record := &types.ApplicationRecord{
		JobID:      job.JobID,
		Platform:   platformName,
		MatchScore: &score.Value,
		Method:     "automated",
	}

	var outcome jobOutcome
	switch res.Status {
	case adapter.Applied:
		record.Success = true
		outcome = jobApplied
		a.logf("applied to %s: %s at %s", job.JobID, job.Title, job.Company)
	case adapter.AlreadyApplied:
		record.ErrorDetail = res.Reason
		outcome = jobAlreadyApplied
		a.logf("listing %s looks already applied to, skipping: %s", job.JobID, res.Reason)
	default:
		record.ErrorDetail = res.Reason
		outcome = jobFailed
		a.logf("abandoned application to %s: %s", job.JobID, res.Reason)
	}

	if err := a.store.SaveApplication(ctx, record); err != nil {
		a.logf("recording application outcome for %s: %v", job.JobID, err)
	}
	return outcome
}

func (a *Adapter) logf(format string, args ...any) {
	log.Printf("[dice] "+format, args...)
}

func (a *Adapter) debugf(format string, args ...any) {
	if a.cfg.Verbose {
		log.Printf("[dice] "+format, args...)
	}
}
