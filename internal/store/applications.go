package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julian/jobbider/internal/types"
)

// ApplicationExists reports whether any application attempt, successful or
// not, has been recorded for (jobID, platform). The orchestrator checks this
// before attempting a submission, which is what enforces
// at-most-one-application-per-job.
func (d *DB) ApplicationExists(ctx context.Context, jobID, platform string) (bool, error) {
	var one int
	err := d.pool.QueryRowContext(ctx,
		`SELECT 1 FROM applications WHERE job_id = ? AND platform = ?`,
		jobID, platform,
	).Scan(&one)
	if err == nil {
		return true, nil
	}
	if isNoRows(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check application existence: %w", err)
}

// SaveApplication appends one application outcome. History is append-only:
// records are never updated after the fact.
func (d *DB) SaveApplication(ctx context.Context, app *types.ApplicationRecord) error {
	applied := app.AppliedAt
	if applied.IsZero() {
		applied = time.Now().UTC()
	}
	method := app.Method
	if method == "" {
		method = "automated"
	}

	_, err := d.pool.ExecContext(ctx,
		`INSERT INTO applications (job_id, platform, success, error_message,
		                           match_score, application_method, applied_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		app.JobID, app.Platform, app.Success, nullIfEmpty(app.ErrorDetail),
		app.MatchScore, method, applied.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save application %s/%s: %w", app.Platform, app.JobID, err)
	}
	return nil
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
