package store

import (
	"context"
	"fmt"
	"time"

	"github.com/julian/jobbider/internal/types"
)

// JobExists reports whether a job with the (platform, jobID) natural key has
// been persisted.
func (d *DB) JobExists(ctx context.Context, jobID, platform string) (bool, error) {
	var one int
	err := d.pool.QueryRowContext(ctx,
		`SELECT 1 FROM jobs WHERE job_id = ? AND platform = ?`,
		jobID, platform,
	).Scan(&one)
	if err == nil {
		return true, nil
	}
	if isNoRows(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check job existence: %w", err)
}

// SaveJob persists a discovered job. It fails if the (platform, jobID) key is
// already present or the record is missing its job id.
func (d *DB) SaveJob(ctx context.Context, job *types.JobRecord) error {
	if !job.Persistable() {
		return fmt.Errorf("job %q has no platform job id and cannot be persisted", job.Title)
	}

	discovered := job.DiscoveredAt
	if discovered.IsZero() {
		discovered = time.Now().UTC()
	}

	_, err := d.pool.ExecContext(ctx,
		`INSERT INTO jobs (platform, job_id, title, company, location, salary_text,
		                   salary_min, salary_max, description, url, discovered_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		job.Platform, job.JobID, job.Title, job.Company, job.Location, job.SalaryText,
		job.SalaryMin, job.SalaryMax, job.Description, job.URL,
		discovered.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save job %s/%s: %w", job.Platform, job.JobID, err)
	}
	return nil
}
