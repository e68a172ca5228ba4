package store

import (
	"context"
	"fmt"

	"github.com/julian/jobbider/internal/types"
)

// Statistics aggregates totals for the stats command.
func (d *DB) Statistics(ctx context.Context) (types.Statistics, error) {
	var stats types.Statistics

	if err := d.pool.QueryRowContext(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&stats.TotalJobs); err != nil {
		return stats, fmt.Errorf("failed to count jobs: %w", err)
	}
	if err := d.pool.QueryRowContext(ctx, `SELECT COUNT(*) FROM applications`).Scan(&stats.TotalApplications); err != nil {
		return stats, fmt.Errorf("failed to count applications: %w", err)
	}
	if err := d.pool.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM applications WHERE success = 1`,
	).Scan(&stats.SuccessfulApplications); err != nil {
		return stats, fmt.Errorf("failed to count successful applications: %w", err)
	}

	stats.FailedApplications = stats.TotalApplications - stats.SuccessfulApplications
	return stats, nil
}
