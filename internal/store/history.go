package store

import (
	"context"
	"fmt"
	"time"

	"github.com/julian/jobbider/internal/types"
)

// SaveSearchHistory records the outcome of one adapter run.
func (d *DB) SaveSearchHistory(ctx context.Context, h *types.SearchHistory) error {
	searched := h.SearchedAt
	if searched.IsZero() {
		searched = time.Now().UTC()
	}

	_, err := d.pool.ExecContext(ctx,
		`INSERT INTO search_history (platform, keywords, jobs_found, jobs_matched,
		                             applications_submitted, applications_failed,
		                             execution_seconds, searched_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		h.Platform, h.Keywords, h.JobsFound, h.JobsMatched,
		h.Submitted, h.Failed, h.ExecutionSeconds,
		searched.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save search history: %w", err)
	}
	return nil
}
