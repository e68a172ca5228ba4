// Package types defines the shared domain records passed between the
// adapters, the matcher, and the persistence gateway.
package types

import "time"

// JobRecord is one normalized job listing discovered on a platform.
// (Platform, JobID) is the natural key; a record with an empty JobID
// cannot be deduplicated and must not be persisted.
type JobRecord struct {
	Platform     string
	JobID        string
	Title        string
	Company      string
	Location     string
	SalaryText   string
	SalaryMin    *float64
	SalaryMax    *float64
	Description  string
	URL          string
	DiscoveredAt time.Time
}

// Persistable reports whether the record carries the platform-native job id
// required for deduplication.
func (j *JobRecord) Persistable() bool {
	return j.JobID != ""
}

// ApplicationRecord is the append-only outcome of one submission attempt.
// Records are written exactly once per attempt and never updated.
type ApplicationRecord struct {
	JobID       string
	Platform    string
	Success     bool
	ErrorDetail string
	MatchScore  *float64
	Method      string
	AppliedAt   time.Time
}

// SearchHistory summarizes one adapter run for the search_history table.
type SearchHistory struct {
	Platform         string
	Keywords         string
	JobsFound        int
	JobsMatched      int
	Submitted        int
	Failed           int
	ExecutionSeconds float64
	SearchedAt       time.Time
}

// RunResult is what an adapter reports back to the caller. Discovered holds
// every job extracted during the run so callers can display or re-score them.
type RunResult struct {
	JobsFound             int
	ApplicationsSubmitted int
	Discovered            []JobRecord
}

// Statistics aggregates the persistent store for the stats command.
type Statistics struct {
	TotalJobs              int
	TotalApplications      int
	SuccessfulApplications int
	FailedApplications     int
}
