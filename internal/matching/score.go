// Package matching scores job records against search criteria. Scoring is a
// pure function of its inputs so results are reproducible across runs.
package matching

import (
	"sort"
	"strings"

	"github.com/julian/jobbider/internal/types"
)

// Weights for the four scoring axes. They sum to 100, but the effective
// denominator is the sum of the axes actually evaluated for a given
// criteria/job pair.
const (
	requiredSkillsWeight = 40.0
	optionalSkillsWeight = 20.0
	locationWeight       = 20.0
	salaryWeight         = 20.0
)

// PassThreshold is the minimum score for a job to be considered a match.
const PassThreshold = 60.0

// MatchScore is a 0-100 relevance rating with its pass/fail derivation.
type MatchScore struct {
	Value  float64
	Passed bool
}

// Score rates how well a job matches the criteria on a 0-100 scale.
// Axes with no configured criteria are skipped and do not count toward the
// denominator; if no axis applies the score is 0.
func Score(job *types.JobRecord, criteria *types.SearchCriteria) MatchScore {
	var earned, possible float64

	haystack := strings.ToLower(job.Title + " " + job.Description)

	if len(criteria.RequiredSkills) > 0 {
		possible += requiredSkillsWeight
		earned += coverage(haystack, criteria.RequiredSkills) * requiredSkillsWeight
	}

	if len(criteria.OptionalSkills) > 0 {
		possible += optionalSkillsWeight
		earned += coverage(haystack, criteria.OptionalSkills) * optionalSkillsWeight
	}

	if len(criteria.Locations) > 0 {
		possible += locationWeight
		if matchesAnyLocation(job.Location, criteria.Locations) {
			earned += locationWeight
		}
	}

	// Salary is all-or-nothing and only evaluated when both the configured
	// floor and the job's parsed minimum are present.
	if criteria.MinSalary > 0 && job.SalaryMin != nil {
		possible += salaryWeight
		if *job.SalaryMin >= criteria.MinSalary {
			earned += salaryWeight
		}
	}

	if possible == 0 {
		return MatchScore{Value: 0, Passed: false}
	}

	value := earned / possible * 100
	return MatchScore{Value: value, Passed: value >= PassThreshold}
}

// coverage returns the fraction of skills found as case-insensitive
// substrings in the haystack.
func coverage(haystack string, skills []string) float64 {
	matched := 0
	for _, skill := range skills {
		if skill == "" {
			continue
		}
		if strings.Contains(haystack, strings.ToLower(skill)) {
			matched++
		}
	}
	return float64(matched) / float64(len(skills))
}

func matchesAnyLocation(location string, wanted []string) bool {
	loc := strings.ToLower(location)
	if loc == "" {
		return false
	}
	for _, w := range wanted {
		if w == "" {
			continue
		}
		if strings.Contains(loc, strings.ToLower(w)) {
			return true
		}
	}
	return false
}

// ScoredJob pairs a job with the score it earned.
type ScoredJob struct {
	Job   types.JobRecord
	Score float64
}

// Filter keeps only jobs that pass the threshold and returns them sorted by
// score descending. The sort is stable: jobs with equal scores keep their
// original relative order.
func Filter(jobs []types.JobRecord, criteria *types.SearchCriteria) []ScoredJob {
	var kept []ScoredJob
	for _, job := range jobs {
		s := Score(&job, criteria)
		if s.Passed {
			kept = append(kept, ScoredJob{Job: job, Score: s.Value})
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Score > kept[j].Score
	})
	return kept
}
