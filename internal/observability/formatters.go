// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/julian/jobbider/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxJobsToShow is the default number of applied jobs to display
	maxJobsToShow = 5
)

// Printer handles formatted output for run summaries and statistics
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintRunSummary outputs a per-platform summary after a run completes.
func (p *Printer) PrintRunSummary(platform string, result types.RunResult, searchOnly bool) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Platform:      %s\n", platform))
	sb.WriteString(fmt.Sprintf("Jobs found:    %d\n", result.JobsFound))
	if searchOnly {
		sb.WriteString("Applications:  skipped (search only)")
	} else {
		sb.WriteString(fmt.Sprintf("Applications:  %d submitted", result.ApplicationsSubmitted))
	}

	p.printBox("RUN SUMMARY", sb.String())
}

// PrintStatistics outputs the aggregate totals from the store.
func (p *Printer) PrintStatistics(stats types.Statistics) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Jobs discovered:     %d\n", stats.TotalJobs))
	sb.WriteString(fmt.Sprintf("Attempts recorded:   %d\n", stats.TotalApplications))
	sb.WriteString(fmt.Sprintf("  Successful:        %d\n", stats.SuccessfulApplications))
	sb.WriteString(fmt.Sprintf("  Failed:            %d\n", stats.FailedApplications))

	rate := "n/a"
	if stats.TotalApplications > 0 {
		rate = fmt.Sprintf("%.0f%%", 100*float64(stats.SuccessfulApplications)/float64(stats.TotalApplications))
	}
	sb.WriteString(fmt.Sprintf("Success rate:        %s", rate))

	p.printBox("APPLICATION STATISTICS", sb.String())
}

// PrintScoredJobs outputs the jobs that passed the match threshold, best
// first.
func (p *Printer) PrintScoredJobs(jobs []types.JobRecord, scores []float64) {
	if len(jobs) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Matched %d jobs:\n\n", len(jobs)))

	count := min(len(jobs), maxJobsToShow)
	for i := 0; i < count; i++ {
		title := jobs[i].Title
		if len(title) > 40 {
			title = title[:37] + "..."
		}
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, title))
		sb.WriteString(fmt.Sprintf("    %s", jobs[i].Company))
		if i < len(scores) {
			sb.WriteString(fmt.Sprintf("  (score %.0f)", scores[i]))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(jobs) > maxJobsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more jobs", len(jobs)-maxJobsToShow))
	}

	p.printBox("MATCHED JOBS", sb.String())
}
