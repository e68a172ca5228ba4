package dice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julian/jobbider/internal/adapter"
)

const fullCardHTML = `
<html><body>
<div data-testid="job-card" data-id="job-123">
  <a data-testid="job-search-job-detail-link" href="/job-detail/job-123">Senior Go Engineer</a>
  <a href="/company-profile/acme">Acme Corp</a>
  <p>Posted 2 days ago</p>
  <p>Remote (US)</p>
  <p id="salary-label">$120,000 - $150,000</p>
  <p class="line-clamp-2">Build backend services in Go and Python on AWS.</p>
</div>
<div data-testid="job-card" data-id="job-456">
  <a data-testid="job-search-job-detail-link" href="https://www.dice.com/job-detail/job-456">Data Engineer</a>
</div>
<div data-testid="job-card">
  <p>A card without a title link</p>
</div>
</body></html>`

func TestParseJobCards_FullCard(t *testing.T) {
	now := time.Now().UTC()
	jobs, err := parseJobCards(fullCardHTML, now)
	require.NoError(t, err)
	require.Len(t, jobs, 2, "the card without a title link is dropped")

	job := jobs[0]
	assert.Equal(t, "dice", job.Platform)
	assert.Equal(t, "job-123", job.JobID)
	assert.Equal(t, "Senior Go Engineer", job.Title)
	assert.Equal(t, "Acme Corp", job.Company)
	assert.Equal(t, "Remote (US)", job.Location)
	assert.Equal(t, "$120,000 - $150,000", job.SalaryText)
	require.NotNil(t, job.SalaryMin)
	require.NotNil(t, job.SalaryMax)
	assert.InDelta(t, 120000, *job.SalaryMin, 0.1)
	assert.InDelta(t, 150000, *job.SalaryMax, 0.1)
	assert.Equal(t, "Build backend services in Go and Python on AWS.", job.Description)
	assert.Equal(t, "https://www.dice.com/job-detail/job-123", job.URL)
	assert.Equal(t, now, job.DiscoveredAt)
}

func TestParseJobCards_SparseCardGetsPlaceholders(t *testing.T) {
	jobs, err := parseJobCards(fullCardHTML, time.Now().UTC())
	require.NoError(t, err)
	require.Len(t, jobs, 2)

	job := jobs[1]
	assert.Equal(t, "job-456", job.JobID)
	assert.Equal(t, "Unknown", job.Company)
	assert.Equal(t, "Not specified", job.Location)
	assert.Empty(t, job.SalaryText)
	assert.Nil(t, job.SalaryMin)
	assert.Equal(t, "https://www.dice.com/job-detail/job-456", job.URL, "absolute hrefs pass through")
}

func TestParseJobCards_MissingDataID(t *testing.T) {
	html := `<div data-testid="job-card">
	  <a data-testid="job-search-job-detail-link" href="/job-detail/x">Engineer</a>
	</div>`
	jobs, err := parseJobCards(html, time.Now().UTC())
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Empty(t, jobs[0].JobID)
	assert.False(t, jobs[0].Persistable())
}

func TestParseJobCards_NoCards(t *testing.T) {
	jobs, err := parseJobCards(`<html><body><p>No results</p></body></html>`, time.Now().UTC())
	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestSearchURL(t *testing.T) {
	page1 := searchURL("python developer", 1)
	assert.Contains(t, page1, "q=python+developer")
	assert.Contains(t, page1, "filters.workplaceTypes=Remote")
	assert.NotContains(t, page1, "page=")

	assert.Contains(t, searchURL("python developer", 3), "page=3")
}

func TestSearchPage_OK(t *testing.T) {
	b := newFakeBrowser()
	b.pages[searchURL("golang developer", 1)] = fullCardHTML
	a := newTestAdapter(b, newFakeStore(), nil)

	jobs, outcome, err := a.searchPage(b, 1)
	require.NoError(t, err)
	assert.Equal(t, adapter.PageOK, outcome)
	assert.Len(t, jobs, 2)
	assert.Contains(t, b.snapshots, "search_results_page_1")
}

func TestSearchPage_Empty(t *testing.T) {
	b := newFakeBrowser()
	b.pages[searchURL("golang developer", 1)] = `<html><body></body></html>`
	a := newTestAdapter(b, newFakeStore(), nil)

	jobs, outcome, err := a.searchPage(b, 1)
	require.NoError(t, err)
	assert.Equal(t, adapter.PageEmpty, outcome)
	assert.Empty(t, jobs)
}

func TestSearchPage_RedirectPastLastPage(t *testing.T) {
	b := newFakeBrowser()
	requested := searchURL("golang developer", 4)
	b.redirects[requested] = searchURL("golang developer", 1)
	a := newTestAdapter(b, newFakeStore(), nil)

	jobs, outcome, err := a.searchPage(b, 4)
	require.NoError(t, err)
	assert.Equal(t, adapter.PageRedirected, outcome)
	assert.Empty(t, jobs)
}
