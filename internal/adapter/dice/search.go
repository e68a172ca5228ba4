package dice

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/julian/jobbider/internal/adapter"
	"github.com/julian/jobbider/internal/matching"
	"github.com/julian/jobbider/internal/types"
)

const baseURL = "https://www.dice.com"

// searchURL builds the remote-filtered search URL for one result page. Page 1
// carries no page parameter; that is also what redirect detection keys on.
func searchURL(query string, page int) string {
	v := url.Values{}
	v.Set("q", query)
	v.Set("filters.workplaceTypes", "Remote")
	if page > 1 {
		v.Set("page", strconv.Itoa(page))
	}
	return baseURL + "/jobs?" + v.Encode()
}

// searchPage navigates to one result page and extracts its job cards. The
// outcome tag tells the pagination loop whether to continue; err is reserved
// for session-level failures.
func (a *Adapter) searchPage(b adapter.Browser, page int) ([]types.JobRecord, adapter.PageOutcome, error) {
	target := searchURL(a.cfg.SearchQuery, page)
	a.debugf("loading page %d: %s", page, target)
	if err := b.Navigate(target); err != nil {
		return nil, adapter.PageEmpty, err
	}

	// Past the last page Dice bounces back to an unnumbered URL.
	if page > 1 {
		current, err := b.CurrentURL()
		if err != nil {
			return nil, adapter.PageEmpty, err
		}
		if !strings.Contains(current, fmt.Sprintf("page=%d", page)) {
			return nil, adapter.PageRedirected, nil
		}
	}

	b.Snapshot(fmt.Sprintf("search_results_page_%d", page))

	html, err := b.PageHTML()
	if err != nil {
		return nil, adapter.PageEmpty, err
	}
	jobs, err := parseJobCards(html, time.Now().UTC())
	if err != nil {
		return nil, adapter.PageEmpty, err
	}
	if len(jobs) == 0 {
		return nil, adapter.PageEmpty, nil
	}

	a.logf("page %d: %d job cards", page, len(jobs))
	return jobs, adapter.PageOK, nil
}

// parseJobCards extracts normalized job records from a rendered result page.
// Cards without a title link are unusable and dropped; every other missing
// field degrades to a placeholder so one sparse card cannot sink the page.
func parseJobCards(html string, discoveredAt time.Time) ([]types.JobRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse results page: %w", err)
	}

	var jobs []types.JobRecord
	doc.Find(`div[data-testid='job-card']`).Each(func(_ int, card *goquery.Selection) {
		titleLink := card.Find(`a[data-testid='job-search-job-detail-link']`).First()
		title := strings.TrimSpace(titleLink.Text())
		href, _ := titleLink.Attr("href")
		if title == "" || href == "" {
			return
		}

		job := types.JobRecord{
			Platform:     platformName,
			Title:        title,
			Company:      "Unknown",
			Location:     "Not specified",
			URL:          absoluteURL(href),
			DiscoveredAt: discoveredAt,
		}
		if id, ok := card.Attr("data-id"); ok {
			job.JobID = strings.TrimSpace(id)
		}
		if company := strings.TrimSpace(card.Find(`a[href*='company-profile']`).First().Text()); company != "" {
			job.Company = company
		}
		card.Find("p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
			text := strings.TrimSpace(p.Text())
			if strings.Contains(text, "Remote") || strings.Contains(text, "Hybrid") {
				job.Location = text
				return false
			}
			return true
		})
		if salary := strings.TrimSpace(card.Find(`p#salary-label`).First().Text()); salary != "" {
			job.SalaryText = salary
			job.SalaryMin, job.SalaryMax = matching.ParseSalary(salary)
		}
		job.Description = strings.TrimSpace(card.Find(`p.line-clamp-2`).First().Text())

		jobs = append(jobs, job)
	})
	return jobs, nil
}

func absoluteURL(href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if !strings.HasPrefix(href, "/") {
		href = "/" + href
	}
	return baseURL + href
}
