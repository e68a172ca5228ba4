package dice

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/julian/jobbider/internal/adapter"
	"github.com/julian/jobbider/internal/browser"
	"github.com/julian/jobbider/internal/config"
	"github.com/julian/jobbider/internal/types"
)

// fakeBrowser is a scriptable adapter.Browser. Elements exist when their
// query appears in present; navigation and clicks record what happened and
// can rewrite the current URL to simulate redirects and post-click routing.
type fakeBrowser struct {
	present       map[string]bool
	notClickable  map[string]bool
	pages         map[string]string // URL -> rendered HTML
	redirects     map[string]string // requested URL -> URL actually landed on
	urlAfterClick map[string]string // clicked query -> URL the click navigates to
	navErr        map[string]error

	currentURL string
	navigated  []string
	clicks     []string
	typed      map[string]string
	entered    []string
	uploads    []string
	snapshots  []string
	closedTabs int
	closes     int
	runIDs     []string
}

func newFakeBrowser() *fakeBrowser {
	return &fakeBrowser{
		present:       map[string]bool{},
		notClickable:  map[string]bool{},
		pages:         map[string]string{},
		redirects:     map[string]string{},
		urlAfterClick: map[string]string{},
		navErr:        map[string]error{},
		typed:         map[string]string{},
	}
}

func (f *fakeBrowser) Navigate(url string) error {
	if err := f.navErr[url]; err != nil {
		return err
	}
	f.navigated = append(f.navigated, url)
	f.currentURL = url
	if dest, ok := f.redirects[url]; ok {
		f.currentURL = dest
	}
	return nil
}

func (f *fakeBrowser) CurrentURL() (string, error) {
	return f.currentURL, nil
}

func (f *fakeBrowser) PageHTML() (string, error) {
	return f.pages[f.currentURL], nil
}

func (f *fakeBrowser) WaitFor(loc browser.Locator, _ time.Duration, _ bool) bool {
	return f.present[loc.Query]
}

func (f *fakeBrowser) Resolve(chain browser.Chain, _ time.Duration, _ bool) (browser.Locator, bool) {
	for _, loc := range chain {
		if f.present[loc.Query] {
			return loc, true
		}
	}
	return browser.Locator{}, false
}

func (f *fakeBrowser) ClickWhenReady(loc browser.Locator, _ time.Duration) bool {
	if !f.present[loc.Query] || f.notClickable[loc.Query] {
		return false
	}
	f.clicks = append(f.clicks, loc.Query)
	if dest, ok := f.urlAfterClick[loc.Query]; ok {
		f.currentURL = dest
	}
	return true
}

func (f *fakeBrowser) Type(loc browser.Locator, text string) error {
	f.typed[loc.Query] = text
	return nil
}

func (f *fakeBrowser) PressEnter(loc browser.Locator) error {
	f.entered = append(f.entered, loc.Query)
	return nil
}

func (f *fakeBrowser) Upload(_ browser.Locator, absPath string) error {
	f.uploads = append(f.uploads, absPath)
	return nil
}

func (f *fakeBrowser) WaitForURL(pred func(string) bool, _ time.Duration) bool {
	return pred(f.currentURL)
}

func (f *fakeBrowser) Snapshot(name string) {
	f.snapshots = append(f.snapshots, name)
}

func (f *fakeBrowser) CloseSecondaryPages() {
	f.closedTabs++
}

func (f *fakeBrowser) Close() error {
	f.closes++
	return nil
}

func (f *fakeBrowser) opener() adapter.OpenBrowser {
	return func(_ context.Context, runID string) (adapter.Browser, error) {
		f.runIDs = append(f.runIDs, runID)
		return f, nil
	}
}

// scriptLoginSuccess makes the two-step login flow succeed against the fake.
func (f *fakeBrowser) scriptLoginSuccess() {
	f.present[`input[name='email']`] = true
	f.present[`button[data-testid='sign-in-button']`] = true
	f.present[`input[name='password']`] = true
	f.present[`button[data-testid='submit-password']`] = true
	f.urlAfterClick[`button[data-testid='submit-password']`] = "https://www.dice.com/home-feed"
}

// scriptApplySuccess makes the full submission flow succeed against the fake.
func (f *fakeBrowser) scriptApplySuccess() {
	f.present[`apply-button-wc`] = true
	f.present[`//span[contains(., 'Upload')]`] = true
	f.present[`input#fsp-fileUpload`] = true
	f.present[`span.fsp-button-upload`] = true
	f.present[`button.btn-next`] = true
	f.present[`button.seds-button-primary`] = true
}

// fakeStore is an in-memory adapter.Store.
type fakeStore struct {
	jobs    map[string]types.JobRecord
	apps    []types.ApplicationRecord
	history []types.SearchHistory
}

func newFakeStore() *fakeStore {
	return &fakeStore{jobs: map[string]types.JobRecord{}}
}

func storeKey(jobID, platform string) string {
	return platform + "/" + jobID
}

func (s *fakeStore) JobExists(_ context.Context, jobID, platform string) (bool, error) {
	_, ok := s.jobs[storeKey(jobID, platform)]
	return ok, nil
}

func (s *fakeStore) ApplicationExists(_ context.Context, jobID, platform string) (bool, error) {
	for _, app := range s.apps {
		if app.JobID == jobID && app.Platform == platform {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeStore) SaveJob(_ context.Context, job *types.JobRecord) error {
	key := storeKey(job.JobID, job.Platform)
	if _, ok := s.jobs[key]; ok {
		return fmt.Errorf("duplicate job %s", key)
	}
	s.jobs[key] = *job
	return nil
}

func (s *fakeStore) SaveApplication(_ context.Context, app *types.ApplicationRecord) error {
	s.apps = append(s.apps, *app)
	return nil
}

func (s *fakeStore) SaveSearchHistory(_ context.Context, h *types.SearchHistory) error {
	s.history = append(s.history, *h)
	return nil
}

func testCreds() config.Credentials {
	return config.Credentials{Email: "user@example.com", Password: "hunter2"}
}

// writeTestResume drops a placeholder resume file into a temp dir.
func writeTestResume(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "resume.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
