// Package browser owns the headless-browser control handle and the locator
// resolution used by every interactive step. One Session is created per
// adapter run and destroyed at the end of it regardless of outcome.
package browser

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/target"
	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"
)

// Config holds the session settings derived from the application config.
type Config struct {
	Headless        bool
	UserAgent       string
	PageLoadTimeout time.Duration
	ElementWait     time.Duration
	NavsPerSecond   float64
	ScreenshotDir   string
	RunID           string
	Verbose         bool
}

// Session wraps one chromedp browser context. All interactions are blocking
// calls bounded by explicit timeouts; nothing blocks indefinitely.
type Session struct {
	cfg         Config
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
	limiter     *hostLimiter
	targetID    target.ID
	closed      bool
}

// Open launches a controlled browser context with a fixed viewport, a spoofed
// user agent, and automation-detection countermeasures disabled. A failure
// here is session-fatal.
func Open(ctx context.Context, cfg Config) (*Session, error) {
	if cfg.PageLoadTimeout == 0 {
		cfg.PageLoadTimeout = 30 * time.Second
	}
	if cfg.ElementWait == 0 {
		cfg.ElementWait = 10 * time.Second
	}
	if cfg.NavsPerSecond == 0 {
		cfg.NavsPerSecond = 0.5
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-infobars", true),
		chromedp.WindowSize(1920, 1080),
	)
	if cfg.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(cfg.UserAgent))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, cancel := chromedp.NewContext(allocCtx)

	// Start the browser now so an unlaunchable Chrome surfaces here rather
	// than on the first navigation.
	if err := chromedp.Run(browserCtx); err != nil {
		cancel()
		allocCancel()
		return nil, &SessionError{Message: "failed to start browser", Cause: err}
	}

	s := &Session{
		cfg:         cfg,
		ctx:         browserCtx,
		cancel:      cancel,
		allocCancel: allocCancel,
		limiter:     newHostLimiter(cfg.NavsPerSecond, 1),
		targetID:    chromedp.FromContext(browserCtx).Target.TargetID,
	}
	s.debugf("browser started (headless=%v)", cfg.Headless)
	return s, nil
}

// Close releases the browser and all its resources. Safe to call multiple
// times; it runs on every exit path of an adapter run.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.debugf("closing browser")
	s.cancel()
	s.allocCancel()
	return nil
}

// Navigate blocks until the page body is ready or the page-load timeout
// expires. Navigations are paced by a per-host rate limiter.
func (s *Session) Navigate(url string) error {
	if err := s.limiter.waitURL(s.ctx, url); err != nil {
		return &NavigationError{URL: url, Cause: err}
	}

	ctx, cancel := context.WithTimeout(s.ctx, s.cfg.PageLoadTimeout)
	defer cancel()

	err := chromedp.Run(ctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if err != nil {
		return &NavigationError{URL: url, Cause: err}
	}
	return nil
}

// CurrentURL returns the location of the active page.
func (s *Session) CurrentURL() (string, error) {
	var u string
	ctx, cancel := context.WithTimeout(s.ctx, s.cfg.ElementWait)
	defer cancel()
	if err := chromedp.Run(ctx, chromedp.Location(&u)); err != nil {
		return "", &SessionError{Message: "failed to read location", Cause: err}
	}
	return u, nil
}

// PageHTML returns the rendered HTML of the active page.
func (s *Session) PageHTML() (string, error) {
	var html string
	ctx, cancel := context.WithTimeout(s.ctx, s.cfg.PageLoadTimeout)
	defer cancel()
	if err := chromedp.Run(ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", &SessionError{Message: "failed to read page HTML", Cause: err}
	}
	return html, nil
}

// WaitFor waits until the locator resolves or the timeout expires. With
// silent set, a miss is not logged; speculative probes use this so failed
// probes are not alarming.
func (s *Session) WaitFor(loc Locator, timeout time.Duration, silent bool) bool {
	ctx, cancel := context.WithTimeout(s.ctx, timeout)
	defer cancel()

	if err := chromedp.Run(ctx, chromedp.WaitReady(loc.Query, loc.by())); err != nil {
		if !silent {
			log.Printf("[browser] element not found: %s", loc)
		}
		return false
	}
	return true
}

// Resolve tries each locator in the chain in order, waiting perCandidate for
// each, and returns the first that resolves. Misses short of exhaustion are
// always silent; exhaustion is logged unless silent is set.
func (s *Session) Resolve(chain Chain, perCandidate time.Duration, silent bool) (Locator, bool) {
	for _, loc := range chain {
		if s.WaitFor(loc, perCandidate, true) {
			return loc, true
		}
	}
	if !silent {
		log.Printf("[browser] no locator in chain resolved (%d candidates)", len(chain))
	}
	return Locator{}, false
}

// ClickWhenReady waits for the element to be visible and clicks it, returning
// the outcome as a boolean so callers can chain fallbacks cheaply.
func (s *Session) ClickWhenReady(loc Locator, timeout time.Duration) bool {
	ctx, cancel := context.WithTimeout(s.ctx, timeout)
	defer cancel()

	err := chromedp.Run(ctx,
		chromedp.WaitVisible(loc.Query, loc.by()),
		chromedp.Click(loc.Query, loc.by()),
	)
	if err != nil {
		log.Printf("[browser] could not click %s: %v", loc, err)
		return false
	}
	return true
}

// Type clears the element and types the text into it.
func (s *Session) Type(loc Locator, text string) error {
	ctx, cancel := context.WithTimeout(s.ctx, s.cfg.ElementWait)
	defer cancel()

	err := chromedp.Run(ctx,
		chromedp.WaitVisible(loc.Query, loc.by()),
		chromedp.Clear(loc.Query, loc.by()),
		chromedp.SendKeys(loc.Query, text, loc.by()),
	)
	if err != nil {
		return &SessionError{Message: fmt.Sprintf("failed to type into %s", loc), Cause: err}
	}
	return nil
}

// PressEnter sends the confirm key to the element. Used as the fallback when
// a continue control cannot be resolved.
func (s *Session) PressEnter(loc Locator) error {
	ctx, cancel := context.WithTimeout(s.ctx, s.cfg.ElementWait)
	defer cancel()

	if err := chromedp.Run(ctx, chromedp.SendKeys(loc.Query, kb.Enter, loc.by())); err != nil {
		return &SessionError{Message: fmt.Sprintf("failed to press enter on %s", loc), Cause: err}
	}
	return nil
}

// Upload injects the absolute file path into a file-input element.
func (s *Session) Upload(loc Locator, absPath string) error {
	ctx, cancel := context.WithTimeout(s.ctx, s.cfg.ElementWait)
	defer cancel()

	if err := chromedp.Run(ctx, chromedp.SetUploadFiles(loc.Query, []string{absPath}, loc.by())); err != nil {
		return &SessionError{Message: fmt.Sprintf("failed to set upload file on %s", loc), Cause: err}
	}
	return nil
}

// WaitForURL polls the current location until pred accepts it or the timeout
// expires. This replaces fixed sleeps around redirects with a condition-based
// wait.
func (s *Session) WaitForURL(pred func(string) bool, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	for {
		if u, err := s.CurrentURL(); err == nil && pred(u) {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		select {
		case <-ticker.C:
		case <-s.ctx.Done():
			return false
		}
	}
}

// Snapshot takes a diagnostic screenshot of the current screen. Best effort:
// failures are logged at debug level and never affect control flow.
func (s *Session) Snapshot(name string) {
	if s.cfg.ScreenshotDir == "" {
		return
	}

	var buf []byte
	ctx, cancel := context.WithTimeout(s.ctx, s.cfg.ElementWait)
	defer cancel()
	if err := chromedp.Run(ctx, chromedp.CaptureScreenshot(&buf)); err != nil {
		s.debugf("screenshot %s failed: %v", name, err)
		return
	}

	if err := os.MkdirAll(s.cfg.ScreenshotDir, 0o755); err != nil {
		s.debugf("screenshot dir: %v", err)
		return
	}
	file := filepath.Join(s.cfg.ScreenshotDir, fmt.Sprintf("%s_%s.png", s.cfg.RunID, name))
	if err := os.WriteFile(file, buf, 0o644); err != nil {
		s.debugf("screenshot write: %v", err)
		return
	}
	s.debugf("screenshot saved: %s", file)
}

// CloseSecondaryPages closes any browsing context opened after the original
// one and returns focus to it. Best effort: submission flows may open the
// confirmation in a new tab, and failing to tidy it up is not an error.
func (s *Session) CloseSecondaryPages() {
	infos, err := chromedp.Targets(s.ctx)
	if err != nil {
		s.debugf("listing targets: %v", err)
		return
	}

	c := chromedp.FromContext(s.ctx)
	for _, info := range infos {
		if info.Type != "page" || info.TargetID == s.targetID {
			continue
		}
		err := target.CloseTarget(info.TargetID).Do(cdp.WithExecutor(s.ctx, c.Browser))
		if err != nil {
			s.debugf("closing target %s: %v", info.TargetID, err)
		}
	}
}

func (s *Session) debugf(format string, args ...any) {
	if s.cfg.Verbose {
		log.Printf("[browser] "+format, args...)
	}
}
