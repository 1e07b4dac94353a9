package source

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/playwright-community/playwright-go"

	"jobexport/internal/config"
	"jobexport/internal/domain"
)

// BrowserSource opens the search URL once in headless Chromium, signed in
// with the user's exported cookies, and snapshots the rendered DOM after the
// first listing card appears. No scrolling, no pagination.
type BrowserSource struct {
	URL         string
	Listing     string
	CookiesPath string
	Headless    bool
	Timeout     time.Duration
}

func NewBrowserSource(pageURL string, cfg config.Config) *BrowserSource {
	return &BrowserSource{
		URL:         pageURL,
		Listing:     cfg.Selectors.Listing,
		CookiesPath: cfg.Browser.CookiesPath,
		Headless:    cfg.Browser.Headless,
		Timeout:     time.Duration(cfg.Browser.TimeoutSeconds) * time.Second,
	}
}

func (s *BrowserSource) Name() string { return "browser" }

func (s *BrowserSource) Load(ctx context.Context) (domain.Page, error) {
	if s.URL == "" {
		return domain.Page{}, errors.New("browser source needs a url")
	}
	if err := ctx.Err(); err != nil {
		return domain.Page{}, err
	}

	var cookies []playwright.OptionalCookie
	if s.CookiesPath != "" {
		c, err := LoadCookies(s.CookiesPath)
		if err != nil {
			return domain.Page{}, err
		}
		cookies = c
		log.Printf("[browser] loaded cookies=%d", len(cookies))
	}

	pw, err := playwright.Run()
	if err != nil {
		return domain.Page{}, fmt.Errorf("start playwright: %w", err)
	}
	defer func() { _ = pw.Stop() }()

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(s.Headless),
	})
	if err != nil {
		return domain.Page{}, fmt.Errorf("launch chromium: %w", err)
	}
	defer func() { _ = browser.Close() }()

	bctx, err := browser.NewContext()
	if err != nil {
		return domain.Page{}, fmt.Errorf("new context: %w", err)
	}
	if len(cookies) > 0 {
		if err := bctx.AddCookies(cookies); err != nil {
			return domain.Page{}, fmt.Errorf("add cookies: %w", err)
		}
	}

	page, err := bctx.NewPage()
	if err != nil {
		return domain.Page{}, fmt.Errorf("new page: %w", err)
	}

	timeout := s.timeoutMillis(ctx)
	log.Printf("[browser] goto url=%s", s.URL)
	if _, err := page.Goto(s.URL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(timeout),
	}); err != nil {
		return domain.Page{}, fmt.Errorf("load %s: %w", s.URL, err)
	}

	if s.Listing != "" {
		// an empty result page never shows a card; snapshot it anyway
		if _, err := page.WaitForSelector(s.Listing, playwright.PageWaitForSelectorOptions{
			Timeout: playwright.Float(timeout),
		}); err != nil {
			log.Printf("[browser] warn: no listing appeared selector=%q err=%v", s.Listing, err)
		}
	}

	html, err := page.Content()
	if err != nil {
		return domain.Page{}, fmt.Errorf("read page content: %w", err)
	}
	return domain.Page{HTML: html, URL: page.URL()}, nil
}

// timeoutMillis is the configured timeout, shortened to the context deadline.
func (s *BrowserSource) timeoutMillis(ctx context.Context) float64 {
	d := s.Timeout
	if d <= 0 {
		d = 30 * time.Second
	}
	if dl, ok := ctx.Deadline(); ok {
		if left := time.Until(dl); left < d {
			d = left
		}
	}
	if d < time.Second {
		d = time.Second
	}
	return float64(d.Milliseconds())
}
