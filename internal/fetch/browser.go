// Package fetch - browser.go provides headless browser rendering for script-rendered job pages.
package fetch

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// MinContentLength is the minimum body text length for an HTTP fetch to be
// trusted; shorter pages are re-rendered in the browser.
const MinContentLength = 500

// ShouldUseBrowser returns true if the extracted text is too short,
// indicating the page is likely rendered by JavaScript.
func ShouldUseBrowser(extractedText string) bool {
	return len(strings.TrimSpace(extractedText)) < MinContentLength
}

// BrowserFetcher renders pages in headless Chrome.
// Requires Chrome/Chromium to be installed on the system.
type BrowserFetcher struct {
	Timeout   time.Duration
	UserAgent string
	Verbose   bool
}

// NewBrowserFetcher creates a browser fetcher with the given per-page timeout.
func NewBrowserFetcher(timeout time.Duration, verbose bool) *BrowserFetcher {
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &BrowserFetcher{Timeout: timeout, UserAgent: DefaultUserAgent, Verbose: verbose}
}

// Fetch navigates to urlStr and returns the rendered HTML.
func (b *BrowserFetcher) Fetch(ctx context.Context, urlStr string) (*Result, error) {
	if b.Verbose {
		log.Printf("[BROWSER] Starting headless browser for: %s", urlStr)
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent(b.UserAgent),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, b.Timeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(urlStr),
		chromedp.WaitReady("body"),
		// Give client-side rendering time to fill the job card
		chromedp.Sleep(2*time.Second),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "browser rendering failed", Cause: err}
	}

	if b.Verbose {
		log.Printf("[BROWSER] Rendered HTML: %d bytes", len(html))
	}

	return &Result{URL: urlStr, HTML: html, StatusCode: 200}, nil
}

// FallbackFetcher fetches over HTTP first and re-renders in a browser when
// the page body is too short to hold a job posting.
type FallbackFetcher struct {
	Primary  Fetcher
	Fallback Fetcher
	Verbose  bool
}

// Fetch tries Primary, then Fallback for thin pages. A failing fallback
// leaves the primary result in place.
func (f *FallbackFetcher) Fetch(ctx context.Context, urlStr string) (*Result, error) {
	result, err := f.Primary.Fetch(ctx, urlStr)
	if err != nil {
		return nil, err
	}

	text, err := MainText(result.HTML, nil)
	if err != nil || !ShouldUseBrowser(text) {
		return result, nil
	}

	if f.Verbose {
		log.Printf("[fetch] %s: content too short (%d chars < %d), falling back to browser rendering",
			urlStr, len(text), MinContentLength)
	}

	rendered, err := f.Fallback.Fetch(ctx, urlStr)
	if err != nil {
		if f.Verbose {
			log.Printf("[fetch] browser rendering failed: %v, using HTTP content", err)
		}
		return result, nil
	}
	return rendered, nil
}
