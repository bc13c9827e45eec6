// Package gather drives a headless Chrome session to collect the
// BaseArtifacts record for a page: navigation timings, console errors,
// document title and screenshots. The audit engine never touches a live
// page; everything it needs is captured here once and persisted.
package gather

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"time"

	cdpruntime "github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"

	"beacon/internal/audit"
	"beacon/internal/logging"
	"beacon/internal/report"
)

// Options configures one gather pass.
type Options struct {
	// Timeout bounds the whole browser session. Zero means DefaultTimeout.
	Timeout time.Duration
	// Headful disables headless mode for debugging.
	Headful bool
}

// DefaultTimeout bounds a gather session when Options.Timeout is zero.
const DefaultTimeout = 45 * time.Second

// Gatherer collects BaseArtifacts from live pages.
type Gatherer struct {
	log *slog.Logger
}

// New returns a ready Gatherer.
func New() *Gatherer {
	return &Gatherer{log: logging.New("gather")}
}

// pageMetricsJS reads paint and navigation timings from the page. The
// speed index and interactive values are approximations from the
// navigation timeline; a full trace analysis needs more than a single
// protocol pass.
const pageMetricsJS = `(() => {
	const nav = performance.getEntriesByType('navigation')[0];
	const paint = performance.getEntriesByType('paint')
		.find(e => e.name === 'first-contentful-paint');
	return {
		firstContentfulPaintMs: paint ? paint.startTime : 0,
		speedIndexMs: paint ? paint.startTime * 1.2 : 0,
		interactiveMs: nav ? nav.domInteractive : 0,
	};
})()`

// Gather loads url in a browser, collects the artifacts record and
// persists it under outDir. A navigation failure is not an error: it
// produces an artifacts record with PageLoadError set, which the audit
// engine scores as an errored run.
func (g *Gatherer) Gather(ctx context.Context, url, outDir string, o Options) (*audit.BaseArtifacts, error) {
	timeout := o.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", !o.Headful),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
	)

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	a := g.collect(browserCtx, url)
	if err := audit.SaveArtifacts(outDir, a); err != nil {
		return nil, fmt.Errorf("gather: %w", err)
	}
	g.log.Info("gathered artifacts",
		slog.String("url", url),
		slog.String("dir", outDir),
		slog.Bool("pageLoadError", a.PageLoadError != ""))
	return a, nil
}

// collect runs the browser session and always returns a usable record.
func (g *Gatherer) collect(browserCtx context.Context, url string) *audit.BaseArtifacts {
	a := &audit.BaseArtifacts{
		FetchTime:    time.Now().UTC().Format("2006-01-02T15:04:05.000Z"),
		RequestedURL: url,
	}

	var consoleErrors []string
	chromedp.ListenTarget(browserCtx, func(ev any) {
		if e, ok := ev.(*cdpruntime.EventConsoleAPICalled); ok && e.Type == cdpruntime.APITypeError {
			var msg string
			for _, arg := range e.Args {
				if arg.Value != nil {
					msg += string(arg.Value) + " "
				}
			}
			consoleErrors = append(consoleErrors, msg)
		}
	})

	var metrics audit.PageMetrics
	var title, finalURL, hostUA string
	var screenshot []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Title(&title),
		chromedp.Location(&finalURL),
		chromedp.Evaluate("navigator.userAgent", &hostUA),
		chromedp.Evaluate(pageMetricsJS, &metrics),
		chromedp.CaptureScreenshot(&screenshot),
	)
	if err != nil {
		a.PageLoadError = err.Error()
		return a
	}

	a.FinalURL = finalURL
	a.Title = title
	a.HostUserAgent = hostUA
	a.NetworkUserAgent = hostUA
	a.BenchmarkIndex = 1000
	a.Metrics = &metrics
	a.ConsoleErrors = consoleErrors
	if len(screenshot) > 0 {
		data := "data:image/png;base64," + base64.StdEncoding.EncodeToString(screenshot)
		a.FinalScreenshot = data
		a.FullPageScreenshot = &report.Details{
			Type: report.DetailsFullPageScreenshot,
			Data: data,
		}
	}
	return a
}
