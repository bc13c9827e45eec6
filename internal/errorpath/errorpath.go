// Package errorpath constructs a realistic failure Result for
// exercising error rendering: a hand-authored artifacts record for a
// page load that never reached first contentful paint is driven
// through the audit-only executor, then specific audits are overwritten
// with illustrative warning states.
package errorpath

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"beacon/internal/audit"
	"beacon/internal/logging"
	"beacon/internal/report"
)

// ErrorPageURL is the synthetic page the failure artifacts describe.
const ErrorPageURL = "https://error.example.com/"

// pageLoadError is the failure marker in the synthetic artifacts.
const pageLoadError = "FCP_TIMEOUT: the page never reached first contentful paint"

// Illustrative diagnostic strings injected after the run.
var (
	fcpWarnings = []string{
		"The page loaded too slowly to finish within the time limit.",
		"Chrome prevented the page from painting before the load event.",
	}
	imageAuditWarning = "This audit could not fully run, but it did not fail outright."
)

// Audits overwritten after the audit-only run.
const (
	fcpAuditID          = "first-contentful-paint"
	offscreenAuditID    = "offscreen-images"
	modernImagesAuditID = "modern-image-formats"
)

// Build persists the synthetic failure artifacts to a scratch
// directory, runs the audit-only executor against it and injects the
// illustrative audit overrides. The scratch directory is released on
// every exit path, including executor failure; a cleanup failure is
// logged and never masks the primary error.
func Build(ctx context.Context, runner audit.Runner) (*report.Result, error) {
	log := logging.New("errorpath")

	scratch, err := os.MkdirTemp("", "beacon-error-artifacts-")
	if err != nil {
		return nil, fmt.Errorf("errorpath: create scratch dir: %w", err)
	}
	defer func() {
		if rmErr := os.RemoveAll(scratch); rmErr != nil {
			log.Warn("scratch dir cleanup failed", slog.String("dir", scratch), slog.Any("err", rmErr))
		}
	}()

	if err := audit.SaveArtifacts(scratch, errorArtifacts()); err != nil {
		return nil, fmt.Errorf("errorpath: %w", err)
	}

	res, err := runner.Run(ctx, ErrorPageURL, audit.Options{AuditDir: scratch})
	if err != nil {
		return nil, fmt.Errorf("errorpath: audit-only run: %w", err)
	}
	if res == nil || res.Result == nil {
		return nil, fmt.Errorf("errorpath: audit-only run returned no result")
	}

	applyOverrides(res.Result)
	return res.Result, nil
}

// errorArtifacts is the fixed BaseArtifacts record for the failed load:
// plausible timestamps and user agents, the page-load error marker, and
// empty protocol capture containers.
func errorArtifacts() *audit.BaseArtifacts {
	return &audit.BaseArtifacts{
		FetchTime:        "2026-08-25T00:00:00.000Z",
		RequestedURL:     ErrorPageURL,
		FinalURL:         ErrorPageURL,
		HostUserAgent:    "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 Chrome/120.0 Safari/537.36",
		NetworkUserAgent: "Mozilla/5.0 (Linux; Android 11; moto g power) AppleWebKit/537.36 Chrome/120.0 Mobile Safari/537.36",
		BenchmarkIndex:   1000,
		PageLoadError:    pageLoadError,
		Traces:           map[string]json.RawMessage{},
		DevtoolsLogs:     map[string]json.RawMessage{},
	}
}

// applyOverrides injects the illustrative post-run states: the paint
// metric keeps its error score but gains diagnostic warnings; the two
// image audits are downgraded from hard errors to passing binary
// results that carry a warning.
func applyOverrides(r *report.Result) {
	if a := r.Audits[fcpAuditID]; a != nil {
		a.Warnings = append([]string(nil), fcpWarnings...)
	}
	for _, id := range []string{offscreenAuditID, modernImagesAuditID} {
		a := r.Audits[id]
		if a == nil {
			continue
		}
		a.Warnings = []string{imageAuditWarning}
		a.ErrorMessage = ""
		a.ScoreDisplayMode = report.ModeBinary
		a.Score = report.Float(1)
	}
}
