package audit

import (
	"context"
	"encoding/json"
	"testing"

	"beacon/internal/report"
)

func testArtifacts() *BaseArtifacts {
	return &BaseArtifacts{
		FetchTime:        "2026-08-25T10:00:00.000Z",
		RequestedURL:     "https://example.com/",
		FinalURL:         "https://example.com/",
		HostUserAgent:    "test-agent",
		NetworkUserAgent: "test-agent",
		Title:            "Example Domain",
		Metrics: &PageMetrics{
			FirstContentfulPaintMs: 1200,
			SpeedIndexMs:           2100,
			InteractiveMs:          3400,
		},
		FinalScreenshot: "data:image/jpeg;base64,ZmluYWw=",
		Traces:          map[string]json.RawMessage{},
		DevtoolsLogs:    map[string]json.RawMessage{},
	}
}

func runEngine(t *testing.T, a *BaseArtifacts) *report.Result {
	t.Helper()
	dir := t.TempDir()
	if err := SaveArtifacts(dir, a); err != nil {
		t.Fatalf("SaveArtifacts: %v", err)
	}
	res, err := NewEngine().Run(context.Background(), a.RequestedURL, Options{AuditDir: dir})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res == nil || res.Result == nil {
		t.Fatal("Run returned no result")
	}
	return res.Result
}

func TestEngine_NormalRun(t *testing.T) {
	r := runEngine(t, testArtifacts())

	perf := r.Categories[report.PerformanceCategoryID]
	if perf == nil {
		t.Fatal("no performance category")
	}
	if perf.Score == nil || *perf.Score <= 0 || *perf.Score > 1 {
		t.Errorf("performance score = %v, want (0,1]", perf.Score)
	}
	if len(perf.AuditRefs) != len(perfAudits) {
		t.Errorf("len(AuditRefs) = %d, want %d", len(perf.AuditRefs), len(perfAudits))
	}

	fcp := r.Audits["first-contentful-paint"]
	if fcp.ScoreDisplayMode != report.ModeNumeric {
		t.Errorf("fcp mode = %q, want numeric", fcp.ScoreDisplayMode)
	}
	if fcp.Score == nil || *fcp.Score != 1 {
		t.Errorf("fcp score = %v, want 1 (1200ms is under the good threshold)", fcp.Score)
	}

	fs := r.Audits["final-screenshot"]
	if fs.Details == nil || fs.Details.Type != report.DetailsScreenshot {
		t.Error("final-screenshot audit has no screenshot details")
	}

	// A normal run renders cleanly end to end.
	if _, err := report.Prepare(r); err != nil {
		t.Errorf("produced Result does not prepare: %v", err)
	}
}

func TestEngine_PageLoadError(t *testing.T) {
	a := testArtifacts()
	a.PageLoadError = "net::ERR_NAME_NOT_RESOLVED"
	r := runEngine(t, a)

	perf := r.Categories[report.PerformanceCategoryID]
	if perf.Score != nil {
		t.Errorf("performance score = %v, want nil on a failed load", *perf.Score)
	}
	for id, audit := range r.Audits {
		if audit.ScoreDisplayMode != report.ModeError {
			t.Errorf("audit %q mode = %q, want error", id, audit.ScoreDisplayMode)
		}
		if audit.ErrorMessage == "" {
			t.Errorf("audit %q has no error message", id)
		}
	}
	if len(r.RunWarnings) == 0 {
		t.Error("failed load produced no run warnings")
	}
}

func TestEngine_RequiresAuditDir(t *testing.T) {
	_, err := NewEngine().Run(context.Background(), "https://example.com/", Options{})
	if err == nil {
		t.Error("Run without an audit dir should fail")
	}
}

func TestEngine_MissingArtifacts(t *testing.T) {
	_, err := NewEngine().Run(context.Background(), "https://example.com/", Options{AuditDir: t.TempDir()})
	if err == nil {
		t.Error("Run should fail when the artifacts file is absent")
	}
}

func TestMetricCurve(t *testing.T) {
	c := metricCurve{Good: 1000, Poor: 3000}
	tests := []struct {
		ms   float64
		want float64
	}{
		{500, 1},
		{1000, 1},
		{2000, 0.5},
		{3000, 0},
		{9000, 0},
	}
	for _, tt := range tests {
		if got := c.score(tt.ms); got != tt.want {
			t.Errorf("score(%v) = %v, want %v", tt.ms, got, tt.want)
		}
	}
}
