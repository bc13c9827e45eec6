// Package audit scores gathered page artifacts into a Result document.
// It implements the audit-only execution mode the variant pipeline
// drives: artifacts are already on disk, no live page is touched.
package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"beacon/internal/report"
)

// ArtifactsFilename is the artifacts file within an audit directory.
const ArtifactsFilename = "artifacts.json"

// BaseArtifacts is the raw page-collection output the scoring engine
// consumes. PageLoadError is the page-load failure marker: when set the
// page never produced a first contentful paint and every audit reports
// an error state.
type BaseArtifacts struct {
	FetchTime    string `json:"fetchTime"`
	RequestedURL string `json:"requestedUrl"`
	FinalURL     string `json:"finalUrl"`

	HostUserAgent    string `json:"hostUserAgent"`
	NetworkUserAgent string `json:"networkUserAgent"`
	BenchmarkIndex   float64 `json:"benchmarkIndex,omitempty"`

	PageLoadError string `json:"pageLoadError,omitempty"`

	Title         string   `json:"title,omitempty"`
	ConsoleErrors []string `json:"consoleErrors,omitempty"`

	Metrics *PageMetrics `json:"metrics,omitempty"`

	FinalScreenshot    string `json:"finalScreenshot,omitempty"`
	FullPageScreenshot *report.Details `json:"fullPageScreenshot,omitempty"`

	ScriptTreemap []report.TreemapNode `json:"scriptTreemap,omitempty"`

	// Raw protocol captures. Present (possibly empty) so audit-only
	// consumers can distinguish "collected nothing" from "not
	// collected".
	Traces       map[string]json.RawMessage `json:"traces"`
	DevtoolsLogs map[string]json.RawMessage `json:"devtoolsLogs"`
}

// PageMetrics are the load timings the performance audits score.
type PageMetrics struct {
	FirstContentfulPaintMs float64 `json:"firstContentfulPaintMs"`
	SpeedIndexMs           float64 `json:"speedIndexMs"`
	InteractiveMs          float64 `json:"interactiveMs"`
}

// LoadArtifacts reads BaseArtifacts from an audit directory.
func LoadArtifacts(dir string) (*BaseArtifacts, error) {
	path := filepath.Join(dir, ArtifactsFilename)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("audit: read artifacts %q: %w", path, err)
	}
	var a BaseArtifacts
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("audit: unmarshal artifacts %q: %w", path, err)
	}
	return &a, nil
}

// SaveArtifacts writes BaseArtifacts into an audit directory, creating
// it if needed.
func SaveArtifacts(dir string, a *BaseArtifacts) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("audit: create artifacts dir %q: %w", dir, err)
	}
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("audit: marshal artifacts: %w", err)
	}
	path := filepath.Join(dir, ArtifactsFilename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("audit: write artifacts %q: %w", path, err)
	}
	return nil
}
