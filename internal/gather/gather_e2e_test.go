//go:build e2e

package gather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"beacon/internal/audit"
)

const testPage = `<!doctype html>
<html><head><title>Gather Fixture</title></head>
<body><h1>hello</h1><script>console.error("boom");</script></body></html>`

func TestGather_LivePage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(testPage))
	}))
	defer srv.Close()

	dir := t.TempDir()
	a, err := New().Gather(context.Background(), srv.URL+"/", dir, Options{Timeout: 30 * time.Second})
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	if a.PageLoadError != "" {
		t.Fatalf("unexpected page load error: %s", a.PageLoadError)
	}
	if a.Title != "Gather Fixture" {
		t.Errorf("title = %q", a.Title)
	}
	if a.FinalScreenshot == "" {
		t.Error("no final screenshot captured")
	}

	loaded, err := audit.LoadArtifacts(dir)
	if err != nil {
		t.Fatalf("LoadArtifacts: %v", err)
	}
	if loaded.RequestedURL != srv.URL+"/" {
		t.Errorf("persisted url = %q", loaded.RequestedURL)
	}
}

func TestGather_UnreachableHost(t *testing.T) {
	dir := t.TempDir()
	a, err := New().Gather(context.Background(), "http://127.0.0.1:1/", dir, Options{Timeout: 20 * time.Second})
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	if a.PageLoadError == "" {
		t.Error("want PageLoadError for unreachable host")
	}
}
