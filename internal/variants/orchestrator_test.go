package variants

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"beacon/internal/audit"
	"beacon/internal/flavor"
	"beacon/internal/locale"
	"beacon/internal/render"
	"beacon/internal/report"
)

func newTestOrchestrator(t *testing.T) *Orchestrator {
	t.Helper()
	return New(render.New(), locale.CatalogTranslator{}, audit.NewEngine(), t.TempDir())
}

func TestRun_MatrixCount(t *testing.T) {
	o := newTestOrchestrator(t)
	written, err := o.Run(context.Background(), report.Sample())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// 6 named results × 3 flavors.
	if len(written) != 18 {
		t.Fatalf("len(written) = %d, want 18", len(written))
	}

	names := []string{BaseName, "es", "ja", "ar", ErrorName, SingleCategoryName}
	i := 0
	for _, name := range names {
		for _, f := range flavor.All {
			w := written[i]
			i++
			if w.Name != name || w.Flavor != f {
				t.Errorf("written[%d] = (%s, %s), want (%s, %s)", i-1, w.Name, w.Flavor, name, f)
			}
			if want := o.OutputPath(name, f); w.Path != want {
				t.Errorf("path = %q, want %q", w.Path, want)
			}
			if _, err := os.Stat(w.Path); err != nil {
				t.Errorf("output %q not on disk: %v", w.Path, err)
			}
		}
	}
}

func TestRun_DeterministicPaths(t *testing.T) {
	o := newTestOrchestrator(t)
	tests := []struct {
		name   string
		flavor flavor.Flavor
		want   string
	}{
		{"en", flavor.Plain, "en/index.html"},
		{"en", flavor.Devtools, "devtools-en/index.html"},
		{"single-category", flavor.PSI, "psi-single-category/index.html"},
	}
	for _, tt := range tests {
		want := filepath.Join(o.DistDir, tt.want)
		if got := o.OutputPath(tt.name, tt.flavor); got != want {
			t.Errorf("OutputPath(%s, %s) = %q, want %q", tt.name, tt.flavor, got, want)
		}
	}
}

func TestRun_Idempotent(t *testing.T) {
	o := newTestOrchestrator(t)
	first, err := o.Run(context.Background(), report.Sample())
	if err != nil {
		t.Fatalf("first Run: %v", err)
	}
	snapshot := map[string][]byte{}
	for _, w := range first {
		data, err := os.ReadFile(w.Path)
		if err != nil {
			t.Fatalf("read %q: %v", w.Path, err)
		}
		snapshot[w.Path] = data
	}

	second, err := o.Run(context.Background(), report.Sample())
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if len(second) != len(first) {
		t.Fatalf("second run wrote %d files, want %d", len(second), len(first))
	}
	for _, w := range second {
		data, err := os.ReadFile(w.Path)
		if err != nil {
			t.Fatalf("read %q: %v", w.Path, err)
		}
		if diff := cmp.Diff(string(snapshot[w.Path]), string(data)); diff != "" {
			t.Errorf("%q not byte-identical across runs (-first +second):\n%s", w.Path, diff)
		}
	}
}

func TestRun_DoesNotMutateBase(t *testing.T) {
	o := newTestOrchestrator(t)
	base := report.Sample()
	if _, err := o.Run(context.Background(), base); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if diff := cmp.Diff(report.Sample(), base); diff != "" {
		t.Errorf("base mutated by orchestration (-want +got):\n%s", diff)
	}
}

type failingRunner struct{ err error }

func (f failingRunner) Run(context.Context, string, audit.Options) (*audit.RunResult, error) {
	return nil, f.err
}

func TestRun_FailFast(t *testing.T) {
	o := newTestOrchestrator(t)
	sentinel := errors.New("executor down")
	o.Runner = failingRunner{err: sentinel}

	_, err := o.Run(context.Background(), report.Sample())
	if !errors.Is(err, sentinel) {
		t.Fatalf("err = %v, want wrapped sentinel", err)
	}

	// No partial matrix: the failure precedes any write.
	entries, readErr := os.ReadDir(o.DistDir)
	if readErr != nil {
		t.Fatalf("read dist: %v", readErr)
	}
	if len(entries) != 0 {
		t.Errorf("dist dir has %d entries after aborted run, want 0", len(entries))
	}
}
