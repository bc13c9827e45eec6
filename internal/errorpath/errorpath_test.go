package errorpath

import (
	"context"
	"errors"
	"os"
	"testing"

	"beacon/internal/audit"
	"beacon/internal/report"
)

func TestBuild_Overrides(t *testing.T) {
	r, err := Build(context.Background(), audit.NewEngine())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	fcp := r.Audits["first-contentful-paint"]
	if len(fcp.Warnings) != 2 {
		t.Errorf("fcp warnings = %d, want 2", len(fcp.Warnings))
	}
	if fcp.ScoreDisplayMode != report.ModeError {
		t.Errorf("fcp mode = %q, want error (score state untouched)", fcp.ScoreDisplayMode)
	}
	if fcp.Score != nil {
		t.Errorf("fcp score = %v, want nil (untouched)", *fcp.Score)
	}

	for _, id := range []string{"offscreen-images", "modern-image-formats"} {
		a := r.Audits[id]
		if a.Score == nil || *a.Score != 1 {
			t.Errorf("%s score = %v, want 1", id, a.Score)
		}
		if a.ScoreDisplayMode != report.ModeBinary {
			t.Errorf("%s mode = %q, want binary", id, a.ScoreDisplayMode)
		}
		if a.ErrorMessage != "" {
			t.Errorf("%s errorMessage = %q, want cleared", id, a.ErrorMessage)
		}
		if len(a.Warnings) != 1 {
			t.Errorf("%s warnings = %d, want 1", id, len(a.Warnings))
		}
	}
}

func TestBuild_ResultRenders(t *testing.T) {
	r, err := Build(context.Background(), audit.NewEngine())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if _, err := report.Prepare(r); err != nil {
		t.Errorf("error-path Result does not prepare: %v", err)
	}
}

// recordingRunner captures the scratch dir it was pointed at and then
// fails or returns nothing.
type recordingRunner struct {
	dir    string
	err    error
	result *audit.RunResult
}

func (r *recordingRunner) Run(_ context.Context, _ string, opts audit.Options) (*audit.RunResult, error) {
	r.dir = opts.AuditDir
	return r.result, r.err
}

func TestBuild_ScratchRemovedOnRunnerFailure(t *testing.T) {
	sentinel := errors.New("executor crashed")
	runner := &recordingRunner{err: sentinel}

	_, err := Build(context.Background(), runner)
	if !errors.Is(err, sentinel) {
		t.Fatalf("err = %v, want wrapped sentinel", err)
	}
	if runner.dir == "" {
		t.Fatal("runner never saw a scratch dir")
	}
	if _, statErr := os.Stat(runner.dir); !os.IsNotExist(statErr) {
		t.Errorf("scratch dir %q still exists after failure", runner.dir)
	}
}

func TestBuild_NoResultIsFatal(t *testing.T) {
	runner := &recordingRunner{}
	if _, err := Build(context.Background(), runner); err == nil {
		t.Fatal("Build should fail when the executor returns no result")
	}
	if _, statErr := os.Stat(runner.dir); !os.IsNotExist(statErr) {
		t.Errorf("scratch dir %q still exists", runner.dir)
	}
}

func TestBuild_ScratchRemovedOnSuccess(t *testing.T) {
	runner := &recordingRunner{}
	engine := audit.NewEngine()
	wrapped := runnerFunc(func(ctx context.Context, url string, opts audit.Options) (*audit.RunResult, error) {
		runner.dir = opts.AuditDir
		return engine.Run(ctx, url, opts)
	})
	if _, err := Build(context.Background(), wrapped); err != nil {
		t.Fatalf("Build: %v", err)
	}
	if _, statErr := os.Stat(runner.dir); !os.IsNotExist(statErr) {
		t.Errorf("scratch dir %q still exists after success", runner.dir)
	}
}

type runnerFunc func(context.Context, string, audit.Options) (*audit.RunResult, error)

func (f runnerFunc) Run(ctx context.Context, url string, opts audit.Options) (*audit.RunResult, error) {
	return f(ctx, url, opts)
}
