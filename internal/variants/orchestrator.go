// Package variants is the top-level driver of the report pipeline: it
// expands a base Result into the full {named result × environment
// flavor} matrix and serializes every rendering to its deterministic
// output path.
package variants

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"beacon/internal/audit"
	"beacon/internal/errorpath"
	"beacon/internal/flavor"
	"beacon/internal/locale"
	"beacon/internal/logging"
	"beacon/internal/report"
)

// Fixed variant names besides the locale tags.
const (
	BaseName           = "en"
	ErrorName          = "error"
	SingleCategoryName = "single-category"
)

// Orchestrator computes and writes the variant matrix. All collaborator
// failures and write failures are fatal to the whole run; this is a
// build tool, not a server.
type Orchestrator struct {
	Renderer   flavor.Renderer
	Translator locale.Translator
	Runner     audit.Runner
	DistDir    string
	Locales    []string

	log *slog.Logger
}

// New returns an Orchestrator writing under distDir with the default
// locale set.
func New(rd flavor.Renderer, tr locale.Translator, runner audit.Runner, distDir string) *Orchestrator {
	return &Orchestrator{
		Renderer:   rd,
		Translator: tr,
		Runner:     runner,
		DistDir:    distDir,
		Locales:    locale.DefaultLocales,
		log:        logging.New("variants"),
	}
}

// Written records one serialized output file.
type Written struct {
	Name   string
	Flavor flavor.Flavor
	Path   string
	Bytes  int
}

type namedResult struct {
	name   string
	result *report.Result
}

// OutputPath is the deterministic destination for one (name, flavor)
// pair: <dist>/<flavor-prefix><name>/index.html.
func (o *Orchestrator) OutputPath(name string, f flavor.Flavor) string {
	return filepath.Join(o.DistDir, f.PathPrefix()+name, "index.html")
}

// Run computes the full matrix from base and writes every rendering,
// overwriting existing files. Re-running with identical inputs produces
// byte-identical output. Completion is reported per file; the first
// failure aborts the run.
func (o *Orchestrator) Run(ctx context.Context, base *report.Result) ([]Written, error) {
	named, err := o.expand(ctx, base)
	if err != nil {
		return nil, err
	}

	var written []Written
	for _, nr := range named {
		for _, f := range flavor.All {
			markup, err := flavor.Render(o.Renderer, nr.result, f)
			if err != nil {
				return nil, fmt.Errorf("variants: render %s/%s: %w", nr.name, f, err)
			}
			path := o.OutputPath(nr.name, f)
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return nil, fmt.Errorf("variants: create %q: %w", filepath.Dir(path), err)
			}
			if err := os.WriteFile(path, []byte(markup), 0o644); err != nil {
				return nil, fmt.Errorf("variants: write %q: %w", path, err)
			}
			w := Written{Name: nr.name, Flavor: f, Path: path, Bytes: len(markup)}
			written = append(written, w)
			o.log.Info("wrote variant",
				slog.String("name", w.Name),
				slog.String("flavor", string(w.Flavor)),
				slog.String("path", w.Path),
				slog.Int("bytes", w.Bytes))
		}
	}
	return written, nil
}

// expand produces the named results in their fixed enumeration order:
// the base, one per locale, the synthetic error path, and the
// single-category narrowing of the base.
func (o *Orchestrator) expand(ctx context.Context, base *report.Result) ([]namedResult, error) {
	named := []namedResult{{BaseName, base}}

	locales, err := locale.Expand(base, o.Locales, o.Translator)
	if err != nil {
		return nil, fmt.Errorf("variants: %w", err)
	}
	for _, v := range locales {
		named = append(named, namedResult{v.Name, v.Result})
	}

	errResult, err := errorpath.Build(ctx, o.Runner)
	if err != nil {
		return nil, fmt.Errorf("variants: %w", err)
	}
	named = append(named, namedResult{ErrorName, errResult})

	named = append(named, namedResult{SingleCategoryName, report.TrimForEmbedding(base)})
	return named, nil
}
