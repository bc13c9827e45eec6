package audit

import (
	"context"
	"fmt"
	"log/slog"

	"beacon/internal/logging"
	"beacon/internal/report"
)

// Options configures one audit execution. AuditDir points at a
// directory of previously gathered artifacts; execution never touches a
// live page.
type Options struct {
	AuditDir string
}

// RunResult wraps the produced Result document.
type RunResult struct {
	Result *report.Result
}

// Runner executes the scoring engine in audit-only mode.
type Runner interface {
	Run(ctx context.Context, url string, opts Options) (*RunResult, error)
}

// Engine is the default Runner: it loads BaseArtifacts from the audit
// directory and scores them into a Result.
type Engine struct {
	log *slog.Logger
}

// NewEngine returns a ready Engine.
func NewEngine() *Engine {
	return &Engine{log: logging.New("audit")}
}

// Run scores the artifacts in opts.AuditDir into a Result for url.
func (e *Engine) Run(ctx context.Context, url string, opts Options) (*RunResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts.AuditDir == "" {
		return nil, fmt.Errorf("audit: no audit dir; gather artifacts first")
	}

	artifacts, err := LoadArtifacts(opts.AuditDir)
	if err != nil {
		return nil, err
	}

	e.log.Info("audit-only run",
		slog.String("url", url),
		slog.String("auditDir", opts.AuditDir),
		slog.Bool("pageLoadError", artifacts.PageLoadError != ""))

	r := baseResult(url, artifacts)
	if artifacts.PageLoadError != "" {
		scoreErrorRun(r, artifacts)
	} else {
		scoreNormalRun(r, artifacts)
	}
	return &RunResult{Result: r}, nil
}

func baseResult(url string, a *BaseArtifacts) *report.Result {
	finalURL := a.FinalURL
	if finalURL == "" {
		finalURL = url
	}
	strs := rendererStrings
	groups := make(map[string]*report.CategoryGroup, len(categoryGroups))
	for id, g := range categoryGroups {
		gc := *g
		groups[id] = &gc
	}
	return &report.Result{
		RequestedURL:   url,
		FinalURL:       finalURL,
		FetchTime:      a.FetchTime,
		Categories:     map[string]*report.Category{},
		Audits:         map[string]*report.AuditResult{},
		CategoryGroups: groups,
		// The audit dir is a scratch location; recording it would make
		// otherwise-identical runs produce different documents.
		ConfigSettings: &report.ConfigSettings{Locale: "en-US", FormFactor: "mobile", AuditMode: "true"},
		I18n:           &report.I18n{Locale: "en-US", RendererFormattedStrings: &strs},
	}
}

// scoreErrorRun fills the Result for a page that never painted: every
// registered audit reports an error state and the category is
// unscored.
func scoreErrorRun(r *report.Result, a *BaseArtifacts) {
	msg := fmt.Sprintf("The page did not paint any content: %s", a.PageLoadError)
	refs := make([]report.AuditRef, 0, len(perfAudits))
	for _, def := range perfAudits {
		r.Audits[def.ID] = &report.AuditResult{
			ID:               def.ID,
			Title:            def.Title,
			Score:            nil,
			ScoreDisplayMode: report.ModeError,
			ErrorMessage:     msg,
		}
		refs = append(refs, report.AuditRef{ID: def.ID, Weight: def.Weight, Group: def.Group})
	}
	r.Categories[report.PerformanceCategoryID] = &report.Category{
		ID:        report.PerformanceCategoryID,
		Title:     "Performance",
		Score:     nil,
		AuditRefs: refs,
	}
	r.RunWarnings = append(r.RunWarnings, msg)
}

// scoreNormalRun fills the Result from collected artifacts.
func scoreNormalRun(r *report.Result, a *BaseArtifacts) {
	refs := make([]report.AuditRef, 0, len(perfAudits))
	for _, def := range perfAudits {
		r.Audits[def.ID] = scoreAudit(def, a)
		refs = append(refs, report.AuditRef{ID: def.ID, Weight: def.Weight, Group: def.Group})
	}

	var weighted, totalWeight float64
	for _, def := range perfAudits {
		if def.Weight == 0 {
			continue
		}
		if s := r.Audits[def.ID].Score; s != nil {
			weighted += *s * def.Weight
			totalWeight += def.Weight
		}
	}
	var catScore *float64
	if totalWeight > 0 {
		catScore = report.Float(weighted / totalWeight)
	}

	r.Categories[report.PerformanceCategoryID] = &report.Category{
		ID:        report.PerformanceCategoryID,
		Title:     "Performance",
		Score:     catScore,
		AuditRefs: refs,
	}

	// A minimal second category so whole-document renderings have
	// something the embedded narrowing drops.
	titleScore := report.Float(0)
	if a.Title != "" {
		titleScore = report.Float(1)
	}
	r.Audits["document-title"] = &report.AuditResult{
		ID: "document-title", Title: "Document has a title element",
		Score: titleScore, ScoreDisplayMode: report.ModeBinary,
	}
	r.Categories["seo"] = &report.Category{
		ID: "seo", Title: "SEO", Score: titleScore,
		AuditRefs: []report.AuditRef{{ID: "document-title", Weight: 1}},
	}
}

func scoreAudit(def auditDef, a *BaseArtifacts) *report.AuditResult {
	out := &report.AuditResult{ID: def.ID, Title: def.Title}

	if curve, ok := metricCurves[def.ID]; ok {
		ms := metricValue(def.ID, a.Metrics)
		out.ScoreDisplayMode = report.ModeNumeric
		out.Score = report.Float(curve.score(ms))
		out.DisplayValue = fmt.Sprintf("%.1f s", ms/1000)
		return out
	}

	switch def.ID {
	case "errors-in-console":
		out.ScoreDisplayMode = report.ModeBinary
		if len(a.ConsoleErrors) == 0 {
			out.Score = report.Float(1)
		} else {
			out.Score = report.Float(0)
			out.DisplayValue = fmt.Sprintf("%d errors", len(a.ConsoleErrors))
		}
	case "offscreen-images", "modern-image-formats":
		out.ScoreDisplayMode = report.ModeBinary
		out.Score = report.Float(1)
	case report.BudgetAuditID, "timing-budget":
		out.ScoreDisplayMode = report.ModeInformative
	case "final-screenshot":
		out.ScoreDisplayMode = report.ModeInformative
		if a.FinalScreenshot != "" {
			out.Details = &report.Details{Type: report.DetailsScreenshot, Data: a.FinalScreenshot}
		}
	case "full-page-screenshot":
		out.ScoreDisplayMode = report.ModeInformative
		if a.FullPageScreenshot != nil {
			d := *a.FullPageScreenshot
			d.Type = report.DetailsFullPageScreenshot
			out.Details = &d
		}
	case "script-treemap-data":
		out.ScoreDisplayMode = report.ModeInformative
		if len(a.ScriptTreemap) > 0 {
			out.Details = &report.Details{Type: report.DetailsTreemap, Nodes: a.ScriptTreemap}
		}
	default:
		out.ScoreDisplayMode = report.ModeInformative
	}
	return out
}

func metricValue(id string, m *PageMetrics) float64 {
	if m == nil {
		return 0
	}
	switch id {
	case "first-contentful-paint":
		return m.FirstContentfulPaintMs
	case "speed-index":
		return m.SpeedIndexMs
	case "interactive":
		return m.InteractiveMs
	}
	return 0
}
