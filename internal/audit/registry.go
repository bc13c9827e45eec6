package audit

import "beacon/internal/report"

// metricCurve scores a millisecond timing: at or below Good scores 1,
// at or above Poor scores 0, linear in between.
type metricCurve struct {
	Good float64
	Poor float64
}

func (c metricCurve) score(ms float64) float64 {
	switch {
	case ms <= c.Good:
		return 1
	case ms >= c.Poor:
		return 0
	default:
		return (c.Poor - ms) / (c.Poor - c.Good)
	}
}

// auditDef is one registry entry: what the audit is called, where it
// sits in the performance category, and how it is scored.
type auditDef struct {
	ID     string
	Title  string
	Group  string
	Weight float64
}

// perfAudits is the fixed performance audit registry, in category
// reference order.
var perfAudits = []auditDef{
	{ID: "first-contentful-paint", Title: "First Contentful Paint", Group: report.MetricsGroupID, Weight: 10},
	{ID: "speed-index", Title: "Speed Index", Group: report.MetricsGroupID, Weight: 10},
	{ID: "interactive", Title: "Time to Interactive", Group: report.MetricsGroupID, Weight: 10},
	{ID: "offscreen-images", Title: "Defer offscreen images", Group: "load-opportunities"},
	{ID: "modern-image-formats", Title: "Serve images in next-gen formats", Group: "load-opportunities"},
	{ID: "errors-in-console", Title: "No browser errors logged to the console", Group: "diagnostics"},
	{ID: report.BudgetAuditID, Title: "Performance budget", Group: "budgets"},
	{ID: "timing-budget", Title: "Timing budget", Group: "budgets"},
	{ID: "final-screenshot", Title: "Final Screenshot"},
	{ID: "full-page-screenshot", Title: "Full-page screenshot"},
	{ID: "script-treemap-data", Title: "Script Treemap Data"},
}

var metricCurves = map[string]metricCurve{
	"first-contentful-paint": {Good: 1800, Poor: 6000},
	"speed-index":            {Good: 3400, Poor: 11000},
	"interactive":            {Good: 3800, Poor: 12500},
}

// categoryGroups is the fixed group metadata emitted with every Result.
var categoryGroups = map[string]*report.CategoryGroup{
	report.MetricsGroupID: {Title: "Metrics"},
	"load-opportunities":  {Title: "Opportunities", Description: "Suggestions to speed up page load."},
	"diagnostics":         {Title: "Diagnostics", Description: "More information about performance."},
	"budgets":             {Title: "Budgets", Description: "Performance budgets set standards for site performance."},
}

// rendererStrings are the en-US UI strings attached to every Result.
var rendererStrings = report.RendererStrings{
	VarianceDisclaimer:       "Values are estimated and may vary.",
	ErrorLabel:               "Error!",
	WarningHeader:            "Warnings: ",
	PassedAuditsGroupTitle:   "Passed audits",
	NotApplicableAuditsTitle: "Not applicable",
	ScoreScaleLabel:          "score scale:",
	ToplevelWarningsMessage:  "There were issues affecting this run.",
}
