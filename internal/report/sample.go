package report

// Sample returns a representative Result covering the document surface
// the pipeline exercises: a weighted performance category with metric
// and budget references, screenshot and treemap detail payloads, and a
// second category so narrowing has something to drop. Used as the
// default input of the build command and as the base fixture in tests.
func Sample() *Result {
	return &Result{
		RequestedURL: "https://example.com/",
		FinalURL:     "https://example.com/",
		FetchTime:    "2026-08-25T10:00:00.000Z",
		Categories: map[string]*Category{
			PerformanceCategoryID: {
				ID:    PerformanceCategoryID,
				Title: "Performance",
				Score: Float(0.87),
				AuditRefs: []AuditRef{
					{ID: "first-contentful-paint", Weight: 10, Group: MetricsGroupID},
					{ID: "speed-index", Weight: 10, Group: MetricsGroupID},
					{ID: "interactive", Weight: 10, Group: MetricsGroupID},
					{ID: "offscreen-images", Weight: 0, Group: "load-opportunities"},
					{ID: "modern-image-formats", Weight: 0, Group: "load-opportunities"},
					{ID: "errors-in-console", Weight: 0, Group: "diagnostics"},
					{ID: BudgetAuditID, Weight: 0, Group: "budgets"},
					{ID: "timing-budget", Weight: 0, Group: "budgets"},
					{ID: "final-screenshot", Weight: 0},
					{ID: "full-page-screenshot", Weight: 0},
					{ID: "script-treemap-data", Weight: 0},
				},
			},
			"seo": {
				ID:    "seo",
				Title: "SEO",
				Score: Float(0.92),
				AuditRefs: []AuditRef{
					{ID: "document-title", Weight: 1},
				},
			},
		},
		Audits: map[string]*AuditResult{
			"first-contentful-paint": {
				ID: "first-contentful-paint", Title: "First Contentful Paint",
				Score: Float(0.92), ScoreDisplayMode: ModeNumeric, DisplayValue: "1.2 s",
			},
			"speed-index": {
				ID: "speed-index", Title: "Speed Index",
				Score: Float(0.88), ScoreDisplayMode: ModeNumeric, DisplayValue: "2.1 s",
			},
			"interactive": {
				ID: "interactive", Title: "Time to Interactive",
				Score: Float(0.8), ScoreDisplayMode: ModeNumeric, DisplayValue: "3.4 s",
			},
			"offscreen-images": {
				ID: "offscreen-images", Title: "Defer offscreen images",
				Score: Float(1), ScoreDisplayMode: ModeBinary,
			},
			"modern-image-formats": {
				ID: "modern-image-formats", Title: "Serve images in next-gen formats",
				Score: Float(1), ScoreDisplayMode: ModeBinary,
			},
			"errors-in-console": {
				ID: "errors-in-console", Title: "No browser errors logged to the console",
				Score: Float(1), ScoreDisplayMode: ModeBinary,
			},
			BudgetAuditID: {
				ID: BudgetAuditID, Title: "Performance budget",
				Score: nil, ScoreDisplayMode: ModeInformative,
			},
			"timing-budget": {
				ID: "timing-budget", Title: "Timing budget",
				Score: nil, ScoreDisplayMode: ModeInformative,
			},
			"final-screenshot": {
				ID: "final-screenshot", Title: "Final Screenshot",
				Score: nil, ScoreDisplayMode: ModeInformative,
				Details: &Details{Type: DetailsScreenshot, Data: "data:image/jpeg;base64,ZmluYWw="},
			},
			"full-page-screenshot": {
				ID: "full-page-screenshot", Title: "Full-page screenshot",
				Score: nil, ScoreDisplayMode: ModeInformative,
				Details: &Details{
					Type: DetailsFullPageScreenshot,
					Data: "data:image/jpeg;base64,ZnVsbHBhZ2U=", Width: 412, Height: 2840,
				},
			},
			"script-treemap-data": {
				ID: "script-treemap-data", Title: "Script Treemap Data",
				Score: nil, ScoreDisplayMode: ModeInformative,
				Details: &Details{
					Type: DetailsTreemap,
					Nodes: []TreemapNode{
						{Name: "https://example.com/app.js", ResourceBytes: 103421, Children: []TreemapNode{
							{Name: "vendor", ResourceBytes: 81200},
							{Name: "main", ResourceBytes: 22221},
						}},
					},
				},
			},
			"document-title": {
				ID: "document-title", Title: "Document has a title element",
				Score: Float(1), ScoreDisplayMode: ModeBinary,
			},
		},
		CategoryGroups: map[string]*CategoryGroup{
			MetricsGroupID:       {Title: "Metrics"},
			"load-opportunities": {Title: "Opportunities", Description: "Suggestions to speed up page load."},
			"diagnostics":        {Title: "Diagnostics", Description: "More information about performance."},
			"budgets":            {Title: "Budgets", Description: "Performance budgets set standards for site performance."},
		},
		ConfigSettings: &ConfigSettings{Locale: "en-US", FormFactor: "mobile"},
		I18n: &I18n{
			Locale: "en-US",
			RendererFormattedStrings: &RendererStrings{
				VarianceDisclaimer:       "Values are estimated and may vary.",
				ErrorLabel:               "Error!",
				WarningHeader:            "Warnings: ",
				PassedAuditsGroupTitle:   "Passed audits",
				NotApplicableAuditsTitle: "Not applicable",
				ScoreScaleLabel:          "score scale:",
				ToplevelWarningsMessage:  "There were issues affecting this run.",
			},
		},
	}
}
