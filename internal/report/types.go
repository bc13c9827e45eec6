// Package report defines the canonical audit-result document (the
// "Result") produced by a page-analysis run, plus the pure document
// transforms the variant pipeline is built on: structural cloning,
// single-category narrowing and audit-reference resolution.
package report

// Score display modes for an audit result.
const (
	ModeBinary        = "binary"
	ModeNumeric       = "numeric"
	ModeInformative   = "informative"
	ModeNotApplicable = "notApplicable"
	ModeManual        = "manual"
	ModeError         = "error"
)

// Detail payload type tags.
const (
	DetailsScreenshot         = "screenshot"
	DetailsFullPageScreenshot = "full-page-screenshot"
	DetailsTreemap            = "treemap-data"
)

// PerformanceCategoryID is the category the embeddable lab-data view is
// narrowed to.
const PerformanceCategoryID = "performance"

// BudgetAuditID is the dedicated performance-budget audit removed when
// narrowing for embedding (the embedded product has no budget feature).
const BudgetAuditID = "performance-budget"

// Result is the canonical document describing one completed page audit.
type Result struct {
	RequestedURL string `json:"requestedUrl,omitempty"`
	FinalURL     string `json:"finalUrl,omitempty"`
	FetchTime    string `json:"fetchTime,omitempty"`

	Categories     map[string]*Category     `json:"categories"`
	Audits         map[string]*AuditResult  `json:"audits"`
	CategoryGroups map[string]*CategoryGroup `json:"categoryGroups,omitempty"`

	ConfigSettings *ConfigSettings `json:"configSettings,omitempty"`
	I18n           *I18n           `json:"i18n,omitempty"`

	RunWarnings []string `json:"runWarnings,omitempty"`
}

// Category is one scored section of the report. Score is nil when the
// category could not be scored (e.g. the page never loaded).
type Category struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Score       *float64   `json:"score"`
	AuditRefs   []AuditRef `json:"auditRefs"`
}

// AuditRef points a category at an audit by id. Result is nil in a raw
// document; Prepare attaches the referenced AuditResult.
type AuditRef struct {
	ID     string       `json:"id"`
	Weight float64      `json:"weight"`
	Group  string       `json:"group,omitempty"`
	Result *AuditResult `json:"result,omitempty"`
}

// AuditResult is the outcome of a single audit.
type AuditResult struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Description      string   `json:"description,omitempty"`
	Score            *float64 `json:"score"`
	ScoreDisplayMode string   `json:"scoreDisplayMode"`
	DisplayValue     string   `json:"displayValue,omitempty"`
	Warnings         []string `json:"warnings,omitempty"`
	ErrorMessage     string   `json:"errorMessage,omitempty"`
	Details          *Details `json:"details,omitempty"`
}

// Details is the tagged detail payload of an audit, discriminated by
// Type. Screenshot payloads carry Data (a data URI); full-page
// screenshots additionally carry dimensions; treemap payloads carry the
// size-breakdown node tree.
type Details struct {
	Type   string        `json:"type"`
	Data   string        `json:"data,omitempty"`
	Width  int           `json:"width,omitempty"`
	Height int           `json:"height,omitempty"`
	Nodes  []TreemapNode `json:"nodes,omitempty"`
}

// TreemapNode is one entry of a script size-breakdown tree.
type TreemapNode struct {
	Name          string        `json:"name"`
	ResourceBytes int64         `json:"resourceBytes"`
	Children      []TreemapNode `json:"children,omitempty"`
}

// CategoryGroup titles a cluster of audit references within a category.
type CategoryGroup struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// MetricsGroupID is the group whose heading the lab-data extractor
// overrides for the embedded view.
const MetricsGroupID = "metrics"

// ConfigSettings records the settings the run was performed with.
type ConfigSettings struct {
	Locale         string   `json:"locale,omitempty"`
	FormFactor     string   `json:"formFactor,omitempty"`
	AuditMode      string   `json:"auditMode,omitempty"`
	OnlyCategories []string `json:"onlyCategories,omitempty"`
}

// I18n carries the locale tag and the strings the renderer needs in
// that locale.
type I18n struct {
	Locale                   string           `json:"locale,omitempty"`
	RendererFormattedStrings *RendererStrings `json:"rendererFormattedStrings,omitempty"`
}

// RendererStrings are the fixed UI strings the renderer emits verbatim.
type RendererStrings struct {
	VarianceDisclaimer       string `json:"varianceDisclaimer,omitempty"`
	ErrorLabel               string `json:"errorLabel,omitempty"`
	WarningHeader            string `json:"warningHeader,omitempty"`
	PassedAuditsGroupTitle   string `json:"passedAuditsGroupTitle,omitempty"`
	NotApplicableAuditsTitle string `json:"notApplicableAuditsGroupTitle,omitempty"`
	ScoreScaleLabel          string `json:"scorescaleLabel,omitempty"`
	ToplevelWarningsMessage  string `json:"toplevelWarningsMessage,omitempty"`
}

// Float returns a pointer to v, for building nullable scores inline.
func Float(v float64) *float64 { return &v }
