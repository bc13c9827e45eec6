package flavor

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"beacon/internal/report"
)

// The PSI host template carries three placeholder tokens. Their
// presence is a template-authoring invariant (the template is embedded
// in this package), not a runtime check.
const (
	tokenJSON = "%%REPORT_JSON%%"
	tokenJS   = "%%REPORT_JAVASCRIPT%%"
	tokenCSS  = "%%REPORT_CSS%%"
)

//go:embed assets/psi-host.html
var psiHostTemplate string

//go:embed assets/psi.js
var psiScript string

//go:embed assets/psi.css
var psiStyles string

// renderPSI does not use the generic renderer: it narrows the Result to
// the embeddable single-category view, serializes it to a
// script-safe JSON string and substitutes it plus the supporting
// script/style payloads into the host template.
func renderPSI(r *report.Result) (string, error) {
	trimmed := report.TrimForEmbedding(r)

	// encoding/json escapes <, > and & by default, which is exactly
	// the sanitization an inline <script> payload needs.
	payload, err := json.Marshal(trimmed)
	if err != nil {
		return "", fmt.Errorf("flavor: marshal embeddable result: %w", err)
	}

	html := psiHostTemplate
	html = strings.ReplaceAll(html, tokenJSON, string(payload))
	html = strings.ReplaceAll(html, tokenJS, psiScript)
	html = strings.ReplaceAll(html, tokenCSS, psiStyles)
	return html, nil
}
