// Package flavor turns a Result into environment-specific markup: the
// plain standalone report, the devtools-embedded report, and the
// PSI-embeddable single-category report.
package flavor

import (
	"fmt"
	"strings"

	"beacon/internal/report"
)

// Flavor tags one rendering environment.
type Flavor string

const (
	Plain    Flavor = "plain"
	Devtools Flavor = "devtools-embed"
	PSI      Flavor = "psi-embed"
)

// All enumerates the flavors in their fixed output order.
var All = []Flavor{Plain, Devtools, PSI}

// PathPrefix is the output-directory prefix for this flavor: empty for
// the plain report, a short tag for the embedded ones.
func (f Flavor) PathPrefix() string {
	switch f {
	case Devtools:
		return "devtools-"
	case PSI:
		return "psi-"
	default:
		return ""
	}
}

// Renderer is the generic whole-document markup collaborator.
type Renderer interface {
	RenderHTML(r *report.Result) (string, error)
}

// devtoolsMarker tags the root container with the devtools style scope.
// A pure post-processing substitution; the renderer itself stays
// environment-agnostic.
const (
	rootClassAttr     = `class="bn-root`
	devtoolsClassAttr = `class="bn-root bn-devtools`
)

// Render produces the markup for one (Result, flavor) pair.
func Render(rd Renderer, r *report.Result, f Flavor) (string, error) {
	switch f {
	case Plain:
		return rd.RenderHTML(r)
	case Devtools:
		html, err := rd.RenderHTML(r)
		if err != nil {
			return "", err
		}
		return strings.Replace(html, rootClassAttr, devtoolsClassAttr, 1), nil
	case PSI:
		return renderPSI(r)
	default:
		return "", fmt.Errorf("flavor: unknown flavor %q", f)
	}
}
