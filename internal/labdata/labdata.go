// Package labdata derives the embeddable lab-data view from a full
// Result: a narrowed performance rendering plus the fragments a host
// page embeds directly.
//
// Extraction is a two-phase protocol. Prepare builds the Bundle from a
// Result without touching any host state; Install attaches the deferred
// page features to a host container once the caller decides the
// fragments are live. The caller owns the bundle's lifetime and must
// install at most once.
package labdata

import (
	"encoding/json"
	"fmt"

	"golang.org/x/net/html"

	"beacon/internal/report"
)

// CategoryRenderer is the single-category fragment collaborator.
type CategoryRenderer interface {
	RenderCategory(cat *report.Category, groups map[string]*report.CategoryGroup, env string) (string, error)
}

// Audit ids the extractor inspects.
const (
	finalScreenshotAuditID    = "final-screenshot"
	fullPageScreenshotAuditID = "full-page-screenshot"
	treemapAuditID            = "script-treemap-data"
)

// Fixed presentation override for the metrics group heading in the
// embedded view.
const (
	labDataTitle       = "Lab data"
	labDataDescription = "Lab data is collected in a controlled environment with predefined device and network settings."
)

// Host-page structural classes Install relies on.
const (
	overlayContainerClass = "bn-overlay-container"
	metricsButtonClass    = "bn-metrics-button-area"
)

// NewHost builds a detached host container with the structural children
// Install expects. Callers embedding outside a full host page (CLI
// extraction, tool responses) install into this.
func NewHost() *html.Node {
	host := newElement("div", html.Attribute{Key: "class", Val: "bn-labdata-host"})
	host.AppendChild(newElement("div", html.Attribute{Key: "class", Val: overlayContainerClass}))
	host.AppendChild(newElement("div", html.Attribute{Key: "class", Val: metricsButtonClass}))
	return host
}

// envPSI is the environment discriminator passed to the category
// renderer so it omits the category header and permalink.
const envPSI = "psi"

// Renderer structural classes the extractor edits. Their presence in
// the rendered fragment is part of the renderer's output contract.
const (
	scoreGaugeClass   = "bn-score__gauge"
	gaugeWrapperClass = "bn-gauge__wrapper"
	gaugeHugeClass    = "bn-gauge__wrapper--huge"
	scoreScaleClass   = "bn-scorescale"
)

// Bundle is the lab-data extract: renderable fragments plus the
// deferred install routine state. FinalScreenshot is the data URI of
// the page's final screenshot, or "" when no screenshot is available
// (an explicit non-fatal outcome, not an error).
type Bundle struct {
	ScoreGauge          *html.Node
	PerformanceCategory *html.Node
	ScoreScale          *html.Node
	FinalScreenshot     string

	// Strings is the formatting context the fragments were rendered
	// against, returned to the caller rather than installed into any
	// shared renderer state.
	Strings *report.RendererStrings

	fullPageScreenshot *report.Details
	original           *report.Result
	installed          bool
}

// Prepare normalizes the full (untrimmed) Result and extracts the
// lab-data bundle. A Result without a performance category or without
// category groups is a precondition violation and fails fatally. The
// input Result is never mutated.
func Prepare(r *report.Result, rd CategoryRenderer) (*Bundle, error) {
	prepared, err := report.Prepare(r)
	if err != nil {
		return nil, fmt.Errorf("labdata: %w", err)
	}

	perf := prepared.Categories[report.PerformanceCategoryID]
	if perf == nil {
		return nil, fmt.Errorf("labdata: result has no %s category", report.PerformanceCategoryID)
	}
	if prepared.CategoryGroups == nil {
		return nil, fmt.Errorf("labdata: result has no category groups")
	}

	// Presentation override for the embedded context, applied to the
	// prepared clone so the caller's document keeps its own heading.
	if metrics := prepared.CategoryGroups[report.MetricsGroupID]; metrics != nil {
		metrics.Title = labDataTitle
		metrics.Description = labDataDescription
	}

	bundle := &Bundle{original: r.Clone()}
	if prepared.I18n != nil {
		bundle.Strings = prepared.I18n.RendererFormattedStrings
	}

	if fps := prepared.Audits[fullPageScreenshotAuditID]; fps != nil &&
		fps.Details != nil && fps.Details.Type == report.DetailsFullPageScreenshot {
		bundle.fullPageScreenshot = fps.Details
	}

	markup, err := rd.RenderCategory(perf, prepared.CategoryGroups, envPSI)
	if err != nil {
		return nil, fmt.Errorf("labdata: render category: %w", err)
	}
	frag, err := parseFragment(markup)
	if err != nil {
		return nil, err
	}

	gauge := findByClass(frag, scoreGaugeClass)
	if gauge == nil {
		return nil, fmt.Errorf("labdata: rendered category has no %s element", scoreGaugeClass)
	}
	detach(gauge)
	wrapper := findByClass(gauge, gaugeWrapperClass)
	if wrapper == nil {
		return nil, fmt.Errorf("labdata: score gauge has no %s element", gaugeWrapperClass)
	}
	addClass(wrapper, gaugeHugeClass)
	removeAttr(wrapper, "href")

	scale := findByClass(frag, scoreScaleClass)
	if scale == nil {
		return nil, fmt.Errorf("labdata: rendered category has no %s element", scoreScaleClass)
	}
	detach(scale)

	bundle.ScoreGauge = gauge
	bundle.ScoreScale = scale
	bundle.PerformanceCategory = frag
	bundle.FinalScreenshot = finalScreenshot(perf)
	return bundle, nil
}

// finalScreenshot extracts the final-screenshot data URI from the
// performance category's references. Missing reference, error display
// mode, or absent/mistyped details all yield "".
func finalScreenshot(perf *report.Category) string {
	for _, ref := range perf.AuditRefs {
		if ref.ID != finalScreenshotAuditID {
			continue
		}
		a := ref.Result
		if a == nil || a.ScoreDisplayMode == report.ModeError {
			return ""
		}
		if a.Details == nil || a.Details.Type != report.DetailsScreenshot {
			return ""
		}
		return a.Details.Data
	}
	return ""
}

// Install attaches the deferred page features to a live host container,
// in order: the page-level screenshot backing, the screenshot overlay,
// and the size-breakdown control. The overlay is a visually independent
// copy and gets its own screenshot backing on top of the container's;
// that duplication is intentional. May be called at most once per
// bundle.
//
// A missing overlay container when a full-page screenshot was captured
// is a fatal host-page authoring error. A missing metrics-button area
// or absent treemap audit simply skips the control.
func (b *Bundle) Install(container *html.Node) error {
	if b.installed {
		return fmt.Errorf("labdata: bundle already installed")
	}
	if container == nil {
		return fmt.Errorf("labdata: nil install container")
	}
	b.installed = true

	if b.fullPageScreenshot != nil {
		installScreenshotFeature(container, b.fullPageScreenshot)

		overlayHost := findByClass(container, overlayContainerClass)
		if overlayHost == nil {
			return fmt.Errorf("labdata: host page has no %s element", overlayContainerClass)
		}
		overlay := newElement("div", html.Attribute{Key: "class", Val: "bn-screenshot-overlay"})
		overlayHost.AppendChild(overlay)
		installOverlayFeature(overlay, container)
		installScreenshotFeature(overlay, b.fullPageScreenshot)
	}

	if treemap := b.original.Audits[treemapAuditID]; treemap != nil && treemap.Details != nil {
		if area := findByClass(container, metricsButtonClass); area != nil {
			if err := attachTreemapControl(area, b.original); err != nil {
				return err
			}
		}
	}
	return nil
}

// installScreenshotFeature backs el with the full-page screenshot data.
func installScreenshotFeature(el *html.Node, d *report.Details) {
	addClass(el, "bn-screenshot-host")
	setAttr(el, "data-bn-screenshot", d.Data)
	setAttr(el, "data-bn-screenshot-width", fmt.Sprintf("%d", d.Width))
	setAttr(el, "data-bn-screenshot-height", fmt.Sprintf("%d", d.Height))
}

// installOverlayFeature wires the zoom overlay to its trigger scope.
func installOverlayFeature(overlay, scope *html.Node) {
	addClass(overlay, "bn-screenshot-overlay--zoom")
	if id := getAttr(scope, "id"); id != "" {
		setAttr(overlay, "data-bn-overlay-for", id)
	}
}

// attachTreemapControl adds the size-breakdown control. The control
// carries the original, untrimmed Result: the budget-trimmed embedded
// document is for display only, detail views run over the full one.
func attachTreemapControl(area *html.Node, original *report.Result) error {
	payload, err := json.Marshal(original)
	if err != nil {
		return fmt.Errorf("labdata: marshal treemap payload: %w", err)
	}
	button := newElement("button",
		html.Attribute{Key: "class", Val: "bn-button bn-treemap-button"},
		html.Attribute{Key: "data-bn-treemap-result", Val: string(payload)},
	)
	label := &html.Node{Type: html.TextNode, Data: "View Treemap"}
	button.AppendChild(label)
	area.AppendChild(button)
	return nil
}
