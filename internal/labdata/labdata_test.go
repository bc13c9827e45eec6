package labdata

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"beacon/internal/render"
	"beacon/internal/report"
)

func TestPrepare_Bundle(t *testing.T) {
	bundle, err := Prepare(report.Sample(), render.New())
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}

	if bundle.ScoreGauge == nil || bundle.PerformanceCategory == nil || bundle.ScoreScale == nil {
		t.Fatal("bundle is missing fragments")
	}

	// Gauge was detached from the category fragment.
	if findByClass(bundle.PerformanceCategory, scoreGaugeClass) != nil {
		t.Error("score gauge still attached to the category fragment")
	}
	if findByClass(bundle.PerformanceCategory, scoreScaleClass) != nil {
		t.Error("score scale still attached to the category fragment")
	}

	wrapper := findByClass(bundle.ScoreGauge, gaugeWrapperClass)
	if wrapper == nil {
		t.Fatal("detached gauge lost its wrapper")
	}
	if !hasClass(wrapper, gaugeHugeClass) {
		t.Error("gauge wrapper missing the huge size variant")
	}
	if getAttr(wrapper, "href") != "" {
		t.Error("gauge wrapper still carries a navigation link")
	}

	if want := "data:image/jpeg;base64,ZmluYWw="; bundle.FinalScreenshot != want {
		t.Errorf("FinalScreenshot = %q, want %q", bundle.FinalScreenshot, want)
	}

	if bundle.Strings == nil || bundle.Strings.ScoreScaleLabel != "score scale:" {
		t.Error("bundle does not carry the formatting context")
	}
}

func TestPrepare_MetricsGroupOverride(t *testing.T) {
	base := report.Sample()
	bundle, err := Prepare(base, render.New())
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	markup, err := RenderFragment(bundle.PerformanceCategory)
	if err != nil {
		t.Fatalf("RenderFragment: %v", err)
	}
	if !strings.Contains(markup, labDataTitle) {
		t.Error("embedded fragment does not use the lab-data heading")
	}
	if got := base.CategoryGroups[report.MetricsGroupID].Title; got != "Metrics" {
		t.Errorf("caller's metrics group title = %q, want Metrics", got)
	}
}

func TestPrepare_DoesNotMutateInput(t *testing.T) {
	base := report.Sample()
	if _, err := Prepare(base, render.New()); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if diff := cmp.Diff(report.Sample(), base); diff != "" {
		t.Errorf("input mutated (-want +got):\n%s", diff)
	}
}

func TestPrepare_Preconditions(t *testing.T) {
	tests := []struct {
		name string
		edit func(*report.Result)
	}{
		{"no performance category", func(r *report.Result) {
			delete(r.Categories, report.PerformanceCategoryID)
		}},
		{"no category groups", func(r *report.Result) {
			r.CategoryGroups = nil
			for id, cat := range r.Categories {
				for i := range cat.AuditRefs {
					cat.AuditRefs[i].Group = ""
				}
				r.Categories[id] = cat
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := report.Sample()
			tt.edit(r)
			if _, err := Prepare(r, render.New()); err == nil {
				t.Error("Prepare should fail")
			}
		})
	}
}

func TestFinalScreenshot(t *testing.T) {
	tests := []struct {
		name string
		edit func(*report.Result)
		want string
	}{
		{"present", func(r *report.Result) {
			r.Audits[finalScreenshotAuditID].ScoreDisplayMode = report.ModeBinary
			r.Audits[finalScreenshotAuditID].Details = &report.Details{Type: report.DetailsScreenshot, Data: "abc"}
		}, "abc"},
		{"error display mode", func(r *report.Result) {
			r.Audits[finalScreenshotAuditID].ScoreDisplayMode = report.ModeError
		}, ""},
		{"no details", func(r *report.Result) {
			r.Audits[finalScreenshotAuditID].Details = nil
		}, ""},
		{"wrong details type", func(r *report.Result) {
			r.Audits[finalScreenshotAuditID].Details = &report.Details{Type: report.DetailsTreemap}
		}, ""},
		{"no reference", func(r *report.Result) {
			perf := r.Categories[report.PerformanceCategoryID]
			kept := perf.AuditRefs[:0]
			for _, ref := range perf.AuditRefs {
				if ref.ID != finalScreenshotAuditID {
					kept = append(kept, ref)
				}
			}
			perf.AuditRefs = kept
		}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := report.Sample()
			tt.edit(r)
			bundle, err := Prepare(r, render.New())
			if err != nil {
				t.Fatalf("Prepare: %v", err)
			}
			if bundle.FinalScreenshot != tt.want {
				t.Errorf("FinalScreenshot = %q, want %q", bundle.FinalScreenshot, tt.want)
			}
		})
	}
}

// hostContainer builds the host page structure Install expects.
func hostContainer(t *testing.T, withOverlay bool) *html.Node {
	t.Helper()
	container := newElement("div", html.Attribute{Key: "id", Val: "bn-labdata-host"})
	if withOverlay {
		container.AppendChild(newElement("div", html.Attribute{Key: "class", Val: overlayContainerClass}))
	}
	container.AppendChild(newElement("div", html.Attribute{Key: "class", Val: metricsButtonClass}))
	return container
}

func TestInstall_Full(t *testing.T) {
	bundle, err := Prepare(report.Sample(), render.New())
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	container := hostContainer(t, true)
	if err := bundle.Install(container); err != nil {
		t.Fatalf("Install: %v", err)
	}

	if !hasClass(container, "bn-screenshot-host") {
		t.Error("container missing page-level screenshot backing")
	}

	overlayHost := findByClass(container, overlayContainerClass)
	overlay := findByClass(overlayHost, "bn-screenshot-overlay")
	if overlay == nil {
		t.Fatal("no overlay appended to the overlay container")
	}
	if !hasClass(overlay, "bn-screenshot-overlay--zoom") {
		t.Error("overlay missing zoom feature")
	}
	// The overlay gets its own screenshot backing, separate from the
	// container's.
	if !hasClass(overlay, "bn-screenshot-host") {
		t.Error("overlay missing its own screenshot backing")
	}

	button := findByClass(container, "bn-treemap-button")
	if button == nil {
		t.Fatal("treemap control not attached")
	}
	var embedded report.Result
	if err := json.Unmarshal([]byte(getAttr(button, "data-bn-treemap-result")), &embedded); err != nil {
		t.Fatalf("unmarshal treemap payload: %v", err)
	}
	// Detail views run over the original, untrimmed Result.
	if _, ok := embedded.Categories["seo"]; !ok {
		t.Error("treemap payload lost non-performance categories; want the untrimmed Result")
	}
	if _, ok := embedded.Audits[report.BudgetAuditID]; !ok {
		t.Error("treemap payload lost the budget audit; want the untrimmed Result")
	}
}

func TestInstall_AtMostOnce(t *testing.T) {
	bundle, err := Prepare(report.Sample(), render.New())
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	container := hostContainer(t, true)
	if err := bundle.Install(container); err != nil {
		t.Fatalf("first Install: %v", err)
	}
	if err := bundle.Install(container); err == nil {
		t.Error("second Install should fail")
	}
}

func TestInstall_MissingOverlayContainerIsFatal(t *testing.T) {
	bundle, err := Prepare(report.Sample(), render.New())
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if err := bundle.Install(hostContainer(t, false)); err == nil {
		t.Error("Install should fail when the overlay container is absent")
	}
}

func TestInstall_NoFullPageScreenshot(t *testing.T) {
	r := report.Sample()
	r.Audits[fullPageScreenshotAuditID].Details = nil
	bundle, err := Prepare(r, render.New())
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	// No overlay container either: without a captured screenshot that
	// must not matter.
	container := hostContainer(t, false)
	if err := bundle.Install(container); err != nil {
		t.Fatalf("Install: %v", err)
	}
	if hasClass(container, "bn-screenshot-host") {
		t.Error("screenshot feature installed without a captured screenshot")
	}
	if findByClass(container, "bn-treemap-button") == nil {
		t.Error("treemap control should still be attached")
	}
}

func TestParseFragment(t *testing.T) {
	n, err := parseFragment(`<div class="a"><span class="b">x</span></div>`)
	if err != nil {
		t.Fatalf("parseFragment: %v", err)
	}
	if n.DataAtom != atom.Div {
		t.Errorf("root = %v, want div", n.Data)
	}
	if findByClass(n, "b") == nil {
		t.Error("child element not reachable")
	}
}
