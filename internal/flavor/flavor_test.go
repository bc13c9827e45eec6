package flavor

import (
	"encoding/json"
	"regexp"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"beacon/internal/render"
	"beacon/internal/report"
)

func TestRender_Plain(t *testing.T) {
	html, err := Render(render.New(), report.Sample(), Plain)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(html, `class="bn-root bn-devtools`) {
		t.Error("plain flavor must not carry the devtools scope marker")
	}
}

func TestRender_DevtoolsScopeMarker(t *testing.T) {
	html, err := Render(render.New(), report.Sample(), Devtools)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(html, `class="bn-root bn-devtools`) {
		t.Error("devtools flavor missing scope marker on root container")
	}
	if got := strings.Count(html, `class="bn-root bn-devtools`); got != 1 {
		t.Errorf("scope marker substituted %d times, want 1", got)
	}
}

func TestRender_PSI(t *testing.T) {
	html, err := Render(render.New(), report.Sample(), PSI)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	for _, token := range []string{"%%REPORT_JSON%%", "%%REPORT_JAVASCRIPT%%", "%%REPORT_CSS%%"} {
		if strings.Contains(html, token) {
			t.Errorf("placeholder %s left unsubstituted", token)
		}
	}

	// The embedded payload is the narrowed Result.
	m := regexp.MustCompile(`window\.__BEACON_RESULT__ = (.*);`).FindStringSubmatch(html)
	if m == nil {
		t.Fatal("embedded result payload not found")
	}
	var embedded report.Result
	if err := json.Unmarshal([]byte(m[1]), &embedded); err != nil {
		t.Fatalf("unmarshal embedded payload: %v", err)
	}
	want := report.TrimForEmbedding(report.Sample())
	if diff := cmp.Diff(want, &embedded); diff != "" {
		t.Errorf("embedded payload differs from trimmed Result (-want +got):\n%s", diff)
	}
}

func TestRender_PSIPayloadIsScriptSafe(t *testing.T) {
	r := report.Sample()
	r.Audits["errors-in-console"].Description = "no </script> injection"
	html, err := Render(render.New(), r, PSI)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(html, "</script> injection") {
		t.Error("embedded payload contains an unescaped closing script tag")
	}
}

func TestPathPrefix(t *testing.T) {
	tests := []struct {
		flavor Flavor
		want   string
	}{
		{Plain, ""},
		{Devtools, "devtools-"},
		{PSI, "psi-"},
	}
	for _, tt := range tests {
		if got := tt.flavor.PathPrefix(); got != tt.want {
			t.Errorf("PathPrefix(%s) = %q, want %q", tt.flavor, got, tt.want)
		}
	}
}

func TestRender_UnknownFlavor(t *testing.T) {
	if _, err := Render(render.New(), report.Sample(), Flavor("spa")); err == nil {
		t.Error("Render should reject an unknown flavor")
	}
}
