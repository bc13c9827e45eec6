// Package render is the default markup renderer for Result documents.
// It implements both collaborator surfaces the variant pipeline needs:
// whole-document rendering for the environment flavors and
// single-category fragment rendering for the lab-data extractor.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"sort"
	"strconv"

	"beacon/internal/report"
)

// Environment discriminators for fragment rendering. The psi
// environment omits the category header and permalink, which an
// embedded context does not want.
const (
	EnvStandalone = "standalone"
	EnvPSI        = "psi"
)

// HTMLRenderer renders Results to HTML. The zero value is not usable;
// construct with New.
type HTMLRenderer struct {
	tmpl *template.Template
}

// New returns a ready HTMLRenderer.
func New() *HTMLRenderer {
	return &HTMLRenderer{tmpl: newTemplates()}
}

type pageData struct {
	Locale      string
	FinalURL    string
	FetchTime   string
	RunWarnings []string
	Strings     *report.RendererStrings
	Categories  []categoryData
}

type categoryData struct {
	Category   *report.Category
	ShowHeader bool
	Strings    *report.RendererStrings
	Groups     []groupData
	Ungrouped  []report.AuditRef
}

type groupData struct {
	ID          string
	Title       string
	Description string
	Refs        []report.AuditRef
}

// RenderHTML renders the complete standalone report document.
// Categories are emitted in sorted-id order so output is deterministic.
// The Result is prepared (audit references resolved) first; a malformed
// document fails the render.
func (h *HTMLRenderer) RenderHTML(r *report.Result) (string, error) {
	prepared, err := report.Prepare(r)
	if err != nil {
		return "", fmt.Errorf("render: %w", err)
	}

	uiStrings := rendererStrings(prepared)
	data := pageData{
		Locale:      localeTag(prepared),
		FinalURL:    prepared.FinalURL,
		FetchTime:   prepared.FetchTime,
		RunWarnings: prepared.RunWarnings,
		Strings:     uiStrings,
	}

	ids := make([]string, 0, len(prepared.Categories))
	for id := range prepared.Categories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		data.Categories = append(data.Categories,
			buildCategoryData(prepared.Categories[id], prepared.CategoryGroups, uiStrings, true))
	}

	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, "page", data); err != nil {
		return "", fmt.Errorf("render: execute page: %w", err)
	}
	return buf.String(), nil
}

// RenderCategory renders one prepared category (audit references must
// already carry their results) as an HTML fragment. env selects the
// rendering environment; EnvPSI drops the header and permalink.
func (h *HTMLRenderer) RenderCategory(cat *report.Category, groups map[string]*report.CategoryGroup, env string) (string, error) {
	data := buildCategoryData(cat, groups, &report.RendererStrings{ScoreScaleLabel: "score scale:"}, env != EnvPSI)
	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, "category", data); err != nil {
		return "", fmt.Errorf("render: execute category %q: %w", cat.ID, err)
	}
	return buf.String(), nil
}

// buildCategoryData partitions a category's refs by group, preserving
// the category's reference order within and across groups.
func buildCategoryData(cat *report.Category, groups map[string]*report.CategoryGroup, uiStrings *report.RendererStrings, showHeader bool) categoryData {
	data := categoryData{Category: cat, ShowHeader: showHeader, Strings: uiStrings}
	byGroup := map[string]int{}
	for _, ref := range cat.AuditRefs {
		if ref.Group == "" {
			data.Ungrouped = append(data.Ungrouped, ref)
			continue
		}
		idx, seen := byGroup[ref.Group]
		if !seen {
			g := groupData{ID: ref.Group}
			if meta := groups[ref.Group]; meta != nil {
				g.Title = meta.Title
				g.Description = meta.Description
			}
			data.Groups = append(data.Groups, g)
			idx = len(data.Groups) - 1
			byGroup[ref.Group] = idx
		}
		data.Groups[idx].Refs = append(data.Groups[idx].Refs, ref)
	}
	return data
}

func rendererStrings(r *report.Result) *report.RendererStrings {
	if r.I18n != nil && r.I18n.RendererFormattedStrings != nil {
		return r.I18n.RendererFormattedStrings
	}
	return &report.RendererStrings{}
}

func localeTag(r *report.Result) string {
	if r.I18n != nil && r.I18n.Locale != "" {
		return r.I18n.Locale
	}
	return "en"
}

// scoreClass maps a nullable 0–1 score to its gauge color class.
func scoreClass(score *float64) string {
	switch {
	case score == nil:
		return "null"
	case *score >= 0.9:
		return "pass"
	case *score >= 0.5:
		return "average"
	default:
		return "fail"
	}
}

// formatScore renders a nullable 0–1 score as a 0–100 integer, or an
// em dash placeholder when unscored.
func formatScore(score *float64) string {
	if score == nil {
		return "–"
	}
	return strconv.Itoa(int(*score*100 + 0.5))
}

// screenshotData returns the data URI of a plain screenshot detail, or
// "" when the audit has none. Returned as template.URL so the data:
// scheme survives the html/template URL sanitizer.
func screenshotData(a *report.AuditResult) template.URL {
	if a == nil || a.Details == nil || a.Details.Type != report.DetailsScreenshot {
		return ""
	}
	return template.URL(a.Details.Data)
}
