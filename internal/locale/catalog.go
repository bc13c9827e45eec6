package locale

import (
	"fmt"

	"beacon/internal/report"
)

// catalog holds the translated strings for one locale.
type catalog struct {
	renderer report.RendererStrings
	// titles maps category, group and audit ids to translated titles.
	// Ids absent from the map keep their source-locale title.
	titles map[string]string
}

var catalogs = map[string]*catalog{
	"es": {
		renderer: report.RendererStrings{
			VarianceDisclaimer:       "Los valores son estimados y pueden variar.",
			ErrorLabel:               "¡Error!",
			WarningHeader:            "Advertencias: ",
			PassedAuditsGroupTitle:   "Auditorías aprobadas",
			NotApplicableAuditsTitle: "No aplicable",
			ScoreScaleLabel:          "escala de puntuación:",
			ToplevelWarningsMessage:  "Hubo problemas que afectaron esta ejecución.",
		},
		titles: map[string]string{
			"performance": "Rendimiento",
			"metrics":     "Métricas",
		},
	},
	"ja": {
		renderer: report.RendererStrings{
			VarianceDisclaimer:       "値は推定値であり、変動する場合があります。",
			ErrorLabel:               "エラー！",
			WarningHeader:            "警告: ",
			PassedAuditsGroupTitle:   "合格した監査",
			NotApplicableAuditsTitle: "該当なし",
			ScoreScaleLabel:          "スコアスケール:",
			ToplevelWarningsMessage:  "この実行に影響する問題がありました。",
		},
		titles: map[string]string{
			"performance": "パフォーマンス",
			"metrics":     "指標",
		},
	},
	"ar": {
		renderer: report.RendererStrings{
			VarianceDisclaimer:       "القيم تقديرية وقد تختلف.",
			ErrorLabel:               "خطأ!",
			WarningHeader:            "تحذيرات: ",
			PassedAuditsGroupTitle:   "عمليات التدقيق الناجحة",
			NotApplicableAuditsTitle: "غير قابل للتطبيق",
			ScoreScaleLabel:          "مقياس النتيجة:",
			ToplevelWarningsMessage:  "كانت هناك مشكلات أثرت في هذا التشغيل.",
		},
		titles: map[string]string{
			"performance": "الأداء",
			"metrics":     "المقاييس",
		},
	},
}

// CatalogTranslator translates Results from the built-in string
// catalogs. It implements Translator.
type CatalogTranslator struct{}

// Translate swaps the renderer strings, locale tags and known titles of
// r for the target locale. r is treated as owned by the translator (the
// expander passes a clone); the returned Result is that same document.
func (CatalogTranslator) Translate(r *report.Result, localeTag string) (*report.Result, error) {
	cat, ok := catalogs[localeTag]
	if !ok {
		return nil, fmt.Errorf("locale: no catalog for %q", localeTag)
	}

	if r.I18n == nil {
		r.I18n = &report.I18n{}
	}
	r.I18n.Locale = localeTag
	rs := cat.renderer
	r.I18n.RendererFormattedStrings = &rs
	if r.ConfigSettings != nil {
		r.ConfigSettings.Locale = localeTag
	}

	for id, c := range r.Categories {
		if title, ok := cat.titles[id]; ok {
			c.Title = title
		}
	}
	for id, g := range r.CategoryGroups {
		if title, ok := cat.titles[id]; ok {
			g.Title = title
		}
	}
	for id, a := range r.Audits {
		if title, ok := cat.titles[id]; ok {
			a.Title = title
		}
	}
	return r, nil
}
