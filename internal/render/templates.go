package render

import "html/template"

// pageTmpl is the full standalone report document. The bn-root class on
// the html element is the anchor for environment-flavor post-processing.
const pageTmpl = `<!DOCTYPE html>
<html lang="{{.Locale}}" class="bn-root bn-vars">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Beacon Report: {{.FinalURL}}</title>
<style>{{baseCSS}}</style>
</head>
<body class="bn-body">
<header class="bn-topbar">
<span class="bn-topbar__url">{{.FinalURL}}</span>
<span class="bn-topbar__fetchtime">{{.FetchTime}}</span>
</header>
{{- if .RunWarnings}}
<div class="bn-warnings bn-warnings--toplevel">
<span>{{.Strings.ToplevelWarningsMessage}}</span>
<ul>{{range .RunWarnings}}<li>{{.}}</li>{{end}}</ul>
</div>
{{- end}}
<main class="bn-main">
{{- range .Categories}}
{{template "category" .}}
{{- end}}
</main>
<footer class="bn-footer">
<span class="bn-footer__disclaimer">{{.Strings.VarianceDisclaimer}}</span>
</footer>
</body>
</html>
`

// categoryTmpl renders one category. ShowHeader is false in the psi
// environment, which wants neither the category header nor the
// permalink.
const categoryTmpl = `{{define "category" -}}
<div class="bn-category" id="{{.Category.ID}}">
{{- if .ShowHeader}}
<div class="bn-category-header">
<h2 class="bn-category-header__title">{{.Category.Title}}</h2>
<a class="bn-permalink" href="#{{.Category.ID}}">§</a>
</div>
{{- end}}
<div class="bn-score__gauge">
<a class="bn-gauge__wrapper bn-gauge__wrapper--{{scoreClass .Category.Score}}" href="#{{.Category.ID}}">
<div class="bn-gauge"><span class="bn-gauge__percentage">{{formatScore .Category.Score}}</span></div>
<div class="bn-gauge__label">{{.Category.Title}}</div>
</a>
</div>
{{- range .Groups}}
<div class="bn-audit-group bn-audit-group--{{.ID}}">
<div class="bn-audit-group__header">
<span class="bn-audit-group__title">{{.Title}}</span>
{{- if .Description}}
<span class="bn-audit-group__description">{{.Description}}</span>
{{- end}}
</div>
{{- range .Refs}}
{{template "audit" .}}
{{- end}}
</div>
{{- end}}
{{- range .Ungrouped}}
{{template "audit" .}}
{{- end}}
<div class="bn-scorescale">
<span class="bn-scorescale__label">{{.Strings.ScoreScaleLabel}}</span>
<span class="bn-scorescale__range bn-scorescale__range--fail">0–49</span>
<span class="bn-scorescale__range bn-scorescale__range--average">50–89</span>
<span class="bn-scorescale__range bn-scorescale__range--pass">90–100</span>
</div>
</div>
{{end}}`

// auditTmpl renders one resolved audit reference.
const auditTmpl = `{{define "audit" -}}
<div class="bn-audit bn-audit--{{.Result.ScoreDisplayMode}}" id="{{.ID}}">
<span class="bn-audit__score bn-audit__score--{{scoreClass .Result.Score}}"></span>
<span class="bn-audit__title">{{.Result.Title}}</span>
{{- if .Result.DisplayValue}}
<span class="bn-audit__display-text">{{.Result.DisplayValue}}</span>
{{- end}}
{{- if .Result.ErrorMessage}}
<span class="bn-audit__error">{{.Result.ErrorMessage}}</span>
{{- end}}
{{- if .Result.Warnings}}
<ul class="bn-audit__warnings">{{range .Result.Warnings}}<li>{{.}}</li>{{end}}</ul>
{{- end}}
{{- if screenshotData .Result}}
<img class="bn-audit__screenshot" src="{{screenshotData .Result}}" alt="{{.Result.Title}}">
{{- end}}
</div>
{{end}}`

const baseCSS = `.bn-root{font-family:Roboto,Helvetica,Arial,sans-serif;color:#212121}
.bn-gauge__wrapper--pass{color:#0c6}
.bn-gauge__wrapper--average{color:#fa3}
.bn-gauge__wrapper--fail{color:#f33}
.bn-gauge__wrapper--null{color:#757575}
.bn-gauge__wrapper--huge .bn-gauge{width:120px;height:120px}
.bn-devtools .bn-topbar{display:none}
.bn-audit--error .bn-audit__score{background:#f33}`

func newTemplates() *template.Template {
	t := template.New("page").Funcs(template.FuncMap{
		"scoreClass":     scoreClass,
		"formatScore":    formatScore,
		"screenshotData": screenshotData,
		"baseCSS":        func() template.CSS { return template.CSS(baseCSS) },
	})
	template.Must(t.Parse(pageTmpl))
	template.Must(t.Parse(categoryTmpl))
	template.Must(t.Parse(auditTmpl))
	return t
}
