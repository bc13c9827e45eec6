package report

// Clone returns an independent structural copy of the Result: no slice,
// map or pointer is shared with the receiver. Variant expanders and the
// lab-data extractor clone before editing so the base document is never
// mutated.
func (r *Result) Clone() *Result {
	if r == nil {
		return nil
	}
	out := &Result{
		RequestedURL: r.RequestedURL,
		FinalURL:     r.FinalURL,
		FetchTime:    r.FetchTime,
		RunWarnings:  cloneStrings(r.RunWarnings),
	}
	if r.Categories != nil {
		out.Categories = make(map[string]*Category, len(r.Categories))
		for id, c := range r.Categories {
			out.Categories[id] = c.clone()
		}
	}
	if r.Audits != nil {
		out.Audits = make(map[string]*AuditResult, len(r.Audits))
		for id, a := range r.Audits {
			out.Audits[id] = a.clone()
		}
	}
	if r.CategoryGroups != nil {
		out.CategoryGroups = make(map[string]*CategoryGroup, len(r.CategoryGroups))
		for id, g := range r.CategoryGroups {
			gc := *g
			out.CategoryGroups[id] = &gc
		}
	}
	if r.ConfigSettings != nil {
		cs := *r.ConfigSettings
		cs.OnlyCategories = cloneStrings(r.ConfigSettings.OnlyCategories)
		out.ConfigSettings = &cs
	}
	if r.I18n != nil {
		i := *r.I18n
		if r.I18n.RendererFormattedStrings != nil {
			rs := *r.I18n.RendererFormattedStrings
			i.RendererFormattedStrings = &rs
		}
		out.I18n = &i
	}
	return out
}

func (c *Category) clone() *Category {
	if c == nil {
		return nil
	}
	out := *c
	out.Score = cloneFloat(c.Score)
	if c.AuditRefs != nil {
		out.AuditRefs = make([]AuditRef, len(c.AuditRefs))
		for i, ref := range c.AuditRefs {
			out.AuditRefs[i] = ref
			out.AuditRefs[i].Result = ref.Result.clone()
		}
	}
	return &out
}

func (a *AuditResult) clone() *AuditResult {
	if a == nil {
		return nil
	}
	out := *a
	out.Score = cloneFloat(a.Score)
	out.Warnings = cloneStrings(a.Warnings)
	out.Details = a.Details.clone()
	return &out
}

func (d *Details) clone() *Details {
	if d == nil {
		return nil
	}
	out := *d
	out.Nodes = cloneTreemapNodes(d.Nodes)
	return &out
}

func cloneTreemapNodes(nodes []TreemapNode) []TreemapNode {
	if nodes == nil {
		return nil
	}
	out := make([]TreemapNode, len(nodes))
	for i, n := range nodes {
		out[i] = n
		out[i].Children = cloneTreemapNodes(n.Children)
	}
	return out
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}
