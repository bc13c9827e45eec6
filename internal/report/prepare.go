package report

import "fmt"

// Prepare normalizes a raw Result into the shape renderers consume:
// every category audit reference gets its AuditResult attached in
// place. The input is cloned, not mutated.
//
// A reference that does not resolve to an entry in Audits, or a
// reference naming a group absent from CategoryGroups, is a malformed
// document and fails the whole preparation.
func Prepare(r *Result) (*Result, error) {
	out := r.Clone()
	for id, cat := range out.Categories {
		for i := range cat.AuditRefs {
			ref := &cat.AuditRefs[i]
			audit, ok := out.Audits[ref.ID]
			if !ok {
				return nil, fmt.Errorf("report: category %q references unknown audit %q", id, ref.ID)
			}
			ref.Result = audit
			if ref.Group != "" {
				if _, ok := out.CategoryGroups[ref.Group]; !ok {
					return nil, fmt.Errorf("report: category %q references unknown group %q", id, ref.Group)
				}
			}
		}
	}
	return out, nil
}
