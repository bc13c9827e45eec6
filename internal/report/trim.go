package report

import "strings"

// TrimForEmbedding narrows a Result to the single performance category
// for the embeddable report: every other category is dropped, the
// dedicated performance-budget audit is deleted, and every audit
// reference whose id ends in "-budget" is removed from the category's
// ordered reference list.
//
// The trim is pure and total: the input is cloned first and never
// mutated, and a Result without a performance category simply yields an
// empty category set. It is idempotent.
func TrimForEmbedding(r *Result) *Result {
	out := r.Clone()

	perf := out.Categories[PerformanceCategoryID]
	out.Categories = make(map[string]*Category, 1)
	if perf != nil {
		kept := perf.AuditRefs[:0]
		for _, ref := range perf.AuditRefs {
			if strings.HasSuffix(ref.ID, "-budget") {
				continue
			}
			kept = append(kept, ref)
		}
		perf.AuditRefs = kept
		out.Categories[PerformanceCategoryID] = perf
	}

	delete(out.Audits, BudgetAuditID)
	return out
}
