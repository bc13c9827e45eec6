package format

import (
	"beacon/internal/variants"
)

// BuildSummary renders the per-file completion table for one pipeline
// run: variant name, flavor, output path and size, with a byte total in
// the footer.
func BuildSummary(written []variants.Written, m Mode) string {
	t := NewTable(m)
	t.Header("Variant", "Flavor", "Path", "Size")
	t.Columns(
		ColumnConfig{Number: 3, MaxWidth: 60},
		ColumnConfig{Number: 4, Align: AlignRight},
	)
	total := 0
	for _, w := range written {
		t.Row(w.Name, string(w.Flavor), w.Path, FmtBytes(w.Bytes))
		total += w.Bytes
	}
	t.Footer("", "", "total", FmtBytes(total))
	return t.String()
}
