package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"beacon/internal/audit"
	"beacon/internal/buildcfg"
	"beacon/internal/format"
	"beacon/internal/locale"
	"beacon/internal/render"
	"beacon/internal/report"
	"beacon/internal/store"
	"beacon/internal/variants"
)

var buildFlags struct {
	config   string
	base     string
	dist     string
	locales  []string
	markdown bool
	noStore  bool
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Render the full variant matrix from a base Result",
	Long: `Expands the base Result into its named variants (base, one per locale,
the synthetic error path, the single-category narrowing) and writes
every variant in every environment flavor under the dist dir.

Without --base the built-in sample document is used.`,
	RunE: runBuild,
}

func init() {
	f := buildCmd.Flags()
	f.StringVarP(&buildFlags.config, "config", "c", "", "Build config file (YAML/JSON)")
	f.StringVar(&buildFlags.base, "base", "", "Base Result JSON path (default: built-in sample)")
	f.StringVarP(&buildFlags.dist, "dist", "o", "", "Output dir (overrides config)")
	f.StringSliceVar(&buildFlags.locales, "locales", nil, "Locale tags to expand (overrides config)")
	f.BoolVar(&buildFlags.markdown, "markdown", false, "Print the summary table as Markdown")
	f.BoolVar(&buildFlags.noStore, "no-history", false, "Skip recording the build in the history DB")
}

func runBuild(cmd *cobra.Command, _ []string) error {
	cfg := buildcfg.Default()
	if buildFlags.config != "" {
		c, err := buildcfg.LoadFromPath(buildFlags.config)
		if err != nil {
			return err
		}
		cfg = c
	}
	if buildFlags.base != "" {
		cfg.BaseResult = buildFlags.base
	}
	if buildFlags.dist != "" {
		cfg.DistDir = buildFlags.dist
	}
	if len(buildFlags.locales) > 0 {
		cfg.Locales = buildFlags.locales
	}

	base := report.Sample()
	if cfg.BaseResult != "" {
		r, err := report.Load(cfg.BaseResult)
		if err != nil {
			return err
		}
		base = r
	}

	started := time.Now()
	o := variants.New(render.New(), locale.CatalogTranslator{}, audit.NewEngine(), cfg.DistDir)
	o.Locales = cfg.Locales
	written, err := o.Run(cmd.Context(), base)
	if err != nil {
		return err
	}

	mode := format.ASCII
	if buildFlags.markdown {
		mode = format.Markdown
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, format.BuildSummary(written, mode))
	fmt.Fprintf(out, "Wrote %d files in %s\n", len(written), format.FmtDuration(time.Since(started)))

	if buildFlags.noStore {
		return nil
	}
	dbPath := cfg.HistoryDB
	if dbPath == "" {
		dbPath = store.DefaultDBPath
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer st.Close()

	outputs := make([]store.Output, 0, len(written))
	for _, w := range written {
		outputs = append(outputs, store.Output{
			Name: w.Name, Flavor: string(w.Flavor), Path: w.Path, Bytes: w.Bytes,
		})
	}
	buildID, err := st.RecordBuild(&store.Build{
		StartedAt: started.UTC().Format(time.RFC3339),
		BaseURL:   base.RequestedURL,
		DistDir:   cfg.DistDir,
	}, outputs)
	if err != nil {
		return fmt.Errorf("record history: %w", err)
	}
	fmt.Fprintf(out, "Recorded build #%d\n", buildID)
	return nil
}
