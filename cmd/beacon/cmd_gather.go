package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"beacon/internal/gather"
)

var gatherFlags struct {
	outDir   string
	timeout  time.Duration
	headful  bool
	parallel int
}

var gatherCmd = &cobra.Command{
	Use:   "gather <url>...",
	Short: "Collect audit artifacts from live pages",
	Long: `Loads each URL in a headless browser and persists its artifacts record
(timings, console errors, title, screenshots) to a per-host directory
under the output dir. A page that fails to load still produces a
record, marked with the load error; the audit engine scores it as an
errored run.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGather,
}

func init() {
	f := gatherCmd.Flags()
	f.StringVarP(&gatherFlags.outDir, "out", "o", "artifacts", "Output root; one subdir per URL")
	f.DurationVar(&gatherFlags.timeout, "timeout", gather.DefaultTimeout, "Per-page browser timeout")
	f.BoolVar(&gatherFlags.headful, "headful", false, "Run the browser with a visible window")
	f.IntVar(&gatherFlags.parallel, "parallel", 2, "Concurrent browser sessions")
}

// artifactDirName flattens a URL into a directory name.
func artifactDirName(url string) string {
	name := url
	for _, cut := range []string{"https://", "http://"} {
		if len(name) > len(cut) && name[:len(cut)] == cut {
			name = name[len(cut):]
		}
	}
	out := make([]byte, 0, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '.', c == '-':
			out = append(out, c)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}

func runGather(cmd *cobra.Command, args []string) error {
	g := gather.New()
	opts := gather.Options{Timeout: gatherFlags.timeout, Headful: gatherFlags.headful}

	eg, ctx := errgroup.WithContext(cmd.Context())
	eg.SetLimit(gatherFlags.parallel)
	out := cmd.OutOrStdout()
	for _, url := range args {
		eg.Go(func() error {
			dir := filepath.Join(gatherFlags.outDir, artifactDirName(url))
			a, err := g.Gather(ctx, url, dir, opts)
			if err != nil {
				return fmt.Errorf("gather %s: %w", url, err)
			}
			if a.PageLoadError != "" {
				fmt.Fprintf(out, "%s: page load error (%s) -> %s\n", url, a.PageLoadError, dir)
			} else {
				fmt.Fprintf(out, "%s -> %s\n", url, dir)
			}
			return nil
		})
	}
	return eg.Wait()
}
