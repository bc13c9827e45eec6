package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"beacon/internal/audit"
	"beacon/internal/report"
)

var auditFlags struct {
	auditDir string
	out      string
	url      string
}

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Score gathered artifacts into a Result document",
	Long: `Runs the scoring engine against a previously gathered artifacts dir
and writes the canonical Result JSON. The engine never touches a live
page; use 'beacon gather' first.`,
	RunE: runAudit,
}

func init() {
	f := auditCmd.Flags()
	f.StringVarP(&auditFlags.auditDir, "artifacts", "a", "", "Artifacts dir from 'beacon gather' (required)")
	f.StringVarP(&auditFlags.out, "out", "o", "result.json", "Output Result JSON path")
	f.StringVar(&auditFlags.url, "url", "", "Requested URL recorded in the Result (default: from artifacts)")

	_ = auditCmd.MarkFlagRequired("artifacts")
}

func runAudit(cmd *cobra.Command, _ []string) error {
	url := auditFlags.url
	if url == "" {
		a, err := audit.LoadArtifacts(auditFlags.auditDir)
		if err != nil {
			return err
		}
		url = a.RequestedURL
	}

	res, err := audit.NewEngine().Run(cmd.Context(), url, audit.Options{AuditDir: auditFlags.auditDir})
	if err != nil {
		return err
	}
	if err := report.Save(auditFlags.out, res.Result); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	perf := res.Result.Categories[report.PerformanceCategoryID]
	if perf != nil && perf.Score != nil {
		fmt.Fprintf(out, "Performance score: %.2f\n", *perf.Score)
	} else {
		fmt.Fprintf(out, "Performance score: n/a (errored run)\n")
	}
	fmt.Fprintf(out, "Result: %s\n", auditFlags.out)
	return nil
}
