package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"beacon/internal/labdata"
	"beacon/internal/render"
	"beacon/internal/report"
)

var labdataFlags struct {
	result string
	out    string
}

var labdataCmd = &cobra.Command{
	Use:   "labdata",
	Short: "Extract the embeddable lab-data fragments from a Result",
	Long: `Narrows a Result to its performance view and extracts the fragments a
host page embeds: the zoomed score gauge, the category body with the
metrics heading renamed to "Lab data", the score scale and the final
screenshot. The assembled host markup is written to --out or stdout.

Without --result the built-in sample document is used.`,
	RunE: runLabdata,
}

func init() {
	f := labdataCmd.Flags()
	f.StringVarP(&labdataFlags.result, "result", "r", "", "Result JSON path (default: built-in sample)")
	f.StringVarP(&labdataFlags.out, "out", "o", "", "Output path (default: stdout)")
}

func runLabdata(cmd *cobra.Command, _ []string) error {
	r := report.Sample()
	if labdataFlags.result != "" {
		loaded, err := report.Load(labdataFlags.result)
		if err != nil {
			return err
		}
		r = loaded
	}

	bundle, err := labdata.Prepare(r, render.New())
	if err != nil {
		return err
	}
	host := labdata.NewHost()
	if err := bundle.Install(host); err != nil {
		return err
	}
	markup, err := labdata.RenderFragment(host)
	if err != nil {
		return err
	}

	if labdataFlags.out == "" {
		fmt.Fprintln(cmd.OutOrStdout(), markup)
		return nil
	}
	if err := os.WriteFile(labdataFlags.out, []byte(markup), 0o644); err != nil {
		return fmt.Errorf("write %q: %w", labdataFlags.out, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Lab data: %s\n", labdataFlags.out)
	return nil
}
