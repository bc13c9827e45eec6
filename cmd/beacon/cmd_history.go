package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"beacon/internal/format"
	"beacon/internal/store"
)

var historyFlags struct {
	db       string
	buildID  int64
	markdown bool
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded builds",
	RunE:  runHistory,
}

func init() {
	f := historyCmd.Flags()
	f.StringVar(&historyFlags.db, "db", store.DefaultDBPath, "History DB path")
	f.Int64Var(&historyFlags.buildID, "build", 0, "Show the output files of one build")
	f.BoolVar(&historyFlags.markdown, "markdown", false, "Print tables as Markdown")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	st, err := store.Open(historyFlags.db)
	if err != nil {
		return err
	}
	defer st.Close()

	mode := format.ASCII
	if historyFlags.markdown {
		mode = format.Markdown
	}
	out := cmd.OutOrStdout()

	if historyFlags.buildID != 0 {
		outputs, err := st.ListOutputs(historyFlags.buildID)
		if err != nil {
			return err
		}
		t := format.NewTable(mode)
		t.Header("Variant", "Flavor", "Path", "Size")
		t.Columns(format.ColumnConfig{Number: 4, Align: format.AlignRight})
		for _, o := range outputs {
			t.Row(o.Name, o.Flavor, o.Path, format.FmtBytes(o.Bytes))
		}
		fmt.Fprintln(out, t.String())
		return nil
	}

	builds, err := st.ListBuilds()
	if err != nil {
		return err
	}
	if len(builds) == 0 {
		fmt.Fprintln(out, "No builds recorded.")
		return nil
	}
	t := format.NewTable(mode)
	t.Header("ID", "Started", "Base URL", "Dist", "Files")
	t.Columns(
		format.ColumnConfig{Number: 3, MaxWidth: 40},
		format.ColumnConfig{Number: 5, Align: format.AlignRight},
	)
	for _, b := range builds {
		t.Row(b.ID, b.StartedAt, format.Truncate(b.BaseURL, 40), b.DistDir, b.FileCount)
	}
	fmt.Fprintln(out, t.String())
	return nil
}
