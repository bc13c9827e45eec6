// beacon is the report pipeline CLI: build the locale/flavor rendering
// matrix from a Result document, gather artifacts from live pages,
// score them, extract embeddable lab-data fragments and serve the
// pipeline over MCP.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"beacon/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	logLevel  string
	logFormat string
}

var rootCmd = &cobra.Command{
	Use:   "beacon",
	Short: "Multiplex an audit Result into locale and environment report variants",
	Long: "Beacon takes a canonical audit Result document and renders it into\n" +
		"locale variants and environment flavors: standalone pages, devtools\n" +
		"embeddings and PSI host documents with extracted lab-data fragments.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		level, err := logging.ParseLevel(rootFlags.logLevel)
		if err != nil {
			return err
		}
		logging.Init(level, rootFlags.logFormat)
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	pf.StringVar(&rootFlags.logFormat, "log-format", "text", "Log format (text, json)")

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(gatherCmd)
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(labdataCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
