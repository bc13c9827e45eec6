package main

import (
	"context"

	"github.com/spf13/cobra"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"beacon/internal/logging"
	mcpserver "beacon/internal/mcp"
	"beacon/internal/store"
)

var serveFlags struct {
	db string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP tool server over stdio",
	Long: `Starts an MCP server over stdin/stdout exposing the pipeline as tools:
run_build, extract_lab_data, build_error_report and list_builds.

The server monitors for parent process death and self-terminates when
the host that spawned it goes away.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveFlags.db, "db", store.DefaultDBPath, "History DB path (empty: in-memory)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	var st store.Store
	if serveFlags.db != "" {
		s, err := store.Open(serveFlags.db)
		if err != nil {
			return err
		}
		defer s.Close()
		st = s
	}
	srv := mcpserver.NewServer(st)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	mcpserver.WatchParent(ctx, cancel)

	logging.New("mcp").Info("starting beacon MCP server over stdio (parent watchdog active)")
	return srv.MCPServer.Run(ctx, &sdkmcp.StdioTransport{})
}
