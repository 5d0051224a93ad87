/*
Copyright © 2025 The wireframe authors
*/
package cmd

import (
	"log/slog"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/Dheerajdoppalapudi/design-generator-sub000/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve wireframe tools over MCP (stdio)",
	Long: `Start a Model Context Protocol server on stdin/stdout exposing:

  generate_wireframe   generate a wireframe document
  generate_pages       list the screens of an app
  validate_wireframe   validate a document without calling the model

Logs go to stderr; stdout carries only protocol messages.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := notifyContext(cmd)
		defer stop()

		p, err := newPipeline(ctx, pipelineOptions{backend: true, command: "mcp"})
		if err != nil {
			return err
		}
		defer p.Close()

		slog.Info("mcp server starting", "version", version)
		server := mcp.NewServer(p.gen, version)
		if err := server.Run(ctx, mcpsdk.NewStdioTransport()); err != nil && ctx.Err() == nil {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
