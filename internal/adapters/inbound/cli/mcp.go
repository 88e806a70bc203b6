package cli

import (
	mcpadapter "github.com/abdidvp/sclkraft/internal/adapters/inbound/mcp"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the sclkraft MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd())
	return cmd
}

func newMCPServeCmd() *cobra.Command {
	var projectPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start sclkraft MCP server (stdio)",
		Long:  "Start the sclkraft MCP server using stdio transport. This lets AI coding assistants validate SCL code, fetch remediation hints and insert templates.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if projectPath == "" {
				projectPath = "."
			}
			log := newLogger(cmd)
			defer func() { _ = log.Sync() }()

			s := mcpadapter.NewSclKraftMCPServer(projectPath, version, log)
			return server.ServeStdio(s)
		},
	}

	cmd.Flags().StringVar(&projectPath, "path", "", "Project path (defaults to current working directory)")

	return cmd
}
