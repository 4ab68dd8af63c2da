package commands

import (
	"github.com/erraggy/gw2oas/internal/mcpserver"
	"github.com/spf13/cobra"
)

func (a *app) newMCPCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Run an MCP server over stdio",
		Long: `Run a Model Context Protocol server over stdio exposing the convert and
list_policies tools. Logs go to stderr, so stdout stays reserved for the
protocol.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return mcpserver.Run(cmd.Context(), a.cfg, a.logger)
		},
	}
}
