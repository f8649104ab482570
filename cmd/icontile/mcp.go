package main

import (
	"github.com/spf13/cobra"

	"github.com/1broseidon/icontile/internal/mcp"
)

func (a *app) newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server integration",
	}
	cmd.AddCommand(a.newMCPServeCmd())
	return cmd
}

func (a *app) newMCPServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server on stdio",
		Long:  "Start the MCP server on stdio. Designed to be invoked by MCP clients, e.g.:\n\n  claude mcp add icontile -- icontile mcp serve",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			org, surf, err := a.buildOrganizer(cfg)
			if err != nil {
				return err
			}
			defer surf.Close()

			return mcp.NewServer(org).Run(cmd.Context())
		},
	}
}
