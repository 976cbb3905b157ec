package main

import (
	"github.com/spf13/cobra"

	"github.com/elevara-labs/resourcehub/internal/content"
	mcpserver "github.com/elevara-labs/resourcehub/internal/mcp"
)

func mcpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the catalog to MCP clients over stdio",
		Long: `Expose search, lookup, and related-content tools to an MCP client.

Add to an MCP client config:
  { "command": "hub", "args": ["mcp"] }`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log, err := buildLogger()
			if err != nil {
				return err
			}
			defer log.Sync()

			repo, err := openRepository(cfg, log)
			if err != nil {
				return err
			}

			s := mcpserver.NewServer(func() *content.Repository { return repo }, Version)
			return s.Run(cmd.Context())
		},
	}
}
