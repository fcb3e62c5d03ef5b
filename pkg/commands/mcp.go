package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/plustag/pkg/runner/mcp"
)

func addMCP(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "start the Model Context Protocol server on stdio",
		Long: `Launch an MCP server on stdin/stdout that exposes the primary email, saved
aliases, and the copy history to local agents. No network listener is opened.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			// stdout carries the protocol.
			s, err := load(true)
			if err != nil {
				return err
			}
			defer s.Close()

			runner := mcp.Runner{
				Service: s.svc,
				Name:    "plustag",
				Version: Version,
			}
			return runner.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
