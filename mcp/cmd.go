package mcp

import (
	"github.com/spf13/cobra"
)

// Command returns the MCP server command
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server",
		Long:  "Serve the list_records tool over stdio",
		Args:  cobra.NoArgs,
		RunE:  runMCP,
	}
}

func runMCP(cmd *cobra.Command, args []string) error {
	server := NewServer()
	return server.Run()
}
