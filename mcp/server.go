package mcp

import (
	"github.com/ka2n/postview/api"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Server represents the MCP server for postview
type Server struct {
	server *server.MCPServer
}

// NewServer creates a new MCP server instance
func NewServer() *Server {
	s := server.NewMCPServer("postview", api.Version)

	registerTools(s)

	return &Server{
		server: s,
	}
}

// Run starts the MCP server
func (s *Server) Run() error {
	return server.ServeStdio(s.server)
}

func registerTools(s *server.MCPServer) {
	s.AddTools(InitTools()...)
}

func newServerTool(tool mcp.Tool, handler server.ToolHandlerFunc) server.ServerTool {
	return server.ServerTool{
		Tool:    tool,
		Handler: handler,
	}
}
