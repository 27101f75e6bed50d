// Package mcp exposes classification and reporting as MCP tools so AI
// agents can file documents through the same pipeline as the CLI.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/akhelifi/bibliosort/internal/filer"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server over the classify-and-file service.
type Server struct {
	svc *filer.Service
	mcp *server.MCPServer
}

// NewServer creates a new MCP server with the given service.
func NewServer(svc *filer.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"bibliosort",
		Version,
		server.WithToolCapabilities(false),
	)

	s.mcp.AddTool(classifyDocumentTool, s.handleClassifyDocument)
	s.mcp.AddTool(folderReportTool, s.handleFolderReport)

	return s
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
