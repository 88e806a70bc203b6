package mcp

import (
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/abdidvp/sclkraft/internal/logger"
)

// NewSclKraftMCPServer creates a new MCP server with all sclkraft tools and
// resources registered. The projectPath is the root directory of the PLC
// project whose files and config the tools operate on. The version is
// advertised to clients and keys the report cache.
func NewSclKraftMCPServer(projectPath, version string, log *zap.Logger) *server.MCPServer {
	if log == nil {
		log = zap.NewNop()
	}
	if version == "" {
		version = "dev"
	}
	log = log.Named(logger.ComponentMCP)

	s := server.NewMCPServer(
		"sclkraft",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	svc := newServices(version, log)
	registerTools(s, projectPath, svc)
	registerResources(s, projectPath, svc)

	log.Debug("mcp server ready", zap.String("path", projectPath))
	return s
}
