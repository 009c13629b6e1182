// Package mcp implements the Model Context Protocol server, exposing the
// tools registered by extensions to MCP clients over stdio.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jpl-au/notionmcp/extension"
	"github.com/jpl-au/notionmcp/internal/config"
	"github.com/jpl-au/notionmcp/internal/version"
)

// Name is advertised to clients during initialisation.
const Name = "notion-mcp-server"

// ErrDuplicateTool is returned when two extensions register the same tool.
var ErrDuplicateTool = errors.New("duplicate MCP tool")

// Serve starts the MCP server over stdio and blocks until the client
// disconnects. stdout is reserved for JSON-RPC messages, so all logging
// must already go to stderr. A Context without a tool service means no
// token is configured, which is fatal.
func Serve(extCtx extension.Context) error {
	if extCtx.Tools() == nil {
		return config.ErrNoToken
	}
	s, err := NewServer(extCtx)
	if err != nil {
		return err
	}
	slog.Info("MCP server ready", "name", Name, "version", version.Short(), "transport", "stdio")

	err = server.ServeStdio(s)
	if errors.Is(err, context.Canceled) {
		slog.Info("server stopped")
		return nil
	}
	return err
}

// NewServer builds a server with every extension tool and the guide and
// page resources registered.
func NewServer(extCtx extension.Context) (*server.MCPServer, error) {
	s := server.NewMCPServer(
		Name,
		version.Short(),
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
		server.WithRecovery(),
	)

	seen := make(map[string]string)
	for _, ext := range extension.All() {
		for _, t := range ext.MCPTools() {
			if prev, ok := seen[t.Tool.Name]; ok {
				return nil, fmt.Errorf("%w: %s (extensions %s and %s)", ErrDuplicateTool, t.Tool.Name, prev, ext.Name())
			}
			seen[t.Tool.Name] = ext.Name()
			s.AddTool(t.Tool, bind(extCtx, t.Handler))
			slog.Debug("registered tool", "tool", t.Tool.Name, "extension", ext.Name())
		}
	}

	registerResources(s, &resources{extCtx: extCtx})
	return s, nil
}

// bind closes an extension handler over the shared Context.
func bind(extCtx extension.Context, h extension.MCPHandler) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return h(ctx, extCtx, req)
	}
}
