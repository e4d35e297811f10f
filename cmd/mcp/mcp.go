// Package mcp implements the "mcp" subcommand: serve the abstract scene
// surface over MCP stdio transport, grounded on mcpxcel's
// cmd/server/main.go (recovery, session hooks, stdio transport).
package mcp

import (
	"context"
	"fmt"
	"os"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/hexsolve/hexsolve/pkg/hexlog"
	"github.com/hexsolve/hexsolve/pkg/hexmcp"
)

const serverName = "hexsolve"

// Version is set at build time via -ldflags; defaults for local builds.
var Version = "dev"

// McpCmd represents the mcp command.
var McpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the puzzle core over MCP stdio transport",
	RunE: func(cmd *cobra.Command, args []string) error {
		sessions := hexmcp.NewSessions()

		srv := server.NewMCPServer(
			serverName,
			Version,
			server.WithToolCapabilities(true),
			server.WithRecovery(),
			server.WithHooks(buildHooks()),
		)
		hexmcp.Register(srv, sessions)

		contextSize := hexmcp.ModelContextSize("gpt-4o")
		hexlog.Info("hexsolve mcp server starting (version=%s, model_context_size=%d)", Version, contextSize)

		if err := server.ServeStdio(srv); err != nil {
			fmt.Fprintf(os.Stderr, "server error: %v\n", err)
			os.Exit(1)
		}
		return nil
	},
}

func buildHooks() *server.Hooks {
	hooks := &server.Hooks{}
	hooks.AddOnRegisterSession(func(ctx context.Context, session server.ClientSession) {
		hexlog.Info("mcp: session registered %s", session.SessionID())
	})
	hooks.AddOnUnregisterSession(func(ctx context.Context, session server.ClientSession) {
		hexlog.Info("mcp: session unregistered %s", session.SessionID())
	})
	hooks.AddAfterCallTool(func(ctx context.Context, id any, req *mcplib.CallToolRequest, res *mcplib.CallToolResult) {
		hexlog.Debug("mcp: tool call served: %s", req.Params.Name)
	})
	hooks.AddOnError(func(ctx context.Context, id any, method mcplib.MCPMethod, message any, err error) {
		hexlog.Error("mcp: request error (%s): %v", method, err)
	})
	return hooks
}
