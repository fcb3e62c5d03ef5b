package mcp

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/plustag/pkg/app"
)

// Runner coordinates MCP server startup. Only stdio is served; plustag never
// opens a network listener.
type Runner struct {
	Service *app.Service
	Name    string
	Version string
}

// Run starts the Model Context Protocol server using stdio transport.
func Run(ctx context.Context, svc *app.Service) error {
	r := Runner{
		Service: svc,
		Name:    "plustag",
		Version: "dev",
	}
	return r.Do(ctx)
}

// Do executes the runner.
func (r Runner) Do(ctx context.Context) error {
	if r.Service == nil {
		return errors.New("mcp runner requires a service")
	}
	stdio := server.NewStdioServer(r.Server())
	return stdio.Listen(ctx, os.Stdin, os.Stdout)
}

// Server builds the MCP server with every tool and resource registered.
func (r Runner) Server() *server.MCPServer {
	name := r.Name
	if name == "" {
		name = "plustag"
	}
	version := r.Version
	if version == "" {
		version = "dev"
	}

	srv := server.NewMCPServer(
		fmt.Sprintf("%s MCP", name),
		version,
		server.WithResourceCapabilities(false, false),
		server.WithToolCapabilities(false),
		server.WithInstructions("Derive plus-tagged email addresses, manage saved aliases, and read or add to the copy history."),
		server.WithResourceRecovery(),
		server.WithRecovery(),
	)

	svc := NewService(r.Service)
	registerResources(srv, svc)
	registerTools(srv, svc)
	return srv
}
