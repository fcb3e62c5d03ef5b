package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerAliasesResource(srv, svc)
	registerHistoryResource(srv, svc)
}

func registerAliasesResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"plustag://aliases",
		"Aliases",
		mcp.WithResourceDescription("Saved aliases in display order."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		aliases, err := svc.ListAliases(ctx)
		if err != nil {
			return nil, err
		}
		payload := map[string]any{
			"aliases": aliases,
			"count":   len(aliases),
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerHistoryResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"plustag://history",
		"Copy History",
		mcp.WithResourceDescription("Every copied address, oldest first."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		entries, err := svc.ListHistory(ctx, 0)
		if err != nil {
			return nil, err
		}
		payload := map[string]any{
			"entries": entries,
			"count":   len(entries),
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
