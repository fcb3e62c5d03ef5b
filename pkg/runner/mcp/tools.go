package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/plustag/pkg/app"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerGetEmailTool(srv, svc)
	registerSetEmailTool(srv, svc)
	registerDeriveAddressTool(srv, svc)
	registerListAliasesTool(srv, svc)
	registerCreateAliasTool(srv, svc)
	registerDeleteAliasTool(srv, svc)
	registerListHistoryTool(srv, svc)
	registerCopyAddressTool(srv, svc)
}

func registerGetEmailTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_email",
		mcp.WithDescription("Get the primary email address plus-tags are derived from."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dto, err := svc.Email(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerSetEmailTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"set_email",
		mcp.WithDescription("Replace the primary email address."),
		mcp.WithString("email",
			mcp.Required(),
			mcp.Description("New primary email, for example user@example.com."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		email, err := request.RequireString("email")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.SetEmail(ctx, email)
		if err != nil {
			return mcp.NewToolResultError(app.Notice(err)), nil
		}
		return toJSONResult(dto)
	})
}

func registerDeriveAddressTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"derive_address",
		mcp.WithDescription("Derive a plus-tagged address from the primary email without copying it."),
		mcp.WithString("tag",
			mcp.Description("Tag to insert after the plus. Non-word characters are dropped. Defaults to a millisecond timestamp."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dto, err := svc.Derive(ctx, request.GetString("tag", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerListAliasesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_aliases",
		mcp.WithDescription("List saved aliases in display order."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		aliases, err := svc.ListAliases(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"aliases": aliases,
			"count":   len(aliases),
		})
	})
}

func registerCreateAliasTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"create_alias",
		mcp.WithDescription("Save a new alias. The value is the label with non-word characters removed."),
		mcp.WithString("label",
			mcp.Required(),
			mcp.Description("Free-form label, for example \"Black Friday!\"."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		label, err := request.RequireString("label")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		a, err := svc.CreateAlias(ctx, label)
		if err != nil {
			return mcp.NewToolResultError(app.Notice(err)), nil
		}
		return toJSONResult(a)
	})
}

func registerDeleteAliasTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_alias",
		mcp.WithDescription("Delete every alias with the given value."),
		mcp.WithString("value",
			mcp.Required(),
			mcp.Description("Alias value to delete."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		value, err := request.RequireString("value")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		n, err := svc.DeleteAlias(ctx, value)
		if err != nil {
			return mcp.NewToolResultError(app.Notice(err)), nil
		}
		return toJSONResult(map[string]any{
			"value":   value,
			"removed": n,
		})
	})
}

func registerListHistoryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_history",
		mcp.WithDescription("List copied addresses, oldest first."),
		mcp.WithNumber("limit",
			mcp.Description("Return only the most recent entries. Zero returns all."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		limit := request.GetInt("limit", 0)
		entries, err := svc.ListHistory(ctx, limit)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"entries": entries,
			"count":   len(entries),
		})
	})
}

func registerCopyAddressTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"copy_address",
		mcp.WithDescription("Copy a plus-tagged address to the local clipboard and record it in the history."),
		mcp.WithString("tag",
			mcp.Description("Existing alias value to use. Defaults to a millisecond timestamp."),
		),
		mcp.WithString("label",
			mcp.Description("Create an alias from this label (or reuse a matching one) and use it."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Tag   string `json:"tag"`
			Label string `json:"label"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		dto, err := svc.CopyAddress(ctx, args.Tag, args.Label)
		if err != nil {
			return mcp.NewToolResultError(app.Notice(err)), nil
		}
		return toJSONResult(dto)
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
