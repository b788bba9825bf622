package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"sulu/internal/application/commands"
	"sulu/internal/ports"
)

// RegisterWriteTools adds all content editing tools to the MCP server.
func RegisterWriteTools(s *server.MCPServer, mgr ports.ContentManager) {
	s.AddTool(createTool(), createHandler(mgr))
	s.AddTool(updateTool(), updateHandler(mgr))
	s.AddTool(moveTool(), moveHandler(mgr))
	s.AddTool(copyTool(), copyHandler(mgr))
	s.AddTool(reorderTool(), reorderHandler(mgr))
	s.AddTool(deleteTool(), deleteHandler(mgr))
	s.AddTool(publishTool(), publishHandler(mgr))
	s.AddTool(unpublishTool(), unpublishHandler(mgr))
	s.AddTool(regenerateTool(), regenerateHandler(mgr))
	s.AddTool(cleanupTool(), cleanupHandler(mgr))
}

// --- create ---

func createTool() mcp.Tool {
	return mcp.NewTool("create",
		mcp.WithDescription("Create a draft node. A content-less copy is created in live at the same time."),
		mcp.WithString("title",
			mcp.Description("Title of the node"),
			mcp.Required(),
		),
		mcp.WithString("parent_id",
			mcp.Description("Parent node ID. Omit to create at the root."),
		),
		mcp.WithString("type",
			mcp.Description("Content type: page (default) or article"),
		),
		mcp.WithString("locale",
			mcp.Description("Content locale. Omit for the default locale."),
		),
		mcp.WithString("segment",
			mcp.Description("Explicit route segment. Omit to use the type's route template."),
		),
		mcp.WithBoolean("publish",
			mcp.Description("Publish in the same unit of work"),
		),
	)
}

func createHandler(mgr ports.ContentManager) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewCreateCommand(mgr, req.GetString("parent_id", ""), req.GetString("title", ""))
		cmd.Type = req.GetString("type", "")
		cmd.Locale = req.GetString("locale", "")
		cmd.Segment = req.GetString("segment", "")
		cmd.Publish = req.GetBool("publish", false)

		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- update ---

func updateTool() mcp.Tool {
	return mcp.NewTool("update",
		mcp.WithDescription("Edit title or route segment of one localization of a draft node."),
		mcp.WithString("id",
			mcp.Description("Node ID"),
			mcp.Required(),
		),
		mcp.WithString("locale",
			mcp.Description("Content locale. Omit for the default locale."),
		),
		mcp.WithString("title",
			mcp.Description("New title"),
		),
		mcp.WithString("segment",
			mcp.Description("New route segment; an empty string returns to the route template"),
		),
		mcp.WithBoolean("publish",
			mcp.Description("Publish in the same unit of work"),
		),
	)
}

func updateHandler(mgr ports.ContentManager) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewUpdateCommand(mgr, req.GetString("id", ""), req.GetString("locale", ""))
		args := req.GetArguments()
		if _, ok := args["title"]; ok {
			title := req.GetString("title", "")
			cmd.Title = &title
		}
		if _, ok := args["segment"]; ok {
			segment := req.GetString("segment", "")
			cmd.Segment = &segment
		}
		cmd.Publish = req.GetBool("publish", false)

		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- move ---

func moveTool() mcp.Tool {
	return mcp.NewTool("move",
		mcp.WithDescription("Move a node and its subtree under another parent in both workspaces. Changed live routes keep redirecting."),
		mcp.WithString("source_id",
			mcp.Description("ID of the node to move"),
			mcp.Required(),
		),
		mcp.WithString("destination_id",
			mcp.Description("ID of the new parent. Omit to move to the root."),
		),
	)
}

func moveHandler(mgr ports.ContentManager) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewMoveCommand(mgr, req.GetString("source_id", ""), req.GetString("destination_id", ""))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- copy ---

func copyTool() mcp.Tool {
	return mcp.NewTool("copy",
		mcp.WithDescription("Copy a node and its subtree. Copies get new IDs and start unpublished."),
		mcp.WithString("source_id",
			mcp.Description("ID of the node to copy"),
			mcp.Required(),
		),
		mcp.WithString("destination_id",
			mcp.Description("ID of the parent for the copy. Omit to copy to the root."),
		),
	)
}

func copyHandler(mgr ports.ContentManager) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewCopyCommand(mgr, req.GetString("source_id", ""), req.GetString("destination_id", ""))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- reorder ---

func reorderTool() mcp.Tool {
	return mcp.NewTool("reorder",
		mcp.WithDescription("Place a node at a position (starting at 1) among its siblings."),
		mcp.WithString("id",
			mcp.Description("Node ID"),
			mcp.Required(),
		),
		mcp.WithNumber("position",
			mcp.Description("New position, 1 is first"),
			mcp.Required(),
		),
	)
}

func reorderHandler(mgr ports.ContentManager) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewReorderCommand(mgr, req.GetString("id", ""), req.GetInt("position", 0))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- delete ---

func deleteTool() mcp.Tool {
	return mcp.NewTool("delete",
		mcp.WithDescription("Permanently delete a node, its subtree and their routes from both workspaces."),
		mcp.WithString("id",
			mcp.Description("Node ID"),
			mcp.Required(),
		),
	)
}

func deleteHandler(mgr ports.ContentManager) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewDeleteCommand(mgr, req.GetString("id", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- publish / unpublish ---

func publishTool() mcp.Tool {
	return mcp.NewTool("publish",
		mcp.WithDescription("Publish one localization of a node to the live workspace."),
		mcp.WithString("id",
			mcp.Description("Node ID"),
			mcp.Required(),
		),
		mcp.WithString("locale",
			mcp.Description("Content locale. Omit for the default locale."),
		),
	)
}

func publishHandler(mgr ports.ContentManager) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewPublishCommand(mgr, req.GetString("id", ""), req.GetString("locale", ""))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

func unpublishTool() mcp.Tool {
	return mcp.NewTool("unpublish",
		mcp.WithDescription("Withdraw one localization of a node from the live workspace."),
		mcp.WithString("id",
			mcp.Description("Node ID"),
			mcp.Required(),
		),
		mcp.WithString("locale",
			mcp.Description("Content locale. Omit for the default locale."),
		),
	)
}

func unpublishHandler(mgr ports.ContentManager) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewUnpublishCommand(mgr, req.GetString("id", ""), req.GetString("locale", ""))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- regenerate_routes ---

func regenerateTool() mcp.Tool {
	return mcp.NewTool("regenerate_routes", withScope(
		mcp.WithDescription("Recompute every route of a workspace and locale in batches."),
	)...)
}

func regenerateHandler(mgr ports.ContentManager) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ws, locale, err := scope(req)
		if err != nil {
			return toolError(err)
		}
		result, err := commands.NewRegenerateRoutesCommand(mgr, ws, locale).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- cleanup_history ---

func cleanupTool() mcp.Tool {
	return mcp.NewTool("cleanup_history", withScope(
		mcp.WithDescription("Delete history (redirect) routes, optionally only for one node."),
		mcp.WithString("target_id",
			mcp.Description("Only remove history routes of this node"),
		),
	)...)
}

func cleanupHandler(mgr ports.ContentManager) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ws, locale, err := scope(req)
		if err != nil {
			return toolError(err)
		}
		cmd := commands.NewCleanupHistoryCommand(mgr, ws, locale, req.GetString("target_id", ""))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}
