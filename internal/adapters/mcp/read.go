package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"sulu/internal/application/commands"
	"sulu/internal/domain"
	"sulu/internal/ports"
)

// RegisterReadTools adds all read-only content tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, mgr ports.ContentManager) {
	s.AddTool(treeTool(), treeHandler(mgr))
	s.AddTool(routesTool(), routesHandler(mgr))
	s.AddTool(resolveTool(), resolveHandler(mgr))
	s.AddTool(getTool(), getHandler(mgr))
}

func withScope(opts ...mcp.ToolOption) []mcp.ToolOption {
	return append(opts,
		mcp.WithString("workspace",
			mcp.Description("Workspace: draft (default) or live"),
		),
		mcp.WithString("locale",
			mcp.Description("Content locale, e.g. en or de_AT. Omit for the default locale."),
		),
	)
}

func scope(req mcp.CallToolRequest) (domain.Workspace, string, error) {
	ws, err := domain.ParseWorkspace(req.GetString("workspace", ""))
	if err != nil {
		return "", "", err
	}
	return ws, req.GetString("locale", ""), nil
}

// --- tree ---

func treeTool() mcp.Tool {
	return mcp.NewTool("tree", withScope(
		mcp.WithDescription("Display a workspace as a tree with node IDs, titles, stages and routes."),
	)...)
}

func treeHandler(mgr ports.ContentManager) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ws, locale, err := scope(req)
		if err != nil {
			return toolError(err)
		}
		root, err := commands.NewTreeCommand(mgr, ws, locale).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if len(root.Children) == 0 {
			return mcp.NewToolResultText("Workspace is empty."), nil
		}
		var sb strings.Builder
		renderTree(&sb, root, "")
		return mcp.NewToolResultText(sb.String()), nil
	}
}

func renderTree(sb *strings.Builder, node *domain.TreeNode, prefix string) {
	if !node.IsRoot() {
		fmt.Fprintf(sb, "%s%s  %s  [%s]  %s\n", prefix, node.ID, displayTitle(node), node.Stage.Label(), node.RoutePath)
		prefix += "  "
	}
	for _, child := range node.Children {
		renderTree(sb, child, prefix)
	}
}

func displayTitle(node *domain.TreeNode) string {
	if node.Title == "" {
		return "(" + node.Name + ")"
	}
	return node.Title
}

// --- routes ---

func routesTool() mcp.Tool {
	return mcp.NewTool("routes", withScope(
		mcp.WithDescription("List the routes of a workspace and locale, marking history routes (redirects)."),
	)...)
}

func routesHandler(mgr ports.ContentManager) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ws, locale, err := scope(req)
		if err != nil {
			return toolError(err)
		}
		routes, err := commands.NewListRoutesCommand(mgr, ws, locale).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(routes, formatRoute)
	}
}

// --- resolve ---

func resolveTool() mcp.Tool {
	return mcp.NewTool("resolve", withScope(
		mcp.WithDescription("Resolve a request path to a node ID. History routes report the redirect location."),
		mcp.WithString("path",
			mcp.Description("Request path, e.g. /parent/child"),
			mcp.Required(),
		),
	)...)
}

func resolveHandler(mgr ports.ContentManager) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ws, locale, err := scope(req)
		if err != nil {
			return toolError(err)
		}
		result, err := commands.NewResolveCommand(mgr, ws, locale, req.GetString("path", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- get ---

func getTool() mcp.Tool {
	return mcp.NewTool("get", withScope(
		mcp.WithDescription("Show a node with all its localizations."),
		mcp.WithString("id",
			mcp.Description("Node ID"),
			mcp.Required(),
		),
	)...)
}

func getHandler(mgr ports.ContentManager) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ws, _, err := scope(req)
		if err != nil {
			return toolError(err)
		}
		id := req.GetString("id", "")
		if id == "" {
			return toolError(fmt.Errorf("id is required"))
		}

		node, err := mgr.Get(ctx, ws, id)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(formatNode(node)), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatEntities[T any](entities []T, format func(T) string) (*mcp.CallToolResult, error) {
	if len(entities) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, e := range entities {
		sb.WriteString(format(e))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func formatRoute(r *domain.Route) string {
	if r.IsHistory {
		return fmt.Sprintf("%s  history  %s", r.Path, r.TargetID)
	}
	return fmt.Sprintf("%s  %s", r.Path, r.TargetID)
}

func formatNode(n *domain.Node) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s  %s  (%s, %s)\n", n.ID, n.Path, n.Type, n.Workspace)
	for _, locale := range n.Locales() {
		loc := n.Localizations[locale]
		fmt.Fprintf(&sb, "  %s  %s  [%s]  route %s\n", locale, loc.Title, loc.Stage.Label(), loc.RoutePath)
		for name, v := range loc.Properties {
			if text, ok := v.Text(); ok {
				fmt.Fprintf(&sb, "    %s: %s\n", name, text)
			} else {
				fmt.Fprintf(&sb, "    %s: %s\n", name, strings.Join(v.Strings, ", "))
			}
		}
	}
	return sb.String()
}
