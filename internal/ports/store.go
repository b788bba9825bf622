package ports

import (
	"context"

	"sulu/internal/domain"
)

// NodeReader provides lookups of content nodes in a workspace.
// Find methods return (nil, nil) when nothing matches.
type NodeReader interface {
	FindNode(ctx context.Context, ws domain.Workspace, id string) (*domain.Node, error)
	FindNodeByPath(ctx context.Context, ws domain.Workspace, path string) (*domain.Node, error)

	// Children returns direct children ordered by order weight, then creation time
	Children(ctx context.Context, ws domain.Workspace, parentID string) ([]*domain.Node, error)

	// Descendants returns every node below path ordered by path
	Descendants(ctx context.Context, ws domain.Workspace, path string) ([]*domain.Node, error)

	// ScanNodes pages through all nodes of a workspace in path order,
	// returning at most limit nodes whose path sorts after afterPath
	ScanNodes(ctx context.Context, ws domain.Workspace, afterPath string, limit int) ([]*domain.Node, error)
}

// NodeWriter mutates content nodes within a unit of work
type NodeWriter interface {
	InsertNode(ctx context.Context, node *domain.Node) error
	UpdateNode(ctx context.Context, node *domain.Node) error

	// MoveNode places the node under newParentID with newName and rewrites
	// the paths of the whole subtree
	MoveNode(ctx context.Context, ws domain.Workspace, id, newParentID, newName string) (*domain.Node, error)

	// DeleteSubtree removes the node, its descendants and their localizations
	DeleteSubtree(ctx context.Context, ws domain.Workspace, id string) error

	SetOrder(ctx context.Context, ws domain.Workspace, id string, weight int) error
	SaveLocalization(ctx context.Context, ws domain.Workspace, nodeID string, loc *domain.Localization) error
	DeleteLocalization(ctx context.Context, ws domain.Workspace, nodeID, locale string) error
}

// RouteReader provides lookups in the route table
type RouteReader interface {
	FindRoute(ctx context.Context, ws domain.Workspace, locale, path string) (*domain.Route, error)

	// FindRouteByTarget returns the canonical (non-history) route of a target
	FindRouteByTarget(ctx context.Context, ws domain.Workspace, locale, targetID string) (*domain.Route, error)

	// RouteHistory returns the history routes of a target, oldest first
	RouteHistory(ctx context.Context, ws domain.Workspace, locale, targetID string) ([]*domain.Route, error)

	// ListRoutes returns every route of a workspace and locale ordered by path
	ListRoutes(ctx context.Context, ws domain.Workspace, locale string) ([]*domain.Route, error)
}

// RouteWriter mutates the route table within a unit of work
type RouteWriter interface {
	CreateRoute(ctx context.Context, route *domain.Route) error
	MarkHistory(ctx context.Context, routeID string) error
	ActivateRoute(ctx context.Context, routeID string) error
	DeleteRoute(ctx context.Context, routeID string) error

	// DeleteRoutesForTargets removes canonical and history routes of the targets
	// in every locale; an empty locale matches all locales
	DeleteRoutesForTargets(ctx context.Context, ws domain.Workspace, locale string, targetIDs []string) error

	// DeleteHistory removes history routes; an empty targetID matches all targets
	DeleteHistory(ctx context.Context, ws domain.Workspace, locale, targetID string) (int, error)
}

// ContentStore is the two-workspace hierarchical store plus its route table
type ContentStore interface {
	NodeReader
	RouteReader

	// Begin starts a unit of work spanning both workspaces and the route table
	Begin(ctx context.Context) (Tx, error)
	Close() error
}

// Tx represents a unit of work; Commit is the flush
type Tx interface {
	NodeReader
	NodeWriter
	RouteReader
	RouteWriter

	Commit() error
	Rollback() error
}
