package ports

import (
	"context"

	"sulu/internal/domain"
)

// CreateRequest describes a new draft content item
type CreateRequest struct {
	ParentID   string // empty for a top level item
	Type       string
	Locale     string
	Title      string
	Segment    string // optional explicit resource segment, otherwise the route template is used
	Properties domain.Properties
	Publish    bool // publish in the same unit of work
}

// UpdateRequest describes an edit of one localization. Nil fields are left unchanged.
type UpdateRequest struct {
	ID         string
	Locale     string
	Title      *string
	Segment    *string
	Properties domain.Properties
	Publish    bool
}

// RegenerateStats reports a batch route regeneration
type RegenerateStats struct {
	Scanned int
	Changed int
	Batches int
}

// ContentManager is the operation surface of the content core
type ContentManager interface {
	Create(ctx context.Context, req CreateRequest) (*domain.Node, error)
	Update(ctx context.Context, req UpdateRequest) (*domain.Node, error)
	Rename(ctx context.Context, id, newName string) (*domain.Node, error)
	Move(ctx context.Context, id, newParentID string) (*domain.Node, error)
	Copy(ctx context.Context, id, newParentID string) (*domain.Node, error)
	Reorder(ctx context.Context, id string, position int) ([]*domain.Node, error)
	Remove(ctx context.Context, id string) error
	Publish(ctx context.Context, id, locale string) (*domain.Node, error)
	Unpublish(ctx context.Context, id, locale string) (*domain.Node, error)

	Get(ctx context.Context, ws domain.Workspace, id string) (*domain.Node, error)
	Tree(ctx context.Context, ws domain.Workspace, locale string) (*domain.TreeNode, error)
	Routes(ctx context.Context, ws domain.Workspace, locale string) ([]*domain.Route, error)
	Resolve(ctx context.Context, ws domain.Workspace, locale, path string) (*domain.Resolution, error)

	RegenerateRoutes(ctx context.Context, ws domain.Workspace, locale string) (*RegenerateStats, error)
	CleanupHistory(ctx context.Context, ws domain.Workspace, locale, targetID string) (int, error)
}
