package commands

import (
	"context"
	"fmt"

	"sulu/internal/application"
	"sulu/internal/domain"
	"sulu/internal/ports"
)

// TreeCommand returns a workspace tree localized in one locale
type TreeCommand struct {
	mgr       ports.ContentManager
	Workspace domain.Workspace
	Locale    string
}

// NewTreeCommand creates a new TreeCommand
func NewTreeCommand(mgr ports.ContentManager, ws domain.Workspace, locale string) *TreeCommand {
	return &TreeCommand{mgr: mgr, Workspace: ws, Locale: locale}
}

// Execute runs the tree command
func (c *TreeCommand) Execute(ctx context.Context) (*domain.TreeNode, error) {
	if err := validateScope(c.Workspace, c.Locale); err != nil {
		return nil, err
	}
	return c.mgr.Tree(ctx, c.Workspace, c.Locale)
}

// ListRoutesCommand lists the routes of a workspace and locale
type ListRoutesCommand struct {
	mgr       ports.ContentManager
	Workspace domain.Workspace
	Locale    string
}

// NewListRoutesCommand creates a new ListRoutesCommand
func NewListRoutesCommand(mgr ports.ContentManager, ws domain.Workspace, locale string) *ListRoutesCommand {
	return &ListRoutesCommand{mgr: mgr, Workspace: ws, Locale: locale}
}

// Execute runs the list routes command
func (c *ListRoutesCommand) Execute(ctx context.Context) ([]*domain.Route, error) {
	if err := validateScope(c.Workspace, c.Locale); err != nil {
		return nil, err
	}
	return c.mgr.Routes(ctx, c.Workspace, c.Locale)
}

// ResolveResult contains the outcome of resolving a path
type ResolveResult struct {
	Resolution *domain.Resolution
	Message    string
}

// ResolveCommand looks up the node behind a request path
type ResolveCommand struct {
	mgr       ports.ContentManager
	Workspace domain.Workspace
	Locale    string
	Path      string
}

// NewResolveCommand creates a new ResolveCommand
func NewResolveCommand(mgr ports.ContentManager, ws domain.Workspace, locale, path string) *ResolveCommand {
	return &ResolveCommand{mgr: mgr, Workspace: ws, Locale: locale, Path: path}
}

// Validate checks if the resolve operation is valid
func (c *ResolveCommand) Validate() error {
	if err := application.ValidateRequired("path", c.Path); err != nil {
		return err
	}
	return validateScope(c.Workspace, c.Locale)
}

// Execute runs the resolve command
func (c *ResolveCommand) Execute(ctx context.Context) (*ResolveResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	res, err := c.mgr.Resolve(ctx, c.Workspace, c.Locale, c.Path)
	if err != nil {
		return nil, err
	}

	msg := fmt.Sprintf("%s -> %s", res.Route.Path, res.TargetID)
	if res.Redirect {
		msg = fmt.Sprintf("%s -> 301 %s (%s)", res.Route.Path, res.Location, res.TargetID)
	}
	return &ResolveResult{Resolution: res, Message: msg}, nil
}

// RegenerateRoutesResult contains the batch statistics
type RegenerateRoutesResult struct {
	Stats   *ports.RegenerateStats
	Message string
}

// RegenerateRoutesCommand recomputes every route of a workspace and locale
type RegenerateRoutesCommand struct {
	mgr       ports.ContentManager
	Workspace domain.Workspace
	Locale    string
}

// NewRegenerateRoutesCommand creates a new RegenerateRoutesCommand
func NewRegenerateRoutesCommand(mgr ports.ContentManager, ws domain.Workspace, locale string) *RegenerateRoutesCommand {
	return &RegenerateRoutesCommand{mgr: mgr, Workspace: ws, Locale: locale}
}

// Execute runs the regenerate command
func (c *RegenerateRoutesCommand) Execute(ctx context.Context) (*RegenerateRoutesResult, error) {
	if err := validateScope(c.Workspace, c.Locale); err != nil {
		return nil, err
	}

	stats, err := c.mgr.RegenerateRoutes(ctx, c.Workspace, c.Locale)
	if err != nil {
		return nil, fmt.Errorf("failed to regenerate routes: %w", err)
	}

	return &RegenerateRoutesResult{
		Stats: stats,
		Message: fmt.Sprintf("Regenerated %s routes: %d nodes scanned, %d changed, %d batches",
			c.Workspace, stats.Scanned, stats.Changed, stats.Batches),
	}, nil
}

// CleanupHistoryResult contains the number of removed history routes
type CleanupHistoryResult struct {
	Deleted int
	Message string
}

// CleanupHistoryCommand removes history routes, optionally for one target
type CleanupHistoryCommand struct {
	mgr       ports.ContentManager
	Workspace domain.Workspace
	Locale    string
	TargetID  string
}

// NewCleanupHistoryCommand creates a new CleanupHistoryCommand
func NewCleanupHistoryCommand(mgr ports.ContentManager, ws domain.Workspace, locale, targetID string) *CleanupHistoryCommand {
	return &CleanupHistoryCommand{mgr: mgr, Workspace: ws, Locale: locale, TargetID: targetID}
}

// Validate checks if the cleanup operation is valid
func (c *CleanupHistoryCommand) Validate() error {
	if c.TargetID != "" {
		if err := application.ValidateID("targetID", c.TargetID); err != nil {
			return err
		}
	}
	return validateScope(c.Workspace, c.Locale)
}

// Execute runs the cleanup command
func (c *CleanupHistoryCommand) Execute(ctx context.Context) (*CleanupHistoryResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	n, err := c.mgr.CleanupHistory(ctx, c.Workspace, c.Locale, c.TargetID)
	if err != nil {
		return nil, fmt.Errorf("failed to clean up history: %w", err)
	}

	return &CleanupHistoryResult{
		Deleted: n,
		Message: fmt.Sprintf("Removed %d history routes", n),
	}, nil
}

func validateScope(ws domain.Workspace, locale string) error {
	if !ws.Valid() {
		return &application.ValidationError{
			Field:   "workspace",
			Message: fmt.Sprintf("unknown workspace: %s", ws),
		}
	}
	return validateLocale(locale)
}
