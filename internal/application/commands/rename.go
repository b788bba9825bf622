package commands

import (
	"context"
	"fmt"

	"sulu/internal/application"
	"sulu/internal/domain"
	"sulu/internal/ports"
)

// RenameResult contains the result of renaming a node
type RenameResult struct {
	Node    *domain.Node
	OldPath string
	Message string
}

// RenameCommand changes the name (last path segment) of a node
type RenameCommand struct {
	mgr     ports.ContentManager
	ID      string
	NewName string
}

// NewRenameCommand creates a new RenameCommand
func NewRenameCommand(mgr ports.ContentManager, id, newName string) *RenameCommand {
	return &RenameCommand{
		mgr:     mgr,
		ID:      id,
		NewName: newName,
	}
}

// Validate checks if the rename operation is valid
func (c *RenameCommand) Validate() error {
	if err := application.ValidateID("id", c.ID); err != nil {
		return err
	}
	if err := application.ValidateRequired("newName", c.NewName); err != nil {
		return err
	}
	if domain.Slugify(c.NewName) == "" {
		return &application.ValidationError{
			Field:   "newName",
			Message: fmt.Sprintf("name %q has no usable characters", c.NewName),
		}
	}
	return nil
}

// Execute runs the rename command
func (c *RenameCommand) Execute(ctx context.Context) (*RenameResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	before, err := c.mgr.Get(ctx, domain.WorkspaceDraft, c.ID)
	if err != nil {
		return nil, err
	}

	node, err := c.mgr.Rename(ctx, c.ID, c.NewName)
	if err != nil {
		return nil, fmt.Errorf("failed to rename %s: %w", c.ID, err)
	}

	return &RenameResult{
		Node:    node,
		OldPath: before.Path,
		Message: fmt.Sprintf("Renamed %s -> %s", before.Path, node.Path),
	}, nil
}
