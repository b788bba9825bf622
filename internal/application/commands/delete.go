package commands

import (
	"context"
	"fmt"

	"sulu/internal/application"
	"sulu/internal/ports"
)

// DeleteResult contains the result of a delete operation
type DeleteResult struct {
	DeletedID string
	Message   string
}

// DeleteCommand removes a node and its subtree from both workspaces
type DeleteCommand struct {
	mgr ports.ContentManager
	ID  string
}

// NewDeleteCommand creates a new DeleteCommand
func NewDeleteCommand(mgr ports.ContentManager, id string) *DeleteCommand {
	return &DeleteCommand{
		mgr: mgr,
		ID:  id,
	}
}

// Validate checks if the delete operation is valid
func (c *DeleteCommand) Validate() error {
	return application.ValidateID("id", c.ID)
}

// Execute runs the delete command
func (c *DeleteCommand) Execute(ctx context.Context) (*DeleteResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := c.mgr.Remove(ctx, c.ID); err != nil {
		return nil, fmt.Errorf("failed to delete %s: %w", c.ID, err)
	}

	return &DeleteResult{
		DeletedID: c.ID,
		Message:   fmt.Sprintf("Deleted %s", c.ID),
	}, nil
}
