package commands

import (
	"context"
	"fmt"

	"sulu/internal/application"
	"sulu/internal/domain"
	"sulu/internal/ports"
)

// MoveResult contains the result of moving a node
type MoveResult struct {
	Node    *domain.Node
	Message string
}

// MoveCommand moves a node under another parent. An empty DestinationID
// moves it to the workspace root.
type MoveCommand struct {
	mgr           ports.ContentManager
	SourceID      string
	DestinationID string
}

// NewMoveCommand creates a new MoveCommand
func NewMoveCommand(mgr ports.ContentManager, sourceID, destinationID string) *MoveCommand {
	return &MoveCommand{
		mgr:           mgr,
		SourceID:      sourceID,
		DestinationID: destinationID,
	}
}

// Validate checks if the move operation is valid
func (c *MoveCommand) Validate() error {
	if err := application.ValidateID("sourceID", c.SourceID); err != nil {
		return err
	}
	if c.DestinationID != "" {
		if err := application.ValidateID("destinationID", c.DestinationID); err != nil {
			return err
		}
	}
	if c.SourceID == c.DestinationID {
		return &application.MoveError{
			SourceID: c.SourceID,
			DestID:   c.DestinationID,
			Reason:   "a node cannot be moved under itself",
		}
	}
	return nil
}

// Execute runs the move command
func (c *MoveCommand) Execute(ctx context.Context) (*MoveResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	node, err := c.mgr.Move(ctx, c.SourceID, c.DestinationID)
	if err != nil {
		return nil, fmt.Errorf("failed to move node: %w", err)
	}

	return &MoveResult{
		Node:    node,
		Message: fmt.Sprintf("Moved %s to %s", node.ID, node.Path),
	}, nil
}

// CopyResult contains the result of copying a subtree
type CopyResult struct {
	Node    *domain.Node
	Message string
}

// CopyCommand copies a node and its subtree under another parent
type CopyCommand struct {
	mgr           ports.ContentManager
	SourceID      string
	DestinationID string
}

// NewCopyCommand creates a new CopyCommand
func NewCopyCommand(mgr ports.ContentManager, sourceID, destinationID string) *CopyCommand {
	return &CopyCommand{
		mgr:           mgr,
		SourceID:      sourceID,
		DestinationID: destinationID,
	}
}

// Validate checks if the copy operation is valid
func (c *CopyCommand) Validate() error {
	if err := application.ValidateID("sourceID", c.SourceID); err != nil {
		return err
	}
	if c.DestinationID != "" {
		return application.ValidateID("destinationID", c.DestinationID)
	}
	return nil
}

// Execute runs the copy command
func (c *CopyCommand) Execute(ctx context.Context) (*CopyResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	node, err := c.mgr.Copy(ctx, c.SourceID, c.DestinationID)
	if err != nil {
		return nil, fmt.Errorf("failed to copy node: %w", err)
	}

	return &CopyResult{
		Node:    node,
		Message: fmt.Sprintf("Copied %s to %s (%s)", c.SourceID, node.Path, node.ID),
	}, nil
}

// ReorderResult contains the siblings after reordering
type ReorderResult struct {
	Siblings []*domain.Node
	Message  string
}

// ReorderCommand places a node at a position among its siblings
type ReorderCommand struct {
	mgr      ports.ContentManager
	ID       string
	Position int
}

// NewReorderCommand creates a new ReorderCommand
func NewReorderCommand(mgr ports.ContentManager, id string, position int) *ReorderCommand {
	return &ReorderCommand{
		mgr:      mgr,
		ID:       id,
		Position: position,
	}
}

// Validate checks if the reorder operation is valid
func (c *ReorderCommand) Validate() error {
	if err := application.ValidateID("id", c.ID); err != nil {
		return err
	}
	if c.Position < 1 {
		return &application.ValidationError{
			Field:   "position",
			Message: fmt.Sprintf("position must be at least 1, got: %d", c.Position),
		}
	}
	return nil
}

// Execute runs the reorder command
func (c *ReorderCommand) Execute(ctx context.Context) (*ReorderResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	siblings, err := c.mgr.Reorder(ctx, c.ID, c.Position)
	if err != nil {
		return nil, fmt.Errorf("failed to reorder %s: %w", c.ID, err)
	}

	return &ReorderResult{
		Siblings: siblings,
		Message:  fmt.Sprintf("Moved %s to position %d of %d", c.ID, min(c.Position, len(siblings)), len(siblings)),
	}, nil
}
