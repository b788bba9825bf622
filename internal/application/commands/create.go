package commands

import (
	"context"
	"fmt"

	"sulu/internal/application"
	"sulu/internal/domain"
	"sulu/internal/ports"
)

// CreateResult contains the result of creating a node
type CreateResult struct {
	Node    *domain.Node
	Message string
}

// CreateCommand creates a draft node, optionally publishing it in the same unit
type CreateCommand struct {
	mgr        ports.ContentManager
	ParentID   string
	Type       string
	Locale     string
	Title      string
	Segment    string
	Properties domain.Properties
	Publish    bool
}

// NewCreateCommand creates a new CreateCommand
func NewCreateCommand(mgr ports.ContentManager, parentID, title string) *CreateCommand {
	return &CreateCommand{
		mgr:      mgr,
		ParentID: parentID,
		Title:    title,
	}
}

// Validate checks if the create operation is valid
func (c *CreateCommand) Validate() error {
	if err := application.ValidateRequired("title", c.Title); err != nil {
		return err
	}
	if c.ParentID != "" {
		if err := application.ValidateID("parentID", c.ParentID); err != nil {
			return err
		}
	}
	return validateLocale(c.Locale)
}

// Execute runs the create command
func (c *CreateCommand) Execute(ctx context.Context) (*CreateResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	node, err := c.mgr.Create(ctx, ports.CreateRequest{
		ParentID:   c.ParentID,
		Type:       c.Type,
		Locale:     c.Locale,
		Title:      c.Title,
		Segment:    c.Segment,
		Properties: c.Properties,
		Publish:    c.Publish,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create node: %w", err)
	}

	verb := "Created"
	if c.Publish {
		verb = "Created and published"
	}
	return &CreateResult{
		Node:    node,
		Message: fmt.Sprintf("%s %s %s", verb, node.ID, node.Path),
	}, nil
}

// validateLocale accepts an empty locale, which selects the default
func validateLocale(locale string) error {
	if locale == "" {
		return nil
	}
	return application.ValidateLocale(locale)
}
