package commands

import (
	"context"
	"fmt"

	"sulu/internal/application"
	"sulu/internal/domain"
	"sulu/internal/ports"
)

// UpdateResult contains the result of updating a node
type UpdateResult struct {
	Node    *domain.Node
	Message string
}

// UpdateCommand edits one localization of a draft node
type UpdateCommand struct {
	mgr        ports.ContentManager
	ID         string
	Locale     string
	Title      *string
	Segment    *string
	Properties domain.Properties
	Publish    bool
}

// NewUpdateCommand creates a new UpdateCommand
func NewUpdateCommand(mgr ports.ContentManager, id, locale string) *UpdateCommand {
	return &UpdateCommand{
		mgr:    mgr,
		ID:     id,
		Locale: locale,
	}
}

// Validate checks if the update operation is valid
func (c *UpdateCommand) Validate() error {
	if err := application.ValidateID("id", c.ID); err != nil {
		return err
	}
	if err := validateLocale(c.Locale); err != nil {
		return err
	}
	if c.Title == nil && c.Segment == nil && len(c.Properties) == 0 && !c.Publish {
		return &application.ValidationError{
			Field:   "update",
			Message: "nothing to update",
		}
	}
	return nil
}

// Execute runs the update command
func (c *UpdateCommand) Execute(ctx context.Context) (*UpdateResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	node, err := c.mgr.Update(ctx, ports.UpdateRequest{
		ID:         c.ID,
		Locale:     c.Locale,
		Title:      c.Title,
		Segment:    c.Segment,
		Properties: c.Properties,
		Publish:    c.Publish,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update %s: %w", c.ID, err)
	}

	route := ""
	for _, loc := range node.Localizations {
		if c.Locale == "" || loc.Locale == c.Locale {
			route = loc.RoutePath
			break
		}
	}
	return &UpdateResult{
		Node:    node,
		Message: fmt.Sprintf("Updated %s (route %s)", node.ID, route),
	}, nil
}
