package commands

import (
	"context"
	"fmt"

	"sulu/internal/application"
	"sulu/internal/domain"
	"sulu/internal/ports"
)

// PublishResult contains the result of publishing or unpublishing
type PublishResult struct {
	Node    *domain.Node
	Message string
}

// PublishCommand publishes one localization of a node
type PublishCommand struct {
	mgr    ports.ContentManager
	ID     string
	Locale string
}

// NewPublishCommand creates a new PublishCommand
func NewPublishCommand(mgr ports.ContentManager, id, locale string) *PublishCommand {
	return &PublishCommand{
		mgr:    mgr,
		ID:     id,
		Locale: locale,
	}
}

// Validate checks if the publish operation is valid
func (c *PublishCommand) Validate() error {
	if err := application.ValidateID("id", c.ID); err != nil {
		return err
	}
	return validateLocale(c.Locale)
}

// Execute runs the publish command
func (c *PublishCommand) Execute(ctx context.Context) (*PublishResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	node, err := c.mgr.Publish(ctx, c.ID, c.Locale)
	if err != nil {
		return nil, fmt.Errorf("failed to publish %s: %w", c.ID, err)
	}

	msg := fmt.Sprintf("Published %s", node.ID)
	for _, locale := range node.Locales() {
		if c.Locale == "" || locale == c.Locale {
			msg = fmt.Sprintf("Published %s at %s (%s)", node.ID, node.Localizations[locale].RoutePath, locale)
			break
		}
	}
	return &PublishResult{Node: node, Message: msg}, nil
}

// UnpublishCommand withdraws one localization of a node from live
type UnpublishCommand struct {
	mgr    ports.ContentManager
	ID     string
	Locale string
}

// NewUnpublishCommand creates a new UnpublishCommand
func NewUnpublishCommand(mgr ports.ContentManager, id, locale string) *UnpublishCommand {
	return &UnpublishCommand{
		mgr:    mgr,
		ID:     id,
		Locale: locale,
	}
}

// Validate checks if the unpublish operation is valid
func (c *UnpublishCommand) Validate() error {
	if err := application.ValidateID("id", c.ID); err != nil {
		return err
	}
	return validateLocale(c.Locale)
}

// Execute runs the unpublish command
func (c *UnpublishCommand) Execute(ctx context.Context) (*PublishResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	node, err := c.mgr.Unpublish(ctx, c.ID, c.Locale)
	if err != nil {
		return nil, fmt.Errorf("failed to unpublish %s: %w", c.ID, err)
	}

	return &PublishResult{
		Node:    node,
		Message: fmt.Sprintf("Unpublished %s", node.ID),
	}, nil
}
