package application

import "sulu/internal/domain"

// Re-export domain types for use by adapters
type (
	Node       = domain.Node
	TreeNode   = domain.TreeNode
	Route      = domain.Route
	Resolution = domain.Resolution
	Workspace  = domain.Workspace
	Stage      = domain.Stage
)

const (
	WorkspaceDraft = domain.WorkspaceDraft
	WorkspaceLive  = domain.WorkspaceLive
)

// ParseWorkspace converts a workspace name
func ParseWorkspace(s string) (Workspace, error) {
	return domain.ParseWorkspace(s)
}
