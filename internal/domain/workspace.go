package domain

import "fmt"

// Workspace names one of the two isolated trees of the content store
type Workspace string

const (
	WorkspaceDraft Workspace = "draft"
	WorkspaceLive  Workspace = "live"
)

// Workspaces lists every workspace in flush order (draft before live)
var Workspaces = []Workspace{WorkspaceDraft, WorkspaceLive}

func (w Workspace) String() string {
	return string(w)
}

// Valid reports whether w is a known workspace
func (w Workspace) Valid() bool {
	return w == WorkspaceDraft || w == WorkspaceLive
}

// ParseWorkspace converts a workspace name, defaulting to draft for an empty string
func ParseWorkspace(s string) (Workspace, error) {
	switch s {
	case "", "draft":
		return WorkspaceDraft, nil
	case "live":
		return WorkspaceLive, nil
	default:
		return "", fmt.Errorf("unknown workspace: %s", s)
	}
}
