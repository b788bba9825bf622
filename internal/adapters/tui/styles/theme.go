package styles

import (
	"github.com/charmbracelet/lipgloss"

	"sulu/internal/domain"
)

var (
	// Colors
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Muted     = lipgloss.Color("#6B7280") // Gray
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	White     = lipgloss.Color("#FFFFFF")
	Black     = lipgloss.Color("#000000")

	// Workspace colors
	DraftColor = lipgloss.Color("#60A5FA") // Blue
	LiveColor  = lipgloss.Color("#10B981") // Green

	// Base styles
	App = lipgloss.NewStyle().
		Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Tree node styles
	NodeTitle = lipgloss.NewStyle()

	NodeUntitled = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	NodeRoute = lipgloss.NewStyle().
			Foreground(Muted)

	NodeSelected = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Bold(true)

	NodeMarked = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)

	// Stage badges
	StageDraft = lipgloss.NewStyle().
			Foreground(Muted)

	StagePublished = lipgloss.NewStyle().
			Foreground(Secondary)

	StageModified = lipgloss.NewStyle().
			Foreground(Warning)

	// Tree indicators
	TreeBranch    = lipgloss.NewStyle().Foreground(Muted)
	TreeExpanded  = "▼ "
	TreeCollapsed = "▶ "
	TreeLeaf      = "  "

	// Status bar
	StatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("#1F2937")).
			Foreground(White).
			Padding(0, 1)

	StatusKey = lipgloss.NewStyle().
			Foreground(White).
			Bold(true).
			Padding(0, 1).
			MarginRight(1)

	// Input styles
	InputLabel = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	InputField = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1)

	InputFocused = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Secondary).
			Padding(0, 1)

	// Help styles
	HelpKey = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Muted)

	HelpSeparator = lipgloss.NewStyle().
			Foreground(Muted).
			SetString(" • ")

	// Message styles
	Success = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	ErrorMsg = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	MutedText = lipgloss.NewStyle().
			Foreground(Muted)
)

// WorkspaceColor returns the badge color for a workspace
func WorkspaceColor(ws domain.Workspace) lipgloss.Color {
	if ws == domain.WorkspaceLive {
		return LiveColor
	}
	return DraftColor
}

// StageStyle returns the badge style for a stage
func StageStyle(s domain.Stage) lipgloss.Style {
	switch s {
	case domain.StagePublished:
		return StagePublished
	case domain.StageUnpublishedChanges:
		return StageModified
	default:
		return StageDraft
	}
}
