package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"sulu/internal/adapters/tui/styles"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	ViewState
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, func() tea.Msg {
				return SwitchToBrowserMsg{}
			}
		}
	}

	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Sulu Help"))
	b.WriteString("\n\n")

	b.WriteString(styles.InputLabel.Render("Navigation"))
	b.WriteString("\n")
	b.WriteString(helpLine("j / k / ↑ / ↓", "Move up/down"))
	b.WriteString(helpLine("h / ←", "Collapse / go to parent"))
	b.WriteString(helpLine("l / → / Enter", "Expand"))
	b.WriteString(helpLine("w", "Switch between draft and live"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Editing (always on draft)"))
	b.WriteString("\n")
	b.WriteString(helpLine("n", "New page under the selected one"))
	b.WriteString(helpLine("e", "Edit title and route segment"))
	b.WriteString(helpLine("d", "Delete with all children"))
	b.WriteString(helpLine("c", "Copy next to the original"))
	b.WriteString(helpLine("m", "Mark, then m again on the new parent"))
	b.WriteString(helpLine("K / J", "Move up/down among siblings"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Publishing and routes"))
	b.WriteString("\n")
	b.WriteString(helpLine("p", "Publish the selected page"))
	b.WriteString(helpLine("u", "Unpublish the selected page"))
	b.WriteString(helpLine("y", "Copy the route to the clipboard"))
	b.WriteString(helpLine("R", "Regenerate routes of the workspace"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("General"))
	b.WriteString("\n")
	b.WriteString(helpLine("?", "Toggle help"))
	b.WriteString(helpLine("q / Ctrl+C", "Quit"))
	b.WriteString("\n\n")

	b.WriteString(styles.InputLabel.Render("Stages"))
	b.WriteString("\n")
	b.WriteString(styles.StageDraft.Render("  [draft]      never published"))
	b.WriteString("\n")
	b.WriteString(styles.StagePublished.Render("  [published]  live matches draft"))
	b.WriteString("\n")
	b.WriteString(styles.StageModified.Render("  [modified]   draft has unpublished changes"))
	b.WriteString("\n\n")

	b.WriteString(styles.HelpDesc.Render("Press "))
	b.WriteString(styles.HelpKey.Render("esc"))
	b.WriteString(styles.HelpDesc.Render(" or "))
	b.WriteString(styles.HelpKey.Render("?"))
	b.WriteString(styles.HelpDesc.Render(" to close"))

	return styles.App.Render(b.String())
}

func helpLine(key, desc string) string {
	return "  " + styles.HelpKey.Render(padRight(key, 20)) + styles.HelpDesc.Render(desc) + "\n"
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}
