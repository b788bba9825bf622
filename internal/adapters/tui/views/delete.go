package views

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"sulu/internal/adapters/tui/styles"
	"sulu/internal/application/commands"
	"sulu/internal/ports"
)

// DeleteModel is the model for the delete confirmation view
type DeleteModel struct {
	ConfirmationModel
	mgr ports.ContentManager
}

// NewDeleteModel creates a new delete view model
func NewDeleteModel(mgr ports.ContentManager) *DeleteModel {
	return &DeleteModel{
		ConfirmationModel: NewConfirmationModel(),
		mgr:               mgr,
	}
}

// Init initializes the delete view
func (m *DeleteModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the delete view
func (m *DeleteModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		handled, cmd := m.HandleKeyMsg(msg,
			func() tea.Msg { return m.doDelete() },
			func() tea.Msg { return SwitchToBrowserMsg{} },
		)
		if handled {
			return m, cmd
		}
	}

	return m, nil
}

func (m *DeleteModel) doDelete() tea.Msg {
	if m.TargetNode == nil {
		return DeleteErrMsg{Err: fmt.Errorf("no target selected")}
	}

	res, err := commands.NewDeleteCommand(m.mgr, m.TargetNode.ID).Execute(context.Background())
	if err != nil {
		return DeleteErrMsg{Err: err}
	}
	return DeleteSuccessMsg{Message: fmt.Sprintf("%s (%s)", res.Message, m.TargetNode.Path)}
}

// DeleteSuccessMsg indicates successful deletion
type DeleteSuccessMsg struct {
	Message string
}

// DeleteErrMsg indicates an error during deletion
type DeleteErrMsg struct {
	Err error
}

// View renders the delete confirmation view
func (m *DeleteModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Delete Confirmation"))
	b.WriteString("\n\n")

	b.WriteString(styles.ErrorMsg.Render("This removes the node from draft and live!"))
	b.WriteString("\n\n")

	b.WriteString(RenderTargetInfo(m.TargetNode, "Delete"))
	b.WriteString("\n\n")

	if m.TargetNode != nil && len(m.TargetNode.Children) > 0 {
		b.WriteString(styles.MutedText.Render(fmt.Sprintf("  %d child pages and all their routes go with it.", len(m.TargetNode.Children))))
		b.WriteString("\n\n")
	}

	if msg := m.RenderMessage(); msg != "" {
		b.WriteString(msg)
		b.WriteString("\n\n")
	}

	b.WriteString(RenderConfirmPrompt("Are you sure?"))

	return styles.App.Render(b.String())
}
