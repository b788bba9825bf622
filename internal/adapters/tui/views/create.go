package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"sulu/internal/adapters/tui/styles"
	"sulu/internal/application/commands"
	"sulu/internal/domain"
	"sulu/internal/ports"
)

const (
	fieldTitle = iota
	fieldSegment
)

// CreateModel is the form used to create a node or edit its title and segment
type CreateModel struct {
	ViewState
	mgr    ports.ContentManager
	locale string
	form   *InputForm
	parent *domain.TreeNode
	target *domain.TreeNode
}

// NewCreateModel creates a new create view model
func NewCreateModel(mgr ports.ContentManager, locale string) *CreateModel {
	title := NewInputField("Title", "About us", 200)
	title.Required = true
	segment := NewInputField("Route segment", "about", 200)

	return &CreateModel{
		mgr:    mgr,
		locale: locale,
		form:   NewInputForm(title, segment),
	}
}

// SetParent prepares the form for a new child of node; nil creates at the root
func (m *CreateModel) SetParent(node *domain.TreeNode) {
	m.reset()
	m.parent = node
	m.form.Fields[fieldSegment].Hint = "leave empty to generate it from the route template"
}

// SetTarget prepares the form for editing node
func (m *CreateModel) SetTarget(node *domain.TreeNode) {
	m.reset()
	m.target = node
	m.form.SetValue(fieldTitle, node.Title)
	m.form.Fields[fieldSegment].Hint = "leave empty to keep the current segment"
}

func (m *CreateModel) reset() {
	m.ClearMessage()
	m.parent = nil
	m.target = nil
	m.form.Reset()
}

// Editing reports whether the form edits an existing node
func (m *CreateModel) Editing() bool {
	return m.target != nil
}

// Init initializes the create view
func (m *CreateModel) Init() tea.Cmd {
	return m.form.Init()
}

// Update handles messages for the create view
func (m *CreateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.form.Keys.Cancel):
			return m, func() tea.Msg {
				return SwitchToBrowserMsg{}
			}

		case key.Matches(msg, m.form.Keys.Submit):
			return m, m.submit()
		}
	}

	_, cmd := m.form.Update(msg)
	return m, cmd
}

func (m *CreateModel) submit() tea.Cmd {
	if missing := m.form.Missing(); missing != "" {
		err := fmt.Errorf("%s is required", strings.ToLower(missing))
		return func() tea.Msg { return CreateErrMsg{Err: err} }
	}

	title := m.form.Value(fieldTitle)
	segment := m.form.Value(fieldSegment)
	ctx := context.Background()

	if target := m.target; target != nil {
		return func() tea.Msg {
			cmd := commands.NewUpdateCommand(m.mgr, target.ID, m.locale)
			cmd.Title = &title
			if segment != "" {
				cmd.Segment = &segment
			}
			res, err := cmd.Execute(ctx)
			if err != nil {
				return CreateErrMsg{Err: err}
			}
			return CreateSuccessMsg{Message: res.Message}
		}
	}

	parentID := ""
	if m.parent != nil {
		parentID = m.parent.ID
	}
	return func() tea.Msg {
		cmd := commands.NewCreateCommand(m.mgr, parentID, title)
		cmd.Locale = m.locale
		cmd.Segment = segment
		res, err := cmd.Execute(ctx)
		if err != nil {
			return CreateErrMsg{Err: err}
		}
		return CreateSuccessMsg{Message: res.Message}
	}
}

// CreateSuccessMsg indicates a successful create or edit
type CreateSuccessMsg struct {
	Message string
}

// CreateErrMsg indicates an error during create or edit
type CreateErrMsg struct {
	Err error
}

// View renders the create view
func (m *CreateModel) View() string {
	var b strings.Builder

	switch {
	case m.target != nil:
		b.WriteString(styles.Title.Render("Edit Page"))
		b.WriteString("\n\n")
		b.WriteString(RenderTargetInfo(m.target, "Edit"))
	case m.parent != nil:
		b.WriteString(styles.Title.Render("New Page"))
		b.WriteString("\n\n")
		b.WriteString(styles.Subtitle.Render("Under " + m.parent.Path))
	default:
		b.WriteString(styles.Title.Render("New Page"))
		b.WriteString("\n\n")
		b.WriteString(styles.Subtitle.Render("At the root"))
	}
	b.WriteString(styles.Subtitle.Render(" (locale " + m.locale + ")"))
	b.WriteString("\n\n")

	b.WriteString(m.form.View())

	if msg := m.RenderMessage(); msg != "" {
		b.WriteString(msg)
		b.WriteString("\n\n")
	}

	submit := "create"
	if m.Editing() {
		submit = "save"
	}
	b.WriteString(m.form.RenderHelp(submit))

	return styles.App.Render(b.String())
}
