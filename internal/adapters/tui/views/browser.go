package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"sulu/internal/adapters/tui/styles"
	"sulu/internal/application/commands"
	"sulu/internal/domain"
	"sulu/internal/ports"
)

// BrowserKeyMap defines key bindings for the browser view
type BrowserKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	Enter       key.Binding
	New         key.Binding
	Edit        key.Binding
	Delete      key.Binding
	Publish     key.Binding
	Unpublish   key.Binding
	Move        key.Binding
	Copy        key.Binding
	OrderUp     key.Binding
	OrderDown   key.Binding
	Workspace   key.Binding
	YankRoute   key.Binding
	Regenerate  key.Binding
	ClearMarked key.Binding
	Help        key.Binding
	Quit        key.Binding
}

var BrowserKeys = BrowserKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "collapse"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "expand"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "toggle"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Publish: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "publish"),
	),
	Unpublish: key.NewBinding(
		key.WithKeys("u"),
		key.WithHelp("u", "unpublish"),
	),
	Move: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "mark/move here"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy"),
	),
	OrderUp: key.NewBinding(
		key.WithKeys("K", "shift+up"),
		key.WithHelp("K", "order up"),
	),
	OrderDown: key.NewBinding(
		key.WithKeys("J", "shift+down"),
		key.WithHelp("J", "order down"),
	),
	Workspace: key.NewBinding(
		key.WithKeys("w"),
		key.WithHelp("w", "draft/live"),
	),
	YankRoute: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy route"),
	),
	Regenerate: key.NewBinding(
		key.WithKeys("R"),
		key.WithHelp("R", "regenerate routes"),
	),
	ClearMarked: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "clear mark"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// BrowserModel is the model for the workspace tree browser
type BrowserModel struct {
	ViewState
	mgr       ports.ContentManager
	workspace domain.Workspace
	locale    string
	root      *domain.TreeNode
	flatNodes []*domain.TreeNode
	cursor    int
	collapsed map[string]bool
	selected  string
	marked    *domain.TreeNode
	writeClip func(string) error
}

// NewBrowserModel creates a new browser model showing the draft workspace
func NewBrowserModel(mgr ports.ContentManager, locale string) *BrowserModel {
	return &BrowserModel{
		mgr:       mgr,
		workspace: domain.WorkspaceDraft,
		locale:    locale,
		collapsed: make(map[string]bool),
		writeClip: clipboard.WriteAll,
	}
}

// Init initializes the browser
func (m *BrowserModel) Init() tea.Cmd {
	return m.loadTree
}

func (m *BrowserModel) loadTree() tea.Msg {
	root, err := commands.NewTreeCommand(m.mgr, m.workspace, m.locale).Execute(context.Background())
	if err != nil {
		return errMsg{err}
	}
	return treeLoadedMsg{root}
}

type treeLoadedMsg struct {
	root *domain.TreeNode
}

type errMsg struct {
	err error
}

type successMsg struct {
	message string
}

// Update handles messages for the browser
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case treeLoadedMsg:
		m.setRoot(msg.root)
		return m, nil

	case errMsg:
		m.SetMessage(msg.err.Error(), true)
		return m, nil

	case successMsg:
		m.SetMessage(msg.message, false)
		return m, m.Reload()

	case tea.KeyMsg:
		m.ClearMessage()
		return m, m.handleKey(msg)
	}

	return m, nil
}

func (m *BrowserModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	node := m.selectedNode()

	switch {
	case key.Matches(msg, BrowserKeys.Quit):
		return tea.Quit

	case key.Matches(msg, BrowserKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, BrowserKeys.Down):
		if m.cursor < len(m.flatNodes)-1 {
			m.cursor++
		}

	case key.Matches(msg, BrowserKeys.Left):
		if node == nil {
			return nil
		}
		if node.IsExpanded && len(node.Children) > 0 {
			node.Collapse()
			m.collapsed[node.ID] = true
			m.refreshFlatNodes()
		} else if node.Parent != nil && !node.Parent.IsRoot() {
			m.selectID(node.Parent.ID)
		}

	case key.Matches(msg, BrowserKeys.Right), key.Matches(msg, BrowserKeys.Enter):
		if node == nil || len(node.Children) == 0 {
			return nil
		}
		if !node.IsExpanded {
			node.Expand()
			delete(m.collapsed, node.ID)
		} else if key.Matches(msg, BrowserKeys.Enter) {
			node.Collapse()
			m.collapsed[node.ID] = true
		}
		m.refreshFlatNodes()

	case key.Matches(msg, BrowserKeys.Workspace):
		if m.workspace == domain.WorkspaceDraft {
			m.workspace = domain.WorkspaceLive
		} else {
			m.workspace = domain.WorkspaceDraft
		}
		return m.Reload()

	case key.Matches(msg, BrowserKeys.YankRoute):
		if node == nil {
			return nil
		}
		if node.RoutePath == "" {
			m.SetMessage(fmt.Sprintf("%s has no %s route", node.ID, m.workspace), true)
			return nil
		}
		if err := m.writeClip(node.RoutePath); err != nil {
			m.SetMessage(err.Error(), true)
			return nil
		}
		m.SetMessage("Copied "+node.RoutePath, false)

	case key.Matches(msg, BrowserKeys.New):
		parent := node
		return func() tea.Msg { return SwitchToCreateMsg{ParentNode: parent} }

	case key.Matches(msg, BrowserKeys.Help):
		return func() tea.Msg { return SwitchToHelpMsg{} }

	case key.Matches(msg, BrowserKeys.Regenerate):
		return m.regenerate()

	case key.Matches(msg, BrowserKeys.ClearMarked):
		m.marked = nil
	}

	if node == nil {
		return nil
	}

	switch {
	case key.Matches(msg, BrowserKeys.Edit):
		return func() tea.Msg { return SwitchToEditMsg{Node: node} }

	case key.Matches(msg, BrowserKeys.Delete):
		return func() tea.Msg { return SwitchToDeleteMsg{TargetNode: node} }

	case key.Matches(msg, BrowserKeys.Publish):
		return m.publish(node)

	case key.Matches(msg, BrowserKeys.Unpublish):
		return m.unpublish(node)

	case key.Matches(msg, BrowserKeys.Copy):
		return m.copyNode(node)

	case key.Matches(msg, BrowserKeys.Move):
		if m.marked == nil {
			m.marked = node
			m.SetMessage(fmt.Sprintf("Marked %s, press m on the new parent", node.Path), false)
			return nil
		}
		source := m.marked
		m.marked = nil
		if source.ID == node.ID {
			return nil
		}
		return m.moveNode(source, node)

	case key.Matches(msg, BrowserKeys.OrderUp):
		if pos := siblingIndex(node); pos > 0 {
			return m.reorder(node, pos)
		}

	case key.Matches(msg, BrowserKeys.OrderDown):
		if pos := siblingIndex(node); pos >= 0 && pos < len(node.Parent.Children)-1 {
			return m.reorder(node, pos+2)
		}
	}
	return nil
}

// siblingIndex returns the zero based position of node under its parent
func siblingIndex(node *domain.TreeNode) int {
	if node.Parent == nil {
		return -1
	}
	for i, sib := range node.Parent.Children {
		if sib == node {
			return i
		}
	}
	return -1
}

func (m *BrowserModel) publish(node *domain.TreeNode) tea.Cmd {
	return func() tea.Msg {
		res, err := commands.NewPublishCommand(m.mgr, node.ID, m.locale).Execute(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return successMsg{res.Message}
	}
}

func (m *BrowserModel) unpublish(node *domain.TreeNode) tea.Cmd {
	return func() tea.Msg {
		res, err := commands.NewUnpublishCommand(m.mgr, node.ID, m.locale).Execute(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return successMsg{res.Message}
	}
}

func (m *BrowserModel) copyNode(node *domain.TreeNode) tea.Cmd {
	parentID := ""
	if node.Parent != nil {
		parentID = node.Parent.ID
	}
	return func() tea.Msg {
		res, err := commands.NewCopyCommand(m.mgr, node.ID, parentID).Execute(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return successMsg{res.Message}
	}
}

func (m *BrowserModel) moveNode(source, dest *domain.TreeNode) tea.Cmd {
	return func() tea.Msg {
		res, err := commands.NewMoveCommand(m.mgr, source.ID, dest.ID).Execute(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return successMsg{res.Message}
	}
}

func (m *BrowserModel) reorder(node *domain.TreeNode, position int) tea.Cmd {
	m.selected = node.ID
	return func() tea.Msg {
		res, err := commands.NewReorderCommand(m.mgr, node.ID, position).Execute(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return successMsg{res.Message}
	}
}

func (m *BrowserModel) regenerate() tea.Cmd {
	ws := m.workspace
	return func() tea.Msg {
		res, err := commands.NewRegenerateRoutesCommand(m.mgr, ws, m.locale).Execute(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return successMsg{res.Message}
	}
}

func (m *BrowserModel) selectedNode() *domain.TreeNode {
	if m.cursor >= 0 && m.cursor < len(m.flatNodes) {
		return m.flatNodes[m.cursor]
	}
	return nil
}

func (m *BrowserModel) selectID(id string) {
	for i, n := range m.flatNodes {
		if n.ID == id {
			m.cursor = i
			return
		}
	}
}

func (m *BrowserModel) setRoot(root *domain.TreeNode) {
	m.root = root
	for _, child := range root.Children {
		child.ExpandAll()
	}
	for _, n := range root.Flatten() {
		if m.collapsed[n.ID] {
			n.Collapse()
		}
	}
	m.refreshFlatNodes()
	if m.selected != "" {
		m.selectID(m.selected)
		m.selected = ""
	}
}

func (m *BrowserModel) refreshFlatNodes() {
	if m.root == nil {
		return
	}
	m.flatNodes = m.root.Flatten()
	// Skip root node in display
	if len(m.flatNodes) > 0 {
		m.flatNodes = m.flatNodes[1:]
	}
	if m.cursor >= len(m.flatNodes) {
		m.cursor = len(m.flatNodes) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// View renders the browser
func (m *BrowserModel) View() string {
	if m.root == nil {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(styles.Title.Render("Sulu"))
	b.WriteString("  ")
	b.WriteString(lipgloss.NewStyle().
		Foreground(styles.WorkspaceColor(m.workspace)).
		Bold(true).
		Render(string(m.workspace)))
	b.WriteString(styles.Subtitle.Render("  locale " + m.locale))
	b.WriteString("\n\n")

	if len(m.flatNodes) == 0 {
		b.WriteString(styles.MutedText.Render("Workspace is empty, press n to create a page."))
		b.WriteString("\n")
	}
	for i, node := range m.flatNodes {
		b.WriteString(m.renderNode(node, i == m.cursor))
		b.WriteString("\n")
	}

	if msg := m.RenderMessage(); msg != "" {
		b.WriteString("\n")
		b.WriteString(msg)
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelpLine())

	return styles.App.Render(b.String())
}

func (m *BrowserModel) renderNode(node *domain.TreeNode, selected bool) string {
	indent := strings.Repeat("  ", max(node.Depth()-1, 0))

	var prefix string
	switch {
	case len(node.Children) == 0:
		prefix = styles.TreeLeaf
	case node.IsExpanded:
		prefix = styles.TreeExpanded
	default:
		prefix = styles.TreeCollapsed
	}

	title := node.Title
	style := styles.NodeTitle
	if title == "" {
		title = "(" + node.Name + ")"
		style = styles.NodeUntitled
	}
	if m.marked != nil && m.marked.ID == node.ID {
		style = styles.NodeMarked
	}
	if selected {
		style = styles.NodeSelected
	}

	line := fmt.Sprintf("%s%s%s %s",
		indent,
		styles.TreeBranch.Render(prefix),
		style.Render(title),
		styles.StageStyle(node.Stage).Render("["+node.Stage.Label()+"]"),
	)
	if node.RoutePath != "" {
		line += " " + styles.NodeRoute.Render(node.RoutePath)
	}
	return line
}

func (m *BrowserModel) renderHelpLine() string {
	keys := []struct {
		key  string
		desc string
	}{
		{"j/k", "navigate"},
		{"n", "new"},
		{"e", "edit"},
		{"p/u", "publish/unpublish"},
		{"w", "draft/live"},
		{"y", "copy route"},
		{"?", "help"},
		{"q", "quit"},
	}

	var parts []string
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %s",
			styles.HelpKey.Render(k.key),
			styles.HelpDesc.Render(k.desc),
		))
	}

	return strings.Join(parts, styles.HelpSeparator.String())
}

// Workspace returns the workspace being browsed
func (m *BrowserModel) Workspace() domain.Workspace {
	return m.workspace
}

// Reload reloads the tree from the store, keeping the cursor on the selected node
func (m *BrowserModel) Reload() tea.Cmd {
	if m.selected == "" {
		if node := m.selectedNode(); node != nil {
			m.selected = node.ID
		}
	}
	m.root = nil
	m.flatNodes = nil
	m.cursor = 0
	return m.loadTree
}

// Messages for view switching
type SwitchToCreateMsg struct {
	ParentNode *domain.TreeNode
}

type SwitchToEditMsg struct {
	Node *domain.TreeNode
}

type SwitchToDeleteMsg struct {
	TargetNode *domain.TreeNode
}

type SwitchToHelpMsg struct{}

type SwitchToBrowserMsg struct{}
