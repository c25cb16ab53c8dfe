package frameworks

import (
	"github.com/charmbracelet/bubbles/key"
)

// Action identifies what a context menu item does.
type Action string

const (
	ActionRun          Action = "run"
	ActionToggleSelect Action = "toggle-select"
	ActionExpand       Action = "expand"
	ActionCollapse     Action = "collapse"
	ActionCopyPath     Action = "copy-path"
	ActionOpenFile     Action = "open-file"
)

// MenuItem describes one entry of a node's context menu. The binding carries
// the label (its help description), default keys and whether it is enabled.
type MenuItem struct {
	Action  Action
	Binding key.Binding
}

// Label returns the text to show for the item.
func (m MenuItem) Label() string {
	return m.Binding.Help().Desc
}

func (m MenuItem) Enabled() bool {
	return m.Binding.Enabled()
}

// ContextMenu returns the actions available on the suite.
func (s *Suite) ContextMenu() []MenuItem {
	hasChildren := s.HasChildren()
	expanded := s.Expanded()

	selectLabel := "Select"
	if s.Selected() {
		selectLabel = "Deselect"
	}

	expand := key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "Expand"),
	)
	expand.SetEnabled(hasChildren && !expanded)

	collapse := key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "Collapse"),
	)
	collapse.SetEnabled(expanded)

	return []MenuItem{
		{Action: ActionRun, Binding: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Run"),
		)},
		{Action: ActionToggleSelect, Binding: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", selectLabel),
		)},
		{Action: ActionExpand, Binding: expand},
		{Action: ActionCollapse, Binding: collapse},
		{Action: ActionCopyPath, Binding: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "Copy path"),
		)},
		{Action: ActionOpenFile, Binding: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "Open file"),
		)},
	}
}
