package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rebeliceyang/lazyjson/internal/ui/theme"
)

// ConfirmResultMsg reports the user's answer to a ConfirmDialog
type ConfirmResultMsg struct {
	Action    string
	Confirmed bool
}

// ConfirmDialog asks a yes/no question before a costly action
type ConfirmDialog struct {
	Title   string
	Message string
	Action  string
	Width   int
	Theme   theme.Theme
}

// NewConfirmDialog creates a dialog for action
func NewConfirmDialog(th theme.Theme, action, title, message string) *ConfirmDialog {
	return &ConfirmDialog{
		Title:   title,
		Message: message,
		Action:  action,
		Width:   50,
		Theme:   th,
	}
}

// Update answers on y/enter or n/esc
func (cd *ConfirmDialog) Update(msg tea.KeyMsg) (*ConfirmDialog, tea.Cmd) {
	var confirmed bool
	switch msg.String() {
	case "y", "Y", "enter":
		confirmed = true
	case "n", "N", "esc", "q":
		confirmed = false
	default:
		return cd, nil
	}
	action := cd.Action
	return cd, func() tea.Msg {
		return ConfirmResultMsg{Action: action, Confirmed: confirmed}
	}
}

// View renders the dialog
func (cd *ConfirmDialog) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(cd.Theme.Warning)
	msgStyle := lipgloss.NewStyle().
		Foreground(cd.Theme.Foreground).
		Width(max(cd.Width-4, 10))
	hintStyle := lipgloss.NewStyle().
		Foreground(cd.Theme.Muted).
		Italic(true)

	body := titleStyle.Render(cd.Title) + "\n\n" +
		msgStyle.Render(cd.Message) + "\n\n" +
		hintStyle.Render("y/Enter: continue   n/Esc: cancel")

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(cd.Theme.Warning).
		Padding(0, 1).
		Render(body)
}
