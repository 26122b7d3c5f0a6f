package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Panel frames a component with a rounded border and a title line
type Panel struct {
	Title   string
	Info    string // right-aligned on the title line
	Content string
	Width   int
	Height  int
	Style   lipgloss.Style
}

// View renders the panel
func (p *Panel) View() string {
	if p.Width <= 0 || p.Height <= 0 {
		return ""
	}

	style := p.Style.
		Width(p.Width).
		Height(p.Height).
		MaxHeight(p.Height + 2).
		Border(lipgloss.RoundedBorder())

	content := p.Content
	if p.Title != "" || p.Info != "" {
		content = p.header() + "\n" + content
	}

	return style.Render(content)
}

func (p *Panel) header() string {
	title := lipgloss.NewStyle().Bold(true).Padding(0, 1).Render(p.Title)
	if p.Info == "" {
		return title
	}
	info := lipgloss.NewStyle().Faint(true).Padding(0, 1).Render(p.Info)
	gap := p.Width - lipgloss.Width(title) - lipgloss.Width(info)
	if gap < 1 {
		return title
	}
	return title + strings.Repeat(" ", gap) + info
}
