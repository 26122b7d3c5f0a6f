package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rebeliceyang/lazyjson/internal/notify"
	"github.com/rebeliceyang/lazyjson/internal/ui/theme"
)

// RenderToasts stacks the active notifications, newest last
func RenderToasts(items []notify.Notification, th theme.Theme, width int) string {
	if len(items) == 0 {
		return ""
	}
	lines := make([]string, 0, len(items))
	for _, n := range items {
		lines = append(lines, renderToast(n, th, width))
	}
	return strings.Join(lines, "\n")
}

func renderToast(n notify.Notification, th theme.Theme, width int) string {
	color, icon := th.Info, "ℹ"
	switch n.Kind {
	case notify.KindSuccess:
		color, icon = th.Success, "✓"
	case notify.KindError:
		color, icon = th.Error, "✗"
	}

	inner := max(width-4, 10)
	text := truncateCells(icon+" "+n.Message, inner)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Foreground(color).
		Padding(0, 1).
		Render(text)
}
