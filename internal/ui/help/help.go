package help

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/rebeliceyang/lazyjson/internal/ui/theme"
)

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key         string
	Description string
}

func fromBindings(bindings ...key.Binding) []KeyBinding {
	out := make([]KeyBinding, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		out = append(out, KeyBinding{h.Key, h.Desc})
	}
	return out
}

// GetViewportKeys returns pan and zoom key bindings
func GetViewportKeys(k KeyMap) []KeyBinding {
	return fromBindings(k.PanUp, k.PanDown, k.PanLeft, k.PanRight, k.ZoomIn, k.ZoomOut, k.Reset, k.Fit)
}

// GetGraphKeys returns node key bindings
func GetGraphKeys(k KeyMap) []KeyBinding {
	return fromBindings(k.NextNode, k.PrevNode, k.Toggle, k.ShowMore, k.Center, k.ExpandAll, k.CollapseAll)
}

// GetSearchKeys returns search key bindings
func GetSearchKeys(k KeyMap) []KeyBinding {
	return append(fromBindings(k.Search, k.NextMatch), KeyBinding{"Enter", "Next match (in search)"}, KeyBinding{"Esc", "Close search"})
}

// GetGlobalKeys returns global key bindings
func GetGlobalKeys(k KeyMap) []KeyBinding {
	return fromBindings(k.CopyPath, k.CopyValue, k.Bookmark, k.Bookmarks, k.Table, k.Preview, k.PreviewUp, k.PreviewDn, k.Theme, k.Help, k.Quit)
}

// GetMouseKeys describes the pointer gestures
func GetMouseKeys() []KeyBinding {
	return []KeyBinding{
		{"Drag", "Pan"},
		{"Wheel", "Zoom at pointer"},
		{"Click", "Select, expand/collapse, show more"},
		{"Double click", "Center node"},
		{"Hover", "Node details"},
	}
}

// Render creates the help view
func Render(width, height int, th theme.Theme, k KeyMap) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(th.BorderFocused).
		Padding(1, 0)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(th.Info).
		Padding(0, 0, 0, 2)

	keyStyle := lipgloss.NewStyle().
		Foreground(th.Warning).
		Width(20)

	descStyle := lipgloss.NewStyle().
		Foreground(th.Foreground)

	var b strings.Builder

	b.WriteString(titleStyle.Render("lazyjson - Keyboard Shortcuts"))
	b.WriteString("\n\n")

	sections := []struct {
		title string
		keys  []KeyBinding
	}{
		{"Viewport", GetViewportKeys(k)},
		{"Nodes", GetGraphKeys(k)},
		{"Search", GetSearchKeys(k)},
		{"Global", GetGlobalKeys(k)},
		{"Mouse", GetMouseKeys()},
	}
	for _, s := range sections {
		b.WriteString(sectionStyle.Render(s.title))
		b.WriteString("\n")
		for _, kb := range s.keys {
			b.WriteString("  ")
			b.WriteString(keyStyle.Render(kb.Key))
			b.WriteString(descStyle.Render(kb.Description))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(lipgloss.NewStyle().Faint(true).Render("Press '?' or Esc to close help"))

	// Wrap in a box
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(th.BorderFocused).
		Padding(1, 2).
		Width(max(width-4, 20)).
		Height(max(height-4, 5))

	return boxStyle.Render(b.String())
}

// ShortHelp renders the one-line hint shown in the status bar
func ShortHelp(th theme.Theme, k KeyMap) string {
	keyStyle := lipgloss.NewStyle().Foreground(th.Warning)
	descStyle := lipgloss.NewStyle().Foreground(th.Muted)

	parts := make([]string, 0, len(k.ShortHelp()))
	for _, b := range k.ShortHelp() {
		h := b.Help()
		parts = append(parts, keyStyle.Render(h.Key)+" "+descStyle.Render(strings.ToLower(h.Desc)))
	}
	return strings.Join(parts, descStyle.Render(" • "))
}
