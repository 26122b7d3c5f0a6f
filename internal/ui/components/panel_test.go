package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestPanel_View(t *testing.T) {
	p := Panel{Title: "Graph", Info: "100%", Content: "body", Width: 30, Height: 4}

	view := p.View()
	lines := strings.Split(view, "\n")
	if len(lines) != 6 {
		t.Fatalf("Expected 6 lines including the border, got %d\n%s", len(lines), view)
	}
	if !strings.Contains(lines[1], "Graph") || !strings.Contains(lines[1], "100%") {
		t.Errorf("Expected title and info on the first inner line, got %q", lines[1])
	}
	if w := lipgloss.Width(lines[0]); w != 32 {
		t.Errorf("Expected width 32, got %d", w)
	}
}

func TestPanel_ZeroSize(t *testing.T) {
	p := Panel{Title: "Graph"}
	if p.View() != "" {
		t.Error("Expected an unsized panel to render nothing")
	}
}
