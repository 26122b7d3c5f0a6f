package help

import (
	"strings"
	"testing"

	"github.com/rebeliceyang/lazyjson/internal/ui/theme"
)

func TestRender_ListsEverySection(t *testing.T) {
	view := Render(100, 60, theme.DefaultTheme(), DefaultKeyMap())
	for _, want := range []string{"Viewport", "Nodes", "Search", "Global", "Mouse", "Expand all", "Copy node path"} {
		if !strings.Contains(view, want) {
			t.Errorf("Expected %q in help view", want)
		}
	}
}

func TestShortHelp(t *testing.T) {
	got := ShortHelp(theme.DefaultTheme(), DefaultKeyMap())
	if !strings.Contains(got, "search") || !strings.Contains(got, "quit") {
		t.Errorf("Unexpected short help %q", got)
	}
}
