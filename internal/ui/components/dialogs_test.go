package components

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rebeliceyang/lazyjson/internal/notify"
	"github.com/rebeliceyang/lazyjson/internal/ui/theme"
)

func TestConfirmDialog_Answers(t *testing.T) {
	cd := NewConfirmDialog(theme.DefaultTheme(), "expand-all", "Expand everything?", "12000 nodes")

	if !strings.Contains(cd.View(), "12000 nodes") {
		t.Error("Expected the message in view")
	}

	tests := []struct {
		key  tea.KeyMsg
		want bool
	}{
		{runes("y"), true},
		{tea.KeyMsg{Type: tea.KeyEnter}, true},
		{runes("n"), false},
		{tea.KeyMsg{Type: tea.KeyEsc}, false},
	}
	for _, tt := range tests {
		_, cmd := cd.Update(tt.key)
		if cmd == nil {
			t.Fatalf("%s: expected an answer", tt.key)
		}
		res := cmd().(ConfirmResultMsg)
		if res.Confirmed != tt.want || res.Action != "expand-all" {
			t.Errorf("%s: got %+v", tt.key, res)
		}
	}

	if _, cmd := cd.Update(runes("x")); cmd != nil {
		t.Error("Expected other keys to be ignored")
	}
}

func TestRenderToasts(t *testing.T) {
	th := theme.DefaultTheme()
	if RenderToasts(nil, th, 40) != "" {
		t.Error("Expected nothing without notifications")
	}

	view := RenderToasts([]notify.Notification{
		{Kind: notify.KindSuccess, Message: "Copied $.a", Created: time.Now()},
		{Kind: notify.KindError, Message: "clipboard unavailable", Created: time.Now()},
	}, th, 40)
	if !strings.Contains(view, "✓ Copied $.a") || !strings.Contains(view, "✗ clipboard unavailable") {
		t.Errorf("Unexpected toasts\n%s", view)
	}
}
