package components

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rebeliceyang/lazyjson/internal/search"
	"github.com/rebeliceyang/lazyjson/internal/ui/theme"
)

func TestSearchInput_TypingReportsChange(t *testing.T) {
	s := NewSearchInput(theme.DefaultTheme())
	s.Open()

	_, cmd := s.Update(runes("a"))
	if cmd == nil {
		t.Fatal("Expected a command after typing")
	}
	msgs := collectMsgs(cmd)
	found := false
	for _, m := range msgs {
		if c, ok := m.(SearchChangedMsg); ok && c.Query == "a" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected SearchChangedMsg{a}, got %v", msgs)
	}
}

func TestSearchInput_EnterAndEsc(t *testing.T) {
	s := NewSearchInput(theme.DefaultTheme())
	s.Open()
	s.Input.SetValue("ada")

	_, cmd := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if msg, ok := cmd().(SearchSubmitMsg); !ok || msg.Query != "ada" {
		t.Errorf("Expected SearchSubmitMsg{ada}, got %v", cmd())
	}

	_, cmd = s.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if _, ok := cmd().(CloseSearchMsg); !ok {
		t.Error("Expected CloseSearchMsg on Esc")
	}
}

func TestSearchInput_ViewShowsResult(t *testing.T) {
	s := NewSearchInput(theme.DefaultTheme())
	s.Width = 60

	s.SetResult(search.StatusHasMatches, 1, 3)
	if !strings.Contains(s.View(), "2/3") {
		t.Error("Expected match counter in view")
	}

	s.SetResult(search.StatusNoMatches, 0, 0)
	if !strings.Contains(s.View(), "no matches") {
		t.Error("Expected no-matches marker in view")
	}

	s.Reset()
	if s.Status() != search.StatusInactive || s.Value() != "" {
		t.Error("Expected reset to clear query and status")
	}
}

// collectMsgs runs cmd and flattens batches
func collectMsgs(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collectMsgs(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}
