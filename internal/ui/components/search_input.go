package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rebeliceyang/lazyjson/internal/search"
	"github.com/rebeliceyang/lazyjson/internal/ui/theme"
)

// SearchChangedMsg is sent on every edit of the query
type SearchChangedMsg struct {
	Query string
}

// SearchSubmitMsg is sent when Enter is pressed
type SearchSubmitMsg struct {
	Query string
}

// CloseSearchMsg is sent when search should be closed
type CloseSearchMsg struct{}

// SearchInput provides the search box. It only reports edits; the owner
// debounces them and feeds the match state back through SetResult.
type SearchInput struct {
	Input   textinput.Model
	Theme   theme.Theme
	Width   int
	Visible bool

	status search.Status
	index  int
	count  int
}

// NewSearchInput creates a new search input
func NewSearchInput(th theme.Theme) *SearchInput {
	ti := textinput.New()
	ti.Placeholder = "Search keys and values..."
	ti.Prompt = "/ "
	ti.CharLimit = 256
	ti.Width = 40

	return &SearchInput{
		Input: ti,
		Theme: th,
	}
}

// Open shows and focuses the input
func (s *SearchInput) Open() tea.Cmd {
	s.Visible = true
	return s.Input.Focus()
}

// Close hides the input, keeping the query
func (s *SearchInput) Close() {
	s.Visible = false
	s.Input.Blur()
}

// Reset clears the search input
func (s *SearchInput) Reset() {
	s.Input.SetValue("")
	s.status = search.StatusInactive
	s.index, s.count = 0, 0
}

// Value returns the current text
func (s *SearchInput) Value() string { return s.Input.Value() }

// SetResult records the match state shown next to the query
func (s *SearchInput) SetResult(status search.Status, index, count int) {
	s.status = status
	s.index = index
	s.count = count
}

// Status returns the last recorded match state
func (s *SearchInput) Status() search.Status { return s.status }

// Update handles messages
func (s *SearchInput) Update(msg tea.Msg) (*SearchInput, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter":
			query := s.Input.Value()
			return s, func() tea.Msg {
				return SearchSubmitMsg{Query: query}
			}
		case "esc":
			return s, func() tea.Msg {
				return CloseSearchMsg{}
			}
		}
	}

	before := s.Input.Value()
	var cmd tea.Cmd
	s.Input, cmd = s.Input.Update(msg)
	if after := s.Input.Value(); after != before {
		changed := func() tea.Msg { return SearchChangedMsg{Query: after} }
		return s, tea.Batch(cmd, changed)
	}
	return s, cmd
}

// View renders the search input
func (s *SearchInput) View() string {
	borderColor := s.Theme.BorderFocused
	var result string
	resultStyle := lipgloss.NewStyle().Foreground(s.Theme.Muted)

	switch s.status {
	case search.StatusNoMatches:
		borderColor = s.Theme.Error
		result = lipgloss.NewStyle().Foreground(s.Theme.Error).Render("no matches")
	case search.StatusHasMatches:
		result = resultStyle.Render(fmt.Sprintf("%d/%d", s.index+1, s.count))
	}

	inputWidth := s.Width - 20 // room for the border and the counter
	if inputWidth < 20 {
		inputWidth = 20
	}
	s.Input.Width = inputWidth

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Width(max(s.Width-2, 0))

	helpStyle := lipgloss.NewStyle().
		Foreground(s.Theme.Muted).
		Italic(true)

	content := s.Input.View()
	if result != "" {
		content += "  " + result
	}
	helpText := helpStyle.Render("Enter: next match │ Esc: close")

	return boxStyle.Render(content + "\n" + helpText)
}
