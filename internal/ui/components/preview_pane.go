package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/rebeliceyang/lazyjson/internal/jsondoc"
	"github.com/rebeliceyang/lazyjson/internal/ui/theme"
)

// PreviewPane shows the full, formatted value of the selected node
type PreviewPane struct {
	Width     int
	MaxHeight int    // Maximum height including borders
	Content   string // Formatted value
	Path      string // Path of the previewed node

	Visible bool

	// Scrolling
	scrollY      int
	contentLines []string // Content wrapped to the pane width

	Theme theme.Theme
	style lipgloss.Style
}

// NewPreviewPane creates a new, hidden preview pane
func NewPreviewPane(th theme.Theme) *PreviewPane {
	return &PreviewPane{
		Width:     80,
		MaxHeight: 10,
		Theme:     th,
		style: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(th.Border).
			Padding(0, 1),
	}
}

// SetValue previews v found at path
func (p *PreviewPane) SetValue(path string, v *jsondoc.Value) {
	content := jsondoc.Format(v)
	// Skip if nothing changed
	if p.Content == content && p.Path == path {
		return
	}
	p.Content = content
	p.Path = path
	p.scrollY = 0
	p.contentLines = nil
}

// SetTheme restyles the pane
func (p *PreviewPane) SetTheme(th theme.Theme) {
	p.Theme = th
	p.style = p.style.BorderForeground(th.Border)
}

func (p *PreviewPane) contentWidth() int {
	return max(p.Width-p.style.GetHorizontalFrameSize(), 10)
}

// maxContentLines is the number of value lines between header and footer
func (p *PreviewPane) maxContentLines() int {
	return max(p.MaxHeight-p.style.GetVerticalFrameSize()-3, 1)
}

func (p *PreviewPane) lines() []string {
	if p.contentLines == nil {
		p.contentLines = wrapText(p.Content, p.contentWidth())
	}
	return p.contentLines
}

// wrapText wraps text to fit within maxWidth cells
func wrapText(text string, maxWidth int) []string {
	var result []string
	for _, line := range strings.Split(text, "\n") {
		if runewidth.StringWidth(line) <= maxWidth {
			result = append(result, line)
			continue
		}

		current := ""
		currentWidth := 0
		for _, r := range line {
			rWidth := runewidth.RuneWidth(r)
			if currentWidth+rWidth > maxWidth {
				result = append(result, current)
				current = string(r)
				currentWidth = rWidth
			} else {
				current += string(r)
				currentWidth += rWidth
			}
		}
		if current != "" {
			result = append(result, current)
		}
	}
	return result
}

// Toggle toggles the preview pane visibility
func (p *PreviewPane) Toggle() {
	p.Visible = !p.Visible
	if !p.Visible {
		p.contentLines = nil
	}
}

// Height returns the rendered height including borders, 0 when hidden
func (p *PreviewPane) Height() int {
	if !p.Visible {
		return 0
	}
	return p.MaxHeight
}

// IsScrollable returns true if content exceeds visible area
func (p *PreviewPane) IsScrollable() bool {
	return len(p.lines()) > p.maxContentLines()
}

// ScrollUp scrolls content up
func (p *PreviewPane) ScrollUp() {
	if p.scrollY > 0 {
		p.scrollY--
	}
}

// ScrollDown scrolls content down
func (p *PreviewPane) ScrollDown() {
	maxScroll := max(len(p.lines())-p.maxContentLines(), 0)
	if p.scrollY < maxScroll {
		p.scrollY++
	}
}

// PostgreSQLPath returns the #> operator argument for the previewed path
func (p *PreviewPane) PostgreSQLPath() string {
	path, err := jsondoc.ParsePath(p.Path)
	if err != nil || len(path) == 0 {
		return ""
	}
	return path.PostgreSQLPath()
}

// View renders the preview pane
func (p *PreviewPane) View() string {
	if !p.Visible {
		return ""
	}

	contentWidth := p.contentWidth()
	lines := p.lines()

	titleStyle := lipgloss.NewStyle().
		Foreground(p.Theme.Info).
		Bold(true)
	header := "Value"
	if p.Path != "" {
		header = "Value: " + p.Path
	}
	if pg := p.PostgreSQLPath(); pg != "" {
		header += "   #> '" + pg + "'"
	}
	header = titleStyle.Render(truncateCells(header, contentWidth))

	start := p.scrollY
	end := min(start+p.maxContentLines(), len(lines))

	parts := []string{header}
	contentStyle := lipgloss.NewStyle().Foreground(p.Theme.Foreground)
	for i := start; i < end; i++ {
		parts = append(parts, contentStyle.Render(truncateCells(lines[i], contentWidth)))
	}

	helpParts := []string{}
	if p.IsScrollable() {
		helpParts = append(helpParts, "[ ]: Scroll")
	}
	helpParts = append(helpParts, "Y: Copy value", "p: Hide")
	helpText := strings.Join(helpParts, " │ ")
	helpStyle := lipgloss.NewStyle().
		Foreground(p.Theme.Muted).
		Italic(true)
	footerPadding := max(contentWidth-runewidth.StringWidth(helpText), 0)
	parts = append(parts, strings.Repeat(" ", footerPadding)+helpStyle.Render(helpText))

	innerHeight := max(p.MaxHeight-p.style.GetVerticalFrameSize(), 3)
	containerStyle := p.style.
		Width(p.Width - p.style.GetHorizontalFrameSize()).
		Height(innerHeight).
		MaxHeight(innerHeight + p.style.GetVerticalFrameSize())

	return containerStyle.Render(strings.Join(parts, "\n"))
}
