package components

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/rebeliceyang/lazyjson/internal/jsondoc"
	"github.com/rebeliceyang/lazyjson/internal/ui/theme"
)

const (
	maxColumnWidth = 40
	minColumnWidth = 4
)

// CloseTableMsg is sent when the table projection should close
type CloseTableMsg struct{}

// TableView displays the table projection of a value with virtual scrolling
type TableView struct {
	Title   string
	Columns []string
	Rows    [][]string
	Width   int
	Height  int
	Theme   theme.Theme

	// Virtual scrolling state
	TopRow      int
	VisibleRows int
	SelectedRow int

	// Column widths (calculated)
	ColumnWidths []int
}

// NewTableView creates a new table view
func NewTableView(th theme.Theme) *TableView {
	return &TableView{
		Theme:        th,
		Columns:      []string{},
		Rows:         [][]string{},
		ColumnWidths: []int{},
	}
}

// SetTable replaces the data and resets scrolling
func (tv *TableView) SetTable(t jsondoc.Table, title string) {
	tv.Title = title
	tv.Columns = t.Columns
	tv.Rows = t.Rows
	tv.TopRow = 0
	tv.SelectedRow = 0
	tv.calculateColumnWidths()
}

// SelectedCells returns the row under the cursor
func (tv *TableView) SelectedCells() ([]string, bool) {
	if tv.SelectedRow < 0 || tv.SelectedRow >= len(tv.Rows) {
		return nil, false
	}
	return tv.Rows[tv.SelectedRow], true
}

// calculateColumnWidths calculates optimal column widths
func (tv *TableView) calculateColumnWidths() {
	tv.ColumnWidths = make([]int, len(tv.Columns))

	for i, col := range tv.Columns {
		tv.ColumnWidths[i] = runewidth.StringWidth(col)
	}
	for _, row := range tv.Rows {
		for i, cell := range row {
			if i < len(tv.ColumnWidths) {
				tv.ColumnWidths[i] = max(tv.ColumnWidths[i], runewidth.StringWidth(cell))
			}
		}
	}
	for i := range tv.ColumnWidths {
		tv.ColumnWidths[i] = min(max(tv.ColumnWidths[i], minColumnWidth), maxColumnWidth)
	}
}

// Update handles keyboard navigation
func (tv *TableView) Update(msg tea.Msg) (*TableView, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return tv, nil
	}
	switch keyMsg.String() {
	case "up", "k":
		tv.MoveSelection(-1)
	case "down", "j":
		tv.MoveSelection(1)
	case "pgup", "ctrl+u":
		tv.PageUp()
	case "pgdown", "ctrl+d":
		tv.PageDown()
	case "home", "g":
		tv.MoveSelection(-len(tv.Rows))
	case "end", "G":
		tv.MoveSelection(len(tv.Rows))
	case "esc", "t":
		return tv, func() tea.Msg { return CloseTableMsg{} }
	}
	return tv, nil
}

// View renders the table
func (tv *TableView) View() string {
	if len(tv.Columns) == 0 {
		return lipgloss.NewStyle().Foreground(tv.Theme.Muted).Render("No data")
	}

	var b strings.Builder

	if tv.Title != "" {
		b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(tv.Theme.BorderFocused).Render(tv.Title))
		b.WriteString("\n")
	}
	b.WriteString(tv.renderHeader())
	b.WriteString("\n")
	b.WriteString(tv.renderSeparator())
	b.WriteString("\n")

	// title + header + separator + status
	tv.VisibleRows = max(tv.Height-4, 1)

	endRow := min(tv.TopRow+tv.VisibleRows, len(tv.Rows))
	for i := tv.TopRow; i < endRow; i++ {
		b.WriteString(tv.renderRow(i))
		b.WriteString("\n")
	}

	b.WriteString(tv.renderStatus())

	return lipgloss.NewStyle().MaxWidth(max(tv.Width, 1)).Render(b.String())
}

func (tv *TableView) renderHeader() string {
	parts := make([]string, 0, len(tv.Columns))
	for i, col := range tv.Columns {
		parts = append(parts, pad(col, tv.ColumnWidths[i]))
	}
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(tv.Theme.TableHeader)
	return headerStyle.Render(" " + strings.Join(parts, " │ ") + " ")
}

func (tv *TableView) renderSeparator() string {
	parts := make([]string, 0, len(tv.ColumnWidths))
	for _, width := range tv.ColumnWidths {
		parts = append(parts, strings.Repeat("─", width))
	}
	return lipgloss.NewStyle().
		Foreground(tv.Theme.Border).
		Render("─" + strings.Join(parts, "─┼─") + "─")
}

func (tv *TableView) renderRow(i int) string {
	row := tv.Rows[i]
	parts := make([]string, 0, len(tv.ColumnWidths))
	for c, width := range tv.ColumnWidths {
		cell := ""
		if c < len(row) {
			cell = row[c]
		}
		parts = append(parts, pad(cell, width))
	}
	line := " " + strings.Join(parts, " │ ") + " "

	style := lipgloss.NewStyle().Foreground(tv.Theme.Foreground)
	switch {
	case i == tv.SelectedRow:
		style = style.Background(tv.Theme.TableRowSelected).Bold(true)
	case i%2 == 1:
		style = style.Background(tv.Theme.TableRowOdd)
	}
	return style.Render(line)
}

func (tv *TableView) renderStatus() string {
	showing := "no rows"
	if len(tv.Rows) > 0 {
		showing = fmt.Sprintf("row %d of %d", tv.SelectedRow+1, len(tv.Rows))
	}
	return lipgloss.NewStyle().
		Foreground(tv.Theme.Muted).
		Italic(true).
		Render(" " + showing + " │ Esc: back to graph")
}

// pad truncates or right-pads s to exactly width cells
func pad(s string, width int) string {
	s = truncateCells(strings.ReplaceAll(s, "\n", " "), width)
	return s + strings.Repeat(" ", width-runewidth.StringWidth(s))
}

// MoveSelection moves the selection up or down
func (tv *TableView) MoveSelection(delta int) {
	if len(tv.Rows) == 0 {
		return
	}
	tv.SelectedRow = min(max(tv.SelectedRow+delta, 0), len(tv.Rows)-1)

	if tv.VisibleRows <= 0 {
		tv.VisibleRows = max(tv.Height-4, 1)
	}
	if tv.SelectedRow < tv.TopRow {
		tv.TopRow = tv.SelectedRow
	}
	if tv.SelectedRow >= tv.TopRow+tv.VisibleRows {
		tv.TopRow = tv.SelectedRow - tv.VisibleRows + 1
	}
}

// PageUp moves one screen up
func (tv *TableView) PageUp() {
	tv.MoveSelection(-max(tv.VisibleRows, 1))
}

// PageDown moves one screen down
func (tv *TableView) PageDown() {
	tv.MoveSelection(max(tv.VisibleRows, 1))
}
