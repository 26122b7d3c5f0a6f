package components

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rebeliceyang/lazyjson/internal/models"
	"github.com/rebeliceyang/lazyjson/internal/ui/theme"
)

// BookmarksMode represents the dialog mode
type BookmarksMode int

const (
	BookmarksModeList BookmarksMode = iota
	BookmarksModeAdd
	BookmarksModeEdit
)

const bookmarkFieldCount = 3 // name, note, tags

// JumpToBookmarkMsg is sent when a bookmark should be focused in the graph
type JumpToBookmarkMsg struct {
	Bookmark models.Bookmark
}

// SaveBookmarkMsg carries a new or edited bookmark. ID is empty for a new one.
type SaveBookmarkMsg struct {
	ID   string
	Name string
	Path string
	Note string
	Tags []string
}

// DeleteBookmarkMsg asks the owner to delete a bookmark
type DeleteBookmarkMsg struct {
	ID string
}

// CloseBookmarksDialogMsg is sent when dialog should close
type CloseBookmarksDialogMsg struct{}

// BookmarksDialog lists, adds and edits node path bookmarks
type BookmarksDialog struct {
	Width  int
	Height int
	Theme  theme.Theme

	mode      BookmarksMode
	bookmarks []models.Bookmark
	selected  int
	offset    int

	// Add/Edit state
	editID       string
	pathInput    string
	nameInput    string
	noteInput    string
	tagsInput    string
	currentField int // 0=name, 1=note, 2=tags
}

// NewBookmarksDialog creates a new bookmarks dialog
func NewBookmarksDialog(th theme.Theme) *BookmarksDialog {
	return &BookmarksDialog{
		Width:  70,
		Height: 20,
		Theme:  th,
		mode:   BookmarksModeList,
	}
}

// Mode returns the current dialog mode
func (bd *BookmarksDialog) Mode() BookmarksMode { return bd.mode }

// SetBookmarks updates the list
func (bd *BookmarksDialog) SetBookmarks(bookmarks []models.Bookmark) {
	bd.bookmarks = bookmarks
	bd.selected = min(bd.selected, max(len(bookmarks)-1, 0))
	bd.offset = min(bd.offset, bd.selected)
}

// StartAdd opens the form for a new bookmark on path
func (bd *BookmarksDialog) StartAdd(path string) {
	bd.mode = BookmarksModeAdd
	bd.editID = ""
	bd.pathInput = path
	bd.nameInput = ""
	bd.noteInput = ""
	bd.tagsInput = ""
	bd.currentField = 0
}

// ShowList switches to the list
func (bd *BookmarksDialog) ShowList() {
	bd.mode = BookmarksModeList
}

func (bd *BookmarksDialog) visibleHeight() int {
	// each entry takes two lines
	return max((bd.Height-6)/2, 1)
}

// Update handles keyboard input
func (bd *BookmarksDialog) Update(msg tea.KeyMsg) (*BookmarksDialog, tea.Cmd) {
	if bd.mode == BookmarksModeList {
		return bd.handleListMode(msg)
	}
	return bd.handleEditMode(msg)
}

func (bd *BookmarksDialog) handleListMode(msg tea.KeyMsg) (*BookmarksDialog, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		return bd, func() tea.Msg {
			return CloseBookmarksDialogMsg{}
		}
	case "up", "k":
		if bd.selected > 0 {
			bd.selected--
			if bd.selected < bd.offset {
				bd.offset = bd.selected
			}
		}
	case "down", "j":
		if bd.selected < len(bd.bookmarks)-1 {
			bd.selected++
			if bd.selected >= bd.offset+bd.visibleHeight() {
				bd.offset = bd.selected - bd.visibleHeight() + 1
			}
		}
	case "enter":
		if bd.selected < len(bd.bookmarks) {
			bm := bd.bookmarks[bd.selected]
			return bd, func() tea.Msg {
				return JumpToBookmarkMsg{Bookmark: bm}
			}
		}
	case "e":
		if bd.selected < len(bd.bookmarks) {
			bm := bd.bookmarks[bd.selected]
			bd.mode = BookmarksModeEdit
			bd.editID = bm.ID
			bd.pathInput = bm.Path
			bd.nameInput = bm.Name
			bd.noteInput = bm.Note
			bd.tagsInput = strings.Join(bm.Tags, ", ")
			bd.currentField = 0
		}
	case "d", "x":
		if bd.selected < len(bd.bookmarks) {
			id := bd.bookmarks[bd.selected].ID
			return bd, func() tea.Msg {
				return DeleteBookmarkMsg{ID: id}
			}
		}
	}
	return bd, nil
}

func (bd *BookmarksDialog) handleEditMode(msg tea.KeyMsg) (*BookmarksDialog, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		bd.mode = BookmarksModeList
	case tea.KeyTab:
		bd.currentField = (bd.currentField + 1) % bookmarkFieldCount
	case tea.KeyShiftTab:
		bd.currentField = (bd.currentField - 1 + bookmarkFieldCount) % bookmarkFieldCount
	case tea.KeyBackspace:
		bd.deleteChar()
	case tea.KeyEnter:
		if bd.currentField < bookmarkFieldCount-1 {
			bd.currentField++
			return bd, nil
		}
		save := SaveBookmarkMsg{
			ID:   bd.editID,
			Name: strings.TrimSpace(bd.nameInput),
			Path: bd.pathInput,
			Note: strings.TrimSpace(bd.noteInput),
			Tags: splitTags(bd.tagsInput),
		}
		bd.mode = BookmarksModeList
		return bd, func() tea.Msg { return save }
	case tea.KeyRunes, tea.KeySpace:
		bd.addText(string(msg.Runes))
	}
	return bd, nil
}

func (bd *BookmarksDialog) field() *string {
	switch bd.currentField {
	case 0:
		return &bd.nameInput
	case 1:
		return &bd.noteInput
	default:
		return &bd.tagsInput
	}
}

func (bd *BookmarksDialog) addText(s string) {
	f := bd.field()
	*f += s
}

func (bd *BookmarksDialog) deleteChar() {
	f := bd.field()
	if r := []rune(*f); len(r) > 0 {
		*f = string(r[:len(r)-1])
	}
}

func splitTags(s string) []string {
	var tags []string
	for _, part := range strings.Split(s, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// View renders the dialog
func (bd *BookmarksDialog) View() string {
	if bd.mode == BookmarksModeList {
		return bd.renderList()
	}
	return bd.renderEdit()
}

func (bd *BookmarksDialog) titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(bd.Theme.Background).
		Background(bd.Theme.Info).
		Padding(0, 1).
		Bold(true)
}

func (bd *BookmarksDialog) container() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(bd.Theme.BorderFocused).
		Width(bd.Width).
		Padding(0, 1)
}

func (bd *BookmarksDialog) renderList() string {
	var sections []string
	sections = append(sections, bd.titleStyle().Render("Bookmarks"))

	instrStyle := lipgloss.NewStyle().Foreground(bd.Theme.Muted)
	sections = append(sections, instrStyle.Render("↑↓: Navigate  Enter: Jump  e: Edit  d: Delete  Esc: Close"), "")

	if len(bd.bookmarks) == 0 {
		sections = append(sections, instrStyle.Italic(true).Render("No bookmarks yet. Press 'b' on a node to add one."))
		return bd.container().Render(strings.Join(sections, "\n"))
	}

	pathStyle := lipgloss.NewStyle().Foreground(bd.Theme.JSONKey)
	end := min(bd.offset+bd.visibleHeight(), len(bd.bookmarks))
	inner := max(bd.Width-4, 10)
	for i := bd.offset; i < end; i++ {
		bm := bd.bookmarks[i]

		detail := pathStyle.Render(bm.Path)
		if bm.Note != "" {
			detail += "  " + bm.Note
		}
		if len(bm.Tags) > 0 {
			detail += fmt.Sprintf(" [%s]", strings.Join(bm.Tags, ", "))
		}
		line := truncateCells(bm.Name, inner) + "\n  " + detail

		style := lipgloss.NewStyle().MaxWidth(inner)
		if i == bd.selected {
			style = style.Background(bd.Theme.Selection).Bold(true)
		}
		sections = append(sections, style.Render(line))
	}
	return bd.container().Render(strings.Join(sections, "\n"))
}

func (bd *BookmarksDialog) renderEdit() string {
	title := "Add Bookmark"
	if bd.mode == BookmarksModeEdit {
		title = "Edit Bookmark"
	}

	var sections []string
	sections = append(sections, bd.titleStyle().Render(title))
	sections = append(sections, lipgloss.NewStyle().Foreground(bd.Theme.Muted).Render("Tab: Next field  Enter: Save  Esc: Cancel"), "")
	sections = append(sections, lipgloss.NewStyle().Foreground(bd.Theme.JSONKey).Render("Path: "+bd.pathInput), "")
	sections = append(sections, bd.renderField("Name:", bd.nameInput, bd.currentField == 0))
	sections = append(sections, bd.renderField("Note:", bd.noteInput, bd.currentField == 1))
	sections = append(sections, bd.renderField("Tags (comma separated):", bd.tagsInput, bd.currentField == 2))

	return bd.container().Render(strings.Join(sections, "\n"))
}

func (bd *BookmarksDialog) renderField(label, value string, active bool) string {
	style := lipgloss.NewStyle()
	if active {
		style = style.Background(bd.Theme.Selection).Foreground(bd.Theme.Foreground)
		value += "_"
	}
	return style.Render(fmt.Sprintf("%s %s", label, value))
}
