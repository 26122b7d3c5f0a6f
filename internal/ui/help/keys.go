package help

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds every binding of the viewer
type KeyMap struct {
	PanUp    key.Binding
	PanDown  key.Binding
	PanLeft  key.Binding
	PanRight key.Binding
	ZoomIn   key.Binding
	ZoomOut  key.Binding
	Reset    key.Binding
	Fit      key.Binding

	NextNode    key.Binding
	PrevNode    key.Binding
	Toggle      key.Binding
	ShowMore    key.Binding
	Center      key.Binding
	ExpandAll   key.Binding
	CollapseAll key.Binding

	Search    key.Binding
	NextMatch key.Binding

	CopyPath  key.Binding
	CopyValue key.Binding
	Bookmark  key.Binding
	Bookmarks key.Binding
	Table     key.Binding
	Preview   key.Binding
	PreviewUp key.Binding
	PreviewDn key.Binding
	Theme     key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the standard bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		PanUp:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "Pan up")),
		PanDown:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "Pan down")),
		PanLeft:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "Pan left")),
		PanRight: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "Pan right")),
		ZoomIn:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "Zoom in")),
		ZoomOut:  key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "Zoom out")),
		Reset:    key.NewBinding(key.WithKeys("0"), key.WithHelp("0", "Reset view")),
		Fit:      key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "Fit to screen")),

		NextNode:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("Tab", "Select next node")),
		PrevNode:    key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("Shift+Tab", "Select previous node")),
		Toggle:      key.NewBinding(key.WithKeys(" "), key.WithHelp("Space", "Expand/collapse node")),
		ShowMore:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "Show next page")),
		Center:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "Center selected node")),
		ExpandAll:   key.NewBinding(key.WithKeys("E"), key.WithHelp("Shift+E", "Expand all")),
		CollapseAll: key.NewBinding(key.WithKeys("C"), key.WithHelp("Shift+C", "Collapse all")),

		Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "Search")),
		NextMatch: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "Next match")),

		CopyPath:  key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "Copy node path")),
		CopyValue: key.NewBinding(key.WithKeys("Y"), key.WithHelp("Shift+Y", "Copy node value")),
		Bookmark:  key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "Bookmark node")),
		Bookmarks: key.NewBinding(key.WithKeys("B"), key.WithHelp("Shift+B", "List bookmarks")),
		Table:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "Toggle table view")),
		Preview:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "Toggle value pane")),
		PreviewUp: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "Scroll value pane up")),
		PreviewDn: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "Scroll value pane down")),
		Theme:     key.NewBinding(key.WithKeys("T"), key.WithHelp("Shift+T", "Toggle light/dark")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "Toggle help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q, Ctrl+C", "Quit")),
	}
}

// ShortHelp returns the bindings shown in the status bar
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Toggle, k.Fit, k.CopyPath, k.Table, k.Help, k.Quit}
}
