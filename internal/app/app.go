package app

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/rebeliceyang/lazyjson/internal/bookmarks"
	"github.com/rebeliceyang/lazyjson/internal/clipboard"
	"github.com/rebeliceyang/lazyjson/internal/config"
	"github.com/rebeliceyang/lazyjson/internal/debounce"
	"github.com/rebeliceyang/lazyjson/internal/graph"
	"github.com/rebeliceyang/lazyjson/internal/history"
	"github.com/rebeliceyang/lazyjson/internal/jsondoc"
	"github.com/rebeliceyang/lazyjson/internal/models"
	"github.com/rebeliceyang/lazyjson/internal/notify"
	"github.com/rebeliceyang/lazyjson/internal/source"
	"github.com/rebeliceyang/lazyjson/internal/ui/components"
	"github.com/rebeliceyang/lazyjson/internal/ui/help"
	"github.com/rebeliceyang/lazyjson/internal/ui/theme"
)

const expandAllAction = "expand-all"

// App is the main application model
type App struct {
	state  models.AppState
	config *config.Config
	theme  theme.Theme
	keys   help.KeyMap
	logger *log.Logger

	graphPanel components.Panel
	graphView  *components.GraphView
	searchBox  *components.SearchInput
	tableView  *components.TableView
	preview    *components.PreviewPane

	// Overlays
	showBookmarks   bool
	quickBookmark   bool
	bookmarksDialog *components.BookmarksDialog
	confirm         *components.ConfirmDialog

	// Debounced inputs
	docStage    *debounce.Stage[revision]
	searchStage *debounce.Stage[string]
	parseSeq    uint64

	doc   *jsondoc.Value
	stats graph.Stats
	size  int

	notes     *notify.Center
	clip      clipboard.Sink
	bookmarks *bookmarks.Manager
	history   *history.Store
	watcher   *source.Watcher
}

// Options carries what the command line resolved before the UI starts
type Options struct {
	Source    models.DocumentSource
	Data      []byte         // raw document text, parsed on start
	Document  *jsondoc.Value // already decoded document, used when Data is nil
	Watcher   *source.Watcher
	Clipboard clipboard.Sink
	Bookmarks *bookmarks.Manager
	History   *history.Store
	Logger    *log.Logger
}

// DocumentChangedMsg carries new document text from a caller other than
// the file watcher. It goes through the same debounce as file changes.
type DocumentChangedMsg struct {
	Data []byte
}

// ReloadFailedMsg reports a watched file that could not be read
type ReloadFailedMsg struct {
	Err error
}

// revision is a pending document change: either new text or a signal that
// the watched file must be read again once changes settle
type revision struct {
	data   []byte
	reread bool
}

// fileChangedMsg is sent for every change the watcher reports
type fileChangedMsg struct{}

type documentCommitMsg struct{ ticket debounce.Ticket }

// documentParsedMsg carries a document parsed off the event loop
type documentParsedMsg struct {
	seq  uint64
	size int
	doc  *jsondoc.Value
	err  error
}

type searchCommitMsg struct{ ticket debounce.Ticket }

type toastExpiredMsg struct{ id notify.ID }

// New creates a new App instance with config
func New(cfg *config.Config, opts Options) *App {
	if cfg == nil {
		cfg = config.GetDefaults()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	clip := opts.Clipboard
	if clip == nil {
		clip = clipboard.System{}
	}

	state := models.NewAppState()
	state.Source = opts.Source
	th := theme.GetTheme(cfg.UI.Theme)
	state.Theme = th.Name

	a := &App{
		state:           state,
		config:          cfg,
		theme:           th,
		keys:            help.DefaultKeyMap(),
		logger:          logger,
		graphView:       components.NewGraphView(th, graphViewOptions(cfg)),
		searchBox:       components.NewSearchInput(th),
		tableView:       components.NewTableView(th),
		preview:         components.NewPreviewPane(th),
		bookmarksDialog: components.NewBookmarksDialog(th),
		docStage:        debounce.New(revision{}),
		searchStage:     debounce.New(""),
		notes:           notify.NewCenter(cfg.ToastDuration(), logger),
		clip:            clip,
		bookmarks:       opts.Bookmarks,
		history:         opts.History,
		watcher:         opts.Watcher,
		graphPanel: components.Panel{
			Title: opts.Source.Label(),
			Style: lipgloss.NewStyle().BorderForeground(th.BorderFocused),
		},
	}

	switch {
	case opts.Data != nil:
		a.docStage.Reset(revision{data: opts.Data})
		a.applyText(opts.Data)
	case opts.Document != nil:
		a.applyDocument(opts.Document)
	}
	a.layout()
	return a
}

func graphViewOptions(cfg *config.Config) components.GraphViewOptions {
	opts := components.DefaultGraphViewOptions()
	opts.Graph = cfg.GraphOptions()
	opts.Metrics = cfg.Metrics()
	opts.Viewport = cfg.ViewportConfig()
	opts.Tooltip = cfg.TooltipOptions()
	opts.HideDelay = cfg.TooltipHideDelay()
	opts.ZoomStep = cfg.Viewport.ZoomStep
	opts.PanStep = cfg.Viewport.PanStep
	opts.DoubleClick = cfg.DoubleClick()
	opts.ExpandAllThreshold = cfg.Graph.ExpandAllConfirmThreshold
	return opts
}

// Init starts watching the document source
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.recordOpen(), a.waitForChange())
}

// recordOpen adds the document to the recently opened list
func (a *App) recordOpen() tea.Cmd {
	if a.history == nil || !a.config.History.Enabled || a.state.Source.Kind == models.SourceStdin {
		return nil
	}
	doc := models.RecentDocument{
		Location: a.state.Source.Location,
		Kind:     a.state.Source.Kind,
		Nodes:    a.stats.Nodes,
		Bytes:    int64(a.size),
	}
	store, keep, logger := a.history, a.config.History.MaxEntries, a.logger
	return func() tea.Msg {
		if err := store.Record(doc); err != nil {
			logger.Warn("failed to record history", "location", doc.Location, "err", err)
			return nil
		}
		if keep > 0 {
			if _, err := store.Prune(keep); err != nil {
				logger.Warn("failed to prune history", "err", err)
			}
		}
		return nil
	}
}

// waitForChange blocks until the watched file changes. The file is only
// read after the document debounce, since editors that save by rename leave
// it missing for a moment.
func (a *App) waitForChange() tea.Cmd {
	w := a.watcher
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-w.Changes(); !ok {
			return nil
		}
		return fileChangedMsg{}
	}
}

// pushRevision queues rev behind the document debounce
func (a *App) pushRevision(rev revision) tea.Cmd {
	ticket := a.docStage.Push(rev)
	return tea.Tick(a.config.DocumentDebounce(), func(time.Time) tea.Msg {
		return documentCommitMsg{ticket: ticket}
	})
}

// loadRevision reads and parses a committed revision outside the event loop
func (a *App) loadRevision(rev revision) tea.Cmd {
	a.parseSeq++
	seq, path := a.parseSeq, a.state.Source.Location
	return func() tea.Msg {
		data := rev.data
		if rev.reread {
			var err error
			if data, err = source.ReadFile(path); err != nil {
				return ReloadFailedMsg{Err: err}
			}
		}
		doc, err := jsondoc.Parse(data)
		return documentParsedMsg{seq: seq, size: len(data), doc: doc, err: err}
	}
}

// Update handles incoming messages and updates the model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := a.update(msg)
	a.layout()
	return a, cmd
}

func (a *App) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.state.Width = msg.Width
		a.state.Height = msg.Height
		return nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case tea.MouseMsg:
		if a.state.ViewMode != models.GraphMode || a.overlayOpen() {
			return nil
		}
		_, cmd := a.graphView.Update(msg)
		a.syncSelection()
		return cmd

	case components.TooltipHideMsg:
		_, cmd := a.graphView.Update(msg)
		return cmd

	case DocumentChangedMsg:
		return a.pushRevision(revision{data: msg.Data})

	case fileChangedMsg:
		return tea.Batch(a.pushRevision(revision{reread: true}), a.waitForChange())

	case documentCommitMsg:
		if rev, ok := a.docStage.Commit(msg.ticket); ok {
			return a.loadRevision(rev)
		}
		return nil

	case documentParsedMsg:
		// a newer revision is already being parsed
		if msg.seq != a.parseSeq {
			return nil
		}
		a.applyParsed(msg.size, msg.doc, msg.err)
		return nil

	case ReloadFailedMsg:
		a.logger.Error("failed to reload document", "err", msg.Err)
		return a.toast(a.notes.Error("Reload failed: " + msg.Err.Error()))

	case components.SearchChangedMsg:
		ticket := a.searchStage.Push(msg.Query)
		return tea.Tick(a.config.SearchDebounce(), func(time.Time) tea.Msg {
			return searchCommitMsg{ticket: ticket}
		})

	case searchCommitMsg:
		if query, ok := a.searchStage.Commit(msg.ticket); ok {
			a.runSearch(query)
		}
		return nil

	case components.SearchSubmitMsg:
		if query, ok := a.searchStage.Flush(); ok {
			a.runSearch(query)
		} else {
			a.graphView.NextMatch()
			a.syncSearch()
		}
		a.syncSelection()
		return nil

	case components.CloseSearchMsg:
		a.searchBox.Close()
		return nil

	case components.ConfirmExpandAllMsg:
		a.confirm = components.NewConfirmDialog(a.theme, expandAllAction,
			"Expand all nodes?",
			fmt.Sprintf("This document has %d expandable nodes. Expanding all of them may be slow.", msg.Expandable))
		return nil

	case components.ConfirmResultMsg:
		a.confirm = nil
		if msg.Confirmed && msg.Action == expandAllAction {
			a.graphView.ExpandAll()
			a.logger.Info("expanded all nodes", "expandable", a.stats.Expandable)
			a.syncSelection()
		}
		return nil

	case components.SaveBookmarkMsg:
		return a.saveBookmark(msg)

	case components.DeleteBookmarkMsg:
		if err := a.bookmarks.Delete(msg.ID); err != nil {
			return a.toast(a.notes.Error("Delete failed: " + err.Error()))
		}
		a.refreshBookmarks()
		return a.toast(a.notes.Info("Bookmark deleted"))

	case components.JumpToBookmarkMsg:
		a.showBookmarks = false
		if err := a.bookmarks.RecordUsage(msg.Bookmark.ID); err != nil {
			a.logger.Warn("failed to record bookmark usage", "id", msg.Bookmark.ID, "err", err)
		}
		if !a.graphView.Reveal(msg.Bookmark.Path) {
			return a.toast(a.notes.Error("Path not found: " + msg.Bookmark.Path))
		}
		a.syncSelection()
		return nil

	case components.CloseBookmarksDialogMsg:
		a.showBookmarks = false
		return nil

	case components.CloseTableMsg:
		a.state.ViewMode = models.GraphMode
		return nil

	case toastExpiredMsg:
		a.notes.Expire(msg.id)
		return nil
	}

	// Anything else (cursor blink and the like) belongs to the search box
	if a.searchBox.Visible {
		_, cmd := a.searchBox.Update(msg)
		return cmd
	}
	return nil
}

func (a *App) overlayOpen() bool {
	return a.confirm != nil || a.showBookmarks
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}

	switch {
	case a.confirm != nil:
		_, cmd := a.confirm.Update(msg)
		return cmd
	case a.showBookmarks:
		_, cmd := a.bookmarksDialog.Update(msg)
		return cmd
	}

	switch a.state.ViewMode {
	case models.HelpMode:
		switch {
		case key.Matches(msg, a.keys.Quit):
			return tea.Quit
		case key.Matches(msg, a.keys.Help), msg.String() == "esc":
			a.state.ViewMode = models.GraphMode
		}
		return nil

	case models.TableMode:
		if key.Matches(msg, a.keys.Quit) {
			return tea.Quit
		}
		_, cmd := a.tableView.Update(msg)
		return cmd
	}

	if a.searchBox.Visible {
		_, cmd := a.searchBox.Update(msg)
		return cmd
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.state.ViewMode = models.HelpMode
		return nil

	case key.Matches(msg, a.keys.Search):
		return a.searchBox.Open()

	case key.Matches(msg, a.keys.NextMatch):
		a.graphView.NextMatch()
		a.syncSearch()
		a.syncSelection()
		return nil

	case msg.String() == "esc":
		// Drop the query so nothing stays highlighted
		a.searchBox.Reset()
		a.searchStage.Reset("")
		a.runSearch("")
		return nil

	case key.Matches(msg, a.keys.CopyPath):
		return a.copyPath()

	case key.Matches(msg, a.keys.CopyValue):
		return a.copyValue()

	case key.Matches(msg, a.keys.Bookmark):
		return a.addBookmark()

	case key.Matches(msg, a.keys.Bookmarks):
		return a.listBookmarks()

	case key.Matches(msg, a.keys.Table):
		a.openTable()
		return nil

	case key.Matches(msg, a.keys.Theme):
		a.setTheme(theme.Counterpart(a.theme))
		return nil

	case key.Matches(msg, a.keys.Preview):
		a.preview.Toggle()
		a.syncSelection()
		return nil

	case key.Matches(msg, a.keys.PreviewUp):
		a.preview.ScrollUp()
		return nil

	case key.Matches(msg, a.keys.PreviewDn):
		a.preview.ScrollDown()
		return nil
	}

	_, cmd := a.graphView.Update(msg)
	a.syncSelection()
	a.syncSearch()
	return cmd
}

// applyText parses document text and shows the result. Invalid
// text replaces the graph with a placeholder until the next valid revision.
func (a *App) applyText(data []byte) {
	doc, err := jsondoc.Parse(data)
	a.applyParsed(len(data), doc, err)
}

func (a *App) applyParsed(size int, doc *jsondoc.Value, err error) {
	a.size = size
	if err != nil {
		a.logger.Warn("document is not valid JSON", "err", err)
		a.doc = nil
		a.graphView.SetError(err)
		a.syncSearch()
		return
	}
	a.applyDocument(doc)
}

func (a *App) applyDocument(doc *jsondoc.Value) {
	a.doc = doc
	a.stats = graph.Measure(doc)
	a.graphView.SetDocument(doc)
	a.syncSearch()
	a.syncSelection()
	a.logger.Debug("document loaded", "nodes", a.stats.Nodes, "depth", a.stats.MaxDepth, "bytes", a.size)
}

func (a *App) runSearch(query string) {
	count := a.graphView.SetQuery(query)
	a.logger.Debug("search", "query", query, "matches", count)
	a.syncSearch()
	a.syncSelection()
}

// syncSearch mirrors the engine state into the search box
func (a *App) syncSearch() {
	engine := a.graphView.Search
	count, _ := engine.Count()
	a.searchBox.SetResult(engine.Status(), engine.Index(), count)
}

// syncSelection keeps the value pane on the selected node
func (a *App) syncSelection() {
	if sel := a.graphView.Selected; sel != nil && a.preview.Visible {
		a.preview.SetValue(sel.Path, sel.Value)
	}
}

// toast schedules the expiry of n
func (a *App) toast(n notify.Notification) tea.Cmd {
	return tea.Tick(a.notes.TTL(), func(time.Time) tea.Msg {
		return toastExpiredMsg{id: n.ID}
	})
}

func (a *App) copyPath() tea.Cmd {
	sel := a.graphView.Selected
	if sel == nil {
		return nil
	}
	if err := a.clip.WriteText(sel.Path); err != nil {
		a.logger.Error("failed to copy path", "err", err)
		return a.toast(a.notes.Error("Copy failed: " + err.Error()))
	}
	return a.toast(a.notes.Success("Copied " + sel.Path))
}

func (a *App) copyValue() tea.Cmd {
	sel := a.graphView.Selected
	if sel == nil {
		return nil
	}
	if err := a.clip.WriteText(valueText(sel.Value)); err != nil {
		a.logger.Error("failed to copy value", "err", err)
		return a.toast(a.notes.Error("Copy failed: " + err.Error()))
	}
	return a.toast(a.notes.Success("Copied value of " + sel.Path))
}

// valueText is the clipboard form of a value: raw text for scalars, indented
// JSON for arrays and objects
func valueText(v *jsondoc.Value) string {
	if jsondoc.Classify(v).Expandable() {
		return jsondoc.Format(v)
	}
	return jsondoc.ScalarString(v)
}

// documentKey identifies the document bookmarks belong to
func (a *App) documentKey() string {
	if a.state.Source.Location != "" {
		return a.state.Source.Location
	}
	return a.state.Source.Label()
}

func (a *App) addBookmark() tea.Cmd {
	sel := a.graphView.Selected
	if sel == nil {
		return nil
	}
	if a.bookmarks == nil {
		return a.toast(a.notes.Error("Bookmarks are unavailable"))
	}
	a.bookmarksDialog.StartAdd(sel.Path)
	a.showBookmarks = true
	a.quickBookmark = true
	return nil
}

func (a *App) listBookmarks() tea.Cmd {
	if a.bookmarks == nil {
		return a.toast(a.notes.Error("Bookmarks are unavailable"))
	}
	a.refreshBookmarks()
	a.bookmarksDialog.ShowList()
	a.showBookmarks = true
	a.quickBookmark = false
	return nil
}

func (a *App) refreshBookmarks() {
	a.bookmarksDialog.SetBookmarks(a.bookmarks.ForDocument(a.documentKey()))
}

func (a *App) saveBookmark(msg components.SaveBookmarkMsg) tea.Cmd {
	var err error
	if msg.ID == "" {
		_, err = a.bookmarks.Add(msg.Name, msg.Path, a.documentKey(), msg.Note, msg.Tags)
	} else {
		err = a.bookmarks.Update(msg.ID, msg.Name, msg.Note, msg.Tags)
	}
	if err != nil {
		a.logger.Error("failed to save bookmark", "path", msg.Path, "err", err)
		return a.toast(a.notes.Error("Bookmark not saved: " + err.Error()))
	}

	a.refreshBookmarks()
	if a.quickBookmark {
		a.showBookmarks = false
		a.quickBookmark = false
	}
	return a.toast(a.notes.Success("Bookmarked " + msg.Path))
}

// openTable projects the selected container, or the root, into the table view
func (a *App) openTable() {
	if a.doc == nil {
		return
	}
	value, path := a.doc, jsondoc.RootPath
	if sel := a.graphView.Selected; sel != nil && sel.IsExpandable() {
		value, path = sel.Value, sel.Path
	}
	a.tableView.SetTable(jsondoc.ToTable(value, path), path)
	a.state.ViewMode = models.TableMode
}

func (a *App) setTheme(th theme.Theme) {
	a.theme = th
	a.state.Theme = th.Name
	a.graphView.Theme = th
	a.searchBox.Theme = th
	a.tableView.Theme = th
	a.bookmarksDialog.Theme = th
	a.preview.SetTheme(th)
	a.graphPanel.Style = lipgloss.NewStyle().BorderForeground(th.BorderFocused)
	a.logger.Debug("theme changed", "theme", th.Name)
}

// layout distributes the window between the panes
func (a *App) layout() {
	width, height := a.state.Width, a.state.Height
	if width <= 0 || height <= 0 {
		return
	}

	a.searchBox.Width = width
	a.preview.Width = width
	a.preview.MaxHeight = max(min(12, height/3), 5)

	// Top bar and bottom bar take one line each
	panelHeight := height - 2 - a.preview.Height() - lipgloss.Height(a.renderToasts())
	if a.config.UI.ShowHelpBar {
		panelHeight--
	}
	if a.searchBox.Visible {
		panelHeight -= lipgloss.Height(a.searchBox.View())
	}
	panelHeight = max(panelHeight-2, 3) // border

	a.graphPanel.Width = max(width-2, 10)
	a.graphPanel.Height = panelHeight

	a.graphView.Width = a.graphPanel.Width
	a.graphView.Height = panelHeight - 1 // title line
	a.graphView.Top = 3
	a.graphView.Left = 1

	a.tableView.Width = width
	a.tableView.Height = max(height-2, 3)
}

// View renders the application
func (a *App) View() string {
	switch {
	case a.confirm != nil:
		return a.placeCentered(a.confirm.View())
	case a.showBookmarks:
		return a.placeCentered(a.bookmarksDialog.View())
	}

	switch a.state.ViewMode {
	case models.HelpMode:
		return help.Render(a.state.Width, a.state.Height, a.theme, a.keys)
	case models.TableMode:
		return lipgloss.JoinVertical(lipgloss.Left, a.renderTopBar(), a.tableView.View(), a.renderBottomBar())
	}
	return a.renderGraphView()
}

func (a *App) placeCentered(s string) string {
	return lipgloss.Place(a.state.Width, a.state.Height, lipgloss.Center, lipgloss.Center, s)
}

func (a *App) renderGraphView() string {
	a.graphPanel.Content = a.graphView.View()
	a.graphPanel.Info = fmt.Sprintf("%d%%", int(a.graphView.Viewport.Scale()*100+0.5))

	parts := []string{a.renderTopBar(), a.graphPanel.View()}
	if a.searchBox.Visible {
		parts = append(parts, a.searchBox.View())
	}
	if a.preview.Visible {
		parts = append(parts, a.preview.View())
	}
	if toasts := a.renderToasts(); toasts != "" {
		parts = append(parts, toasts)
	}
	parts = append(parts, a.renderBottomBar())
	if a.config.UI.ShowHelpBar {
		parts = append(parts, a.renderHelpBar())
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (a *App) renderHelpBar() string {
	return lipgloss.NewStyle().
		Width(a.state.Width).
		MaxWidth(a.state.Width).
		MaxHeight(1).
		Padding(0, 2).
		Render(help.ShortHelp(a.theme, a.keys))
}

func (a *App) renderToasts() string {
	return components.RenderToasts(a.notes.Active(), a.theme, a.state.Width)
}

func (a *App) renderTopBar() string {
	right := "invalid JSON"
	if a.doc != nil {
		right = fmt.Sprintf("%d nodes · depth %d · %d expandable", a.stats.Nodes, a.stats.MaxDepth, a.stats.Expandable)
	}
	return lipgloss.NewStyle().
		Width(a.state.Width).
		Background(a.theme.BorderFocused).
		Foreground(lipgloss.Color("230")).
		Padding(0, 2).
		Render(a.formatStatusBar("lazyjson │ "+a.state.Source.Label(), right))
}

func (a *App) renderBottomBar() string {
	left := "[?] Help | [q] Quit"
	if sel := a.graphView.Selected; sel != nil {
		left = sel.Path
	}
	right := a.state.ViewMode.String()
	if count, ok := a.graphView.Search.Count(); ok {
		right = fmt.Sprintf("/%s %d matches │ %s", a.graphView.Search.Query(), count, right)
	}
	return lipgloss.NewStyle().
		Width(a.state.Width).
		Background(a.theme.Selection).
		Foreground(a.theme.Foreground).
		Padding(0, 2).
		Render(a.formatStatusBar(left, right))
}

// formatStatusBar formats a status bar with left and right aligned content
func (a *App) formatStatusBar(left, right string) string {
	// Account for padding (2 chars on each side = 4 total)
	availableWidth := max(a.state.Width-4, 0)

	leftLen := lipgloss.Width(left)
	rightLen := lipgloss.Width(right)

	// If content is too wide, truncate the left side first
	if leftLen+rightLen > availableWidth {
		if availableWidth > rightLen {
			return truncate(left, availableWidth-rightLen) + right
		}
		return truncate(left, availableWidth)
	}

	spacing := availableWidth - leftLen - rightLen
	return left + lipgloss.NewStyle().Width(spacing).Render("") + right
}

func truncate(s string, width int) string {
	r := []rune(s)
	for lipgloss.Width(string(r)) > width && len(r) > 0 {
		r = r[:len(r)-1]
	}
	return string(r)
}
