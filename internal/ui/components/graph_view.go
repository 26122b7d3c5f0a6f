package components

import (
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rebeliceyang/lazyjson/internal/geom"
	"github.com/rebeliceyang/lazyjson/internal/graph"
	"github.com/rebeliceyang/lazyjson/internal/jsondoc"
	"github.com/rebeliceyang/lazyjson/internal/search"
	"github.com/rebeliceyang/lazyjson/internal/tooltip"
	"github.com/rebeliceyang/lazyjson/internal/ui/help"
	"github.com/rebeliceyang/lazyjson/internal/ui/theme"
	"github.com/rebeliceyang/lazyjson/internal/viewport"
)

// TooltipHideMsg delivers a debounced tooltip hide
type TooltipHideMsg struct {
	Ticket tooltip.Ticket
}

// ConfirmExpandAllMsg is sent when expand-all needs the user's consent
type ConfirmExpandAllMsg struct {
	Expandable int
}

// GraphViewOptions tunes the canvas. Sizes are terminal cells.
type GraphViewOptions struct {
	Graph              graph.Options
	Metrics            graph.Metrics
	Viewport           viewport.Config
	Tooltip            tooltip.Options
	HideDelay          time.Duration
	ZoomStep           float64
	PanStep            float64
	DoubleClick        time.Duration
	ExpandAllThreshold int
}

// DefaultGraphViewOptions returns the terminal defaults
func DefaultGraphViewOptions() GraphViewOptions {
	return GraphViewOptions{
		Graph:   graph.DefaultOptions(),
		Metrics: graph.DefaultMetrics(),
		Viewport: viewport.Config{
			MinScale:      0.3,
			MaxScale:      3,
			DefaultScale:  1,
			DefaultOffset: geom.Point{X: 2, Y: 1},
			FitMargin:     4,
		},
		Tooltip:            tooltip.Options{Width: 40, Height: 8, Offset: 2, Margin: 1},
		HideDelay:          tooltip.DefaultHideDelay,
		ZoomStep:           0.1,
		PanStep:            4,
		DoubleClick:        400 * time.Millisecond,
		ExpandAllThreshold: graph.DefaultExpandAllThreshold,
	}
}

// GraphView draws the node graph on a pannable, zoomable canvas
type GraphView struct {
	Width  int
	Height int
	Top    int // screen row of the first canvas line
	Left   int // screen column of the first canvas cell
	Theme  theme.Theme
	Keys   help.KeyMap

	Tree     *graph.Tree
	Layout   *graph.Layout
	Selected *graph.Node
	Err      error

	Viewport *viewport.Controller
	Search   *search.Engine
	Tooltip  *tooltip.Controller

	opts GraphViewOptions
	now  func() time.Time

	// selection to restore once a broken document parses again
	pendingPath string

	dragFrom     geom.Point
	dragged      bool
	lastClick    time.Time
	lastClicked  *graph.Node
	clickToggled bool
	hover        *graph.Node
}

// NewGraphView creates an empty graph view
func NewGraphView(th theme.Theme, opts GraphViewOptions) *GraphView {
	g := &GraphView{
		Theme:    th,
		Keys:     help.DefaultKeyMap(),
		Viewport: viewport.New(opts.Viewport),
		Tooltip:  tooltip.NewController(opts.HideDelay),
		opts:     opts,
		now:      time.Now,
	}
	g.Search = search.NewEngine(g)
	return g
}

// Options returns the view options
func (g *GraphView) Options() GraphViewOptions { return g.opts }

// SetDocument replaces the document. The viewport and the search query are
// kept; the selection moves to the node with the same path, else to its
// nearest rendered ancestor, else to the root.
func (g *GraphView) SetDocument(doc *jsondoc.Value) {
	path := g.pendingPath
	if g.Selected != nil {
		path = g.Selected.Path
	}
	g.Err = nil
	g.pendingPath = ""
	g.Tree = graph.Build(doc, g.opts.Graph)
	g.Selected = nil
	if path != "" {
		g.Selected = g.Tree.FindNearest(path)
	}
	g.hover = nil
	g.lastClicked = nil
	g.Tooltip.Dismiss()
	g.relayout()
}

// SetError shows the parse failure instead of a graph
func (g *GraphView) SetError(err error) {
	if g.Selected != nil {
		g.pendingPath = g.Selected.Path
	}
	g.Err = err
	g.Tree = nil
	g.Layout = nil
	g.Selected = nil
	g.hover = nil
	g.Tooltip.Dismiss()
	g.Search.Refresh(nil)
}

// relayout recomputes the layout after the rendered set changed
func (g *GraphView) relayout() {
	if g.Tree == nil {
		g.Layout = nil
		return
	}
	g.Layout = graph.Arrange(g.Tree.Rows(), g.opts.Metrics)
	g.ensureSelection()
	g.Search.Refresh(g.Tree.RenderedNodes())
}

// ensureSelection moves a hidden selection to its nearest rendered ancestor
func (g *GraphView) ensureSelection() {
	for n := g.Selected; n != nil; n = n.Parent {
		if g.Layout.IndexOf(n) >= 0 {
			g.Selected = n
			return
		}
	}
	g.Selected = g.Tree.Root
}

func (g *GraphView) size() geom.Size {
	return geom.Size{W: float64(g.Width), H: float64(g.Height)}
}

func (g *GraphView) center() geom.Point {
	return geom.Point{X: float64(g.Width) / 2, Y: float64(g.Height) / 2}
}

// FocusNode selects n and pans so it sits in the middle of the canvas
func (g *GraphView) FocusNode(n *graph.Node) {
	if g.Layout == nil || n == nil {
		return
	}
	rect, ok := g.Layout.RectOf(n)
	if !ok {
		return
	}
	g.Selected = n
	g.Tooltip.Dismiss()
	g.Viewport.FocusRect(g.Viewport.ContentRectToScreen(rect), g.size())
}

// Reveal opens the way to path and focuses the node there
func (g *GraphView) Reveal(path string) bool {
	if g.Tree == nil {
		return false
	}
	n, ok := g.Tree.Reveal(path)
	if !ok {
		return false
	}
	g.relayout()
	g.FocusNode(n)
	return true
}

// SetQuery runs a search over the rendered nodes and returns the match count
func (g *GraphView) SetQuery(query string) int {
	if g.Tree == nil {
		return g.Search.SetQuery(query, nil)
	}
	return g.Search.SetQuery(query, g.Tree.RenderedNodes())
}

// NextMatch focuses the next search match
func (g *GraphView) NextMatch() bool {
	_, ok := g.Search.Next()
	return ok
}

// Fit scales the whole graph into the canvas
func (g *GraphView) Fit() {
	if g.Layout == nil {
		return
	}
	g.Tooltip.Dismiss()
	g.Viewport.FitToContent(g.size(), g.Layout.Size)
}

// RequestExpandAll expands every node, or asks for confirmation first when
// the document is large
func (g *GraphView) RequestExpandAll() tea.Cmd {
	if g.Tree == nil {
		return nil
	}
	if g.Tree.NeedsConfirmation(g.opts.ExpandAllThreshold) {
		count := g.Tree.Stats().Expandable
		return func() tea.Msg {
			return ConfirmExpandAllMsg{Expandable: count}
		}
	}
	g.ExpandAll()
	return nil
}

// ExpandAll expands every node without asking
func (g *GraphView) ExpandAll() {
	if g.Tree == nil {
		return
	}
	g.Tree.Apply(graph.BulkExpandAll)
	g.relayout()
}

// CollapseAll collapses everything below the root
func (g *GraphView) CollapseAll() {
	if g.Tree == nil {
		return
	}
	g.Tree.Apply(graph.BulkCollapseAll)
	g.relayout()
}

// ToggleSelected expands or collapses the selected node
func (g *GraphView) ToggleSelected() {
	if g.Selected == nil || !g.Selected.IsExpandable() {
		return
	}
	g.Selected.Toggle()
	g.relayout()
}

// ShowMore reveals the next page of the selected node, or of its parent when
// the selection itself has nothing hidden
func (g *GraphView) ShowMore() bool {
	target := g.Selected
	if target != nil && (!target.Expanded || target.HiddenCount() == 0) {
		target = target.Parent
	}
	if target == nil || target.ShowMore() == 0 {
		return false
	}
	g.relayout()
	return true
}

// MoveSelection selects the rendered node delta steps away, wrapping around
func (g *GraphView) MoveSelection(delta int) {
	if g.Tree == nil {
		return
	}
	nodes := g.Tree.RenderedNodes()
	if len(nodes) == 0 {
		return
	}
	i := 0
	for j, n := range nodes {
		if n == g.Selected {
			i = j
			break
		}
	}
	i = ((i+delta)%len(nodes) + len(nodes)) % len(nodes)
	g.FocusNode(nodes[i])
}

func (g *GraphView) pan(dx, dy float64) {
	g.Tooltip.Dismiss()
	g.Viewport.BeginPan()
	g.Viewport.Pan(dx, dy)
	g.Viewport.EndPan()
}

func (g *GraphView) zoomAt(p geom.Point, delta float64) {
	g.Tooltip.Dismiss()
	g.hover = nil
	g.Viewport.Zoom(p, delta)
}

// Update handles keyboard, mouse and tooltip messages
func (g *GraphView) Update(msg tea.Msg) (*GraphView, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return g.handleKey(msg)
	case tea.MouseMsg:
		return g, g.handleMouse(msg)
	case TooltipHideMsg:
		if g.Tooltip.Expire(msg.Ticket) {
			g.hover = nil
		}
	}
	return g, nil
}

func (g *GraphView) handleKey(msg tea.KeyMsg) (*GraphView, tea.Cmd) {
	step := g.opts.PanStep
	switch {
	case key.Matches(msg, g.Keys.PanUp):
		g.pan(0, step)
	case key.Matches(msg, g.Keys.PanDown):
		g.pan(0, -step)
	case key.Matches(msg, g.Keys.PanLeft):
		g.pan(step, 0)
	case key.Matches(msg, g.Keys.PanRight):
		g.pan(-step, 0)
	case key.Matches(msg, g.Keys.ZoomIn):
		g.zoomAt(g.center(), g.opts.ZoomStep)
	case key.Matches(msg, g.Keys.ZoomOut):
		g.zoomAt(g.center(), -g.opts.ZoomStep)
	case key.Matches(msg, g.Keys.Reset):
		g.Tooltip.Dismiss()
		g.Viewport.Reset()
	case key.Matches(msg, g.Keys.Fit):
		g.Fit()
	case key.Matches(msg, g.Keys.NextNode):
		g.MoveSelection(1)
	case key.Matches(msg, g.Keys.PrevNode):
		g.MoveSelection(-1)
	case key.Matches(msg, g.Keys.Toggle):
		g.ToggleSelected()
	case key.Matches(msg, g.Keys.ShowMore):
		g.ShowMore()
	case key.Matches(msg, g.Keys.Center):
		g.FocusNode(g.Selected)
	case key.Matches(msg, g.Keys.ExpandAll):
		return g, g.RequestExpandAll()
	case key.Matches(msg, g.Keys.CollapseAll):
		g.CollapseAll()
	}
	return g, nil
}

func (g *GraphView) handleMouse(msg tea.MouseMsg) tea.Cmd {
	p := geom.Point{X: float64(msg.X - g.Left), Y: float64(msg.Y - g.Top)}

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		g.zoomAt(p, g.opts.ZoomStep)
	case msg.Button == tea.MouseButtonWheelDown:
		g.zoomAt(p, -g.opts.ZoomStep)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		g.Tooltip.Dismiss()
		g.Viewport.BeginPan()
		g.dragFrom = p
		g.dragged = false
	case msg.Action == tea.MouseActionMotion && g.Viewport.Panning():
		d := p.Sub(g.dragFrom)
		if d.X != 0 || d.Y != 0 {
			g.Viewport.Pan(d.X, d.Y)
			g.dragFrom = p
			g.dragged = true
		}
	case msg.Action == tea.MouseActionRelease:
		if g.Viewport.Panning() {
			g.Viewport.EndPan()
			if !g.dragged {
				g.click(p)
			}
		}
	case msg.Action == tea.MouseActionMotion:
		return g.hoverAt(p)
	}
	return nil
}

// click selects and toggles a node, or reveals a page for a "more" row. A
// second click on the same node within the double-click window undoes the
// toggle and centers the node instead.
func (g *GraphView) click(p geom.Point) {
	item, ok := g.itemAt(p)
	if !ok {
		return
	}
	if item.Row.Kind == graph.RowMore {
		g.lastClicked = nil
		if item.Row.Node.ShowMore() > 0 {
			g.relayout()
		}
		return
	}

	n := item.Row.Node
	now := g.now()
	if n == g.lastClicked && now.Sub(g.lastClick) <= g.opts.DoubleClick {
		if g.clickToggled {
			n.Toggle()
			g.relayout()
		}
		g.lastClicked = nil
		g.FocusNode(n)
		return
	}

	g.lastClick, g.lastClicked = now, n
	g.Selected = n
	g.clickToggled = n.IsExpandable() && !n.IsRoot()
	if g.clickToggled {
		n.Toggle()
		g.relayout()
	}
}

func (g *GraphView) hoverAt(p geom.Point) tea.Cmd {
	if st, ok := g.Tooltip.Current(); ok && g.tooltipRect(st).Contains(p) {
		g.Tooltip.CancelHide()
		return nil
	}

	if item, ok := g.itemAt(p); ok && item.Row.Kind == graph.RowNode {
		n := item.Row.Node
		if n != g.hover {
			if g.Tooltip.Show(g.tooltipState(item), g.Viewport.Gesturing()) {
				g.hover = n
			}
		} else {
			g.Tooltip.CancelHide()
		}
		return nil
	}

	g.hover = nil
	if _, ok := g.Tooltip.Current(); !ok || g.Tooltip.HidePending() {
		return nil
	}
	ticket := g.Tooltip.RequestHide()
	return tea.Tick(g.Tooltip.Delay(), func(time.Time) tea.Msg {
		return TooltipHideMsg{Ticket: ticket}
	})
}

// cellRect returns where an item is drawn: its first column, its line and
// its width in cells
func (g *GraphView) cellRect(it graph.Item) (x, y, w int) {
	r := g.Viewport.ContentRectToScreen(it.Rect)
	x = int(math.Floor(r.X))
	y = int(math.Floor(r.Y + r.H/2))
	w = max(int(math.Round(r.W)), 1)
	return x, y, w
}

// itemAt returns the topmost item drawn under a canvas cell
func (g *GraphView) itemAt(p geom.Point) (graph.Item, bool) {
	if g.Layout == nil {
		return graph.Item{}, false
	}
	cx, cy := int(math.Floor(p.X)), int(math.Floor(p.Y))
	for i := len(g.Layout.Items) - 1; i >= 0; i-- {
		it := g.Layout.Items[i]
		x, y, w := g.cellRect(it)
		if cy == y && cx >= x && cx < x+w {
			return it, true
		}
	}
	return graph.Item{}, false
}

func (g *GraphView) tooltipState(it graph.Item) tooltip.State {
	n := it.Row.Node
	x, y, w := g.cellRect(it)
	value := n.Summary()
	if !n.IsExpandable() {
		value = jsondoc.ScalarString(n.Value)
	}
	return tooltip.State{
		Anchor: geom.Rect{X: float64(x), Y: float64(y), W: float64(w), H: 1},
		Path:   n.Path,
		Kind:   n.Kind(),
		Value:  value,
		Name:   n.Label(),
	}
}

func (g *GraphView) tooltipRect(st tooltip.State) geom.Rect {
	pos := tooltip.Place(st.Anchor, g.size(), g.opts.Tooltip)
	return geom.Rect{X: pos.X, Y: pos.Y, W: g.opts.Tooltip.Width, H: g.opts.Tooltip.Height}
}

// View renders the canvas
func (g *GraphView) View() string {
	if g.Width <= 0 || g.Height <= 0 {
		return ""
	}
	if g.Err != nil {
		return g.errorState()
	}
	if g.Layout == nil || len(g.Layout.Items) == 0 {
		return g.emptyState()
	}

	c := newCanvas(g.Width, g.Height)
	g.paintConnectors(c)
	g.paintNodes(c)
	g.paintTooltip(c)
	return c.String()
}

func (g *GraphView) emptyState() string {
	style := lipgloss.NewStyle().
		Foreground(g.Theme.Muted).
		Italic(true)
	return lipgloss.Place(g.Width, g.Height, lipgloss.Center, lipgloss.Center, style.Render("No document loaded"))
}

// errorState replaces the graph while the document does not parse
func (g *GraphView) errorState() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(g.Theme.Error).
		Bold(true)
	msgStyle := lipgloss.NewStyle().
		Foreground(g.Theme.Foreground)
	hintStyle := lipgloss.NewStyle().
		Foreground(g.Theme.Muted).
		Italic(true)

	width := max(min(g.Width-4, 72), 10)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(g.Theme.Error).
		Padding(0, 1).
		Width(width)

	body := titleStyle.Render("Invalid JSON") + "\n\n" +
		msgStyle.Render(g.Err.Error()) + "\n\n" +
		hintStyle.Render("The graph comes back as soon as the document parses.")
	return lipgloss.Place(g.Width, g.Height, lipgloss.Center, lipgloss.Center, box.Render(body))
}

func (g *GraphView) paintConnectors(c *canvas) {
	st := c.style(lipgloss.NewStyle().Foreground(g.Theme.Connector))
	type corner struct{ x, y int }
	var corners []corner

	for _, conn := range g.Layout.Connectors {
		from := g.Viewport.ContentToScreen(conn.From)
		to := g.Viewport.ContentToScreen(conn.To)
		bend := g.Viewport.ContentToScreen(geom.Point{X: conn.Bend}).X

		x1, y1 := int(math.Floor(from.X)), int(math.Floor(from.Y))
		x2, y2 := int(math.Floor(to.X)), int(math.Floor(to.Y))
		bx := int(math.Floor(bend))

		if y2 <= y1 {
			c.fill(x1, y1, x2-x1, '─', st)
			continue
		}
		c.fill(x1, y1, bx-x1, '─', st)
		c.put(bx, y1, '┐', st)
		for y := max(y1+1, 0); y <= min(y2, c.h-1); y++ {
			c.put(bx, y, '│', st)
		}
		c.fill(bx+1, y2, x2-bx-1, '─', st)
		corners = append(corners, corner{bx, y2})
	}

	// decide every corner before drawing any, so shared verticals stay intact
	glyphs := make([]rune, len(corners))
	for i, k := range corners {
		glyphs[i] = '└'
		if c.at(k.x, k.y+1) == '│' {
			glyphs[i] = '├'
		}
	}
	for i, k := range corners {
		c.put(k.x, k.y, glyphs[i], st)
	}
}

func (g *GraphView) paintNodes(c *canvas) {
	current, _ := g.Search.Current()
	for _, it := range g.Layout.Items {
		x, y, w := g.cellRect(it)
		if y < 0 || y >= c.h || x >= c.w || x+w <= 0 {
			continue
		}
		st := c.style(g.itemStyle(it, current))
		c.fill(x, y, w, ' ', st)
		c.text(x, y, truncateCells(itemText(it), w), w, st)
	}
}

func itemText(it graph.Item) string {
	if it.Row.Kind == graph.RowMore {
		return fmt.Sprintf("⋯ show next %d (%d hidden)", it.Row.NextPage(), it.Row.Hidden)
	}
	n := it.Row.Node
	icon := "•"
	if n.IsExpandable() {
		icon = "▸"
		if n.Expanded {
			icon = "▾"
		}
	}
	return icon + " " + n.Label() + ": " + n.Summary()
}

func (g *GraphView) itemStyle(it graph.Item, current *graph.Node) lipgloss.Style {
	if it.Row.Kind == graph.RowMore {
		return lipgloss.NewStyle().Foreground(g.Theme.MoreRow).Italic(true)
	}
	n := it.Row.Node
	s := lipgloss.NewStyle().Foreground(g.Theme.KindColor(n.Kind()))
	switch {
	case n == current:
		s = s.Background(g.Theme.MatchActive).Foreground(g.Theme.Background)
	case g.Search.IsMatch(n):
		s = s.Background(g.Theme.Match)
	case n == g.Selected:
		s = s.Background(g.Theme.Selection)
	}
	if n == g.Selected {
		s = s.Bold(true)
	}
	return s
}

func (g *GraphView) paintTooltip(c *canvas) {
	st, ok := g.Tooltip.Current()
	if !ok {
		return
	}
	r := g.tooltipRect(st)
	x, y := int(r.X), int(r.Y)
	w, h := int(r.W), int(r.H)
	if w < 4 || h < 3 {
		return
	}

	border := c.style(lipgloss.NewStyle().Foreground(g.Theme.BorderFocused))
	body := c.style(lipgloss.NewStyle().Foreground(g.Theme.Foreground))
	name := c.style(lipgloss.NewStyle().Foreground(g.Theme.JSONKey).Bold(true))
	value := c.style(lipgloss.NewStyle().Foreground(g.Theme.KindColor(st.Kind)))
	hint := c.style(lipgloss.NewStyle().Foreground(g.Theme.Muted).Italic(true))

	c.put(x, y, '╭', border)
	c.fill(x+1, y, w-2, '─', border)
	c.put(x+w-1, y, '╮', border)
	for row := y + 1; row < y+h-1; row++ {
		c.put(x, row, '│', border)
		c.fill(x+1, row, w-2, ' ', body)
		c.put(x+w-1, row, '│', border)
	}
	c.put(x, y+h-1, '╰', border)
	c.fill(x+1, y+h-1, w-2, '─', border)
	c.put(x+w-1, y+h-1, '╯', border)

	inner := w - 4
	lines := []struct {
		text string
		st   int
	}{
		{st.Name, name},
		{"path  " + st.Path, body},
		{"type  " + st.Kind.String(), body},
		{st.Value, value},
		{"y copy path · Y copy value", hint},
	}
	for i, l := range lines {
		row := y + 1 + i
		if row >= y+h-1 {
			break
		}
		c.text(x+2, row, truncateCells(l.text, inner), inner, l.st)
	}
}
