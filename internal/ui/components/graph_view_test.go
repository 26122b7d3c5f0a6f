package components

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rebeliceyang/lazyjson/internal/geom"
	"github.com/rebeliceyang/lazyjson/internal/graph"
	"github.com/rebeliceyang/lazyjson/internal/jsondoc"
	"github.com/rebeliceyang/lazyjson/internal/ui/theme"
)

func newTestGraphView(t *testing.T, doc string, opts GraphViewOptions) *GraphView {
	t.Helper()
	g := NewGraphView(theme.DefaultTheme(), opts)
	g.Width = 80
	g.Height = 30
	if doc != "" {
		v, err := jsondoc.ParseString(doc)
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		g.SetDocument(v)
	}
	return g
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// cellOf returns a canvas cell inside the drawn node with the given path
func cellOf(t *testing.T, g *GraphView, path string) (int, int) {
	t.Helper()
	for _, it := range g.Layout.Items {
		if it.Row.Kind == graph.RowNode && it.Row.Node.Path == path {
			x, y, _ := g.cellRect(it)
			return x + 1, y
		}
	}
	t.Fatalf("node %s is not rendered", path)
	return 0, 0
}

func click(g *GraphView, x, y int) {
	g.Update(tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	g.Update(tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonNone, Action: tea.MouseActionRelease})
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

const sampleDoc = `{"name":"Ada","tags":["x","y"]}`

func TestGraphView_EmptyState(t *testing.T) {
	g := newTestGraphView(t, "", DefaultGraphViewOptions())

	if !strings.Contains(g.View(), "No document loaded") {
		t.Error("Expected empty state message without a document")
	}
}

func TestGraphView_RendersNodes(t *testing.T) {
	g := newTestGraphView(t, sampleDoc, DefaultGraphViewOptions())

	view := g.View()
	for _, want := range []string{"▾ $: {2 keys}", `• name: "Ada"`, "▾ tags: [2 items]", "• 0: \"x\""} {
		if !strings.Contains(view, want) {
			t.Errorf("Expected view to contain %q\n%s", want, view)
		}
	}
	if g.Selected != g.Tree.Root {
		t.Error("Expected the root to be selected initially")
	}
}

func TestGraphView_Connectors(t *testing.T) {
	g := newTestGraphView(t, `{"a":1,"b":2}`, DefaultGraphViewOptions())

	view := g.View()
	for _, want := range []string{"┐", "├─", "└─"} {
		if !strings.Contains(view, want) {
			t.Errorf("Expected connector glyph %q\n%s", want, view)
		}
	}
}

func TestGraphView_ParseErrorPlaceholder(t *testing.T) {
	g := newTestGraphView(t, sampleDoc, DefaultGraphViewOptions())

	_, err := jsondoc.ParseString(`{"name": `)
	if err == nil {
		t.Fatal("Expected a parse error")
	}
	g.SetError(err)

	view := g.View()
	if !strings.Contains(view, "Invalid JSON") {
		t.Error("Expected error placeholder title")
	}
	if g.Tree != nil || g.Layout != nil {
		t.Error("Expected no partial graph while the document is invalid")
	}
	if strings.Contains(view, "name") && strings.Contains(view, "{2 keys}") {
		t.Error("Expected no nodes in the error placeholder")
	}
}

func TestGraphView_ReloadKeepsSelectionByPath(t *testing.T) {
	g := newTestGraphView(t, sampleDoc, DefaultGraphViewOptions())
	g.FocusNode(g.Tree.FindByPath("$.tags"))
	state := g.Viewport.State()

	v, _ := jsondoc.ParseString(`{"tags":["z"],"extra":true}`)
	g.SetDocument(v)

	if g.Selected == nil || g.Selected.Path != "$.tags" {
		t.Fatalf("Expected selection to stay on $.tags, got %v", g.Selected)
	}
	if g.Viewport.State() != state {
		t.Error("Expected the viewport to survive a reload")
	}

	v, _ = jsondoc.ParseString(`[1,2]`)
	g.SetDocument(v)
	if g.Selected != g.Tree.Root {
		t.Error("Expected selection to fall back to the root")
	}
}

func TestGraphView_ReloadFallsBackToNearestAncestor(t *testing.T) {
	opts := DefaultGraphViewOptions()
	opts.Graph.ExpansionBudget = 2
	g := newTestGraphView(t, `{"a":{"b":{"c":1}}}`, opts)
	g.FocusNode(g.Tree.FindByPath("$.a.b.c"))

	// the extra object uses up the budget, so $.a.b starts collapsed
	v, _ := jsondoc.ParseString(`{"x":{},"a":{"b":{"c":1}}}`)
	g.SetDocument(v)

	if g.Selected == nil || g.Selected.Path != "$.a.b" {
		t.Fatalf("Expected selection on $.a.b, got %v", g.Selected)
	}
}

func TestGraphView_SelectionSurvivesParseError(t *testing.T) {
	g := newTestGraphView(t, sampleDoc, DefaultGraphViewOptions())
	g.FocusNode(g.Tree.FindByPath("$.name"))

	g.SetError(errors.New("broken"))
	v, _ := jsondoc.ParseString(sampleDoc)
	g.SetDocument(v)

	if g.Selected == nil || g.Selected.Path != "$.name" {
		t.Errorf("Expected selection $.name after recovery, got %v", g.Selected)
	}
}

func TestGraphView_KeyboardPanAndZoom(t *testing.T) {
	g := newTestGraphView(t, sampleDoc, DefaultGraphViewOptions())
	start := g.Viewport.State()

	g.Update(runes("l"))
	if got := g.Viewport.State().TranslateX; got != start.TranslateX-4 {
		t.Errorf("Expected translateX %v, got %v", start.TranslateX-4, got)
	}
	g.Update(tea.KeyMsg{Type: tea.KeyUp})
	if got := g.Viewport.State().TranslateY; got != start.TranslateY+4 {
		t.Errorf("Expected translateY %v, got %v", start.TranslateY+4, got)
	}
	if g.Viewport.Panning() {
		t.Error("Expected keyboard pan to end its gesture")
	}

	g.Update(runes("+"))
	if !near(g.Viewport.Scale(), 1.1) {
		t.Errorf("Expected scale 1.1, got %v", g.Viewport.Scale())
	}

	g.Update(runes("0"))
	if g.Viewport.State() != start {
		t.Error("Expected reset to restore the initial transform")
	}

	g.Update(runes("f"))
	if g.Viewport.Scale() > 1 {
		t.Errorf("Expected fit never to zoom past 1, got %v", g.Viewport.Scale())
	}
}

func TestGraphView_TabFocusesNextNode(t *testing.T) {
	g := newTestGraphView(t, sampleDoc, DefaultGraphViewOptions())

	g.Update(tea.KeyMsg{Type: tea.KeyTab})
	if g.Selected.Path != "$.name" {
		t.Fatalf("Expected $.name selected, got %s", g.Selected.Path)
	}

	rect, _ := g.Layout.RectOf(g.Selected)
	c := g.Viewport.ContentRectToScreen(rect).Center()
	if !near(c.X, 40) || !near(c.Y, 15) {
		t.Errorf("Expected focused node centered at (40,15), got (%v,%v)", c.X, c.Y)
	}

	g.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	g.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if g.Selected.Path != "$.tags[1]" {
		t.Errorf("Expected selection to wrap to the last node, got %s", g.Selected.Path)
	}
}

func TestGraphView_SpaceTogglesSelected(t *testing.T) {
	g := newTestGraphView(t, sampleDoc, DefaultGraphViewOptions())
	g.FocusNode(g.Tree.FindByPath("$.tags"))

	g.Update(tea.KeyMsg{Type: tea.KeySpace})
	if g.Selected.Expanded {
		t.Fatal("Expected tags to collapse")
	}
	if n := len(g.Tree.RenderedNodes()); n != 3 {
		t.Errorf("Expected 3 rendered nodes, got %d", n)
	}
	if !strings.Contains(g.View(), "▸ tags") {
		t.Error("Expected collapsed icon")
	}
}

func TestGraphView_CollapseAllMovesSelectionUp(t *testing.T) {
	g := newTestGraphView(t, sampleDoc, DefaultGraphViewOptions())
	g.FocusNode(g.Tree.FindByPath("$.tags[0]"))

	g.Update(runes("C"))
	if g.Selected.Path != "$.tags" {
		t.Errorf("Expected selection on the nearest rendered ancestor, got %s", g.Selected.Path)
	}
}

func TestGraphView_ExpandAllAsksForLargeDocuments(t *testing.T) {
	opts := DefaultGraphViewOptions()
	opts.ExpandAllThreshold = 1
	g := newTestGraphView(t, `{"a":{"b":{}}}`, opts)

	_, cmd := g.Update(runes("E"))
	if cmd == nil {
		t.Fatal("Expected a confirmation command")
	}
	msg, ok := cmd().(ConfirmExpandAllMsg)
	if !ok {
		t.Fatalf("Expected ConfirmExpandAllMsg, got %T", cmd())
	}
	if msg.Expandable <= 1 {
		t.Errorf("Expected expandable count above threshold, got %d", msg.Expandable)
	}

	opts.ExpandAllThreshold = 100
	g = newTestGraphView(t, `{"a":{"b":{}}}`, opts)
	if _, cmd := g.Update(runes("E")); cmd != nil {
		t.Error("Expected small documents to expand without asking")
	}
}

func TestGraphView_ShowMoreRow(t *testing.T) {
	opts := DefaultGraphViewOptions()
	opts.Graph.PageSize = 10
	g := newTestGraphView(t, `[0,1,2,3,4,5,6,7,8,9,10,11]`, opts)

	if !strings.Contains(g.View(), "show next 2") {
		t.Fatalf("Expected pagination row\n%s", g.View())
	}

	g.Update(runes("m"))
	if g.Tree.Root.HiddenCount() != 0 {
		t.Errorf("Expected every item visible, %d hidden", g.Tree.Root.HiddenCount())
	}
	if strings.Contains(g.View(), "show next") {
		t.Error("Expected the pagination row to disappear")
	}
}

func TestGraphView_ClickMoreRow(t *testing.T) {
	opts := DefaultGraphViewOptions()
	opts.Graph.PageSize = 10
	g := newTestGraphView(t, `[0,1,2,3,4,5,6,7,8,9,10,11]`, opts)

	last := g.Layout.Items[len(g.Layout.Items)-1]
	x, y, _ := g.cellRect(last)
	click(g, x+1, y)

	if g.Tree.Root.HiddenCount() != 0 {
		t.Errorf("Expected click on the more row to reveal the page")
	}
}

func TestGraphView_ClickAndDoubleClick(t *testing.T) {
	g := newTestGraphView(t, sampleDoc, DefaultGraphViewOptions())
	clock := time.Unix(0, 0)
	g.now = func() time.Time { return clock }

	x, y := cellOf(t, g, "$.tags")
	click(g, x, y)
	tags := g.Tree.FindByPath("$.tags")
	if g.Selected != tags || tags.Expanded {
		t.Fatal("Expected click to select and collapse tags")
	}

	clock = clock.Add(100 * time.Millisecond)
	click(g, x, y)
	if !tags.Expanded {
		t.Error("Expected double click to undo the toggle")
	}
	rect, _ := g.Layout.RectOf(tags)
	c := g.Viewport.ContentRectToScreen(rect).Center()
	if !near(c.X, 40) || !near(c.Y, 15) {
		t.Errorf("Expected double click to center the node, got (%v,%v)", c.X, c.Y)
	}

	x, y = cellOf(t, g, "$.tags")
	clock = clock.Add(time.Second)
	click(g, x, y)
	clock = clock.Add(time.Second)
	click(g, x, y)
	if !tags.Expanded {
		t.Error("Expected two slow clicks to toggle twice")
	}
}

func TestGraphView_DragPans(t *testing.T) {
	g := newTestGraphView(t, sampleDoc, DefaultGraphViewOptions())
	start := g.Viewport.State()

	g.Update(tea.MouseMsg{X: 10, Y: 10, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	g.Update(tea.MouseMsg{X: 15, Y: 12, Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion})
	g.Update(tea.MouseMsg{X: 15, Y: 12, Button: tea.MouseButtonNone, Action: tea.MouseActionRelease})

	s := g.Viewport.State()
	if s.TranslateX != start.TranslateX+5 || s.TranslateY != start.TranslateY+2 {
		t.Errorf("Expected pan by (5,2), got (%v,%v)", s.TranslateX-start.TranslateX, s.TranslateY-start.TranslateY)
	}
	if g.Viewport.Panning() {
		t.Error("Expected release to end the pan")
	}

	// motion without a pressed button does not pan
	g.Update(tea.MouseMsg{X: 30, Y: 20, Button: tea.MouseButtonNone, Action: tea.MouseActionMotion})
	if g.Viewport.State() != s {
		t.Error("Expected hover motion to leave the viewport alone")
	}
}

func TestGraphView_WheelZoomKeepsPointer(t *testing.T) {
	g := newTestGraphView(t, sampleDoc, DefaultGraphViewOptions())
	p := geom.Point{X: 37, Y: 9}
	before := g.Viewport.ScreenToContent(p)

	g.Update(tea.MouseMsg{X: 37, Y: 9, Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	if !near(g.Viewport.Scale(), 1.1) {
		t.Fatalf("Expected scale 1.1, got %v", g.Viewport.Scale())
	}
	after := g.Viewport.ScreenToContent(p)
	if !near(before.X, after.X) || !near(before.Y, after.Y) {
		t.Errorf("Expected content under pointer to stay put: %v -> %v", before, after)
	}

	g.Update(tea.MouseMsg{X: 37, Y: 9, Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	if !near(g.Viewport.Scale(), 1.0) {
		t.Errorf("Expected scale back to 1, got %v", g.Viewport.Scale())
	}
}

func TestGraphView_HoverTooltip(t *testing.T) {
	opts := DefaultGraphViewOptions()
	opts.HideDelay = time.Millisecond
	g := newTestGraphView(t, sampleDoc, opts)

	x, y := cellOf(t, g, "$.name")
	_, cmd := g.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion})
	if cmd != nil {
		t.Error("Expected no command while hovering a node")
	}
	st, ok := g.Tooltip.Current()
	if !ok || st.Path != "$.name" || st.Value != "Ada" {
		t.Fatalf("Expected tooltip for $.name, got %+v (%v)", st, ok)
	}
	if !strings.Contains(g.View(), "path  $.name") {
		t.Errorf("Expected tooltip in view\n%s", g.View())
	}

	// leaving schedules a hide, entering the tooltip cancels it
	_, cmd = g.Update(tea.MouseMsg{X: 70, Y: 28, Action: tea.MouseActionMotion})
	if cmd == nil || !g.Tooltip.HidePending() {
		t.Fatal("Expected a pending hide after leaving the node")
	}
	r := g.tooltipRect(st)
	g.Update(tea.MouseMsg{X: int(r.X) + 1, Y: int(r.Y) + 1, Action: tea.MouseActionMotion})
	if g.Tooltip.HidePending() {
		t.Error("Expected the pointer inside the tooltip to cancel the hide")
	}
	g.Update(cmd())
	if _, ok := g.Tooltip.Current(); !ok {
		t.Error("Expected a cancelled hide to keep the tooltip")
	}

	_, cmd = g.Update(tea.MouseMsg{X: 70, Y: 28, Action: tea.MouseActionMotion})
	if cmd == nil {
		t.Fatal("Expected a hide command")
	}
	g.Update(cmd())
	if _, ok := g.Tooltip.Current(); ok {
		t.Error("Expected the tooltip to hide after the delay")
	}
}

func TestGraphView_TooltipDismissedByGestures(t *testing.T) {
	g := newTestGraphView(t, sampleDoc, DefaultGraphViewOptions())

	x, y := cellOf(t, g, "$.name")
	g.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion})
	g.Update(tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	if _, ok := g.Tooltip.Current(); ok {
		t.Error("Expected zoom to dismiss the tooltip")
	}

	x, y = cellOf(t, g, "$.name")
	g.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion})
	g.Update(tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	if _, ok := g.Tooltip.Current(); ok {
		t.Error("Expected a pan start to dismiss the tooltip")
	}
	g.Update(tea.MouseMsg{X: x + 3, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion})
	g.Update(tea.MouseMsg{X: x + 3, Y: y, Action: tea.MouseActionMotion})
	if _, ok := g.Tooltip.Current(); ok {
		t.Error("Expected no tooltip while panning")
	}
}

func TestGraphView_SearchFocusesMatch(t *testing.T) {
	g := newTestGraphView(t, sampleDoc, DefaultGraphViewOptions())

	if n := g.SetQuery("Ada"); n != 1 {
		t.Fatalf("Expected 1 match, got %d", n)
	}
	if g.Selected.Path != "$.name" {
		t.Errorf("Expected the match to be focused, got %s", g.Selected.Path)
	}
	if !g.NextMatch() || g.Selected.Path != "$.name" {
		t.Error("Expected next to cycle back to the single match")
	}

	if n := g.SetQuery("nothing-here"); n != 0 {
		t.Errorf("Expected no matches, got %d", n)
	}
	if g.NextMatch() {
		t.Error("Expected next to be a no-op without matches")
	}
}

func TestGraphView_Reveal(t *testing.T) {
	opts := DefaultGraphViewOptions()
	opts.Graph.ExpansionBudget = 0
	g := newTestGraphView(t, `{"a":{"b":{"c":1}}}`, opts)

	if g.Tree.FindByPath("$.a.b.c") != nil {
		t.Fatal("Expected $.a.b.c to start hidden")
	}
	if !g.Reveal("$.a.b.c") {
		t.Fatal("Expected reveal to succeed")
	}
	if g.Selected == nil || g.Selected.Path != "$.a.b.c" {
		t.Fatalf("Expected $.a.b.c selected, got %v", g.Selected)
	}
	if g.Layout.IndexOf(g.Selected) < 0 {
		t.Error("Expected the revealed node to be rendered")
	}
	if g.Reveal("$.a.zzz") {
		t.Error("Expected a missing path to fail")
	}
}
