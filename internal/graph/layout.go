package graph

import (
	"github.com/rebeliceyang/lazyjson/internal/geom"
)

// Metrics sizes nodes in layout units. The terminal view uses one unit per
// cell at scale 1.0.
type Metrics struct {
	NodeWidth  float64
	NodeHeight float64
	ColumnGap  float64
	RowGap     float64
}

// DefaultMetrics returns the node sizes used by the terminal view
func DefaultMetrics() Metrics {
	return Metrics{NodeWidth: 24, NodeHeight: 1, ColumnGap: 6, RowGap: 1}
}

// Item is a placed row
type Item struct {
	Row  Row
	Rect geom.Rect
}

// Connector joins a parent's right edge to a child's left edge. Painters
// draw it as an elbow turning at Bend.
type Connector struct {
	From geom.Point
	To   geom.Point
	Bend float64
}

// Layout is the model-space placement of the rendered rows. Depth picks the
// column, document order picks the line.
type Layout struct {
	Items      []Item
	Connectors []Connector
	Size       geom.Size
	Metrics    Metrics

	byNode map[*Node]int
}

// Arrange lays out rows
func Arrange(rows []Row, m Metrics) *Layout {
	l := &Layout{
		Items:   make([]Item, 0, len(rows)),
		Metrics: m,
		byNode:  make(map[*Node]int, len(rows)),
	}

	colStep := m.NodeWidth + m.ColumnGap
	rowStep := m.NodeHeight + m.RowGap

	for i, row := range rows {
		rect := geom.Rect{
			X: float64(row.Depth) * colStep,
			Y: float64(i) * rowStep,
			W: m.NodeWidth,
			H: m.NodeHeight,
		}
		l.Items = append(l.Items, Item{Row: row, Rect: rect})

		var parent *Node
		if row.Kind == RowNode {
			l.byNode[row.Node] = i
			parent = row.Node.Parent
		} else {
			parent = row.Node
		}
		if parent != nil {
			if pi, ok := l.byNode[parent]; ok {
				pr := l.Items[pi].Rect
				from := geom.Point{X: pr.X + pr.W, Y: pr.Y + pr.H/2}
				to := geom.Point{X: rect.X, Y: rect.Y + rect.H/2}
				l.Connectors = append(l.Connectors, Connector{
					From: from,
					To:   to,
					Bend: from.X + m.ColumnGap/2,
				})
			}
		}

		if right := rect.X + rect.W; right > l.Size.W {
			l.Size.W = right
		}
		if bottom := rect.Y + rect.H; bottom > l.Size.H {
			l.Size.H = bottom
		}
	}
	return l
}

// IndexOf returns the item index of n, or -1 when n is not rendered
func (l *Layout) IndexOf(n *Node) int {
	if i, ok := l.byNode[n]; ok {
		return i
	}
	return -1
}

// RectOf returns the content-space rectangle of a rendered node
func (l *Layout) RectOf(n *Node) (geom.Rect, bool) {
	i := l.IndexOf(n)
	if i < 0 {
		return geom.Rect{}, false
	}
	return l.Items[i].Rect, true
}

// HitTest returns the item under a content-space point
func (l *Layout) HitTest(p geom.Point) (Item, bool) {
	rowStep := l.Metrics.NodeHeight + l.Metrics.RowGap
	if rowStep <= 0 || p.Y < 0 {
		return Item{}, false
	}
	i := int(p.Y / rowStep)
	if i >= len(l.Items) {
		return Item{}, false
	}
	if it := l.Items[i]; it.Rect.Contains(p) {
		return it, true
	}
	return Item{}, false
}
