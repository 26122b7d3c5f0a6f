package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rebeliceyang/lazyjson/internal/geom"
)

func TestArrange(t *testing.T) {
	tree := Build(mustParse(t, `{"a":1,"b":[1,2]}`), DefaultOptions())
	m := Metrics{NodeWidth: 10, NodeHeight: 1, ColumnGap: 4, RowGap: 1}
	l := Arrange(tree.Rows(), m)

	require.Len(t, l.Items, 5)
	assert.Equal(t, geom.Rect{X: 0, Y: 0, W: 10, H: 1}, l.Items[0].Rect)
	assert.Equal(t, geom.Rect{X: 14, Y: 2, W: 10, H: 1}, l.Items[1].Rect)
	assert.Equal(t, geom.Rect{X: 28, Y: 6, W: 10, H: 1}, l.Items[3].Rect)
	assert.Equal(t, geom.Size{W: 38, H: 9}, l.Size)

	// one connector per non-root row
	require.Len(t, l.Connectors, 4)
	c := l.Connectors[0]
	assert.Equal(t, geom.Point{X: 10, Y: 0.5}, c.From)
	assert.Equal(t, geom.Point{X: 14, Y: 2.5}, c.To)
	assert.Equal(t, 12.0, c.Bend)
}

func TestLayout_RectOfAndHitTest(t *testing.T) {
	tree := Build(mustParse(t, `{"a":1,"b":2}`), DefaultOptions())
	l := Arrange(tree.Rows(), Metrics{NodeWidth: 10, NodeHeight: 1, ColumnGap: 4, RowGap: 1})

	b := tree.Root.Children()[1]
	r, ok := l.RectOf(b)
	require.True(t, ok)
	assert.Equal(t, geom.Rect{X: 14, Y: 4, W: 10, H: 1}, r)

	it, ok := l.HitTest(geom.Point{X: 15, Y: 4.5})
	require.True(t, ok)
	assert.Same(t, b, it.Row.Node)

	_, ok = l.HitTest(geom.Point{X: 15, Y: 3.5}) // row gap
	assert.False(t, ok)
	_, ok = l.HitTest(geom.Point{X: 2, Y: 4.5}) // left of the node
	assert.False(t, ok)
	_, ok = l.HitTest(geom.Point{X: 2, Y: -1})
	assert.False(t, ok)

	tree.Root.Children()[0].Collapse() // scalar: no-op
	assert.Equal(t, -1, l.IndexOf(&Node{}))
}

func TestLayout_MoreRowConnectsToOwner(t *testing.T) {
	tree := Build(mustParse(t, numbersArray(51)), DefaultOptions())
	l := Arrange(tree.Rows(), DefaultMetrics())
	last := l.Items[len(l.Items)-1]
	require.Equal(t, RowMore, last.Row.Kind)
	assert.Equal(t, 1, last.Row.Hidden)
	assert.Len(t, l.Connectors, 51)
}
