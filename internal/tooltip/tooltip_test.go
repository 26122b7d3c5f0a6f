package tooltip

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rebeliceyang/lazyjson/internal/geom"
)

func TestPlace(t *testing.T) {
	opts := DefaultOptions()
	vp := geom.Size{W: 1000, H: 800}

	tests := []struct {
		name   string
		anchor geom.Rect
		want   geom.Point
	}{
		{"right of anchor", geom.Rect{X: 100, Y: 50, W: 80, H: 30}, geom.Point{X: 192, Y: 50}},
		{"flips left on right overflow", geom.Rect{X: 700, Y: 50, W: 80, H: 30}, geom.Point{X: 368, Y: 50}},
		{"exactly fits on the right", geom.Rect{X: 600, Y: 0, W: 68, H: 10}, geom.Point{X: 680, Y: 0}},
		{"clamped above bottom", geom.Rect{X: 100, Y: 700, W: 80, H: 30}, geom.Point{X: 192, Y: 590}},
		{"flipped and clamped", geom.Rect{X: 900, Y: 750, W: 50, H: 20}, geom.Point{X: 568, Y: 590}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Place(tt.anchor, vp, opts))
		})
	}
}

func TestPlace_StaysOnScreenInTinyViewport(t *testing.T) {
	p := Place(geom.Rect{X: 5, Y: 5, W: 10, H: 1}, geom.Size{W: 40, H: 10}, DefaultOptions())
	assert.GreaterOrEqual(t, p.X, 0.0)
	assert.GreaterOrEqual(t, p.Y, 0.0)
}

func TestController_HideIsDebounced(t *testing.T) {
	c := NewController(DefaultHideDelay)
	require.True(t, c.Show(State{Path: "$.a"}, false))

	ticket := c.RequestHide()
	assert.True(t, c.HidePending())
	_, visible := c.Current()
	assert.True(t, visible, "hide waits for the delay")

	assert.True(t, c.Expire(ticket))
	_, visible = c.Current()
	assert.False(t, visible)
}

func TestController_EnteringTooltipCancelsHide(t *testing.T) {
	c := NewController(DefaultHideDelay)
	c.Show(State{Path: "$.a"}, false)
	ticket := c.RequestHide()
	c.CancelHide()

	assert.False(t, c.Expire(ticket))
	s, visible := c.Current()
	require.True(t, visible)
	assert.Equal(t, "$.a", s.Path)
}

func TestController_StaleTicketIgnored(t *testing.T) {
	c := NewController(DefaultHideDelay)
	c.Show(State{Path: "$.a"}, false)
	old := c.RequestHide()
	c.Show(State{Path: "$.b"}, false) // hovered another node
	newer := c.RequestHide()

	assert.False(t, c.Expire(old))
	assert.True(t, c.Expire(newer))
}

func TestController_SuppressedWhileGesturing(t *testing.T) {
	c := NewController(DefaultHideDelay)
	c.Show(State{Path: "$.a"}, false)

	assert.False(t, c.Show(State{Path: "$.b"}, true))
	_, visible := c.Current()
	assert.False(t, visible)
}

func TestController_HideWithoutTooltip(t *testing.T) {
	c := NewController(0)
	ticket := c.RequestHide()
	assert.False(t, c.HidePending())
	assert.False(t, c.Expire(ticket))
}
