package viewport

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rebeliceyang/lazyjson/internal/geom"
)

const eps = 1e-9

func TestReset(t *testing.T) {
	c := New(DefaultConfig())
	c.BeginPan()
	c.Pan(10, 10)
	c.Zoom(geom.Point{X: 5, Y: 5}, 0.5)
	c.Reset()
	assert.Equal(t, State{Scale: 1, TranslateX: 40, TranslateY: 40}, c.State())
}

func TestPan_RequiresPointerDown(t *testing.T) {
	c := New(DefaultConfig())
	before := c.State()
	assert.False(t, c.Pan(5, 5))
	assert.Equal(t, before, c.State())

	c.BeginPan()
	assert.True(t, c.Panning())
	assert.True(t, c.Pan(5, -3))
	c.EndPan()
	assert.False(t, c.Panning())

	assert.Equal(t, State{Scale: 1, TranslateX: 45, TranslateY: 37}, c.State())
}

func TestZoom_Clamps(t *testing.T) {
	c := New(DefaultConfig())
	c.Zoom(geom.Point{}, 10)
	assert.Equal(t, 3.0, c.Scale())
	assert.False(t, c.Zoom(geom.Point{}, 1))
	c.Zoom(geom.Point{}, -10)
	assert.Equal(t, 0.3, c.Scale())
}

func TestZoom_FocalPointInvariant(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		c := New(DefaultConfig())
		c.BeginPan()
		c.Pan(r.Float64()*400-200, r.Float64()*400-200)
		c.EndPan()
		c.ZoomTo(geom.Point{}, 0.3+r.Float64()*2.7)

		focal := geom.Point{X: r.Float64() * 200, Y: r.Float64() * 80}
		under := c.ScreenToContent(focal)

		c.Zoom(focal, r.Float64()*2-1)

		after := c.ContentToScreen(under)
		require.InDelta(t, focal.X, after.X, 1e-6)
		require.InDelta(t, focal.Y, after.Y, 1e-6)
	}
}

func TestZoom_Formula(t *testing.T) {
	c := New(Config{MinScale: 0.3, MaxScale: 3, DefaultScale: 1, DefaultOffset: geom.Point{X: 10, Y: 20}})
	c.Zoom(geom.Point{X: 50, Y: 60}, 1) // 1 -> 2
	s := c.State()
	assert.InDelta(t, 2.0, s.Scale, eps)
	assert.InDelta(t, 50-(50-10)*2.0, s.TranslateX, eps)
	assert.InDelta(t, 60-(60-20)*2.0, s.TranslateY, eps)
}

func TestConversionsAreInverse(t *testing.T) {
	c := New(DefaultConfig())
	c.ZoomTo(geom.Point{X: 13, Y: 7}, 1.7)
	p := geom.Point{X: 123.25, Y: -42.5}
	back := c.ScreenToContent(c.ContentToScreen(p))
	assert.InDelta(t, p.X, back.X, eps)
	assert.InDelta(t, p.Y, back.Y, eps)

	r := geom.Rect{X: 3, Y: 4, W: 10, H: 2}
	rr := c.ScreenRectToContent(c.ContentRectToScreen(r))
	assert.InDelta(t, r.X, rr.X, eps)
	assert.InDelta(t, r.W, rr.W, eps)
	assert.InDelta(t, r.H, rr.H, eps)
}

func TestFitToContent(t *testing.T) {
	tests := []struct {
		name      string
		container geom.Size
		content   geom.Size
		scale     float64
	}{
		{"small content never zooms in", geom.Size{W: 800, H: 600}, geom.Size{W: 100, H: 50}, 1.0},
		{"wide content", geom.Size{W: 840, H: 600}, geom.Size{W: 1600, H: 100}, 0.5},
		{"tall content", geom.Size{W: 800, H: 440}, geom.Size{W: 100, H: 1000}, 0.4},
		{"clamped to min", geom.Size{W: 100, H: 100}, geom.Size{W: 10000, H: 10000}, 0.3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(DefaultConfig())
			c.FitToContent(tt.container, tt.content)
			s := c.State()
			assert.InDelta(t, tt.scale, s.Scale, eps)
			assert.LessOrEqual(t, s.Scale, 1.0)

			// centered
			assert.InDelta(t, (tt.container.W-tt.content.W*s.Scale)/2, s.TranslateX, eps)
			assert.InDelta(t, (tt.container.H-tt.content.H*s.Scale)/2, s.TranslateY, eps)
		})
	}
}

func TestFitToContent_NeverAboveOne(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for i := 0; i < 200; i++ {
		c := New(DefaultConfig())
		c.FitToContent(
			geom.Size{W: 50 + r.Float64()*2000, H: 50 + r.Float64()*2000},
			geom.Size{W: 1 + r.Float64()*3000, H: 1 + r.Float64()*3000},
		)
		require.LessOrEqual(t, c.Scale(), 1.0)
	}
}

func TestFocusRect(t *testing.T) {
	c := New(DefaultConfig())
	c.ZoomTo(geom.Point{}, 2)
	scale := c.Scale()

	target := geom.Rect{X: 300, Y: 10, W: 20, H: 2}
	container := geom.Size{W: 100, H: 40}
	content := c.ScreenRectToContent(target)

	c.FocusRect(target, container)

	assert.Equal(t, scale, c.Scale())
	moved := c.ContentRectToScreen(content)
	assert.InDelta(t, 50, moved.Center().X, eps)
	assert.InDelta(t, 20, moved.Center().Y, eps)
}
