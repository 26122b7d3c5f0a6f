// Package viewport owns the scale and translation that map the graph's
// content space onto the screen.
//
// The transform is translate-then-scale with the origin at the top-left:
//
//	screen = translate + content*scale
//
// Pan, zoom and focus are the only ways to change it.
package viewport

import (
	"math"

	"github.com/rebeliceyang/lazyjson/internal/geom"
)

// Config bounds and seeds the viewport
type Config struct {
	MinScale      float64
	MaxScale      float64
	DefaultScale  float64
	DefaultOffset geom.Point
	FitMargin     float64
}

// DefaultConfig returns the primary graph's settings
func DefaultConfig() Config {
	return Config{
		MinScale:      0.3,
		MaxScale:      3.0,
		DefaultScale:  1.0,
		DefaultOffset: geom.Point{X: 40, Y: 40},
		FitMargin:     40,
	}
}

// State is the current transform
type State struct {
	Scale      float64
	TranslateX float64
	TranslateY float64
}

// Translate returns the translation as a point
func (s State) Translate() geom.Point { return geom.Point{X: s.TranslateX, Y: s.TranslateY} }

// Controller owns a State and mutates it only through its operations
type Controller struct {
	cfg     Config
	state   State
	panning bool
}

// New creates a controller at its default transform
func New(cfg Config) *Controller {
	if cfg.MinScale <= 0 {
		cfg.MinScale = DefaultConfig().MinScale
	}
	if cfg.MaxScale < cfg.MinScale {
		cfg.MaxScale = cfg.MinScale
	}
	if cfg.DefaultScale <= 0 {
		cfg.DefaultScale = 1
	}
	c := &Controller{cfg: cfg}
	c.Reset()
	return c
}

// Config returns the controller settings
func (c *Controller) Config() Config { return c.cfg }

// State returns the current transform
func (c *Controller) State() State { return c.state }

// Scale returns the current scale
func (c *Controller) Scale() float64 { return c.state.Scale }

func (c *Controller) clamp(s float64) float64 {
	return math.Max(c.cfg.MinScale, math.Min(c.cfg.MaxScale, s))
}

// Reset returns to the default scale and offset
func (c *Controller) Reset() {
	c.state = State{
		Scale:      c.clamp(c.cfg.DefaultScale),
		TranslateX: c.cfg.DefaultOffset.X,
		TranslateY: c.cfg.DefaultOffset.Y,
	}
}

// BeginPan starts a pointer-down interaction
func (c *Controller) BeginPan() { c.panning = true }

// EndPan ends the pointer-down interaction
func (c *Controller) EndPan() { c.panning = false }

// Panning reports whether a pointer-down interaction is active
func (c *Controller) Panning() bool { return c.panning }

// Gesturing reports whether a pan or zoom gesture is in progress. Wheel zoom
// steps are instantaneous, so only a held pointer counts.
func (c *Controller) Gesturing() bool { return c.panning }

// Pan moves the content by (dx, dy) screen units. It only acts while a
// pointer-down interaction is active and never changes the scale.
func (c *Controller) Pan(dx, dy float64) bool {
	if !c.panning {
		return false
	}
	c.state.TranslateX += dx
	c.state.TranslateY += dy
	return true
}

// Zoom changes the scale by delta, keeping the content point under focal
// fixed on screen. It reports whether the scale changed.
func (c *Controller) Zoom(focal geom.Point, delta float64) bool {
	return c.ZoomTo(focal, c.state.Scale+delta)
}

// ZoomTo sets the scale (clamped), keeping the content point under focal
// fixed on screen
func (c *Controller) ZoomTo(focal geom.Point, scale float64) bool {
	next := c.clamp(scale)
	prev := c.state.Scale
	if next == prev {
		return false
	}
	ratio := next / prev
	c.state.TranslateX = focal.X - (focal.X-c.state.TranslateX)*ratio
	c.state.TranslateY = focal.Y - (focal.Y-c.state.TranslateY)*ratio
	c.state.Scale = next
	return true
}

// FitToContent scales content to fit the container, never above 1.0, and
// centers it
func (c *Controller) FitToContent(container, content geom.Size) {
	scale := 1.0
	if content.W > 0 {
		scale = math.Min(scale, (container.W-c.cfg.FitMargin)/content.W)
	}
	if content.H > 0 {
		scale = math.Min(scale, (container.H-c.cfg.FitMargin)/content.H)
	}
	scale = math.Min(c.clamp(scale), 1.0)

	c.state.Scale = scale
	c.state.TranslateX = (container.W - content.W*scale) / 2
	c.state.TranslateY = (container.H - content.H*scale) / 2
}

// FocusRect moves the view, without rescaling, so the center of target (in
// screen space) lands on the center of the container
func (c *Controller) FocusRect(target geom.Rect, container geom.Size) {
	center := target.Center()
	c.state.TranslateX += container.W/2 - center.X
	c.state.TranslateY += container.H/2 - center.Y
}

// ContentToScreen maps a content point to the screen
func (c *Controller) ContentToScreen(p geom.Point) geom.Point {
	return p.Scale(c.state.Scale).Add(c.state.Translate())
}

// ScreenToContent maps a screen point back into content space
func (c *Controller) ScreenToContent(p geom.Point) geom.Point {
	return p.Sub(c.state.Translate()).Scale(1 / c.state.Scale)
}

// ContentRectToScreen maps a content rectangle to the screen
func (c *Controller) ContentRectToScreen(r geom.Rect) geom.Rect {
	p := c.ContentToScreen(r.Min())
	return geom.Rect{X: p.X, Y: p.Y, W: r.W * c.state.Scale, H: r.H * c.state.Scale}
}

// ScreenRectToContent maps a screen rectangle into content space
func (c *Controller) ScreenRectToContent(r geom.Rect) geom.Rect {
	p := c.ScreenToContent(r.Min())
	return geom.Rect{X: p.X, Y: p.Y, W: r.W / c.state.Scale, H: r.H / c.state.Scale}
}
