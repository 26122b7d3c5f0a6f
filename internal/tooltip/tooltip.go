// Package tooltip places the node info popup and tracks its show/hide
// lifecycle.
package tooltip

import (
	"time"

	"github.com/rebeliceyang/lazyjson/internal/geom"
	"github.com/rebeliceyang/lazyjson/internal/jsondoc"
)

// Options sizes the tooltip and its distance from the anchor
type Options struct {
	Width  float64
	Height float64
	Offset float64
	Margin float64
}

// DefaultOptions returns the popup size in screen pixels
func DefaultOptions() Options {
	return Options{Width: 320, Height: 200, Offset: 12, Margin: 10}
}

// DefaultHideDelay is the grace period before a requested hide takes effect
const DefaultHideDelay = 300 * time.Millisecond

// Place returns the top-left corner for a tooltip anchored to anchor.
//
// The tooltip sits to the right of the anchor, aligned with its top. It
// flips to the left side when it would overflow the right edge, and its top
// is pulled up so the bottom edge stays Margin inside the viewport.
func Place(anchor geom.Rect, viewport geom.Size, opts Options) geom.Point {
	left := anchor.X + anchor.W + opts.Offset
	if left+opts.Width > viewport.W {
		left = anchor.X - opts.Offset - opts.Width
	}
	top := anchor.Y
	if top+opts.Height > viewport.H {
		top = viewport.H - opts.Height - opts.Margin
	}
	if left < 0 {
		left = 0
	}
	if top < 0 {
		top = 0
	}
	return geom.Point{X: left, Y: top}
}

// State is the one live tooltip
type State struct {
	Anchor geom.Rect
	Path   string
	Kind   jsondoc.Kind
	Value  string
	Name   string
}

// Ticket identifies a pending hide request
type Ticket uint64

// Controller owns the live tooltip. Hides are two-step: RequestHide hands out
// a ticket and Expire with the latest ticket removes the tooltip, unless the
// hide was cancelled or superseded in between.
type Controller struct {
	delay   time.Duration
	state   *State
	pending bool
	ticket  Ticket
}

// NewController creates a controller with the given hide delay
func NewController(delay time.Duration) *Controller {
	if delay < 0 {
		delay = 0
	}
	return &Controller{delay: delay}
}

// Delay returns the hide grace period
func (c *Controller) Delay() time.Duration { return c.delay }

// Show replaces the live tooltip. Nothing is shown while a gesture is in
// progress; the current tooltip is dropped instead.
func (c *Controller) Show(s State, gesturing bool) bool {
	if gesturing {
		c.Dismiss()
		return false
	}
	c.state = &s
	c.pending = false
	return true
}

// RequestHide schedules a hide. The caller delivers the ticket back to
// Expire once Delay has passed.
func (c *Controller) RequestHide() Ticket {
	c.ticket++
	c.pending = c.state != nil
	return c.ticket
}

// CancelHide keeps the tooltip, e.g. when the pointer entered it
func (c *Controller) CancelHide() {
	c.pending = false
}

// Expire completes the hide for t. Stale tickets are ignored.
func (c *Controller) Expire(t Ticket) bool {
	if !c.pending || t != c.ticket {
		return false
	}
	c.Dismiss()
	return true
}

// Dismiss removes the tooltip immediately
func (c *Controller) Dismiss() {
	c.state = nil
	c.pending = false
}

// HidePending reports whether a hide is scheduled
func (c *Controller) HidePending() bool { return c.pending }

// Current returns the live tooltip
func (c *Controller) Current() (State, bool) {
	if c.state == nil {
		return State{}, false
	}
	return *c.state, true
}
