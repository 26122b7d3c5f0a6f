package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// wideTail marks the second cell of a double-width rune
const wideTail rune = -1

// canvas is a fixed grid of terminal cells. Each cell carries a rune and an
// index into the style palette; String renders runs of equally styled cells.
type canvas struct {
	w, h    int
	runes   []rune
	styles  []int
	palette []lipgloss.Style
}

func newCanvas(w, h int) *canvas {
	w, h = max(w, 0), max(h, 0)
	c := &canvas{
		w:       w,
		h:       h,
		runes:   make([]rune, w*h),
		styles:  make([]int, w*h),
		palette: []lipgloss.Style{lipgloss.NewStyle()},
	}
	for i := range c.runes {
		c.runes[i] = ' '
	}
	return c
}

// style registers s and returns its palette index
func (c *canvas) style(s lipgloss.Style) int {
	c.palette = append(c.palette, s)
	return len(c.palette) - 1
}

func (c *canvas) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.w && y < c.h
}

func (c *canvas) at(x, y int) rune {
	if !c.inside(x, y) {
		return 0
	}
	return c.runes[y*c.w+x]
}

// put writes one single-width rune, repairing any wide rune it splits
func (c *canvas) put(x, y int, r rune, st int) {
	if !c.inside(x, y) {
		return
	}
	i := y*c.w + x
	if c.runes[i] == wideTail && x > 0 {
		c.runes[i-1] = ' '
	}
	if x+1 < c.w && c.runes[i+1] == wideTail {
		c.runes[i+1] = ' '
	}
	c.runes[i] = r
	c.styles[i] = st
}

// text writes s starting at (x, y), using at most width cells
func (c *canvas) text(x, y int, s string, width, st int) {
	end := x + width
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if x+rw > end {
			break
		}
		switch {
		case rw == 1:
			c.put(x, y, r, st)
		case c.inside(x, y) && c.inside(x+1, y):
			c.put(x+1, y, ' ', st)
			c.put(x, y, r, st)
			c.runes[y*c.w+x+1] = wideTail
		default:
			// half of the rune is clipped
			c.put(x, y, ' ', st)
			c.put(x+1, y, ' ', st)
		}
		x += rw
	}
}

// fill paints width cells with r
func (c *canvas) fill(x, y, width int, r rune, st int) {
	for i := 0; i < width; i++ {
		c.put(x+i, y, r, st)
	}
}

// String renders the grid, one line per row
func (c *canvas) String() string {
	var b strings.Builder
	var run strings.Builder
	flush := func(st int) {
		if run.Len() == 0 {
			return
		}
		if st == 0 {
			b.WriteString(run.String())
		} else {
			b.WriteString(c.palette[st].Render(run.String()))
		}
		run.Reset()
	}
	for y := 0; y < c.h; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		cur := 0
		for x := 0; x < c.w; x++ {
			i := y*c.w + x
			if c.runes[i] == wideTail {
				continue
			}
			if c.styles[i] != cur {
				flush(cur)
				cur = c.styles[i]
			}
			run.WriteRune(c.runes[i])
		}
		flush(cur)
	}
	return b.String()
}

// truncateCells cuts s to width terminal cells with an ellipsis
func truncateCells(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return runewidth.Truncate(s, width, "…")
}
