// Package search finds nodes of the rendered graph by free text and walks a
// cyclic cursor over the matches.
package search

import (
	"strings"

	"github.com/rebeliceyang/lazyjson/internal/graph"
	"github.com/rebeliceyang/lazyjson/internal/jsondoc"
)

// Focuser brings a node into view
type Focuser interface {
	FocusNode(n *graph.Node)
}

// FocuserFunc adapts a function to Focuser
type FocuserFunc func(n *graph.Node)

// FocusNode calls f(n)
func (f FocuserFunc) FocusNode(n *graph.Node) { f(n) }

// Status is the outward match state
type Status int

const (
	// StatusInactive means no query is set, so there is no count yet
	StatusInactive Status = iota
	StatusNoMatches
	StatusHasMatches
)

func (s Status) String() string {
	switch s {
	case StatusNoMatches:
		return "no matches"
	case StatusHasMatches:
		return "matches"
	default:
		return "inactive"
	}
}

// IsMatch reports whether node matches query, case-insensitively. Names are
// always checked; values only for scalars, so arrays and objects never match
// on their contents.
func IsMatch(n *graph.Node, query string) bool {
	if n == nil || query == "" {
		return false
	}
	q := strings.ToLower(query)
	if n.HasName && strings.Contains(strings.ToLower(n.Name), q) {
		return true
	}
	if n.IsExpandable() {
		return false
	}
	return strings.Contains(strings.ToLower(jsondoc.ScalarString(n.Value)), q)
}

// Engine holds the query, the current match set and the cursor
type Engine struct {
	focus   Focuser
	query   string
	matches []*graph.Node
	matched map[*graph.Node]struct{}
	index   int
}

// NewEngine creates an engine that focuses matches through f. f may be nil.
func NewEngine(f Focuser) *Engine {
	return &Engine{focus: f}
}

// Query returns the active query
func (e *Engine) Query() string { return e.query }

// Active reports whether a query is set
func (e *Engine) Active() bool { return e.query != "" }

// SetQuery replaces the query, resets the cursor and recomputes the matches
// over rendered. The first match is focused. An empty query deactivates
// search and leaves the view alone.
func (e *Engine) SetQuery(query string, rendered []*graph.Node) int {
	e.query = query
	e.index = 0
	e.setMatches(collect(query, rendered))
	if len(e.matches) > 0 {
		e.focusCurrent()
	}
	return len(e.matches)
}

// Clear deactivates search
func (e *Engine) Clear() {
	e.query = ""
	e.index = 0
	e.setMatches(nil)
}

// Refresh recomputes the matches after the rendered set changed, keeping the
// cursor in range. Nothing is focused.
func (e *Engine) Refresh(rendered []*graph.Node) {
	var current *graph.Node
	if e.index < len(e.matches) {
		current = e.matches[e.index]
	}
	e.setMatches(collect(e.query, rendered))
	e.index = 0
	for i, n := range e.matches {
		if n == current {
			e.index = i
			break
		}
	}
}

// Next advances the cursor cyclically and focuses the match. It is a no-op
// without matches.
func (e *Engine) Next() (*graph.Node, bool) {
	if len(e.matches) == 0 {
		return nil, false
	}
	e.index = (e.index + 1) % len(e.matches)
	e.focusCurrent()
	return e.matches[e.index], true
}

// Current returns the match under the cursor
func (e *Engine) Current() (*graph.Node, bool) {
	if len(e.matches) == 0 {
		return nil, false
	}
	return e.matches[e.index], true
}

// Index returns the cursor position
func (e *Engine) Index() int { return e.index }

// Count returns the match count; ok is false while search is inactive
func (e *Engine) Count() (count int, ok bool) {
	if !e.Active() {
		return 0, false
	}
	return len(e.matches), true
}

// Matches returns the current match set in rendered order
func (e *Engine) Matches() []*graph.Node { return e.matches }

// IsMatch reports whether n is in the current match set
func (e *Engine) IsMatch(n *graph.Node) bool {
	_, ok := e.matched[n]
	return ok
}

func (e *Engine) setMatches(matches []*graph.Node) {
	e.matches = matches
	e.matched = make(map[*graph.Node]struct{}, len(matches))
	for _, m := range matches {
		e.matched[m] = struct{}{}
	}
}

// Status returns the outward match state
func (e *Engine) Status() Status {
	switch {
	case !e.Active():
		return StatusInactive
	case len(e.matches) == 0:
		return StatusNoMatches
	default:
		return StatusHasMatches
	}
}

func (e *Engine) focusCurrent() {
	if e.focus != nil {
		e.focus.FocusNode(e.matches[e.index])
	}
}

func collect(query string, rendered []*graph.Node) []*graph.Node {
	if query == "" {
		return nil
	}
	var out []*graph.Node
	for _, n := range rendered {
		if IsMatch(n, query) {
			out = append(out, n)
		}
	}
	return out
}
