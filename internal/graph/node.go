package graph

import (
	"strconv"
	"strings"

	"github.com/rebeliceyang/lazyjson/internal/jsondoc"
)

// Node is one visual node: a JSON value plus its expansion and pagination
// state. Nodes live until the document is replaced.
type Node struct {
	Value        *jsondoc.Value // value this node shows
	Name         string         // object key or array index that produced it
	HasName      bool           // false for the root
	Path         string         // canonical path of Value
	Depth        int            // root = 0
	Index        int            // position among the parent's children
	Expanded     bool           // meaningful for arrays and objects only
	VisibleItems int            // pagination cursor over children
	Parent       *Node

	children []*Node // materialised children, a prefix of the value's children
	tree     *Tree
}

// Kind returns the variant of the node's value
func (n *Node) Kind() jsondoc.Kind { return jsondoc.Classify(n.Value) }

// IsExpandable reports whether the node is an array or object
func (n *Node) IsExpandable() bool { return n.Kind().Expandable() }

// IsRoot reports whether n is the document root
func (n *Node) IsRoot() bool { return n.Parent == nil }

// Tree returns the tree n belongs to
func (n *Node) Tree() *Tree { return n.tree }

// ChildCount returns the number of children in the document
func (n *Node) ChildCount() int { return n.Value.Len() }

// Children returns the materialised children
func (n *Node) Children() []*Node { return n.children }

// visibleCount is how many children the current page window shows
func (n *Node) visibleCount() int {
	total := n.ChildCount()
	if n.VisibleItems < total {
		return n.VisibleItems
	}
	return total
}

// VisibleChildren returns the children inside the page window
func (n *Node) VisibleChildren() []*Node {
	if !n.IsExpandable() {
		return nil
	}
	n.materialize(Budget{}, false)
	return n.children[:n.visibleCount()]
}

// HiddenCount returns how many children lie beyond the page window
func (n *Node) HiddenCount() int {
	if !n.IsExpandable() {
		return 0
	}
	return n.ChildCount() - n.visibleCount()
}

// materialize builds the children of the page window that do not exist yet
func (n *Node) materialize(budget Budget, initial bool) Budget {
	want := n.visibleCount()
	for i := len(n.children); i < want; i++ {
		key, value := n.Value.Child(i)
		var child *Node
		child, budget = n.tree.construct(value, n, key, true, i, budget, initial)
		n.children = append(n.children, child)
	}
	return budget
}

// Expand opens the node. Non-expandable nodes are left alone.
func (n *Node) Expand() {
	if !n.IsExpandable() {
		return
	}
	n.Expanded = true
	n.materialize(Budget{}, false)
}

// Collapse closes the node. The root cannot be collapsed.
func (n *Node) Collapse() bool {
	if n.IsRoot() || !n.IsExpandable() {
		return false
	}
	n.Expanded = false
	return true
}

// Toggle flips the expanded state of an expandable, non-root node
func (n *Node) Toggle() {
	if n.Expanded {
		n.Collapse()
		return
	}
	n.Expand()
}

// ShowMore widens the page window by one page and returns how many more
// children became visible
func (n *Node) ShowMore() int {
	hidden := n.HiddenCount()
	if hidden == 0 {
		return 0
	}
	before := n.visibleCount()
	n.VisibleItems += n.tree.opts.PageSize
	n.materialize(Budget{}, false)
	return n.visibleCount() - before
}

// Label returns the display label: the key, the index, or "$" for the root
func (n *Node) Label() string {
	if !n.HasName {
		return jsondoc.RootPath
	}
	return n.Name
}

// Summary returns the one-line value text shown next to the label
func (n *Node) Summary() string {
	switch n.Kind() {
	case jsondoc.KindArray:
		return "[" + strconv.Itoa(n.ChildCount()) + " items]"
	case jsondoc.KindObject:
		return "{" + strconv.Itoa(n.ChildCount()) + " keys}"
	case jsondoc.KindString:
		return `"` + strings.ReplaceAll(n.Value.Str(), "\n", `\n`) + `"`
	default:
		return jsondoc.ScalarString(n.Value)
	}
}

func (n *Node) find(path string) *Node {
	if n.Path == path {
		return n
	}
	if !strings.HasPrefix(path, n.Path) {
		return nil
	}
	for _, child := range n.children {
		if found := child.find(path); found != nil {
			return found
		}
	}
	return nil
}
