// Package graph turns a JSON document into the bounded node model the viewer
// renders: an expansion budget for the initial pass, per-node pagination,
// bulk expand/collapse commands and a model-space layout.
package graph

import (
	"github.com/rebeliceyang/lazyjson/internal/jsondoc"
)

const (
	// DefaultExpansionBudget is how many expandable nodes open on first render
	DefaultExpansionBudget = 50
	// DefaultPageSize is how many children a node shows per "show more" step
	DefaultPageSize = 50
	// DefaultExpandAllThreshold is the expandable-node count above which
	// expand-all asks for confirmation
	DefaultExpandAllThreshold = 5000
)

// Options tunes graph construction
type Options struct {
	ExpansionBudget int
	PageSize        int
}

// DefaultOptions returns the standard construction options
func DefaultOptions() Options {
	return Options{
		ExpansionBudget: DefaultExpansionBudget,
		PageSize:        DefaultPageSize,
	}
}

func (o Options) normalized() Options {
	if o.ExpansionBudget < 0 {
		o.ExpansionBudget = 0
	}
	if o.PageSize <= 0 {
		o.PageSize = DefaultPageSize
	}
	return o
}

// BulkCommand is a whole-tree expansion command
type BulkCommand int

const (
	BulkNone BulkCommand = iota
	BulkExpandAll
	BulkCollapseAll
)

// Stats summarises a document
type Stats struct {
	Nodes      int
	Expandable int
	MaxDepth   int
}

// Tree is the node model of one document revision. Every node holds a
// reference to it; it carries the settings and the last bulk command that
// newly materialised nodes consult.
type Tree struct {
	Root *Node
	Doc  *jsondoc.Value

	opts     Options
	bulk     BulkCommand
	leftover Budget
	stats    *Stats
}

// Build constructs the tree for doc. The root is always expanded; every other
// expandable node met in document order during this pass opens while the
// budget lasts and starts collapsed afterwards.
func Build(doc *jsondoc.Value, opts Options) *Tree {
	t := &Tree{Doc: doc, opts: opts.normalized()}
	t.Root, t.leftover = t.construct(doc, nil, "", false, 0, NewBudget(t.opts.ExpansionBudget), true)
	return t
}

// Options returns the options the tree was built with
func (t *Tree) Options() Options { return t.opts }

// LeftoverBudget returns what remained of the budget after the initial pass
func (t *Tree) LeftoverBudget() Budget { return t.leftover }

// Bulk returns the last bulk command applied
func (t *Tree) Bulk() BulkCommand { return t.bulk }

// construct creates the node for value and, when it starts expanded, its
// visible children. It returns the node and the budget left afterwards.
func (t *Tree) construct(value *jsondoc.Value, parent *Node, key string, hasName bool, index int, budget Budget, initial bool) (*Node, Budget) {
	n := &Node{
		Value:        value,
		Name:         key,
		HasName:      hasName,
		Index:        index,
		Parent:       parent,
		VisibleItems: t.opts.PageSize,
		tree:         t,
	}
	if parent == nil {
		n.Path = jsondoc.RootPath
	} else {
		n.Path = jsondoc.ChildPath(parent.Path, key, parent.Kind())
		n.Depth = parent.Depth + 1
	}

	if !n.IsExpandable() {
		return n, budget
	}

	switch {
	case parent == nil:
		n.Expanded = true
	case initial:
		n.Expanded, budget = budget.Take()
	default:
		n.Expanded = t.bulk == BulkExpandAll
	}

	if n.Expanded {
		budget = n.materialize(budget, initial)
	}
	return n, budget
}

// Apply runs a bulk command top-down over the tree. Expand-all opens every
// expandable node within the current page windows, materialising children
// as it goes; collapse-all closes every node but the root.
func (t *Tree) Apply(cmd BulkCommand) {
	t.bulk = cmd
	if t.Root != nil {
		applyBulk(t.Root, cmd)
	}
}

func applyBulk(n *Node, cmd BulkCommand) {
	if !n.IsExpandable() {
		return
	}
	switch cmd {
	case BulkExpandAll:
		n.Expanded = true
		n.materialize(Budget{}, false)
	case BulkCollapseAll:
		if !n.IsRoot() {
			n.Expanded = false
		}
	}
	for _, c := range n.children {
		applyBulk(c, cmd)
	}
}

// Stats measures the whole document, including parts not yet materialised
func (t *Tree) Stats() Stats {
	if t.stats == nil {
		s := Measure(t.Doc)
		t.stats = &s
	}
	return *t.stats
}

// NeedsConfirmation reports whether expand-all over this document must be
// confirmed because its expandable-node count exceeds threshold
func (t *Tree) NeedsConfirmation(threshold int) bool {
	return t.Stats().Expandable > threshold
}

// Measure counts nodes, expandable nodes and depth of a document
func Measure(doc *jsondoc.Value) Stats {
	type frame struct {
		v     *jsondoc.Value
		depth int
	}
	var s Stats
	if doc == nil {
		return s
	}
	stack := []frame{{doc, 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		s.Nodes++
		if f.depth > s.MaxDepth {
			s.MaxDepth = f.depth
		}
		if !jsondoc.Classify(f.v).Expandable() {
			continue
		}
		s.Expandable++
		for i := 0; i < f.v.Len(); i++ {
			_, child := f.v.Child(i)
			stack = append(stack, frame{child, f.depth + 1})
		}
	}
	return s
}

// RowKind distinguishes node rows from pagination rows
type RowKind int

const (
	RowNode RowKind = iota
	RowMore
)

// Row is one rendered line of the graph. For RowMore, Node is the paginated
// parent and Hidden the number of children not yet shown.
type Row struct {
	Kind   RowKind
	Node   *Node
	Depth  int
	Hidden int
}

// NextPage returns how many children "show more" on this row reveals
func (r Row) NextPage() int {
	if r.Kind != RowMore {
		return 0
	}
	return min(r.Hidden, r.Node.tree.opts.PageSize)
}

// Rows returns the rendered rows in document order, honouring expansion and
// pagination
func (t *Tree) Rows() []Row {
	if t.Root == nil {
		return nil
	}
	var rows []Row
	var visit func(n *Node)
	visit = func(n *Node) {
		rows = append(rows, Row{Kind: RowNode, Node: n, Depth: n.Depth})
		if !n.Expanded {
			return
		}
		for _, c := range n.VisibleChildren() {
			visit(c)
		}
		if hidden := n.HiddenCount(); hidden > 0 {
			rows = append(rows, Row{Kind: RowMore, Node: n, Depth: n.Depth + 1, Hidden: hidden})
		}
	}
	visit(t.Root)
	return rows
}

// RenderedNodes returns the nodes of Rows, skipping pagination rows
func (t *Tree) RenderedNodes() []*Node {
	rows := t.Rows()
	nodes := make([]*Node, 0, len(rows))
	for _, r := range rows {
		if r.Kind == RowNode {
			nodes = append(nodes, r.Node)
		}
	}
	return nodes
}

// FindByPath finds a materialised node by path (depth-first search)
func (t *Tree) FindByPath(path string) *Node {
	if t.Root == nil {
		return nil
	}
	return t.Root.find(path)
}

// FindNearest finds the node for path or, when it is not materialised, the
// deepest materialised node on the way to it. Nil when path does not parse.
func (t *Tree) FindNearest(path string) *Node {
	if t.Root == nil {
		return nil
	}
	segs, err := jsondoc.ParsePath(path)
	if err != nil {
		return nil
	}
	for k := len(segs); k >= 0; k-- {
		if n := t.FindByPath(segs[:k].String()); n != nil {
			return n
		}
	}
	return nil
}

// Reveal expands and pages the ancestors of path until the node it addresses
// is rendered. It fails without touching the tree when the path no longer
// exists in the document.
func (t *Tree) Reveal(path string) (*Node, bool) {
	if t.Root == nil {
		return nil, false
	}
	if _, ok := jsondoc.Resolve(t.Root.Value, path); !ok {
		return nil, false
	}
	segs, err := jsondoc.ParsePath(path)
	if err != nil {
		return nil, false
	}
	n := t.Root
	for _, seg := range segs {
		idx := childIndex(n, seg)
		if idx < 0 {
			return nil, false
		}
		n.Expand()
		for idx >= n.visibleCount() {
			if n.ShowMore() == 0 {
				return nil, false
			}
		}
		n = n.children[idx]
	}
	return n, true
}

func childIndex(n *Node, seg jsondoc.Segment) int {
	switch n.Kind() {
	case jsondoc.KindArray:
		if seg.IsIndex && seg.Index >= 0 && seg.Index < n.ChildCount() {
			return seg.Index
		}
	case jsondoc.KindObject:
		if seg.IsIndex {
			return -1
		}
		for i, f := range n.Value.Fields() {
			if f.Key == seg.Key {
				return i
			}
		}
	}
	return -1
}
