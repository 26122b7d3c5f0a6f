package export

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/rebeliceyang/lazyjson/internal/graph"
	"github.com/rebeliceyang/lazyjson/internal/jsondoc"
)

// GraphOptions configures the DOT projection
type GraphOptions struct {
	// LabelWidth truncates value summaries
	LabelWidth int
	// RankDir is the Graphviz layout direction
	RankDir string
}

// DefaultGraphOptions returns left-to-right layout, matching the terminal view
func DefaultGraphOptions() GraphOptions {
	return GraphOptions{LabelWidth: 40, RankDir: "LR"}
}

var kindColors = map[jsondoc.Kind]string{
	jsondoc.KindNull:   "#9ca3af",
	jsondoc.KindBool:   "#f59e0b",
	jsondoc.KindNumber: "#3b82f6",
	jsondoc.KindString: "#10b981",
	jsondoc.KindArray:  "#8b5cf6",
	jsondoc.KindObject: "#ec4899",
}

// ToDOT converts the rendered rows of tree into Graphviz DOT. Nodes are
// keyed by path; pagination rows become dashed "more" nodes.
func ToDOT(tree *graph.Tree, opts GraphOptions) string {
	if opts.LabelWidth <= 0 {
		opts.LabelWidth = DefaultGraphOptions().LabelWidth
	}
	if opts.RankDir == "" {
		opts.RankDir = DefaultGraphOptions().RankDir
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", opts.RankDir)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"monospace\", fontsize=12];\n")
	buf.WriteString("  edge [arrowhead=none];\n")
	buf.WriteString("\n")

	var edges []string
	for _, row := range tree.Rows() {
		switch row.Kind {
		case graph.RowNode:
			n := row.Node
			label := n.Label() + ": " + jsondoc.Truncate(n.Summary(), opts.LabelWidth)
			fmt.Fprintf(&buf, "  %q [label=%q, color=%q];\n", n.Path, label, kindColors[n.Kind()])
			if n.Parent != nil {
				edges = append(edges, fmt.Sprintf("  %q -> %q;\n", n.Parent.Path, n.Path))
			}
		case graph.RowMore:
			id := row.Node.Path + "#more"
			label := fmt.Sprintf("show next %d (%d hidden)", row.NextPage(), row.Hidden)
			fmt.Fprintf(&buf, "  %q [label=%q, style=\"rounded,dashed\"];\n", id, label)
			edges = append(edges, fmt.Sprintf("  %q -> %q [style=dashed];\n", row.Node.Path, id))
		}
	}

	buf.WriteString("\n")
	buf.WriteString(strings.Join(edges, ""))
	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
