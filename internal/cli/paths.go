package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rebeliceyang/lazyjson/internal/graph"
	"github.com/rebeliceyang/lazyjson/internal/jsondoc"
)

func (e *env) newPathsCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "paths [file|-]",
		Short: "Print node paths",
		Long: `Prints the path of every node the viewer shows on first open, one per line.
With --all, prints the path of every value in the document.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := e.parseDocument(args)
			if err != nil {
				return err
			}
			if all {
				walkPaths(doc, jsondoc.RootPath, func(path string) {
					fmt.Fprintln(e.out, path)
				})
				return nil
			}
			for _, n := range graph.Build(doc, e.cfg.GraphOptions()).RenderedNodes() {
				fmt.Fprintln(e.out, n.Path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "print every path in the document")
	return cmd
}

// walkPaths calls fn for v and all its descendants in document order
func walkPaths(v *jsondoc.Value, path string, fn func(string)) {
	fn(path)
	kind := jsondoc.Classify(v)
	for i := 0; i < v.Len(); i++ {
		key, child := v.Child(i)
		walkPaths(child, jsondoc.ChildPath(path, key, kind), fn)
	}
}
