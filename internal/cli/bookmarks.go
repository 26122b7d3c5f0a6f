package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rebeliceyang/lazyjson/internal/bookmarks"
	"github.com/rebeliceyang/lazyjson/internal/models"
)

func (e *env) newBookmarksCmd() *cobra.Command {
	var (
		document string
		search   string
		format   string
		output   string
	)

	cmd := &cobra.Command{
		Use:   "bookmarks",
		Short: "List or export node bookmarks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			dir, err := configDir()
			if err != nil {
				return err
			}
			mgr, err := bookmarks.NewManager(dir)
			if err != nil {
				return err
			}

			switch strings.ToLower(format) {
			case "":
			case "csv", "json":
				export := mgr.ExportToCSV
				if strings.EqualFold(format, "json") {
					export = mgr.ExportToJSON
				}
				path, err := export(output)
				if err != nil {
					return err
				}
				logger.Info("exported bookmarks", "format", format, "path", path)
				fmt.Fprintln(e.out, path)
				return nil
			default:
				return fmt.Errorf("unknown format %q: want csv or json", format)
			}

			var list []models.Bookmark
			switch {
			case search != "":
				list = mgr.Search(search)
			case document != "":
				list = mgr.ForDocument(document)
			default:
				list = mgr.GetAll()
			}
			if len(list) == 0 {
				fmt.Fprintln(e.out, "No bookmarks")
				return nil
			}

			rows := make([][]string, 0, len(list))
			for _, b := range list {
				rows = append(rows, []string{b.Name, b.Path, b.Document, strconv.Itoa(b.UsageCount), strings.Join(b.Tags, ",")})
			}
			fmt.Fprintln(e.out, renderTable([]string{"NAME", "PATH", "DOCUMENT", "USES", "TAGS"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVarP(&document, "document", "d", "", "only bookmarks of this document")
	cmd.Flags().StringVarP(&search, "search", "s", "", "filter by name, path, note or tag")
	cmd.Flags().StringVarP(&format, "format", "f", "", "export format: csv or json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "export file (default: next to bookmarks.yaml)")
	return cmd
}
