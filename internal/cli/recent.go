package cli

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rebeliceyang/lazyjson/internal/history"
	"github.com/rebeliceyang/lazyjson/internal/models"
)

func (e *env) newRecentCmd() *cobra.Command {
	var (
		limit  int
		query  string
		remove string
	)

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List recently opened documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			dir, err := configDir()
			if err != nil {
				return err
			}
			store, err := history.NewStore(filepath.Join(dir, historyFileName))
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			if remove != "" {
				if err := store.Remove(remove); err != nil {
					return fmt.Errorf("remove %s: %w", remove, err)
				}
				logger.Info("removed from history", "location", remove)
				return nil
			}

			var docs []models.RecentDocument
			if query != "" {
				docs, err = store.Search(query, limit)
			} else {
				docs, err = store.GetRecent(limit)
			}
			if err != nil {
				return fmt.Errorf("read history: %w", err)
			}
			if len(docs) == 0 {
				fmt.Fprintln(e.out, "No recent documents")
				return nil
			}

			rows := make([][]string, 0, len(docs))
			for _, d := range docs {
				rows = append(rows, []string{
					d.OpenedAt.Local().Format("2006-01-02 15:04"),
					string(d.Kind),
					strconv.Itoa(d.Nodes),
					formatBytes(d.Bytes),
					strconv.Itoa(d.OpenCount),
					d.Location,
				})
			}
			fmt.Fprintln(e.out, renderTable([]string{"OPENED", "KIND", "NODES", "SIZE", "OPENS", "LOCATION"}, rows))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of entries")
	cmd.Flags().StringVarP(&query, "search", "s", "", "only show locations containing this text")
	cmd.Flags().StringVar(&remove, "remove", "", "remove a location from the history")
	return cmd
}

// formatBytes renders a byte count with a binary unit
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
