package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rebeliceyang/lazyjson/internal/models"
)

// ExportToCSV exports bookmarks to a CSV file
func ExportToCSV(bookmarks []models.Bookmark, path string) error {
	// Create the file
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := csv.NewWriter(file)

	// Write header
	header := []string{"Name", "Path", "Document", "Note", "Tags", "Created", "Updated", "Last Used", "Usage Count"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, b := range bookmarks {
		lastUsed := ""
		if !b.LastUsed.IsZero() {
			lastUsed = b.LastUsed.Format("2006-01-02 15:04:05")
		}

		row := []string{
			b.Name,
			b.Path,
			b.Document,
			b.Note,
			strings.Join(b.Tags, ", "),
			b.CreatedAt.Format("2006-01-02 15:04:05"),
			b.UpdatedAt.Format("2006-01-02 15:04:05"),
			lastUsed,
			fmt.Sprintf("%d", b.UsageCount),
		}

		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

// ExportToJSON exports bookmarks to a JSON file
func ExportToJSON(bookmarks []models.Bookmark, path string) error {
	// Marshal to JSON with pretty printing
	data, err := json.MarshalIndent(bookmarks, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal bookmarks to JSON: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}

	return nil
}
