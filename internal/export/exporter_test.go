package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/rebeliceyang/lazyjson/internal/models"
)

func testBookmarks() []models.Bookmark {
	return []models.Bookmark{
		{
			ID:         "test-1",
			Name:       "First user",
			Path:       `$.users[0]["display name"]`,
			Document:   "/data/users.json",
			Note:       "A note with commas, quotes \"and\" special chars",
			Tags:       []string{"test", "users"},
			CreatedAt:  time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
			UpdatedAt:  time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC),
			LastUsed:   time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC),
			UsageCount: 5,
		},
		{
			ID:         "test-2",
			Name:       "Order totals",
			Path:       "$.orders",
			Document:   "/data/orders.json",
			Tags:       []string{"test"},
			CreatedAt:  time.Date(2024, 1, 1, 13, 0, 0, 0, time.UTC),
			UpdatedAt:  time.Date(2024, 1, 2, 13, 0, 0, 0, time.UTC),
			UsageCount: 2,
		},
	}
}

func TestExportToCSV(t *testing.T) {
	csvPath := filepath.Join(t.TempDir(), "test.csv")

	if err := ExportToCSV(testBookmarks(), csvPath); err != nil {
		t.Fatalf("ExportToCSV failed: %v", err)
	}

	info, err := os.Stat(csvPath)
	if err != nil {
		t.Fatalf("Failed to stat file: %v", err)
	}
	if info.Mode().Perm() != 0644 {
		t.Errorf("Expected file permissions 0644, got %o", info.Mode().Perm())
	}

	file, err := os.Open(csvPath)
	if err != nil {
		t.Fatalf("Failed to open CSV: %v", err)
	}
	defer func() { _ = file.Close() }()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("Failed to read CSV: %v", err)
	}
	if len(records) != 3 { // header + 2 rows
		t.Fatalf("Expected 3 records, got %d", len(records))
	}

	expectedHeader := []string{"Name", "Path", "Document", "Note", "Tags", "Created", "Updated", "Last Used", "Usage Count"}
	if !slices.Equal(records[0], expectedHeader) {
		t.Errorf("Header mismatch.\nExpected: %v\nGot: %v", expectedHeader, records[0])
	}

	row1 := records[1]
	if row1[1] != `$.users[0]["display name"]` {
		t.Errorf("Expected path to survive quoting, got '%s'", row1[1])
	}
	if row1[4] != "test, users" {
		t.Errorf("Expected tags 'test, users', got '%s'", row1[4])
	}
	if row1[8] != "5" {
		t.Errorf("Expected usage count '5', got '%s'", row1[8])
	}
	if records[2][7] != "" {
		t.Errorf("Expected empty last used, got '%s'", records[2][7])
	}
}

func TestExportToJSON(t *testing.T) {
	jsonPath := filepath.Join(t.TempDir(), "test.json")

	if err := ExportToJSON(testBookmarks()[:1], jsonPath); err != nil {
		t.Fatalf("ExportToJSON failed: %v", err)
	}

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatalf("Failed to read JSON: %v", err)
	}

	var parsed []models.Bookmark
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("Failed to parse JSON: %v", err)
	}
	if len(parsed) != 1 {
		t.Fatalf("Expected 1 bookmark, got %d", len(parsed))
	}
	if parsed[0].Path != `$.users[0]["display name"]` {
		t.Errorf("Unexpected path %q", parsed[0].Path)
	}

	jsonStr := string(data)
	if !strings.Contains(jsonStr, "\n  ") {
		t.Error("JSON should be pretty-printed")
	}
}

func TestExportEmptyBookmarks(t *testing.T) {
	tmpDir := t.TempDir()

	csvPath := filepath.Join(tmpDir, "empty.csv")
	if err := ExportToCSV(nil, csvPath); err != nil {
		t.Fatalf("ExportToCSV with empty list failed: %v", err)
	}
	data, err := os.ReadFile(csvPath)
	if err != nil {
		t.Fatalf("Failed to read CSV: %v", err)
	}
	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatalf("Failed to parse CSV: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("Expected 1 record (header), got %d", len(records))
	}

	jsonPath := filepath.Join(tmpDir, "empty.json")
	if err := ExportToJSON([]models.Bookmark{}, jsonPath); err != nil {
		t.Fatalf("ExportToJSON with empty list failed: %v", err)
	}
	data, err = os.ReadFile(jsonPath)
	if err != nil {
		t.Fatalf("Failed to read JSON: %v", err)
	}
	if strings.TrimSpace(string(data)) != "[]" {
		t.Errorf("Expected empty array, got %s", data)
	}
}
