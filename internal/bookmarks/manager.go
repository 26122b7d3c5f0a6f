package bookmarks

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/rebeliceyang/lazyjson/internal/export"
	"github.com/rebeliceyang/lazyjson/internal/jsondoc"
	"github.com/rebeliceyang/lazyjson/internal/models"
)

// ErrNotFound is returned for unknown bookmark IDs
var ErrNotFound = errors.New("bookmark not found")

// Manager manages node path bookmarks
type Manager struct {
	path      string
	bookmarks []models.Bookmark
	now       func() time.Time
}

// NewManager creates a new bookmarks manager
func NewManager(configDir string) (*Manager, error) {
	path := filepath.Join(configDir, "bookmarks.yaml")

	m := &Manager{
		path:      path,
		bookmarks: []models.Bookmark{},
		now:       time.Now,
	}

	// Load existing bookmarks if file exists
	if _, err := os.Stat(path); err == nil {
		if err := m.Load(); err != nil {
			return nil, fmt.Errorf("failed to load bookmarks: %w", err)
		}
	}

	return m, nil
}

// Path returns the backing YAML file
func (m *Manager) Path() string { return m.path }

// Load loads bookmarks from YAML file
func (m *Manager) Load() error {
	data, err := os.ReadFile(m.path)
	if err != nil {
		return fmt.Errorf("failed to read bookmarks file: %w", err)
	}

	if err := yaml.Unmarshal(data, &m.bookmarks); err != nil {
		return fmt.Errorf("failed to parse bookmarks: %w", err)
	}

	return nil
}

// Save saves bookmarks to YAML file
func (m *Manager) Save() error {
	data, err := yaml.Marshal(m.bookmarks)
	if err != nil {
		return fmt.Errorf("failed to marshal bookmarks: %w", err)
	}

	dir := filepath.Dir(m.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(m.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write bookmarks file: %w", err)
	}

	return nil
}

// Add bookmarks path within document. Adding the same path of the same
// document twice returns the existing bookmark.
func (m *Manager) Add(name, path, document, note string, tags []string) (*models.Bookmark, error) {
	path = strings.TrimSpace(path)
	if _, err := jsondoc.ParsePath(path); err != nil {
		return nil, fmt.Errorf("invalid bookmark path: %w", err)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = path
	}

	for i, b := range m.bookmarks {
		if b.Path == path && b.Document == document {
			return &m.bookmarks[i], nil
		}
	}

	now := m.now()
	bookmark := models.Bookmark{
		ID:        uuid.New().String(),
		Name:      name,
		Path:      path,
		Document:  document,
		Note:      strings.TrimSpace(note),
		Tags:      tags,
		CreatedAt: now,
		UpdatedAt: now,
	}

	m.bookmarks = append(m.bookmarks, bookmark)

	if err := m.Save(); err != nil {
		return nil, fmt.Errorf("failed to save bookmark: %w", err)
	}

	return &bookmark, nil
}

// Update renames or re-annotates a bookmark
func (m *Manager) Update(id, name, note string, tags []string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("bookmark name cannot be empty")
	}

	for i, b := range m.bookmarks {
		if b.ID == id {
			m.bookmarks[i].Name = name
			m.bookmarks[i].Note = strings.TrimSpace(note)
			m.bookmarks[i].Tags = tags
			m.bookmarks[i].UpdatedAt = m.now()
			if err := m.Save(); err != nil {
				return fmt.Errorf("failed to save bookmark: %w", err)
			}
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Delete deletes a bookmark by ID
func (m *Manager) Delete(id string) error {
	for i, b := range m.bookmarks {
		if b.ID == id {
			m.bookmarks = append(m.bookmarks[:i], m.bookmarks[i+1:]...)
			if err := m.Save(); err != nil {
				return fmt.Errorf("failed to save bookmarks after deletion: %w", err)
			}
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Get returns a bookmark by ID
func (m *Manager) Get(id string) (*models.Bookmark, error) {
	for _, b := range m.bookmarks {
		if b.ID == id {
			return &b, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// GetAll returns all bookmarks
func (m *Manager) GetAll() []models.Bookmark {
	return m.bookmarks
}

// ForDocument returns the bookmarks of one document in creation order
func (m *Manager) ForDocument(document string) []models.Bookmark {
	var out []models.Bookmark
	for _, b := range m.bookmarks {
		if b.Document == document {
			out = append(out, b)
		}
	}
	return out
}

// Search searches bookmarks by name, path, note or tags
func (m *Manager) Search(query string) []models.Bookmark {
	if query == "" {
		return m.bookmarks
	}

	query = strings.ToLower(query)
	var results []models.Bookmark

	for _, b := range m.bookmarks {
		if strings.Contains(strings.ToLower(b.Name), query) ||
			strings.Contains(strings.ToLower(b.Path), query) ||
			strings.Contains(strings.ToLower(b.Note), query) {
			results = append(results, b)
			continue
		}

		for _, tag := range b.Tags {
			if strings.Contains(strings.ToLower(tag), query) {
				results = append(results, b)
				break
			}
		}
	}

	return results
}

// RecordUsage updates usage statistics for a bookmark
func (m *Manager) RecordUsage(id string) error {
	for i, b := range m.bookmarks {
		if b.ID == id {
			m.bookmarks[i].UsageCount++
			m.bookmarks[i].LastUsed = m.now()
			if err := m.Save(); err != nil {
				return fmt.Errorf("failed to save usage statistics: %w", err)
			}
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}

// GetMostUsed returns the most frequently used bookmarks
func (m *Manager) GetMostUsed(limit int) []models.Bookmark {
	sorted := make([]models.Bookmark, len(m.bookmarks))
	copy(sorted, m.bookmarks)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].UsageCount > sorted[j].UsageCount
	})

	if limit > 0 && limit < len(sorted) {
		sorted = sorted[:limit]
	}

	return sorted
}

// ExportToCSV exports all bookmarks to a CSV file
func (m *Manager) ExportToCSV(customPath ...string) (string, error) {
	if len(m.bookmarks) == 0 {
		return "", fmt.Errorf("no bookmarks to export")
	}

	path := filepath.Join(filepath.Dir(m.path), "bookmarks.csv")
	if len(customPath) > 0 && customPath[0] != "" {
		path = customPath[0]
	}

	if err := export.ExportToCSV(m.bookmarks, path); err != nil {
		return "", fmt.Errorf("failed to export bookmarks to CSV: %w", err)
	}

	return path, nil
}

// ExportToJSON exports all bookmarks to a JSON file
func (m *Manager) ExportToJSON(customPath ...string) (string, error) {
	if len(m.bookmarks) == 0 {
		return "", fmt.Errorf("no bookmarks to export")
	}

	path := filepath.Join(filepath.Dir(m.path), "bookmarks.json")
	if len(customPath) > 0 && customPath[0] != "" {
		path = customPath[0]
	}

	if err := export.ExportToJSON(m.bookmarks, path); err != nil {
		return "", fmt.Errorf("failed to export bookmarks to JSON: %w", err)
	}

	return path, nil
}
