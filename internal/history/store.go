package history

import (
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rebeliceyang/lazyjson/internal/models"
)

//go:embed schema.sql
var schemaSQL string

const timeLayout = "2006-01-02 15:04:05.000"

// Store persists the recently opened documents
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// NewStore creates a new history store
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	// Create schema
	_, err = db.Exec(schemaSQL)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create history schema: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// Record adds a document to the history, or bumps it when already present
func (s *Store) Record(doc models.RecentDocument) error {
	openedAt := doc.OpenedAt
	if openedAt.IsZero() {
		openedAt = s.now()
	}
	_, err := s.db.Exec(`
		INSERT INTO recent_documents (location, kind, opened_at, nodes, bytes)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(location) DO UPDATE SET
			kind = excluded.kind,
			opened_at = excluded.opened_at,
			open_count = open_count + 1,
			nodes = excluded.nodes,
			bytes = excluded.bytes`,
		doc.Location,
		string(doc.Kind),
		openedAt.UTC().Format(timeLayout),
		doc.Nodes,
		doc.Bytes,
	)
	if err != nil {
		return fmt.Errorf("record %s: %w", doc.Location, err)
	}
	return nil
}

// GetRecent retrieves the most recently opened documents
func (s *Store) GetRecent(limit int) ([]models.RecentDocument, error) {
	rows, err := s.db.Query(`
		SELECT id, location, kind, opened_at, open_count, nodes, bytes
		FROM recent_documents
		ORDER BY opened_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	return scanDocuments(rows)
}

// Search finds history entries whose location contains query
func (s *Store) Search(query string, limit int) ([]models.RecentDocument, error) {
	rows, err := s.db.Query(`
		SELECT id, location, kind, opened_at, open_count, nodes, bytes
		FROM recent_documents
		WHERE location LIKE ?
		ORDER BY opened_at DESC, id DESC
		LIMIT ?`, "%"+query+"%", limit)
	if err != nil {
		return nil, err
	}
	return scanDocuments(rows)
}

// Prune keeps only the newest keep entries and returns how many were removed
func (s *Store) Prune(keep int) (int64, error) {
	res, err := s.db.Exec(`
		DELETE FROM recent_documents
		WHERE id NOT IN (
			SELECT id FROM recent_documents
			ORDER BY opened_at DESC, id DESC
			LIMIT ?
		)`, keep)
	if err != nil {
		return 0, fmt.Errorf("prune history: %w", err)
	}
	return res.RowsAffected()
}

// Remove drops one location from the history
func (s *Store) Remove(location string) error {
	_, err := s.db.Exec(`DELETE FROM recent_documents WHERE location = ?`, location)
	return err
}

func scanDocuments(rows *sql.Rows) ([]models.RecentDocument, error) {
	defer func() { _ = rows.Close() }()

	var docs []models.RecentDocument
	for rows.Next() {
		var d models.RecentDocument
		var kind, openedAt string

		err := rows.Scan(
			&d.ID,
			&d.Location,
			&kind,
			&openedAt,
			&d.OpenCount,
			&d.Nodes,
			&d.Bytes,
		)
		if err != nil {
			return nil, err
		}

		d.Kind = models.SourceKind(kind)
		d.OpenedAt, _ = time.Parse(timeLayout, openedAt)

		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
