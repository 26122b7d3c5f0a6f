package models

import (
	"path/filepath"
	"time"
)

// AppState holds the application state
type AppState struct {
	Width    int
	Height   int
	ViewMode ViewMode
	Source   DocumentSource
	Theme    string
}

// ViewMode identifies the current view
type ViewMode int

const (
	GraphMode ViewMode = iota
	TableMode
	HelpMode
)

func (m ViewMode) String() string {
	switch m {
	case TableMode:
		return "table"
	case HelpMode:
		return "help"
	default:
		return "graph"
	}
}

// NewAppState creates a new AppState with defaults
func NewAppState() AppState {
	return AppState{
		Width:    80,
		Height:   24,
		ViewMode: GraphMode,
	}
}

// SourceKind identifies where a document came from
type SourceKind string

const (
	SourceFile     SourceKind = "file"
	SourceStdin    SourceKind = "stdin"
	SourcePostgres SourceKind = "postgres"
)

// DocumentSource describes the loaded document
type DocumentSource struct {
	Kind     SourceKind
	Location string // file path or DSN host
	Query    string // SQL for postgres sources
}

// Label returns a short title for the status bar
func (s DocumentSource) Label() string {
	switch s.Kind {
	case SourceStdin:
		return "<stdin>"
	case SourcePostgres:
		return "pg: " + s.Query
	case SourceFile:
		return filepath.Base(s.Location)
	default:
		return "untitled"
	}
}

// Watchable reports whether the source can be reloaded from disk
func (s DocumentSource) Watchable() bool {
	return s.Kind == SourceFile && s.Location != ""
}

// Bookmark is a saved node path within a document
type Bookmark struct {
	ID         string    `yaml:"id" json:"id"`
	Name       string    `yaml:"name" json:"name"`
	Path       string    `yaml:"path" json:"path"`
	Document   string    `yaml:"document" json:"document"`
	Note       string    `yaml:"note,omitempty" json:"note,omitempty"`
	Tags       []string  `yaml:"tags,omitempty" json:"tags,omitempty"`
	CreatedAt  time.Time `yaml:"created_at" json:"created_at"`
	UpdatedAt  time.Time `yaml:"updated_at" json:"updated_at"`
	LastUsed   time.Time `yaml:"last_used,omitempty" json:"last_used,omitempty"`
	UsageCount int       `yaml:"usage_count" json:"usage_count"`
}

// RecentDocument is one entry of the recently opened list
type RecentDocument struct {
	ID        int
	Location  string
	Kind      SourceKind
	OpenedAt  time.Time
	OpenCount int
	Nodes     int
	Bytes     int64
}
