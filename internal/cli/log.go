package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/rebeliceyang/lazyjson/internal/config"
)

const logFileName = "lazyjson.log"

// newLogger creates a logger with timestamp formatting that writes to w and
// filters messages below level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// logTarget decides where logs go. The viewer owns the terminal, so it only
// logs to a file; batch commands fall back to stderr when verbose.
type logTarget struct {
	file        string // --log-file, or log.file from the config
	verbose     bool
	interactive bool
}

// open returns the writer for t and a close function
func (t logTarget) open(stderr io.Writer) (io.Writer, func() error, error) {
	noop := func() error { return nil }

	path := t.file
	if path == "" && t.verbose && t.interactive {
		dir, err := config.GetConfigPath()
		if err != nil {
			return nil, noop, fmt.Errorf("locate log directory: %w", err)
		}
		path = filepath.Join(dir, logFileName)
	}

	switch {
	case path != "":
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, noop, fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, noop, fmt.Errorf("open log file: %w", err)
		}
		return f, f.Close, nil
	case t.verbose:
		return stderr, noop, nil
	default:
		return io.Discard, noop, nil
	}
}

// parseLevel maps the configured level name, defaulting to info
func parseLevel(name string, verbose bool) log.Level {
	if verbose {
		return log.DebugLevel
	}
	if name == "" {
		return log.InfoLevel
	}
	level, err := log.ParseLevel(strings.ToLower(name))
	if err != nil {
		return log.InfoLevel
	}
	return level
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or a silent one
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.New(io.Discard)
}
