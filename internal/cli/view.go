package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/rebeliceyang/lazyjson/internal/app"
	"github.com/rebeliceyang/lazyjson/internal/bookmarks"
	"github.com/rebeliceyang/lazyjson/internal/config"
	"github.com/rebeliceyang/lazyjson/internal/history"
	"github.com/rebeliceyang/lazyjson/internal/jsondoc"
	"github.com/rebeliceyang/lazyjson/internal/models"
	"github.com/rebeliceyang/lazyjson/internal/source"
)

const historyFileName = "history.db"

// errNoInput is returned when neither a file nor piped input was given
var errNoInput = errors.New("no document: pass a file, \"-\" or pipe JSON on stdin")

// readDocument loads the document named by args: a file path, "-" for stdin,
// or nothing when stdin is not a terminal
func (e *env) readDocument(args []string) ([]byte, models.DocumentSource, error) {
	if len(args) == 0 || args[0] == "-" {
		if len(args) == 0 && e.stdinIsTerminal() {
			return nil, models.DocumentSource{}, errNoInput
		}
		data, err := source.Read(e.in)
		if err != nil {
			return nil, models.DocumentSource{}, fmt.Errorf("read stdin: %w", err)
		}
		return data, models.DocumentSource{Kind: models.SourceStdin}, nil
	}

	path, err := filepath.Abs(args[0])
	if err != nil {
		return nil, models.DocumentSource{}, err
	}
	data, err := source.ReadFile(path)
	if err != nil {
		return nil, models.DocumentSource{}, err
	}
	return data, models.DocumentSource{Kind: models.SourceFile, Location: path}, nil
}

// parseDocument reads and decodes the document for batch commands
func (e *env) parseDocument(args []string) (*jsondoc.Value, error) {
	data, src, err := e.readDocument(args)
	if err != nil {
		return nil, err
	}
	doc, err := jsondoc.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src.Label(), err)
	}
	return doc, nil
}

func (e *env) stdinIsTerminal() bool {
	f, ok := e.in.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// runView opens the viewer on a file or stdin and watches files for changes
func (e *env) runView(ctx context.Context, args []string) error {
	logger := loggerFromContext(ctx)

	data, src, err := e.readDocument(args)
	if err != nil {
		return err
	}

	opts := app.Options{Source: src, Data: data}
	if src.Watchable() {
		w, err := source.Watch(src.Location, logger)
		if err != nil {
			logger.Warn("live reload disabled", "path", src.Location, "err", err)
		} else {
			defer w.Close()
			opts.Watcher = w
		}
	}
	return e.runViewer(ctx, opts)
}

// runViewer starts the bubbletea program
func (e *env) runViewer(ctx context.Context, opts app.Options) error {
	logger := loggerFromContext(ctx)
	opts.Logger = logger

	marks, store := e.openStores(ctx)
	if store != nil {
		defer store.Close()
	}
	opts.Bookmarks = marks
	opts.History = store

	programOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if e.cfg.UI.MouseEnabled {
		// hover tooltips need motion events without a pressed button
		programOpts = append(programOpts, tea.WithMouseAllMotion())
	}
	if opts.Source.Kind == models.SourceStdin {
		// stdin held the document, keys come from the terminal
		programOpts = append(programOpts, tea.WithInputTTY())
	}

	logger.Info("opening viewer", "source", opts.Source.Label())
	if _, err := tea.NewProgram(app.New(e.cfg, opts), programOpts...).Run(); err != nil {
		return fmt.Errorf("run viewer: %w", err)
	}
	return nil
}

// openStores opens the bookmarks file and, when enabled, the history
// database. Either may be nil; the viewer works without them.
func (e *env) openStores(ctx context.Context) (*bookmarks.Manager, *history.Store) {
	logger := loggerFromContext(ctx)

	dir, err := configDir()
	if err != nil {
		logger.Warn("bookmarks and history disabled", "err", err)
		return nil, nil
	}

	marks, err := bookmarks.NewManager(dir)
	if err != nil {
		logger.Warn("bookmarks disabled", "err", err)
		marks = nil
	}

	var store *history.Store
	if e.cfg.History.Enabled {
		store, err = history.NewStore(filepath.Join(dir, historyFileName))
		if err != nil {
			logger.Warn("history disabled", "err", err)
			store = nil
		}
	}
	return marks, store
}

// configDir returns the user config directory, creating it when needed
func configDir() (string, error) {
	dir, err := config.GetConfigPath()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}
	return dir, nil
}
