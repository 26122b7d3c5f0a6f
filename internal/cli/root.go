// Package cli implements the lazyjson command-line interface.
//
// The root command opens the interactive graph viewer on a file or on
// standard input. Subcommands load documents from PostgreSQL, export the
// graph projection, print node paths and manage the recent-document history
// and bookmarks.
//
// # Logging
//
// All commands accept --verbose (-v) and --log-file. The viewer owns the
// terminal, so it only ever logs to a file; batch commands log to stderr.
// Loggers are passed through context.Context.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rebeliceyang/lazyjson/internal/config"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// annotationViewer marks commands that take over the terminal
const annotationViewer = "viewer"

// env is the state shared by every command: I/O streams, global flags and
// what PersistentPreRunE resolved from them.
type env struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	configFile string
	verbose    bool
	logFile    string
	themeName  string
	noMouse    bool

	cfg      *config.Config
	closeLog func() error
}

// Execute runs the lazyjson CLI
func Execute(ctx context.Context) error {
	e := &env{in: os.Stdin, out: os.Stdout, errOut: os.Stderr}
	return e.rootCommand().ExecuteContext(ctx)
}

func (e *env) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "lazyjson [file|-]",
		Short: "Explore JSON documents as an interactive graph",
		Long: `lazyjson renders a JSON document as a pannable, zoomable graph of nodes in the terminal.
Pass a file (plain, gzip or zstd), "-" or pipe a document on stdin. Saved files are reloaded live.`,
		Version:           version,
		Args:              cobra.MaximumNArgs(1),
		SilenceUsage:      true,
		Annotations:       map[string]string{annotationViewer: "true"},
		PersistentPreRunE: e.setup,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if e.closeLog != nil {
				return e.closeLog()
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.runView(cmd.Context(), args)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("lazyjson %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.SetIn(e.in)
	root.SetOut(e.out)
	root.SetErr(e.errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&e.configFile, "config", "", "config file (default: <config dir>/lazyjson/config.yaml)")
	flags.BoolVarP(&e.verbose, "verbose", "v", false, "enable verbose logging")
	flags.StringVar(&e.logFile, "log-file", "", "write logs to this file")
	flags.StringVar(&e.themeName, "theme", "", "color theme: dark, light, catppuccin-mocha, catppuccin-latte")
	flags.BoolVar(&e.noMouse, "no-mouse", false, "disable mouse support")

	root.AddCommand(e.newPgCmd())
	root.AddCommand(e.newExportCmd())
	root.AddCommand(e.newPathsCmd())
	root.AddCommand(e.newRecentCmd())
	root.AddCommand(e.newBookmarksCmd())

	return root
}

// setup loads the configuration, applies flag overrides and attaches the
// logger to the command context
func (e *env) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(e.configFile)
	if err != nil {
		return err
	}
	if e.themeName != "" {
		cfg.UI.Theme = e.themeName
	}
	if e.noMouse {
		cfg.UI.MouseEnabled = false
	}
	if e.logFile != "" {
		cfg.Log.File = e.logFile
	}
	e.cfg = cfg

	target := logTarget{
		file:        cfg.Log.File,
		verbose:     e.verbose,
		interactive: cmd.Annotations[annotationViewer] == "true",
	}
	w, closeLog, err := target.open(e.errOut)
	if err != nil {
		return err
	}
	e.closeLog = closeLog

	logger := newLogger(w, parseLevel(cfg.Log.Level, e.verbose))
	logger.Debug("starting", "command", cmd.Name(), "version", version)
	cmd.SetContext(withLogger(cmd.Context(), logger))
	return nil
}
