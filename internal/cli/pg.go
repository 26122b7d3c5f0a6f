package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rebeliceyang/lazyjson/internal/app"
	"github.com/rebeliceyang/lazyjson/internal/models"
	"github.com/rebeliceyang/lazyjson/internal/source"
)

const pgLoadTimeout = 30 * time.Second

type pgOpts struct {
	dsn   string
	query string
}

func (e *env) newPgCmd() *cobra.Command {
	var opts pgOpts

	cmd := &cobra.Command{
		Use:   "pg [args...]",
		Short: "View the result of a PostgreSQL query",
		Long: `Runs a query and views its result. A single json or jsonb cell becomes the document;
any other result becomes an array of row objects. Positional arguments are bound to $1, $2, ...`,
		Example:     `  lazyjson pg --dsn postgres://localhost/app --query 'select data from events where id = $1' 42`,
		Annotations: map[string]string{annotationViewer: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.dsn == "" {
				opts.dsn = os.Getenv("DATABASE_URL")
			}
			if opts.dsn == "" {
				return errors.New("--dsn or DATABASE_URL is required")
			}
			if opts.query == "" {
				return errors.New("--query is required")
			}

			queryArgs := make([]any, len(args))
			for i, a := range args {
				queryArgs[i] = a
			}
			return e.runPg(cmd.Context(), opts, queryArgs)
		},
	}

	cmd.Flags().StringVar(&opts.dsn, "dsn", "", "connection string (default: $DATABASE_URL)")
	cmd.Flags().StringVarP(&opts.query, "query", "q", "", "SQL query to run")
	return cmd
}

func (e *env) runPg(ctx context.Context, opts pgOpts, args []any) error {
	logger := loggerFromContext(ctx)

	loadCtx, cancel := context.WithTimeout(ctx, pgLoadTimeout)
	defer cancel()

	pg, err := source.OpenPostgres(loadCtx, opts.dsn)
	if err != nil {
		return err
	}
	defer pg.Close()

	start := time.Now()
	doc, err := pg.Load(loadCtx, opts.query, args...)
	if err != nil {
		return fmt.Errorf("load query result: %w", err)
	}
	logger.Info("query loaded", "elapsed", time.Since(start).Round(time.Millisecond))

	return e.runViewer(ctx, app.Options{
		Source:   models.DocumentSource{Kind: models.SourcePostgres, Query: opts.query},
		Document: doc,
	})
}
