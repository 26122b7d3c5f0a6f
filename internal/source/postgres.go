package source

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rebeliceyang/lazyjson/internal/jsondoc"
)

// ErrEmptyResult is returned when a query yields no rows
var ErrEmptyResult = errors.New("query returned no rows")

// Postgres loads documents from query results
type Postgres struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects to dsn and verifies the connection
func OpenPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection config: %w", err)
	}

	poolConfig.MaxConns = 2
	poolConfig.MinConns = 0
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Postgres{pool: pool}, nil
}

// Close closes the connection pool
func (p *Postgres) Close() {
	if p.pool != nil {
		p.pool.Close()
	}
}

// Load runs sql and turns the result into a document. A single json or
// jsonb cell becomes the document itself; anything else becomes an array of
// row objects with keys in column order.
func (p *Postgres) Load(ctx context.Context, sql string, args ...any) (*jsondoc.Value, error) {
	rows, err := p.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	var records [][]*jsondoc.Value
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("scan row %d: %w", len(records), err)
		}
		raw := rows.RawValues()
		record := make([]*jsondoc.Value, len(fields))
		for i, fd := range fields {
			cell, err := decodeCell(fd, raw[i], values[i])
			if err != nil {
				return nil, fmt.Errorf("column %s: %w", fd.Name, err)
			}
			record[i] = cell
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	return assemble(fields, records)
}

func isJSONType(oid uint32) bool {
	return oid == pgtype.JSONOID || oid == pgtype.JSONBOID
}

// decodeCell converts one cell. json and jsonb columns are parsed from the
// wire text so object key order survives; other types go through the
// decoded Go value.
func decodeCell(fd pgconn.FieldDescription, raw []byte, value any) (*jsondoc.Value, error) {
	if raw == nil {
		return jsondoc.Null(), nil
	}
	if isJSONType(fd.DataTypeOID) {
		text := raw
		// binary jsonb carries a one-byte version header
		if fd.DataTypeOID == pgtype.JSONBOID && fd.Format == pgtype.BinaryFormatCode && len(text) > 0 && text[0] == 1 {
			text = text[1:]
		}
		return jsondoc.Parse(text)
	}
	// text columns holding serialized objects or arrays are expanded too
	if s, ok := value.(string); ok && isDocumentText(s) {
		if v, err := jsondoc.ParseString(s); err == nil {
			return v, nil
		}
	}
	return jsondoc.FromAny(value), nil
}

func isDocumentText(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || (s[0] != '{' && s[0] != '[') {
		return false
	}
	return jsondoc.LooksLikeJSON(s)
}

func assemble(fields []pgconn.FieldDescription, records [][]*jsondoc.Value) (*jsondoc.Value, error) {
	if len(records) == 0 {
		return nil, ErrEmptyResult
	}
	if len(records) == 1 && len(fields) == 1 && isJSONType(fields[0].DataTypeOID) {
		return records[0][0], nil
	}

	rows := make([]*jsondoc.Value, len(records))
	for r, record := range records {
		obj := make([]jsondoc.Field, len(fields))
		for i, fd := range fields {
			obj[i] = jsondoc.Field{Key: fd.Name, Value: record[i]}
		}
		rows[r] = jsondoc.Object(obj...)
	}
	return jsondoc.Array(rows...), nil
}
