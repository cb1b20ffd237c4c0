package db

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jmoiron/sqlx"
)

// trace logs a query on a single line. It is a no-op unless the handle was
// opened in verbose mode.
func trace(l *log.Logger, start time.Time, query string, args ...interface{}) {
	if l == nil {
		return
	}
	query = strings.Join(strings.Fields(query), " ")
	l.Debug("trace", "query", query, "args", args, "took", time.Since(start))
}

// SelectContext wraps sqlx.SelectContext with query tracing.
func (d *DB) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	defer trace(d.logger, time.Now(), query, args...)
	return d.DB.SelectContext(ctx, dest, query, args...)
}

// GetContext wraps sqlx.GetContext with query tracing.
func (d *DB) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	defer trace(d.logger, time.Now(), query, args...)
	return d.DB.GetContext(ctx, dest, query, args...)
}

// QueryxContext wraps sqlx.QueryxContext with query tracing.
func (d *DB) QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error) {
	defer trace(d.logger, time.Now(), query, args...)
	return d.DB.QueryxContext(ctx, query, args...)
}

// QueryRowxContext wraps sqlx.QueryRowxContext with query tracing.
func (d *DB) QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row {
	defer trace(d.logger, time.Now(), query, args...)
	return d.DB.QueryRowxContext(ctx, query, args...)
}

// ExecContext wraps sqlx.ExecContext with query tracing.
func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	defer trace(d.logger, time.Now(), query, args...)
	return d.DB.ExecContext(ctx, query, args...)
}

// SelectContext wraps sqlx.Tx.SelectContext with query tracing.
func (t *Tx) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	defer trace(t.logger, time.Now(), query, args...)
	return t.Tx.SelectContext(ctx, dest, query, args...)
}

// GetContext wraps sqlx.Tx.GetContext with query tracing.
func (t *Tx) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	defer trace(t.logger, time.Now(), query, args...)
	return t.Tx.GetContext(ctx, dest, query, args...)
}

// QueryxContext wraps sqlx.Tx.QueryxContext with query tracing.
func (t *Tx) QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error) {
	defer trace(t.logger, time.Now(), query, args...)
	return t.Tx.QueryxContext(ctx, query, args...)
}

// QueryRowxContext wraps sqlx.Tx.QueryRowxContext with query tracing.
func (t *Tx) QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row {
	defer trace(t.logger, time.Now(), query, args...)
	return t.Tx.QueryRowxContext(ctx, query, args...)
}

// ExecContext wraps sqlx.Tx.ExecContext with query tracing.
func (t *Tx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	defer trace(t.logger, time.Now(), query, args...)
	return t.Tx.ExecContext(ctx, query, args...)
}
