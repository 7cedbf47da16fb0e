package postgres

import (
	"context"
	"database/sql"
)

// Querier is the part of *sql.DB the repositories need. Tests substitute a
// sqlmock-backed *sql.DB.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

var _ Querier = (*sql.DB)(nil)
