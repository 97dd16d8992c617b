package db

import (
	"context"
	"database/sql"
)

// DBTX is what the SQLite repositories write through. A quote save hands
// every repository the same *sql.Tx so the project row, its scope nodes and
// their line items commit together; read-only callers pass the *sql.DB.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)
