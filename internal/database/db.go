package database

import (
	"context"
	"database/sql"
)

// DBTX lets Queries run against either *sql.DB or *sql.Tx
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// New creates a Queries instance backed by the given connection
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// Queries holds all database operations
type Queries struct {
	db DBTX
}

// WithTx returns Queries bound to the given transaction
func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}
