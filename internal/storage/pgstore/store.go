// Package pgstore implements the auth and catalog storage interfaces on
// PostgreSQL via pgx. Each operation is a single statement, so writes are
// atomic without explicit transactions.
package pgstore

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store provides pgx-backed persistence for users and products.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Store on top of an established connection pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}
