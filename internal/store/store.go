// Package store is the PostgreSQL implementation of the core
// persistence gateway, built on pgx.
//
// Driver-level no-rows conditions are translated to the core's
// not-found errors here so callers never see pgx types.
package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/teacherspet/roster/internal/core"
)

// Store implements core.Gateway over a pgx connection pool.
type Store struct {
	pool *pgxpool.Pool
}

var _ core.Gateway = (*Store)(nil)

// New creates a Store backed by the given pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// InTx runs fn inside a transaction. A non-nil error from fn rolls
// the transaction back and is returned unchanged; otherwise the
// transaction commits.
func (s *Store) InTx(ctx context.Context, fn func(tx core.Tx) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return storageErr("begin tx", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(&storeTx{db: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return storageErr("commit tx", err)
	}
	return nil
}

// storeTx implements core.Tx over an open pgx transaction.
type storeTx struct {
	db pgx.Tx
}

var _ core.Tx = (*storeTx)(nil)

// storageErr tags a driver failure with the failing operation so the
// web layer can classify it as a transient storage error.
func storageErr(op string, err error) error {
	return &core.StorageError{Op: op, Err: err}
}
