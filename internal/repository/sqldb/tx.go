package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/sakif/qa-backend/internal/repository"
)

var _ repository.TxBeginner = (*DB)(nil)

// BeginTx takes one connection out of the pool and starts a transaction on it.
// The connection stays checked out until Release, so nothing else can run a
// statement on it while the transaction is open.
func (db *DB) BeginTx(ctx context.Context) (repository.TxConn, error) {
	conn, err := db.conn.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("sqldb: acquiring connection: %w", err)
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqldb: beginning transaction: %w", err)
	}

	return &txConn{conn: conn, tx: tx}, nil
}

type txConn struct {
	conn *sql.Conn
	tx   *sql.Tx

	releaseOnce sync.Once
	releaseErr  error
}

func (c *txConn) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := c.tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("sqldb: executing in transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("sqldb: reading rows affected: %w", err)
	}
	return n, nil
}

func (c *txConn) Commit() error {
	if err := c.tx.Commit(); err != nil {
		return fmt.Errorf("sqldb: committing: %w", err)
	}
	return nil
}

// Rollback is a no-op once the transaction has already finished.
func (c *txConn) Rollback() error {
	if err := c.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("sqldb: rolling back: %w", err)
	}
	return nil
}

// Release rolls back anything still open and hands the connection back.
func (c *txConn) Release() error {
	c.releaseOnce.Do(func() {
		rbErr := c.Rollback()
		c.releaseErr = errors.Join(rbErr, c.conn.Close())
	})
	return c.releaseErr
}
