package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/nikolayk812/zini-storefront/internal/db"
)

type txBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// withTx runs fn inside a new transaction, or directly on q when the repository
// was built over a caller-owned transaction (beginner is nil).
func withTx(ctx context.Context, beginner txBeginner, q *db.Queries, fn func(q *db.Queries) error) (txErr error) {
	if beginner == nil {
		return fn(q)
	}

	tx, err := beginner.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginner.Begin: %w", err)
	}

	defer func() {
		if txErr != nil {
			rollbackErr := tx.Rollback(ctx)
			if rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				txErr = errors.Join(txErr, fmt.Errorf("tx.Rollback: %w", rollbackErr))
			}
		}
	}()

	if err := fn(q.WithTx(tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("tx.Commit: %w", err)
	}

	return nil
}
