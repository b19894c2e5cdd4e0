package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gigmarket/internal/repo/pgdb"
	"gigmarket/pkg/postgres"
)

// Transactor runs fn against repositories bound to a single transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos *Repositories) error) error
}

type pgTransactor struct {
	*postgres.Postgres
}

func NewTransactor(p *postgres.Postgres) Transactor {
	return &pgTransactor{p}
}

func (t *pgTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context, repos *Repositories) error) error {
	tx, err := t.Database.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(ctx, newRepositories(pgdb.NewConn(tx, t.SqlBuilder))); err != nil {
		if e := tx.Rollback(); e != nil {
			return errors.Join(err, fmt.Errorf("rollback: %w", e))
		}

		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
