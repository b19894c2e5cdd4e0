package pgdb

import (
	"context"
	"database/sql"
	"errors"

	"gigmarket/internal/entity"
	"gigmarket/internal/repo/repo_errors"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

// Conn is either the pool or an open transaction. Every repo is built on one,
// so the same repo code serves both plain reads and WithinTx callbacks.
type Conn struct {
	db         sqlx.ExtContext
	SqlBuilder squirrel.StatementBuilderType
}

func NewConn(db sqlx.ExtContext, builder squirrel.StatementBuilderType) Conn {
	return Conn{db: db, SqlBuilder: builder}
}

func (c Conn) get(ctx context.Context, dest any, q squirrel.Sqlizer) error {
	query, args, err := q.ToSql()
	if err != nil {
		return err
	}

	if err := sqlx.GetContext(ctx, c.db, dest, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return repo_errors.ErrNotFound
		}

		return err
	}

	return nil
}

func (c Conn) selectAll(ctx context.Context, dest any, q squirrel.Sqlizer) error {
	query, args, err := q.ToSql()
	if err != nil {
		return err
	}

	return sqlx.SelectContext(ctx, c.db, dest, query, args...)
}

func (c Conn) exec(ctx context.Context, q squirrel.Sqlizer) (int64, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return 0, err
	}

	res, err := c.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, repo_errors.Translate(err)
	}

	return res.RowsAffected()
}

// execOne is exec for statements addressing a single row by key.
func (c Conn) execOne(ctx context.Context, q squirrel.Sqlizer) error {
	n, err := c.exec(ctx, q)
	if err != nil {
		return err
	}
	if n == 0 {
		return repo_errors.ErrNotFound
	}

	return nil
}

func (c Conn) insertReturningId(ctx context.Context, dest any, q squirrel.InsertBuilder) error {
	query, args, err := q.Suffix("RETURNING id").ToSql()
	if err != nil {
		return err
	}

	if err := sqlx.GetContext(ctx, c.db, dest, query, args...); err != nil {
		return repo_errors.Translate(err)
	}

	return nil
}

func paginate(q squirrel.SelectBuilder, pg *entity.PaginationInput) squirrel.SelectBuilder {
	if pg == nil {
		return q
	}
	if pg.Offset > 0 {
		q = q.Offset(pg.Offset)
	}
	if pg.Limit > 0 {
		q = q.Limit(pg.Limit)
	}

	return q
}
