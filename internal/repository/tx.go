package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"prtracker/internal/apperr"

	"github.com/jmoiron/sqlx"
)

// WithTx runs fn inside a transaction. It commits when fn returns nil and rolls
// back otherwise, so partial writes are never observable.
func WithTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return apperr.Storage("begin transaction", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return apperr.Storage("commit transaction", err)
	}
	return nil
}

// isUniqueViolation matches SQLite's constraint message; both modernc and mattn
// drivers report it verbatim.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// requireOneRow turns a zero-row UPDATE/DELETE into NotFound.
func requireOneRow(res sql.Result, what string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return apperr.Storage(fmt.Sprintf("rows affected for %s %d", what, id), err)
	}
	if n == 0 {
		return apperr.NotFound("%s not found", what)
	}
	return nil
}
