// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

package dbutil

import (
	"context"
	"database/sql"

	"github.com/zeebo/errs"
)

// WithTx wraps the callback in a transaction.
// The transaction is rolled back when the callback returns an error
// and committed otherwise.
func WithTx(ctx context.Context, db *sql.DB, fn func(ctx context.Context, tx *sql.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			err = errs.Combine(err, tx.Rollback())
			return
		}
		err = tx.Commit()
	}()
	return fn(ctx, tx)
}
