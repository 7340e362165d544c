package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"

	"github.com/mhollis/lath/internal/db"
)

// FailNthWriteUoW runs the transaction body against the real database but
// returns Err from the Nth write statement, forcing a rollback. A schedule
// save issues several writes in one transaction (header upsert, item
// delete, item inserts), so pointing FailOn at one of them checks that the
// wholesale replace is all-or-nothing.
//
// Writes are counted from 1. Reads pass through uncounted.
type FailNthWriteUoW struct {
	DB     *sql.DB
	FailOn int32
	Err    error
}

func (u *FailNthWriteUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	counted := &nthWriteFailer{DBTX: tx, failOn: u.FailOn, err: u.Err}
	if fnErr := fn(ctx, counted); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

type nthWriteFailer struct {
	db.DBTX
	writes atomic.Int32
	failOn int32
	err    error
}

func (f *nthWriteFailer) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.writes.Add(1) == f.failOn {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
