package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/alexanderramin/encore/internal/db"
)

// FailingWriteUoW runs transactions against DB but fails the FailOn-th write
// (1-based) whose statement names Table. An empty Table matches every write.
// Reads are never intercepted.
type FailingWriteUoW struct {
	DB     *sql.DB
	Table  string
	FailOn int
	Err    error
}

func (u *FailingWriteUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := fn(ctx, &failingWrites{DBTX: tx, uow: u}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

type failingWrites struct {
	db.DBTX
	uow  *FailingWriteUoW
	seen int
}

func (f *failingWrites) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.uow.Table == "" || mentionsTable(query, f.uow.Table) {
		f.seen++
		if f.seen == f.uow.FailOn {
			return nil, f.uow.Err
		}
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}

func mentionsTable(query, table string) bool {
	for _, field := range strings.Fields(query) {
		if strings.Trim(field, "(") == table {
			return true
		}
	}
	return false
}
