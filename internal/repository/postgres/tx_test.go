package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// txRecorder is a pgx.Tx that records executed statements. The embedded
// interface panics on anything the repositories do not call.
type txRecorder struct {
	pgx.Tx
	stmts      [][]any // statement SQL followed by its args
	failAt     int     // index of the Exec call that fails, -1 for none
	committed  bool
	rolledBack bool
}

func newTxRecorder() *txRecorder {
	return &txRecorder{failAt: -1}
}

func (t *txRecorder) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	idx := len(t.stmts)
	t.stmts = append(t.stmts, append([]any{sql}, args...))
	if t.failAt == idx {
		return pgconn.CommandTag{}, errors.New("exec failed")
	}
	return pgconn.NewCommandTag("EXEC 1"), nil
}

func (t *txRecorder) Commit(ctx context.Context) error {
	t.committed = true
	return nil
}

func (t *txRecorder) Rollback(ctx context.Context) error {
	if t.committed {
		return pgx.ErrTxClosed
	}
	t.rolledBack = true
	return nil
}

func (t *txRecorder) sql(i int) string {
	return t.stmts[i][0].(string)
}

func (t *txRecorder) args(i int) []any {
	return t.stmts[i][1:]
}

// txDB hands out a single recorded transaction. Only Begin is implemented;
// the repositories under test must not touch the pool directly.
type txDB struct {
	DB
	tx *txRecorder
}

func (d *txDB) Begin(ctx context.Context) (pgx.Tx, error) {
	return d.tx, nil
}
