package dbmetrics

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeTx struct {
	DBExecutor
}

func (fakeTx) Commit() error   { return nil }
func (fakeTx) Rollback() error { return nil }

type fakeDB struct {
	DBExecutor
}

func TestGetExecutor(t *testing.T) {
	db := &fakeDB{}
	tx := &fakeTx{}

	ctx := context.Background()
	assert.False(t, IsInTransaction(ctx))
	assert.Same(t, db, GetExecutor(ctx, db))

	txCtx := WithTx(ctx, tx)
	assert.True(t, IsInTransaction(txCtx))
	assert.Same(t, tx, GetExecutor(txCtx, db))
}

func TestOperation(t *testing.T) {
	tests := map[string]string{
		"SELECT id FROM boxes":             "select",
		"  insert into bookings (id)":      "insert",
		"UPDATE bookings SET state = $1":   "update",
		"DELETE FROM schedules":            "delete",
		"SELECT pg_advisory_xact_lock($1)": "select",
		"":                                 "other",
		"VACUUM":                           "other",
	}

	for query, want := range tests {
		assert.Equal(t, want, Operation(query), query)
	}
}

func TestSqlTxWrapperImplementsTxExecutor(t *testing.T) {
	var _ TxExecutor = &SqlTxWrapper{Tx: &sql.Tx{}}
}
